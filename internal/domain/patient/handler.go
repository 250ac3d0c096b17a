package patient

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/sbarcore/handoff/internal/platform/auth"
	"github.com/sbarcore/handoff/internal/platform/httpx"
	"github.com/sbarcore/handoff/pkg/pagination"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	readGroup := api.Group("", auth.RequireRole(auth.ReadRoles...))
	readGroup.GET("/patients", h.ListPatients)
	readGroup.GET("/patients/:id", h.GetPatient)

	writeGroup := api.Group("", auth.RequireRole(auth.WriteRoles...))
	writeGroup.POST("/patients", h.CreatePatient)
	writeGroup.PUT("/patients/:id", h.ReplacePatient)
	writeGroup.PATCH("/patients/:id", h.PatchPatient)
	writeGroup.DELETE("/patients/:id", h.DeletePatient)
	writeGroup.POST("/patients/:id/discharge", h.DischargePatient)
}

func (h *Handler) CreatePatient(c echo.Context) error {
	p := New()
	if err := httpx.Bind(c, p); err != nil {
		return err
	}
	if err := h.svc.Create(c.Request().Context(), p); err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, p)
}

func (h *Handler) GetPatient(c echo.Context) error {
	id, err := httpx.ParseID(c, "id")
	if err != nil {
		return err
	}
	p, err := h.svc.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, p)
}

func (h *Handler) ListPatients(c echo.Context) error {
	pg := pagination.FromContext(c)
	isActive, err := httpx.QueryBool(c, "is_active")
	if err != nil {
		return err
	}
	f := Filter{
		IsActive:  isActive,
		Status:    c.QueryParam("status"),
		BedNumber: c.QueryParam("bed_number"),
		Query:     c.QueryParam("q"),
	}
	items, total, err := h.svc.List(c.Request().Context(), f, pg.Limit, pg.Offset)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(items, total, pg.Limit, pg.Offset))
}

// ReplacePatient handles PUT: every writable field comes from the body and
// omitted ones fall back to their defaults.
func (h *Handler) ReplacePatient(c echo.Context) error {
	id, err := httpx.ParseID(c, "id")
	if err != nil {
		return err
	}
	body, err := httpx.ReadBody(c)
	if err != nil {
		return err
	}
	p, err := h.svc.Update(c.Request().Context(), id, func(p *Patient) error {
		fresh := New()
		if err := httpx.Decode(body, fresh); err != nil {
			return err
		}
		*p = *fresh
		return nil
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, p)
}

// PatchPatient handles PATCH: only the fields present in the body change.
func (h *Handler) PatchPatient(c echo.Context) error {
	id, err := httpx.ParseID(c, "id")
	if err != nil {
		return err
	}
	body, err := httpx.ReadBody(c)
	if err != nil {
		return err
	}
	p, err := h.svc.Update(c.Request().Context(), id, func(p *Patient) error {
		return httpx.Decode(body, p)
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, p)
}

func (h *Handler) DeletePatient(c echo.Context) error {
	id, err := httpx.ParseID(c, "id")
	if err != nil {
		return err
	}
	if err := h.svc.Delete(c.Request().Context(), id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

type dischargeRequest struct {
	DischargeDate *time.Time `json:"discharge_date"`
}

// DischargePatient accepts an empty body or {"discharge_date": ...}.
func (h *Handler) DischargePatient(c echo.Context) error {
	id, err := httpx.ParseID(c, "id")
	if err != nil {
		return err
	}
	var req dischargeRequest
	if err := httpx.BindOptional(c, &req); err != nil {
		return err
	}
	p, err := h.svc.Discharge(c.Request().Context(), id, req.DischargeDate)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, p)
}
