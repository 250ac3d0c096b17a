package assessment

import (
	"net/http"

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
	readGroup.GET("/assessments", h.ListAssessments)
	readGroup.GET("/assessments/:id", h.GetAssessment)

	writeGroup := api.Group("", auth.RequireRole(auth.WriteRoles...))
	writeGroup.POST("/assessments", h.CreateAssessment)
	writeGroup.PUT("/assessments/:id", h.ReplaceAssessment)
	writeGroup.PATCH("/assessments/:id", h.PatchAssessment)
	writeGroup.DELETE("/assessments/:id", h.DeleteAssessment)
}

func (h *Handler) CreateAssessment(c echo.Context) error {
	var a Assessment
	if err := httpx.Bind(c, &a); err != nil {
		return err
	}
	if err := h.svc.Create(c.Request().Context(), &a); err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, &a)
}

func (h *Handler) GetAssessment(c echo.Context) error {
	id, err := httpx.ParseID(c, "id")
	if err != nil {
		return err
	}
	a, err := h.svc.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, a)
}

func (h *Handler) ListAssessments(c echo.Context) error {
	pg := pagination.FromContext(c)
	patientID, err := httpx.QueryUUID(c, "patient_id")
	if err != nil {
		return err
	}
	f := Filter{PatientID: patientID, System: c.QueryParam("system")}
	items, total, err := h.svc.List(c.Request().Context(), f, pg.Limit, pg.Offset)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(items, total, pg.Limit, pg.Offset))
}

func (h *Handler) ReplaceAssessment(c echo.Context) error {
	id, err := httpx.ParseID(c, "id")
	if err != nil {
		return err
	}
	body, err := httpx.ReadBody(c)
	if err != nil {
		return err
	}
	a, err := h.svc.Update(c.Request().Context(), id, func(a *Assessment) error {
		var fresh Assessment
		if err := httpx.Decode(body, &fresh); err != nil {
			return err
		}
		*a = fresh
		return nil
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, a)
}

func (h *Handler) PatchAssessment(c echo.Context) error {
	id, err := httpx.ParseID(c, "id")
	if err != nil {
		return err
	}
	body, err := httpx.ReadBody(c)
	if err != nil {
		return err
	}
	a, err := h.svc.Update(c.Request().Context(), id, func(a *Assessment) error {
		return httpx.Decode(body, a)
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, a)
}

func (h *Handler) DeleteAssessment(c echo.Context) error {
	id, err := httpx.ParseID(c, "id")
	if err != nil {
		return err
	}
	if err := h.svc.Delete(c.Request().Context(), id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
