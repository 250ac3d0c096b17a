package sbar

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
	readGroup.GET("/sbars", h.ListNotes)
	readGroup.GET("/sbars/:id", h.GetNote)

	writeGroup := api.Group("", auth.RequireRole(auth.WriteRoles...))
	writeGroup.POST("/sbars", h.CreateNote)
	writeGroup.PUT("/sbars/:id", h.ReplaceNote)
	writeGroup.PATCH("/sbars/:id", h.PatchNote)
	writeGroup.DELETE("/sbars/:id", h.DeleteNote)
}

func (h *Handler) CreateNote(c echo.Context) error {
	var n Note
	if err := httpx.Bind(c, &n); err != nil {
		return err
	}
	if err := h.svc.Create(c.Request().Context(), &n); err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, &n)
}

func (h *Handler) GetNote(c echo.Context) error {
	id, err := httpx.ParseID(c, "id")
	if err != nil {
		return err
	}
	n, err := h.svc.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, n)
}

func (h *Handler) ListNotes(c echo.Context) error {
	pg := pagination.FromContext(c)
	patientID, err := httpx.QueryUUID(c, "patient_id")
	if err != nil {
		return err
	}
	shiftID, err := httpx.QueryUUID(c, "shift_id")
	if err != nil {
		return err
	}
	f := Filter{PatientID: patientID, ShiftID: shiftID}
	items, total, err := h.svc.List(c.Request().Context(), f, pg.Limit, pg.Offset)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(items, total, pg.Limit, pg.Offset))
}

func (h *Handler) ReplaceNote(c echo.Context) error {
	id, err := httpx.ParseID(c, "id")
	if err != nil {
		return err
	}
	body, err := httpx.ReadBody(c)
	if err != nil {
		return err
	}
	n, err := h.svc.Update(c.Request().Context(), id, func(n *Note) error {
		var fresh Note
		if err := httpx.Decode(body, &fresh); err != nil {
			return err
		}
		*n = fresh
		return nil
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, n)
}

func (h *Handler) PatchNote(c echo.Context) error {
	id, err := httpx.ParseID(c, "id")
	if err != nil {
		return err
	}
	body, err := httpx.ReadBody(c)
	if err != nil {
		return err
	}
	n, err := h.svc.Update(c.Request().Context(), id, func(n *Note) error {
		return httpx.Decode(body, n)
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, n)
}

func (h *Handler) DeleteNote(c echo.Context) error {
	id, err := httpx.ParseID(c, "id")
	if err != nil {
		return err
	}
	if err := h.svc.Delete(c.Request().Context(), id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
