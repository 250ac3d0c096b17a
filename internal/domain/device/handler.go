package device

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
	readGroup.GET("/devices", h.ListDevices)
	readGroup.GET("/devices/:id", h.GetDevice)

	writeGroup := api.Group("", auth.RequireRole(auth.WriteRoles...))
	writeGroup.POST("/devices", h.CreateDevice)
	writeGroup.PUT("/devices/:id", h.ReplaceDevice)
	writeGroup.PATCH("/devices/:id", h.PatchDevice)
	writeGroup.DELETE("/devices/:id", h.DeleteDevice)
}

func (h *Handler) CreateDevice(c echo.Context) error {
	var d Device
	if err := httpx.Bind(c, &d); err != nil {
		return err
	}
	if err := h.svc.Create(c.Request().Context(), &d); err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, &d)
}

func (h *Handler) GetDevice(c echo.Context) error {
	id, err := httpx.ParseID(c, "id")
	if err != nil {
		return err
	}
	d, err := h.svc.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, d)
}

func (h *Handler) ListDevices(c echo.Context) error {
	pg := pagination.FromContext(c)
	patientID, err := httpx.QueryUUID(c, "patient_id")
	if err != nil {
		return err
	}
	inPlace, err := httpx.QueryBool(c, "in_place")
	if err != nil {
		return err
	}
	f := Filter{PatientID: patientID, Type: c.QueryParam("type"), InPlace: inPlace}
	items, total, err := h.svc.List(c.Request().Context(), f, pg.Limit, pg.Offset)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(items, total, pg.Limit, pg.Offset))
}

func (h *Handler) ReplaceDevice(c echo.Context) error {
	id, err := httpx.ParseID(c, "id")
	if err != nil {
		return err
	}
	body, err := httpx.ReadBody(c)
	if err != nil {
		return err
	}
	d, err := h.svc.Update(c.Request().Context(), id, func(d *Device) error {
		var fresh Device
		if err := httpx.Decode(body, &fresh); err != nil {
			return err
		}
		*d = fresh
		return nil
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, d)
}

func (h *Handler) PatchDevice(c echo.Context) error {
	id, err := httpx.ParseID(c, "id")
	if err != nil {
		return err
	}
	body, err := httpx.ReadBody(c)
	if err != nil {
		return err
	}
	d, err := h.svc.Update(c.Request().Context(), id, func(d *Device) error {
		return httpx.Decode(body, d)
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, d)
}

func (h *Handler) DeleteDevice(c echo.Context) error {
	id, err := httpx.ParseID(c, "id")
	if err != nil {
		return err
	}
	if err := h.svc.Delete(c.Request().Context(), id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
