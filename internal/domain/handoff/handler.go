package handoff

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/sbarcore/handoff/internal/platform/auth"
	"github.com/sbarcore/handoff/internal/platform/httpx"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	readGroup := api.Group("", auth.RequireRole(auth.ReadRoles...))
	readGroup.GET("/patients/:id/handoff", h.GetSummary)
}

func (h *Handler) GetSummary(c echo.Context) error {
	id, err := httpx.ParseID(c, "id")
	if err != nil {
		return err
	}
	s, err := h.svc.Summary(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, s)
}
