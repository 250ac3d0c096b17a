package shift

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/sbarcore/handoff/internal/platform/auth"
	"github.com/sbarcore/handoff/internal/platform/httpx"
	"github.com/sbarcore/handoff/internal/platform/validation"
	"github.com/sbarcore/handoff/pkg/civil"
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
	readGroup.GET("/shifts", h.ListShifts)
	readGroup.GET("/shifts/roster-template", h.RosterTemplate)
	readGroup.GET("/shifts/:id", h.GetShift)

	writeGroup := api.Group("", auth.RequireRole(auth.WriteRoles...))
	writeGroup.POST("/shifts", h.CreateShift)
	writeGroup.POST("/shifts/roster", h.ImportRoster)
	writeGroup.PUT("/shifts/:id", h.ReplaceShift)
	writeGroup.PATCH("/shifts/:id", h.PatchShift)
	writeGroup.DELETE("/shifts/:id", h.DeleteShift)
}

func (h *Handler) CreateShift(c echo.Context) error {
	s := New()
	if err := httpx.Bind(c, s); err != nil {
		return err
	}
	if err := h.svc.Create(c.Request().Context(), s); err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, s)
}

func (h *Handler) GetShift(c echo.Context) error {
	id, err := httpx.ParseID(c, "id")
	if err != nil {
		return err
	}
	s, err := h.svc.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, s)
}

func (h *Handler) ListShifts(c echo.Context) error {
	pg := pagination.FromContext(c)
	f := Filter{ShiftPeriod: c.QueryParam("shift_period")}
	if raw := c.QueryParam("date"); raw != "" {
		d, err := civil.ParseDate(raw)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid date: expected YYYY-MM-DD")
		}
		f.Date = &d
	}
	items, total, err := h.svc.List(c.Request().Context(), f, pg.Limit, pg.Offset)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(items, total, pg.Limit, pg.Offset))
}

func (h *Handler) ReplaceShift(c echo.Context) error {
	id, err := httpx.ParseID(c, "id")
	if err != nil {
		return err
	}
	body, err := httpx.ReadBody(c)
	if err != nil {
		return err
	}
	s, err := h.svc.Update(c.Request().Context(), id, func(s *Shift) error {
		fresh := New()
		if err := httpx.Decode(body, fresh); err != nil {
			return err
		}
		*s = *fresh
		return nil
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, s)
}

func (h *Handler) PatchShift(c echo.Context) error {
	id, err := httpx.ParseID(c, "id")
	if err != nil {
		return err
	}
	body, err := httpx.ReadBody(c)
	if err != nil {
		return err
	}
	s, err := h.svc.Update(c.Request().Context(), id, func(s *Shift) error {
		return httpx.Decode(body, s)
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, s)
}

func (h *Handler) DeleteShift(c echo.Context) error {
	id, err := httpx.ParseID(c, "id")
	if err != nil {
		return err
	}
	if err := h.svc.Delete(c.Request().Context(), id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) RosterTemplate(c echo.Context) error {
	data, err := RosterTemplate()
	if err != nil {
		return err
	}
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="roster-template.xlsx"`)
	return c.Blob(http.StatusOK, XLSXContentType, data)
}

// ImportResult is the body of a roster upload response.
type ImportResult struct {
	Created []*Shift   `json:"created"`
	Errors  []RowError `json:"errors"`
}

// ImportRoster takes a multipart upload with the workbook in field "file".
func (h *Handler) ImportRoster(c echo.Context) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return validation.FieldError("file", validation.MsgRequired)
	}
	file, err := fh.Open()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "could not read uploaded file")
	}
	defer file.Close()

	rows, err := ParseRoster(file)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid roster: "+err.Error())
	}

	created, err := h.svc.ImportRoster(c.Request().Context(), rows)
	var rejected *RosterError
	if errors.As(err, &rejected) {
		return c.JSON(http.StatusBadRequest, ImportResult{Created: []*Shift{}, Errors: rejected.Rows})
	}
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, ImportResult{Created: created, Errors: []RowError{}})
}
