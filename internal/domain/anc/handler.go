package anc

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ancare/ancare/internal/platform/store"
	"github.com/ancare/ancare/pkg/pagination"
)

// Handler exposes the patient registry over HTTP.
type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes mounts the patient endpoints on the given group.
func (h *Handler) RegisterRoutes(g *echo.Group) {
	g.GET("/patients", h.list)
	g.POST("/patients", h.create)
	g.GET("/patients/:id", h.get)
	g.PATCH("/patients/:id", h.update)
	g.DELETE("/patients/:id", h.delete)
}

func (h *Handler) list(c echo.Context) error {
	params := pagination.FromContext(c)
	all := h.svc.List()
	if fn := c.QueryParam("file_number"); fn != "" {
		p, err := h.svc.FindByFileNumber(fn)
		if errors.Is(err, store.ErrNotFound) {
			all = []Patient{}
		} else {
			all = []Patient{p}
		}
	}
	page, total := pagination.Slice(all, params)
	return c.JSON(http.StatusOK, pagination.NewResponse(page, total, params.Limit, params.Offset))
}

func (h *Handler) create(c echo.Context) error {
	var p Patient
	if err := c.Bind(&p); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "malformed patient payload")
	}
	created, err := h.svc.Register(p)
	if err != nil {
		if errors.Is(err, ErrValidation) {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		return err
	}
	return c.JSON(http.StatusCreated, created)
}

func (h *Handler) get(c echo.Context) error {
	p, err := h.svc.Get(store.ID(c.Param("id")))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "patient not found")
		}
		return err
	}
	return c.JSON(http.StatusOK, p)
}

func (h *Handler) update(c echo.Context) error {
	var u PatientUpdate
	if err := c.Bind(&u); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "malformed patient payload")
	}
	updated, err := h.svc.Update(store.ID(c.Param("id")), u)
	if err != nil {
		switch {
		case errors.Is(err, ErrValidation):
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		case errors.Is(err, store.ErrNotFound):
			return echo.NewHTTPError(http.StatusNotFound, "patient not found")
		}
		return err
	}
	return c.JSON(http.StatusOK, updated)
}

func (h *Handler) delete(c echo.Context) error {
	if err := h.svc.Delete(store.ID(c.Param("id"))); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "patient not found")
		}
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
