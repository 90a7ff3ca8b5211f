package staff

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ancare/ancare/internal/platform/store"
	"github.com/ancare/ancare/pkg/pagination"
)

// Handler exposes the doctor and nurse rosters over HTTP.
type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes mounts the roster endpoints on the given group.
func (h *Handler) RegisterRoutes(g *echo.Group) {
	g.GET("/doctors", h.listDoctors)
	g.POST("/doctors", h.createDoctor)
	g.GET("/doctors/:id", h.getDoctor)
	g.PATCH("/doctors/:id", h.updateDoctor)
	g.DELETE("/doctors/:id", h.deleteDoctor)

	g.GET("/nurses", h.listNurses)
	g.POST("/nurses", h.createNurse)
	g.GET("/nurses/:id", h.getNurse)
	g.PATCH("/nurses/:id", h.updateNurse)
	g.DELETE("/nurses/:id", h.deleteNurse)
}

func (h *Handler) listDoctors(c echo.Context) error {
	params := pagination.FromContext(c)
	page, total := pagination.Slice(h.svc.ListDoctors(), params)
	return c.JSON(http.StatusOK, pagination.NewResponse(page, total, params.Limit, params.Offset))
}

func (h *Handler) createDoctor(c echo.Context) error {
	var d Doctor
	if err := c.Bind(&d); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "malformed doctor payload")
	}
	created, err := h.svc.AddDoctor(d)
	if err != nil {
		if errors.Is(err, ErrValidation) {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		return err
	}
	return c.JSON(http.StatusCreated, created)
}

func (h *Handler) getDoctor(c echo.Context) error {
	d, err := h.svc.GetDoctor(store.ID(c.Param("id")))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "doctor not found")
		}
		return err
	}
	return c.JSON(http.StatusOK, d)
}

func (h *Handler) updateDoctor(c echo.Context) error {
	var u DoctorUpdate
	if err := c.Bind(&u); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "malformed doctor payload")
	}
	updated, err := h.svc.UpdateDoctor(store.ID(c.Param("id")), u)
	if err != nil {
		switch {
		case errors.Is(err, ErrValidation):
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		case errors.Is(err, store.ErrNotFound):
			return echo.NewHTTPError(http.StatusNotFound, "doctor not found")
		}
		return err
	}
	return c.JSON(http.StatusOK, updated)
}

func (h *Handler) deleteDoctor(c echo.Context) error {
	if err := h.svc.DeleteDoctor(store.ID(c.Param("id"))); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "doctor not found")
		}
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) listNurses(c echo.Context) error {
	params := pagination.FromContext(c)
	page, total := pagination.Slice(h.svc.ListNurses(), params)
	return c.JSON(http.StatusOK, pagination.NewResponse(page, total, params.Limit, params.Offset))
}

func (h *Handler) createNurse(c echo.Context) error {
	var n Nurse
	if err := c.Bind(&n); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "malformed nurse payload")
	}
	created, err := h.svc.AddNurse(n)
	if err != nil {
		if errors.Is(err, ErrValidation) {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		return err
	}
	return c.JSON(http.StatusCreated, created)
}

func (h *Handler) getNurse(c echo.Context) error {
	n, err := h.svc.GetNurse(store.ID(c.Param("id")))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "nurse not found")
		}
		return err
	}
	return c.JSON(http.StatusOK, n)
}

func (h *Handler) updateNurse(c echo.Context) error {
	var u NurseUpdate
	if err := c.Bind(&u); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "malformed nurse payload")
	}
	updated, err := h.svc.UpdateNurse(store.ID(c.Param("id")), u)
	if err != nil {
		switch {
		case errors.Is(err, ErrValidation):
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		case errors.Is(err, store.ErrNotFound):
			return echo.NewHTTPError(http.StatusNotFound, "nurse not found")
		}
		return err
	}
	return c.JSON(http.StatusOK, updated)
}

func (h *Handler) deleteNurse(c echo.Context) error {
	if err := h.svc.DeleteNurse(store.ID(c.Param("id"))); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "nurse not found")
		}
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
