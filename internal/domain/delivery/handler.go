package delivery

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ancare/ancare/internal/platform/store"
	"github.com/ancare/ancare/pkg/pagination"
)

// Handler exposes completed delivery records and the linker workflow
// over HTTP.
type Handler struct {
	svc    *Service
	linker *Linker
}

func NewHandler(svc *Service, linker *Linker) *Handler {
	return &Handler{svc: svc, linker: linker}
}

// RegisterRoutes mounts the delivery endpoints on the given group.
func (h *Handler) RegisterRoutes(g *echo.Group) {
	g.GET("/deliveries", h.list)
	g.GET("/deliveries/:id", h.get)
	g.DELETE("/deliveries/:id", h.delete)

	g.POST("/deliveries/sessions", h.startSession)
	g.GET("/deliveries/sessions/:sid", h.getSession)
	g.POST("/deliveries/sessions/:sid/lookup", h.lookup)
	g.POST("/deliveries/sessions/:sid/details", h.submit)
	g.POST("/deliveries/sessions/:sid/back", h.back)
	g.DELETE("/deliveries/sessions/:sid", h.cancel)
}

func (h *Handler) list(c echo.Context) error {
	params := pagination.FromContext(c)
	all := h.svc.List()
	if pid := c.QueryParam("patient_id"); pid != "" {
		all = h.svc.ListForPatient(store.ID(pid))
	}
	page, total := pagination.Slice(all, params)
	return c.JSON(http.StatusOK, pagination.NewResponse(page, total, params.Limit, params.Offset))
}

func (h *Handler) get(c echo.Context) error {
	r, err := h.svc.Get(store.ID(c.Param("id")))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "delivery record not found")
		}
		return err
	}
	return c.JSON(http.StatusOK, r)
}

func (h *Handler) delete(c echo.Context) error {
	if err := h.svc.Delete(store.ID(c.Param("id"))); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "delivery record not found")
		}
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) startSession(c echo.Context) error {
	return c.JSON(http.StatusCreated, h.linker.Start())
}

func (h *Handler) getSession(c echo.Context) error {
	s, err := h.linker.Get(c.Param("sid"))
	if err != nil {
		return sessionError(err)
	}
	return c.JSON(http.StatusOK, s)
}

type lookupRequest struct {
	FileNumber string `json:"file_number"`
}

func (h *Handler) lookup(c echo.Context) error {
	var req lookupRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "malformed lookup payload")
	}
	if req.FileNumber == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "file_number is required")
	}
	s, err := h.linker.Lookup(c.Param("sid"), req.FileNumber)
	if err != nil {
		return sessionError(err)
	}
	return c.JSON(http.StatusOK, s)
}

func (h *Handler) submit(c echo.Context) error {
	var d Details
	if err := c.Bind(&d); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "malformed details payload")
	}
	rec, err := h.linker.Submit(c.Param("sid"), d)
	if err != nil {
		return sessionError(err)
	}
	return c.JSON(http.StatusCreated, rec)
}

func (h *Handler) back(c echo.Context) error {
	s, err := h.linker.Back(c.Param("sid"))
	if err != nil {
		return sessionError(err)
	}
	return c.JSON(http.StatusOK, s)
}

func (h *Handler) cancel(c echo.Context) error {
	if err := h.linker.Cancel(c.Param("sid")); err != nil {
		return sessionError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

// sessionError maps linker errors onto HTTP statuses: a lookup miss is a
// 422 so clients can tell it apart from a dead session (404) or a
// wrong-step call (409).
func sessionError(err error) error {
	switch {
	case errors.Is(err, ErrSessionNotFound):
		return echo.NewHTTPError(http.StatusNotFound, "delivery session not found or expired")
	case errors.Is(err, ErrPatientNotFound):
		return echo.NewHTTPError(http.StatusUnprocessableEntity, "no patient with that file number")
	case errors.Is(err, ErrInvalidState):
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	case errors.Is(err, ErrValidation):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return err
}
