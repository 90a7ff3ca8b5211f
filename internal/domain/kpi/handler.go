package kpi

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Handler exposes the dashboard summary over HTTP.
type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(g *echo.Group) {
	g.GET("/kpi/summary", h.summary)
}

func (h *Handler) summary(c echo.Context) error {
	return c.JSON(http.StatusOK, h.svc.Summarize())
}
