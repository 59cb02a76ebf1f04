package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/modi-mansi/ecommerce/internal/domain/service"
)

type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
}

type HealthHandler struct {
	clock service.Clock
}

func NewHealthHandler(clock service.Clock) *HealthHandler {
	return &HealthHandler{clock: clock}
}

func (h *HealthHandler) RegisterRoutes(r Router) {
	r.GET("/health", h.health)
}

func (h *HealthHandler) health(c echo.Context) error {
	return c.JSON(http.StatusOK, HealthResponse{
		Status:    "healthy",
		Timestamp: h.clock.Now().UTC().Format(time.RFC3339),
	})
}
