package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/modi-mansi/ecommerce/internal/usecase"
)

// /analytics のHTTP
type AnalyticsHandler struct {
	uc *usecase.MetricsUsecase
}

// DI
func NewAnalyticsHandler(uc *usecase.MetricsUsecase) *AnalyticsHandler {
	return &AnalyticsHandler{uc: uc}
}

func (h *AnalyticsHandler) RegisterRoutes(r Router) {
	r.GET("/analytics/metrics", h.metrics)
}

func (h *AnalyticsHandler) metrics(c echo.Context) error {
	out, err := h.uc.Dashboard(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}
