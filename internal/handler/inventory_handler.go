package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/modi-mansi/ecommerce/internal/usecase"
)

// /inventory のHTTP（在庫履歴の参照のみ）
type InventoryHandler struct {
	uc *usecase.InventoryUsecase
}

// DI
func NewInventoryHandler(uc *usecase.InventoryUsecase) *InventoryHandler {
	return &InventoryHandler{uc: uc}
}

func (h *InventoryHandler) RegisterRoutes(r Router) {
	r.GET("/inventory/transactions", h.transactions)
}

func (h *InventoryHandler) transactions(c echo.Context) error {
	out, err := h.uc.ListTransactions(c.Request().Context(), c.QueryParam("productId"), c.QueryParam("orderId"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}
