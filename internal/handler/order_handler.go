package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/modi-mansi/ecommerce/internal/usecase"
)

// /orders のHTTP
type OrderHandler struct {
	uc *usecase.OrderUsecase
}

// DI
func NewOrderHandler(uc *usecase.OrderUsecase) *OrderHandler {
	return &OrderHandler{uc: uc}
}

type OrderCustomerRequest struct {
	CustomerID      string `json:"customerId" validate:"required"`
	CustomerName    string `json:"customerName" validate:"max=255"`
	CustomerEmail   string `json:"customerEmail" validate:"omitempty,email"`
	ShippingAddress string `json:"shippingAddress" validate:"required"`
}

type OrderLineRequest struct {
	ProductID string `json:"productId" validate:"required"`
	Quantity  int64  `json:"quantity" validate:"gte=1"`
}

// {order:{...}, items:[...]}
type CreateOrderRequest struct {
	Order     OrderCustomerRequest `json:"order"`
	Items     []OrderLineRequest   `json:"items" validate:"required,min=1,dive"`
	ClearCart bool                 `json:"clearCart"`
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// /orders 系を登録
func (h *OrderHandler) RegisterRoutes(r Router) {
	r.GET("/orders", h.list)
	r.GET("/orders/number/:orderNumber", h.byNumber)
	r.GET("/orders/:id", h.detail)
	r.POST("/orders", h.create)
	r.PUT("/orders/:id/status", h.updateStatus)
	r.POST("/orders/:id/cancel", h.cancel)
}

func (h *OrderHandler) list(c echo.Context) error {
	out, err := h.uc.List(c.Request().Context(), usecase.OrderListFilter{
		Status:     c.QueryParam("status"),
		CustomerID: c.QueryParam("customerId"),
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *OrderHandler) detail(c echo.Context) error {
	out, err := h.uc.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *OrderHandler) byNumber(c echo.Context) error {
	out, err := h.uc.GetByNumber(c.Request().Context(), c.Param("orderNumber"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *OrderHandler) create(c echo.Context) error {
	var req CreateOrderRequest
	if err := bindAndValidate(c, &req); err != nil {
		return writeError(c, err)
	}

	lines := make([]usecase.OrderLineInput, 0, len(req.Items))
	for _, it := range req.Items {
		lines = append(lines, usecase.OrderLineInput{ProductID: it.ProductID, Quantity: it.Quantity})
	}

	out, err := h.uc.PlaceOrder(c.Request().Context(), usecase.PlaceOrderInput{
		CustomerID:      req.Order.CustomerID,
		CustomerName:    req.Order.CustomerName,
		CustomerEmail:   req.Order.CustomerEmail,
		ShippingAddress: req.Order.ShippingAddress,
		Items:           lines,
		ClearCart:       req.ClearCart,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, out)
}

func (h *OrderHandler) updateStatus(c echo.Context) error {
	var req UpdateOrderStatusRequest
	if err := bindAndValidate(c, &req); err != nil {
		return writeError(c, err)
	}

	out, err := h.uc.UpdateStatus(c.Request().Context(), c.Param("id"), req.Status)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *OrderHandler) cancel(c echo.Context) error {
	out, err := h.uc.Cancel(c.Request().Context(), c.Param("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}
