package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/modi-mansi/ecommerce/internal/usecase"
)

// 合計はヘッダで返す（本文は明細の配列）
const HeaderCartTotal = "X-Cart-Total"

// /cart のHTTP
type CartHandler struct {
	uc *usecase.CartUsecase
}

// DI
func NewCartHandler(uc *usecase.CartUsecase) *CartHandler {
	return &CartHandler{uc: uc}
}

type AddCartRequest struct {
	UserID    string `json:"userId" validate:"required"`
	ProductID string `json:"productId" validate:"required"`
	//未指定なら1
	Quantity *int64 `json:"quantity" validate:"omitempty,gte=1"`
}

type UpdateCartItemRequest struct {
	Quantity *int64 `json:"quantity" validate:"required,gte=1"`
}

// /cart, /cart/:userId, /cart/:userId/:productId を登録
func (h *CartHandler) RegisterRoutes(r Router) {
	r.GET("/cart/:userId", h.getCart)
	r.POST("/cart", h.addToCart)
	r.PUT("/cart/:userId/:productId", h.updateItem)
	r.DELETE("/cart/:userId/:productId", h.deleteItem)
	r.DELETE("/cart/:userId", h.clear)
}

func (h *CartHandler) getCart(c echo.Context) error {
	out, err := h.uc.ListWithProduct(c.Request().Context(), c.Param("userId"))
	if err != nil {
		return writeError(c, err)
	}

	c.Response().Header().Set(HeaderCartTotal, out.Total)
	return c.JSON(http.StatusOK, out.Items)
}

func (h *CartHandler) addToCart(c echo.Context) error {
	var req AddCartRequest
	if err := bindAndValidate(c, &req); err != nil {
		return writeError(c, err)
	}

	qty := int64(1)
	if req.Quantity != nil {
		qty = *req.Quantity
	}

	out, err := h.uc.AddItem(c.Request().Context(), usecase.AddCartItemInput{
		UserID:    req.UserID,
		ProductID: req.ProductID,
		Quantity:  qty,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, out)
}

func (h *CartHandler) updateItem(c echo.Context) error {
	var req UpdateCartItemRequest
	if err := bindAndValidate(c, &req); err != nil {
		return writeError(c, err)
	}

	out, err := h.uc.SetQuantity(c.Request().Context(), c.Param("userId"), c.Param("productId"), *req.Quantity)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *CartHandler) deleteItem(c echo.Context) error {
	if err := h.uc.RemoveItem(c.Request().Context(), c.Param("userId"), c.Param("productId")); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *CartHandler) clear(c echo.Context) error {
	if err := h.uc.Clear(c.Request().Context(), c.Param("userId")); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
