package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/modi-mansi/ecommerce/internal/usecase"
)

// /products のHTTP（一覧・検索と管理系の作成/更新/在庫）
type ProductHandler struct {
	catalog  *usecase.CatalogUsecase
	products *usecase.ProductUsecase
}

// DI
func NewProductHandler(catalog *usecase.CatalogUsecase, products *usecase.ProductUsecase) *ProductHandler {
	return &ProductHandler{catalog: catalog, products: products}
}

type CreateProductRequest struct {
	Name          string              `json:"name" validate:"required,max=255"`
	Description   string              `json:"description"`
	SKU           string              `json:"sku" validate:"required,max=100"`
	Category      string              `json:"category" validate:"required,max=100"`
	ImageURL      string              `json:"imageUrl" validate:"omitempty,max=500"`
	Price         *decimal.Decimal    `json:"price" validate:"required"`
	OriginalPrice decimal.NullDecimal `json:"originalPrice"`
	StockQuantity int64               `json:"stockQuantity" validate:"gte=0"`
	Rating        decimal.NullDecimal `json:"rating"`
	IsActive      *bool               `json:"isActive"`
}

// 送られた項目だけ更新
type UpdateProductRequest struct {
	Name          *string          `json:"name" validate:"omitempty,max=255"`
	Description   *string          `json:"description"`
	SKU           *string          `json:"sku" validate:"omitempty,max=100"`
	Category      *string          `json:"category" validate:"omitempty,max=100"`
	ImageURL      *string          `json:"imageUrl" validate:"omitempty,max=500"`
	Price         *decimal.Decimal `json:"price"`
	OriginalPrice *decimal.Decimal `json:"originalPrice"`
	StockQuantity *int64           `json:"stockQuantity" validate:"omitempty,gte=0"`
	Rating        *decimal.Decimal `json:"rating"`
	IsActive      *bool            `json:"isActive"`
}

type SetStockRequest struct {
	Quantity *int64 `json:"quantity" validate:"required,gte=0"`
	Reason   string `json:"reason" validate:"max=255"`
}

// /products, /products/low-stock, /products/:id を登録
func (h *ProductHandler) RegisterRoutes(r Router) {
	r.GET("/products", h.list)
	r.GET("/products/low-stock", h.lowStock)
	r.GET("/products/:id", h.detail)
	r.POST("/products", h.create)
	r.PUT("/products/:id", h.update)
	r.PUT("/products/:id/stock", h.setStock)
}

func (h *ProductHandler) list(c echo.Context) error {
	out, err := h.catalog.List(c.Request().Context(), usecase.CatalogFilter{
		Category: c.QueryParam("category"),
		Search:   c.QueryParam("search"),
		InStock:  c.QueryParam("inStock") == "true",
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *ProductHandler) lowStock(c echo.Context) error {
	// 数値でなければ既定値
	var threshold int64
	if v := c.QueryParam("threshold"); v != "" {
		if t, err := strconv.ParseInt(v, 10, 64); err == nil {
			threshold = t
		}
	}

	out, err := h.catalog.LowStock(c.Request().Context(), threshold)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *ProductHandler) detail(c echo.Context) error {
	p, err := h.catalog.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, p)
}

func (h *ProductHandler) create(c echo.Context) error {
	var req CreateProductRequest
	if err := bindAndValidate(c, &req); err != nil {
		return writeError(c, err)
	}

	out, err := h.products.Create(c.Request().Context(), usecase.CreateProductInput{
		Name:          req.Name,
		Description:   req.Description,
		SKU:           req.SKU,
		Category:      req.Category,
		ImageURL:      req.ImageURL,
		Price:         *req.Price,
		OriginalPrice: req.OriginalPrice,
		StockQuantity: req.StockQuantity,
		Rating:        req.Rating,
		IsActive:      req.IsActive,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, out)
}

func (h *ProductHandler) update(c echo.Context) error {
	var req UpdateProductRequest
	if err := bindAndValidate(c, &req); err != nil {
		return writeError(c, err)
	}

	out, err := h.products.Update(c.Request().Context(), c.Param("id"), usecase.ProductPatch{
		Name:          req.Name,
		Description:   req.Description,
		SKU:           req.SKU,
		Category:      req.Category,
		ImageURL:      req.ImageURL,
		Price:         req.Price,
		OriginalPrice: req.OriginalPrice,
		StockQuantity: req.StockQuantity,
		Rating:        req.Rating,
		IsActive:      req.IsActive,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *ProductHandler) setStock(c echo.Context) error {
	var req SetStockRequest
	if err := bindAndValidate(c, &req); err != nil {
		return writeError(c, err)
	}

	out, err := h.products.SetStock(c.Request().Context(), c.Param("id"), *req.Quantity, req.Reason)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}
