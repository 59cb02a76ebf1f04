package usecase

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/modi-mansi/ecommerce/internal/domain/model"
)

// 金額は小数2桁の文字列で返す（"300.00"）
func money(d decimal.Decimal) string {
	return d.StringFixed(2)
}

func nullMoney(d decimal.NullDecimal, places int32) *string {
	if !d.Valid {
		return nil
	}
	s := d.Decimal.StringFixed(places)
	return &s
}

type ProductOutput struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Description   string    `json:"description"`
	SKU           string    `json:"sku"`
	Category      string    `json:"category"`
	ImageURL      string    `json:"imageUrl"`
	Price         string    `json:"price"`
	OriginalPrice *string   `json:"originalPrice"`
	StockQuantity int64     `json:"stockQuantity"`
	Rating        *string   `json:"rating"`
	IsActive      bool      `json:"isActive"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

func toProductOutput(p model.Product) ProductOutput {
	return ProductOutput{
		ID:            p.ID,
		Name:          p.Name,
		Description:   p.Description,
		SKU:           p.SKU,
		Category:      p.Category,
		ImageURL:      p.ImageURL,
		Price:         money(p.Price),
		OriginalPrice: nullMoney(p.OriginalPrice, 2),
		StockQuantity: p.StockQuantity,
		Rating:        nullMoney(p.Rating, 1),
		IsActive:      p.IsActive,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}

func toProductOutputs(ps []model.Product) []ProductOutput {
	out := make([]ProductOutput, 0, len(ps))
	for _, p := range ps {
		out = append(out, toProductOutput(p))
	}
	return out
}

// 在庫フラグ付き（low-stock一覧用）
type StockProductOutput struct {
	ProductOutput
	LowStock   bool `json:"lowStock"`
	OutOfStock bool `json:"outOfStock"`
}

type OrderItemOutput struct {
	ID          string `json:"id"`
	OrderID     string `json:"orderId"`
	ProductID   string `json:"productId"`
	ProductName string `json:"productName"`
	ProductSKU  string `json:"productSku"`
	UnitPrice   string `json:"unitPrice"`
	Quantity    int64  `json:"quantity"`
	TotalPrice  string `json:"totalPrice"`
}

type OrderOutput struct {
	ID              string            `json:"id"`
	OrderNumber     string            `json:"orderNumber"`
	CustomerID      string            `json:"customerId"`
	CustomerName    string            `json:"customerName"`
	CustomerEmail   string            `json:"customerEmail"`
	Status          string            `json:"status"`
	TotalAmount     string            `json:"totalAmount"`
	ShippingAddress string            `json:"shippingAddress"`
	CreatedAt       time.Time         `json:"createdAt"`
	UpdatedAt       time.Time         `json:"updatedAt"`
	Items           []OrderItemOutput `json:"items"`
}

func toOrderOutput(o model.Order, items []model.OrderItem) OrderOutput {
	outItems := make([]OrderItemOutput, 0, len(items))
	for _, it := range items {
		outItems = append(outItems, OrderItemOutput{
			ID:          it.ID,
			OrderID:     it.OrderID,
			ProductID:   it.ProductID,
			ProductName: it.ProductName,
			ProductSKU:  it.ProductSKU,
			UnitPrice:   money(it.UnitPrice),
			Quantity:    it.Quantity,
			TotalPrice:  money(it.TotalPrice),
		})
	}

	return OrderOutput{
		ID:              o.ID,
		OrderNumber:     o.OrderNumber,
		CustomerID:      o.CustomerID,
		CustomerName:    o.CustomerName,
		CustomerEmail:   o.CustomerEmail,
		Status:          string(o.Status),
		TotalAmount:     money(o.TotalAmount),
		ShippingAddress: o.ShippingAddress,
		CreatedAt:       o.CreatedAt,
		UpdatedAt:       o.UpdatedAt,
		Items:           outItems,
	}
}

type CartItemOutput struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	ProductID string    `json:"productId"`
	Quantity  int64     `json:"quantity"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func toCartItemOutput(ci model.CartItem) CartItemOutput {
	return CartItemOutput{
		ID:        ci.ID,
		UserID:    ci.UserID,
		ProductID: ci.ProductID,
		Quantity:  ci.Quantity,
		CreatedAt: ci.CreatedAt,
		UpdatedAt: ci.UpdatedAt,
	}
}

// カート明細＋現在の商品（価格は読み出し時点のもの）
type CartLineOutput struct {
	CartItemOutput
	Product  ProductOutput `json:"product"`
	Subtotal string        `json:"subtotal"`
}

type CartOutput struct {
	Items []CartLineOutput
	Total string
}

type UserOutput struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

func toUserOutput(u model.User) UserOutput {
	return UserOutput{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Role:      string(u.Role),
		CreatedAt: u.CreatedAt,
	}
}
