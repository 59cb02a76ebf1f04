package seed

import (
	"context"
	"log/slog"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"github.com/modi-mansi/ecommerce/internal/usecase"
)

func price(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func optional(s string) decimal.NullDecimal {
	return decimal.NewNullDecimal(decimal.RequireFromString(s))
}

// 初期データ（商品4件・ユーザー2件）
var sampleProducts = []usecase.CreateProductInput{
	{
		Name:          "Premium Wireless Headphones",
		Description:   "High-quality wireless headphones with active noise cancellation and 30-hour battery life.",
		SKU:           "HP-001",
		Category:      "Electronics",
		ImageURL:      "https://images.unsplash.com/photo-1505740420928-5e560c06d30e?w=400&h=300",
		Price:         price("299.99"),
		OriginalPrice: optional("399.99"),
		StockQuantity: 15,
		Rating:        optional("4.8"),
	},
	{
		Name:          "Professional Laptop Pro",
		Description:   "High-performance laptop with 16GB RAM, 512GB SSD, and Intel i7 processor for professional work.",
		SKU:           "LP-002",
		Category:      "Electronics",
		ImageURL:      "https://images.unsplash.com/photo-1496181133206-80ce9b88a853?w=400&h=300",
		Price:         price("1299.99"),
		StockQuantity: 8,
		Rating:        optional("4.9"),
	},
	{
		Name:          "Athletic Running Shoes",
		Description:   "Lightweight running shoes with advanced cushioning and breathable mesh upper.",
		SKU:           "SH-003",
		Category:      "Sports",
		ImageURL:      "https://images.unsplash.com/photo-1542291026-7eec264c27ff?w=400&h=300",
		Price:         price("129.99"),
		OriginalPrice: optional("159.99"),
		StockQuantity: 3,
		Rating:        optional("4.7"),
	},
	{
		Name:          "Smartphone Pro Max",
		Description:   "Latest smartphone with advanced camera system, 5G connectivity, and all-day battery life.",
		SKU:           "SP-004",
		Category:      "Electronics",
		ImageURL:      "https://images.unsplash.com/photo-1511707171634-5f897ff02aa9?w=400&h=300",
		Price:         price("899.99"),
		StockQuantity: 0,
		Rating:        optional("4.6"),
	},
}

var sampleUsers = []usecase.CreateUserInput{
	{
		Username:  "johndoe",
		Email:     "john.doe@email.com",
		Password:  "password123",
		FirstName: "John",
		LastName:  "Doe",
		Role:      "customer",
	},
	{
		Username:  "admin",
		Email:     "admin@example.com",
		Password:  "admin123",
		FirstName: "Admin",
		LastName:  "User",
		Role:      "admin",
	},
}

// Run は初期データを入れる。既にある（SKU・ユーザー名が重複する）ものは飛ばすので何度呼んでもよい
func Run(ctx context.Context, productUC *usecase.ProductUsecase, userUC *usecase.UserUsecase, logger *slog.Logger) error {
	created := 0
	for _, in := range sampleProducts {
		_, err := productUC.Create(ctx, in)
		if errors.Is(err, usecase.ErrConflict) {
			continue
		}
		if err != nil {
			return errors.Wrapf(err, "seed product %s", in.SKU)
		}
		created++
	}

	createdUsers := 0
	for _, in := range sampleUsers {
		_, err := userUC.Create(ctx, in)
		if errors.Is(err, usecase.ErrConflict) {
			continue
		}
		if err != nil {
			return errors.Wrapf(err, "seed user %s", in.Username)
		}
		createdUsers++
	}

	logger.InfoContext(ctx, "seed data loaded", slog.Int("products", created), slog.Int("users", createdUsers))
	return nil
}
