package usecase

import (
	"context"
	"log/slog"
	"strings"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"github.com/modi-mansi/ecommerce/internal/domain/model"
	repo "github.com/modi-mansi/ecommerce/internal/repository"
)

var maxRating = decimal.NewFromInt(5)

// 価格は numeric(10,2)、合計は numeric(20,2) に収まる範囲
var (
	maxPrice       = decimal.RequireFromString("99999999.99")
	maxOrderAmount = decimal.RequireFromString("999999999999999999.99")
)

// ProductUsecase は管理画面からの商品作成・更新・在庫設定。
type ProductUsecase struct {
	tx     repo.TransactionManager
	logger *slog.Logger
}

// DI
func NewProductUsecase(tx repo.TransactionManager, logger *slog.Logger) *ProductUsecase {
	return &ProductUsecase{tx: tx, logger: logger}
}

type CreateProductInput struct {
	Name          string
	Description   string
	SKU           string
	Category      string
	ImageURL      string
	Price         decimal.Decimal
	OriginalPrice decimal.NullDecimal
	StockQuantity int64
	Rating        decimal.NullDecimal
	//未指定なら公開
	IsActive *bool
}

// 部分更新。nilの項目は変更しない
type ProductPatch struct {
	Name          *string
	Description   *string
	SKU           *string
	Category      *string
	ImageURL      *string
	Price         *decimal.Decimal
	OriginalPrice *decimal.Decimal
	StockQuantity *int64
	Rating        *decimal.Decimal
	IsActive      *bool
}

func (u *ProductUsecase) Create(ctx context.Context, in CreateProductInput) (ProductOutput, error) {
	var fe fieldErrors
	if strings.TrimSpace(in.Name) == "" {
		fe.add("name", "name required")
	}
	if strings.TrimSpace(in.SKU) == "" {
		fe.add("sku", "sku required")
	}
	if strings.TrimSpace(in.Category) == "" {
		fe.add("category", "category required")
	}
	if !validPrice(in.Price) {
		fe.add("price", "price must be between 0 and 99999999.99")
	}
	if in.OriginalPrice.Valid && !validPrice(in.OriginalPrice.Decimal) {
		fe.add("originalPrice", "originalPrice must be between 0 and 99999999.99")
	}
	if in.StockQuantity < 0 {
		fe.add("stockQuantity", "stockQuantity must be >= 0")
	}
	if in.Rating.Valid && !validRating(in.Rating.Decimal) {
		fe.add("rating", "rating must be between 0 and 5")
	}
	if err := fe.err("Invalid product data"); err != nil {
		return ProductOutput{}, err
	}

	active := true
	if in.IsActive != nil {
		active = *in.IsActive
	}

	p := model.Product{
		Name:          strings.TrimSpace(in.Name),
		Description:   in.Description,
		SKU:           strings.TrimSpace(in.SKU),
		Category:      strings.TrimSpace(in.Category),
		ImageURL:      in.ImageURL,
		Price:         in.Price.Round(2),
		OriginalPrice: roundNull(in.OriginalPrice, 2),
		StockQuantity: in.StockQuantity,
		Rating:        roundNull(in.Rating, 1),
		IsActive:      active,
	}

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		created, err := r.Products().Create(ctx, p)
		if errors.Is(err, repo.ErrDuplicate) {
			return conflict("Product with this SKU already exists")
		}
		if err != nil {
			return internal("create product", err)
		}
		p = created

		//初期在庫は入荷として履歴に残す
		if p.StockQuantity > 0 {
			if _, err := r.Inventory().CreateTransaction(ctx, model.InventoryTransaction{
				ProductID: p.ID,
				Type:      model.InventoryTxRestock,
				Delta:     p.StockQuantity,
				Reason:    "initial stock",
			}); err != nil {
				return internal("record initial stock", err)
			}
		}
		return nil
	})
	if err != nil {
		return ProductOutput{}, err
	}

	u.logger.InfoContext(ctx, "product created", slog.String("product_id", p.ID), slog.String("sku", p.SKU))
	return toProductOutput(p), nil
}

func (u *ProductUsecase) Update(ctx context.Context, productID string, in ProductPatch) (ProductOutput, error) {
	var fe fieldErrors
	if in.Name != nil && strings.TrimSpace(*in.Name) == "" {
		fe.add("name", "name must not be empty")
	}
	if in.SKU != nil && strings.TrimSpace(*in.SKU) == "" {
		fe.add("sku", "sku must not be empty")
	}
	if in.Category != nil && strings.TrimSpace(*in.Category) == "" {
		fe.add("category", "category must not be empty")
	}
	if in.Price != nil && !validPrice(*in.Price) {
		fe.add("price", "price must be between 0 and 99999999.99")
	}
	if in.OriginalPrice != nil && !validPrice(*in.OriginalPrice) {
		fe.add("originalPrice", "originalPrice must be between 0 and 99999999.99")
	}
	if in.StockQuantity != nil && *in.StockQuantity < 0 {
		fe.add("stockQuantity", "stockQuantity must be >= 0")
	}
	if in.Rating != nil && !validRating(*in.Rating) {
		fe.add("rating", "rating must be between 0 and 5")
	}
	if err := fe.err("Invalid product data"); err != nil {
		return ProductOutput{}, err
	}

	var out model.Product
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		p, err := r.Products().FindByID(ctx, productID)
		if errors.Is(err, repo.ErrNotFound) {
			return notFound("Product not found")
		}
		if err != nil {
			return internal("find product", err)
		}

		before := p.StockQuantity
		in.apply(&p)

		if err := r.Products().Update(ctx, p); err != nil {
			if errors.Is(err, repo.ErrDuplicate) {
				return conflict("Product with this SKU already exists")
			}
			if errors.Is(err, repo.ErrNotFound) {
				return notFound("Product not found")
			}
			return internal("update product", err)
		}

		if delta := p.StockQuantity - before; delta != 0 {
			if err := recordAdjustment(ctx, r, p.ID, delta, "product update"); err != nil {
				return err
			}
		}

		out, err = r.Products().FindByID(ctx, productID)
		if err != nil {
			return internal("reload product", err)
		}
		return nil
	})
	if err != nil {
		return ProductOutput{}, err
	}
	return toProductOutput(out), nil
}

// 在庫を「現在値」に更新し、差分を調整履歴に残す
func (u *ProductUsecase) SetStock(ctx context.Context, productID string, qty int64, reason string) (ProductOutput, error) {
	if qty < 0 {
		return ProductOutput{}, invalid("Invalid quantity", FieldError{Field: "quantity", Message: "quantity must be >= 0"})
	}
	reason = strings.TrimSpace(reason)
	if reason == "" {
		reason = "manual adjustment"
	}

	var out model.Product
	var delta int64
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		//変更前の在庫
		p, err := r.Products().FindByID(ctx, productID)
		if errors.Is(err, repo.ErrNotFound) {
			return notFound("Product not found")
		}
		if err != nil {
			return internal("find product", err)
		}

		if err := r.Products().SetStock(ctx, productID, qty); err != nil {
			return internal("set stock", err)
		}

		delta = qty - p.StockQuantity
		if delta != 0 {
			if err := recordAdjustment(ctx, r, productID, delta, reason); err != nil {
				return err
			}
		}

		out, err = r.Products().FindByID(ctx, productID)
		if err != nil {
			return internal("reload product", err)
		}
		return nil
	})
	if err != nil {
		return ProductOutput{}, err
	}

	u.logger.InfoContext(ctx, "stock adjusted",
		slog.String("product_id", productID),
		slog.Int64("stock", qty),
		slog.Int64("delta", delta),
	)
	return toProductOutput(out), nil
}

func (in ProductPatch) apply(p *model.Product) {
	if in.Name != nil {
		p.Name = strings.TrimSpace(*in.Name)
	}
	if in.Description != nil {
		p.Description = *in.Description
	}
	if in.SKU != nil {
		p.SKU = strings.TrimSpace(*in.SKU)
	}
	if in.Category != nil {
		p.Category = strings.TrimSpace(*in.Category)
	}
	if in.ImageURL != nil {
		p.ImageURL = *in.ImageURL
	}
	if in.Price != nil {
		p.Price = in.Price.Round(2)
	}
	if in.OriginalPrice != nil {
		p.OriginalPrice = decimal.NewNullDecimal(in.OriginalPrice.Round(2))
	}
	if in.StockQuantity != nil {
		p.StockQuantity = *in.StockQuantity
	}
	if in.Rating != nil {
		p.Rating = decimal.NewNullDecimal(in.Rating.Round(1))
	}
	if in.IsActive != nil {
		p.IsActive = *in.IsActive
	}
}

func recordAdjustment(ctx context.Context, r repo.TxRepos, productID string, delta int64, reason string) error {
	_, err := r.Inventory().CreateTransaction(ctx, model.InventoryTransaction{
		ProductID: productID,
		Type:      model.InventoryTxAdjustment,
		Delta:     delta,
		Reason:    reason,
	})
	if err != nil {
		return internal("record adjustment", err)
	}
	return nil
}

func validPrice(d decimal.Decimal) bool {
	return !d.IsNegative() && d.Round(2).LessThanOrEqual(maxPrice)
}

func validRating(d decimal.Decimal) bool {
	return !d.IsNegative() && d.LessThanOrEqual(maxRating)
}

func roundNull(d decimal.NullDecimal, places int32) decimal.NullDecimal {
	if !d.Valid {
		return d
	}
	return decimal.NewNullDecimal(d.Decimal.Round(places))
}
