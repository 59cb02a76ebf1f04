package usecase

import (
	"context"
	"strings"

	"github.com/pkg/errors"

	"github.com/modi-mansi/ecommerce/internal/domain/model"
	repo "github.com/modi-mansi/ecommerce/internal/repository"
)

// 在庫少なめの既定しきい値
const DefaultLowStockThreshold int64 = 10

// CatalogUsecase は商品一覧の読み取り専用クエリ。公開中の商品だけを返す。
type CatalogUsecase struct {
	products  repo.ProductRepository
	threshold int64
}

// DI
func NewCatalogUsecase(products repo.ProductRepository, lowStockThreshold int64) *CatalogUsecase {
	if lowStockThreshold <= 0 {
		lowStockThreshold = DefaultLowStockThreshold
	}
	return &CatalogUsecase{products: products, threshold: lowStockThreshold}
}

// GET /products の条件。指定されたものはすべてANDで効く
type CatalogFilter struct {
	Category string
	Search   string
	InStock  bool
}

func (u *CatalogUsecase) List(ctx context.Context, f CatalogFilter) ([]ProductOutput, error) {
	return u.list(ctx, repo.ProductFilter{
		ActiveOnly: true,
		Category:   f.Category,
		Search:     strings.TrimSpace(f.Search),
		InStock:    f.InStock,
	})
}

func (u *CatalogUsecase) ListActive(ctx context.Context) ([]ProductOutput, error) {
	return u.list(ctx, repo.ProductFilter{ActiveOnly: true})
}

// カテゴリ完全一致（大文字小文字を区別）
func (u *CatalogUsecase) ByCategory(ctx context.Context, category string) ([]ProductOutput, error) {
	return u.list(ctx, repo.ProductFilter{ActiveOnly: true, Category: category})
}

// name / description / category の部分一致
func (u *CatalogUsecase) Search(ctx context.Context, text string) ([]ProductOutput, error) {
	return u.list(ctx, repo.ProductFilter{ActiveOnly: true, Search: strings.TrimSpace(text)})
}

// 在庫がしきい値以下の公開商品。threshold<=0なら既定値
func (u *CatalogUsecase) LowStock(ctx context.Context, threshold int64) ([]StockProductOutput, error) {
	if threshold <= 0 {
		threshold = u.threshold
	}

	ps, err := u.products.List(ctx, repo.ProductFilter{ActiveOnly: true, MaxStock: &threshold})
	if err != nil {
		return []StockProductOutput{}, internal("list low stock products", err)
	}

	out := make([]StockProductOutput, 0, len(ps))
	for _, p := range ps {
		out = append(out, StockProductOutput{
			ProductOutput: toProductOutput(p),
			LowStock:      p.IsLowStock(threshold),
			OutOfStock:    p.IsOutOfStock(),
		})
	}
	return out, nil
}

// 既定しきい値での件数（ダッシュボード用）
func (u *CatalogUsecase) LowStockCount(ctx context.Context) (int, error) {
	ps, err := u.LowStock(ctx, u.threshold)
	if err != nil {
		return 0, err
	}
	return len(ps), nil
}

// 商品詳細は非公開でも返す（管理画面から使う）
func (u *CatalogUsecase) Get(ctx context.Context, id string) (ProductOutput, error) {
	p, err := u.find(ctx, id)
	if err != nil {
		return ProductOutput{}, err
	}
	return toProductOutput(p), nil
}

func (u *CatalogUsecase) find(ctx context.Context, id string) (model.Product, error) {
	p, err := u.products.FindByID(ctx, id)
	if errors.Is(err, repo.ErrNotFound) {
		return model.Product{}, notFound("Product not found")
	}
	if err != nil {
		return model.Product{}, internal("find product", err)
	}
	return p, nil
}

func (u *CatalogUsecase) list(ctx context.Context, f repo.ProductFilter) ([]ProductOutput, error) {
	ps, err := u.products.List(ctx, f)
	if err != nil {
		return []ProductOutput{}, internal("list products", err)
	}
	return toProductOutputs(ps), nil
}
