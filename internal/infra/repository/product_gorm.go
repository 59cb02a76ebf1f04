package repository

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/modi-mansi/ecommerce/internal/domain/model"
	repo "github.com/modi-mansi/ecommerce/internal/repository"
)

type ProductGormRepository struct {
	db *gorm.DB
}

// DI
// 検索語の % と _ を文字として扱う
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func NewProductGormRepository(db *gorm.DB) *ProductGormRepository {
	return &ProductGormRepository{db: db}
}

// 条件はすべてAND。並びは登録順。
func (r *ProductGormRepository) List(ctx context.Context, f repo.ProductFilter) ([]model.Product, error) {
	var products []model.Product

	tx := r.db.WithContext(ctx).Model(&model.Product{})

	if f.ActiveOnly {
		tx = tx.Where("is_active = ?", true)
	}
	if f.Category != "" {
		tx = tx.Where("category = ?", f.Category)
	}
	if q := strings.TrimSpace(f.Search); q != "" {
		like := "%" + likeEscaper.Replace(q) + "%"
		tx = tx.Where(`(name ILIKE ? ESCAPE '\' OR description ILIKE ? ESCAPE '\' OR category ILIKE ? ESCAPE '\')`, like, like, like)
	}
	if f.InStock {
		tx = tx.Where("stock_quantity > 0")
	}
	if f.MaxStock != nil {
		tx = tx.Where("stock_quantity <= ?", *f.MaxStock)
	}

	if err := tx.Order("created_at asc").Order("id asc").Find(&products).Error; err != nil {
		return []model.Product{}, errors.Wrap(err, "list products")
	}
	return products, nil
}

// IDで商品を取得
func (r *ProductGormRepository) FindByID(ctx context.Context, id string) (model.Product, error) {
	if !isUUID(id) {
		return model.Product{}, repo.ErrNotFound
	}
	var p model.Product
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&p).Error
	if isNotFound(err) {
		return model.Product{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Product{}, errors.Wrap(err, "find product")
	}
	return p, nil
}

func (r *ProductGormRepository) FindBySKU(ctx context.Context, sku string) (model.Product, error) {
	var p model.Product
	err := r.db.WithContext(ctx).Where("sku = ?", sku).First(&p).Error
	if isNotFound(err) {
		return model.Product{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Product{}, errors.Wrap(err, "find product by sku")
	}
	return p, nil
}

// 商品の作成
func (r *ProductGormRepository) Create(ctx context.Context, p model.Product) (model.Product, error) {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if err := r.db.WithContext(ctx).Create(&p).Error; err != nil {
		if isDuplicate(err) {
			return model.Product{}, repo.ErrDuplicate
		}
		return model.Product{}, errors.Wrap(err, "create product")
	}
	return p, nil
}

// 商品の更新（在庫以外も含めて全項目）
func (r *ProductGormRepository) Update(ctx context.Context, p model.Product) error {
	res := r.db.WithContext(ctx).Model(&model.Product{}).Where("id = ?", p.ID).Updates(map[string]interface{}{
		"name":           p.Name,
		"description":    p.Description,
		"sku":            p.SKU,
		"category":       p.Category,
		"image_url":      p.ImageURL,
		"price":          p.Price,
		"original_price": p.OriginalPrice,
		"stock_quantity": p.StockQuantity,
		"rating":         p.Rating,
		"is_active":      p.IsActive,
	})
	if res.Error != nil {
		if isDuplicate(res.Error) {
			return repo.ErrDuplicate
		}
		return errors.Wrap(res.Error, "update product")
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

// 在庫の現在値を設定
func (r *ProductGormRepository) SetStock(ctx context.Context, id string, qty int64) error {
	res := r.db.WithContext(ctx).
		Model(&model.Product{}).
		Where("id = ?", id).
		Update("stock_quantity", qty)

	if res.Error != nil {
		return errors.Wrap(res.Error, "set stock")
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

// 在庫が足りるときだけ減らす
func (r *ProductGormRepository) DecreaseStockIfEnough(ctx context.Context, id string, qty int64) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&model.Product{}).
		Where("id = ? AND stock_quantity >= ?", id, qty).
		Update("stock_quantity", gorm.Expr("stock_quantity - ?", qty))

	if res.Error != nil {
		return false, errors.Wrap(res.Error, "decrease stock")
	}
	if res.RowsAffected == 0 {
		//足りないのか存在しないのかを区別する
		if _, err := r.FindByID(ctx, id); err != nil {
			return false, err
		}
		return false, nil
	}
	return true, nil
}

// 在庫戻し（キャンセル）
func (r *ProductGormRepository) IncreaseStock(ctx context.Context, id string, qty int64) error {
	res := r.db.WithContext(ctx).
		Model(&model.Product{}).
		Where("id = ?", id).
		Update("stock_quantity", gorm.Expr("stock_quantity + ?", qty))

	if res.Error != nil {
		return errors.Wrap(res.Error, "increase stock")
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}
