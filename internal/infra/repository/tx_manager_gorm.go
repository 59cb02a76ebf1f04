package repository

import (
	"context"

	"gorm.io/gorm"

	repo "github.com/modi-mansi/ecommerce/internal/repository"
)

type txReposGorm struct {
	orders     repo.OrderRepository
	orderItems repo.OrderItemRepository
	cartItems  repo.CartItemRepository
	inventory  repo.InventoryRepository
	products   repo.ProductRepository
	users      repo.UserRepository
}

func (r *txReposGorm) Orders() repo.OrderRepository         { return r.orders }
func (r *txReposGorm) OrderItems() repo.OrderItemRepository { return r.orderItems }
func (r *txReposGorm) CartItems() repo.CartItemRepository   { return r.cartItems }
func (r *txReposGorm) Inventory() repo.InventoryRepository  { return r.inventory }
func (r *txReposGorm) Products() repo.ProductRepository     { return r.products }
func (r *txReposGorm) Users() repo.UserRepository           { return r.users }

func newTxRepos(db *gorm.DB) *txReposGorm {
	return &txReposGorm{
		orders:     NewOrderGormRepository(db),
		orderItems: NewOrderItemGormRepository(db),
		cartItems:  NewCartItemGormRepository(db),
		inventory:  NewInventoryGormRepository(db),
		products:   NewProductGormRepository(db),
		users:      NewUserGormRepository(db),
	}
}

type TxManagerGorm struct {
	db *gorm.DB
}

func NewTxManagerGorm(db *gorm.DB) *TxManagerGorm {
	return &TxManagerGorm{db: db}
}

// Tx外から使うリポジトリ
func (tm *TxManagerGorm) Repos() repo.TxRepos {
	return newTxRepos(tm.db)
}

func (tm *TxManagerGorm) WithinTx(ctx context.Context, fn func(r repo.TxRepos) error) error {
	return tm.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		//repoはtxを持ったDBで作り直す
		return fn(newTxRepos(tx))
	})
}
