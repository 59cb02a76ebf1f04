package repository

import "context"

// トランザクション内で使う約束
type TxRepos interface {
	Products() ProductRepository
	Orders() OrderRepository
	OrderItems() OrderItemRepository
	CartItems() CartItemRepository
	Inventory() InventoryRepository
	Users() UserRepository
}

// UsecaseからTxの開始/commit/rollbackを隠す。
// fnがエラーを返したら何も残さない。
type TransactionManager interface {
	WithinTx(ctx context.Context, fn func(r TxRepos) error) error
}
