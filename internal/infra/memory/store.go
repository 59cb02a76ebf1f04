package memory

import (
	"context"
	"sync"

	"github.com/modi-mansi/ecommerce/internal/domain/model"
	"github.com/modi-mansi/ecommerce/internal/domain/service"
	"github.com/modi-mansi/ecommerce/internal/repository"
)

// 全エンティティの入れ物。mapの並びは不定なので追加順を別に持つ。
type tables struct {
	users     map[string]model.User
	userOrder []string

	products     map[string]model.Product
	productOrder []string

	orders     map[string]model.Order
	orderOrder []string
	orderItems map[string][]model.OrderItem

	//userID -> 追加順の明細
	cartItems map[string][]model.CartItem

	inventory []model.InventoryTransaction

	orderSeq int64
}

func newTables() *tables {
	return &tables{
		users:      map[string]model.User{},
		products:   map[string]model.Product{},
		orders:     map[string]model.Order{},
		orderItems: map[string][]model.OrderItem{},
		cartItems:  map[string][]model.CartItem{},
	}
}

// Tx用のコピー。エンティティは値で持っているのでスライスとmapを複製すれば足りる。
func (t *tables) clone() *tables {
	c := &tables{
		users:        make(map[string]model.User, len(t.users)),
		userOrder:    append([]string(nil), t.userOrder...),
		products:     make(map[string]model.Product, len(t.products)),
		productOrder: append([]string(nil), t.productOrder...),
		orders:       make(map[string]model.Order, len(t.orders)),
		orderOrder:   append([]string(nil), t.orderOrder...),
		orderItems:   make(map[string][]model.OrderItem, len(t.orderItems)),
		cartItems:    make(map[string][]model.CartItem, len(t.cartItems)),
		inventory:    append([]model.InventoryTransaction(nil), t.inventory...),
		orderSeq:     t.orderSeq,
	}
	for k, v := range t.users {
		c.users[k] = v
	}
	for k, v := range t.products {
		c.products[k] = v
	}
	for k, v := range t.orders {
		c.orders[k] = v
	}
	for k, v := range t.orderItems {
		c.orderItems[k] = append([]model.OrderItem(nil), v...)
	}
	for k, v := range t.cartItems {
		c.cartItems[k] = append([]model.CartItem(nil), v...)
	}
	return c
}

// Store はプロセス内のエンティティストア。
// 読み書きはすべて1つのmutexで直列化する（在庫チェック→減算の間に他の処理が割り込まない）。
type Store struct {
	mu    sync.Mutex
	data  *tables
	ids   service.IDGenerator
	clock service.Clock
}

// DI
func NewStore(ids service.IDGenerator, clock service.Clock) *Store {
	return &Store{
		data:  newTables(),
		ids:   ids,
		clock: clock,
	}
}

// tx != nil のときはWithinTxの中（ロック取得済み）
type session struct {
	store *Store
	tx    *tables
}

func (s *session) do(fn func(t *tables) error) error {
	if s.tx != nil {
		return fn(s.tx)
	}
	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	return fn(s.store.data)
}

func (s *session) repos() *reposView {
	return &reposView{
		products:   &productRepo{s: s},
		orders:     &orderRepo{s: s},
		orderItems: &orderItemRepo{s: s},
		cartItems:  &cartItemRepo{s: s},
		inventory:  &inventoryRepo{s: s},
		users:      &userRepo{s: s},
	}
}

type reposView struct {
	products   *productRepo
	orders     *orderRepo
	orderItems *orderItemRepo
	cartItems  *cartItemRepo
	inventory  *inventoryRepo
	users      *userRepo
}

func (r *reposView) Products() repository.ProductRepository     { return r.products }
func (r *reposView) Orders() repository.OrderRepository         { return r.orders }
func (r *reposView) OrderItems() repository.OrderItemRepository { return r.orderItems }
func (r *reposView) CartItems() repository.CartItemRepository   { return r.cartItems }
func (r *reposView) Inventory() repository.InventoryRepository  { return r.inventory }
func (r *reposView) Users() repository.UserRepository           { return r.users }

// Tx外から使うリポジトリ（1呼び出しごとにロック）
func (s *Store) Repos() repository.TxRepos {
	return (&session{store: s}).repos()
}

// WithinTx はコピーに対してfnを実行し、成功したときだけ差し替える。
// fnの中でStore.Repos()を使うとデッドロックするので、必ず引数のrを使う。
func (s *Store) WithinTx(ctx context.Context, fn func(r repository.TxRepos) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	staged := s.data.clone()
	if err := fn((&session{store: s, tx: staged}).repos()); err != nil {
		return err
	}
	s.data = staged
	return nil
}
