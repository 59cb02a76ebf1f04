package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"net/mail"
	"strings"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"github.com/modi-mansi/ecommerce/internal/domain/model"
	"github.com/modi-mansi/ecommerce/internal/domain/service"
	repo "github.com/modi-mansi/ecommerce/internal/repository"
)

type OrderOptions struct {
	//trueならキャンセル時に在庫を戻し、キャンセル済みは以後変更不可
	RestoreStockOnCancel bool
}

type OrderUsecase struct {
	tx        repo.TransactionManager
	repos     repo.TxRepos
	publisher OrderEventPublisher
	clock     service.Clock
	logger    *slog.Logger
	opts      OrderOptions
}

func NewOrderUsecase(
	tx repo.TransactionManager,
	repos repo.TxRepos,
	publisher OrderEventPublisher,
	clock service.Clock,
	logger *slog.Logger,
	opts OrderOptions,
) *OrderUsecase {
	return &OrderUsecase{
		tx:        tx,
		repos:     repos,
		publisher: publisher,
		clock:     clock,
		logger:    logger,
		opts:      opts,
	}
}

type OrderLineInput struct {
	ProductID string
	Quantity  int64
}

type PlaceOrderInput struct {
	CustomerID string
	//空ならUserから補完
	CustomerName    string
	CustomerEmail   string
	ShippingAddress string
	Items           []OrderLineInput
	//trueなら同じTxで顧客のカートを空にする
	ClearCart bool
}

type OrderListFilter struct {
	Status     string
	CustomerID string
}

func (in PlaceOrderInput) validate() error {
	var fe fieldErrors
	if strings.TrimSpace(in.CustomerID) == "" {
		fe.add("customerId", "customerId required")
	}
	if strings.TrimSpace(in.ShippingAddress) == "" {
		fe.add("shippingAddress", "shippingAddress required")
	}
	if in.CustomerEmail != "" {
		if _, err := mail.ParseAddress(in.CustomerEmail); err != nil {
			fe.add("customerEmail", "invalid email format")
		}
	}
	if len(in.Items) == 0 {
		fe.add("items", "Order must contain at least one item")
	}
	for i, it := range in.Items {
		if strings.TrimSpace(it.ProductID) == "" {
			fe.add(fmt.Sprintf("items[%d].productId", i), "productId required")
		}
		if it.Quantity < 1 {
			fe.add(fmt.Sprintf("items[%d].quantity", i), "quantity must be >= 1")
		}
	}
	return fe.err("Invalid order data")
}

// 注文番号 ORD-<YYYYMMDD>-<連番3桁以上>
func formatOrderNumber(day string, seq int64) string {
	return fmt.Sprintf("ORD-%s-%03d", day, seq)
}

// PlaceOrder は在庫チェック→注文作成→在庫減算→履歴を1つのTxで行う。
// どこかで失敗したら注文も在庫も何も残らない。
func (u *OrderUsecase) PlaceOrder(ctx context.Context, in PlaceOrderInput) (OrderOutput, error) {
	if err := in.validate(); err != nil {
		return OrderOutput{}, err
	}

	var order model.Order
	var items []model.OrderItem

	//注文処理はトランザクション
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		name, email, err := u.resolveCustomer(ctx, r, in)
		if err != nil {
			return err
		}

		//1行ずつ、リクエスト順にチェック。最初に失敗した行で中断
		lines := make([]model.OrderItem, 0, len(in.Items))
		total := decimal.Zero
		for _, it := range in.Items {
			p, err := r.Products().FindByID(ctx, it.ProductID)
			if errors.Is(err, repo.ErrNotFound) || (err == nil && !p.IsActive) {
				return productNotFound(it.ProductID)
			}
			if err != nil {
				return internal("find product", err)
			}
			if p.StockQuantity < it.Quantity {
				return insufficientStock(p.Name)
			}

			//スナップショット
			lineTotal := p.Price.Mul(decimal.NewFromInt(it.Quantity)).Round(2)
			lines = append(lines, model.OrderItem{
				ProductID:   p.ID,
				ProductName: p.Name,
				ProductSKU:  p.SKU,
				UnitPrice:   p.Price,
				Quantity:    it.Quantity,
				TotalPrice:  lineTotal,
			})
			total = total.Add(lineTotal)
			if total.GreaterThan(maxOrderAmount) {
				return invalid("Invalid order data", FieldError{Field: "items", Message: "order total exceeds limit"})
			}
		}

		seq, err := r.Orders().NextSequence(ctx)
		if err != nil {
			return internal("next order sequence", err)
		}

		now := u.clock.Now()
		order = model.Order{
			OrderNumber:     formatOrderNumber(now.Format("20060102"), seq),
			CustomerID:      in.CustomerID,
			CustomerName:    name,
			CustomerEmail:   email,
			Status:          model.OrderStatusPending,
			TotalAmount:     total.Round(2),
			ShippingAddress: strings.TrimSpace(in.ShippingAddress),
			CreatedAt:       now,
			UpdatedAt:       now,
		}
		if err := r.Orders().Create(ctx, order); err != nil {
			return internal("create order", err)
		}
		//採番されたIDを取り直す
		order, err = r.Orders().FindByNumber(ctx, order.OrderNumber)
		if err != nil {
			return internal("reload order", err)
		}

		//注文明細一括作成
		if err := r.OrderItems().CreateBulk(ctx, order.ID, lines); err != nil {
			return internal("create order items", err)
		}

		//注文の保存後に在庫を減らす（足りなければ全体を取り消す）
		orderID := order.ID
		for _, line := range lines {
			ok, err := r.Products().DecreaseStockIfEnough(ctx, line.ProductID, line.Quantity)
			if err != nil {
				return internal("decrease stock", err)
			}
			if !ok {
				return insufficientStock(line.ProductName)
			}

			if _, err := r.Inventory().CreateTransaction(ctx, model.InventoryTransaction{
				ProductID: line.ProductID,
				OrderID:   &orderID,
				Type:      model.InventoryTxSale,
				Delta:     -line.Quantity,
				Reason:    "order " + order.OrderNumber,
			}); err != nil {
				return internal("record sale", err)
			}
		}

		if in.ClearCart {
			if err := r.CartItems().DeleteByUserID(ctx, in.CustomerID); err != nil {
				return internal("clear cart", err)
			}
		}

		items, err = r.OrderItems().ListByOrderID(ctx, order.ID)
		if err != nil {
			return internal("list order items", err)
		}
		return nil
	})
	if err != nil {
		return OrderOutput{}, err
	}

	u.logger.InfoContext(ctx, "order placed",
		slog.String("order_id", order.ID),
		slog.String("order_number", order.OrderNumber),
		slog.String("total", money(order.TotalAmount)),
		slog.Int("items", len(items)),
	)
	u.publish(ctx, newOrderEvent(EventOrderCreated, order, len(items), u.clock.Now()))

	return toOrderOutput(order, items), nil
}

// 名前・メールが無ければ顧客のUserから埋める
func (u *OrderUsecase) resolveCustomer(ctx context.Context, r repo.TxRepos, in PlaceOrderInput) (string, string, error) {
	name := strings.TrimSpace(in.CustomerName)
	email := strings.TrimSpace(in.CustomerEmail)
	if name != "" && email != "" {
		return name, email, nil
	}

	user, err := r.Users().FindByID(ctx, in.CustomerID)
	if errors.Is(err, repo.ErrNotFound) {
		var fe fieldErrors
		if name == "" {
			fe.add("customerName", "customerName required")
		}
		if email == "" {
			fe.add("customerEmail", "customerEmail required")
		}
		return "", "", fe.err("Invalid order data")
	}
	if err != nil {
		return "", "", internal("find customer", err)
	}

	if name == "" {
		name = user.FullName()
		if name == "" {
			name = user.Username
		}
	}
	if email == "" {
		email = user.Email
	}
	return name, email, nil
}

func (u *OrderUsecase) Get(ctx context.Context, orderID string) (OrderOutput, error) {
	o, err := u.repos.Orders().FindByID(ctx, orderID)
	if errors.Is(err, repo.ErrNotFound) {
		return OrderOutput{}, notFound("Order not found")
	}
	if err != nil {
		return OrderOutput{}, internal("find order", err)
	}
	return u.withItems(ctx, o)
}

func (u *OrderUsecase) GetByNumber(ctx context.Context, orderNumber string) (OrderOutput, error) {
	o, err := u.repos.Orders().FindByNumber(ctx, orderNumber)
	if errors.Is(err, repo.ErrNotFound) {
		return OrderOutput{}, notFound("Order not found")
	}
	if err != nil {
		return OrderOutput{}, internal("find order", err)
	}
	return u.withItems(ctx, o)
}

// 新しい順。statusとcustomerIdはANDで効く
func (u *OrderUsecase) List(ctx context.Context, f OrderListFilter) ([]OrderOutput, error) {
	status := model.OrderStatus(strings.TrimSpace(f.Status))
	if status != "" && !status.Valid() {
		return []OrderOutput{}, invalid("Invalid status", FieldError{Field: "status", Message: "unknown status " + string(status)})
	}

	orders, err := u.repos.Orders().List(ctx, repo.OrderFilter{
		Status:     status,
		CustomerID: strings.TrimSpace(f.CustomerID),
	})
	if err != nil {
		return []OrderOutput{}, internal("list orders", err)
	}

	outs := make([]OrderOutput, 0, len(orders))
	for _, o := range orders {
		out, err := u.withItems(ctx, o)
		if err != nil {
			return []OrderOutput{}, err
		}
		outs = append(outs, out)
	}
	return outs, nil
}

func (u *OrderUsecase) withItems(ctx context.Context, o model.Order) (OrderOutput, error) {
	items, err := u.repos.OrderItems().ListByOrderID(ctx, o.ID)
	if err != nil {
		return OrderOutput{}, internal("list order items", err)
	}
	return toOrderOutput(o, items), nil
}

// 送信失敗はログだけ（注文は確定済み）
func (u *OrderUsecase) publish(ctx context.Context, e OrderEvent) {
	if u.publisher == nil {
		return
	}
	if err := u.publisher.Publish(ctx, e); err != nil {
		u.logger.WarnContext(ctx, "publish order event failed",
			slog.String("type", e.Type),
			slog.String("order_id", e.OrderID),
			slog.Any("error", err),
		)
	}
}
