package usecase

import (
	"context"
	"log/slog"
	"strings"

	"github.com/pkg/errors"

	"github.com/modi-mansi/ecommerce/internal/domain/model"
	repo "github.com/modi-mansi/ecommerce/internal/repository"
)

// Cancel は何度呼んでもcancelledのまま（2回目以降は変更なし）
func (u *OrderUsecase) Cancel(ctx context.Context, orderID string) (OrderOutput, error) {
	return u.changeStatus(ctx, orderID, model.OrderStatusCancelled)
}

// UpdateStatus は5つの値のどれかなら、どこからでも遷移できる。
// 在庫戻しモードのときだけ、キャンセル済みの注文は変更不可
func (u *OrderUsecase) UpdateStatus(ctx context.Context, orderID string, status string) (OrderOutput, error) {
	next := model.OrderStatus(strings.TrimSpace(status))
	if !next.Valid() {
		return OrderOutput{}, invalid("Invalid status", FieldError{Field: "status", Message: "status must be one of pending, processing, shipped, delivered, cancelled"})
	}
	return u.changeStatus(ctx, orderID, next)
}

func (u *OrderUsecase) changeStatus(ctx context.Context, orderID string, next model.OrderStatus) (OrderOutput, error) {
	var before, after model.Order
	var items []model.OrderItem

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		// 注文取得
		o, err := r.Orders().FindByID(ctx, orderID)
		if errors.Is(err, repo.ErrNotFound) {
			return notFound("Order not found")
		}
		if err != nil {
			return internal("find order", err)
		}
		before = o

		items, err = r.OrderItems().ListByOrderID(ctx, orderID)
		if err != nil {
			return internal("list order items", err)
		}

		// すでに同じなら何もしない
		if o.Status == next {
			after = o
			return nil
		}

		if u.opts.RestoreStockOnCancel {
			// 終端ガード
			if o.Status == model.OrderStatusCancelled {
				return invalid("cannot change cancelled order")
			}
			if next == model.OrderStatusCancelled {
				if err := restoreStock(ctx, r, o, items); err != nil {
					return err
				}
			}
		}

		// ステータス更新
		after, err = r.Orders().UpdateStatus(ctx, orderID, next)
		if errors.Is(err, repo.ErrNotFound) {
			return notFound("Order not found")
		}
		if err != nil {
			return internal("update order status", err)
		}
		return nil
	})
	if err != nil {
		return OrderOutput{}, err
	}

	if before.Status != after.Status {
		u.logger.InfoContext(ctx, "order status changed",
			slog.String("order_id", after.ID),
			slog.String("from", string(before.Status)),
			slog.String("to", string(after.Status)),
		)
		e := newOrderEvent(EventOrderStatusChanged, after, len(items), u.clock.Now())
		e.PreviousStatus = string(before.Status)
		u.publish(ctx, e)
	}

	return toOrderOutput(after, items), nil
}

// キャンセル分の在庫を戻して履歴を残す
func restoreStock(ctx context.Context, r repo.TxRepos, o model.Order, items []model.OrderItem) error {
	orderID := o.ID
	for _, it := range items {
		if err := r.Products().IncreaseStock(ctx, it.ProductID, it.Quantity); err != nil {
			//商品が消えていたら戻し先が無いので飛ばす
			if errors.Is(err, repo.ErrNotFound) {
				continue
			}
			return internal("restore stock", err)
		}
		if _, err := r.Inventory().CreateTransaction(ctx, model.InventoryTransaction{
			ProductID: it.ProductID,
			OrderID:   &orderID,
			Type:      model.InventoryTxCancellation,
			Delta:     it.Quantity,
			Reason:    "cancel " + o.OrderNumber,
		}); err != nil {
			return internal("record cancellation", err)
		}
	}
	return nil
}
