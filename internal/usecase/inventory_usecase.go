package usecase

import (
	"context"
	"strings"

	"github.com/modi-mansi/ecommerce/internal/domain/model"
	repo "github.com/modi-mansi/ecommerce/internal/repository"
)

type InventoryUsecase struct {
	inventory repo.InventoryRepository
}

func NewInventoryUsecase(inventory repo.InventoryRepository) *InventoryUsecase {
	return &InventoryUsecase{inventory: inventory}
}

// 在庫履歴（追加順）。productId / orderId はANDで効く
func (u *InventoryUsecase) ListTransactions(ctx context.Context, productID, orderID string) ([]model.InventoryTransaction, error) {
	out, err := u.inventory.ListTransactions(ctx, repo.InventoryFilter{
		ProductID: strings.TrimSpace(productID),
		OrderID:   strings.TrimSpace(orderID),
	})
	if err != nil {
		return []model.InventoryTransaction{}, internal("list inventory transactions", err)
	}
	return out, nil
}
