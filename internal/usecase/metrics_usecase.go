package usecase

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/modi-mansi/ecommerce/internal/domain/model"
	repo "github.com/modi-mansi/ecommerce/internal/repository"
)

// MetricsUsecase は毎回全件から集計する（キャッシュしない）。
type MetricsUsecase struct {
	orders  repo.OrderRepository
	catalog *CatalogUsecase
}

func NewMetricsUsecase(orders repo.OrderRepository, catalog *CatalogUsecase) *MetricsUsecase {
	return &MetricsUsecase{orders: orders, catalog: catalog}
}

type OrderMetrics struct {
	TotalOrders int
	//キャンセル済みも含む
	TotalRevenue    decimal.Decimal
	PendingOrders   int
	CompletedOrders int
}

type DashboardOutput struct {
	TotalOrders     int     `json:"totalOrders"`
	TotalRevenue    float64 `json:"totalRevenue"`
	PendingOrders   int     `json:"pendingOrders"`
	CompletedOrders int     `json:"completedOrders"`
	LowStockCount   int     `json:"lowStockCount"`
}

func (u *MetricsUsecase) OrderMetrics(ctx context.Context) (OrderMetrics, error) {
	orders, err := u.orders.List(ctx, repo.OrderFilter{})
	if err != nil {
		return OrderMetrics{}, internal("list orders", err)
	}

	m := OrderMetrics{TotalOrders: len(orders), TotalRevenue: decimal.Zero}
	for _, o := range orders {
		m.TotalRevenue = m.TotalRevenue.Add(o.TotalAmount)
		switch o.Status {
		case model.OrderStatusPending:
			m.PendingOrders++
		case model.OrderStatusDelivered:
			m.CompletedOrders++
		}
	}
	m.TotalRevenue = m.TotalRevenue.Round(2)
	return m, nil
}

func (u *MetricsUsecase) LowStockCount(ctx context.Context) (int, error) {
	return u.catalog.LowStockCount(ctx)
}

// GET /analytics/metrics
func (u *MetricsUsecase) Dashboard(ctx context.Context) (DashboardOutput, error) {
	m, err := u.OrderMetrics(ctx)
	if err != nil {
		return DashboardOutput{}, err
	}
	low, err := u.LowStockCount(ctx)
	if err != nil {
		return DashboardOutput{}, err
	}

	return DashboardOutput{
		TotalOrders:     m.TotalOrders,
		TotalRevenue:    m.TotalRevenue.InexactFloat64(),
		PendingOrders:   m.PendingOrders,
		CompletedOrders: m.CompletedOrders,
		LowStockCount:   low,
	}, nil
}
