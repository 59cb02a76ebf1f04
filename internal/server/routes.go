package server

import (
	"github.com/labstack/echo/v4"

	"github.com/modi-mansi/ecommerce/internal/handler"
)

// 各ハンドラのルート登録
type RouteRegistrar interface {
	RegisterRoutes(r handler.Router)
}

type Handlers struct {
	Products  *handler.ProductHandler
	Orders    *handler.OrderHandler
	Cart      *handler.CartHandler
	Analytics *handler.AnalyticsHandler
	Inventory *handler.InventoryHandler
	Users     *handler.UserHandler
	Health    *handler.HealthHandler
}

func (h Handlers) all() []RouteRegistrar {
	return []RouteRegistrar{h.Products, h.Orders, h.Cart, h.Analytics, h.Inventory, h.Users, h.Health}
}

// ルート直下と /api の両方に同じルートを載せる（フロントは /api を付けて呼ぶ）
func RegisterRoutes(e *echo.Echo, h Handlers) {
	api := e.Group("/api")
	for _, r := range h.all() {
		r.RegisterRoutes(e)
		r.RegisterRoutes(api)
	}
}
