package event

import (
	"context"
	"log/slog"

	"github.com/modi-mansi/ecommerce/internal/usecase"
)

// NoopPublisher はKafkaを使わないとき用。debugログだけ出す
type NoopPublisher struct {
	logger *slog.Logger
}

func NewNoopPublisher(logger *slog.Logger) *NoopPublisher {
	return &NoopPublisher{logger: logger}
}

func (p *NoopPublisher) Publish(ctx context.Context, e usecase.OrderEvent) error {
	p.logger.DebugContext(ctx, "order event (not published)",
		slog.String("type", e.Type),
		slog.String("order_id", e.OrderID),
		slog.String("status", e.Status),
	)
	return nil
}

func (p *NoopPublisher) Close() error {
	return nil
}
