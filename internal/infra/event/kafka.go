package event

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/IBM/sarama"
	"github.com/pkg/errors"

	"github.com/modi-mansi/ecommerce/internal/usecase"
)

// KafkaPublisher は注文イベントをJSONでKafkaに送る。キーは注文ID（同じ注文の順序を保つ）
type KafkaPublisher struct {
	producer sarama.SyncProducer
	topic    string
	logger   *slog.Logger
}

// 全レプリカのackを待つ・5回までリトライ
func NewProducerConfig() *sarama.Config {
	config := sarama.NewConfig()
	config.Producer.RequiredAcks = sarama.WaitForAll
	config.Producer.Retry.Max = 5
	config.Producer.Return.Successes = true
	config.Producer.Timeout = 5 * time.Second
	return config
}

func NewKafkaPublisher(brokers []string, topic string, logger *slog.Logger) (*KafkaPublisher, error) {
	producer, err := sarama.NewSyncProducer(brokers, NewProducerConfig())
	if err != nil {
		return nil, errors.Wrap(err, "start kafka producer")
	}
	logger.Info("kafka producer connected", slog.Any("brokers", brokers), slog.String("topic", topic))
	return NewKafkaPublisherWithProducer(producer, topic, logger), nil
}

// テストではsarama/mocksのSyncProducerを渡す
func NewKafkaPublisherWithProducer(producer sarama.SyncProducer, topic string, logger *slog.Logger) *KafkaPublisher {
	return &KafkaPublisher{producer: producer, topic: topic, logger: logger}
}

func (p *KafkaPublisher) Publish(ctx context.Context, e usecase.OrderEvent) error {
	payload, err := json.Marshal(e)
	if err != nil {
		return errors.Wrap(err, "marshal order event")
	}

	msg := &sarama.ProducerMessage{
		Topic: p.topic,
		Key:   sarama.StringEncoder(e.OrderID),
		Value: sarama.ByteEncoder(payload),
		Headers: []sarama.RecordHeader{
			{Key: []byte("event-type"), Value: []byte(e.Type)},
		},
	}

	partition, offset, err := p.producer.SendMessage(msg)
	if err != nil {
		return errors.Wrapf(err, "send %s to %s", e.Type, p.topic)
	}

	p.logger.DebugContext(ctx, "order event published",
		slog.String("type", e.Type),
		slog.String("order_id", e.OrderID),
		slog.Int("partition", int(partition)),
		slog.Int64("offset", offset),
	)
	return nil
}

func (p *KafkaPublisher) Close() error {
	return errors.Wrap(p.producer.Close(), "close kafka producer")
}
