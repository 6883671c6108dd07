package events

import (
	"context"
	"encoding/json"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/devbyteai/BetStack-sub001/internal/domain/entities"
	"github.com/devbyteai/BetStack-sub001/pkg/logger"
)

// KafkaWriter defines a Kafka writer abstraction.
type KafkaWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// TransactionEvent is the payload emitted for every settled ledger entry.
// Downstream consumers (risk, CRM, reporting) key on the transaction id.
type TransactionEvent struct {
	TransactionID string `json:"transactionId"`
	UserID        string `json:"userId"`
	Type          string `json:"type"`
	Status        string `json:"status"`
	Amount        string `json:"amount"`
	BalanceAfter  string `json:"balanceAfter"`
	Timestamp     int64  `json:"timestamp"`
}

// Publisher emits wallet events to Kafka. Publishing is best effort: a
// broker outage must never fail the money movement that triggered it.
type Publisher struct {
	writer KafkaWriter
}

// NewPublisher creates a publisher. A nil writer disables publishing.
func NewPublisher(writer KafkaWriter) *Publisher {
	return &Publisher{writer: writer}
}

// NewKafkaWriter builds the production writer for the given brokers and topic.
func NewKafkaWriter(brokers []string, topic string) *kafka.Writer {
	return &kafka.Writer{
		Addr:     kafka.TCP(brokers...),
		Topic:    topic,
		Balancer: &kafka.LeastBytes{},
	}
}

// PublishTransaction emits a settled transaction. Errors are logged, not
// returned.
func (p *Publisher) PublishTransaction(ctx context.Context, tx *entities.Transaction, timestamp int64) {
	if p.writer == nil {
		return
	}

	event := TransactionEvent{
		TransactionID: tx.ID.String(),
		UserID:        tx.UserID.String(),
		Type:          string(tx.Type),
		Status:        string(tx.Status),
		Amount:        tx.Amount,
		BalanceAfter:  tx.BalanceAfter,
		Timestamp:     timestamp,
	}

	data, err := json.Marshal(event)
	if err != nil {
		logger.Error(ctx, "failed to marshal transaction event",
			zap.String("transaction_id", event.TransactionID), zap.Error(err))
		return
	}

	msg := kafka.Message{
		Key:   []byte(event.TransactionID),
		Value: data,
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		logger.Error(ctx, "failed to publish transaction event",
			zap.String("transaction_id", event.TransactionID), zap.Error(err))
		return
	}

	logger.Debug(ctx, "transaction event published",
		zap.String("transaction_id", event.TransactionID),
		zap.String("type", event.Type))
}

// Close shuts down the underlying writer.
func (p *Publisher) Close() error {
	if p.writer == nil {
		return nil
	}
	return p.writer.Close()
}
