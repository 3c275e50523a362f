package events

import (
	"context"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"

	"github.com/lkbeauty/salon-booking-service/internal/infra/storage/outbox"
)

// OutboxRepository интерфейс чтения transactional outbox
type OutboxRepository interface {
	FetchUnpublished(ctx context.Context, limit int) ([]outbox.Event, error)
	MarkPublished(ctx context.Context, ids []uuid.UUID) error
}

// MessageWriter интерфейс отправки сообщений в Kafka
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
