package events

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
)

// ErrPublish возвращается, когда пачку не удалось отправить в Kafka
var ErrPublish = errors.New("events: failed to publish batch")

// Publisher фоновый обработчик transactional outbox.
// Периодически забирает неопубликованные события и отправляет их в Kafka.
// Отметка published_at ставится только после успешной записи, поэтому
// при сбое события будут отправлены повторно (at-least-once).
type Publisher struct {
	outboxRepo OutboxRepository
	writer     MessageWriter
	pollEvery  time.Duration
	batchSize  int
	logger     Logger
}

// NewPublisher создает новый экземпляр publisher
func NewPublisher(
	outboxRepo OutboxRepository,
	writer MessageWriter,
	pollEvery time.Duration,
	batchSize int,
	logger Logger,
) *Publisher {
	return &Publisher{
		outboxRepo: outboxRepo,
		writer:     writer,
		pollEvery:  pollEvery,
		batchSize:  batchSize,
		logger:     logger,
	}
}

// Run запускает цикл публикации до отмены контекста
func (p *Publisher) Run(ctx context.Context) {
	p.logger.Info("Publisher: started, poll every %s, batch size %d", p.pollEvery, p.batchSize)

	ticker := time.NewTicker(p.pollEvery)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			p.logger.Info("Publisher: stopped")
			return
		case <-ticker.C:
			if err := p.publishBatch(ctx); err != nil {
				p.logger.Error("Publisher: %v", err)
			}
		}
	}
}

// publishBatch отправляет одну пачку неопубликованных событий
func (p *Publisher) publishBatch(ctx context.Context) error {
	events, err := p.outboxRepo.FetchUnpublished(ctx, p.batchSize)
	if err != nil {
		return err
	}
	if len(events) == 0 {
		return nil
	}

	messages := make([]kafka.Message, 0, len(events))
	ids := make([]uuid.UUID, 0, len(events))
	for _, event := range events {
		messages = append(messages, kafka.Message{
			Topic: event.Topic,
			Key:   []byte(event.Key),
			Value: event.Payload,
		})
		ids = append(ids, event.ID)
	}

	if err := p.writer.WriteMessages(ctx, messages...); err != nil {
		return fmt.Errorf("%w: %v", ErrPublish, err)
	}

	if err := p.outboxRepo.MarkPublished(ctx, ids); err != nil {
		// События уйдут повторно: потребители должны быть идемпотентны
		return err
	}

	p.logger.Info("Publisher: published %d events", len(messages))
	return nil
}
