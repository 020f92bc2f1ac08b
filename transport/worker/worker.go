// Package worker consumes booking events and turns them into notifications.
package worker

import (
	"context"
	"fmt"

	"ihome/config"
	"ihome/infras/kafka"
	bookingModel "ihome/internal/domains/booking/model"
	"ihome/internal/domains/notification/service"

	"github.com/rs/zerolog/log"
	kafkaGo "github.com/segmentio/kafka-go"
)

type Worker struct {
	cfg          *config.Config
	kafka        kafka.Client
	notification service.Notification
}

func New(cfg *config.Config, kafka kafka.Client, notification service.Notification) *Worker {
	return &Worker{
		cfg:          cfg,
		kafka:        kafka,
		notification: notification,
	}
}

// Run blocks until ctx is cancelled.
func (w *Worker) Run(ctx context.Context) {
	log.Info().
		Str("topic", w.cfg.Kafka.BookingTopic).
		Str("group", w.cfg.Kafka.ConsumerGroup).
		Msg("Starting booking notification worker.")

	w.kafka.Consume(ctx, w.cfg.Kafka.ConsumerGroup, w.cfg.Kafka.BookingTopic, w.HandleBookingEvent)

	log.Info().Msg("Booking notification worker stopped.")
}

// HandleBookingEvent decodes one message. Malformed payloads are reported and skipped.
func (w *Worker) HandleBookingEvent(ctx context.Context, message kafkaGo.Message) error {
	decoded, err := kafka.DecodeKafkaMessage[bookingModel.Event](message)
	if err != nil {
		return fmt.Errorf("failed to decode booking event: %w", err)
	}

	event, ok := decoded.Value.(bookingModel.Event)
	if !ok {
		return fmt.Errorf("unexpected booking event payload %T", decoded.Value)
	}

	if err := w.notification.Notify(ctx, event); err != nil {
		return fmt.Errorf("failed to notify booking %s: %w", event.BookingID, err)
	}

	return nil
}

func (w *Worker) Close() error {
	if err := w.kafka.Close(); err != nil {
		return fmt.Errorf("failed to close kafka client: %w", err)
	}

	return nil
}
