package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"

	"ihome/config"
	"ihome/infras/otel"
	"ihome/infras/sms"
	bookingModel "ihome/internal/domains/booking/model"
	userModel "ihome/internal/domains/user/model"
	userRepo "ihome/internal/domains/user/repository"
	"ihome/shared"
	"ihome/shared/constant"

	"github.com/rs/zerolog/log"
)

var eventLabels = map[string]string{
	bookingModel.EventCreated:   "new booking",
	bookingModel.EventAccepted:  "booking accepted",
	bookingModel.EventRejected:  "booking rejected",
	bookingModel.EventCompleted: "booking reviewed",
}

type Notification interface {
	Notify(ctx context.Context, event bookingModel.Event) error
}

type serviceImpl struct {
	userRepo userRepo.User
	cfg      *config.Config
	otel     otel.Otel
	sms      sms.Client
}

func New(userRepo userRepo.User, cfg *config.Config, otel otel.Otel, sms sms.Client) Notification {
	return &serviceImpl{
		userRepo: userRepo,
		cfg:      cfg,
		otel:     otel,
		sms:      sms,
	}
}

// Notify texts the counterparty of a booking event. Unknown event types and deleted
// recipients are skipped rather than retried.
func (s *serviceImpl) Notify(ctx context.Context, event bookingModel.Event) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelEventScopeName, constant.OtelEventScopeName+".Notify")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	label, ok := eventLabels[event.Type]
	if !ok {
		log.Warn().Str("type", event.Type).Str("booking", event.BookingID).Msg("skipping unknown booking event")

		return nil
	}

	recipientID := event.Recipient()

	recipient, err := s.userRepo.Get(ctx, shared.FilterByID(recipientID, userModel.FieldID, userModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get notification recipient")

		return fmt.Errorf("failed to get notification recipient: %w", err)
	}

	if recipient.ID == constant.Empty {
		log.Warn().Str("user", recipientID).Str("booking", event.BookingID).Msg("notification recipient not found")

		return nil
	}

	err = s.sms.SendTemplate(ctx, recipient.Mobile, s.cfg.External.SMS.NoticeTemplate,
		label, event.HouseTitle, event.BeginDate, event.EndDate)
	if err != nil {
		log.Error().Err(err).Str("booking", event.BookingID).Msg("failed to send booking notification")

		return fmt.Errorf("failed to send booking notification: %w", err)
	}

	log.Info().Str("type", event.Type).Str("booking", event.BookingID).
		Str("mobile", userModel.MaskMobile(recipient.Mobile)).Msg("booking notification sent")

	return nil
}
