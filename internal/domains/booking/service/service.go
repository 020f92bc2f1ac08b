package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"ihome/config"
	"ihome/infras/kafka"
	"ihome/infras/otel"
	"ihome/internal/domains/booking/model"
	"ihome/internal/domains/booking/model/dto"
	"ihome/internal/domains/booking/repository"
	houseModel "ihome/internal/domains/house/model"
	houseRepo "ihome/internal/domains/house/repository"
	"ihome/shared"
	"ihome/shared/cache"
	"ihome/shared/constant"
	gDto "ihome/shared/dto"
	"ihome/shared/failure"
	"ihome/shared/timezone"

	"github.com/rs/zerolog/log"
)

type Booking interface {
	Create(ctx context.Context, actor string, req dto.CreateBookingRequest) (dto.CreateBookingResponse, error)
	Transition(ctx context.Context, actor, id string, req dto.TransitionRequest) error
	Comment(ctx context.Context, actor, id string, req dto.CommentRequest) error
	List(ctx context.Context, actor, role string) (dto.GetBookingsResponse, error)
}

type serviceImpl struct {
	repo      repository.Booking
	houseRepo houseRepo.House
	kafka     kafka.Client
	cfg       *config.Config
	cache     cache.RedisCache
	otel      otel.Otel
}

func New(
	repo repository.Booking,
	houseRepo houseRepo.House,
	kafka kafka.Client,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
) Booking {
	return &serviceImpl{
		repo:      repo,
		houseRepo: houseRepo,
		kafka:     kafka,
		cfg:       cfg,
		cache:     cache,
		otel:      otel,
	}
}

// Create books a house for the half-open date range. The availability check is repeated
// under a row lock inside the insert transaction, so of two overlapping requests at most one wins.
func (s *serviceImpl) Create(ctx context.Context, actor string, req dto.CreateBookingRequest) (res dto.CreateBookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	interval, err := req.Interval()
	if err != nil {
		return res, err
	}

	house, err := s.houseRepo.Get(ctx, shared.FilterByID(req.HouseID, houseModel.FieldID, houseModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get house")

		return res, failure.StoreUnavailable(fmt.Errorf("failed to get house: %w", err))
	}

	if house.ID == constant.Empty {
		return res, houseModel.ErrNotFound
	}

	if house.UserID == actor {
		return res, model.ErrSelfBooking
	}

	conflict, err := s.repo.HasConflict(ctx, house.ID, interval)
	if err != nil {
		log.Error().Err(err).Msg("failed to check booking conflict")

		return res, failure.StoreUnavailable(fmt.Errorf("failed to check booking conflict: %w", err))
	}

	if conflict {
		return res, model.ErrConflict
	}

	booking := req.ToModel(actor, interval, house.Price, timezone.Now())

	if err = s.repo.CreateIfAvailable(ctx, booking); err != nil {
		if errors.Is(err, model.ErrConflict) || errors.Is(err, houseModel.ErrNotFound) {
			return res, err
		}

		log.Error().Err(err).Msg("failed to create booking")

		return res, failure.StoreUnavailable(fmt.Errorf("failed to create booking: %w", err))
	}

	booking.HouseTitle = house.Title

	s.publish(ctx, dto.NewEvent(model.EventCreated, booking, house.UserID, timezone.Now()))

	go func() {
		shared.InvalidateCaches(context.WithoutCancel(ctx), s.cache, houseModel.CacheKeySearch)
	}()

	res.ID = booking.ID

	return res, nil
}

// Transition lets the landlord accept or reject a booking that is still waiting for acceptance.
func (s *serviceImpl) Transition(ctx context.Context, actor, id string, req dto.TransitionRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Transition")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	booking, err := s.get(ctx, id)
	if err != nil {
		return err
	}

	if !booking.IsOpen() {
		return model.ErrNotPending
	}

	if booking.HouseOwnerID != actor {
		return model.ErrForbidden
	}

	var (
		eventType string
		fields    = map[string]any{}
	)

	switch req.Action {
	case model.ActionAccept:
		eventType = model.EventAccepted
		fields[model.FieldStatus] = model.StatusWaitComment
	case model.ActionReject:
		reason := strings.TrimSpace(req.Reason)
		if reason == constant.Empty {
			return model.ErrMissingReason
		}

		eventType = model.EventRejected
		fields[model.FieldStatus] = model.StatusRejected
		fields[model.FieldComment] = reason
		booking.Comment = reason
	default:
		return model.ErrInvalidAction
	}

	now := timezone.Now()
	fields[constant.FieldModifiedAt] = now
	fields[constant.FieldModifiedBy] = actor

	ok, err := s.repo.UpdateStatus(ctx, id, model.StatusWaitAccept, fields)
	if err != nil {
		log.Error().Err(err).Msg("failed to update booking status")

		return failure.StoreUnavailable(fmt.Errorf("failed to update booking status: %w", err))
	}

	if !ok {
		return model.ErrNotPending
	}

	s.publish(ctx, dto.NewEvent(eventType, booking, booking.HouseOwnerID, now))

	return nil
}

// Comment completes a booking with the renter's review and bumps the house order count.
func (s *serviceImpl) Comment(ctx context.Context, actor, id string, req dto.CommentRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Comment")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	booking, err := s.get(ctx, id)
	if err != nil {
		return err
	}

	if booking.UserID != actor {
		return model.ErrForbidden
	}

	if booking.Status != model.StatusWaitComment {
		return model.ErrNotCommentable
	}

	comment := strings.TrimSpace(req.Comment)
	if comment == constant.Empty {
		return failure.BadRequestFromString("comment must not be blank") //nolint:wrapcheck
	}

	now := timezone.Now()
	fields := map[string]any{
		model.FieldStatus:        model.StatusComplete,
		model.FieldComment:       comment,
		constant.FieldModifiedAt: now,
		constant.FieldModifiedBy: actor,
	}

	ok, err := s.repo.CompleteWithComment(ctx, booking, fields)
	if err != nil {
		log.Error().Err(err).Msg("failed to complete booking")

		return failure.StoreUnavailable(fmt.Errorf("failed to complete booking: %w", err))
	}

	if !ok {
		return model.ErrNotCommentable
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(houseModel.CacheKeyDetail, booking.HouseID)); err != nil {
			log.Error().Err(err).Msg("failed to delete house from cache")
		}

		shared.InvalidateCaches(c, s.cache, houseModel.CacheKeyIndex)
		shared.InvalidateCaches(c, s.cache, houseModel.CacheKeySearch)
	}()

	booking.Comment = constant.Empty
	s.publish(ctx, dto.NewEvent(model.EventCompleted, booking, booking.HouseOwnerID, now))

	return nil
}

// List returns the caller's bookings, newest first. As landlord these are bookings on the
// caller's houses, otherwise the caller's own bookings.
func (s *serviceImpl) List(ctx context.Context, actor, role string) (res dto.GetBookingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".List")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	var filter gDto.FilterGroup

	switch role {
	case model.RoleLandlord:
		filter = shared.FilterByID(actor, houseModel.FieldUserID, houseModel.TableName)
	case model.RoleCustom, constant.Empty:
		filter = shared.FilterByID(actor, model.FieldUserID, model.TableName)
	default:
		return res, failure.BadRequestFromString("role must be landlord or custom") //nolint:wrapcheck
	}

	params := gDto.QueryParams{
		SortBy:  model.TableName + "." + constant.FieldCreatedAt,
		SortDir: gDto.SortDirDesc,
	}

	bookings, err := s.repo.GetAll(ctx, params, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get bookings")

		return res, failure.StoreUnavailable(fmt.Errorf("failed to get bookings: %w", err))
	}

	res.FromModels(bookings)

	return res, nil
}

func (s *serviceImpl) get(ctx context.Context, id string) (model.Booking, error) {
	booking, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking")

		return booking, failure.StoreUnavailable(fmt.Errorf("failed to get booking: %w", err))
	}

	if booking.ID == constant.Empty {
		return booking, model.ErrNotFound
	}

	return booking, nil
}

// publish is fire-and-forget: the booking is already committed, a lost notification is only logged.
func (s *serviceImpl) publish(ctx context.Context, event model.Event) {
	go func() {
		c := context.WithoutCancel(ctx)

		err := s.kafka.SendMessages(c, s.cfg.Kafka.BookingTopic, kafka.Message{Key: event.BookingID, Value: event})
		if err != nil {
			log.Error().Err(err).Str("type", event.Type).Str("booking", event.BookingID).Msg("failed to publish booking event")
		}
	}()
}
