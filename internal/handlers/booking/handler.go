package booking

import (
	"ihome/infras/otel"
	"ihome/internal/domains/booking/model/dto"
	"ihome/internal/domains/booking/service"
	"ihome/shared/constant"
	"ihome/shared/validator"
	"ihome/transport/http/response"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Booking
	otel    otel.Otel
}

func New(service service.Booking, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Post("/orders", handler.CreateBooking)
	router.Put("/orders/{id}/status", handler.TransitionBooking)
	router.Put("/orders/{id}/comment", handler.CommentBooking)
	router.Get("/user/orders", handler.GetBookings)
}

// CreateBooking books a house for [start_date, end_date).
// @Summary Book a house
// @Tags Booking
// @Accept json
// @Produce json
// @Param request body dto.CreateBookingRequest true "Booking"
// @Success 201 {object} response.Data[dto.CreateBookingResponse]
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Router /v1/orders [post]
// @Security BearerAuth
func (handler *Handler) CreateBooking(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateBooking")
	defer scope.End()

	req := dto.CreateBookingRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	actor, _ := ctx.Value(constant.ContextKeyUserID).(string)

	res, err := handler.service.Create(ctx, actor, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create booking")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Booking created by user " + actor)

	response.WithJSON(writer, http.StatusCreated, res)
}

// GetBookings lists the caller's bookings as renter (custom) or landlord.
// @Summary My bookings
// @Tags Booking
// @Produce json
// @Param role query string false "Role" Enums(custom, landlord)
// @Success 200 {object} response.Data[dto.GetBookingsResponse]
// @Failure 400 {object} response.Error
// @Router /v1/user/orders [get]
// @Security BearerAuth
func (handler *Handler) GetBookings(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetBookings")
	defer scope.End()

	actor, _ := ctx.Value(constant.ContextKeyUserID).(string)

	res, err := handler.service.List(ctx, actor, request.URL.Query().Get("role"))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get bookings")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, res)
}

// TransitionBooking accepts or rejects a pending booking.
// @Summary Accept or reject a booking
// @Tags Booking
// @Accept json
// @Produce json
// @Param id path string true "Booking ID"
// @Param request body dto.TransitionRequest true "Action"
// @Success 200 {object} response.Message
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 409 {object} response.Error
// @Router /v1/orders/{id}/status [put]
// @Security BearerAuth
func (handler *Handler) TransitionBooking(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".TransitionBooking")
	defer scope.End()

	id := chi.URLParam(request, "id")

	if err := validator.ValidateVar(id, "required,uuid"); err != nil {
		response.WithError(writer, err)

		return
	}

	req := dto.TransitionRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	actor, _ := ctx.Value(constant.ContextKeyUserID).(string)

	if err := handler.service.Transition(ctx, actor, id, req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to change booking status")

		response.WithError(writer, err)

		return
	}

	response.WithMessage(writer, http.StatusOK, "Booking updated successfully")
}

// CommentBooking stores the renter's review and completes the booking.
// @Summary Review a booking
// @Tags Booking
// @Accept json
// @Produce json
// @Param id path string true "Booking ID"
// @Param request body dto.CommentRequest true "Comment"
// @Success 200 {object} response.Message
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 409 {object} response.Error
// @Router /v1/orders/{id}/comment [put]
// @Security BearerAuth
func (handler *Handler) CommentBooking(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CommentBooking")
	defer scope.End()

	id := chi.URLParam(request, "id")

	if err := validator.ValidateVar(id, "required,uuid"); err != nil {
		response.WithError(writer, err)

		return
	}

	req := dto.CommentRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	actor, _ := ctx.Value(constant.ContextKeyUserID).(string)

	if err := handler.service.Comment(ctx, actor, id, req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to comment booking")

		response.WithError(writer, err)

		return
	}

	response.WithMessage(writer, http.StatusOK, "Comment saved successfully")
}
