package verification

import (
	"ihome/infras/otel"
	"ihome/internal/domains/verification/model/dto"
	"ihome/internal/domains/verification/service"
	"ihome/shared/constant"
	"ihome/shared/logger"
	"ihome/shared/validator"
	"ihome/transport/http/response"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

const (
	queryCurrent  = "cur"
	queryPrevious = "pre"
)

type Handler struct {
	service service.Verification
	otel    otel.Otel
}

func New(service service.Verification, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

// Router mounts the verification routes. smsLimiter guards the endpoint that sends paid SMS.
func (handler *Handler) Router(router chi.Router, smsLimiter func(http.Handler) http.Handler) {
	router.Route("/verifications", func(routerGroup chi.Router) {
		routerGroup.Get("/image", handler.GetImageCode)
		routerGroup.With(smsLimiter).Post("/sms", handler.SendSMSCode)
	})
}

// GetImageCode renders a fresh captcha stored under cur. A previous captcha id in pre is discarded.
// @Summary Get image captcha
// @Tags Verification
// @Produce png
// @Param cur query string true "New captcha id (uuid)"
// @Param pre query string false "Previous captcha id (uuid)"
// @Success 200 {file} binary
// @Failure 400 {object} response.Error
// @Router /v1/verifications/image [get]
func (handler *Handler) GetImageCode(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetImageCode")
	defer scope.End()

	query := request.URL.Query()
	req := dto.ImageCodeRequest{
		Current:  query.Get(queryCurrent),
		Previous: query.Get(queryPrevious),
	}

	if err := validator.ValidateStruct(&req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate captcha query")

		response.WithError(writer, err)

		return
	}

	img, err := handler.service.ImageCode(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to generate image code")

		response.WithError(writer, err)

		return
	}

	writer.Header().Set(constant.RequestHeaderContentType, constant.ContentTypePNG)
	writer.WriteHeader(http.StatusOK)

	if _, err = writer.Write(img); err != nil {
		logger.ErrorWithStack(err)
	}
}

// SendSMSCode checks the image captcha and texts a registration code to the mobile.
// @Summary Send SMS code
// @Tags Verification
// @Accept json
// @Produce json
// @Param request body dto.SMSCodeRequest true "SMS code request"
// @Success 200 {object} response.Message
// @Failure 400 {object} response.Error
// @Failure 429 {object} response.Error
// @Failure 502 {object} response.Error
// @Router /v1/verifications/sms [post]
func (handler *Handler) SendSMSCode(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".SendSMSCode")
	defer scope.End()

	req := dto.SMSCodeRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	if err := handler.service.SendSMSCode(ctx, req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to send sms code")

		response.WithError(writer, err)

		return
	}

	response.WithMessage(writer, http.StatusOK, "Verification code sent")
}
