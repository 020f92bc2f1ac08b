package user

import (
	"ihome/infras/otel"
	"ihome/internal/domains/user/model/dto"
	"ihome/internal/domains/user/service"
	"ihome/shared/constant"
	"ihome/shared/failure"
	"ihome/shared/validator"
	"ihome/transport/http/response"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

const formFieldAvatar = "avatar"

type Handler struct {
	service service.User
	otel    otel.Otel
}

func New(service service.User, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Get("/user", handler.GetProfile)
	router.Put("/user/name", handler.Rename)
	router.Post("/user/avatar", handler.UploadAvatar)
	router.Get("/user/auth", handler.GetRealName)
	router.Post("/user/auth", handler.SetRealName)
}

// GetProfile returns the caller's profile.
// @Summary Get profile
// @Tags User
// @Produce json
// @Success 200 {object} response.Data[dto.ProfileResponse]
// @Failure 401 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/user [get]
// @Security BearerAuth
func (handler *Handler) GetProfile(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetProfile")
	defer scope.End()

	actor, _ := ctx.Value(constant.ContextKeyUserID).(string)

	res, err := handler.service.Profile(ctx, actor)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get profile")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, res)
}

// Rename changes the caller's display name.
// @Summary Rename
// @Tags User
// @Accept json
// @Produce json
// @Param request body dto.RenameRequest true "New name"
// @Success 200 {object} response.Message
// @Failure 400 {object} response.Error
// @Failure 409 {object} response.Error
// @Router /v1/user/name [put]
// @Security BearerAuth
func (handler *Handler) Rename(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Rename")
	defer scope.End()

	req := dto.RenameRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	actor, _ := ctx.Value(constant.ContextKeyUserID).(string)

	if err := handler.service.Rename(ctx, actor, req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to rename user")

		response.WithError(writer, err)

		return
	}

	response.WithMessage(writer, http.StatusOK, "Name updated successfully")
}

// UploadAvatar replaces the caller's avatar.
// @Summary Upload avatar
// @Tags User
// @Accept multipart/form-data
// @Produce json
// @Param avatar formData file true "Avatar image"
// @Success 200 {object} response.Data[dto.AvatarResponse]
// @Failure 400 {object} response.Error
// @Failure 502 {object} response.Error
// @Router /v1/user/avatar [post]
// @Security BearerAuth
func (handler *Handler) UploadAvatar(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UploadAvatar")
	defer scope.End()

	if err := request.ParseMultipartForm(constant.RequestMaxMemory); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to parse multipart form")

		response.WithError(writer, failure.BadRequest(err))

		return
	}

	file, fileHeader, err := request.FormFile(formFieldAvatar)
	if err != nil {
		response.WithError(writer, failure.BadRequestFromString(formFieldAvatar+" is required"))

		return
	}
	defer file.Close()

	req := dto.UploadAvatarRequest{Avatar: *fileHeader, AvatarFile: file}

	if err := validator.ValidateStruct(&req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate avatar")

		response.WithError(writer, err)

		return
	}

	actor, _ := ctx.Value(constant.ContextKeyUserID).(string)

	res, err := handler.service.UploadAvatar(ctx, actor, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to upload avatar")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, res)
}

// GetRealName returns the caller's real-name authentication.
// @Summary Get real-name authentication
// @Tags User
// @Produce json
// @Success 200 {object} response.Data[dto.RealNameResponse]
// @Failure 401 {object} response.Error
// @Router /v1/user/auth [get]
// @Security BearerAuth
func (handler *Handler) GetRealName(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetRealName")
	defer scope.End()

	actor, _ := ctx.Value(constant.ContextKeyUserID).(string)

	res, err := handler.service.GetRealName(ctx, actor)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get real name")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, res)
}

// SetRealName completes real-name authentication. It can only be done once.
// @Summary Set real-name authentication
// @Tags User
// @Accept json
// @Produce json
// @Param request body dto.RealNameRequest true "Real name"
// @Success 200 {object} response.Message
// @Failure 400 {object} response.Error
// @Failure 409 {object} response.Error
// @Router /v1/user/auth [post]
// @Security BearerAuth
func (handler *Handler) SetRealName(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".SetRealName")
	defer scope.End()

	req := dto.RealNameRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	actor, _ := ctx.Value(constant.ContextKeyUserID).(string)

	if err := handler.service.SetRealName(ctx, actor, req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to set real name")

		response.WithError(writer, err)

		return
	}

	response.WithMessage(writer, http.StatusOK, "Real-name authentication saved")
}
