package house

import (
	"ihome/infras/otel"
	"ihome/internal/domains/house/model/dto"
	"ihome/internal/domains/house/service"
	"ihome/shared/constant"
	"ihome/shared/failure"
	"ihome/shared/validator"
	"ihome/transport/http/response"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

const formFieldImage = "house_image"

type Handler struct {
	service service.House
	otel    otel.Otel
}

func New(service service.House, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Get("/houses", handler.SearchHouses)
	router.Post("/houses", handler.CreateHouse)
	router.Get("/houses/index", handler.GetIndexHouses)
	router.Get("/houses/{id}", handler.GetHouseByID)
	router.Post("/houses/{id}/images", handler.UploadHouseImage)
	router.Get("/user/houses", handler.GetMyHouses)
}

// SearchHouses lists houses free in the requested date range.
// @Summary Search houses
// @Tags House
// @Produce json
// @Param aid query string false "Area id"
// @Param sd query string false "Start date (YYYY-MM-DD)"
// @Param ed query string false "End date (YYYY-MM-DD), exclusive"
// @Param sk query string false "Sort key" Enums(new, booking, price-inc, price-des)
// @Param p query int false "Page, starting at 1"
// @Success 200 {object} response.Data[dto.SearchResponse]
// @Failure 400 {object} response.Error
// @Failure 503 {object} response.Error
// @Router /v1/houses [get]
func (handler *Handler) SearchHouses(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".SearchHouses")
	defer scope.End()

	query := request.URL.Query()
	req := dto.SearchRequest{
		AreaID:    query.Get("aid"),
		StartDate: query.Get("sd"),
		EndDate:   query.Get("ed"),
		SortKey:   query.Get("sk"),
	}

	if page := query.Get("p"); page != constant.Empty {
		p, err := strconv.Atoi(page)
		if err != nil {
			response.WithError(writer, failure.BadRequestFromString("p must be an integer"))

			return
		}

		req.Page = p
	}

	res, err := handler.service.Search(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to search houses")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, res)
}

// GetIndexHouses returns the most booked houses for the landing page.
// @Summary Landing page houses
// @Tags House
// @Produce json
// @Success 200 {object} response.Data[dto.HousesResponse]
// @Failure 503 {object} response.Error
// @Router /v1/houses/index [get]
func (handler *Handler) GetIndexHouses(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetIndexHouses")
	defer scope.End()

	res, err := handler.service.Index(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get index houses")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, res)
}

// GetHouseByID returns the house detail. Authentication is optional; the caller id is echoed back.
// @Summary House detail
// @Tags House
// @Produce json
// @Param id path string true "House ID"
// @Success 200 {object} response.Data[dto.DetailResponse]
// @Failure 404 {object} response.Error
// @Failure 503 {object} response.Error
// @Router /v1/houses/{id} [get]
func (handler *Handler) GetHouseByID(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetHouseByID")
	defer scope.End()

	id := chi.URLParam(request, "id")

	if err := validator.ValidateVar(id, "required,uuid"); err != nil {
		response.WithError(writer, err)

		return
	}

	viewer, _ := ctx.Value(constant.ContextKeyUserID).(string)

	res, err := handler.service.Detail(ctx, viewer, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get house")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, res)
}

// GetMyHouses lists the houses published by the caller.
// @Summary My houses
// @Tags House
// @Produce json
// @Success 200 {object} response.Data[dto.HousesResponse]
// @Failure 401 {object} response.Error
// @Failure 403 {object} response.Error
// @Router /v1/user/houses [get]
// @Security BearerAuth
func (handler *Handler) GetMyHouses(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetMyHouses")
	defer scope.End()

	actor, _ := ctx.Value(constant.ContextKeyUserID).(string)

	res, err := handler.service.MyHouses(ctx, actor)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get user houses")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, res)
}

// CreateHouse publishes a house. Prices are in yuan.
// @Summary Publish a house
// @Tags House
// @Accept json
// @Produce json
// @Param request body dto.CreateHouseRequest true "House"
// @Success 201 {object} response.Data[dto.CreateHouseResponse]
// @Failure 400 {object} response.Error
// @Failure 401 {object} response.Error
// @Router /v1/houses [post]
// @Security BearerAuth
func (handler *Handler) CreateHouse(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateHouse")
	defer scope.End()

	req := dto.CreateHouseRequest{}

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
		log.Error().Err(err).Msg("failed to create house")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("House created by user " + actor)

	response.WithJSON(writer, http.StatusCreated, res)
}

// UploadHouseImage attaches an image to the caller's house.
// @Summary Upload a house image
// @Tags House
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "House ID"
// @Param house_image formData file true "Image"
// @Success 201 {object} response.Data[dto.UploadImageResponse]
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 502 {object} response.Error
// @Router /v1/houses/{id}/images [post]
// @Security BearerAuth
func (handler *Handler) UploadHouseImage(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UploadHouseImage")
	defer scope.End()

	id := chi.URLParam(request, "id")

	if err := validator.ValidateVar(id, "required,uuid"); err != nil {
		response.WithError(writer, err)

		return
	}

	if err := request.ParseMultipartForm(constant.RequestMaxMemory); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to parse multipart form")

		response.WithError(writer, failure.BadRequest(err))

		return
	}

	file, fileHeader, err := request.FormFile(formFieldImage)
	if err != nil {
		response.WithError(writer, failure.BadRequestFromString(formFieldImage+" is required"))

		return
	}
	defer file.Close()

	req := dto.UploadImageRequest{Image: *fileHeader, ImageFile: file}

	if err := validator.ValidateStruct(&req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate image")

		response.WithError(writer, err)

		return
	}

	actor, _ := ctx.Value(constant.ContextKeyUserID).(string)

	res, err := handler.service.UploadImage(ctx, actor, id, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to upload house image")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusCreated, res)
}
