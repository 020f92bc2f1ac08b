package area

import (
	"ihome/infras/otel"
	"ihome/internal/domains/area/service"
	"ihome/shared/constant"
	"ihome/transport/http/response"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Area
	otel    otel.Otel
}

func New(service service.Area, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Get("/areas", handler.GetAreas)
}

// GetAreas lists every area a house can be published in.
// @Summary List areas
// @Tags Area
// @Produce json
// @Success 200 {object} response.Data[dto.GetAreasResponse]
// @Failure 503 {object} response.Error
// @Router /v1/areas [get]
func (handler *Handler) GetAreas(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetAreas")
	defer scope.End()

	res, err := handler.service.List(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get areas")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, res)
}
