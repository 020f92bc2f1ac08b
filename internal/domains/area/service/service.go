package service

import (
	"context"
	"fmt"
	"ihome/config"
	"ihome/infras/otel"
	"ihome/internal/domains/area/model"
	"ihome/internal/domains/area/model/dto"
	"ihome/internal/domains/area/repository"
	"ihome/shared/cache"
	"ihome/shared/constant"
	gDto "ihome/shared/dto"
	"ihome/shared/failure"

	"github.com/rs/zerolog/log"
)

const cacheListArea = "area:list"

type Area interface {
	List(ctx context.Context) (dto.GetAreasResponse, error)
}

type serviceImpl struct {
	repo  repository.Area
	cfg   *config.Config
	cache cache.RedisCache
	otel  otel.Otel
}

func New(repo repository.Area, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Area {
	return &serviceImpl{
		repo:  repo,
		cfg:   cfg,
		cache: cache,
		otel:  otel,
	}
}

func (s *serviceImpl) List(ctx context.Context) (res dto.GetAreasResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".List")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	err = s.cache.Get(ctx, cacheListArea, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheListArea).Msg("cache hit for areas")

		return res, nil
	}

	params := gDto.QueryParams{
		SortBy:  model.TableName + "." + model.FieldID,
		SortDir: gDto.SortDirAsc,
	}

	areas, err := s.repo.GetAll(ctx, params, gDto.FilterGroup{})
	if err != nil {
		log.Error().Err(err).Msg("failed to get areas")

		return res, failure.StoreUnavailable(fmt.Errorf("failed to get areas: %w", err))
	}

	res.FromModels(areas)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheListArea, res, s.cfg.Cache.AreaTTL); err != nil {
			log.Error().Err(err).Msg("failed to save areas to cache")
		}
	}()

	return res, nil
}
