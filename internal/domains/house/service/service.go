package service

import (
	"context"
	"fmt"
	"time"

	"ihome/config"
	"ihome/infras/otel"
	"ihome/infras/s3"
	areaModel "ihome/internal/domains/area/model"
	areaRepo "ihome/internal/domains/area/repository"
	bookingModel "ihome/internal/domains/booking/model"
	bookingRepo "ihome/internal/domains/booking/repository"
	"ihome/internal/domains/house/model"
	"ihome/internal/domains/house/model/dto"
	"ihome/internal/domains/house/repository"
	userModel "ihome/internal/domains/user/model"
	userRepo "ihome/internal/domains/user/repository"
	"ihome/shared"
	"ihome/shared/cache"
	"ihome/shared/constant"
	gDto "ihome/shared/dto"
	"ihome/shared/failure"
	"ihome/shared/timezone"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

type House interface {
	Search(ctx context.Context, req dto.SearchRequest) (dto.SearchResponse, error)
	Index(ctx context.Context) (dto.HousesResponse, error)
	Detail(ctx context.Context, viewer, id string) (dto.DetailResponse, error)
	MyHouses(ctx context.Context, actor string) (dto.HousesResponse, error)
	Create(ctx context.Context, actor string, req dto.CreateHouseRequest) (dto.CreateHouseResponse, error)
	UploadImage(ctx context.Context, actor, id string, req dto.UploadImageRequest) (dto.UploadImageResponse, error)
}

type serviceImpl struct {
	repo        repository.House
	bookingRepo bookingRepo.Booking
	areaRepo    areaRepo.Area
	userRepo    userRepo.User
	cfg         *config.Config
	cache       cache.RedisCache
	otel        otel.Otel
	s3          s3.S3
}

func New(
	repo repository.House,
	bookingRepo bookingRepo.Booking,
	areaRepo areaRepo.Area,
	userRepo userRepo.User,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
	s3 s3.S3,
) House {
	return &serviceImpl{
		repo:        repo,
		bookingRepo: bookingRepo,
		areaRepo:    areaRepo,
		userRepo:    userRepo,
		cfg:         cfg,
		cache:       cache,
		otel:        otel,
		s3:          s3,
	}
}

func (s *serviceImpl) pageSize() int {
	if s.cfg.App.HousePageSize > 0 {
		return s.cfg.App.HousePageSize
	}

	return constant.DefaultHousePageSize
}

// Search lists houses free of conflicting bookings in the requested range. Pages past the
// last one fail with ErrPageOutOfRange. An empty result still has one (empty) page.
func (s *serviceImpl) Search(ctx context.Context, req dto.SearchRequest) (res dto.SearchResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Search")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	req.Normalize()

	areaID, err := req.Area()
	if err != nil {
		return res, err
	}

	begin, end, err := req.Bounds()
	if err != nil {
		return res, err
	}

	cacheKey := shared.BuildCacheKey(model.CacheKeySearch, req.AreaID, req.StartDate, req.EndDate, req.SortKey, req.Page)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for house search")

		return res, nil
	}

	filter := searchFilter(areaID, begin, end)

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count houses")

		return res, failure.StoreUnavailable(fmt.Errorf("failed to count houses: %w", err))
	}

	pageSize := s.pageSize()
	if req.Page > shared.CalculateTotalPage(total, pageSize) {
		return res, model.ErrPageOutOfRange
	}

	sortBy, sortDir := model.Ordering(req.SortKey)
	params := gDto.QueryParams{
		Page:    req.Page,
		Limit:   pageSize,
		SortBy:  sortBy,
		SortDir: sortDir,
	}

	houses, err := s.repo.GetAll(ctx, params, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get houses")

		return res, failure.StoreUnavailable(fmt.Errorf("failed to get houses: %w", err))
	}

	res.FromModels(houses, total, pageSize)

	s.remember(ctx, cacheKey, res, s.cfg.Cache.HouseListTTL)

	return res, nil
}

// searchFilter excludes houses with a colliding booking through a subquery, so the
// statement size does not grow with the number of booked houses.
func searchFilter(areaID *int, begin, end *time.Time) gDto.FilterGroup {
	filter := gDto.FilterGroup{
		Filters:  []any{},
		Operator: gDto.FilterGroupOperatorAnd,
	}

	if areaID != nil {
		filter.Filters = append(filter.Filters, gDto.Filter{
			Field:    model.FieldAreaID,
			Value:    *areaID,
			Operator: gDto.FilterOperatorEq,
			Table:    model.TableName,
		})
	}

	if conflicting, ok := bookingModel.ConflictingHouses(begin, end); ok {
		filter.Filters = append(filter.Filters, gDto.Filter{
			Field:    model.FieldID,
			Value:    conflicting,
			Operator: gDto.FilterOperatorNotIn,
			Table:    model.TableName,
		})
	}

	return filter
}

func (s *serviceImpl) Index(ctx context.Context) (res dto.HousesResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Index")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	err = s.cache.Get(ctx, model.CacheKeyIndex, &res)
	if err == nil {
		log.Info().Str("cacheKey", model.CacheKeyIndex).Msg("cache hit for house index")

		return res, nil
	}

	params := gDto.QueryParams{
		Limit:   model.IndexSize,
		SortBy:  model.TableName + "." + model.FieldOrderCount,
		SortDir: gDto.SortDirDesc,
	}

	filter := gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{Field: model.FieldIndexImageURL, Value: constant.Empty, Operator: gDto.FilterOperatorNotEq, Table: model.TableName},
		},
	}

	houses, err := s.repo.GetAll(ctx, params, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get index houses")

		return res, failure.StoreUnavailable(fmt.Errorf("failed to get index houses: %w", err))
	}

	res.FromModels(houses)

	s.remember(ctx, model.CacheKeyIndex, res, s.cfg.Cache.HouseListTTL)

	return res, nil
}

func (s *serviceImpl) Detail(ctx context.Context, viewer, id string) (res dto.DetailResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Detail")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	res.ViewerID = viewer
	cacheKey := shared.BuildCacheKey(model.CacheKeyDetail, id)

	err = s.cache.Get(ctx, cacheKey, &res.House)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for house")

		return res, nil
	}

	house, err := s.get(ctx, id)
	if err != nil {
		return res, err
	}

	images, err := s.repo.Images(ctx, id)
	if err != nil {
		log.Error().Err(err).Msg("failed to get house images")

		return res, failure.StoreUnavailable(fmt.Errorf("failed to get house images: %w", err))
	}

	facilities, err := s.repo.Facilities(ctx, id)
	if err != nil {
		log.Error().Err(err).Msg("failed to get house facilities")

		return res, failure.StoreUnavailable(fmt.Errorf("failed to get house facilities: %w", err))
	}

	comments, err := s.bookingRepo.GetAll(ctx, gDto.QueryParams{
		Limit:   model.CommentLimit,
		SortBy:  bookingModel.TableName + "." + constant.FieldModifiedAt,
		SortDir: gDto.SortDirDesc,
	}, commentFilter(id))
	if err != nil {
		log.Error().Err(err).Msg("failed to get house comments")

		return res, failure.StoreUnavailable(fmt.Errorf("failed to get house comments: %w", err))
	}

	res.House.FromModel(house, images, facilities, comments)

	s.remember(ctx, cacheKey, res.House, s.cfg.Cache.HouseTTL)

	return res, nil
}

func commentFilter(houseID string) gDto.FilterGroup {
	return gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{Field: bookingModel.FieldHouseID, Value: houseID, Operator: gDto.FilterOperatorEq, Table: bookingModel.TableName},
			gDto.Filter{Field: bookingModel.FieldStatus, Value: bookingModel.StatusComplete, Operator: gDto.FilterOperatorEq, Table: bookingModel.TableName},
			gDto.Filter{Field: bookingModel.FieldComment, Value: constant.Empty, Operator: gDto.FilterOperatorNotEq, Table: bookingModel.TableName},
		},
		Operator: gDto.FilterGroupOperatorAnd,
	}
}

func (s *serviceImpl) MyHouses(ctx context.Context, actor string) (res dto.HousesResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".MyHouses")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if err = s.requireRealName(ctx, actor); err != nil {
		return res, err
	}

	params := gDto.QueryParams{
		SortBy:  model.TableName + "." + model.FieldCreatedAt,
		SortDir: gDto.SortDirDesc,
	}

	houses, err := s.repo.GetAll(ctx, params, shared.FilterByID(actor, model.FieldUserID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get user houses")

		return res, failure.StoreUnavailable(fmt.Errorf("failed to get user houses: %w", err))
	}

	res.FromModels(houses)

	return res, nil
}

func (s *serviceImpl) requireRealName(ctx context.Context, actor string) error {
	user, err := s.userRepo.Get(ctx, shared.FilterByID(actor, userModel.FieldID, userModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get user")

		return failure.StoreUnavailable(fmt.Errorf("failed to get user: %w", err))
	}

	if user.ID == constant.Empty {
		return userModel.ErrNotFound
	}

	if !user.HasRealName() {
		return userModel.ErrRealNameRequired
	}

	return nil
}

func (s *serviceImpl) Create(ctx context.Context, actor string, req dto.CreateHouseRequest) (res dto.CreateHouseResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if req.MaxDays != 0 && req.MaxDays < req.MinDays {
		return res, model.ErrInvalidDays
	}

	areaExists, err := s.areaRepo.Exist(ctx, gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{Field: areaModel.FieldID, Value: req.AreaID, Operator: gDto.FilterOperatorEq, Table: areaModel.TableName},
		},
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to check area")

		return res, failure.StoreUnavailable(fmt.Errorf("failed to check area: %w", err))
	}

	if !areaExists {
		return res, model.ErrUnknownArea
	}

	facilityIDs := req.FacilityIDs()
	if len(facilityIDs) > 0 {
		found, err := s.repo.CountFacilities(ctx, facilityIDs)
		if err != nil {
			log.Error().Err(err).Msg("failed to check facilities")

			return res, failure.StoreUnavailable(fmt.Errorf("failed to check facilities: %w", err))
		}

		if found != len(facilityIDs) {
			return res, model.ErrUnknownFacility
		}
	}

	house := req.ToModel(actor, timezone.Now())

	if err = s.repo.CreateWithFacilities(ctx, house, facilityIDs); err != nil {
		log.Error().Err(err).Msg("failed to create house")

		return res, failure.StoreUnavailable(fmt.Errorf("failed to create house: %w", err))
	}

	go func() {
		shared.InvalidateCaches(context.WithoutCancel(ctx), s.cache, model.CacheKeySearch)
	}()

	res.ID = house.ID

	return res, nil
}

func (s *serviceImpl) UploadImage(ctx context.Context, actor, id string, req dto.UploadImageRequest) (res dto.UploadImageResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".UploadImage")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	house, err := s.get(ctx, id)
	if err != nil {
		return res, err
	}

	if house.UserID != actor {
		return res, model.ErrNotOwner
	}

	url, err := s.s3.UploadFile(ctx, model.EntityName, req.ImageFile, &req.Image)
	if err != nil {
		log.Error().Err(err).Msg("failed to upload house image")

		return res, failure.BadGateway(fmt.Errorf("failed to upload house image: %w", err))
	}

	image := model.HouseImage{
		ID:        uuid.NewString(),
		HouseID:   id,
		URL:       url,
		CreatedAt: timezone.Now(),
	}

	if err = s.repo.AddImage(ctx, image, actor); err != nil {
		log.Error().Err(err).Msg("failed to save house image")

		if directory, objectName := s.s3.ObjectNameFromURL(url); objectName != constant.Empty {
			_ = s.s3.DeleteFile(ctx, directory, objectName)
		}

		return res, failure.StoreUnavailable(fmt.Errorf("failed to save house image: %w", err))
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(model.CacheKeyDetail, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete house from cache")
		}

		shared.InvalidateCaches(c, s.cache, model.CacheKeyIndex)
		shared.InvalidateCaches(c, s.cache, model.CacheKeySearch)
	}()

	res.URL = url

	return res, nil
}

func (s *serviceImpl) get(ctx context.Context, id string) (model.House, error) {
	house, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get house")

		return house, failure.StoreUnavailable(fmt.Errorf("failed to get house: %w", err))
	}

	if house.ID == constant.Empty {
		return house, model.ErrNotFound
	}

	return house, nil
}

func (s *serviceImpl) remember(ctx context.Context, key string, value any, ttl int) {
	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, key, value, ttl); err != nil {
			log.Error().Err(err).Str("key", key).Msg("failed to save houses to cache")
		}
	}()
}
