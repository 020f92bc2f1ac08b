package service

import (
	"context"
	"fmt"
	"ihome/config"
	"ihome/infras/otel"
	"ihome/infras/s3"
	"ihome/internal/domains/user/model"
	"ihome/internal/domains/user/model/dto"
	"ihome/internal/domains/user/repository"
	"ihome/shared"
	"ihome/shared/cache"
	"ihome/shared/constant"
	gDto "ihome/shared/dto"
	"ihome/shared/failure"
	"ihome/shared/timezone"

	"github.com/rs/zerolog/log"
)

const (
	cacheGetUser = "user:get"

	argCurrentRealName = "current_real_name"
	argOtherUserID     = "other_user_id"
)

type User interface {
	Profile(ctx context.Context, actor string) (dto.ProfileResponse, error)
	Rename(ctx context.Context, actor string, req dto.RenameRequest) error
	UploadAvatar(ctx context.Context, actor string, req dto.UploadAvatarRequest) (dto.AvatarResponse, error)
	GetRealName(ctx context.Context, actor string) (dto.RealNameResponse, error)
	SetRealName(ctx context.Context, actor string, req dto.RealNameRequest) error
}

type serviceImpl struct {
	repo  repository.User
	cfg   *config.Config
	cache cache.RedisCache
	otel  otel.Otel
	s3    s3.S3
}

func New(repo repository.User, cfg *config.Config, cache cache.RedisCache, otel otel.Otel, s3 s3.S3) User {
	return &serviceImpl{
		repo:  repo,
		cfg:   cfg,
		cache: cache,
		otel:  otel,
		s3:    s3,
	}
}

func (s *serviceImpl) get(ctx context.Context, id string) (model.User, error) {
	user, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get user")

		return user, failure.StoreUnavailable(fmt.Errorf("failed to get user: %w", err))
	}

	if user.ID == constant.Empty {
		return user, model.ErrNotFound
	}

	return user, nil
}

func (s *serviceImpl) Profile(ctx context.Context, actor string) (res dto.ProfileResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Profile")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKey(cacheGetUser, actor)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for user")

		return res, nil
	}

	user, err := s.get(ctx, actor)
	if err != nil {
		return res, err
	}

	res.FromModel(user)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save user to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Rename(ctx context.Context, actor string, req dto.RenameRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Rename")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	taken, err := s.repo.Exist(ctx, gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{Field: model.FieldUsername, Value: req.Name, Operator: gDto.FilterOperatorEq, Table: model.TableName},
			gDto.Filter{ArgName: argOtherUserID, Field: model.FieldID, Value: actor, Operator: gDto.FilterOperatorNotEq, Table: model.TableName},
		},
		Operator: gDto.FilterGroupOperatorAnd,
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to check username")

		return failure.StoreUnavailable(fmt.Errorf("failed to check username: %w", err))
	}

	if taken {
		return model.ErrUsernameTaken
	}

	if err = s.repo.Update(ctx, shared.TransformFields(req, actor), shared.FilterByID(actor, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to rename user")

		return failure.StoreUnavailable(fmt.Errorf("failed to rename user: %w", err))
	}

	s.forget(ctx, actor)

	return nil
}

func (s *serviceImpl) UploadAvatar(ctx context.Context, actor string, req dto.UploadAvatarRequest) (res dto.AvatarResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".UploadAvatar")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	user, err := s.get(ctx, actor)
	if err != nil {
		return res, err
	}

	url, err := s.s3.UploadFile(ctx, model.EntityName, req.AvatarFile, &req.Avatar)
	if err != nil {
		log.Error().Err(err).Msg("failed to upload avatar")

		return res, failure.BadGateway(fmt.Errorf("failed to upload avatar: %w", err))
	}

	fields := map[string]any{
		model.FieldAvatarURL:     url,
		constant.FieldModifiedAt: timezone.Now(),
		constant.FieldModifiedBy: actor,
	}

	if err = s.repo.Update(ctx, fields, shared.FilterByID(actor, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to save avatar")

		if _, objectName := s.s3.ObjectNameFromURL(url); objectName != constant.Empty {
			_ = s.s3.DeleteFile(ctx, model.EntityName, objectName)
		}

		return res, failure.StoreUnavailable(fmt.Errorf("failed to save avatar: %w", err))
	}

	if user.AvatarURL != constant.Empty {
		if directory, objectName := s.s3.ObjectNameFromURL(user.AvatarURL); objectName != constant.Empty {
			_ = s.s3.DeleteFile(ctx, directory, objectName)
		}
	}

	s.forget(ctx, actor)

	res.AvatarURL = url

	return res, nil
}

func (s *serviceImpl) GetRealName(ctx context.Context, actor string) (res dto.RealNameResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetRealName")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	user, err := s.get(ctx, actor)
	if err != nil {
		return res, err
	}

	res.FromModel(user)

	return res, nil
}

// SetRealName succeeds once. The conditional update rejects a second attempt even under concurrency.
func (s *serviceImpl) SetRealName(ctx context.Context, actor string, req dto.RealNameRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".SetRealName")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	filter := gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{Field: model.FieldID, Value: actor, Operator: gDto.FilterOperatorEq, Table: model.TableName},
			gDto.Filter{ArgName: argCurrentRealName, Field: model.FieldRealName, Value: constant.Empty, Operator: gDto.FilterOperatorEq, Table: model.TableName},
		},
		Operator: gDto.FilterGroupOperatorAnd,
	}

	affected, err := s.repo.UpdateAffected(ctx, shared.TransformFields(req, actor), filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to save real name")

		return failure.StoreUnavailable(fmt.Errorf("failed to save real name: %w", err))
	}

	if affected == 0 {
		exist, err := s.repo.Exist(ctx, shared.FilterByID(actor, model.FieldID, model.TableName))
		if err != nil {
			return failure.StoreUnavailable(fmt.Errorf("failed to check user: %w", err))
		}

		if !exist {
			return model.ErrNotFound
		}

		return model.ErrRealNameAlreadySet
	}

	s.forget(ctx, actor)

	return nil
}

func (s *serviceImpl) forget(ctx context.Context, id string) {
	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetUser, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete user from cache")
		}
	}()
}
