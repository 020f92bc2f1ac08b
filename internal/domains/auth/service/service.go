package service

import (
	"context"
	"errors"
	"fmt"
	"ihome/config"
	"ihome/infras/jwt"
	"ihome/infras/otel"
	"ihome/internal/domains/auth/model/dto"
	userModel "ihome/internal/domains/user/model"
	userRepo "ihome/internal/domains/user/repository"
	verificationModel "ihome/internal/domains/verification/model"
	"ihome/shared"
	"ihome/shared/cache"
	"ihome/shared/constant"
	gDto "ihome/shared/dto"
	"ihome/shared/failure"
	"ihome/shared/password"
	"ihome/shared/timezone"
	"net/http"

	"github.com/rs/zerolog/log"
)

const (
	cacheKeyRevoked = "auth:revoked"
	secondsPerMin   = 60
)

var (
	ErrMobileTaken        = failure.New(http.StatusConflict, "mobile is already registered")
	ErrInvalidCredentials = failure.New(http.StatusUnauthorized, "invalid mobile or password")
	ErrWrongPassword      = failure.New(http.StatusBadRequest, "current password is incorrect")
)

type Auth interface {
	Register(ctx context.Context, req dto.RegisterRequest) (dto.LoginResponse, error)
	Login(ctx context.Context, req dto.LoginRequest) (dto.LoginResponse, error)
	RefreshToken(ctx context.Context, req dto.RefreshTokenRequest) (dto.LoginResponse, error)
	Logout(ctx context.Context, tokenID string) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
	Session(ctx context.Context, actor string) (dto.SessionResponse, error)
	ChangePassword(ctx context.Context, actor string, req dto.ChangePasswordRequest) error
}

type serviceImpl struct {
	userRepo   userRepo.User
	cfg        *config.Config
	cache      cache.RedisCache
	otel       otel.Otel
	jwtService jwt.JWT
}

func New(userRepo userRepo.User, cfg *config.Config, cache cache.RedisCache, otel otel.Otel, jwt jwt.JWT) Auth {
	return &serviceImpl{
		userRepo:   userRepo,
		cfg:        cfg,
		cache:      cache,
		otel:       otel,
		jwtService: jwt,
	}
}

func mobileFilter(mobile string) gDto.FilterGroup {
	return shared.FilterByID(mobile, userModel.FieldMobile, userModel.TableName)
}

// Register consumes the SMS code sent to the mobile. The code is deleted whether or not it matches.
func (s *serviceImpl) Register(ctx context.Context, req dto.RegisterRequest) (res dto.LoginResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Register")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	smsKey := verificationModel.SMSCodeKey(req.Mobile)

	var code string
	if err = s.cache.Get(ctx, smsKey, &code); err != nil {
		if errors.Is(err, cache.Nil) {
			return res, verificationModel.ErrSMSCodeExpired
		}

		log.Error().Err(err).Msg("failed to read sms code")

		return res, failure.StoreUnavailable(fmt.Errorf("failed to read sms code: %w", err))
	}

	if err = s.cache.Delete(ctx, smsKey); err != nil {
		log.Error().Err(err).Str("mobile", userModel.MaskMobile(req.Mobile)).Msg("failed to delete sms code")
	}

	if code != req.SMSCode {
		return res, verificationModel.ErrSMSCodeMismatch
	}

	exists, err := s.userRepo.Exist(ctx, mobileFilter(req.Mobile))
	if err != nil {
		log.Error().Err(err).Msg("failed to check if user exists")

		return res, failure.StoreUnavailable(fmt.Errorf("failed to check if user exists: %w", err))
	}

	if exists {
		return res, ErrMobileTaken
	}

	hashedPassword, err := password.Hash(req.Password)
	if err != nil {
		log.Error().Err(err).Msg("failed to hash password")

		return res, failure.InternalError(fmt.Errorf("failed to hash password: %w", err))
	}

	user := req.ToUserModel(hashedPassword, timezone.Now())

	if err = s.userRepo.Insert(ctx, user); err != nil {
		log.Error().Err(err).Msg("failed to create user")

		return res, failure.StoreUnavailable(fmt.Errorf("failed to create user: %w", err))
	}

	return s.issue(ctx, user)
}

func (s *serviceImpl) Login(ctx context.Context, req dto.LoginRequest) (res dto.LoginResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Login")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	user, err := s.userRepo.Get(ctx, mobileFilter(req.Mobile))
	if err != nil {
		log.Error().Err(err).Msg("failed to get user")

		return res, failure.StoreUnavailable(fmt.Errorf("failed to get user: %w", err))
	}

	if user.ID == constant.Empty {
		log.Warn().Str("mobile", userModel.MaskMobile(req.Mobile)).Msg("login attempt with unknown mobile")

		return res, ErrInvalidCredentials
	}

	if err = password.Verify(req.Password, user.PasswordHash); err != nil {
		log.Warn().Str("mobile", userModel.MaskMobile(req.Mobile)).Msg("login attempt with wrong password")

		return res, ErrInvalidCredentials
	}

	return s.issue(ctx, user)
}

func (s *serviceImpl) issue(ctx context.Context, user userModel.User) (res dto.LoginResponse, err error) {
	tokenPair, err := s.jwtService.GenerateTokenPair(ctx, user.ID, user.Mobile, user.Role)
	if err != nil {
		log.Error().Err(err).Msg("failed to generate tokens")

		return res, failure.InternalError(fmt.Errorf("failed to generate tokens: %w", err))
	}

	res.FromTokenPair(tokenPair)

	return res, nil
}

func (s *serviceImpl) RefreshToken(ctx context.Context, req dto.RefreshTokenRequest) (res dto.LoginResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".RefreshToken")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	tokenPair, err := s.jwtService.RefreshTokens(ctx, req.RefreshToken)
	if err != nil {
		log.Warn().Err(err).Msg("failed to refresh tokens")

		return res, failure.Unauthorized("invalid refresh token") //nolint:wrapcheck
	}

	res.FromTokenPair(tokenPair)

	return res, nil
}

// Logout revokes the access token until it would have expired anyway.
func (s *serviceImpl) Logout(ctx context.Context, tokenID string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Logout")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	ttl := s.cfg.JWT.AccessExpireMin * secondsPerMin

	if err = s.cache.Save(ctx, shared.BuildCacheKey(cacheKeyRevoked, tokenID), constant.Empty, ttl); err != nil {
		log.Error().Err(err).Msg("failed to revoke token")

		return failure.StoreUnavailable(fmt.Errorf("failed to revoke token: %w", err))
	}

	return nil
}

func (s *serviceImpl) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	revoked, err := s.cache.Exists(ctx, shared.BuildCacheKey(cacheKeyRevoked, tokenID))
	if err != nil {
		return false, fmt.Errorf("failed to check token revocation: %w", err)
	}

	return revoked, nil
}

func (s *serviceImpl) Session(ctx context.Context, actor string) (res dto.SessionResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Session")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	user, err := s.get(ctx, actor)
	if err != nil {
		return res, err
	}

	res.FromModel(user)

	return res, nil
}

func (s *serviceImpl) ChangePassword(ctx context.Context, actor string, req dto.ChangePasswordRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ChangePassword")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	user, err := s.get(ctx, actor)
	if err != nil {
		return err
	}

	if err = password.Verify(req.CurrentPassword, user.PasswordHash); err != nil {
		return ErrWrongPassword
	}

	hashedPassword, err := password.Hash(req.NewPassword)
	if err != nil {
		log.Error().Err(err).Msg("failed to hash new password")

		return failure.InternalError(fmt.Errorf("failed to hash new password: %w", err))
	}

	updatedFields := shared.TransformFields(dto.UpdatePasswordRequest{PasswordHash: hashedPassword}, actor)

	if err = s.userRepo.Update(ctx, updatedFields, shared.FilterByID(actor, userModel.FieldID, userModel.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to update password")

		return failure.StoreUnavailable(fmt.Errorf("failed to update password: %w", err))
	}

	return nil
}

func (s *serviceImpl) get(ctx context.Context, id string) (userModel.User, error) {
	user, err := s.userRepo.Get(ctx, shared.FilterByID(id, userModel.FieldID, userModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get user")

		return user, failure.StoreUnavailable(fmt.Errorf("failed to get user: %w", err))
	}

	if user.ID == constant.Empty {
		return user, userModel.ErrNotFound
	}

	return user, nil
}
