package service_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"ihome/config"
	"ihome/infras/jwt"
	jwtMocks "ihome/infras/jwt/mocks"
	"ihome/infras/otel/mocks"
	"ihome/internal/domains/auth/model/dto"
	"ihome/internal/domains/auth/service"
	userMocks "ihome/internal/domains/user/mocks"
	userModel "ihome/internal/domains/user/model"
	verificationModel "ihome/internal/domains/verification/model"
	"ihome/shared/cache"
	cacheMocks "ihome/shared/cache/mocks"
	"ihome/shared/constant"
	"ihome/shared/failure"
	"ihome/shared/password"
)

const mobile = "13800138000"

var tokenPair = &jwt.TokenPair{AccessToken: "access", RefreshToken: "refresh", TokenType: "Bearer", ExpiresIn: 900}

type fixture struct {
	userRepo *userMocks.MockUser
	cache    *cacheMocks.MockRedisCache
	jwt      *jwtMocks.MockJWT
	svc      service.Auth
}

func newFixture(t *testing.T) fixture {
	ctrl := gomock.NewController(t)

	cfg := &config.Config{}
	cfg.JWT.AccessExpireMin = 15

	f := fixture{
		userRepo: userMocks.NewMockUser(ctrl),
		cache:    cacheMocks.NewMockRedisCache(ctrl),
		jwt:      jwtMocks.NewMockJWT(ctrl),
	}
	f.svc = service.New(f.userRepo, cfg, f.cache, mocks.NewOtel(), f.jwt)

	return f
}

func storedCode(code string) func(context.Context, string, any) error {
	return func(_ context.Context, _ string, value any) error {
		*value.(*string) = code

		return nil
	}
}

func TestAuthService_Register(t *testing.T) {
	req := dto.RegisterRequest{Mobile: mobile, SMSCode: "123456", Password: "secret123"}

	tests := []struct {
		name      string
		setupMock func(f fixture)
		wantErr   error
		wantCode  int
	}{
		{
			name: "registers and signs in",
			setupMock: func(f fixture) {
				f.cache.EXPECT().Get(gomock.Any(), "sms_"+mobile, gomock.Any()).DoAndReturn(storedCode("123456"))
				f.cache.EXPECT().Delete(gomock.Any(), "sms_"+mobile).Return(nil)
				f.userRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
				f.userRepo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, user userModel.User) error {
						assert.Equal(t, mobile, user.Mobile)
						assert.Equal(t, mobile, user.Username)
						assert.Equal(t, constant.RoleUser, user.Role)
						assert.NoError(t, password.Verify("secret123", user.PasswordHash))

						return nil
					})
				f.jwt.EXPECT().GenerateTokenPair(gomock.Any(), gomock.Any(), mobile, constant.RoleUser).Return(tokenPair, nil)
			},
		},
		{
			name: "code expired",
			setupMock: func(f fixture) {
				f.cache.EXPECT().Get(gomock.Any(), "sms_"+mobile, gomock.Any()).Return(fmt.Errorf("failed to get cache value: %w", cache.Nil))
			},
			wantErr:  verificationModel.ErrSMSCodeExpired,
			wantCode: http.StatusBadRequest,
		},
		{
			name: "code mismatch still consumes the code",
			setupMock: func(f fixture) {
				f.cache.EXPECT().Get(gomock.Any(), "sms_"+mobile, gomock.Any()).DoAndReturn(storedCode("654321"))
				f.cache.EXPECT().Delete(gomock.Any(), "sms_"+mobile).Return(nil)
			},
			wantErr:  verificationModel.ErrSMSCodeMismatch,
			wantCode: http.StatusBadRequest,
		},
		{
			name: "mobile already registered",
			setupMock: func(f fixture) {
				f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(storedCode("123456"))
				f.cache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil)
				f.userRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
			},
			wantErr:  service.ErrMobileTaken,
			wantCode: http.StatusConflict,
		},
		{
			name: "redis unavailable",
			setupMock: func(f fixture) {
				f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("connection refused"))
			},
			wantCode: http.StatusServiceUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setupMock(f)

			res, err := f.svc.Register(context.Background(), req)

			if tt.wantCode != 0 {
				assert.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				if tt.wantErr != nil {
					assert.ErrorIs(t, err, tt.wantErr)
				}

				return
			}

			assert.NoError(t, err)
			assert.Equal(t, "access", res.AccessToken)
			assert.Equal(t, "refresh", res.RefreshToken)
		})
	}
}

func TestAuthService_Login(t *testing.T) {
	hash, err := password.Hash("secret123")
	require.NoError(t, err)

	user := userModel.User{ID: "user-1", Mobile: mobile, PasswordHash: hash, Role: constant.RoleUser}

	tests := []struct {
		name      string
		req       dto.LoginRequest
		setupMock func(f fixture)
		wantCode  int
	}{
		{
			name: "successful login",
			req:  dto.LoginRequest{Mobile: mobile, Password: "secret123"},
			setupMock: func(f fixture) {
				f.userRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(user, nil)
				f.jwt.EXPECT().GenerateTokenPair(gomock.Any(), "user-1", mobile, constant.RoleUser).Return(tokenPair, nil)
			},
		},
		{
			name: "wrong password",
			req:  dto.LoginRequest{Mobile: mobile, Password: "secret124"},
			setupMock: func(f fixture) {
				f.userRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(user, nil)
			},
			wantCode: http.StatusUnauthorized,
		},
		{
			name: "unknown mobile",
			req:  dto.LoginRequest{Mobile: "13900139000", Password: "secret123"},
			setupMock: func(f fixture) {
				f.userRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(userModel.User{}, nil)
			},
			wantCode: http.StatusUnauthorized,
		},
		{
			name: "token generation failure",
			req:  dto.LoginRequest{Mobile: mobile, Password: "secret123"},
			setupMock: func(f fixture) {
				f.userRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(user, nil)
				f.jwt.EXPECT().GenerateTokenPair(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, errors.New("no secret"))
			},
			wantCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setupMock(f)

			res, err := f.svc.Login(context.Background(), tt.req)

			if tt.wantCode != 0 {
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			assert.NoError(t, err)
			assert.Equal(t, "access", res.AccessToken)
		})
	}
}

func TestAuthService_RefreshToken(t *testing.T) {
	f := newFixture(t)

	f.jwt.EXPECT().RefreshTokens(gomock.Any(), "good").Return(tokenPair, nil)
	f.jwt.EXPECT().RefreshTokens(gomock.Any(), "bad").Return(nil, jwt.ErrInvalidToken)

	res, err := f.svc.RefreshToken(context.Background(), dto.RefreshTokenRequest{RefreshToken: "good"})
	assert.NoError(t, err)
	assert.Equal(t, "refresh", res.RefreshToken)

	_, err = f.svc.RefreshToken(context.Background(), dto.RefreshTokenRequest{RefreshToken: "bad"})
	assert.Equal(t, http.StatusUnauthorized, failure.GetCode(err))
}

func TestAuthService_Logout(t *testing.T) {
	f := newFixture(t)

	f.cache.EXPECT().Save(gomock.Any(), "auth:revoked:token-1", "", 900).Return(nil)
	f.cache.EXPECT().Exists(gomock.Any(), "auth:revoked:token-1").Return(true, nil)

	assert.NoError(t, f.svc.Logout(context.Background(), "token-1"))

	revoked, err := f.svc.IsRevoked(context.Background(), "token-1")
	assert.NoError(t, err)
	assert.True(t, revoked)
}

func TestAuthService_Session(t *testing.T) {
	f := newFixture(t)

	f.userRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(userModel.User{ID: "user-1", Username: "tenant"}, nil)
	f.userRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(userModel.User{}, nil)

	res, err := f.svc.Session(context.Background(), "user-1")
	assert.NoError(t, err)
	assert.Equal(t, "tenant", res.Name)

	_, err = f.svc.Session(context.Background(), "ghost")
	assert.ErrorIs(t, err, userModel.ErrNotFound)
}

func TestAuthService_ChangePassword(t *testing.T) {
	hash, err := password.Hash("secret123")
	require.NoError(t, err)

	user := userModel.User{ID: "user-1", Mobile: mobile, PasswordHash: hash}

	t.Run("updates the hash", func(t *testing.T) {
		f := newFixture(t)

		f.userRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(user, nil)
		f.userRepo.EXPECT().
			Update(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, fields map[string]any, _ any) error {
				assert.NoError(t, password.Verify("newsecret1", fields[userModel.FieldPasswordHash].(string)))
				assert.Equal(t, "user-1", fields[constant.FieldModifiedBy])

				return nil
			})

		err := f.svc.ChangePassword(context.Background(), "user-1", dto.ChangePasswordRequest{CurrentPassword: "secret123", NewPassword: "newsecret1"})
		assert.NoError(t, err)
	})

	t.Run("wrong current password", func(t *testing.T) {
		f := newFixture(t)

		f.userRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(user, nil)

		err := f.svc.ChangePassword(context.Background(), "user-1", dto.ChangePasswordRequest{CurrentPassword: "nope12345", NewPassword: "newsecret1"})
		assert.ErrorIs(t, err, service.ErrWrongPassword)
	})
}
