package jwt_test

import (
	"context"
	"ihome/config"
	"ihome/infras/jwt"
	"ihome/infras/otel/mocks"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newService() jwt.JWT {
	cfg := &config.Config{}
	cfg.App.Name = "ihome"
	cfg.JWT.AccessSecret = "access-secret"
	cfg.JWT.RefreshSecret = "refresh-secret"
	cfg.JWT.AccessExpireMin = 15
	cfg.JWT.RefreshExpireMin = 60

	return jwt.New(cfg, mocks.NewOtel())
}

func TestGenerateAndValidate(t *testing.T) {
	ctx := context.Background()
	svc := newService()

	pair, err := svc.GenerateTokenPair(ctx, "user-1", "13812345678", "user")
	require.NoError(t, err)
	assert.Equal(t, "Bearer", pair.TokenType)
	assert.Equal(t, int64(900), pair.ExpiresIn)

	claims, err := svc.ValidateToken(ctx, pair.AccessToken, jwt.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "13812345678", claims.Mobile)
	assert.NotEmpty(t, claims.TokenID)

	_, err = svc.ValidateToken(ctx, pair.AccessToken, jwt.RefreshToken)
	assert.ErrorIs(t, err, jwt.ErrInvalidToken)

	_, err = svc.ValidateToken(ctx, "garbage", jwt.AccessToken)
	assert.ErrorIs(t, err, jwt.ErrInvalidToken)
}

func TestRefreshTokens(t *testing.T) {
	ctx := context.Background()
	svc := newService()

	pair, err := svc.GenerateTokenPair(ctx, "user-1", "13812345678", "user")
	require.NoError(t, err)

	refreshed, err := svc.RefreshTokens(ctx, pair.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, refreshed.AccessToken)

	_, err = svc.RefreshTokens(ctx, pair.AccessToken)
	assert.Error(t, err)
}

func TestExtractTokenFromHeader(t *testing.T) {
	token, err := jwt.ExtractTokenFromHeader("Bearer abc.def")
	require.NoError(t, err)
	assert.Equal(t, "abc.def", token)

	_, err = jwt.ExtractTokenFromHeader("")
	assert.ErrorIs(t, err, jwt.ErrMissingToken)

	_, err = jwt.ExtractTokenFromHeader("Token abc")
	assert.ErrorIs(t, err, jwt.ErrBearerFormat)

	_, err = jwt.ExtractTokenFromHeader("Bearer ")
	assert.ErrorIs(t, err, jwt.ErrBearerFormat)
}
