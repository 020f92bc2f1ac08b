package model_test

import (
	"ihome/internal/domains/user/model"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMaskMobile(t *testing.T) {
	assert.Equal(t, "138****8000", model.MaskMobile("13800138000"))
	assert.Equal(t, "1234", model.MaskMobile("1234"))
}

func TestUser_DisplayName(t *testing.T) {
	assert.Equal(t, "138****8000", model.User{Mobile: "13800138000", Username: "13800138000"}.DisplayName())
	assert.Equal(t, "tenant", model.User{Mobile: "13800138000", Username: "tenant"}.DisplayName())
}

func TestUser_HasRealName(t *testing.T) {
	assert.False(t, model.User{}.HasRealName())
	assert.False(t, model.User{RealName: "Zhang San"}.HasRealName())
	assert.True(t, model.User{RealName: "Zhang San", IDCard: "11010519491231002X"}.HasRealName())
}
