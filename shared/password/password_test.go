package password_test

import (
	"ihome/shared/password"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndVerify(t *testing.T) {
	hash, err := password.Hash("abcd1234")
	require.NoError(t, err)
	assert.NotEqual(t, "abcd1234", hash)

	assert.NoError(t, password.Verify("abcd1234", hash))
	assert.ErrorIs(t, password.Verify("wrong1234", hash), password.ErrInvalidPassword)
}

func TestHash_Empty(t *testing.T) {
	_, err := password.Hash("")
	assert.ErrorIs(t, err, password.ErrEmptyPassword)
}

func TestVerify_EmptyInputs(t *testing.T) {
	assert.ErrorIs(t, password.Verify("", "hash"), password.ErrInvalidPassword)
	assert.ErrorIs(t, password.Verify("abcd1234", ""), password.ErrInvalidPassword)
}

func TestVerify_MalformedHash(t *testing.T) {
	err := password.Verify("abcd1234", "not-a-bcrypt-hash")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, password.ErrInvalidPassword)
}
