package captcha_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ihome/shared/captcha"
)

var pngSignature = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}

func TestGenerator_Digits(t *testing.T) {
	gen := captcha.New()

	for _, n := range []int{4, 6} {
		code := gen.Digits(n)

		assert.Len(t, code, n)

		for _, r := range code {
			assert.True(t, r >= '0' && r <= '9', "unexpected rune %q", r)
		}
	}
}

func TestGenerator_Render(t *testing.T) {
	gen := captcha.New()

	img, err := gen.Render("1b4e28ba-2fa1-11d2-883f-0016d3cca427", "2024")
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(img, pngSignature))

	_, err = gen.Render("id", "12ab")
	assert.Error(t, err)
}
