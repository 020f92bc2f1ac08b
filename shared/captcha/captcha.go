// Package captcha renders the numeric image codes that gate SMS delivery.
package captcha

//go:generate go run go.uber.org/mock/mockgen -source=./captcha.go -destination=./mocks/captcha_mock.go -package=mocks

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/dchest/captcha"
)

const (
	Width  = captcha.StdWidth
	Height = captcha.StdHeight
)

type Generator interface {
	// Digits returns n random decimal digits.
	Digits(n int) string
	// Render draws code as a PNG. The id seeds the distortion so one id always looks the same.
	Render(id, code string) ([]byte, error)
}

type generatorImpl struct {
	width  int
	height int
}

func New() Generator {
	return &generatorImpl{width: Width, height: Height}
}

func (g *generatorImpl) Digits(n int) string {
	var sb strings.Builder

	for _, d := range captcha.RandomDigits(n) {
		sb.WriteByte('0' + d)
	}

	return sb.String()
}

func (g *generatorImpl) Render(id, code string) ([]byte, error) {
	digits := make([]byte, len(code))

	for i, r := range code {
		if r < '0' || r > '9' {
			return nil, fmt.Errorf("captcha code must be numeric, got %q", code)
		}

		digits[i] = byte(r - '0')
	}

	var buf bytes.Buffer
	if _, err := captcha.NewImage(id, digits, g.width, g.height).WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("failed to encode captcha: %w", err)
	}

	return buf.Bytes(), nil
}
