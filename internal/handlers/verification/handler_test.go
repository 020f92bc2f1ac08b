package verification_test

import (
	"context"
	"ihome/infras/otel/mocks"
	verificationModel "ihome/internal/domains/verification/model"
	"ihome/internal/domains/verification/model/dto"
	"ihome/internal/handlers/verification"
	"ihome/shared/constant"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
)

const captchaID = "4f1c2a8e-5b7d-4c3e-9a6f-0d2b8e7c1a90"

type serviceStub struct {
	image   []byte
	sendErr error
	sent    []dto.SMSCodeRequest
}

func (s *serviceStub) ImageCode(_ context.Context, _ dto.ImageCodeRequest) ([]byte, error) {
	return s.image, nil
}

func (s *serviceStub) SendSMSCode(_ context.Context, req dto.SMSCodeRequest) error {
	s.sent = append(s.sent, req)

	return s.sendErr
}

func newRouter(svc *serviceStub) http.Handler {
	handler := verification.New(svc, mocks.NewOtel())
	noLimit := func(next http.Handler) http.Handler { return next }

	router := chi.NewRouter()
	handler.Router(router, noLimit)

	return router
}

func TestHandler_GetImageCode(t *testing.T) {
	png := []byte("\x89PNG\r\n\x1a\n")

	tests := []struct {
		name     string
		query    string
		wantCode int
	}{
		{name: "renders png", query: "?cur=" + captchaID, wantCode: http.StatusOK},
		{name: "missing cur", query: "", wantCode: http.StatusBadRequest},
		{name: "malformed pre", query: "?cur=" + captchaID + "&pre=abc", wantCode: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			newRouter(&serviceStub{image: png}).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/verifications/image"+tt.query, nil))

			assert.Equal(t, tt.wantCode, rec.Code)

			if tt.wantCode == http.StatusOK {
				assert.Equal(t, constant.ContentTypePNG, rec.Header().Get(constant.RequestHeaderContentType))
				assert.Equal(t, png, rec.Body.Bytes())
			}
		})
	}
}

func TestHandler_SendSMSCode(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		sendErr  error
		wantCode int
		wantSent int
	}{
		{
			name:     "sends code",
			body:     `{"mobile":"13800138000","image_code_id":"` + captchaID + `","image_code":"1234"}`,
			wantCode: http.StatusOK,
			wantSent: 1,
		},
		{
			name:     "invalid mobile",
			body:     `{"mobile":"12345","image_code_id":"` + captchaID + `","image_code":"1234"}`,
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "too frequent",
			body:     `{"mobile":"13800138000","image_code_id":"` + captchaID + `","image_code":"1234"}`,
			sendErr:  verificationModel.ErrSMSTooFrequent,
			wantCode: http.StatusTooManyRequests,
			wantSent: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &serviceStub{sendErr: tt.sendErr}

			req := httptest.NewRequest(http.MethodPost, "/verifications/sms", strings.NewReader(tt.body))
			req.Header.Set(constant.RequestHeaderContentType, constant.ContentTypeJSON)

			rec := httptest.NewRecorder()
			newRouter(svc).ServeHTTP(rec, req)

			assert.Equal(t, tt.wantCode, rec.Code)
			assert.Len(t, svc.sent, tt.wantSent)
		})
	}
}
