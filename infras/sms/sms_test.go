package sms

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"ihome/config"
	"ihome/infras/otel/mocks"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *clientImpl {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	cfg := &config.Config{}
	cfg.External.SMS.BaseURL = server.URL
	cfg.External.SMS.SoftVersion = "2013-12-26"
	cfg.External.SMS.AccountSID = "sid"
	cfg.External.SMS.AuthToken = "token"
	cfg.External.SMS.AppID = "app"

	client, ok := NewWithHTTPClient(cfg, mocks.NewOtel(), server.Client()).(*clientImpl)
	require.True(t, ok)

	client.now = func() time.Time { return time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC) }

	return client
}

func TestSignature(t *testing.T) {
	sig := signature("sid", "token", "20240102030405")

	assert.Len(t, sig, 32)
	assert.Equal(t, sig, signature("sid", "token", "20240102030405"))
	assert.NotEqual(t, sig, signature("sid", "token", "20240102030406"))
}

func TestSendTemplate_Success(t *testing.T) {
	var received templateRequest

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/2013-12-26/Accounts/sid/SMS/TemplateSMS", r.URL.Path)
		assert.Equal(t, signature("sid", "token", "20240102030405"), r.URL.Query().Get("sig"))

		auth, err := base64.StdEncoding.DecodeString(r.Header.Get("Authorization"))
		assert.NoError(t, err)
		assert.Equal(t, "sid:20240102030405", string(auth))

		assert.NoError(t, json.NewDecoder(r.Body).Decode(&received))

		_, _ = w.Write([]byte(`{"statusCode":"000000"}`))
	})

	err := client.SendTemplate(context.Background(), "13812345678", "1", "123456", "5")
	require.NoError(t, err)

	assert.Equal(t, "13812345678", received.To)
	assert.Equal(t, "app", received.AppID)
	assert.Equal(t, []string{"123456", "5"}, received.Datas)
}

func TestSendTemplate_GatewayFailure(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			name: "status code not success",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte(`{"statusCode":"112300","statusMsg":"invalid mobile"}`))
			},
		},
		{
			name: "http error",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, tt.handler)

			err := client.SendTemplate(context.Background(), "13812345678", "1")
			assert.ErrorIs(t, err, ErrGatewayRejected)
		})
	}
}

func TestSendTemplate_MalformedResponse(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`not json`))
	})

	err := client.SendTemplate(context.Background(), "13812345678", "1")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrGatewayRejected)
}
