// Package sms sends template messages through the Yuntongxun (CCP) REST gateway.
package sms

//go:generate go run go.uber.org/mock/mockgen -source=./sms.go -destination=./mocks/sms_mock.go -package=mocks

import (
	"bytes"
	"context"
	"crypto/md5" //nolint:gosec
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"ihome/config"
	"ihome/infras/otel"
	"ihome/shared/constant"
	"ihome/shared/timezone"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

const (
	statusSuccess   = "000000"
	timestampLayout = "20060102150405"
)

var ErrGatewayRejected = errors.New("sms gateway rejected the request")

// Client sends a templated SMS. datas fill the template placeholders in order.
type Client interface {
	SendTemplate(ctx context.Context, mobile, templateID string, datas ...string) error
}

type templateRequest struct {
	To         string   `json:"to"`
	AppID      string   `json:"appId"`
	TemplateID string   `json:"templateId"`
	Datas      []string `json:"datas"`
}

type templateResponse struct {
	StatusCode string `json:"statusCode"`
	StatusMsg  string `json:"statusMsg"`
}

type clientImpl struct {
	cfg        *config.Config
	otel       otel.Otel
	httpClient *http.Client
	now        func() time.Time
}

func New(cfg *config.Config, otl otel.Otel) Client {
	timeout := time.Duration(cfg.External.SMS.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return NewWithHTTPClient(cfg, otl, &http.Client{Timeout: timeout})
}

func NewWithHTTPClient(cfg *config.Config, otl otel.Otel, httpClient *http.Client) Client {
	return &clientImpl{
		cfg:        cfg,
		otel:       otl,
		httpClient: httpClient,
		now:        timezone.Now,
	}
}

// signature returns the upper-case MD5 of sid+token+timestamp required in the query string.
func signature(sid, token, timestamp string) string {
	sum := md5.Sum([]byte(sid + token + timestamp)) //nolint:gosec

	return strings.ToUpper(hex.EncodeToString(sum[:]))
}

func (c *clientImpl) SendTemplate(ctx context.Context, mobile, templateID string, datas ...string) (err error) {
	ctx, scope := c.otel.NewScope(ctx, constant.OtelExternalScopeName, constant.OtelSMSScopeName+".SendTemplate")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	smsCfg := c.cfg.External.SMS
	timestamp := c.now().Format(timestampLayout)

	endpoint := fmt.Sprintf("%s/%s/Accounts/%s/SMS/TemplateSMS?sig=%s",
		strings.TrimSuffix(smsCfg.BaseURL, "/"),
		smsCfg.SoftVersion,
		smsCfg.AccountSID,
		signature(smsCfg.AccountSID, smsCfg.AuthToken, timestamp),
	)

	scope.SetAttributes(map[string]any{
		"sms.template": templateID,
	})

	if datas == nil {
		datas = []string{}
	}

	body, err := json.Marshal(templateRequest{
		To:         mobile,
		AppID:      smsCfg.AppID,
		TemplateID: templateID,
		Datas:      datas,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal sms request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build sms request: %w", err)
	}

	req.Header.Set("Accept", constant.ContentTypeJSON)
	req.Header.Set(constant.RequestHeaderContentType, constant.ContentTypeJSON+";charset=utf-8")
	req.Header.Set(constant.RequestHeaderAuthorization, base64.StdEncoding.EncodeToString([]byte(smsCfg.AccountSID+":"+timestamp)))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Error().Err(err).Msg("failed to call sms gateway")

		return fmt.Errorf("failed to call sms gateway: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: unexpected http status %d", ErrGatewayRejected, resp.StatusCode)
	}

	var result templateResponse
	if err = json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return fmt.Errorf("failed to decode sms response: %w", err)
	}

	if result.StatusCode != statusSuccess {
		log.Error().Str("statusCode", result.StatusCode).Str("statusMsg", result.StatusMsg).Msg("sms gateway returned failure")

		return fmt.Errorf("%w: %s %s", ErrGatewayRejected, result.StatusCode, result.StatusMsg)
	}

	log.Info().Str("template", templateID).Msg("sms sent")

	return nil
}
