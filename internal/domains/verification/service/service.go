package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"ihome/config"
	"ihome/infras/otel"
	"ihome/infras/sms"
	userModel "ihome/internal/domains/user/model"
	"ihome/internal/domains/verification/model"
	"ihome/internal/domains/verification/model/dto"
	"ihome/shared/cache"
	"ihome/shared/captcha"
	"ihome/shared/constant"
	"ihome/shared/failure"

	"github.com/rs/zerolog/log"
)

const (
	imageCodeLength = 4
	smsFlagValue    = "1"
	secondsPerMin   = 60
)

type Verification interface {
	ImageCode(ctx context.Context, req dto.ImageCodeRequest) ([]byte, error)
	SendSMSCode(ctx context.Context, req dto.SMSCodeRequest) error
}

type serviceImpl struct {
	cfg     *config.Config
	cache   cache.RedisCache
	otel    otel.Otel
	sms     sms.Client
	captcha captcha.Generator
}

func New(cfg *config.Config, cache cache.RedisCache, otel otel.Otel, sms sms.Client, captcha captcha.Generator) Verification {
	return &serviceImpl{
		cfg:     cfg,
		cache:   cache,
		otel:    otel,
		sms:     sms,
		captcha: captcha,
	}
}

// ImageCode stores a fresh captcha under the current id and drops the one it replaces.
func (s *serviceImpl) ImageCode(ctx context.Context, req dto.ImageCodeRequest) (img []byte, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ImageCode")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	code := s.captcha.Digits(imageCodeLength)

	img, err = s.captcha.Render(req.Current, code)
	if err != nil {
		log.Error().Err(err).Msg("failed to render image code")

		return nil, failure.InternalError(fmt.Errorf("failed to render image code: %w", err))
	}

	if err = s.cache.Save(ctx, model.ImageCodeKey(req.Current), code, s.cfg.Verification.ImageCodeTTL); err != nil {
		log.Error().Err(err).Msg("failed to save image code")

		return nil, failure.StoreUnavailable(fmt.Errorf("failed to save image code: %w", err))
	}

	if req.Previous != constant.Empty {
		if err := s.cache.Delete(ctx, model.ImageCodeKey(req.Previous)); err != nil {
			log.Warn().Err(err).Msg("failed to delete previous image code")
		}
	}

	return img, nil
}

// SendSMSCode checks the image code, then texts a one-time code to the mobile. A mobile can
// ask again only after the resend interval.
func (s *serviceImpl) SendSMSCode(ctx context.Context, req dto.SMSCodeRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".SendSMSCode")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	flagKey := model.SMSFlagKey(req.Mobile)

	throttled, err := s.cache.Exists(ctx, flagKey)
	if err != nil {
		log.Error().Err(err).Msg("failed to check sms flag")

		return failure.StoreUnavailable(fmt.Errorf("failed to check sms flag: %w", err))
	}

	if throttled {
		return model.ErrSMSTooFrequent
	}

	if err = s.checkImageCode(ctx, req.ImageCodeID, req.ImageCode); err != nil {
		return err
	}

	code := s.captcha.Digits(model.SMSCodeLength)

	if err = s.cache.Save(ctx, model.SMSCodeKey(req.Mobile), code, s.cfg.Verification.SMSCodeTTL); err != nil {
		log.Error().Err(err).Msg("failed to save sms code")

		return failure.StoreUnavailable(fmt.Errorf("failed to save sms code: %w", err))
	}

	if err = s.cache.Save(ctx, flagKey, smsFlagValue, s.cfg.Verification.SMSIntervalSeconds); err != nil {
		log.Error().Err(err).Msg("failed to save sms flag")

		return failure.StoreUnavailable(fmt.Errorf("failed to save sms flag: %w", err))
	}

	minutes := strconv.Itoa(s.cfg.Verification.SMSCodeTTL / secondsPerMin)

	if err = s.sms.SendTemplate(ctx, req.Mobile, s.cfg.External.SMS.TemplateID, code, minutes); err != nil {
		log.Error().Err(err).Str("mobile", userModel.MaskMobile(req.Mobile)).Msg("failed to send sms code")

		if err := s.cache.Delete(ctx, flagKey); err != nil {
			log.Warn().Err(err).Msg("failed to release sms flag")
		}

		return failure.BadGateway(fmt.Errorf("failed to send sms code: %w", err))
	}

	return nil
}

// checkImageCode consumes the stored captcha. A code can be tried once.
func (s *serviceImpl) checkImageCode(ctx context.Context, id, input string) error {
	key := model.ImageCodeKey(id)

	var stored string
	if err := s.cache.Get(ctx, key, &stored); err != nil {
		if errors.Is(err, cache.Nil) {
			return model.ErrImageCodeExpired
		}

		log.Error().Err(err).Msg("failed to read image code")

		return failure.StoreUnavailable(fmt.Errorf("failed to read image code: %w", err))
	}

	if err := s.cache.Delete(ctx, key); err != nil {
		log.Warn().Err(err).Msg("failed to delete image code")
	}

	if !strings.EqualFold(stored, strings.TrimSpace(input)) {
		return model.ErrImageCodeMismatch
	}

	return nil
}
