package model

import (
	"ihome/shared/failure"
	"net/http"
)

const (
	EntityName = "verification"

	imageCodePrefix = "ImageCode_"
	smsCodePrefix   = "sms_"
	smsFlagPrefix   = "sms_code_flag_"

	// SMSCodeLength is the number of digits sent to the phone.
	SMSCodeLength = 6
)

var (
	ErrImageCodeExpired  = failure.New(http.StatusBadRequest, "image code expired")
	ErrImageCodeMismatch = failure.New(http.StatusBadRequest, "image code mismatch")
	ErrSMSCodeExpired    = failure.New(http.StatusBadRequest, "sms code expired")
	ErrSMSCodeMismatch   = failure.New(http.StatusBadRequest, "sms code mismatch")
	ErrSMSTooFrequent    = failure.TooManyRequests("sms code requested too frequently")
)

func ImageCodeKey(id string) string {
	return imageCodePrefix + id
}

func SMSCodeKey(mobile string) string {
	return smsCodePrefix + mobile
}

// SMSFlagKey marks a mobile that received a code within the resend interval.
func SMSFlagKey(mobile string) string {
	return smsFlagPrefix + mobile
}
