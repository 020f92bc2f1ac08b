package validator

import (
	"encoding/json"
	"fmt"
	"ihome/shared/constant"
	"ihome/shared/failure"
	"io"
	"mime/multipart"
	"regexp"
	"slices"
	"strconv"
	"strings"
	"time"

	val "github.com/go-playground/validator/v10"
)

var (
	validate *val.Validate

	mobilePattern   = regexp.MustCompile(`^1[3-9]\d{9}$`)
	passwordPattern = regexp.MustCompile(`^[0-9A-Za-z]{8,20}$`)
	idCardPattern   = regexp.MustCompile(`^\d{17}[\dXx]$`)
)

func registerMimetypeValidation(field val.FieldLevel) bool {
	file, ok := field.Field().Interface().(multipart.FileHeader)
	if !ok {
		return false
	}

	contentType := file.Header.Get(constant.RequestHeaderContentType)
	allowedTypes := strings.Split(field.Param(), " ")

	return slices.Contains(allowedTypes, contentType)
}

func registerFileSizeValidation(field val.FieldLevel) bool {
	file, ok := field.Field().Interface().(multipart.FileHeader)
	if !ok {
		return false
	}

	maxSizeMB, err := strconv.ParseFloat(field.Param(), 64)
	if err != nil {
		return false
	}

	bytesConversion := 1024.0
	maxSizeBytes := int64(maxSizeMB * bytesConversion * bytesConversion)

	return file.Size <= maxSizeBytes
}

func matches(pattern *regexp.Regexp) val.Func {
	return func(fl val.FieldLevel) bool {
		return pattern.MatchString(fl.Field().String())
	}
}

func registerDateValidation(fl val.FieldLevel) bool {
	_, err := time.Parse(constant.DateOnlyFormat, fl.Field().String())

	return err == nil
}

func init() {
	validate = val.New(val.WithRequiredStructEnabled())

	validations := map[string]val.Func{
		"mobile":      matches(mobilePattern),
		"password":    matches(passwordPattern),
		"idcard":      matches(idCardPattern),
		"date":        registerDateValidation,
		"mimetypes":   registerMimetypeValidation,
		"maxfilesize": registerFileSizeValidation,
	}

	for tag, fn := range validations {
		if err := validate.RegisterValidation(tag, fn); err != nil {
			panic(err)
		}
	}
}

// Validate reads from the given io.Reader into the given struct, and then performs validation
// on the struct using the validator package. If the struct is invalid according to the
// validation rules, an error is returned. Otherwise, nil is returned.
// https://github.com/go-playground/validator
func Validate[T any](r io.Reader, data *T) error {
	decoder := json.NewDecoder(r)
	err := decoder.Decode(data)

	if err != nil {
		return failure.BadRequest(fmt.Errorf("failed to decode request body: %w", err)) //nolint:wrapcheck
	}

	return ValidateStruct(data)
}

func ValidateStruct[T any](data *T) error {
	err := validate.Struct(data)

	if err != nil {
		msg := message(err)

		return failure.BadRequestFromString(msg) //nolint:wrapcheck
	}

	return nil
}

func ValidateVar(field any, tag string) error {
	err := validate.Var(field, tag)

	if err != nil {
		msg := message(err)

		return failure.BadRequestFromString(msg) //nolint:wrapcheck
	}

	return nil
}
