package dto

type ImageCodeRequest struct {
	Current  string `json:"cur" validate:"required,uuid"`
	Previous string `json:"pre" validate:"omitempty,uuid"`
}

type SMSCodeRequest struct {
	Mobile      string `json:"mobile"        validate:"required,mobile"`
	ImageCodeID string `json:"image_code_id" validate:"required,uuid"`
	ImageCode   string `json:"image_code"    validate:"required,max=8"`
}
