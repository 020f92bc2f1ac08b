package dto

import (
	"ihome/infras/jwt"
	userModel "ihome/internal/domains/user/model"
	"ihome/shared/constant"
	gModel "ihome/shared/model"
	"time"

	"github.com/google/uuid"
)

type RegisterRequest struct {
	Mobile   string `json:"mobile"   validate:"required,mobile"`
	SMSCode  string `json:"sms_code" validate:"required,len=6,numeric"`
	Password string `json:"password" validate:"required,password"`
}

// ToUserModel starts the username off as the mobile number.
func (r *RegisterRequest) ToUserModel(hashedPassword string, now time.Time) userModel.User {
	id := uuid.NewString()

	return userModel.User{
		ID:           id,
		Mobile:       r.Mobile,
		Username:     r.Mobile,
		PasswordHash: hashedPassword,
		Role:         constant.RoleUser,
		Metadata:     gModel.NewMetadata(now, id),
	}
}

type LoginRequest struct {
	Mobile   string `json:"mobile"   validate:"required,mobile"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int64  `json:"expires_in"`
}

func (l *LoginResponse) FromTokenPair(tokenPair *jwt.TokenPair) {
	l.AccessToken = tokenPair.AccessToken
	l.RefreshToken = tokenPair.RefreshToken
	l.TokenType = tokenPair.TokenType
	l.ExpiresIn = tokenPair.ExpiresIn
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password"     validate:"required,password"`
}

type UpdatePasswordRequest struct {
	PasswordHash string `db:"password_hash"`
}

type SessionResponse struct {
	UserID string `json:"user_id"`
	Name   string `json:"name"`
}

func (s *SessionResponse) FromModel(user userModel.User) {
	s.UserID = user.ID
	s.Name = user.Username
}
