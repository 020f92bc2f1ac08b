package dto

import (
	"ihome/internal/domains/user/model"
	"mime/multipart"
)

type ProfileResponse struct {
	ID        string `json:"user_id"`
	Name      string `json:"name"`
	Mobile    string `json:"mobile"`
	AvatarURL string `json:"avatar_url"`
	CreatedAt string `json:"create_time"`
}

func (r *ProfileResponse) FromModel(user model.User) {
	r.ID = user.ID
	r.Name = user.Username
	r.Mobile = user.Mobile
	r.AvatarURL = user.AvatarURL
	r.CreatedAt = user.CreatedAt.Format("2006-01-02 15:04:05")
}

type RenameRequest struct {
	Name string `db:"username" json:"name" validate:"required,min=1,max=32"`
}

type UploadAvatarRequest struct {
	Avatar     multipart.FileHeader `validate:"required,mimetypes=image/jpeg image/png image/webp,maxfilesize=5"`
	AvatarFile multipart.File       `validate:"-"`
}

type AvatarResponse struct {
	AvatarURL string `json:"avatar_url"`
}

type RealNameRequest struct {
	RealName string `db:"real_name" json:"real_name" validate:"required,max=32"`
	IDCard   string `db:"id_card"   json:"id_card"   validate:"required,idcard"`
}

type RealNameResponse struct {
	RealName string `json:"real_name"`
	IDCard   string `json:"id_card"`
}

func (r *RealNameResponse) FromModel(user model.User) {
	r.RealName = user.RealName
	r.IDCard = user.IDCard
}
