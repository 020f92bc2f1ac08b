package model

import "ihome/shared/model"

const (
	TableName  = "users"
	EntityName = "user"

	FieldID           = "id"
	FieldMobile       = "mobile"
	FieldUsername     = "username"
	FieldPasswordHash = "password_hash"
	FieldAvatarURL    = "avatar_url"
	FieldRealName     = "real_name"
	FieldIDCard       = "id_card"
	FieldRole         = "role"
)

type User struct {
	ID           string `db:"id"`
	Mobile       string `db:"mobile"`
	Username     string `db:"username"`
	PasswordHash string `db:"password_hash"`
	AvatarURL    string `db:"avatar_url"`
	RealName     string `db:"real_name"`
	IDCard       string `db:"id_card"`
	Role         string `db:"role"`
	model.Metadata
}

// HasRealName reports whether real-name authentication was completed.
func (u User) HasRealName() bool {
	return u.RealName != "" && u.IDCard != ""
}

// DisplayName hides the mobile number when the user never picked a name.
func (u User) DisplayName() string {
	if u.Username == u.Mobile {
		return MaskMobile(u.Mobile)
	}

	return u.Username
}

// MaskMobile keeps the first three and last four digits.
func MaskMobile(mobile string) string {
	const visiblePrefix, visibleSuffix = 3, 4
	if len(mobile) <= visiblePrefix+visibleSuffix {
		return mobile
	}

	return mobile[:visiblePrefix] + "****" + mobile[len(mobile)-visibleSuffix:]
}
