package model

import (
	areaModel "ihome/internal/domains/area/model"
	userModel "ihome/internal/domains/user/model"
	"ihome/shared/model"
)

const (
	TableName  = "houses"
	EntityName = "house"

	FieldID            = "id"
	FieldUserID        = "user_id"
	FieldAreaID        = "area_id"
	FieldTitle         = "title"
	FieldPrice         = "price"
	FieldOrderCount    = "order_count"
	FieldIndexImageURL = "index_image_url"
	FieldCreatedAt     = "created_at"
)

// Cache key prefixes shared with the booking lifecycle, which invalidates them on writes.
const (
	CacheKeySearch = "house:search"
	CacheKeyIndex  = "house:index"
	CacheKeyDetail = "house:get"
)

const (
	// IndexSize is how many houses the landing page shows.
	IndexSize = 5
	// CommentLimit caps the reviews rendered on a house detail.
	CommentLimit = 30
)

type House struct {
	ID            string `db:"id"`
	UserID        string `db:"user_id"`
	AreaID        int    `db:"area_id"`
	Title         string `db:"title"`
	Price         int    `db:"price"`
	Address       string `db:"address"`
	RoomCount     int    `db:"room_count"`
	Acreage       int    `db:"acreage"`
	Unit          string `db:"unit"`
	Capacity      int    `db:"capacity"`
	Beds          string `db:"beds"`
	Deposit       int    `db:"deposit"`
	MinDays       int    `db:"min_days"`
	MaxDays       int    `db:"max_days"`
	OrderCount    int    `db:"order_count"`
	IndexImageURL string `db:"index_image_url"`
	AreaName      string `column:"name"       db:"area_name"    table:"areas"`
	OwnerName     string `column:"username"   db:"owner_name"   table:"users"`
	OwnerAvatar   string `column:"avatar_url" db:"owner_avatar" table:"users"`
	model.Metadata
}

func (House) GetJoinQuery() string {
	return "JOIN " + areaModel.TableName + " ON " + areaModel.TableName + ".id = " + TableName + ".area_id " +
		"JOIN " + userModel.TableName + " ON " + userModel.TableName + ".id = " + TableName + ".user_id"
}
