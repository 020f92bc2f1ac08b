package model

import "time"

const (
	ImageTableName  = "house_images"
	ImageEntityName = "house_image"

	FieldImageID        = "id"
	FieldImageHouseID   = "house_id"
	FieldImageCreatedAt = "created_at"
)

type HouseImage struct {
	ID        string    `db:"id"`
	HouseID   string    `db:"house_id"`
	URL       string    `db:"url"`
	CreatedAt time.Time `db:"created_at"`
}
