package model

import (
	houseModel "ihome/internal/domains/house/model"
	userModel "ihome/internal/domains/user/model"
	"ihome/shared/model"
	"time"
)

const (
	TableName  = "bookings"
	EntityName = "booking"

	FieldID         = "id"
	FieldHouseID    = "house_id"
	FieldUserID     = "user_id"
	FieldBeginDate  = "begin_date"
	FieldEndDate    = "end_date"
	FieldDays       = "days"
	FieldHousePrice = "house_price"
	FieldAmount     = "amount"
	FieldStatus     = "status"
	FieldComment    = "comment"
)

const (
	StatusWaitAccept  = "WAIT_ACCEPT"
	StatusWaitComment = "WAIT_COMMENT"
	StatusComplete    = "COMPLETE"
	StatusRejected    = "REJECTED"
)

const (
	ActionAccept = "accept"
	ActionReject = "reject"
)

// Roles a caller can list bookings as.
const (
	RoleLandlord = "landlord"
	RoleCustom   = "custom"
)

type Booking struct {
	ID           string    `db:"id"`
	HouseID      string    `db:"house_id"`
	UserID       string    `db:"user_id"`
	BeginDate    time.Time `db:"begin_date"`
	EndDate      time.Time `db:"end_date"`
	Days         int       `db:"days"`
	HousePrice   int       `db:"house_price"`
	Amount       int       `db:"amount"`
	Status       string    `db:"status"`
	Comment      string    `db:"comment"`
	HouseTitle   string    `column:"title"           db:"house_title"    table:"houses"`
	HouseImage   string    `column:"index_image_url" db:"house_image"    table:"houses"`
	HouseOwnerID string    `column:"user_id"         db:"house_owner_id" table:"houses"`
	RenterName   string    `column:"username"        db:"renter_name"    table:"users"`
	RenterMobile string    `column:"mobile"          db:"renter_mobile"  table:"users"`
	model.Metadata
}

func (Booking) GetJoinQuery() string {
	return "JOIN " + houseModel.TableName + " ON " + houseModel.TableName + ".id = " + TableName + ".house_id " +
		"JOIN " + userModel.TableName + " ON " + userModel.TableName + ".id = " + TableName + ".user_id"
}

// IsOpen reports whether the landlord can still accept or reject the booking.
func (b Booking) IsOpen() bool {
	return b.Status == StatusWaitAccept
}
