package dto

import (
	"ihome/internal/domains/booking/model"
	"ihome/shared/constant"
	"ihome/shared/failure"
	gModel "ihome/shared/model"
	"ihome/shared/timezone"
	"time"

	"github.com/google/uuid"
)

type CreateBookingRequest struct {
	HouseID   string `json:"house_id"   validate:"required,uuid"`
	StartDate string `json:"start_date" validate:"required,date"`
	EndDate   string `json:"end_date"   validate:"required,date"`
}

// Interval parses the requested dates. Unparseable dates are a bad request, a reversed or empty
// range is ErrInvalidRange.
func (c *CreateBookingRequest) Interval() (model.Interval, error) {
	begin, err := timezone.ParseDate(c.StartDate)
	if err != nil {
		return model.Interval{}, failure.BadRequest(err) //nolint:wrapcheck
	}

	end, err := timezone.ParseDate(c.EndDate)
	if err != nil {
		return model.Interval{}, failure.BadRequest(err) //nolint:wrapcheck
	}

	return model.NewInterval(begin, end)
}

// ToModel snapshots the unit price so later price changes leave the booking untouched.
func (c *CreateBookingRequest) ToModel(actor string, interval model.Interval, price int, now time.Time) model.Booking {
	days := interval.Days()

	return model.Booking{
		ID:         uuid.NewString(),
		HouseID:    c.HouseID,
		UserID:     actor,
		BeginDate:  interval.Begin,
		EndDate:    interval.End,
		Days:       days,
		HousePrice: price,
		Amount:     days * price,
		Status:     model.StatusWaitAccept,
		Metadata:   gModel.NewMetadata(now, actor),
	}
}

type CreateBookingResponse struct {
	ID string `json:"order_id"`
}

type TransitionRequest struct {
	Action string `json:"action"`
	Reason string `json:"reason" validate:"omitempty,max=500"`
}

type CommentRequest struct {
	Comment string `json:"comment" validate:"required,max=500"`
}

type BookingResponse struct {
	ID        string `json:"order_id"`
	HouseID   string `json:"house_id"`
	Title     string `json:"title"`
	ImageURL  string `json:"img_url"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	CreatedAt string `json:"ctime"`
	Days      int    `json:"days"`
	Amount    int    `json:"amount"`
	Status    string `json:"status"`
	Comment   string `json:"comment"`
}

func (r *BookingResponse) FromModel(booking model.Booking) {
	r.ID = booking.ID
	r.HouseID = booking.HouseID
	r.Title = booking.HouseTitle
	r.ImageURL = booking.HouseImage
	r.StartDate = timezone.FormatDate(booking.BeginDate)
	r.EndDate = timezone.FormatDate(booking.EndDate)
	r.CreatedAt = timezone.Format(booking.CreatedAt, constant.DateFormat)
	r.Days = booking.Days
	r.Amount = booking.Amount
	r.Status = booking.Status
	r.Comment = booking.Comment
}

type GetBookingsResponse struct {
	Bookings []BookingResponse `json:"orders"`
}

func (r *GetBookingsResponse) FromModels(bookings []model.Booking) {
	r.Bookings = make([]BookingResponse, len(bookings))
	for i, booking := range bookings {
		r.Bookings[i].FromModel(booking)
	}
}

// NewEvent describes a lifecycle change of booking for the notification worker.
func NewEvent(eventType string, booking model.Booking, houseOwnerID string, now time.Time) model.Event {
	return model.Event{
		Type:       eventType,
		BookingID:  booking.ID,
		HouseID:    booking.HouseID,
		HouseTitle: booking.HouseTitle,
		RenterID:   booking.UserID,
		LandlordID: houseOwnerID,
		BeginDate:  timezone.FormatDate(booking.BeginDate),
		EndDate:    timezone.FormatDate(booking.EndDate),
		Reason:     booking.Comment,
		OccurredAt: now,
	}
}
