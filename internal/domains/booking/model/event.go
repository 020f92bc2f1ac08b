package model

import "time"

const (
	EventCreated   = "booking.created"
	EventAccepted  = "booking.accepted"
	EventRejected  = "booking.rejected"
	EventCompleted = "booking.completed"
)

// Event is published to Kafka after every successful lifecycle write, keyed by booking id.
type Event struct {
	Type       string    `json:"type"`
	BookingID  string    `json:"booking_id"`
	HouseID    string    `json:"house_id"`
	HouseTitle string    `json:"house_title"`
	RenterID   string    `json:"renter_id"`
	LandlordID string    `json:"landlord_id"`
	BeginDate  string    `json:"begin_date"`
	EndDate    string    `json:"end_date"`
	Reason     string    `json:"reason,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

// Recipient is the user the event should notify.
func (e Event) Recipient() string {
	switch e.Type {
	case EventCreated, EventCompleted:
		return e.LandlordID
	default:
		return e.RenterID
	}
}
