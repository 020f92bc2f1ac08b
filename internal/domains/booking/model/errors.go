package model

import (
	houseModel "ihome/internal/domains/house/model"
	"ihome/shared/failure"
	"net/http"
)

var (
	ErrInvalidRange   = houseModel.ErrInvalidRange
	ErrNotFound       = failure.New(http.StatusNotFound, "booking not found")
	ErrSelfBooking    = failure.New(http.StatusBadRequest, "cannot book your own house")
	ErrConflict       = failure.New(http.StatusConflict, "house is already booked for the selected dates")
	ErrForbidden      = failure.Forbidden("not allowed to change this booking")
	ErrMissingReason  = failure.New(http.StatusBadRequest, "reason is required to reject a booking")
	ErrInvalidAction  = failure.New(http.StatusBadRequest, "action must be accept or reject")
	ErrNotPending     = failure.New(http.StatusConflict, "booking is no longer waiting for acceptance")
	ErrNotCommentable = failure.New(http.StatusConflict, "booking is not waiting for a comment")
)
