package model

import (
	"ihome/shared/failure"
	"net/http"
)

var (
	ErrNotFound        = failure.New(http.StatusNotFound, "house not found")
	ErrPageOutOfRange  = failure.New(http.StatusBadRequest, "page is out of range")
	ErrInvalidRange    = failure.New(http.StatusBadRequest, "start date must be before end date")
	ErrNotOwner        = failure.Forbidden("only the owner can change this house")
	ErrUnknownArea     = failure.New(http.StatusBadRequest, "area does not exist")
	ErrUnknownFacility = failure.New(http.StatusBadRequest, "facility does not exist")
	ErrInvalidDays     = failure.New(http.StatusBadRequest, "max_days must be 0 or not less than min_days")
)
