package model

import (
	"ihome/shared/failure"
	"net/http"
)

var (
	ErrNotFound           = failure.New(http.StatusNotFound, "user not found")
	ErrUsernameTaken      = failure.New(http.StatusConflict, "username is already taken")
	ErrRealNameAlreadySet = failure.New(http.StatusConflict, "real-name authentication is already completed")
	ErrRealNameRequired   = failure.Forbidden("real-name authentication is required")
)
