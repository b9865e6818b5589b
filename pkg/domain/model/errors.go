package model

import (
	"github.com/m-mizutani/goerr/v2"
)

// Error tags used to classify failures at the boundaries
var (
	ErrTagInvalidInput  = goerr.NewTag("invalid_input")
	ErrTagInvalidWindow = goerr.NewTag("invalid_window")
	ErrTagNotFound      = goerr.NewTag("not_found")
)
