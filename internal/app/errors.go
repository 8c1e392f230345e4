package service

import "errors"

// Sentinel kinds for service errors.
var (
	ErrNotStarted         = errors.New("service not started")
	ErrDimensionNotFound  = errors.New("dimension not found")
	ErrElementNotFound    = errors.New("element not found")
	ErrAssessmentNotFound = errors.New("assessment not found")
	ErrUnknownElements    = errors.New("unknown element ids")
	ErrPersist            = errors.New("persisting state failed")
)
