package seed

import "errors"

var (
	// ErrUnhealthy is returned when the health endpoint does not answer 200.
	ErrUnhealthy = errors.New("service is not healthy")
	// ErrEmptyFramework is returned when there is nothing to score.
	ErrEmptyFramework = errors.New("framework has no elements")
	// ErrVerification is returned when the dashboard disagrees with what was submitted.
	ErrVerification = errors.New("dashboard verification failed")
)
