// Package seed submits generated assessments to a running server and checks
// that the dashboard reflects them.
package seed

import "time"

// Config holds configuration for a seeding run.
type Config struct {
	BaseURL string        // Base URL of the service
	Count   int           // Number of assessments to record
	Seed    uint64        // Random seed; 0 picks one from the clock
	Timeout time.Duration // HTTP request timeout
}

// Stats holds run statistics.
type Stats struct {
	Submitted  int
	Successful int
	Failed     int
	LastScore  float64
	StartTime  time.Time
	EndTime    time.Time
	Duration   time.Duration
}
