package models

import (
	"time"
)

// Now returns the current time in UTC
func Now() time.Time {
	return time.Now().UTC()
}

// Clock supplies the current time. Tests substitute a fixed clock.
type Clock func() time.Time

// TimePtr returns a pointer to t
func TimePtr(t time.Time) *time.Time {
	return &t
}
