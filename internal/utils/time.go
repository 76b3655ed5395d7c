package utils

import (
	"fmt"
	"time"
)

// SystemClock is the production clock; tests substitute a fixed one.
type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now()
}

// FormatMinutes renders a whole-minute duration as "Xh YYm".
func FormatMinutes(minutes int64) string {
	return fmt.Sprintf("%dh %02dm", minutes/60, minutes%60)
}

// FormatTimestamp renders an instant the way the bot presents times.
func FormatTimestamp(t time.Time) string {
	return t.Format("2006-01-02 15:04")
}
