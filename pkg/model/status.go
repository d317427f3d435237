package model

import "time"

// Status is a program's temporal relationship to a reference instant. It is
// derived, never stored: callers reclassify against a fresh clock instead of
// caching a stale value.
type Status string

const (
	StatusNow    Status = "now"
	StatusPast   Status = "past"
	StatusFuture Status = "future"
)

// IsValid reports whether s is one of the known statuses.
func (s Status) IsValid() bool {
	switch s {
	case StatusNow, StatusPast, StatusFuture:
		return true
	}
	return false
}

// Classify computes the program's status against now using the half-open
// interval [Start, End): a program becomes PAST the instant it ends.
func Classify(p Program, now time.Time) Status {
	if !now.Before(p.End) {
		return StatusPast
	}
	if !now.Before(p.Start) {
		return StatusNow
	}
	return StatusFuture
}

// ElapsedProgress returns how far through the program now is, as a percentage
// clamped to [0, 100]. Outside [Start, End) it is exactly 0 or 100.
func ElapsedProgress(p Program, now time.Time) int {
	if now.Before(p.Start) {
		return 0
	}
	if !now.Before(p.End) {
		return 100
	}
	total := p.End.Sub(p.Start)
	if total <= 0 {
		return 100
	}
	pct := int(now.Sub(p.Start) * 100 / total)
	if pct < 0 {
		return 0
	}
	if pct > 100 {
		return 100
	}
	return pct
}
