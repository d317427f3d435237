package model

import (
	"fmt"
	"sort"
	"time"
)

// Channel is a single guide row. Identity is ID; DisplayOrder is supplied by
// the backend and defines vertical rendering order.
type Channel struct {
	ID           string
	Name         string
	Icon         string
	DisplayOrder int
}

// Program is one broadcast entry on a channel. Programs are immutable once
// fetched for a window; a window change re-fetches rather than mutates.
type Program struct {
	ID          string
	ChannelID   string
	Title       string
	Description string
	Category    string
	Episode     string
	Start       time.Time
	End         time.Time
}

// ValidInterval reports whether the program describes a real [Start, End)
// interval. Records failing this are excluded from rendering.
func (p Program) ValidInterval() bool {
	return p.Start.Before(p.End)
}

// Duration returns the program length.
func (p Program) Duration() time.Duration {
	return p.End.Sub(p.Start)
}

// Airtime formats the program interval for display, e.g. "19:00–19:30".
func (p Program) Airtime() string {
	return fmt.Sprintf("%s–%s", p.Start.Format("15:04"), p.End.Format("15:04"))
}

// SearchResult is a read-only projection returned by the search backend.
type SearchResult struct {
	ProgramID   string
	ChannelID   string
	Title       string
	ChannelName string
	Category    string
	MatchType   string
	Start       time.Time
	End         time.Time
}

// SortChannels orders channels by DisplayOrder, breaking ties by name so the
// ordering is stable across refreshes.
func SortChannels(channels []Channel) {
	sort.Slice(channels, func(i, j int) bool {
		if channels[i].DisplayOrder != channels[j].DisplayOrder {
			return channels[i].DisplayOrder < channels[j].DisplayOrder
		}
		return channels[i].Name < channels[j].Name
	})
}

// SortPrograms orders programs by start time, then by ID for determinism.
func SortPrograms(programs []Program) {
	sort.Slice(programs, func(i, j int) bool {
		if !programs[i].Start.Equal(programs[j].Start) {
			return programs[i].Start.Before(programs[j].Start)
		}
		return programs[i].ID < programs[j].ID
	})
}
