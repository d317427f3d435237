package timewin

import (
	"strings"
	"time"
)

// Canonical day-option IDs. Weekday options use the lowercase short weekday
// name ("mon", "tue", ...).
const (
	OptionToday    = "today"
	OptionTonight  = "tonight"
	OptionTomorrow = "tomorrow"
)

const (
	tonightStartHour = 18
	weekdayOptions   = 4
)

// DayOption is a selectable day anchor in the header bar. Anchor is midnight
// of the option's calendar day; Window is the guide window the option maps to.
type DayOption struct {
	ID     string
	Label  string
	Anchor time.Time
	Window Window
}

// IsSameDay reports whether the option covers date's calendar day.
func (o DayOption) IsSameDay(date time.Time) bool {
	return SameCalendarDay(o.Anchor, date)
}

// ComputeDayOptions returns the selectable anchors for now, in order: Today,
// Tonight, Tomorrow, then the next four calendar days labeled by short
// weekday name.
//
// Tonight starts at 18:00 or now, whichever is later; once 18:00 has passed
// it collapses to the same window as Today. The chip stays visible in that
// state so the bar does not change shape under the cursor mid-evening.
func ComputeDayOptions(now time.Time) []DayOption {
	today := startOfDay(now)

	tonightStart := time.Date(now.Year(), now.Month(), now.Day(), tonightStartHour, 0, 0, 0, now.Location())
	if now.After(tonightStart) {
		tonightStart = now
	}

	opts := []DayOption{
		{
			ID:     OptionToday,
			Label:  "Today",
			Anchor: today,
			Window: Window{Start: now, End: endOfDay(now)},
		},
		{
			ID:     OptionTonight,
			Label:  "Tonight",
			Anchor: today,
			Window: Window{Start: tonightStart, End: endOfDay(now)},
		},
	}

	tomorrow := today.AddDate(0, 0, 1)
	opts = append(opts, DayOption{
		ID:     OptionTomorrow,
		Label:  "Tomorrow",
		Anchor: tomorrow,
		Window: dayWindow(tomorrow),
	})

	for i := 1; i <= weekdayOptions; i++ {
		day := tomorrow.AddDate(0, 0, i)
		opts = append(opts, weekdayOption(day))
	}
	return opts
}

// FindOptionForDate matches date to an existing option by calendar-day
// equality. The second return is false when the date falls outside the
// precomputed set; callers then synthesize an ad-hoc option via OptionForDate.
func FindOptionForDate(date time.Time, opts []DayOption) (DayOption, bool) {
	for _, o := range opts {
		// Today and Tonight share a calendar day; prefer the first match.
		if o.IsSameDay(date) {
			return o, true
		}
	}
	return DayOption{}, false
}

// OptionForDate synthesizes an ad-hoc option for an arbitrary future date in
// the weekday-label format. Dates on today's calendar day get the Today
// window instead of the 06:00 day window.
func OptionForDate(now, date time.Time) DayOption {
	if SameCalendarDay(now, date) {
		return DayOption{
			ID:     OptionToday,
			Label:  "Today",
			Anchor: startOfDay(now),
			Window: Window{Start: now, End: endOfDay(now)},
		}
	}
	return weekdayOption(startOfDay(date))
}

// NextOption steps forward through opts from current; past the end of the
// precomputed list it synthesizes the adjacent calendar day.
func NextOption(current DayOption, opts []DayOption, now time.Time) DayOption {
	for i, o := range opts {
		if o.ID == current.ID && o.Anchor.Equal(current.Anchor) {
			if i+1 < len(opts) {
				return opts[i+1]
			}
			break
		}
	}
	return OptionForDate(now, current.Anchor.AddDate(0, 0, 1))
}

// PrevOption steps backward through opts from current. Navigating earlier
// than today is disallowed: the first option is the floor, so Tonight still
// steps back to Today.
func PrevOption(current DayOption, opts []DayOption, now time.Time) DayOption {
	for i, o := range opts {
		if o.ID == current.ID && o.Anchor.Equal(current.Anchor) {
			if i > 0 {
				return opts[i-1]
			}
			return current
		}
	}
	if SameCalendarDay(current.Anchor, now) {
		return current
	}
	return OptionForDate(now, current.Anchor.AddDate(0, 0, -1))
}

// RolledOver reports whether the wall-clock calendar day has advanced past
// the day the option set was computed for. On rollover the caller recomputes
// the set and resets selection to Today.
func RolledOver(computedAt, now time.Time) bool {
	return !SameCalendarDay(computedAt, now)
}

func weekdayOption(day time.Time) DayOption {
	label := day.Format("Mon")
	return DayOption{
		ID:     strings.ToLower(label),
		Label:  label,
		Anchor: day,
		Window: dayWindow(day),
	}
}

// dayWindow is the standard 06:00 → end-of-day window for a full guide day.
func dayWindow(day time.Time) Window {
	y, m, d := day.Date()
	return Window{
		Start: time.Date(y, m, d, morningStartHour, 0, 0, 0, day.Location()),
		End:   endOfDay(day),
	}
}
