package ui

// Panel identifies one of the four spatial regions that can hold directional
// focus: the header (search box + day bar), the channel list, the schedule
// list, and the program-details panel.
type Panel int

const (
	PanelHeader Panel = iota
	PanelChannels
	PanelSchedule
	PanelDetails
)

func (p Panel) String() string {
	switch p {
	case PanelHeader:
		return "header"
	case PanelChannels:
		return "channels"
	case PanelSchedule:
		return "schedule"
	case PanelDetails:
		return "details"
	}
	return "unknown"
}

// NavEvent is a directional or activation input routed through the panel
// state machine.
type NavEvent int

const (
	NavUp NavEvent = iota
	NavDown
	NavLeft
	NavRight
	NavActivate
	NavBack
)

// NavState is the complete focus state of the guide. Exactly one panel is
// active at a time. While OverlayCapturing is set, a transient overlay
// (search-results dropdown, date picker) owns directional input and the
// state machine leaves the state untouched.
type NavState struct {
	Active           Panel
	DetailsOpen      bool
	OverlayCapturing bool
}

// NavContext carries the per-panel facts a transition depends on.
type NavContext struct {
	// AtTop is true when the active panel's cursor sits on its first row,
	// so a further up-press crosses the panel boundary.
	AtTop bool
	// HasSelection is true when a program is selected in the schedule.
	HasSelection bool
}

// Transition is the pure panel-routing function: (state, event) -> state.
// Within-panel cursor movement is the panel's own business; this table only
// decides boundary crossings.
func Transition(s NavState, ev NavEvent, ctx NavContext) NavState {
	if s.OverlayCapturing {
		return s
	}

	switch s.Active {
	case PanelHeader:
		if ev == NavDown {
			s.Active = PanelChannels
		}

	case PanelChannels:
		switch ev {
		case NavUp:
			if ctx.AtTop {
				s.Active = PanelHeader
			}
		case NavRight:
			s.Active = PanelSchedule
		case NavLeft:
			// Left is a no-op unless the details panel is open, in
			// which case it closes it.
			s.DetailsOpen = false
		}

	case PanelSchedule:
		switch ev {
		case NavLeft:
			s.Active = PanelChannels
		case NavRight, NavActivate:
			if ctx.HasSelection {
				s.Active = PanelDetails
				s.DetailsOpen = true
			}
		case NavUp:
			// Up at the top crosses to the header unless details is
			// open; then it is swallowed until details is closed.
			if ctx.AtTop && !s.DetailsOpen {
				s.Active = PanelHeader
			}
		}

	case PanelDetails:
		if ev == NavLeft || ev == NavBack {
			s.Active = PanelSchedule
			s.DetailsOpen = false
		}
	}
	return s
}
