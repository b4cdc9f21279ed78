package domain

// Params is the closed set of per-view navigation parameters. Each routable
// view that takes input has exactly one variant; a nil Params means the view
// opens with no input.
type Params interface {
	isParams()
}

type CalendarParams struct {
	SelectedDate Date `json:"selected_date"`
}

type DayViewParams struct {
	Date Date `json:"date"`
}

type AddEventParams struct {
	PresetDate Date `json:"preset_date"`
}

type EditEventParams struct {
	Event EventData `json:"event_data"`
}

type SearchParams struct {
	Query string `json:"query"`
}

func (*CalendarParams) isParams()  {}
func (*DayViewParams) isParams()   {}
func (*AddEventParams) isParams()  {}
func (*EditEventParams) isParams() {}
func (*SearchParams) isParams()    {}

// Route is the router's current position: which view is showing and what it
// was opened with.
type Route struct {
	View   View
	Params Params
}

// DefaultRoute is where every user lands when nothing has been persisted yet.
func DefaultRoute() Route {
	return Route{View: ViewCalendar}
}

// Clone returns a route whose params are detached from the receiver's, so
// callers holding the copy cannot mutate router state through it.
func (r Route) Clone() Route {
	out := Route{View: r.View}
	switch p := r.Params.(type) {
	case nil:
	case *CalendarParams:
		cp := *p
		out.Params = &cp
	case *DayViewParams:
		cp := *p
		out.Params = &cp
	case *AddEventParams:
		cp := *p
		out.Params = &cp
	case *EditEventParams:
		cp := *p
		out.Params = &cp
	case *SearchParams:
		cp := *p
		out.Params = &cp
	}
	return out
}
