package domain

// ViewState is the closed set of per-view UI state snapshots the store may
// persist between sessions. Only harmless presentation state belongs here;
// form contents in particular must never be captured.
type ViewState interface {
	isViewState()
}

type CalendarState struct {
	SelectedDate    Date   `json:"selected_date"`
	FilterSelection string `json:"filter_selection"`
}

type DayViewState struct {
	CurrentDate     Date   `json:"current_date"`
	FilterSelection string `json:"filter_selection"`
}

type ActivitiesState struct {
	ActivityFilter string `json:"activity_filter"`
	UpcomingFilter string `json:"upcoming_filter"`
}

// EventFormState carries nothing but which mode the form was opened in
// ("add" or "edit"). Titles, descriptions and every other field stay out.
type EventFormState struct {
	Mode string `json:"mode"`
}

func (*CalendarState) isViewState()   {}
func (*DayViewState) isViewState()    {}
func (*ActivitiesState) isViewState() {}
func (*EventFormState) isViewState()  {}

// StateFor tells which snapshot variant a view persists. Views that keep no
// state between sessions (search) return false.
func StateFor(v View) (ViewState, bool) {
	switch v {
	case ViewCalendar:
		return &CalendarState{}, true
	case ViewDayView:
		return &DayViewState{}, true
	case ViewActivities:
		return &ActivitiesState{}, true
	case ViewAddEvent, ViewEditEvent:
		return &EventFormState{}, true
	}
	return nil, false
}
