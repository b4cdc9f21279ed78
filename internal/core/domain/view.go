package domain

import (
	"fmt"
	"strings"
)

// View identifies a top-level view the router can show.
type View string

const (
	ViewCalendar   View = "calendar"
	ViewDayView    View = "day_view"
	ViewActivities View = "activities"
	ViewAddEvent   View = "add_event"
	ViewEditEvent  View = "edit_event"
	ViewSearch     View = "search"
)

// AllViews lists every routable view in display order.
func AllViews() []View {
	return []View{
		ViewCalendar,
		ViewDayView,
		ViewActivities,
		ViewAddEvent,
		ViewEditEvent,
		ViewSearch,
	}
}

func (v View) Valid() bool {
	switch v {
	case ViewCalendar, ViewDayView, ViewActivities, ViewAddEvent, ViewEditEvent, ViewSearch:
		return true
	}
	return false
}

func (v View) String() string {
	return string(v)
}

// ParseView canonicalizes a persisted or user-supplied view name.
// State files written before 1.0 used "day" for the day view.
func ParseView(s string) (View, error) {
	v := View(strings.ToLower(strings.TrimSpace(s)))
	if v == "day" {
		v = ViewDayView
	}
	if !v.Valid() {
		return "", fmt.Errorf("unknown view %q", s)
	}
	return v, nil
}
