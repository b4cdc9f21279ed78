// Package termhost is a terminal stand-in for the calendar's main window. It
// renders each view as a few lines of text and remembers the filter choices a
// user would make, which is exactly enough surface for the router to drive.
package termhost

import (
	"fmt"
	"io"

	"github.com/rs/zerolog"

	"github.com/campus-event-manager/navigation-service/internal/core/domain"
	"github.com/campus-event-manager/navigation-service/internal/core/ports"
)

type Host struct {
	out    io.Writer
	logger zerolog.Logger

	calendar      domain.CalendarState
	hasCalendar   bool
	dayView       domain.DayViewState
	hasDayView    bool
	activities    domain.ActivitiesState
	hasActivities bool
	form          domain.EventFormState
	hasForm       bool
}

var (
	_ ports.ViewSwitcher    = (*Host)(nil)
	_ ports.ViewStateSource = (*Host)(nil)
	_ ports.Notifier        = (*Host)(nil)
)

func New(out io.Writer, logger zerolog.Logger) *Host {
	return &Host{
		out:    out,
		logger: logger.With().Str("component", "termhost").Logger(),
	}
}

func (h *Host) CreateCalendarView(p *domain.CalendarParams, st *domain.CalendarState) error {
	state := domain.CalendarState{}
	if st != nil {
		state = *st
	}
	if p != nil && !p.SelectedDate.IsZero() {
		state.SelectedDate = p.SelectedDate
	}
	h.calendar = state
	h.hasCalendar = true

	h.show("Calendar",
		line("selected", state.SelectedDate.String()),
		line("filter", state.FilterSelection),
	)
	return nil
}

func (h *Host) CreateDayView(p *domain.DayViewParams, st *domain.DayViewState) error {
	state := domain.DayViewState{}
	if st != nil {
		state = *st
	}
	if p != nil && !p.Date.IsZero() {
		state.CurrentDate = p.Date
	}
	h.dayView = state
	h.hasDayView = true

	h.show("Day view",
		line("date", state.CurrentDate.String()),
		line("filter", state.FilterSelection),
	)
	return nil
}

func (h *Host) CreateActivitiesView(st *domain.ActivitiesState) error {
	state := domain.ActivitiesState{}
	if st != nil {
		state = *st
	}
	h.activities = state
	h.hasActivities = true

	h.show("Activities",
		line("activity filter", state.ActivityFilter),
		line("upcoming filter", state.UpcomingFilter),
	)
	return nil
}

func (h *Host) CreateAddEventView(p *domain.AddEventParams, _ *domain.EventFormState) error {
	h.form = domain.EventFormState{Mode: "add"}
	h.hasForm = true

	preset := ""
	if p != nil {
		preset = p.PresetDate.String()
	}
	h.show("Add event", line("preset date", preset))
	return nil
}

func (h *Host) CreateEditEventView(p *domain.EditEventParams, _ *domain.EventFormState) error {
	h.form = domain.EventFormState{Mode: "edit"}
	h.hasForm = true

	if p == nil {
		return fmt.Errorf("edit event view needs an event payload")
	}
	h.show("Edit event",
		line("title", p.Event.Title),
		line("date", p.Event.Date.String()),
		line("time", p.Event.StartTime.String()+"-"+p.Event.EndTime.String()),
	)
	return nil
}

func (h *Host) CreateSearchView(p *domain.SearchParams) error {
	query := ""
	if p != nil {
		query = p.Query
	}
	h.show("Search", line("query", query))
	return nil
}

func (h *Host) AccessDenied(view domain.View, role domain.Role) {
	fmt.Fprintf(h.out, "  !! access denied: a %s cannot open %s\n", role, view)
	h.logger.Warn().Str("view", view.String()).Str("role", role.String()).Msg("access denied")
}

func (h *Host) CalendarState() (domain.CalendarState, bool) {
	return h.calendar, h.hasCalendar
}

func (h *Host) DayViewState() (domain.DayViewState, bool) {
	return h.dayView, h.hasDayView
}

func (h *Host) ActivitiesState() (domain.ActivitiesState, bool) {
	return h.activities, h.hasActivities
}

func (h *Host) EventFormState() (domain.EventFormState, bool) {
	return h.form, h.hasForm
}

// SetCalendarFilter mimics the user picking a category filter on the
// calendar, the kind of state a navigation away should carry to disk.
func (h *Host) SetCalendarFilter(filter string) {
	h.calendar.FilterSelection = filter
	h.hasCalendar = true
}

// SetActivityFilters mimics the user adjusting both dropdowns on the
// activities view.
func (h *Host) SetActivityFilters(activity, upcoming string) {
	h.activities.ActivityFilter = activity
	h.activities.UpcomingFilter = upcoming
	h.hasActivities = true
}

func (h *Host) show(title string, lines ...string) {
	fmt.Fprintf(h.out, "== %s ==\n", title)
	for _, l := range lines {
		if l != "" {
			fmt.Fprintf(h.out, "   %s\n", l)
		}
	}
}

func line(label, value string) string {
	if value == "" {
		return ""
	}
	return label + ": " + value
}
