package services

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/campus-event-manager/navigation-service/internal/core/domain"
	"github.com/campus-event-manager/navigation-service/internal/core/ports"
	"github.com/campus-event-manager/navigation-service/internal/metrics"
)

// NavigationService is the single gate between user intent and view changes.
// Every transition funnels through NavigateTo, which enforces the role's
// permissions before anything else happens. Like the store it drives, it is
// confined to the UI event loop and is not safe for concurrent use.
type NavigationService struct {
	role     domain.Role
	perms    domain.PermissionSet
	store    *RouteStore
	switcher ports.ViewSwitcher
	source   ports.ViewStateSource
	notifier ports.Notifier
	logger   zerolog.Logger
}

func NewNavigationService(
	role domain.Role,
	store *RouteStore,
	switcher ports.ViewSwitcher,
	source ports.ViewStateSource,
	notifier ports.Notifier,
	logger zerolog.Logger,
) *NavigationService {
	return &NavigationService{
		role:     role,
		perms:    domain.PermissionsFor(role),
		store:    store,
		switcher: switcher,
		source:   source,
		notifier: notifier,
		logger:   logger.With().Str("component", "navigation").Logger(),
	}
}

func (n *NavigationService) Role() domain.Role {
	return n.role
}

// Permissions returns a fresh copy of the active role's permission set.
func (n *NavigationService) Permissions() domain.PermissionSet {
	return domain.PermissionsFor(n.role)
}

func (n *NavigationService) IsViewAllowed(view domain.View) bool {
	return n.perms.Allows(view)
}

func (n *NavigationService) DefaultView() domain.View {
	return domain.DefaultViewFor(n.role)
}

func (n *NavigationService) CurrentRoute() (domain.Route, bool) {
	return n.store.Current()
}

func (n *NavigationService) IsCurrentView(view domain.View) bool {
	cur, ok := n.store.Current()
	return ok && cur.View == view
}

// NavigateTo moves the user to the given view.
//
// Restricted views are swapped for the role's default view after warning the
// user; the move itself still happens. With saveCurrent set, the view being
// left is snapshotted and pushed onto the back stack first, unless it is one
// the role cannot enter, in which case it vanishes without trace. State is
// persisted before the switch so a crash mid-switch replays to the new view.
//
// Failures along the way are logged and reported as false. The exceptions are
// an unknown view or params of the wrong variant, which are bugs in the
// caller and panic.
func (n *NavigationService) NavigateTo(view domain.View, params domain.Params, saveCurrent bool) bool {
	if !view.Valid() {
		panic(fmt.Sprintf("navigation: unknown view %q", string(view)))
	}
	checkParams(view, params)

	if !n.perms.Allows(view) {
		n.logger.Warn().
			Str("view", view.String()).
			Str("role", n.role.String()).
			Msg("navigation denied")
		metrics.NavigationsDenied.WithLabelValues(view.String(), n.role.String()).Inc()
		n.notifier.AccessDenied(view, n.role)
		view = n.DefaultView()
		params = nil
	}

	if saveCurrent {
		if cur, ok := n.store.Current(); ok && n.perms.Allows(cur.View) {
			n.snapshotViewState(cur.View)
			n.store.PushHistory(cur)
		}
	}

	n.store.SetCurrent(domain.Route{View: view, Params: params})
	n.store.Save()

	if err := n.switchTo(view, params); err != nil {
		n.logger.Error().Err(err).Str("view", view.String()).Msg("switch view")
		return false
	}

	metrics.NavigationsTotal.WithLabelValues(view.String(), n.role.String()).Inc()
	n.logger.Debug().Str("view", view.String()).Msg("navigated")
	return true
}

// GoBack pops the most recent back-stack entry and navigates to it without
// saving the view being left. On an empty stack it reports false and changes
// nothing. An entry the role can no longer enter degrades to the default view.
func (n *NavigationService) GoBack() bool {
	entry, ok := n.store.PopHistory()
	if !ok {
		n.logger.Debug().Msg("back stack empty")
		return false
	}

	view, params := entry.Route.View, entry.Route.Params
	if !view.Valid() || !n.perms.Allows(view) {
		view, params = n.DefaultView(), nil
	}
	return n.NavigateTo(view, params, false)
}

func (n *NavigationService) ToCalendar() bool {
	return n.NavigateTo(domain.ViewCalendar, nil, true)
}

func (n *NavigationService) ToCalendarAt(date domain.Date) bool {
	return n.NavigateTo(domain.ViewCalendar, &domain.CalendarParams{SelectedDate: date}, true)
}

// ToDayView opens the day view for the given date. A zero date opens the day
// view wherever the host decides, usually today.
func (n *NavigationService) ToDayView(date domain.Date) bool {
	if date.IsZero() {
		return n.NavigateTo(domain.ViewDayView, nil, true)
	}
	return n.NavigateTo(domain.ViewDayView, &domain.DayViewParams{Date: date}, true)
}

func (n *NavigationService) ToActivities() bool {
	return n.NavigateTo(domain.ViewActivities, nil, true)
}

func (n *NavigationService) ToAddEvent() bool {
	return n.NavigateTo(domain.ViewAddEvent, nil, true)
}

// ToAddEventOn opens the add-event form with the date pre-filled, the "add
// here" affordance on day cells.
func (n *NavigationService) ToAddEventOn(date domain.Date) bool {
	return n.NavigateTo(domain.ViewAddEvent, &domain.AddEventParams{PresetDate: date}, true)
}

func (n *NavigationService) ToEditEvent(event domain.EventData) bool {
	return n.NavigateTo(domain.ViewEditEvent, &domain.EditEventParams{Event: event}, true)
}

func (n *NavigationService) ToSearch(query string) bool {
	return n.NavigateTo(domain.ViewSearch, &domain.SearchParams{Query: query}, true)
}

// snapshotViewState asks the host for the departing view's UI state and
// records it. Views without a snapshot capability (search) contribute nothing.
func (n *NavigationService) snapshotViewState(view domain.View) {
	switch view {
	case domain.ViewCalendar:
		if st, ok := n.source.CalendarState(); ok {
			n.store.PutViewState(view, &st)
		}
	case domain.ViewDayView:
		if st, ok := n.source.DayViewState(); ok {
			n.store.PutViewState(view, &st)
		}
	case domain.ViewActivities:
		if st, ok := n.source.ActivitiesState(); ok {
			n.store.PutViewState(view, &st)
		}
	case domain.ViewAddEvent, domain.ViewEditEvent:
		if st, ok := n.source.EventFormState(); ok {
			n.store.PutViewState(view, &st)
		}
	}
}

// switchTo hands the view over to the host together with any saved state.
// The dispatch table is the authority on which views exist; reaching the end
// means the enum grew without this switch keeping up, and that must not be
// papered over.
func (n *NavigationService) switchTo(view domain.View, params domain.Params) error {
	switch view {
	case domain.ViewCalendar:
		return n.switcher.CreateCalendarView(calendarParams(params), calendarState(n.store))
	case domain.ViewDayView:
		return n.switcher.CreateDayView(dayViewParams(params), dayViewState(n.store))
	case domain.ViewActivities:
		return n.switcher.CreateActivitiesView(activitiesState(n.store))
	case domain.ViewAddEvent:
		return n.switcher.CreateAddEventView(addEventParams(params), formState(n.store, domain.ViewAddEvent))
	case domain.ViewEditEvent:
		return n.switcher.CreateEditEventView(editEventParams(params), formState(n.store, domain.ViewEditEvent))
	case domain.ViewSearch:
		return n.switcher.CreateSearchView(searchParams(params))
	}
	panic(fmt.Sprintf("navigation: no dispatch for view %q", string(view)))
}

// checkParams rejects params built for a different view than the one being
// navigated to. That mismatch cannot come from user input, only from code.
func checkParams(view domain.View, params domain.Params) {
	if params == nil {
		return
	}
	ok := false
	switch params.(type) {
	case *domain.CalendarParams:
		ok = view == domain.ViewCalendar
	case *domain.DayViewParams:
		ok = view == domain.ViewDayView
	case *domain.AddEventParams:
		ok = view == domain.ViewAddEvent
	case *domain.EditEventParams:
		ok = view == domain.ViewEditEvent
	case *domain.SearchParams:
		ok = view == domain.ViewSearch
	}
	if !ok {
		panic(fmt.Sprintf("navigation: %T params are not valid for view %q", params, string(view)))
	}
}

func calendarParams(p domain.Params) *domain.CalendarParams {
	if p == nil {
		return nil
	}
	return p.(*domain.CalendarParams)
}

func dayViewParams(p domain.Params) *domain.DayViewParams {
	if p == nil {
		return nil
	}
	return p.(*domain.DayViewParams)
}

func addEventParams(p domain.Params) *domain.AddEventParams {
	if p == nil {
		return nil
	}
	return p.(*domain.AddEventParams)
}

func editEventParams(p domain.Params) *domain.EditEventParams {
	if p == nil {
		return nil
	}
	return p.(*domain.EditEventParams)
}

func searchParams(p domain.Params) *domain.SearchParams {
	if p == nil {
		return nil
	}
	return p.(*domain.SearchParams)
}

func calendarState(store *RouteStore) *domain.CalendarState {
	if st, ok := store.GetViewState(domain.ViewCalendar); ok {
		if cs, ok := st.(*domain.CalendarState); ok {
			return cs
		}
	}
	return nil
}

func dayViewState(store *RouteStore) *domain.DayViewState {
	if st, ok := store.GetViewState(domain.ViewDayView); ok {
		if ds, ok := st.(*domain.DayViewState); ok {
			return ds
		}
	}
	return nil
}

func activitiesState(store *RouteStore) *domain.ActivitiesState {
	if st, ok := store.GetViewState(domain.ViewActivities); ok {
		if as, ok := st.(*domain.ActivitiesState); ok {
			return as
		}
	}
	return nil
}

func formState(store *RouteStore, view domain.View) *domain.EventFormState {
	if st, ok := store.GetViewState(view); ok {
		if fs, ok := st.(*domain.EventFormState); ok {
			return fs
		}
	}
	return nil
}
