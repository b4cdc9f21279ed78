package services

import (
	"github.com/rs/zerolog"

	"github.com/campus-event-manager/navigation-service/internal/core/domain"
	"github.com/campus-event-manager/navigation-service/internal/core/ports"
)

// mockStateRepository implements ports.StateRepository in memory with call
// tracking and error injection.
type mockStateRepository struct {
	doc *ports.StateDocument

	LoadCalls int
	SaveCalls []*ports.StateDocument

	LoadError error
	SaveError error
}

var _ ports.StateRepository = (*mockStateRepository)(nil)

func (m *mockStateRepository) Seed(doc *ports.StateDocument) {
	m.doc = doc
}

func (m *mockStateRepository) Load() (*ports.StateDocument, error) {
	m.LoadCalls++
	if m.LoadError != nil {
		return nil, m.LoadError
	}
	return m.doc, nil
}

func (m *mockStateRepository) Save(doc *ports.StateDocument) error {
	m.SaveCalls = append(m.SaveCalls, doc)
	if m.SaveError != nil {
		return m.SaveError
	}
	m.doc = doc
	return nil
}

// mockSwitcher records every view the router hands over, with the params and
// state each call carried.
type mockSwitcher struct {
	Trail []domain.View

	CalendarParams   []*domain.CalendarParams
	CalendarStates   []*domain.CalendarState
	DayViewParams    []*domain.DayViewParams
	DayViewStates    []*domain.DayViewState
	ActivitiesStates []*domain.ActivitiesState
	AddEventParams   []*domain.AddEventParams
	AddEventStates   []*domain.EventFormState
	EditEventParams  []*domain.EditEventParams
	EditEventStates  []*domain.EventFormState
	SearchParams     []*domain.SearchParams

	CalendarError   error
	DayViewError    error
	ActivitiesError error
	AddEventError   error
	EditEventError  error
	SearchError     error
}

var _ ports.ViewSwitcher = (*mockSwitcher)(nil)

func (m *mockSwitcher) CreateCalendarView(p *domain.CalendarParams, st *domain.CalendarState) error {
	m.Trail = append(m.Trail, domain.ViewCalendar)
	m.CalendarParams = append(m.CalendarParams, p)
	m.CalendarStates = append(m.CalendarStates, st)
	return m.CalendarError
}

func (m *mockSwitcher) CreateDayView(p *domain.DayViewParams, st *domain.DayViewState) error {
	m.Trail = append(m.Trail, domain.ViewDayView)
	m.DayViewParams = append(m.DayViewParams, p)
	m.DayViewStates = append(m.DayViewStates, st)
	return m.DayViewError
}

func (m *mockSwitcher) CreateActivitiesView(st *domain.ActivitiesState) error {
	m.Trail = append(m.Trail, domain.ViewActivities)
	m.ActivitiesStates = append(m.ActivitiesStates, st)
	return m.ActivitiesError
}

func (m *mockSwitcher) CreateAddEventView(p *domain.AddEventParams, st *domain.EventFormState) error {
	m.Trail = append(m.Trail, domain.ViewAddEvent)
	m.AddEventParams = append(m.AddEventParams, p)
	m.AddEventStates = append(m.AddEventStates, st)
	return m.AddEventError
}

func (m *mockSwitcher) CreateEditEventView(p *domain.EditEventParams, st *domain.EventFormState) error {
	m.Trail = append(m.Trail, domain.ViewEditEvent)
	m.EditEventParams = append(m.EditEventParams, p)
	m.EditEventStates = append(m.EditEventStates, st)
	return m.EditEventError
}

func (m *mockSwitcher) CreateSearchView(p *domain.SearchParams) error {
	m.Trail = append(m.Trail, domain.ViewSearch)
	m.SearchParams = append(m.SearchParams, p)
	return m.SearchError
}

// mockSource serves canned snapshots and counts how often each one is asked
// for.
type mockSource struct {
	Calendar   *domain.CalendarState
	DayView    *domain.DayViewState
	Activities *domain.ActivitiesState
	Form       *domain.EventFormState

	CalendarCalls   int
	DayViewCalls    int
	ActivitiesCalls int
	FormCalls       int
}

var _ ports.ViewStateSource = (*mockSource)(nil)

func (m *mockSource) CalendarState() (domain.CalendarState, bool) {
	m.CalendarCalls++
	if m.Calendar == nil {
		return domain.CalendarState{}, false
	}
	return *m.Calendar, true
}

func (m *mockSource) DayViewState() (domain.DayViewState, bool) {
	m.DayViewCalls++
	if m.DayView == nil {
		return domain.DayViewState{}, false
	}
	return *m.DayView, true
}

func (m *mockSource) ActivitiesState() (domain.ActivitiesState, bool) {
	m.ActivitiesCalls++
	if m.Activities == nil {
		return domain.ActivitiesState{}, false
	}
	return *m.Activities, true
}

func (m *mockSource) EventFormState() (domain.EventFormState, bool) {
	m.FormCalls++
	if m.Form == nil {
		return domain.EventFormState{}, false
	}
	return *m.Form, true
}

type deniedCall struct {
	View domain.View
	Role domain.Role
}

type mockNotifier struct {
	Denied []deniedCall
}

var _ ports.Notifier = (*mockNotifier)(nil)

func (m *mockNotifier) AccessDenied(view domain.View, role domain.Role) {
	m.Denied = append(m.Denied, deniedCall{View: view, Role: role})
}

// routerFixture wires a router against mocks for one test.
type routerFixture struct {
	router   *NavigationService
	store    *RouteStore
	repo     *mockStateRepository
	switcher *mockSwitcher
	source   *mockSource
	notifier *mockNotifier
}

func newRouterFixture(role domain.Role) *routerFixture {
	repo := &mockStateRepository{}
	store := NewRouteStore(role, repo, zerolog.Nop())
	switcher := &mockSwitcher{}
	source := &mockSource{}
	notifier := &mockNotifier{}
	router := NewNavigationService(role, store, switcher, source, notifier, zerolog.Nop())
	return &routerFixture{
		router:   router,
		store:    store,
		repo:     repo,
		switcher: switcher,
		source:   source,
		notifier: notifier,
	}
}
