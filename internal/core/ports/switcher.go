package ports

import (
	"github.com/campus-event-manager/navigation-service/internal/core/domain"
)

// ViewSwitcher is the window-side surface the router drives. One method per
// view keeps the contract closed: a host that cannot build a view fails to
// compile instead of failing at click time. Nil params or state mean the view
// opens fresh.
type ViewSwitcher interface {
	CreateCalendarView(p *domain.CalendarParams, st *domain.CalendarState) error
	CreateDayView(p *domain.DayViewParams, st *domain.DayViewState) error
	CreateActivitiesView(st *domain.ActivitiesState) error
	CreateAddEventView(p *domain.AddEventParams, st *domain.EventFormState) error
	CreateEditEventView(p *domain.EditEventParams, st *domain.EventFormState) error
	CreateSearchView(p *domain.SearchParams) error
}

// ViewStateSource lets the router snapshot the UI state of the view being
// left. A false return means there is nothing worth keeping. The search view
// deliberately has no snapshot.
type ViewStateSource interface {
	CalendarState() (domain.CalendarState, bool)
	DayViewState() (domain.DayViewState, bool)
	ActivitiesState() (domain.ActivitiesState, bool)
	EventFormState() (domain.EventFormState, bool)
}
