package services

import (
	"errors"
	"io/fs"
	"time"

	"github.com/rs/zerolog"

	"github.com/campus-event-manager/navigation-service/internal/core/domain"
	"github.com/campus-event-manager/navigation-service/internal/core/ports"
	"github.com/campus-event-manager/navigation-service/internal/metrics"
)

// Housekeeping policy for persisted navigation state. These are product
// constants, not tunables.
const (
	maxHistoryItems = 20
	maxViewStates   = 10
	cleanupMaxAge   = 48 * time.Hour
)

// protectedViewStates are evicted last when the view-state map is trimmed.
var protectedViewStates = []domain.View{
	domain.ViewCalendar,
	domain.ViewDayView,
	domain.ViewActivities,
}

// RouteStore owns the navigation state: the current route, the back stack and
// the per-view UI snapshots, together with their persistence and housekeeping.
// It is confined to the UI event loop and is not safe for concurrent use.
type RouteStore struct {
	repo   ports.StateRepository
	role   domain.Role
	perms  domain.PermissionSet
	now    func() time.Time
	logger zerolog.Logger

	current    domain.Route
	hasCurrent bool
	history    []domain.HistoryEntry
	viewStates map[domain.View]domain.ViewState
}

func NewRouteStore(
	role domain.Role,
	repo ports.StateRepository,
	logger zerolog.Logger,
) *RouteStore {
	return &RouteStore{
		repo:       repo,
		role:       role,
		perms:      domain.PermissionsFor(role),
		now:        time.Now,
		logger:     logger.With().Str("component", "route_store").Logger(),
		viewStates: make(map[domain.View]domain.ViewState),
	}
}

func (s *RouteStore) Role() domain.Role {
	return s.role
}

// Load pulls the persisted snapshot and adopts it. Anything that cannot be
// read, decoded or trusted degrades to the default state; Load never fails.
func (s *RouteStore) Load() {
	doc, err := s.repo.Load()
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			s.logger.Debug().Msg("no saved navigation state, starting fresh")
		} else {
			s.logger.Warn().Err(err).Msg("navigation state unreadable, starting fresh")
			metrics.StateLoadFallbacks.Inc()
		}
		s.reset()
		return
	}

	s.adopt(doc)
	s.Cleanup()
}

// Save runs housekeeping and hands the snapshot to the repository. It reports
// failure instead of propagating it; navigation must survive a broken disk.
func (s *RouteStore) Save() bool {
	s.Cleanup()

	doc := &ports.StateDocument{
		Current:    s.current.Clone(),
		History:    s.History(),
		ViewStates: s.copyViewStates(),
		UserRole:   s.role,
	}

	if err := s.repo.Save(doc); err != nil {
		s.logger.Error().Err(err).Msg("persist navigation state")
		metrics.StateSaveFailures.Inc()
		return false
	}

	metrics.StateSaves.Inc()
	return true
}

// Cleanup applies the retention policy: drop history entries older than two
// days, cap the back stack, and cap the view-state map while preferring to
// keep the everyday views.
func (s *RouteStore) Cleanup() {
	cutoff := s.now().Add(-cleanupMaxAge)

	kept := s.history[:0]
	for _, entry := range s.history {
		if entry.Timestamp.After(cutoff) {
			kept = append(kept, entry)
		}
	}
	s.history = kept

	if len(s.history) > maxHistoryItems {
		s.history = s.history[len(s.history)-maxHistoryItems:]
	}
	metrics.HistoryDepth.Set(float64(len(s.history)))

	s.trimViewStates()
}

func (s *RouteStore) trimViewStates() {
	if len(s.viewStates) <= maxViewStates {
		return
	}

	protected := make(map[domain.View]struct{}, len(protectedViewStates))
	for _, v := range protectedViewStates {
		protected[v] = struct{}{}
	}

	for v := range s.viewStates {
		if len(s.viewStates) <= maxViewStates {
			break
		}
		if _, keep := protected[v]; keep {
			continue
		}
		delete(s.viewStates, v)
	}

	// Still oversized means even protected entries have to go.
	for v := range s.viewStates {
		if len(s.viewStates) <= maxViewStates {
			break
		}
		delete(s.viewStates, v)
	}
}

// Current returns a detached copy of the current route. The second return is
// false until the first navigation or Load establishes one.
func (s *RouteStore) Current() (domain.Route, bool) {
	if !s.hasCurrent {
		return domain.Route{}, false
	}
	return s.current.Clone(), true
}

func (s *RouteStore) SetCurrent(r domain.Route) {
	s.current = r
	s.hasCurrent = true
}

// PushHistory appends the route to the back stack with the current timestamp
// and trims the stack immediately.
func (s *RouteStore) PushHistory(r domain.Route) {
	s.history = append(s.history, domain.HistoryEntry{
		Route:     r.Clone(),
		Timestamp: s.now(),
	})
	if len(s.history) > maxHistoryItems {
		s.history = s.history[len(s.history)-maxHistoryItems:]
	}
	metrics.HistoryDepth.Set(float64(len(s.history)))
}

// PopHistory removes and returns the most recent entry. It reports false on
// an empty stack and changes nothing.
func (s *RouteStore) PopHistory() (domain.HistoryEntry, bool) {
	if len(s.history) == 0 {
		return domain.HistoryEntry{}, false
	}
	last := len(s.history) - 1
	entry := s.history[last]
	s.history = s.history[:last]
	metrics.HistoryDepth.Set(float64(len(s.history)))
	return entry, true
}

// History returns a detached copy of the back stack, oldest first.
func (s *RouteStore) History() []domain.HistoryEntry {
	out := make([]domain.HistoryEntry, len(s.history))
	for i, entry := range s.history {
		out[i] = domain.HistoryEntry{
			Route:     entry.Route.Clone(),
			Timestamp: entry.Timestamp,
		}
	}
	return out
}

// ClearHistory empties the back stack and persists the shrunken state right
// away, mirroring what the settings screen's "clear history" button promises.
func (s *RouteStore) ClearHistory() bool {
	s.history = nil
	metrics.HistoryDepth.Set(0)
	return s.Save()
}

// PutViewState records a snapshot for the view. Snapshots of views the user
// cannot enter are dropped silently; nothing about a forbidden view belongs
// in the state file.
func (s *RouteStore) PutViewState(view domain.View, state domain.ViewState) {
	if state == nil {
		return
	}
	if !s.perms.Allows(view) {
		s.logger.Debug().Str("view", view.String()).Msg("skip view state for restricted view")
		return
	}
	s.viewStates[view] = state
}

func (s *RouteStore) GetViewState(view domain.View) (domain.ViewState, bool) {
	state, ok := s.viewStates[view]
	return state, ok
}

func (s *RouteStore) reset() {
	s.current = domain.DefaultRoute()
	s.hasCurrent = true
	s.history = nil
	s.viewStates = make(map[domain.View]domain.ViewState)
	metrics.HistoryDepth.Set(0)
}

// adopt takes over a loaded document, dropping whatever the active role is
// not allowed to see. Old files may predate a role change or contain views
// from newer app versions; neither is worth failing over.
func (s *RouteStore) adopt(doc *ports.StateDocument) {
	s.reset()

	if doc == nil {
		return
	}

	if doc.Current.View.Valid() && s.perms.Allows(doc.Current.View) {
		s.current = doc.Current.Clone()
	} else {
		s.logger.Info().
			Str("view", doc.Current.View.String()).
			Msg("persisted route not available for this role, using default")
	}

	for _, entry := range doc.History {
		if !entry.Route.View.Valid() || !s.perms.Allows(entry.Route.View) {
			continue
		}
		s.history = append(s.history, domain.HistoryEntry{
			Route:     entry.Route.Clone(),
			Timestamp: entry.Timestamp,
		})
	}
	metrics.HistoryDepth.Set(float64(len(s.history)))

	for view, state := range doc.ViewStates {
		if !view.Valid() || state == nil {
			continue
		}
		if !s.perms.Allows(view) {
			continue
		}
		s.viewStates[view] = state
	}
}

func (s *RouteStore) copyViewStates() map[domain.View]domain.ViewState {
	out := make(map[domain.View]domain.ViewState, len(s.viewStates))
	for view, state := range s.viewStates {
		out[view] = state
	}
	return out
}
