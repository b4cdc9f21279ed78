package repository

import (
	"bytes"
	"fmt"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/campus-event-manager/navigation-service/internal/core/domain"
	"github.com/campus-event-manager/navigation-service/internal/core/ports"
)

const (
	appVersion = "1.0"

	// Free-text fields are clipped to this many characters on the way to
	// disk so a runaway value cannot bloat the state file.
	maxStringLen = 1000
)

// stateDocument is the on-disk schema. Params and view states stay raw here;
// their shape depends on the view they belong to.
type stateDocument struct {
	CurrentRoute      routeDTO                   `json:"current_route"`
	NavigationHistory []historyEntryDTO          `json:"navigation_history"`
	ViewStates        map[string]json.RawMessage `json:"view_states"`
	Metadata          metadataDTO                `json:"metadata"`
}

type routeDTO struct {
	View   string          `json:"view"`
	Params json.RawMessage `json:"params"`
}

type historyEntryDTO struct {
	View      string          `json:"view"`
	Params    json.RawMessage `json:"params"`
	Timestamp string          `json:"timestamp"`
}

type metadataDTO struct {
	LastUpdated string   `json:"last_updated"`
	AppVersion  string   `json:"app_version"`
	UserRole    string   `json:"user_role"`
	DataStats   statsDTO `json:"data_stats"`
}

type statsDTO struct {
	HistoryCount    int `json:"history_count"`
	ViewStatesCount int `json:"view_states_count"`
}

// encodeDocument serializes the snapshot, clipping free text and stamping the
// metadata block. The file stays indented; people do open it when debugging.
func encodeDocument(doc *ports.StateDocument, now time.Time) ([]byte, error) {
	out := stateDocument{
		ViewStates: make(map[string]json.RawMessage, len(doc.ViewStates)),
	}

	currentParams, err := encodeParams(doc.Current.Params)
	if err != nil {
		return nil, fmt.Errorf("encode current route: %w", err)
	}
	out.CurrentRoute = routeDTO{
		View:   doc.Current.View.String(),
		Params: currentParams,
	}

	out.NavigationHistory = make([]historyEntryDTO, 0, len(doc.History))
	for _, entry := range doc.History {
		params, err := encodeParams(entry.Route.Params)
		if err != nil {
			return nil, fmt.Errorf("encode history entry: %w", err)
		}
		out.NavigationHistory = append(out.NavigationHistory, historyEntryDTO{
			View:      entry.Route.View.String(),
			Params:    params,
			Timestamp: entry.Timestamp.Format(time.RFC3339),
		})
	}

	for view, state := range doc.ViewStates {
		raw, err := encodeViewState(state)
		if err != nil {
			return nil, fmt.Errorf("encode %s view state: %w", view, err)
		}
		if raw != nil {
			out.ViewStates[view.String()] = raw
		}
	}

	out.Metadata = metadataDTO{
		LastUpdated: now.Format(time.RFC3339),
		AppVersion:  appVersion,
		UserRole:    doc.UserRole.String(),
		DataStats: statsDTO{
			HistoryCount:    len(out.NavigationHistory),
			ViewStatesCount: len(out.ViewStates),
		},
	}

	return json.MarshalIndent(&out, "", "  ")
}

// decodeDocument parses the snapshot, salvaging what it safely can. Structural
// corruption is an error the caller turns into the default state; a single
// stale or unknown entry only costs that entry.
func decodeDocument(data []byte, logger zerolog.Logger) (*ports.StateDocument, error) {
	var in stateDocument
	if err := json.Unmarshal(data, &in); err != nil {
		return nil, fmt.Errorf("decode state document: %w", err)
	}

	doc := &ports.StateDocument{
		Current:    decodeRoute(in.CurrentRoute, logger),
		ViewStates: make(map[domain.View]domain.ViewState, len(in.ViewStates)),
	}

	if role, err := domain.ParseRole(in.Metadata.UserRole); err == nil {
		doc.UserRole = role
	}

	for _, dto := range in.NavigationHistory {
		view, err := domain.ParseView(dto.View)
		if err != nil {
			logger.Debug().Str("view", dto.View).Msg("drop history entry for unknown view")
			continue
		}
		ts, err := time.Parse(time.RFC3339, dto.Timestamp)
		if err != nil {
			logger.Debug().Str("timestamp", dto.Timestamp).Msg("drop history entry with bad timestamp")
			continue
		}
		params, err := decodeParams(view, dto.Params)
		if err != nil {
			logger.Debug().Err(err).Str("view", dto.View).Msg("drop history entry with bad params")
			continue
		}
		doc.History = append(doc.History, domain.HistoryEntry{
			Route:     domain.Route{View: view, Params: params},
			Timestamp: ts,
		})
	}

	for key, raw := range in.ViewStates {
		view, err := domain.ParseView(key)
		if err != nil {
			logger.Debug().Str("view", key).Msg("drop state for unknown view")
			continue
		}
		state, err := decodeViewState(view, raw)
		if err != nil {
			logger.Debug().Err(err).Str("view", key).Msg("drop undecodable view state")
			continue
		}
		if state != nil {
			doc.ViewStates[view] = state
		}
	}

	return doc, nil
}

// decodeRoute keeps the raw view name even when it is unknown. The store owns
// the decision of what to do with a route it cannot show; the codec only
// refuses to guess params for it.
func decodeRoute(dto routeDTO, logger zerolog.Logger) domain.Route {
	view, err := domain.ParseView(dto.View)
	if err != nil {
		return domain.Route{View: domain.View(dto.View)}
	}
	params, err := decodeParams(view, dto.Params)
	if err != nil {
		logger.Debug().Err(err).Str("view", dto.View).Msg("drop undecodable route params")
		params = nil
	}
	return domain.Route{View: view, Params: params}
}

func encodeParams(params domain.Params) (json.RawMessage, error) {
	switch p := params.(type) {
	case nil:
		return json.RawMessage(`{}`), nil
	case *domain.CalendarParams:
		return json.Marshal(p)
	case *domain.DayViewParams:
		return json.Marshal(p)
	case *domain.AddEventParams:
		return json.Marshal(p)
	case *domain.EditEventParams:
		clipped := *p
		clipped.Event.Title = clip(clipped.Event.Title)
		clipped.Event.Location = clip(clipped.Event.Location)
		clipped.Event.Description = clip(clipped.Event.Description)
		return json.Marshal(&clipped)
	case *domain.SearchParams:
		return json.Marshal(&domain.SearchParams{Query: clip(p.Query)})
	default:
		return nil, fmt.Errorf("unknown params type %T", params)
	}
}

func decodeParams(view domain.View, raw json.RawMessage) (domain.Params, error) {
	if emptyObject(raw) {
		return nil, nil
	}

	var params domain.Params
	switch view {
	case domain.ViewCalendar:
		params = &domain.CalendarParams{}
	case domain.ViewDayView:
		params = &domain.DayViewParams{}
	case domain.ViewAddEvent:
		params = &domain.AddEventParams{}
	case domain.ViewEditEvent:
		params = &domain.EditEventParams{}
	case domain.ViewSearch:
		params = &domain.SearchParams{}
	default:
		// Views without params, activities today. Whatever was written
		// there has no reader; drop it.
		return nil, nil
	}

	if err := json.Unmarshal(raw, params); err != nil {
		return nil, fmt.Errorf("decode %s params: %w", view, err)
	}
	return params, nil
}

func encodeViewState(state domain.ViewState) (json.RawMessage, error) {
	switch st := state.(type) {
	case *domain.CalendarState:
		clipped := *st
		clipped.FilterSelection = clip(clipped.FilterSelection)
		return json.Marshal(&clipped)
	case *domain.DayViewState:
		clipped := *st
		clipped.FilterSelection = clip(clipped.FilterSelection)
		return json.Marshal(&clipped)
	case *domain.ActivitiesState:
		clipped := *st
		clipped.ActivityFilter = clip(clipped.ActivityFilter)
		clipped.UpcomingFilter = clip(clipped.UpcomingFilter)
		return json.Marshal(&clipped)
	case *domain.EventFormState:
		return json.Marshal(&domain.EventFormState{Mode: clip(st.Mode)})
	default:
		return nil, fmt.Errorf("unknown view state type %T", state)
	}
}

func decodeViewState(view domain.View, raw json.RawMessage) (domain.ViewState, error) {
	state, ok := domain.StateFor(view)
	if !ok {
		return nil, nil
	}
	if err := json.Unmarshal(raw, state); err != nil {
		return nil, fmt.Errorf("decode %s state: %w", view, err)
	}
	return state, nil
}

func emptyObject(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) == 0 ||
		bytes.Equal(trimmed, []byte("{}")) ||
		bytes.Equal(trimmed, []byte("null"))
}

func clip(s string) string {
	if len(s) <= maxStringLen {
		return s
	}
	runes := []rune(s)
	if len(runes) <= maxStringLen {
		return s
	}
	return string(runes[:maxStringLen])
}
