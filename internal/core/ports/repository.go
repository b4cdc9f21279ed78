package ports

import (
	"github.com/campus-event-manager/navigation-service/internal/core/domain"
)

// StateDocument is the full navigation snapshot handed to and from the
// persistence layer in one piece.
type StateDocument struct {
	Current    domain.Route
	History    []domain.HistoryEntry
	ViewStates map[domain.View]domain.ViewState
	UserRole   domain.Role
}

// StateRepository persists the navigation snapshot between sessions. Load
// reports fs.ErrNotExist (wrapped) when nothing has been saved yet so callers
// can treat a fresh install differently from a broken file.
type StateRepository interface {
	Load() (*StateDocument, error)
	Save(doc *StateDocument) error
}
