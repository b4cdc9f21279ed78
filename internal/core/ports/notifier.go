package ports

import (
	"github.com/campus-event-manager/navigation-service/internal/core/domain"
)

// Notifier is the user-facing warning surface. The GUI shows a dialog; the
// terminal host prints. The router fires it exactly once per denied attempt.
type Notifier interface {
	AccessDenied(view domain.View, role domain.Role)
}
