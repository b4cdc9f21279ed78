package domain

// PermissionSet describes what a role may do with events and which views it
// may never enter. Restricted views are a denylist: everything not listed is
// reachable.
type PermissionSet struct {
	CanAddEvents    bool
	CanEditEvents   bool
	CanDeleteEvents bool
	Restricted      map[View]struct{}
}

// PermissionsFor maps every role to its permission set. Unknown roles get the
// student set, the most restricted one. The result is a fresh value; callers
// may hold on to it.
func PermissionsFor(role Role) PermissionSet {
	switch role {
	case RoleAdmin:
		return PermissionSet{
			CanAddEvents:    true,
			CanEditEvents:   true,
			CanDeleteEvents: true,
			Restricted:      map[View]struct{}{},
		}
	case RoleOrganization, RoleFaculty:
		return PermissionSet{
			CanAddEvents: true,
			Restricted: map[View]struct{}{
				ViewEditEvent: {},
			},
		}
	default:
		return PermissionSet{
			Restricted: map[View]struct{}{
				ViewAddEvent:  {},
				ViewEditEvent: {},
			},
		}
	}
}

// Allows reports whether the set permits entering the given view.
func (p PermissionSet) Allows(v View) bool {
	_, restricted := p.Restricted[v]
	return !restricted
}

// DefaultViewFor is the landing view a role is redirected to when it cannot
// enter the requested one. Every role lands on the calendar.
func DefaultViewFor(Role) View {
	return ViewCalendar
}
