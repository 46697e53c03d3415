package domain

// Role enumerates the four fixed staff roles.
type Role string

const (
	RoleAdmin                  Role = "admin"
	RoleMaintenance            Role = "maintenance"
	RoleHousekeeping           Role = "housekeeping"
	RoleHousekeepingSupervisor Role = "housekeeping_supervisor"
)

// Worker models a provisioned staff identity. Records are created by an
// external provisioning process and are read-only to this service.
type Worker struct {
	ID           string
	Name         string
	Username     string
	Role         Role
	Active       bool
	Editor       bool
	PasswordHash string
}

// SeesEverything reports whether the role has unrestricted visibility.
func (w *Worker) SeesEverything() bool {
	return w != nil && (w.Role == RoleAdmin || w.Role == RoleHousekeepingSupervisor)
}

// CanEditIncidents reports whether the worker may edit or delete incident
// records it did not author. Admins always can; other roles need the explicit
// editor permission on their record.
func (w *Worker) CanEditIncidents() bool {
	if w == nil {
		return false
	}
	return w.Role == RoleAdmin || w.Editor
}
