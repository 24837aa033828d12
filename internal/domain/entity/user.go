package entity

import "time"

// Roles válidos para User (conjunto estático).
const (
	RoleAdmin   = "admin"
	RoleManager = "manager"
	RoleStaff   = "staff"
	RoleViewer  = "viewer"
)

// ValidRole indica si el rol pertenece al conjunto estático.
func ValidRole(r string) bool {
	switch r {
	case RoleAdmin, RoleManager, RoleStaff, RoleViewer:
		return true
	}
	return false
}

// User representa un usuario del sistema.
type User struct {
	ID           string
	Username     string // único
	Email        string // único
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Role         string // admin, manager, staff, viewer
	IsActive     bool
	CreatedDate  time.Time
	ModifiedDate time.Time
}
