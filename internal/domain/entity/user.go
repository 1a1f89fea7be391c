package entity

import "time"

// Roles válidos para User.
const (
	RoleAdmin = "admin"
	RoleOwner = "owner"
)

// User representa un usuario del sistema. Cada usuario es un tenant: sus menús,
// categorías e ítems quedan aislados del resto.
type User struct {
	ID           int64
	Name         string
	LastName     string
	Email        string // siempre en minúsculas
	Cel          *string
	Role         string // admin, owner
	Active       bool
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Subdomain    string // único; resuelve el tenant del menú público
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
