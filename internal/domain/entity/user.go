package entity

import "time"

// Roles válidos para User.
const (
	RoleAdmin    = "admin"
	RoleVendedor = "vendedor"
)

// Estados de un usuario.
const (
	UserStatusActive   = "active"
	UserStatusInactive = "inactive"
)

// User representa a quien opera la caja o administra el inventario.
type User struct {
	ID           string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Name         string
	Role         string // admin, vendedor
	Status       string // active, inactive
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsValidRole indica si el rol es uno de los conocidos.
func IsValidRole(role string) bool {
	return role == RoleAdmin || role == RoleVendedor
}
