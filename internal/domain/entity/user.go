package entity

import "time"

// Roles válidos para User.
const (
	RoleOwner    = "owner"
	RoleWorker   = "worker"
	RoleCustomer = "customer"
)

// User usuario del sistema: personal (owner/worker) con usuario+clave o cliente identificado por teléfono.
type User struct {
	ID           string
	Name         string
	Username     string
	PasswordHash string // bcrypt; vacío para clientes
	Phone        string
	Role         string
	CreatedAt    time.Time
}
