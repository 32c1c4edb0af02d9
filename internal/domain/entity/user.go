package entity

import "time"

// Roles predefinidos para User. El campo Role es texto libre: el dueño puede
// definir roles propios (ej. "Designer"); estos tres son los que tienen
// fallback en la tabla de permisos.
const (
	RoleAdmin   = "Admin"
	RoleManager = "Manager"
	RoleStaff   = "Staff"
)

// User representa una cuenta de acceso al sistema.
//
// Permissions es la lista explícita de tags de permiso. Lista vacía significa
// "sin permisos personalizados": el sistema cae a la tabla por rol.
type User struct {
	ID           string     `json:"id"`
	Username     string     `json:"username"`
	PasswordHash string     `json:"-"` // bcrypt hash, nunca sale por la API
	Name         string     `json:"name"`
	Role         string     `json:"role"`
	Permissions  []string   `json:"permissions"`
	Active       bool       `json:"active"`
	LastLogin    *time.Time `json:"lastLogin"`
	CreatedAt    time.Time  `json:"createdAt"`
}

// Normalize aplica defaults defensivos a un registro cargado del store:
// permissions ausente se trata como lista vacía (fallback por rol).
func (u *User) Normalize() {
	if u.Permissions == nil {
		u.Permissions = []string{}
	}
}
