package dto

import (
	"time"

	"github.com/tu-usuario/tailor-pro/internal/domain/entity"
)

// CreateUserRequest entrada para crear una cuenta de acceso.
// Permissions vacío deja al usuario con los permisos de su rol.
type CreateUserRequest struct {
	Username    string   `json:"username" validate:"required,min=1,max=50"`
	Password    string   `json:"password" validate:"required,min=6"`
	Name        string   `json:"name" validate:"required,min=1,max=100"`
	Role        string   `json:"role" validate:"required"`
	Permissions []string `json:"permissions"`
}

// UpdateUserRequest entrada para actualizar una cuenta (sin contraseña, eso
// va por el endpoint de password).
type UpdateUserRequest struct {
	Username    *string  `json:"username" validate:"omitempty,min=1,max=50"`
	Name        *string  `json:"name" validate:"omitempty,min=1,max=100"`
	Role        *string  `json:"role"`
	Permissions []string `json:"permissions"`
	Active      *bool    `json:"active"`
}

// UserResponse salida de una cuenta. Nunca incluye el hash de contraseña.
type UserResponse struct {
	ID          string     `json:"id"`
	Username    string     `json:"username"`
	Name        string     `json:"name"`
	Role        string     `json:"role"`
	Permissions []string   `json:"permissions"`
	Active      bool       `json:"active"`
	LastLogin   *time.Time `json:"lastLogin"`
	CreatedAt   time.Time  `json:"createdAt"`
}

// UserFromEntity convierte la entidad a su representación de API.
func UserFromEntity(u entity.User) UserResponse {
	return UserResponse{
		ID:          u.ID,
		Username:    u.Username,
		Name:        u.Name,
		Role:        u.Role,
		Permissions: u.Permissions,
		Active:      u.Active,
		LastLogin:   u.LastLogin,
		CreatedAt:   u.CreatedAt,
	}
}
