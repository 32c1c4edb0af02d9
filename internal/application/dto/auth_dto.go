package dto

// LoginRequest credenciales de inicio de sesión.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse token emitido + usuario resuelto.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// ChangePasswordRequest cambio de contraseña. UserID vacío = la propia
// cuenta (requiere CurrentPassword); con UserID un admin puede resetear sin
// la contraseña actual.
type ChangePasswordRequest struct {
	UserID          string `json:"userId,omitempty"`
	CurrentPassword string `json:"currentPassword,omitempty"`
	NewPassword     string `json:"newPassword" validate:"required"`
}
