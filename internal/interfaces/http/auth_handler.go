package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/tailor-pro/internal/application/dto"
	"github.com/tu-usuario/tailor-pro/internal/application/usecase"
)

// AuthHandler maneja login, sesión y cambio de contraseña.
type AuthHandler struct {
	uc *usecase.AuthUseCase
}

// NewAuthHandler construye el handler de auth.
func NewAuthHandler(uc *usecase.AuthUseCase) *AuthHandler {
	return &AuthHandler{uc: uc}
}

// Login valida credenciales y emite el token.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if ok, err := parseAndValidate(c, &in); !ok {
		return err
	}
	out, err := h.uc.Login(in)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(out)
}

// Me devuelve el usuario de la sesión con sus permisos efectivos resueltos.
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	u := GetUser(c)
	resp, perms, err := h.uc.Current(u.ID)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(fiber.Map{"user": resp, "effectivePermissions": perms})
}

// ChangePassword cambia la contraseña propia o resetea la de otra cuenta.
func (h *AuthHandler) ChangePassword(c *fiber.Ctx) error {
	var in dto.ChangePasswordRequest
	if ok, err := parseAndValidate(c, &in); !ok {
		return err
	}
	if err := h.uc.ChangePassword(c.Context(), GetUser(c), in); err != nil {
		return domainError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
