package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/tailor-pro/internal/application/dto"
	"github.com/tu-usuario/tailor-pro/internal/application/store"
	"github.com/tu-usuario/tailor-pro/internal/domain/entity"
	"github.com/tu-usuario/tailor-pro/internal/domain/permission"
	"github.com/tu-usuario/tailor-pro/pkg/jwt"
)

// LocalUser key del usuario resuelto en c.Locals.
const LocalUser = "current_user"

// AuthMiddleware valida el Bearer Token JWT y resuelve el usuario VIVO desde
// el store: desactivar una cuenta o recortar permisos surte efecto en la
// siguiente petición, sin esperar a que expire el token.
func AuthMiddleware(jwtSecret string, st *store.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "Authorization header requerido"})
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "formato: Bearer <token>"})
		}
		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "token vacío"})
		}
		userID, _, err := jwt.Parse(jwtSecret, tokenString)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "token inválido o expirado"})
		}
		user, ok := st.UserByID(userID)
		if !ok {
			// cuenta eliminada después de emitir el token
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNKNOWN_USER", Message: "la cuenta ya no existe"})
		}
		if !user.Active {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "INACTIVE", Message: "cuenta desactivada"})
		}
		c.Locals(LocalUser, &user)
		return c.Next()
	}
}

// RequirePermission autoriza contra el conjunto efectivo de permisos del
// usuario resuelto. Debe usarse DESPUÉS de AuthMiddleware.
func RequirePermission(tag permission.Tag) fiber.Handler {
	return func(c *fiber.Ctx) error {
		u := GetUser(c)
		if u == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "usuario no resuelto"})
		}
		if !permission.Has(u, tag) {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "permiso insuficiente: " + string(tag)})
		}
		return c.Next()
	}
}

// RequireAnyView autoriza si el usuario puede ver la categoría con
// cualquiera de los dos scopes (own o all); el filtrado fino lo hace la capa
// de visibilidad.
func RequireAnyView(category permission.Category) fiber.Handler {
	return func(c *fiber.Ctx) error {
		u := GetUser(c)
		if u == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "usuario no resuelto"})
		}
		if !permission.CanView(u, category) {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "sin acceso a " + string(category)})
		}
		return c.Next()
	}
}

// GetUser devuelve el usuario resuelto del contexto (después del middleware
// de auth).
func GetUser(c *fiber.Ctx) *entity.User {
	v := c.Locals(LocalUser)
	if v == nil {
		return nil
	}
	u, _ := v.(*entity.User)
	return u
}
