package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/tailor-pro/internal/application/dto"
	"github.com/tu-usuario/tailor-pro/internal/application/usecase"
)

// AccountHandler maneja fondos de dinero y datos del negocio.
type AccountHandler struct {
	uc *usecase.AccountUseCase
}

// NewAccountHandler construye el handler de cuentas.
func NewAccountHandler(uc *usecase.AccountUseCase) *AccountHandler {
	return &AccountHandler{uc: uc}
}

// Create crea una cuenta nueva.
func (h *AccountHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateAccountRequest
	if ok, err := parseAndValidate(c, &in); !ok {
		return err
	}
	out, err := h.uc.Create(in)
	if err != nil {
		return domainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List devuelve las cuentas con saldos derivados.
func (h *AccountHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List()
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(out)
}

// Update renombra o retipa una cuenta.
func (h *AccountHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateAccountRequest
	if ok, err := parseAndValidate(c, &in); !ok {
		return err
	}
	out, err := h.uc.Update(c.Params("id"), in)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(out)
}

// Delete elimina una cuenta sin movimientos.
func (h *AccountHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Params("id")); err != nil {
		return domainError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// GetSettings devuelve los datos del negocio.
func (h *AccountHandler) GetSettings(c *fiber.Ctx) error {
	return c.JSON(h.uc.Settings())
}

// UpdateSettings guarda los datos del negocio.
func (h *AccountHandler) UpdateSettings(c *fiber.Ctx) error {
	var in dto.UpdateSettingsRequest
	if ok, err := parseAndValidate(c, &in); !ok {
		return err
	}
	out, err := h.uc.UpdateSettings(c.Context(), in)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(out)
}
