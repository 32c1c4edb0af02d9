package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/tailor-pro/internal/application/dto"
	"github.com/tu-usuario/tailor-pro/internal/application/usecase"
)

// OrderHandler maneja el ciclo de vida de órdenes.
type OrderHandler struct {
	uc *usecase.OrderUseCase
}

// NewOrderHandler construye el handler de órdenes.
func NewOrderHandler(uc *usecase.OrderUseCase) *OrderHandler {
	return &OrderHandler{uc: uc}
}

// Create registra una orden nueva.
func (h *OrderHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateOrderRequest
	if ok, err := parseAndValidate(c, &in); !ok {
		return err
	}
	out, err := h.uc.Create(in)
	if err != nil {
		return domainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List devuelve las órdenes visibles para el usuario.
func (h *OrderHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(GetUser(c))
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(out)
}

// GetByID devuelve una orden visible.
func (h *OrderHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.Get(GetUser(c), c.Params("id"))
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(out)
}

// Update edita una orden existente.
func (h *OrderHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateOrderRequest
	if ok, err := parseAndValidate(c, &in); !ok {
		return err
	}
	out, err := h.uc.Update(c.Params("id"), in)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(out)
}

// Delete elimina una orden.
func (h *OrderHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Params("id")); err != nil {
		return domainError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// SetStatus cambia el estado de la orden.
func (h *OrderHandler) SetStatus(c *fiber.Ctx) error {
	var in dto.SetStatusRequest
	if ok, err := parseAndValidate(c, &in); !ok {
		return err
	}
	out, err := h.uc.SetStatus(c.Params("id"), in.Status)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(out)
}

// AddPayment registra un abono parcial contra la orden.
func (h *OrderHandler) AddPayment(c *fiber.Ctx) error {
	var in dto.AddPaymentRequest
	if ok, err := parseAndValidate(c, &in); !ok {
		return err
	}
	out, err := h.uc.AddPayment(c.Params("id"), in)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(out)
}

// UpdateAssignments fija cortador/costurero y tarifas.
func (h *OrderHandler) UpdateAssignments(c *fiber.Ctx) error {
	var in dto.UpdateAssignmentRequest
	if ok, err := parseAndValidate(c, &in); !ok {
		return err
	}
	out, err := h.uc.UpdateAssignments(c.Params("id"), in)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(out)
}

// ApplyReceipt reparte un recibo global del cliente entre sus órdenes
// pendientes y devuelve el detalle del reparto (sobrante incluido).
func (h *OrderHandler) ApplyReceipt(c *fiber.Ctx) error {
	var in dto.ApplyReceiptRequest
	if ok, err := parseAndValidate(c, &in); !ok {
		return err
	}
	out, err := h.uc.ApplyReceipt(in)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(out)
}
