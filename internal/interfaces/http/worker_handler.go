package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/tailor-pro/internal/application/dto"
	"github.com/tu-usuario/tailor-pro/internal/application/usecase"
)

// WorkerHandler maneja trabajadores, sus pagos y su estado de cuenta.
type WorkerHandler struct {
	uc *usecase.WorkerUseCase
}

// NewWorkerHandler construye el handler de trabajadores.
func NewWorkerHandler(uc *usecase.WorkerUseCase) *WorkerHandler {
	return &WorkerHandler{uc: uc}
}

// Create registra un trabajador (con cuenta Staff opcional).
func (h *WorkerHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateWorkerRequest
	if ok, err := parseAndValidate(c, &in); !ok {
		return err
	}
	out, err := h.uc.Create(in)
	if err != nil {
		return domainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List devuelve todos los trabajadores.
func (h *WorkerHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List()
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(out)
}

// Update edita un trabajador.
func (h *WorkerHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateWorkerRequest
	if ok, err := parseAndValidate(c, &in); !ok {
		return err
	}
	out, err := h.uc.Update(c.Params("id"), in)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(out)
}

// Delete elimina un trabajador y limpia sus asignaciones.
func (h *WorkerHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Params("id")); err != nil {
		return domainError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Pay registra un pago al trabajador.
func (h *WorkerHandler) Pay(c *fiber.Ctx) error {
	var in dto.PayWorkerRequest
	if ok, err := parseAndValidate(c, &in); !ok {
		return err
	}
	out, err := h.uc.Pay(c.Params("id"), in)
	if err != nil {
		return domainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Ledger devuelve el estado de cuenta del trabajador.
func (h *WorkerHandler) Ledger(c *fiber.Ctx) error {
	out, err := h.uc.Ledger(GetUser(c), c.Params("id"))
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(out)
}
