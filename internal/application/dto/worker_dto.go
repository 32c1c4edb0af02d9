package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/tu-usuario/tailor-pro/internal/domain/entity"
)

// CreateWorkerRequest entrada para registrar un trabajador. Si CreateUser es
// true se crea además una cuenta Staff con contraseña por defecto.
type CreateWorkerRequest struct {
	Name        string          `json:"name" validate:"required,min=1,max=100"`
	Roles       []string        `json:"roles" validate:"required,min=1"`
	RatePerSuit decimal.Decimal `json:"ratePerSuit"`
	CreateUser  bool            `json:"createUser"`
	Username    string          `json:"username"`
}

// UpdateWorkerRequest entrada para actualizar un trabajador.
type UpdateWorkerRequest struct {
	Name        *string          `json:"name" validate:"omitempty,min=1,max=100"`
	Roles       []string         `json:"roles"`
	RatePerSuit *decimal.Decimal `json:"ratePerSuit"`
}

// PayWorkerRequest pago a un trabajador desde una cuenta.
type PayWorkerRequest struct {
	Amount    decimal.Decimal `json:"amount" validate:"required"`
	AccountID string          `json:"accountId" validate:"required"`
	Date      *time.Time      `json:"date"`
}

// WorkerLedgerResponse estado de cuenta de un trabajador: trabajos
// asignados, totales devengados/pagados y saldo por pagar.
type WorkerLedgerResponse struct {
	Worker  entity.Worker          `json:"worker"`
	Jobs    []WorkerJobResponse    `json:"jobs"`
	Earned  decimal.Decimal        `json:"earned"`
	Paid    decimal.Decimal        `json:"paid"`
	Payable decimal.Decimal        `json:"payable"`
	History []entity.WorkerPayment `json:"history"`
}

// WorkerJobResponse fila del historial de trabajos de un trabajador.
type WorkerJobResponse struct {
	OrderID      string          `json:"orderId"`
	CustomerName string          `json:"customerName"`
	Role         string          `json:"role"`
	Rate         decimal.Decimal `json:"rate"`
	Status       string          `json:"status"`
	Date         time.Time       `json:"date"`
}
