package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/tu-usuario/tailor-pro/internal/domain/entity"
)

// CreateOrderRequest entrada para registrar una orden nueva.
// El pago Advance es opcional: monto cero o ausente no genera abono.
type CreateOrderRequest struct {
	CustomerID    string                    `json:"customerId" validate:"required"`
	ItemsList     []entity.OrderItem        `json:"itemsList" validate:"required,min=1"`
	TotalPrice    decimal.Decimal           `json:"totalPrice"`
	DeliveryDate  *time.Time                `json:"deliveryDate"`
	AdvanceAmount decimal.Decimal           `json:"advanceAmount"`
	AccountID     string                    `json:"accountId"`
	Measurements  []entity.OrderMeasurement `json:"measurements"`
}

// UpdateOrderRequest entrada para editar una orden existente.
type UpdateOrderRequest struct {
	ItemsList    []entity.OrderItem        `json:"itemsList"`
	TotalPrice   *decimal.Decimal          `json:"totalPrice"`
	DeliveryDate *time.Time                `json:"deliveryDate"`
	Measurements []entity.OrderMeasurement `json:"measurements"`
}

// SetStatusRequest cambio de estado de una orden.
type SetStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// AddPaymentRequest abono parcial contra una orden.
type AddPaymentRequest struct {
	Amount    decimal.Decimal `json:"amount" validate:"required"`
	AccountID string          `json:"accountId" validate:"required"`
	Date      *time.Time      `json:"date"`
}

// UpdateAssignmentRequest asignación de cortador/costurero y sus tarifas.
type UpdateAssignmentRequest struct {
	Cutter       string          `json:"cutter"`
	Stitcher     string          `json:"stitcher"`
	CutterRate   decimal.Decimal `json:"cutterRate"`
	StitcherRate decimal.Decimal `json:"stitcherRate"`
}

// ApplyReceiptRequest recibo global de un cliente para repartir entre sus
// órdenes con saldo pendiente.
type ApplyReceiptRequest struct {
	CustomerID string          `json:"customerId" validate:"required"`
	Amount     decimal.Decimal `json:"amount" validate:"required"`
	AccountID  string          `json:"accountId" validate:"required"`
}

// ApplyReceiptResponse resultado del reparto: cuánto se aplicó a cada orden
// y cuánto sobró sin asignar.
type ApplyReceiptResponse struct {
	Applied   []ReceiptApplication `json:"applied"`
	Remainder decimal.Decimal      `json:"remainder"`
}

// ReceiptApplication porción de un recibo aplicada a una orden concreta.
type ReceiptApplication struct {
	OrderID string          `json:"orderId"`
	Amount  decimal.Decimal `json:"amount"`
}

// OrderResponse salida de una orden con sus totales derivados.
type OrderResponse struct {
	entity.Order
	Paid    decimal.Decimal `json:"paid"`
	Balance decimal.Decimal `json:"balance"`
}
