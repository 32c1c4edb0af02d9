package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateExpenseRequest entrada para registrar un gasto contra una cuenta.
type CreateExpenseRequest struct {
	Category  string          `json:"category" validate:"required"`
	Amount    decimal.Decimal `json:"amount" validate:"required"`
	AccountID string          `json:"accountId" validate:"required"`
	Date      *time.Time      `json:"date"`
	Note      string          `json:"note"`
}

// UpdateExpenseRequest entrada para corregir un gasto existente.
type UpdateExpenseRequest struct {
	Category  *string          `json:"category"`
	Amount    *decimal.Decimal `json:"amount"`
	AccountID *string          `json:"accountId"`
	Date      *time.Time       `json:"date"`
	Note      *string          `json:"note"`
}
