package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// ExpenseCategories categorías sugeridas para gastos (el campo es texto libre).
var ExpenseCategories = []string{"Rent", "Electricity", "Staff Refreshment", "Materials", "Marketing", "Others"}

// Expense es un gasto del negocio cargado a una cuenta.
// Mode es el fallback legado pre-cuentas (nombre textual de la cuenta).
type Expense struct {
	ID        string          `json:"id"`
	Category  string          `json:"category"`
	Amount    decimal.Decimal `json:"amount"`
	Date      time.Time       `json:"date"`
	AccountID string          `json:"accountId,omitempty"`
	Mode      string          `json:"mode,omitempty"` // legado pre-cuentas
	Note      string          `json:"note,omitempty"`
}
