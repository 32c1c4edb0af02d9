package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// WorkerRoles roles predefinidos de taller (el campo es texto libre, se
// pueden añadir roles propios como "Presser").
var WorkerRoles = []string{"Cutter", "Stitcher", "Designer"}

// Worker es un trabajador de piecework del taller.
type Worker struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Roles       []string        `json:"roles"`
	RatePerSuit decimal.Decimal `json:"ratePerSuit"`
}

// Normalize aplica defaults defensivos a un registro cargado del store.
func (w *Worker) Normalize() {
	if w.Roles == nil {
		w.Roles = []string{}
	}
}

// WorkerPayment es un pago hecho a un trabajador desde una cuenta.
type WorkerPayment struct {
	ID        string          `json:"id"`
	WorkerID  string          `json:"workerId"`
	Amount    decimal.Decimal `json:"amount"`
	Date      time.Time       `json:"date"`
	AccountID string          `json:"accountId"`
}
