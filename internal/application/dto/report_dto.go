package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// DashboardRequest rango de fechas del tablero. Range acepta los alias
// today, yesterday, 7d y month; custom exige From y To.
type DashboardRequest struct {
	Range string     `json:"range" validate:"omitempty,oneof=today yesterday 7d month custom"`
	From  *time.Time `json:"from"`
	To    *time.Time `json:"to"`
}

// DashboardResponse métricas del tablero sobre las órdenes visibles para el
// usuario que consulta.
type DashboardResponse struct {
	From          time.Time                  `json:"from"`
	To            time.Time                  `json:"to"`
	Revenue       decimal.Decimal            `json:"revenue"`
	Collections   decimal.Decimal            `json:"collections"`
	Expenses      decimal.Decimal            `json:"expenses"`
	NetFlow       decimal.Decimal            `json:"netFlow"`
	OrderCount    int                        `json:"orderCount"`
	StatusCounts  map[string]int             `json:"statusCounts"`
	OverdueOrders []OrderResponse            `json:"overdueOrders"`
	Pending       decimal.Decimal            `json:"pendingBalance"`
	Accounts      map[string]decimal.Decimal `json:"accountBalances"`
}
