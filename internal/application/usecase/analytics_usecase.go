package usecase

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/tu-usuario/tailor-pro/internal/application/dto"
	"github.com/tu-usuario/tailor-pro/internal/application/store"
	"github.com/tu-usuario/tailor-pro/internal/domain"
	"github.com/tu-usuario/tailor-pro/internal/domain/entity"
	"github.com/tu-usuario/tailor-pro/internal/domain/ledger"
	"github.com/tu-usuario/tailor-pro/internal/domain/permission"
	"github.com/tu-usuario/tailor-pro/internal/domain/visibility"
)

// AnalyticsUseCase métricas del tablero. Todos los agregados se calculan
// sobre las órdenes VISIBLES para quien consulta: un Staff con scope propio
// ve un tablero de sus propios números, no los del negocio.
type AnalyticsUseCase struct {
	store *store.Store
}

// NewAnalyticsUseCase construye el caso de uso.
func NewAnalyticsUseCase(st *store.Store) *AnalyticsUseCase {
	return &AnalyticsUseCase{store: st}
}

// resolveRange traduce el alias de rango a [from, to). Los alias trabajan en
// días de calendario de la zona local del servidor.
func resolveRange(in dto.DashboardRequest, now time.Time) (time.Time, time.Time, error) {
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	switch in.Range {
	case "", "today":
		return startOfDay, startOfDay.AddDate(0, 0, 1), nil
	case "yesterday":
		return startOfDay.AddDate(0, 0, -1), startOfDay, nil
	case "7d":
		return startOfDay.AddDate(0, 0, -6), startOfDay.AddDate(0, 0, 1), nil
	case "month":
		first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		return first, first.AddDate(0, 1, 0), nil
	case "custom":
		if in.From == nil || in.To == nil {
			return time.Time{}, time.Time{}, domain.ErrInvalidInput
		}
		return *in.From, *in.To, nil
	default:
		return time.Time{}, time.Time{}, domain.ErrInvalidInput
	}
}

// Dashboard arma las métricas del rango pedido para el usuario dado.
func (uc *AnalyticsUseCase) Dashboard(u *entity.User, in dto.DashboardRequest) (*dto.DashboardResponse, error) {
	from, to, err := resolveRange(in, time.Now())
	if err != nil {
		return nil, err
	}
	snap, err := uc.store.Snapshot()
	if err != nil {
		return nil, err
	}

	visible := visibility.Orders(u, snap.Orders, snap.Workers)

	// Los gastos no tienen dueño: en el tablero solo cuentan para quien
	// puede verlos todos.
	var expenses []entity.Expense
	if permission.Has(u, permission.ViewAllExpenses) {
		expenses = snap.Expenses
	}
	totals := ledger.Period(visible, expenses, from, to)

	resp := &dto.DashboardResponse{
		From:         from,
		To:           to,
		Revenue:      totals.Revenue,
		Collections:  totals.Collections,
		Expenses:     totals.Expenses,
		NetFlow:      totals.NetFlow,
		StatusCounts: map[string]int{},
	}
	for _, s := range entity.OrderStatuses {
		resp.StatusCounts[s] = 0
	}

	now := time.Now()
	pending := decimal.Zero
	for _, o := range visible {
		if !o.Date.Before(from) && o.Date.Before(to) {
			resp.OrderCount++
		}
		resp.StatusCounts[o.Status]++
		bal := ledger.OrderBalance(&o)
		if bal.IsPositive() {
			pending = pending.Add(bal)
		}
		if o.Status != entity.StatusDelivered && o.DeliveryDate != nil && o.DeliveryDate.Before(now) {
			resp.OverdueOrders = append(resp.OverdueOrders, toOrderResponse(o))
		}
	}
	resp.Pending = pending

	if permission.Has(u, permission.ViewAccounts) {
		resp.Accounts = map[string]decimal.Decimal{}
		for _, a := range snap.Accounts {
			resp.Accounts[a.Name] = ledger.AccountBalance(a.ID, snap.Accounts, snap.Orders, snap.Expenses, snap.WorkerPayments)
		}
	}
	return resp, nil
}
