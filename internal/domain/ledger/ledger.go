// Package ledger contiene las derivaciones financieras puras del negocio:
// saldos de órdenes, saldos de cuentas y balances de trabajadores.
//
// Nada aquí se cachea ni se almacena: cada cifra se recalcula bajo demanda
// desde el historial completo (cientos a pocos miles de registros, el costo
// es despreciable) y es función pura de sus entradas.
package ledger

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/tailor-pro/internal/domain/entity"
)

// OrderPaid suma todos los abonos registrados en la orden.
func OrderPaid(o *entity.Order) decimal.Decimal {
	total := decimal.Zero
	for _, p := range o.Payments {
		total = total.Add(p.Amount)
	}
	return total
}

// OrderBalance devuelve TotalPrice − Σ pagos. Negativo tras un sobrepago
// (la UI lo presenta como "Advance").
func OrderBalance(o *entity.Order) decimal.Decimal {
	return o.TotalPrice.Sub(OrderPaid(o))
}

// AccountBalance deriva el saldo de una cuenta desde el historial completo.
//
// Entradas: abonos de órdenes cuyo accountId coincide, MÁS los pagos legados
// sin accountId cuyo mode coincide con el nombre de la cuenta (shim de
// compatibilidad pre-modelo-de-cuentas).
// Salidas: gastos (mismo fallback legado) y pagos a trabajadores (sin
// fallback: siempre nacieron con cuenta).
func AccountBalance(
	accountID string,
	accounts []entity.Account,
	orders []entity.Order,
	expenses []entity.Expense,
	workerPayments []entity.WorkerPayment,
) decimal.Decimal {
	var account *entity.Account
	for i := range accounts {
		if accounts[i].ID == accountID {
			account = &accounts[i]
			break
		}
	}
	if account == nil {
		return decimal.Zero
	}

	in := decimal.Zero
	for _, o := range orders {
		for _, p := range o.Payments {
			switch {
			case p.AccountID == accountID:
				in = in.Add(p.Amount)
			case p.AccountID == "" && p.Mode == account.Name:
				in = in.Add(p.Amount)
			}
		}
	}

	out := decimal.Zero
	for _, e := range expenses {
		switch {
		case e.AccountID == accountID:
			out = out.Add(e.Amount)
		case e.AccountID == "" && e.Mode == account.Name:
			out = out.Add(e.Amount)
		}
	}
	for _, wp := range workerPayments {
		if wp.AccountID == accountID {
			out = out.Add(wp.Amount)
		}
	}

	return in.Sub(out)
}

// WorkerEarned suma las tarifas de las órdenes donde el trabajador figura
// como cutter o stitcher. Una orden donde ocupa ambos roles aporta las dos
// tarifas (aditivo, no deduplicado).
func WorkerEarned(workerName string, orders []entity.Order) decimal.Decimal {
	total := decimal.Zero
	for _, o := range orders {
		if o.Assignments.Cutter == workerName {
			total = total.Add(o.Assignments.CutterRate)
		}
		if o.Assignments.Stitcher == workerName {
			total = total.Add(o.Assignments.StitcherRate)
		}
	}
	return total
}

// WorkerPaid suma los pagos hechos al trabajador.
func WorkerPaid(workerID string, payments []entity.WorkerPayment) decimal.Decimal {
	total := decimal.Zero
	for _, p := range payments {
		if p.WorkerID == workerID {
			total = total.Add(p.Amount)
		}
	}
	return total
}

// WorkerBalance devuelve ganado − pagado con signo. Negativo = el trabajador
// va adelantado ("Advance" en su ledger).
func WorkerBalance(w *entity.Worker, orders []entity.Order, payments []entity.WorkerPayment) decimal.Decimal {
	return WorkerEarned(w.Name, orders).Sub(WorkerPaid(w.ID, payments))
}

// WorkerPayable devuelve max(0, ganado − pagado): en los totales agregados
// un adelanto no resta de lo adeudado a otros trabajadores.
func WorkerPayable(w *entity.Worker, orders []entity.Order, payments []entity.WorkerPayment) decimal.Decimal {
	balance := WorkerBalance(w, orders, payments)
	if balance.IsNegative() {
		return decimal.Zero
	}
	return balance
}

// JobAssignment es una fila del ledger por trabajador: una orden y el rol
// por el que devenga. Una orden con ambos roles produce dos filas.
type JobAssignment struct {
	Order *entity.Order
	Role  string // "cutter" | "stitcher"
	Rate  decimal.Decimal
}

// WorkerJobs lista las asignaciones del trabajador en orden de aparición.
func WorkerJobs(workerName string, orders []entity.Order) []JobAssignment {
	var jobs []JobAssignment
	for i := range orders {
		o := &orders[i]
		if o.Assignments.Cutter == workerName {
			jobs = append(jobs, JobAssignment{Order: o, Role: "cutter", Rate: o.Assignments.CutterRate})
		}
		if o.Assignments.Stitcher == workerName {
			jobs = append(jobs, JobAssignment{Order: o, Role: "stitcher", Rate: o.Assignments.StitcherRate})
		}
	}
	return jobs
}

// PeriodTotals cifras agregadas de un rango de fechas sobre órdenes YA
// filtradas por visibilidad.
//
// Revenue es valor facturado (Σ totalPrice); Collections es lo realmente
// cobrado (Σ abonos de esas órdenes). NetFlow = Collections − Expenses;
// flujo de caja, no utilidad.
type PeriodTotals struct {
	Revenue     decimal.Decimal
	Collections decimal.Decimal
	Expenses    decimal.Decimal
	NetFlow     decimal.Decimal
}

// Period calcula los totales del rango semiabierto [from, to): los rangos
// con nombre terminan en la medianoche siguiente y esa marca ya pertenece
// al día que arranca.
func Period(orders []entity.Order, expenses []entity.Expense, from, to time.Time) PeriodTotals {
	t := PeriodTotals{Revenue: decimal.Zero, Collections: decimal.Zero, Expenses: decimal.Zero}
	for _, o := range orders {
		if o.Date.Before(from) || !o.Date.Before(to) {
			continue
		}
		t.Revenue = t.Revenue.Add(o.TotalPrice)
		t.Collections = t.Collections.Add(OrderPaid(&o))
	}
	for _, e := range expenses {
		if e.Date.Before(from) || !e.Date.Before(to) {
			continue
		}
		t.Expenses = t.Expenses.Add(e.Amount)
	}
	t.NetFlow = t.Collections.Sub(t.Expenses)
	return t
}

// FormatCurrency formatea un monto para mensajes y exportes: "Rs. 1,500" con
// signo delante del prefijo, como lo muestra la UI.
func FormatCurrency(v decimal.Decimal) string {
	sign := ""
	if v.IsNegative() {
		sign = "-"
		v = v.Neg()
	}
	return sign + "Rs. " + groupThousands(v.StringFixed(0))
}

func groupThousands(digits string) string {
	n := len(digits)
	if n <= 3 {
		return digits
	}
	var b strings.Builder
	rem := n % 3
	if rem > 0 {
		b.WriteString(digits[:rem])
	}
	for i := rem; i < n; i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}
