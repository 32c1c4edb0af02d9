package usecase

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"time"

	"github.com/tu-usuario/tailor-pro/internal/application/dto"
	"github.com/tu-usuario/tailor-pro/internal/application/store"
	"github.com/tu-usuario/tailor-pro/internal/domain"
	"github.com/tu-usuario/tailor-pro/internal/domain/entity"
	"github.com/tu-usuario/tailor-pro/internal/domain/ledger"
	"github.com/tu-usuario/tailor-pro/internal/domain/permission"
	"github.com/tu-usuario/tailor-pro/internal/domain/visibility"
)

// ReceiptGenerator genera el PDF imprimible de una orden.
type ReceiptGenerator interface {
	GenerateOrderReceipt(order *entity.Order, settings entity.BusinessSettings) ([]byte, error)
}

// ExportUseCase exportes CSV de colecciones y recibo PDF de una orden.
// Los exportes respetan el mismo filtro de visibilidad que las vistas.
type ExportUseCase struct {
	store    *store.Store
	receipts ReceiptGenerator
}

// NewExportUseCase construye el caso de uso.
func NewExportUseCase(st *store.Store, receipts ReceiptGenerator) *ExportUseCase {
	return &ExportUseCase{store: st, receipts: receipts}
}

// OrdersCSV exporta las órdenes visibles para el usuario.
func (uc *ExportUseCase) OrdersCSV(u *entity.User) ([]byte, error) {
	snap, err := uc.store.Snapshot()
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	_ = w.Write([]string{"ID", "Cliente", "Teléfono", "Estado", "Total", "Pagado", "Saldo", "Fecha", "Entrega", "Cortador", "Costurero"})
	for _, o := range visibility.Orders(u, snap.Orders, snap.Workers) {
		delivery := ""
		if o.DeliveryDate != nil {
			delivery = o.DeliveryDate.Format("2006-01-02")
		}
		_ = w.Write([]string{
			o.ID,
			o.CustomerName,
			o.CustomerPhone,
			o.Status,
			o.TotalPrice.String(),
			ledger.OrderPaid(&o).String(),
			ledger.OrderBalance(&o).String(),
			o.Date.Format("2006-01-02"),
			delivery,
			o.Assignments.Cutter,
			o.Assignments.Stitcher,
		})
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("export: csv de órdenes: %w", err)
	}
	return buf.Bytes(), nil
}

// CustomersCSV exporta los clientes visibles para el usuario.
func (uc *ExportUseCase) CustomersCSV(u *entity.User) ([]byte, error) {
	snap, err := uc.store.Snapshot()
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	_ = w.Write([]string{"ID", "Nombre", "Teléfono", "Fecha de alta", "Perfiles"})
	for _, c := range visibility.Customers(u, snap.Customers, snap.Orders, snap.Workers) {
		_ = w.Write([]string{
			c.ID,
			c.Name,
			c.Phone,
			c.DateAdded,
			fmt.Sprintf("%d", len(c.Profiles)),
		})
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("export: csv de clientes: %w", err)
	}
	return buf.Bytes(), nil
}

// ExpensesCSV exporta todos los gastos.
func (uc *ExportUseCase) ExpensesCSV() ([]byte, error) {
	snap, err := uc.store.Snapshot()
	if err != nil {
		return nil, err
	}
	accountNames := map[string]string{}
	for _, a := range snap.Accounts {
		accountNames[a.ID] = a.Name
	}
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	_ = w.Write([]string{"ID", "Categoría", "Monto", "Fecha", "Cuenta", "Nota"})
	for _, e := range snap.Expenses {
		account := accountNames[e.AccountID]
		if account == "" {
			account = e.Mode
		}
		_ = w.Write([]string{
			e.ID,
			e.Category,
			e.Amount.String(),
			e.Date.Format("2006-01-02"),
			account,
			e.Note,
		})
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("export: csv de gastos: %w", err)
	}
	return buf.Bytes(), nil
}

// PeriodReportCSV exporta el resumen financiero de un rango de fechas sobre
// las órdenes visibles. Los gastos entran solo con view_all_expenses, igual
// que en el dashboard.
func (uc *ExportUseCase) PeriodReportCSV(u *entity.User, in dto.DashboardRequest, now time.Time) ([]byte, error) {
	from, to, err := resolveRange(in, now)
	if err != nil {
		return nil, err
	}
	snap, err := uc.store.Snapshot()
	if err != nil {
		return nil, err
	}
	orders := visibility.Orders(u, snap.Orders, snap.Workers)
	var expenses []entity.Expense
	if permission.Has(u, permission.ViewAllExpenses) {
		expenses = snap.Expenses
	}
	totals := ledger.Period(orders, expenses, from, to)

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	_ = w.Write([]string{"Desde", "Hasta", "Facturado", "Cobrado", "Gastos", "Flujo neto"})
	_ = w.Write([]string{
		from.Format("2006-01-02"),
		to.Format("2006-01-02"),
		totals.Revenue.String(),
		totals.Collections.String(),
		totals.Expenses.String(),
		totals.NetFlow.String(),
	})
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("export: csv de reporte: %w", err)
	}
	return buf.Bytes(), nil
}

// OrderReceiptPDF genera el recibo imprimible de una orden visible para el
// usuario.
func (uc *ExportUseCase) OrderReceiptPDF(u *entity.User, orderID string) ([]byte, error) {
	snap, err := uc.store.Snapshot()
	if err != nil {
		return nil, err
	}
	for _, o := range visibility.Orders(u, snap.Orders, snap.Workers) {
		if o.ID == orderID {
			return uc.receipts.GenerateOrderReceipt(&o, uc.store.Settings())
		}
	}
	return nil, domain.ErrNotFound
}
