package usecase

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tu-usuario/tailor-pro/internal/application/dto"
	"github.com/tu-usuario/tailor-pro/internal/application/store"
	"github.com/tu-usuario/tailor-pro/internal/domain"
	"github.com/tu-usuario/tailor-pro/internal/domain/entity"
	"github.com/tu-usuario/tailor-pro/internal/domain/ledger"
	"github.com/tu-usuario/tailor-pro/internal/domain/visibility"
)

// OrderUseCase ciclo de vida de órdenes: alta, estado, abonos, asignaciones
// y reparto de recibos.
type OrderUseCase struct {
	store *store.Store
}

// NewOrderUseCase construye el caso de uso.
func NewOrderUseCase(st *store.Store) *OrderUseCase {
	return &OrderUseCase{store: st}
}

// nextOrderID genera el folio ORD-<Mes>-<aa>-<secuencia>. Se llama solo
// dentro de Mutate: el lock del store serializa la secuencia.
func nextOrderID(orders []entity.Order, now time.Time) string {
	prefix := fmt.Sprintf("ORD-%s-%s-", now.Format("Jan"), now.Format("06"))
	max := 0
	for _, o := range orders {
		if !strings.HasPrefix(o.ID, prefix) {
			continue
		}
		if n, err := strconv.Atoi(strings.TrimPrefix(o.ID, prefix)); err == nil && n > max {
			max = n
		}
	}
	return fmt.Sprintf("%s%04d", prefix, max+1)
}

// Create registra una orden nueva. El estado inicial es siempre Booked sin
// importar lo que mande el cliente; un anticipo > 0 queda como primer abono.
func (uc *OrderUseCase) Create(in dto.CreateOrderRequest) (*dto.OrderResponse, error) {
	if len(in.ItemsList) == 0 {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	var created entity.Order
	err := uc.store.Mutate(func(st *entity.State) error {
		var customer *entity.Customer
		for i := range st.Customers {
			if st.Customers[i].ID == in.CustomerID {
				customer = &st.Customers[i]
				break
			}
		}
		if customer == nil {
			return domain.ErrNotFound
		}

		total := in.TotalPrice
		if total.IsZero() {
			for _, it := range in.ItemsList {
				total = total.Add(it.Price.Mul(decimal.NewFromInt(int64(it.Qty))))
			}
		}

		o := entity.Order{
			ID:            nextOrderID(st.Orders, now),
			CustomerID:    customer.ID,
			CustomerName:  customer.Name,
			CustomerPhone: customer.Phone,
			Status:        entity.StatusBooked,
			ItemsList:     in.ItemsList,
			TotalPrice:    total,
			Date:          now,
			DeliveryDate:  in.DeliveryDate,
			Payments:      []entity.Payment{},
			Measurements:  in.Measurements,
		}
		if o.Measurements == nil {
			o.Measurements = []entity.OrderMeasurement{}
		}
		if in.AdvanceAmount.IsPositive() {
			o.Payments = append(o.Payments, entity.Payment{
				Date:      now,
				Amount:    in.AdvanceAmount,
				Source:    entity.PaymentSourceAdvance,
				AccountID: in.AccountID,
			})
		}
		st.Orders = append(st.Orders, o)
		created = o
		return nil
	})
	if err != nil {
		return nil, err
	}
	resp := toOrderResponse(created)
	return &resp, nil
}

// List devuelve las órdenes visibles para el usuario: todas con
// view_all_orders, solo las asignadas a su trabajador homónimo en caso
// contrario.
func (uc *OrderUseCase) List(u *entity.User) ([]dto.OrderResponse, error) {
	snap, err := uc.store.Snapshot()
	if err != nil {
		return nil, err
	}
	visible := visibility.Orders(u, snap.Orders, snap.Workers)
	out := make([]dto.OrderResponse, 0, len(visible))
	for _, o := range visible {
		out = append(out, toOrderResponse(o))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return out, nil
}

// Get devuelve una orden si el usuario puede verla.
func (uc *OrderUseCase) Get(u *entity.User, orderID string) (*dto.OrderResponse, error) {
	snap, err := uc.store.Snapshot()
	if err != nil {
		return nil, err
	}
	for _, o := range visibility.Orders(u, snap.Orders, snap.Workers) {
		if o.ID == orderID {
			resp := toOrderResponse(o)
			return &resp, nil
		}
	}
	return nil, domain.ErrNotFound
}

// Update edita prendas, total, fecha de entrega o medidas de una orden.
func (uc *OrderUseCase) Update(orderID string, in dto.UpdateOrderRequest) (*dto.OrderResponse, error) {
	var updated entity.Order
	err := uc.store.Mutate(func(st *entity.State) error {
		o := findOrder(st, orderID)
		if o == nil {
			return domain.ErrNotFound
		}
		if in.ItemsList != nil {
			o.ItemsList = in.ItemsList
		}
		if in.TotalPrice != nil {
			o.TotalPrice = *in.TotalPrice
		}
		if in.DeliveryDate != nil {
			o.DeliveryDate = in.DeliveryDate
		}
		if in.Measurements != nil {
			o.Measurements = in.Measurements
		}
		updated = *o
		return nil
	})
	if err != nil {
		return nil, err
	}
	resp := toOrderResponse(updated)
	return &resp, nil
}

// Delete elimina una orden con todo su historial de abonos. Los saldos de
// cuenta alimentados por esos abonos se recalculan solos (nunca se
// almacenan).
func (uc *OrderUseCase) Delete(orderID string) error {
	return uc.store.Mutate(func(st *entity.State) error {
		for i := range st.Orders {
			if st.Orders[i].ID == orderID {
				st.Orders = append(st.Orders[:i], st.Orders[i+1:]...)
				return nil
			}
		}
		return domain.ErrNotFound
	})
}

// SetStatus cambia el estado. Cualquier transición es válida (el flujo
// lineal es convención de la UI, no regla del dominio).
func (uc *OrderUseCase) SetStatus(orderID, status string) (*dto.OrderResponse, error) {
	valid := false
	for _, s := range entity.OrderStatuses {
		if s == status {
			valid = true
			break
		}
	}
	if !valid {
		return nil, domain.ErrInvalidInput
	}
	var updated entity.Order
	err := uc.store.Mutate(func(st *entity.State) error {
		o := findOrder(st, orderID)
		if o == nil {
			return domain.ErrNotFound
		}
		o.Status = status
		updated = *o
		return nil
	})
	if err != nil {
		return nil, err
	}
	resp := toOrderResponse(updated)
	return &resp, nil
}

// AddPayment registra un abono parcial. El monto debe ser positivo; el
// sobrepago se permite (el saldo queda negativo y la UI lo muestra como
// anticipo a favor).
func (uc *OrderUseCase) AddPayment(orderID string, in dto.AddPaymentRequest) (*dto.OrderResponse, error) {
	if !in.Amount.IsPositive() {
		return nil, domain.ErrInvalidInput
	}
	date := time.Now()
	if in.Date != nil {
		date = *in.Date
	}
	var updated entity.Order
	err := uc.store.Mutate(func(st *entity.State) error {
		o := findOrder(st, orderID)
		if o == nil {
			return domain.ErrNotFound
		}
		if !accountExists(st, in.AccountID) {
			return domain.ErrNotFound
		}
		o.Payments = append(o.Payments, entity.Payment{
			Date:      date,
			Amount:    in.Amount,
			Source:    entity.PaymentSourcePartial,
			AccountID: in.AccountID,
		})
		updated = *o
		return nil
	})
	if err != nil {
		return nil, err
	}
	resp := toOrderResponse(updated)
	return &resp, nil
}

// UpdateAssignments fija cortador y costurero con sus tarifas. Nombre vacío
// desasigna el rol y fuerza su tarifa a cero.
func (uc *OrderUseCase) UpdateAssignments(orderID string, in dto.UpdateAssignmentRequest) (*dto.OrderResponse, error) {
	var updated entity.Order
	err := uc.store.Mutate(func(st *entity.State) error {
		o := findOrder(st, orderID)
		if o == nil {
			return domain.ErrNotFound
		}
		a := entity.Assignments{
			Cutter:       in.Cutter,
			Stitcher:     in.Stitcher,
			CutterRate:   in.CutterRate,
			StitcherRate: in.StitcherRate,
		}
		if a.Cutter == "" {
			a.CutterRate = decimal.Zero
		}
		if a.Stitcher == "" {
			a.StitcherRate = decimal.Zero
		}
		o.Assignments = a
		updated = *o
		return nil
	})
	if err != nil {
		return nil, err
	}
	resp := toOrderResponse(updated)
	return &resp, nil
}

// ApplyReceipt reparte un recibo global del cliente entre sus órdenes con
// saldo pendiente, de la más antigua a la más reciente. Lo que sobra tras
// saldar todas las órdenes NO se guarda: se devuelve para que el operador
// decida qué hacer con él.
func (uc *OrderUseCase) ApplyReceipt(in dto.ApplyReceiptRequest) (*dto.ApplyReceiptResponse, error) {
	if !in.Amount.IsPositive() {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	result := &dto.ApplyReceiptResponse{Applied: []dto.ReceiptApplication{}}
	err := uc.store.Mutate(func(st *entity.State) error {
		if !accountExists(st, in.AccountID) {
			return domain.ErrNotFound
		}
		var idxs []int
		for i := range st.Orders {
			if st.Orders[i].CustomerID == in.CustomerID {
				idxs = append(idxs, i)
			}
		}
		if len(idxs) == 0 {
			return domain.ErrNotFound
		}
		sort.Slice(idxs, func(a, b int) bool {
			return st.Orders[idxs[a]].Date.Before(st.Orders[idxs[b]].Date)
		})

		remaining := in.Amount
		for _, i := range idxs {
			if !remaining.IsPositive() {
				break
			}
			due := ledger.OrderBalance(&st.Orders[i])
			if !due.IsPositive() {
				continue
			}
			portion := decimal.Min(remaining, due)
			st.Orders[i].Payments = append(st.Orders[i].Payments, entity.Payment{
				Date:      now,
				Amount:    portion,
				Source:    entity.PaymentSourcePartial,
				AccountID: in.AccountID,
			})
			result.Applied = append(result.Applied, dto.ReceiptApplication{
				OrderID: st.Orders[i].ID,
				Amount:  portion,
			})
			remaining = remaining.Sub(portion)
		}
		result.Remainder = remaining
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func findOrder(st *entity.State, id string) *entity.Order {
	for i := range st.Orders {
		if st.Orders[i].ID == id {
			return &st.Orders[i]
		}
	}
	return nil
}

func accountExists(st *entity.State, id string) bool {
	for i := range st.Accounts {
		if st.Accounts[i].ID == id {
			return true
		}
	}
	return false
}

func toOrderResponse(o entity.Order) dto.OrderResponse {
	return dto.OrderResponse{
		Order:   o,
		Paid:    ledger.OrderPaid(&o),
		Balance: ledger.OrderBalance(&o),
	}
}
