package usecase_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/tailor-pro/internal/application/dto"
	"github.com/tu-usuario/tailor-pro/internal/application/store"
	"github.com/tu-usuario/tailor-pro/internal/application/usecase"
	"github.com/tu-usuario/tailor-pro/internal/domain"
	"github.com/tu-usuario/tailor-pro/internal/domain/entity"
)

func dec(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

// newStore levanta un store hidratado con el estado dado.
func newStore(t *testing.T, st entity.State) *store.Store {
	t.Helper()
	s := store.New()
	require.NoError(t, s.Hydrate(&st))
	return s
}

func baseState() entity.State {
	return entity.State{
		Customers: []entity.Customer{
			{ID: "C1", Name: "Ahmed Khan", Phone: "923001234567"},
		},
		Accounts: []entity.Account{
			{ID: "A1", Name: "Cash", Type: entity.AccountTypeCash},
		},
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Create
// ──────────────────────────────────────────────────────────────────────────────

// Orden de 5000 con adelanto de 1000: pagado 1000, saldo 4000, estado Booked.
func TestOrderCreate_ConAdelanto(t *testing.T) {
	uc := usecase.NewOrderUseCase(newStore(t, baseState()))

	resp, err := uc.Create(dto.CreateOrderRequest{
		CustomerID:    "C1",
		ItemsList:     []entity.OrderItem{{Type: "Suit", Price: dec(5000), Qty: 1}},
		TotalPrice:    dec(5000),
		AdvanceAmount: dec(1000),
		AccountID:     "A1",
	})
	require.NoError(t, err)

	assert.Equal(t, entity.StatusBooked, resp.Status)
	assert.Equal(t, "Ahmed Khan", resp.CustomerName)
	require.Len(t, resp.Payments, 1)
	assert.Equal(t, entity.PaymentSourceAdvance, resp.Payments[0].Source)
	assert.True(t, resp.Paid.Equal(dec(1000)))
	assert.True(t, resp.Balance.Equal(dec(4000)))
}

// Adelanto en cero no genera abono.
func TestOrderCreate_SinAdelanto(t *testing.T) {
	uc := usecase.NewOrderUseCase(newStore(t, baseState()))

	resp, err := uc.Create(dto.CreateOrderRequest{
		CustomerID: "C1",
		ItemsList:  []entity.OrderItem{{Type: "Shirt", Price: dec(1500), Qty: 2}},
	})
	require.NoError(t, err)
	assert.Empty(t, resp.Payments)
	// total omitido: se deriva de las prendas (1500 × 2)
	assert.True(t, resp.TotalPrice.Equal(dec(3000)))
}

// El folio sigue la secuencia ORD-<Mes>-<aa>-<NNNN> dentro del mes.
func TestOrderCreate_FolioSecuencial(t *testing.T) {
	uc := usecase.NewOrderUseCase(newStore(t, baseState()))

	first, err := uc.Create(dto.CreateOrderRequest{
		CustomerID: "C1",
		ItemsList:  []entity.OrderItem{{Type: "Suit", Price: dec(100), Qty: 1}},
	})
	require.NoError(t, err)
	second, err := uc.Create(dto.CreateOrderRequest{
		CustomerID: "C1",
		ItemsList:  []entity.OrderItem{{Type: "Suit", Price: dec(100), Qty: 1}},
	})
	require.NoError(t, err)

	now := time.Now()
	prefix := "ORD-" + now.Format("Jan") + "-" + now.Format("06") + "-"
	assert.Equal(t, prefix+"0001", first.ID)
	assert.Equal(t, prefix+"0002", second.ID)
}

func TestOrderCreate_ClienteInexistente(t *testing.T) {
	uc := usecase.NewOrderUseCase(newStore(t, baseState()))

	_, err := uc.Create(dto.CreateOrderRequest{
		CustomerID: "nope",
		ItemsList:  []entity.OrderItem{{Type: "Suit", Price: dec(100), Qty: 1}},
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Estado y abonos
// ──────────────────────────────────────────────────────────────────────────────

func TestOrderSetStatus(t *testing.T) {
	st := baseState()
	st.Orders = []entity.Order{{ID: "O1", CustomerID: "C1", Status: entity.StatusBooked, TotalPrice: dec(1000)}}
	uc := usecase.NewOrderUseCase(newStore(t, st))

	resp, err := uc.SetStatus("O1", entity.StatusReady)
	require.NoError(t, err)
	assert.Equal(t, entity.StatusReady, resp.Status)

	// regresar a un estado anterior también es válido
	resp, err = uc.SetStatus("O1", entity.StatusCutting)
	require.NoError(t, err)
	assert.Equal(t, entity.StatusCutting, resp.Status)

	_, err = uc.SetStatus("O1", "Lost")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// El sobrepago se acepta y deja saldo negativo.
func TestOrderAddPayment_Sobrepago(t *testing.T) {
	st := baseState()
	st.Orders = []entity.Order{{ID: "O1", CustomerID: "C1", Status: entity.StatusBooked, TotalPrice: dec(1000)}}
	uc := usecase.NewOrderUseCase(newStore(t, st))

	resp, err := uc.AddPayment("O1", dto.AddPaymentRequest{Amount: dec(1500), AccountID: "A1"})
	require.NoError(t, err)
	assert.True(t, resp.Balance.Equal(dec(-500)))
}

func TestOrderAddPayment_MontoInvalido(t *testing.T) {
	st := baseState()
	st.Orders = []entity.Order{{ID: "O1", CustomerID: "C1", TotalPrice: dec(1000)}}
	uc := usecase.NewOrderUseCase(newStore(t, st))

	_, err := uc.AddPayment("O1", dto.AddPaymentRequest{Amount: dec(0), AccountID: "A1"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.AddPayment("O1", dto.AddPaymentRequest{Amount: dec(-50), AccountID: "A1"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// Desasignar un rol fuerza su tarifa a cero.
func TestOrderUpdateAssignments_DesasignaLimpiaTarifa(t *testing.T) {
	st := baseState()
	st.Orders = []entity.Order{{ID: "O1", CustomerID: "C1", TotalPrice: dec(1000)}}
	uc := usecase.NewOrderUseCase(newStore(t, st))

	resp, err := uc.UpdateAssignments("O1", dto.UpdateAssignmentRequest{
		Cutter: "Ali", CutterRate: dec(300),
		Stitcher: "", StitcherRate: dec(500),
	})
	require.NoError(t, err)
	assert.Equal(t, "Ali", resp.Assignments.Cutter)
	assert.True(t, resp.Assignments.CutterRate.Equal(dec(300)))
	assert.Empty(t, resp.Assignments.Stitcher)
	assert.True(t, resp.Assignments.StitcherRate.IsZero())
}

// ──────────────────────────────────────────────────────────────────────────────
// ApplyReceipt
// ──────────────────────────────────────────────────────────────────────────────

// El recibo se reparte de la orden más antigua a la más nueva; el sobrante
// no se guarda pero se devuelve.
func TestApplyReceipt_RepartoGreedy(t *testing.T) {
	st := baseState()
	st.Orders = []entity.Order{
		{ID: "O2", CustomerID: "C1", TotalPrice: dec(2000), Date: time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)},
		{ID: "O1", CustomerID: "C1", TotalPrice: dec(1000), Date: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)},
	}
	s := newStore(t, st)
	uc := usecase.NewOrderUseCase(s)

	resp, err := uc.ApplyReceipt(dto.ApplyReceiptRequest{CustomerID: "C1", Amount: dec(3500), AccountID: "A1"})
	require.NoError(t, err)

	require.Len(t, resp.Applied, 2)
	assert.Equal(t, "O1", resp.Applied[0].OrderID, "la más antigua primero")
	assert.True(t, resp.Applied[0].Amount.Equal(dec(1000)))
	assert.Equal(t, "O2", resp.Applied[1].OrderID)
	assert.True(t, resp.Applied[1].Amount.Equal(dec(2000)))
	assert.True(t, resp.Remainder.Equal(dec(500)))

	// el sobrante no quedó registrado en ninguna orden
	snap, err := s.Snapshot()
	require.NoError(t, err)
	total := decimal.Zero
	for _, o := range snap.Orders {
		for _, p := range o.Payments {
			total = total.Add(p.Amount)
		}
	}
	assert.True(t, total.Equal(dec(3000)))
}

// Recibo menor al saldo de la primera orden: se aplica completo y no toca la
// segunda.
func TestApplyReceipt_Parcial(t *testing.T) {
	st := baseState()
	st.Orders = []entity.Order{
		{ID: "O1", CustomerID: "C1", TotalPrice: dec(1000), Date: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)},
		{ID: "O2", CustomerID: "C1", TotalPrice: dec(2000), Date: time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)},
	}
	uc := usecase.NewOrderUseCase(newStore(t, st))

	resp, err := uc.ApplyReceipt(dto.ApplyReceiptRequest{CustomerID: "C1", Amount: dec(600), AccountID: "A1"})
	require.NoError(t, err)
	require.Len(t, resp.Applied, 1)
	assert.Equal(t, "O1", resp.Applied[0].OrderID)
	assert.True(t, resp.Applied[0].Amount.Equal(dec(600)))
	assert.True(t, resp.Remainder.IsZero())
}

// ──────────────────────────────────────────────────────────────────────────────
// Delete
// ──────────────────────────────────────────────────────────────────────────────

func TestOrderDelete(t *testing.T) {
	st := baseState()
	st.Orders = []entity.Order{{ID: "O1", CustomerID: "C1", TotalPrice: dec(1000)}}
	s := newStore(t, st)
	uc := usecase.NewOrderUseCase(s)

	require.NoError(t, uc.Delete("O1"))
	assert.ErrorIs(t, uc.Delete("O1"), domain.ErrNotFound)

	snap, err := s.Snapshot()
	require.NoError(t, err)
	assert.Empty(t, snap.Orders)
}
