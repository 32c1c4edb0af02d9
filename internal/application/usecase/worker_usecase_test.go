package usecase_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/tu-usuario/tailor-pro/internal/application/dto"
	"github.com/tu-usuario/tailor-pro/internal/application/usecase"
	"github.com/tu-usuario/tailor-pro/internal/domain"
	"github.com/tu-usuario/tailor-pro/internal/domain/entity"
	"github.com/tu-usuario/tailor-pro/internal/domain/ledger"
)

// Crear un trabajador con cuenta genera un usuario Staff con la contraseña
// por defecto y el mismo nombre (el filtro de visibilidad asocia por nombre).
func TestWorkerCreate_ConCuentaStaff(t *testing.T) {
	s := newStore(t, entity.State{})
	uc := usecase.NewWorkerUseCase(s)

	w, err := uc.Create(dto.CreateWorkerRequest{
		Name:       "Ali Hassan",
		Roles:      []string{"Cutter"},
		CreateUser: true,
	})
	require.NoError(t, err)

	snap, err := s.Snapshot()
	require.NoError(t, err)
	require.Len(t, snap.Users, 1)
	u := snap.Users[0]
	assert.Equal(t, "ali.hassan", u.Username)
	assert.Equal(t, "Ali Hassan", u.Name)
	assert.Equal(t, entity.RoleStaff, u.Role)
	assert.Empty(t, u.Permissions, "sin permisos explícitos: manda el rol")
	assert.True(t, u.Active)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("staff123")))
	assert.Equal(t, "Ali Hassan", w.Name)
}

func TestWorkerCreate_SinCuenta(t *testing.T) {
	s := newStore(t, entity.State{})
	uc := usecase.NewWorkerUseCase(s)

	_, err := uc.Create(dto.CreateWorkerRequest{Name: "Ali", Roles: []string{"Cutter"}})
	require.NoError(t, err)

	snap, err := s.Snapshot()
	require.NoError(t, err)
	assert.Empty(t, snap.Users)
}

func TestWorkerCreate_UsernameOcupado(t *testing.T) {
	st := entity.State{Users: []entity.User{{ID: "U1", Username: "ali.hassan"}}}
	uc := usecase.NewWorkerUseCase(newStore(t, st))

	_, err := uc.Create(dto.CreateWorkerRequest{Name: "Ali Hassan", Roles: []string{"Cutter"}, CreateUser: true})
	assert.ErrorIs(t, err, domain.ErrUsernameTaken)
}

// Renombrar un trabajador actualiza sus asignaciones para no romper el
// vínculo por nombre.
func TestWorkerUpdate_RenombreSigueAsignaciones(t *testing.T) {
	st := entity.State{
		Workers: []entity.Worker{{ID: "W1", Name: "Ali"}},
		Orders: []entity.Order{{
			ID: "O1", TotalPrice: dec(1000),
			Assignments: entity.Assignments{Cutter: "Ali", CutterRate: dec(300)},
		}},
	}
	s := newStore(t, st)
	uc := usecase.NewWorkerUseCase(s)

	name := "Ali Hassan"
	_, err := uc.Update("W1", dto.UpdateWorkerRequest{Name: &name})
	require.NoError(t, err)

	snap, err := s.Snapshot()
	require.NoError(t, err)
	assert.Equal(t, "Ali Hassan", snap.Orders[0].Assignments.Cutter)
	assert.True(t, snap.Orders[0].Assignments.CutterRate.Equal(dec(300)))
}

// Borrar un trabajador limpia sus asignaciones (tarifa incluida) pero deja
// intacto el historial de pagos: ese dinero salió de una cuenta de verdad y
// el saldo derivado debe seguir contándolo.
func TestWorkerDelete_LimpiaAsignacionesConservaPagos(t *testing.T) {
	st := entity.State{
		Workers: []entity.Worker{{ID: "W1", Name: "Ali"}, {ID: "W2", Name: "Sara"}},
		Orders: []entity.Order{{
			ID: "O1", TotalPrice: dec(1000),
			Assignments: entity.Assignments{Cutter: "Ali", CutterRate: dec(300), Stitcher: "Sara", StitcherRate: dec(500)},
		}},
		Accounts: []entity.Account{{ID: "A1", Name: "Cash"}},
		WorkerPayments: []entity.WorkerPayment{
			{ID: "P1", WorkerID: "W1", Amount: dec(200), AccountID: "A1"},
			{ID: "P2", WorkerID: "W2", Amount: dec(100), AccountID: "A1"},
		},
	}
	s := newStore(t, st)
	uc := usecase.NewWorkerUseCase(s)

	require.NoError(t, uc.Delete("W1"))

	snap, err := s.Snapshot()
	require.NoError(t, err)
	a := snap.Orders[0].Assignments
	assert.Empty(t, a.Cutter)
	assert.True(t, a.CutterRate.IsZero())
	assert.Equal(t, "Sara", a.Stitcher, "el otro rol no se toca")
	require.Len(t, snap.WorkerPayments, 2, "el historial de pagos sobrevive al borrado")
	balance := ledger.AccountBalance("A1", snap.Accounts, snap.Orders, snap.Expenses, snap.WorkerPayments)
	assert.True(t, balance.Equal(dec(-300)), "el saldo de la cuenta no cambia por borrar al trabajador")
}

// ──────────────────────────────────────────────────────────────────────────────
// Estado de cuenta
// ──────────────────────────────────────────────────────────────────────────────

// Trabajador con doble rol en la misma orden: devenga ambas tarifas.
func TestWorkerLedger_DobleRol(t *testing.T) {
	st := entity.State{
		Users:   []entity.User{{ID: "U1", Role: entity.RoleAdmin, Active: true}},
		Workers: []entity.Worker{{ID: "W1", Name: "Ali"}},
		Orders: []entity.Order{
			{ID: "O1", CustomerName: "Ahmed", TotalPrice: dec(5000),
				Assignments: entity.Assignments{Cutter: "Ali", CutterRate: dec(300)}},
			{ID: "O2", CustomerName: "Bilal", TotalPrice: dec(6000),
				Assignments: entity.Assignments{Cutter: "Ali", CutterRate: dec(300), Stitcher: "Ali", StitcherRate: dec(500)}},
		},
		WorkerPayments: []entity.WorkerPayment{{ID: "P1", WorkerID: "W1", Amount: dec(400)}},
		Accounts:       []entity.Account{{ID: "A1", Name: "Cash"}},
	}
	uc := usecase.NewWorkerUseCase(newStore(t, st))

	l, err := uc.Ledger(&st.Users[0], "W1")
	require.NoError(t, err)
	assert.True(t, l.Earned.Equal(dec(1100)), "300 + (300+500)")
	assert.True(t, l.Paid.Equal(dec(400)))
	assert.True(t, l.Payable.Equal(dec(700)))
	assert.Len(t, l.Jobs, 3, "una fila por rol asignado")
	assert.Len(t, l.History, 1)
}

// El estado de cuenta respeta el filtro de visibilidad del usuario que
// consulta: un Staff con scope propio no ve las órdenes ajenas de otro
// trabajador a través del ledger.
func TestWorkerLedger_RespetaVisibilidad(t *testing.T) {
	st := entity.State{
		Users: []entity.User{
			{ID: "U1", Name: "Sara", Role: entity.RoleStaff, Active: true},
		},
		Workers: []entity.Worker{{ID: "W1", Name: "Sara"}, {ID: "W2", Name: "Ali"}},
		Orders: []entity.Order{
			{ID: "O1", CustomerName: "Cliente Reservado", TotalPrice: dec(4000),
				Assignments: entity.Assignments{Cutter: "Ali", CutterRate: dec(800)}},
			{ID: "O2", CustomerName: "Ahmed", TotalPrice: dec(2000),
				Assignments: entity.Assignments{Cutter: "Ali", CutterRate: dec(200), Stitcher: "Sara", StitcherRate: dec(300)}},
		},
	}
	uc := usecase.NewWorkerUseCase(newStore(t, st))

	l, err := uc.Ledger(&st.Users[0], "W2")
	require.NoError(t, err)
	require.Len(t, l.Jobs, 1, "solo la orden donde Sara participa")
	assert.Equal(t, "O2", l.Jobs[0].OrderID)
	assert.True(t, l.Earned.Equal(dec(200)), "devengado solo sobre órdenes visibles")
}

func TestWorkerPay_CuentaInexistente(t *testing.T) {
	st := entity.State{Workers: []entity.Worker{{ID: "W1", Name: "Ali"}}}
	uc := usecase.NewWorkerUseCase(newStore(t, st))

	_, err := uc.Pay("W1", dto.PayWorkerRequest{Amount: dec(100), AccountID: "nope"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
