package usecase

import (
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/tu-usuario/tailor-pro/internal/application/dto"
	"github.com/tu-usuario/tailor-pro/internal/application/store"
	"github.com/tu-usuario/tailor-pro/internal/domain"
	"github.com/tu-usuario/tailor-pro/internal/domain/entity"
)

// ExpenseUseCase gastos del negocio cargados a cuentas.
type ExpenseUseCase struct {
	store *store.Store
}

// NewExpenseUseCase construye el caso de uso.
func NewExpenseUseCase(st *store.Store) *ExpenseUseCase {
	return &ExpenseUseCase{store: st}
}

// Create registra un gasto contra una cuenta existente.
func (uc *ExpenseUseCase) Create(in dto.CreateExpenseRequest) (*entity.Expense, error) {
	if !in.Amount.IsPositive() {
		return nil, domain.ErrInvalidInput
	}
	date := time.Now()
	if in.Date != nil {
		date = *in.Date
	}
	e := entity.Expense{
		ID:        uuid.New().String(),
		Category:  in.Category,
		Amount:    in.Amount,
		Date:      date,
		AccountID: in.AccountID,
		Note:      in.Note,
	}
	err := uc.store.Mutate(func(st *entity.State) error {
		if !accountExists(st, in.AccountID) {
			return domain.ErrNotFound
		}
		st.Expenses = append(st.Expenses, e)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// List devuelve los gastos, los más recientes primero.
func (uc *ExpenseUseCase) List() ([]entity.Expense, error) {
	snap, err := uc.store.Snapshot()
	if err != nil {
		return nil, err
	}
	out := snap.Expenses
	sort.Slice(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return out, nil
}

// Update corrige un gasto existente. Cambiar la cuenta mueve el cargo: los
// saldos de ambas cuentas se recalculan solos.
func (uc *ExpenseUseCase) Update(id string, in dto.UpdateExpenseRequest) (*entity.Expense, error) {
	var updated entity.Expense
	err := uc.store.Mutate(func(st *entity.State) error {
		for i := range st.Expenses {
			if st.Expenses[i].ID != id {
				continue
			}
			if in.Category != nil {
				st.Expenses[i].Category = *in.Category
			}
			if in.Amount != nil {
				if !in.Amount.IsPositive() {
					return domain.ErrInvalidInput
				}
				st.Expenses[i].Amount = *in.Amount
			}
			if in.AccountID != nil {
				if !accountExists(st, *in.AccountID) {
					return domain.ErrNotFound
				}
				st.Expenses[i].AccountID = *in.AccountID
				st.Expenses[i].Mode = ""
			}
			if in.Date != nil {
				st.Expenses[i].Date = *in.Date
			}
			if in.Note != nil {
				st.Expenses[i].Note = *in.Note
			}
			updated = st.Expenses[i]
			return nil
		}
		return domain.ErrNotFound
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// Delete elimina un gasto.
func (uc *ExpenseUseCase) Delete(id string) error {
	return uc.store.Mutate(func(st *entity.State) error {
		for i := range st.Expenses {
			if st.Expenses[i].ID == id {
				st.Expenses = append(st.Expenses[:i], st.Expenses[i+1:]...)
				return nil
			}
		}
		return domain.ErrNotFound
	})
}
