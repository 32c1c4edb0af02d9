package usecase

import (
	"context"

	"github.com/google/uuid"

	"github.com/tu-usuario/tailor-pro/internal/application/dto"
	"github.com/tu-usuario/tailor-pro/internal/application/store"
	"github.com/tu-usuario/tailor-pro/internal/domain"
	"github.com/tu-usuario/tailor-pro/internal/domain/entity"
	"github.com/tu-usuario/tailor-pro/internal/domain/ledger"
	"github.com/tu-usuario/tailor-pro/internal/domain/repository"
)

// AccountUseCase fondos de dinero y datos del negocio. Los saldos nunca se
// almacenan: cada consulta los deriva del historial completo.
type AccountUseCase struct {
	store        *store.Store
	settingsRepo repository.SettingsRepository
}

// NewAccountUseCase construye el caso de uso.
func NewAccountUseCase(st *store.Store, settingsRepo repository.SettingsRepository) *AccountUseCase {
	return &AccountUseCase{store: st, settingsRepo: settingsRepo}
}

// Create registra una cuenta nueva. El nombre debe ser único: los pagos
// legados sin accountId se asocian por nombre textual y un duplicado
// contaminaría dos saldos.
func (uc *AccountUseCase) Create(in dto.CreateAccountRequest) (*dto.AccountResponse, error) {
	a := entity.Account{ID: uuid.New().String(), Name: in.Name, Type: in.Type}
	err := uc.store.Mutate(func(st *entity.State) error {
		for i := range st.Accounts {
			if st.Accounts[i].Name == in.Name {
				return domain.ErrDuplicate
			}
		}
		st.Accounts = append(st.Accounts, a)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &dto.AccountResponse{Account: a}, nil
}

// List devuelve todas las cuentas con su saldo derivado.
func (uc *AccountUseCase) List() ([]dto.AccountResponse, error) {
	snap, err := uc.store.Snapshot()
	if err != nil {
		return nil, err
	}
	out := make([]dto.AccountResponse, 0, len(snap.Accounts))
	for _, a := range snap.Accounts {
		out = append(out, dto.AccountResponse{
			Account: a,
			Balance: ledger.AccountBalance(a.ID, snap.Accounts, snap.Orders, snap.Expenses, snap.WorkerPayments),
		})
	}
	return out, nil
}

// Update renombra o retipa una cuenta. El renombre rompe el vínculo de los
// pagos legados asociados por nombre; se acepta igual (el dato legado es
// best-effort).
func (uc *AccountUseCase) Update(id string, in dto.UpdateAccountRequest) (*dto.AccountResponse, error) {
	var updated entity.Account
	err := uc.store.Mutate(func(st *entity.State) error {
		for i := range st.Accounts {
			if st.Accounts[i].ID != id {
				continue
			}
			if in.Name != nil {
				for j := range st.Accounts {
					if j != i && st.Accounts[j].Name == *in.Name {
						return domain.ErrDuplicate
					}
				}
				st.Accounts[i].Name = *in.Name
			}
			if in.Type != nil {
				st.Accounts[i].Type = *in.Type
			}
			updated = st.Accounts[i]
			return nil
		}
		return domain.ErrNotFound
	})
	if err != nil {
		return nil, err
	}
	return &dto.AccountResponse{Account: updated}, nil
}

// Delete elimina una cuenta. Se rechaza si tiene transacciones asociadas:
// borrarla dejaría dinero contabilizado contra una cuenta fantasma.
func (uc *AccountUseCase) Delete(id string) error {
	return uc.store.Mutate(func(st *entity.State) error {
		idx := -1
		for i := range st.Accounts {
			if st.Accounts[i].ID == id {
				idx = i
				break
			}
		}
		if idx < 0 {
			return domain.ErrNotFound
		}
		// Las transacciones legadas referencian la cuenta por su nombre
		// textual (mode); también bloquean el borrado.
		name := st.Accounts[idx].Name
		for _, o := range st.Orders {
			for _, p := range o.Payments {
				if p.AccountID == id || (p.AccountID == "" && p.Mode == name) {
					return domain.ErrConflict
				}
			}
		}
		for _, e := range st.Expenses {
			if e.AccountID == id || (e.AccountID == "" && e.Mode == name) {
				return domain.ErrConflict
			}
		}
		for _, p := range st.WorkerPayments {
			if p.AccountID == id {
				return domain.ErrConflict
			}
		}
		st.Accounts = append(st.Accounts[:idx], st.Accounts[idx+1:]...)
		return nil
	})
}

// Settings devuelve los datos del negocio.
func (uc *AccountUseCase) Settings() entity.BusinessSettings {
	return uc.store.Settings()
}

// UpdateSettings guarda los datos del negocio (persistencia inmediata, fuera
// del ciclo de snapshot de colecciones).
func (uc *AccountUseCase) UpdateSettings(ctx context.Context, in dto.UpdateSettingsRequest) (*entity.BusinessSettings, error) {
	s := entity.BusinessSettings{
		BusinessName:     in.BusinessName,
		BusinessPhone:    in.BusinessPhone,
		BusinessWhatsApp: in.BusinessWhatsApp,
		BusinessAddress:  in.BusinessAddress,
		LogoPath:         in.LogoPath,
	}
	if err := uc.settingsRepo.Save(ctx, &s); err != nil {
		return nil, err
	}
	uc.store.SetSettings(s)
	return &s, nil
}
