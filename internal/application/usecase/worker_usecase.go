package usecase

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"github.com/tu-usuario/tailor-pro/internal/application/dto"
	"github.com/tu-usuario/tailor-pro/internal/application/store"
	"github.com/tu-usuario/tailor-pro/internal/domain"
	"github.com/tu-usuario/tailor-pro/internal/domain/entity"
	"github.com/tu-usuario/tailor-pro/internal/domain/ledger"
	"github.com/tu-usuario/tailor-pro/internal/domain/visibility"
)

// defaultWorkerPassword contraseña inicial de las cuentas Staff creadas
// junto a un trabajador. Se espera que el trabajador la cambie al entrar.
const defaultWorkerPassword = "staff123"

// WorkerUseCase trabajadores de piecework: alta con cuenta opcional,
// estado de cuenta y pagos.
type WorkerUseCase struct {
	store *store.Store
}

// NewWorkerUseCase construye el caso de uso.
func NewWorkerUseCase(st *store.Store) *WorkerUseCase {
	return &WorkerUseCase{store: st}
}

// Create registra un trabajador. Con CreateUser se crea además una cuenta
// Staff con la contraseña por defecto; el nombre de la cuenta debe coincidir
// con el del trabajador para que el filtro de visibilidad los asocie.
func (uc *WorkerUseCase) Create(in dto.CreateWorkerRequest) (*entity.Worker, error) {
	w := entity.Worker{
		ID:          uuid.New().String(),
		Name:        in.Name,
		Roles:       in.Roles,
		RatePerSuit: in.RatePerSuit,
	}

	var hash []byte
	if in.CreateUser {
		var err error
		hash, err = bcrypt.GenerateFromPassword([]byte(defaultWorkerPassword), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
	}

	err := uc.store.Mutate(func(st *entity.State) error {
		if in.CreateUser {
			username := in.Username
			if username == "" {
				username = strings.ToLower(strings.ReplaceAll(in.Name, " ", "."))
			}
			for i := range st.Users {
				if strings.EqualFold(st.Users[i].Username, username) {
					return domain.ErrUsernameTaken
				}
			}
			st.Users = append(st.Users, entity.User{
				ID:           uuid.New().String(),
				Username:     username,
				PasswordHash: string(hash),
				Name:         in.Name,
				Role:         entity.RoleStaff,
				Permissions:  []string{},
				Active:       true,
				CreatedAt:    time.Now(),
			})
		}
		st.Workers = append(st.Workers, w)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &w, nil
}

// List devuelve todos los trabajadores.
func (uc *WorkerUseCase) List() ([]entity.Worker, error) {
	snap, err := uc.store.Snapshot()
	if err != nil {
		return nil, err
	}
	return snap.Workers, nil
}

// Update edita nombre, roles o tarifa de un trabajador. Al renombrar se
// actualizan también las asignaciones en órdenes para no romper el vínculo
// por nombre.
func (uc *WorkerUseCase) Update(id string, in dto.UpdateWorkerRequest) (*entity.Worker, error) {
	var updated entity.Worker
	err := uc.store.Mutate(func(st *entity.State) error {
		for i := range st.Workers {
			if st.Workers[i].ID != id {
				continue
			}
			oldName := st.Workers[i].Name
			if in.Name != nil && *in.Name != oldName {
				st.Workers[i].Name = *in.Name
				for j := range st.Orders {
					if st.Orders[j].Assignments.Cutter == oldName {
						st.Orders[j].Assignments.Cutter = *in.Name
					}
					if st.Orders[j].Assignments.Stitcher == oldName {
						st.Orders[j].Assignments.Stitcher = *in.Name
					}
				}
			}
			if in.Roles != nil {
				st.Workers[i].Roles = in.Roles
			}
			if in.RatePerSuit != nil {
				st.Workers[i].RatePerSuit = *in.RatePerSuit
			}
			updated = st.Workers[i]
			return nil
		}
		return domain.ErrNotFound
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// Delete elimina el trabajador, limpia sus asignaciones en órdenes (las
// tarifas pactadas se pierden junto con la asignación) y borra su historial
// de pagos. Todo en una sola mutación.
func (uc *WorkerUseCase) Delete(id string) error {
	return uc.store.Mutate(func(st *entity.State) error {
		var name string
		found := false
		for i := range st.Workers {
			if st.Workers[i].ID == id {
				name = st.Workers[i].Name
				st.Workers = append(st.Workers[:i], st.Workers[i+1:]...)
				found = true
				break
			}
		}
		if !found {
			return domain.ErrNotFound
		}
		for j := range st.Orders {
			a := &st.Orders[j].Assignments
			if a.Cutter == name {
				a.Cutter = ""
				a.CutterRate = decimal.Zero
			}
			if a.Stitcher == name {
				a.Stitcher = ""
				a.StitcherRate = decimal.Zero
			}
		}
		// El historial de pagos se conserva: es dinero que de verdad salió
		// de una cuenta y el saldo derivado debe seguir reflejándolo.
		return nil
	})
}

// Pay registra un pago al trabajador desde una cuenta. Se permite pagar más
// de lo devengado (el saldo queda a favor del taller).
func (uc *WorkerUseCase) Pay(workerID string, in dto.PayWorkerRequest) (*entity.WorkerPayment, error) {
	if !in.Amount.IsPositive() {
		return nil, domain.ErrInvalidInput
	}
	date := time.Now()
	if in.Date != nil {
		date = *in.Date
	}
	p := entity.WorkerPayment{
		ID:        uuid.New().String(),
		WorkerID:  workerID,
		Amount:    in.Amount,
		Date:      date,
		AccountID: in.AccountID,
	}
	err := uc.store.Mutate(func(st *entity.State) error {
		found := false
		for i := range st.Workers {
			if st.Workers[i].ID == workerID {
				found = true
				break
			}
		}
		if !found {
			return domain.ErrNotFound
		}
		if !accountExists(st, in.AccountID) {
			return domain.ErrNotFound
		}
		st.WorkerPayments = append(st.WorkerPayments, p)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Ledger arma el estado de cuenta completo de un trabajador: trabajos
// asignados, devengado, pagado y saldo por pagar. Las cifras se calculan
// sobre las órdenes visibles para el usuario que consulta, igual que el
// dashboard: ver trabajadores no abre una rendija a órdenes ajenas.
func (uc *WorkerUseCase) Ledger(u *entity.User, workerID string) (*dto.WorkerLedgerResponse, error) {
	snap, err := uc.store.Snapshot()
	if err != nil {
		return nil, err
	}
	var worker *entity.Worker
	for i := range snap.Workers {
		if snap.Workers[i].ID == workerID {
			worker = &snap.Workers[i]
			break
		}
	}
	if worker == nil {
		return nil, domain.ErrNotFound
	}

	visible := visibility.Orders(u, snap.Orders, snap.Workers)
	jobs := ledger.WorkerJobs(worker.Name, visible)
	jobRows := make([]dto.WorkerJobResponse, 0, len(jobs))
	for _, j := range jobs {
		jobRows = append(jobRows, dto.WorkerJobResponse{
			OrderID:      j.Order.ID,
			CustomerName: j.Order.CustomerName,
			Role:         j.Role,
			Rate:         j.Rate,
			Status:       j.Order.Status,
			Date:         j.Order.Date,
		})
	}

	history := make([]entity.WorkerPayment, 0)
	for _, p := range snap.WorkerPayments {
		if p.WorkerID == workerID {
			history = append(history, p)
		}
	}

	return &dto.WorkerLedgerResponse{
		Worker:  *worker,
		Jobs:    jobRows,
		Earned:  ledger.WorkerEarned(worker.Name, visible),
		Paid:    ledger.WorkerPaid(workerID, snap.WorkerPayments),
		Payable: ledger.WorkerPayable(worker, visible, snap.WorkerPayments),
		History: history,
	}, nil
}
