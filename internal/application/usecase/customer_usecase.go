package usecase

import (
	"time"

	"github.com/google/uuid"

	"github.com/tu-usuario/tailor-pro/internal/application/dto"
	"github.com/tu-usuario/tailor-pro/internal/application/store"
	"github.com/tu-usuario/tailor-pro/internal/domain"
	"github.com/tu-usuario/tailor-pro/internal/domain/entity"
	"github.com/tu-usuario/tailor-pro/internal/domain/visibility"
	"github.com/tu-usuario/tailor-pro/pkg/phone"
)

// CustomerUseCase altas, medidas y baja en cascada de clientes.
type CustomerUseCase struct {
	store *store.Store
}

// NewCustomerUseCase construye el caso de uso.
func NewCustomerUseCase(st *store.Store) *CustomerUseCase {
	return &CustomerUseCase{store: st}
}

// Create registra un cliente. El teléfono se normaliza al formato
// internacional antes de guardar.
func (uc *CustomerUseCase) Create(in dto.CreateCustomerRequest) (*entity.Customer, error) {
	c := entity.Customer{
		ID:        uuid.New().String(),
		Name:      in.Name,
		Phone:     phone.Normalize(in.Phone),
		DateAdded: time.Now().Format("2006-01-02"),
		Profiles:  in.Profiles,
	}
	if c.Profiles == nil {
		c.Profiles = []entity.MeasurementProfile{}
	}
	err := uc.store.Mutate(func(st *entity.State) error {
		st.Customers = append(st.Customers, c)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// List devuelve los clientes visibles para el usuario: todos con
// view_all_customers, o la proyección de sus órdenes visibles con el scope
// propio.
func (uc *CustomerUseCase) List(u *entity.User) ([]entity.Customer, error) {
	snap, err := uc.store.Snapshot()
	if err != nil {
		return nil, err
	}
	return visibility.Customers(u, snap.Customers, snap.Orders, snap.Workers), nil
}

// Get devuelve un cliente si el usuario puede verlo.
func (uc *CustomerUseCase) Get(u *entity.User, id string) (*entity.Customer, error) {
	visible, err := uc.List(u)
	if err != nil {
		return nil, err
	}
	for i := range visible {
		if visible[i].ID == id {
			return &visible[i], nil
		}
	}
	return nil, domain.ErrNotFound
}

// Update edita nombre y teléfono. Las órdenes existentes conservan la copia
// desnormalizada vigente: nombre y teléfono nuevos solo aplican hacia
// adelante.
func (uc *CustomerUseCase) Update(id string, in dto.UpdateCustomerRequest) (*entity.Customer, error) {
	var updated entity.Customer
	err := uc.store.Mutate(func(st *entity.State) error {
		for i := range st.Customers {
			if st.Customers[i].ID != id {
				continue
			}
			if in.Name != nil {
				st.Customers[i].Name = *in.Name
			}
			if in.Phone != nil {
				st.Customers[i].Phone = phone.Normalize(*in.Phone)
			}
			updated = st.Customers[i]
			return nil
		}
		return domain.ErrNotFound
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// UpdateProfiles reemplaza el juego completo de perfiles de medidas. Las
// copias congeladas en órdenes ya creadas no se tocan.
func (uc *CustomerUseCase) UpdateProfiles(id string, in dto.UpdateProfilesRequest) (*entity.Customer, error) {
	var updated entity.Customer
	err := uc.store.Mutate(func(st *entity.State) error {
		for i := range st.Customers {
			if st.Customers[i].ID != id {
				continue
			}
			if in.Profiles == nil {
				st.Customers[i].Profiles = []entity.MeasurementProfile{}
			} else {
				st.Customers[i].Profiles = in.Profiles
			}
			updated = st.Customers[i]
			return nil
		}
		return domain.ErrNotFound
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// Delete elimina el cliente Y todas sus órdenes en la misma mutación: no
// quedan órdenes huérfanas apuntando a un cliente inexistente.
func (uc *CustomerUseCase) Delete(id string) error {
	return uc.store.Mutate(func(st *entity.State) error {
		found := false
		for i := range st.Customers {
			if st.Customers[i].ID == id {
				st.Customers = append(st.Customers[:i], st.Customers[i+1:]...)
				found = true
				break
			}
		}
		if !found {
			return domain.ErrNotFound
		}
		kept := st.Orders[:0]
		for _, o := range st.Orders {
			if o.CustomerID != id {
				kept = append(kept, o)
			}
		}
		st.Orders = kept
		return nil
	})
}
