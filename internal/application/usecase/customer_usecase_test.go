package usecase_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/tailor-pro/internal/application/dto"
	"github.com/tu-usuario/tailor-pro/internal/application/usecase"
	"github.com/tu-usuario/tailor-pro/internal/domain"
	"github.com/tu-usuario/tailor-pro/internal/domain/entity"
)

// El teléfono se normaliza al formato internacional al guardar.
func TestCustomerCreate_NormalizaTelefono(t *testing.T) {
	s := newStore(t, entity.State{})
	uc := usecase.NewCustomerUseCase(s)

	c, err := uc.Create(dto.CreateCustomerRequest{Name: "Ahmed", Phone: "0300-1234567"})
	require.NoError(t, err)
	assert.Equal(t, "923001234567", c.Phone)
	assert.NotEmpty(t, c.ID)
	assert.NotEmpty(t, c.DateAdded)
	assert.NotNil(t, c.Profiles)
}

// Borrar un cliente arrastra todas sus órdenes en la misma mutación.
func TestCustomerDelete_CascadaOrdenes(t *testing.T) {
	st := entity.State{
		Customers: []entity.Customer{
			{ID: "C1", Name: "Ahmed"},
			{ID: "C2", Name: "Bilal"},
		},
		Orders: []entity.Order{
			{ID: "O1", CustomerID: "C1", TotalPrice: dec(1000)},
			{ID: "O2", CustomerID: "C2", TotalPrice: dec(2000)},
			{ID: "O3", CustomerID: "C1", TotalPrice: dec(3000)},
		},
	}
	s := newStore(t, st)
	uc := usecase.NewCustomerUseCase(s)

	require.NoError(t, uc.Delete("C1"))

	snap, err := s.Snapshot()
	require.NoError(t, err)
	assert.Len(t, snap.Customers, 1)
	require.Len(t, snap.Orders, 1)
	assert.Equal(t, "O2", snap.Orders[0].ID)
}

func TestCustomerDelete_Inexistente(t *testing.T) {
	uc := usecase.NewCustomerUseCase(newStore(t, entity.State{}))
	assert.ErrorIs(t, uc.Delete("nope"), domain.ErrNotFound)
}

// Editar el cliente no reescribe la copia desnormalizada de sus órdenes.
func TestCustomerUpdate_NoTocaOrdenes(t *testing.T) {
	st := entity.State{
		Customers: []entity.Customer{{ID: "C1", Name: "Ahmed", Phone: "923001234567"}},
		Orders:    []entity.Order{{ID: "O1", CustomerID: "C1", CustomerName: "Ahmed", TotalPrice: dec(1000)}},
	}
	s := newStore(t, st)
	uc := usecase.NewCustomerUseCase(s)

	name := "Ahmed Khan"
	c, err := uc.Update("C1", dto.UpdateCustomerRequest{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "Ahmed Khan", c.Name)

	snap, err := s.Snapshot()
	require.NoError(t, err)
	assert.Equal(t, "Ahmed", snap.Orders[0].CustomerName)
}

// UpdateProfiles reemplaza el juego completo de perfiles.
func TestCustomerUpdateProfiles(t *testing.T) {
	st := entity.State{
		Customers: []entity.Customer{{ID: "C1", Name: "Ahmed", Profiles: []entity.MeasurementProfile{
			{Name: "Self", Measurement: map[string]string{"chest": "40"}},
		}}},
	}
	uc := usecase.NewCustomerUseCase(newStore(t, st))

	c, err := uc.UpdateProfiles("C1", dto.UpdateProfilesRequest{Profiles: []entity.MeasurementProfile{
		{Name: "Self", Measurement: map[string]string{"chest": "41"}},
		{Name: "Son", Measurement: map[string]string{"chest": "32"}},
	}})
	require.NoError(t, err)
	require.Len(t, c.Profiles, 2)
	assert.Equal(t, "41", c.Profiles[0].Measurement["chest"])
}
