package visibility_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tu-usuario/tailor-pro/internal/domain/entity"
	"github.com/tu-usuario/tailor-pro/internal/domain/permission"
	"github.com/tu-usuario/tailor-pro/internal/domain/visibility"
)

func perms(tags ...permission.Tag) []string { return permission.Strings(tags) }

func testOrders() []entity.Order {
	return []entity.Order{
		{ID: "ORD-Jan-26-0001", CustomerID: "C1", Assignments: entity.Assignments{Cutter: "Ali"}},
		{ID: "ORD-Jan-26-0002", CustomerID: "C2", Assignments: entity.Assignments{Stitcher: "Sara"}},
		{ID: "ORD-Jan-26-0003", CustomerID: "C3", Assignments: entity.Assignments{Cutter: "Sara", Stitcher: "Ali"}},
	}
}

func testWorkers() []entity.Worker {
	return []entity.Worker{{ID: "W1", Name: "Ali"}, {ID: "W2", Name: "Sara"}}
}

func TestOrders_AccesoTotalSinFiltrar(t *testing.T) {
	u := &entity.User{Name: "Jefe", Permissions: perms(permission.ViewAllOrders)}
	got := visibility.Orders(u, testOrders(), testWorkers())
	assert.Len(t, got, 3)
}

func TestOrders_SinPermisoVacio(t *testing.T) {
	u := &entity.User{Name: "Sara", Permissions: perms(permission.ViewDashboard)}
	assert.Empty(t, visibility.Orders(u, testOrders(), testWorkers()))
}

// Scope own: solo órdenes donde el trabajador coincidente es cutter o stitcher.
func TestOrders_SoloPropiasPorIdentidadDeTrabajador(t *testing.T) {
	u := &entity.User{Name: "sara", Permissions: perms(permission.ViewOwnOrders)}
	got := visibility.Orders(u, testOrders(), testWorkers())

	require.Len(t, got, 2, "la coincidencia de nombre no distingue mayúsculas")
	assert.Equal(t, "ORD-Jan-26-0002", got[0].ID)
	assert.Equal(t, "ORD-Jan-26-0003", got[1].ID)
}

// Escenario: Sara (solo view_own_orders) no ve las órdenes asignadas a Ali,
// aunque las haya creado ella.
func TestOrders_NoVeAsignacionesAjenas(t *testing.T) {
	u := &entity.User{Name: "Sara", Permissions: perms(permission.ViewOwnOrders)}
	got := visibility.Orders(u, testOrders(), testWorkers())
	for _, o := range got {
		assert.True(t, o.Assignments.Cutter == "Sara" || o.Assignments.Stitcher == "Sara")
	}
}

// Usuario con solo view_own_orders y SIN Worker coincidente: lista vacía,
// no todas las órdenes ni error.
func TestOrders_SinWorkerCoincidenteVacio(t *testing.T) {
	u := &entity.User{Name: "Contador", Permissions: perms(permission.ViewOwnOrders)}
	got := visibility.Orders(u, testOrders(), testWorkers())
	assert.Empty(t, got)
}

func TestCustomers_AccesoTotal(t *testing.T) {
	customers := []entity.Customer{{ID: "C1"}, {ID: "C2"}, {ID: "C3"}}
	u := &entity.User{Name: "Jefe", Permissions: perms(permission.ViewAllCustomers)}
	assert.Len(t, visibility.Customers(u, customers, testOrders(), testWorkers()), 3)
}

// Scope own: clientes proyectados desde las órdenes visibles.
func TestCustomers_ProyeccionDesdeOrdenesVisibles(t *testing.T) {
	customers := []entity.Customer{{ID: "C1"}, {ID: "C2"}, {ID: "C3"}}
	u := &entity.User{
		Name:        "Sara",
		Permissions: perms(permission.ViewOwnCustomers, permission.ViewOwnOrders),
	}
	got := visibility.Customers(u, customers, testOrders(), testWorkers())

	require.Len(t, got, 2)
	assert.Equal(t, "C2", got[0].ID)
	assert.Equal(t, "C3", got[1].ID)
}

func TestCustomers_SinPermisoVacio(t *testing.T) {
	customers := []entity.Customer{{ID: "C1"}}
	u := &entity.User{Name: "Sara", Permissions: perms(permission.ViewDashboard)}
	assert.Empty(t, visibility.Customers(u, customers, testOrders(), testWorkers()))
}

func TestWorkerNameFor_PrimeraCoincidencia(t *testing.T) {
	u := &entity.User{Name: "ALI"}
	assert.Equal(t, "Ali", visibility.WorkerNameFor(u, testWorkers()))
	assert.Equal(t, "", visibility.WorkerNameFor(&entity.User{Name: "Nadie"}, testWorkers()))
}
