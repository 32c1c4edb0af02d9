package permission_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tu-usuario/tailor-pro/internal/domain/entity"
	"github.com/tu-usuario/tailor-pro/internal/domain/permission"
)

// ──────────────────────────────────────────────────────────────────────────────
// Effective: permisos explícitos vs fallback por rol
// ──────────────────────────────────────────────────────────────────────────────

// Un usuario con permisos personalizados los usa tal cual, aunque su rol sea
// Admin: la lista explícita manda sobre la tabla de roles.
func TestEffective_PersonalizadosIgnoranRolAdmin(t *testing.T) {
	u := &entity.User{
		Role:        entity.RoleAdmin,
		Permissions: []string{string(permission.ViewDashboard)},
	}
	eff := permission.Effective(u)

	assert.True(t, eff.Contains(permission.ViewDashboard))
	assert.False(t, eff.Contains(permission.ManageUsers),
		"el rol Admin no debe aportar permisos cuando hay lista explícita")
	assert.Len(t, eff, 1)
}

// Lista vacía = "sin personalizar": cae a la tabla por rol.
func TestEffective_ListaVaciaCaeAlRol(t *testing.T) {
	u := &entity.User{Role: entity.RoleManager, Permissions: []string{}}
	eff := permission.Effective(u)

	assert.True(t, eff.Contains(permission.ViewAllOrders))
	assert.False(t, eff.Contains(permission.DeleteOrders),
		"Manager no tiene permisos de borrado")
	assert.False(t, eff.Contains(permission.ManageUsers),
		"Manager no gestiona usuarios")
}

// Rol desconocido sin permisos explícitos = cero acceso (falla cerrado).
func TestEffective_RolDesconocidoFallaCerrado(t *testing.T) {
	u := &entity.User{Role: "Presser", Permissions: nil}
	eff := permission.Effective(u)

	require.Empty(t, eff, "un rol sin entrada en la tabla no otorga nada")
	assert.False(t, permission.Has(u, permission.ViewDashboard))
}

func TestEffective_AdminPorRolTieneTodo(t *testing.T) {
	u := &entity.User{Role: entity.RoleAdmin}
	eff := permission.Effective(u)
	for _, tag := range permission.All {
		assert.True(t, eff.Contains(tag), "Admin debe tener %s", tag)
	}
}

func TestEffective_UsuarioNilSinAcceso(t *testing.T) {
	assert.Empty(t, permission.Effective(nil))
}

// ──────────────────────────────────────────────────────────────────────────────
// CanView: OR de los dos scopes por categoría
// ──────────────────────────────────────────────────────────────────────────────

func TestCanView_OwnOAllBastan(t *testing.T) {
	own := &entity.User{Permissions: []string{string(permission.ViewOwnOrders)}}
	all := &entity.User{Permissions: []string{string(permission.ViewAllOrders)}}
	none := &entity.User{Permissions: []string{string(permission.ViewDashboard)}}

	assert.True(t, permission.CanView(own, permission.CategoryOrders))
	assert.True(t, permission.CanView(all, permission.CategoryOrders))
	assert.False(t, permission.CanView(none, permission.CategoryOrders))
}

func TestCanView_CategoriasIndependientes(t *testing.T) {
	u := &entity.User{Permissions: []string{string(permission.ViewOwnReports)}}

	assert.True(t, permission.CanView(u, permission.CategoryReports))
	assert.False(t, permission.CanView(u, permission.CategoryOrders),
		"el scope de reportes no abre órdenes")
	assert.False(t, permission.CanView(u, permission.CategoryExpenses))
}

func TestRoleDefaults_StaffSubconjuntoMinimo(t *testing.T) {
	tags := permission.RoleDefaults(entity.RoleStaff)
	require.NotEmpty(t, tags)
	set := permission.NewSet(tags...)
	assert.True(t, set.Contains(permission.ViewOwnOrders))
	assert.False(t, set.Contains(permission.ViewAllOrders))
	assert.Nil(t, permission.RoleDefaults("CualquierOtro"))
}
