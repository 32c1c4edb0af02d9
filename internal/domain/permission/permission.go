// Package permission resuelve el conjunto efectivo de permisos de un usuario
// y las comprobaciones de acceso por categoría (scope "own" vs "all").
package permission

import "github.com/tu-usuario/tailor-pro/internal/domain/entity"

// Tag es un permiso cerrado del sistema. Los valores coinciden con los tags
// almacenados en la colección de usuarios.
type Tag string

const (
	ViewDashboard Tag = "view_dashboard"

	ViewOwnOrders         Tag = "view_own_orders"
	ViewAllOrders         Tag = "view_all_orders"
	CreateOrders          Tag = "create_orders"
	EditOrders            Tag = "edit_orders"
	DeleteOrders          Tag = "delete_orders"
	EditOrderMeasurements Tag = "edit_order_measurements"

	ViewOwnCustomers         Tag = "view_own_customers"
	ViewAllCustomers         Tag = "view_all_customers"
	CreateCustomers          Tag = "create_customers"
	EditCustomers            Tag = "edit_customers"
	DeleteCustomers          Tag = "delete_customers"
	EditCustomerMeasurements Tag = "edit_customer_measurements"

	ViewWorkers   Tag = "view_workers"
	CreateWorkers Tag = "create_workers"
	EditWorkers   Tag = "edit_workers"
	DeleteWorkers Tag = "delete_workers"
	PayWorkers    Tag = "pay_workers"

	ViewAccounts Tag = "view_accounts"

	ViewOwnExpenses Tag = "view_own_expenses"
	ViewAllExpenses Tag = "view_all_expenses"
	CreateExpenses  Tag = "create_expenses"
	EditExpenses    Tag = "edit_expenses"
	DeleteExpenses  Tag = "delete_expenses"

	ViewOwnReports Tag = "view_own_reports"
	ViewAllReports Tag = "view_all_reports"

	ManageUsers Tag = "manage_users"
)

// All lista todos los tags del sistema (= permisos de Admin).
var All = []Tag{
	ViewDashboard,
	ViewOwnOrders, ViewAllOrders, CreateOrders, EditOrders, DeleteOrders, EditOrderMeasurements,
	ViewOwnCustomers, ViewAllCustomers, CreateCustomers, EditCustomers, DeleteCustomers, EditCustomerMeasurements,
	ViewWorkers, CreateWorkers, EditWorkers, DeleteWorkers, PayWorkers,
	ViewAccounts,
	ViewOwnExpenses, ViewAllExpenses, CreateExpenses, EditExpenses, DeleteExpenses,
	ViewOwnReports, ViewAllReports,
	ManageUsers,
}

// Set conjunto de permisos con membresía O(1).
type Set map[Tag]struct{}

// NewSet construye un Set desde tags.
func NewSet(tags ...Tag) Set {
	s := make(Set, len(tags))
	for _, t := range tags {
		s[t] = struct{}{}
	}
	return s
}

// Contains indica si el tag pertenece al conjunto.
func (s Set) Contains(t Tag) bool {
	_, ok := s[t]
	return ok
}

// rolePermissions tabla estática rol → permisos, para usuarios sin permisos
// personalizados (compatibilidad con cuentas anteriores al editor de
// permisos). Un rol desconocido no otorga nada: el acceso falla cerrado.
var rolePermissions = map[string][]Tag{
	entity.RoleAdmin: All,
	entity.RoleManager: {
		ViewDashboard,
		ViewAllOrders, CreateOrders, EditOrders, EditOrderMeasurements,
		ViewAllCustomers, CreateCustomers, EditCustomers, EditCustomerMeasurements,
		ViewWorkers, CreateWorkers, EditWorkers, PayWorkers,
		ViewAccounts,
		ViewAllExpenses, CreateExpenses,
		ViewAllReports,
	},
	entity.RoleStaff: {
		ViewDashboard,
		ViewOwnOrders, CreateOrders,
		ViewOwnCustomers, CreateCustomers,
		ViewWorkers,
		ViewOwnExpenses, CreateExpenses,
		ViewOwnReports,
	},
}

// Effective resuelve el conjunto efectivo de permisos del usuario: si trae
// permisos explícitos se usan tal cual (ignorando el rol, aunque sea Admin);
// si la lista está vacía o ausente se cae a la tabla por rol.
func Effective(u *entity.User) Set {
	if u == nil {
		return Set{}
	}
	if len(u.Permissions) > 0 {
		s := make(Set, len(u.Permissions))
		for _, p := range u.Permissions {
			s[Tag(p)] = struct{}{}
		}
		return s
	}
	return NewSet(rolePermissions[u.Role]...)
}

// Has indica si el usuario tiene el permiso dado.
func Has(u *entity.User, t Tag) bool {
	return Effective(u).Contains(t)
}

// Category es una categoría de datos con scope "own"/"all" independiente.
type Category string

const (
	CategoryOrders    Category = "orders"
	CategoryCustomers Category = "customers"
	CategoryExpenses  Category = "expenses"
	CategoryReports   Category = "reports"
)

// viewTags par (own, all) por categoría. El patrón OR-de-dos-scopes se
// resuelve aquí una sola vez, no caso por caso en cada vista.
var viewTags = map[Category][2]Tag{
	CategoryOrders:    {ViewOwnOrders, ViewAllOrders},
	CategoryCustomers: {ViewOwnCustomers, ViewAllCustomers},
	CategoryExpenses:  {ViewOwnExpenses, ViewAllExpenses},
	CategoryReports:   {ViewOwnReports, ViewAllReports},
}

// CanView indica si el usuario puede ver la categoría con cualquiera de los
// dos scopes (propio o total).
func CanView(u *entity.User, c Category) bool {
	pair, ok := viewTags[c]
	if !ok {
		return false
	}
	eff := Effective(u)
	return eff.Contains(pair[0]) || eff.Contains(pair[1])
}

// RoleDefaults expone los permisos por defecto de un rol (para la UI de
// gestión de usuarios). Rol desconocido devuelve lista vacía.
func RoleDefaults(role string) []Tag {
	tags, ok := rolePermissions[role]
	if !ok {
		return nil
	}
	out := make([]Tag, len(tags))
	copy(out, tags)
	return out
}

// Strings convierte tags a su representación almacenable.
func Strings(tags []Tag) []string {
	out := make([]string, len(tags))
	for i, t := range tags {
		out[i] = string(t)
	}
	return out
}
