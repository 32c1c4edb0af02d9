// Package visibility decide qué órdenes y clientes puede ver un usuario
// según sus permisos y su identidad de trabajador.
//
// TODA agregación (dashboard, reportes, ledgers, exportes) debe pasar por
// este filtro antes de sumar: un trabajador nunca ve ingresos ni órdenes
// fuera de sus asignaciones por un canal lateral.
package visibility

import (
	"strings"

	"github.com/tu-usuario/tailor-pro/internal/domain/entity"
	"github.com/tu-usuario/tailor-pro/internal/domain/permission"
)

// WorkerNameFor resuelve la identidad de trabajador del usuario: el primer
// Worker cuyo nombre coincide (sin distinguir mayúsculas) con user.Name.
// Devuelve "" si no hay coincidencia.
func WorkerNameFor(u *entity.User, workers []entity.Worker) string {
	if u == nil {
		return ""
	}
	for _, w := range workers {
		if strings.EqualFold(w.Name, u.Name) {
			return w.Name
		}
	}
	return ""
}

// Orders filtra las órdenes visibles para el usuario.
//
//  1. Sin view_own_orders ni view_all_orders → vacío.
//  2. Con view_all_orders → todas.
//  3. Solo own → órdenes donde el trabajador coincidente figura como
//     cutter o stitcher; sin Worker coincidente el resultado es vacío
//     (no todas, no error).
func Orders(u *entity.User, orders []entity.Order, workers []entity.Worker) []entity.Order {
	if u == nil {
		return nil
	}
	eff := permission.Effective(u)
	if eff.Contains(permission.ViewAllOrders) {
		return orders
	}
	if !eff.Contains(permission.ViewOwnOrders) {
		return nil
	}
	workerName := WorkerNameFor(u, workers)
	if workerName == "" {
		return nil
	}
	var own []entity.Order
	for _, o := range orders {
		if o.Assignments.Cutter == workerName || o.Assignments.Stitcher == workerName {
			own = append(own, o)
		}
	}
	return own
}

// Customers filtra los clientes visibles: con acceso total, todos; con
// acceso propio, los clientes referenciados por las órdenes visibles; sin
// permiso, vacío.
func Customers(u *entity.User, customers []entity.Customer, orders []entity.Order, workers []entity.Worker) []entity.Customer {
	if u == nil {
		return nil
	}
	eff := permission.Effective(u)
	if eff.Contains(permission.ViewAllCustomers) {
		return customers
	}
	if !eff.Contains(permission.ViewOwnCustomers) {
		return nil
	}
	visible := Orders(u, orders, workers)
	if len(visible) == 0 {
		return nil
	}
	ids := make(map[string]struct{}, len(visible))
	for _, o := range visible {
		ids[o.CustomerID] = struct{}{}
	}
	var own []entity.Customer
	for _, c := range customers {
		if _, ok := ids[c.ID]; ok {
			own = append(own, c)
		}
	}
	return own
}
