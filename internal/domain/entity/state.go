package entity

// State es el snapshot completo de las siete colecciones del negocio.
// Es la unidad de carga y de persistencia: el backend siempre lee y escribe
// el estado entero (ver repository.StateRepository).
type State struct {
	Users          []User          `json:"users"`
	Customers      []Customer      `json:"customers"`
	Orders         []Order         `json:"orders"`
	Expenses       []Expense       `json:"expenses"`
	Workers        []Worker        `json:"workers"`
	WorkerPayments []WorkerPayment `json:"workerPayments"`
	Accounts       []Account       `json:"accounts"`
}

// CollectionNames nombres canónicos de las siete colecciones, en el orden
// del payload.
var CollectionNames = []string{
	"users", "customers", "orders", "expenses", "workers", "workerPayments", "accounts",
}

// Normalize aplica los defaults defensivos de cada colección. Un registro
// malformado (campos ausentes) se repara en vez de tumbar la sesión.
func (s *State) Normalize() {
	if s.Users == nil {
		s.Users = []User{}
	}
	for i := range s.Users {
		s.Users[i].Normalize()
	}
	if s.Customers == nil {
		s.Customers = []Customer{}
	}
	for i := range s.Customers {
		s.Customers[i].Normalize()
	}
	if s.Orders == nil {
		s.Orders = []Order{}
	}
	for i := range s.Orders {
		s.Orders[i].Normalize()
	}
	if s.Expenses == nil {
		s.Expenses = []Expense{}
	}
	if s.Workers == nil {
		s.Workers = []Worker{}
	}
	for i := range s.Workers {
		s.Workers[i].Normalize()
	}
	if s.WorkerPayments == nil {
		s.WorkerPayments = []WorkerPayment{}
	}
	if s.Accounts == nil {
		s.Accounts = []Account{}
	}
}
