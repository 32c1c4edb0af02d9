package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una orden. La progresión es lineal por convención pero el
// cambio de estado no está restringido: cualquier estado es alcanzable
// desde cualquier otro (el cliente de UI pide confirmación).
const (
	StatusBooked    = "Booked"
	StatusCutting   = "Cutting"
	StatusStitching = "Stitching"
	StatusReady     = "Ready"
	StatusDelivered = "Delivered"
)

// OrderStatuses en orden de avance, para barras de progreso y reportes.
var OrderStatuses = []string{StatusBooked, StatusCutting, StatusStitching, StatusReady, StatusDelivered}

// Origen de un pago aplicado a una orden.
const (
	PaymentSourceAdvance = "Advance"
	PaymentSourcePartial = "Partial"
)

// Payment es un abono registrado contra una orden.
//
// AccountID referencia la cuenta destino. Los pagos anteriores al modelo de
// cuentas no lo traen: conservan Mode con el nombre textual de la cuenta
// ("Cash", "Bank"...) y el ledger los asocia por ese nombre.
type Payment struct {
	Date      time.Time       `json:"date"`
	Amount    decimal.Decimal `json:"amount"`
	Source    string          `json:"source"`
	AccountID string          `json:"accountId,omitempty"`
	Mode      string          `json:"mode,omitempty"` // legado pre-cuentas
}

// OrderItem es una prenda pedida dentro de una orden.
type OrderItem struct {
	Type  string          `json:"type"`
	Price decimal.Decimal `json:"price"`
	Qty   int             `json:"qty"`
	Note  string          `json:"note,omitempty"`
}

// Assignments guarda a qué trabajador se asignó cada rol de la orden y la
// tarifa pactada. Nombre vacío significa sin asignar (tarifa en cero).
type Assignments struct {
	Cutter       string          `json:"cutter"`
	Stitcher     string          `json:"stitcher"`
	CutterRate   decimal.Decimal `json:"cutterRate"`
	StitcherRate decimal.Decimal `json:"stitcherRate"`
}

// OrderMeasurement es la copia de medidas tomada al crear la orden.
type OrderMeasurement struct {
	ProfileName string            `json:"profileName"`
	Measurement map[string]string `json:"measurements"`
	Styling     string            `json:"styling,omitempty"`
}

// Order es un trabajo de confección: facturación, estado y asignaciones.
//
// La suma de Payments no tiene por qué igualar TotalPrice: el pago parcial es
// lo normal. Saldo = TotalPrice − Σ pagos (puede ser negativo tras un
// sobrepago, que la UI muestra como "Advance").
type Order struct {
	ID            string             `json:"id"` // ORD-<Mes>-<aa>-<secuencia>
	CustomerID    string             `json:"customerId"`
	CustomerName  string             `json:"customerName"`
	CustomerPhone string             `json:"customerPhone"`
	Status        string             `json:"status"`
	ItemsList     []OrderItem        `json:"itemsList"`
	TotalPrice    decimal.Decimal    `json:"totalPrice"`
	Date          time.Time          `json:"date"`
	DeliveryDate  *time.Time         `json:"deliveryDate"`
	Payments      []Payment          `json:"payments"`
	Assignments   Assignments        `json:"assignments"`
	Measurements  []OrderMeasurement `json:"measurements"`
}

// Normalize aplica defaults defensivos a un registro cargado del store.
func (o *Order) Normalize() {
	if o.ItemsList == nil {
		o.ItemsList = []OrderItem{}
	}
	if o.Payments == nil {
		o.Payments = []Payment{}
	}
	if o.Measurements == nil {
		o.Measurements = []OrderMeasurement{}
	}
	if o.Status == "" {
		o.Status = StatusBooked
	}
}
