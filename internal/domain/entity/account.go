package entity

// Tipos de cuenta (fondos de dinero con nombre).
const (
	AccountTypeCash   = "Cash"
	AccountTypeBank   = "Bank"
	AccountTypeWallet = "Mobile Wallet"
)

// Account es un fondo de dinero con nombre (caja, banco, billetera móvil).
// El saldo NUNCA se almacena: se deriva del historial completo de
// transacciones (ver ledger.AccountBalance).
type Account struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Type string `json:"type"`
}

// BusinessSettings datos del negocio, singleton consumido de solo lectura
// por plantillas de mensajes y exportes.
type BusinessSettings struct {
	BusinessName     string `json:"businessName"`
	BusinessPhone    string `json:"businessPhone"`
	BusinessWhatsApp string `json:"businessWhatsApp"`
	BusinessAddress  string `json:"businessAddress"`
	LogoPath         string `json:"businessLogo,omitempty"`
}
