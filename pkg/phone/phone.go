// Package phone normaliza teléfonos paquistaníes al formato internacional
// sin símbolos que exige wa.me y arma los enlaces/mensajes de WhatsApp.
package phone

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/tu-usuario/tailor-pro/internal/domain/entity"
)

// countryCode prefijo de Pakistán, sin el signo +.
const countryCode = "92"

// Normalize convierte cualquier formato de captura ("0300-1234567",
// "+92 300 1234567", "3001234567") a dígitos con prefijo de país:
// "923001234567". Cadena sin dígitos devuelve vacío.
func Normalize(raw string) string {
	var b strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	digits := b.String()
	if digits == "" {
		return ""
	}
	if strings.HasPrefix(digits, "0") {
		return countryCode + digits[1:]
	}
	if !strings.HasPrefix(digits, countryCode) {
		return countryCode + digits
	}
	return digits
}

// WhatsAppLink arma el enlace wa.me con el mensaje precargado.
func WhatsAppLink(rawPhone, message string) string {
	n := Normalize(rawPhone)
	if n == "" {
		return ""
	}
	link := "https://wa.me/" + n
	if message != "" {
		link += "?text=" + url.QueryEscape(message)
	}
	return link
}

// ReadyMessage plantilla de aviso de orden lista para recoger.
func ReadyMessage(s entity.BusinessSettings, customerName, orderID string) string {
	return fmt.Sprintf(
		"Dear %s, your order %s is ready for pickup at %s. Thank you! — %s",
		customerName, orderID, s.BusinessAddress, s.BusinessName,
	)
}

// ReceiptMessage plantilla de confirmación de pago con saldo restante.
func ReceiptMessage(s entity.BusinessSettings, customerName, orderID, paid, balance string) string {
	return fmt.Sprintf(
		"Dear %s, we received your payment of %s for order %s. Remaining balance: %s. — %s",
		customerName, paid, orderID, balance, s.BusinessName,
	)
}
