package phone_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tu-usuario/tailor-pro/internal/domain/entity"
	"github.com/tu-usuario/tailor-pro/pkg/phone"
)

func TestNormalize(t *testing.T) {
	cases := map[string]string{
		"0300-1234567":    "923001234567",
		"+92 300 1234567": "923001234567",
		"3001234567":      "923001234567",
		"923001234567":    "923001234567",
		"(0300) 123 4567": "923001234567",
		"":                "",
		"abc":             "",
	}
	for in, want := range cases {
		assert.Equal(t, want, phone.Normalize(in), "entrada: %q", in)
	}
}

func TestWhatsAppLink(t *testing.T) {
	link := phone.WhatsAppLink("0300-1234567", "Hola Mundo")
	assert.Equal(t, "https://wa.me/923001234567?text=Hola+Mundo", link)

	assert.Equal(t, "https://wa.me/923001234567", phone.WhatsAppLink("0300-1234567", ""))
	assert.Empty(t, phone.WhatsAppLink("sin dígitos", "x"))
}

func TestReadyMessage(t *testing.T) {
	s := entity.BusinessSettings{BusinessName: "Al-Karam Tailors", BusinessAddress: "Shop 12, Main Bazaar"}
	msg := phone.ReadyMessage(s, "Ahmed", "ORD-Jan-26-0001")
	assert.Contains(t, msg, "Ahmed")
	assert.Contains(t, msg, "ORD-Jan-26-0001")
	assert.Contains(t, msg, "Al-Karam Tailors")
}
