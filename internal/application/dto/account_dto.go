package dto

import (
	"github.com/shopspring/decimal"

	"github.com/tu-usuario/tailor-pro/internal/domain/entity"
)

// CreateAccountRequest entrada para crear un fondo de dinero.
type CreateAccountRequest struct {
	Name string `json:"name" validate:"required,min=1,max=100"`
	Type string `json:"type" validate:"required"`
}

// UpdateAccountRequest entrada para renombrar o retipar una cuenta.
type UpdateAccountRequest struct {
	Name *string `json:"name" validate:"omitempty,min=1,max=100"`
	Type *string `json:"type"`
}

// AccountResponse cuenta con su saldo derivado del historial completo.
type AccountResponse struct {
	entity.Account
	Balance decimal.Decimal `json:"balance"`
}

// UpdateSettingsRequest datos del negocio para plantillas y exportes.
type UpdateSettingsRequest struct {
	BusinessName     string `json:"businessName" validate:"required"`
	BusinessPhone    string `json:"businessPhone"`
	BusinessWhatsApp string `json:"businessWhatsApp"`
	BusinessAddress  string `json:"businessAddress"`
	LogoPath         string `json:"businessLogo"`
}
