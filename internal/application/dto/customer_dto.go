package dto

import "github.com/tu-usuario/tailor-pro/internal/domain/entity"

// CreateCustomerRequest entrada para registrar un cliente.
// El teléfono se normaliza al formato de WhatsApp antes de guardar.
type CreateCustomerRequest struct {
	Name     string                      `json:"name" validate:"required,min=1,max=100"`
	Phone    string                      `json:"phone" validate:"required"`
	Profiles []entity.MeasurementProfile `json:"profiles"`
}

// UpdateCustomerRequest entrada para actualizar los datos básicos de un
// cliente. Los perfiles de medidas van por su propio endpoint.
type UpdateCustomerRequest struct {
	Name  *string `json:"name" validate:"omitempty,min=1,max=100"`
	Phone *string `json:"phone"`
}

// UpdateProfilesRequest reemplaza el juego completo de perfiles de medidas.
type UpdateProfilesRequest struct {
	Profiles []entity.MeasurementProfile `json:"profiles" validate:"required"`
}
