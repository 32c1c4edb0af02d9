package dto

import "time"

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// SyncStatusResponse estado del motor de sincronización para la UI
// (indicador "guardando…/guardado hace X").
type SyncStatusResponse struct {
	Saving    bool       `json:"saving"`
	LastSaved *time.Time `json:"lastSaved"`
	LastError string     `json:"lastError,omitempty"`
}
