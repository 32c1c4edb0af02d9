package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound         = errors.New("recurso no encontrado")
	ErrUserNotFound     = errors.New("usuario no encontrado")
	ErrUsernameTaken    = errors.New("el username ya está registrado")
	ErrInvalidInput     = errors.New("entrada inválida")
	ErrDuplicate        = errors.New("recurso duplicado")
	ErrUnauthorized     = errors.New("no autorizado")
	ErrForbidden        = errors.New("permiso insuficiente")
	ErrInactiveUser     = errors.New("cuenta desactivada")
	ErrWeakPassword     = errors.New("la contraseña debe tener al menos 6 caracteres")
	ErrWrongPassword    = errors.New("contraseña actual incorrecta")
	ErrConflict         = errors.New("conflicto con el estado actual")
	ErrStoreNotHydrated = errors.New("estado aún no cargado")
)
