package repository

import (
	"context"

	"github.com/tu-usuario/tailor-pro/internal/domain/entity"
)

// StateRepository persiste el estado completo del negocio como snapshot
// atómico: siempre se cargan y se guardan las siete colecciones juntas.
// SaveAll reemplaza el contenido previo dentro de una sola transacción
// (todo-o-nada; sin corrupción parcial posible desde una petición).
type StateRepository interface {
	LoadAll(ctx context.Context) (*entity.State, error)
	SaveAll(ctx context.Context, state *entity.State) error
	// UpdatePassword persiste el hash de credenciales fuera del ciclo de
	// snapshot: los hashes no viajan en el payload de colecciones.
	UpdatePassword(ctx context.Context, userID, passwordHash string) error
}

// SettingsRepository persiste el singleton de datos del negocio.
type SettingsRepository interface {
	Get(ctx context.Context) (*entity.BusinessSettings, error)
	Save(ctx context.Context, s *entity.BusinessSettings) error
}
