package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tu-usuario/tailor-pro/internal/domain/entity"
	"github.com/tu-usuario/tailor-pro/internal/domain/repository"
)

var _ repository.SettingsRepository = (*SettingsRepo)(nil)

// SettingsRepo persiste el singleton de datos del negocio.
type SettingsRepo struct {
	pool *pgxpool.Pool
}

// NewSettingsRepository construye el adaptador.
func NewSettingsRepository(pool *pgxpool.Pool) *SettingsRepo {
	return &SettingsRepo{pool: pool}
}

// Get carga los datos del negocio. Sin fila devuelve defaults vacíos, no
// error: un negocio recién instalado aún no los capturó.
func (r *SettingsRepo) Get(ctx context.Context) (*entity.BusinessSettings, error) {
	var data []byte
	err := r.pool.QueryRow(ctx, `SELECT data FROM settings WHERE id = 1`).Scan(&data)
	if errors.Is(err, pgx.ErrNoRows) {
		return &entity.BusinessSettings{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}
	var s entity.BusinessSettings
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("decode settings: %w", err)
	}
	return &s, nil
}

// Save guarda (upsert) los datos del negocio.
func (r *SettingsRepo) Save(ctx context.Context, s *entity.BusinessSettings) error {
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}
	_, err = r.pool.Exec(ctx, `
		INSERT INTO settings (id, data) VALUES (1, $1)
		ON CONFLICT (id) DO UPDATE SET data = EXCLUDED.data`,
		data,
	)
	if err != nil {
		return fmt.Errorf("save settings: %w", err)
	}
	return nil
}
