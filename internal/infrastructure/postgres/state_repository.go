package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tu-usuario/tailor-pro/internal/domain"
	"github.com/tu-usuario/tailor-pro/internal/domain/entity"
	"github.com/tu-usuario/tailor-pro/internal/domain/repository"
)

var _ repository.StateRepository = (*StateRepo)(nil)

// StateRepo implementación del puerto StateRepository sobre PostgreSQL.
//
// El snapshot se guarda por reemplazo total: cada SaveAll borra y reinserta
// las siete colecciones dentro de una transacción. Todo-o-nada; un fallo a
// mitad de camino no deja colecciones a medias.
type StateRepo struct {
	pool *pgxpool.Pool
}

// NewStateRepository construye el adaptador de persistencia del snapshot.
func NewStateRepository(pool *pgxpool.Pool) *StateRepo {
	return &StateRepo{pool: pool}
}

// LoadAll carga las siete colecciones completas.
func (r *StateRepo) LoadAll(ctx context.Context) (*entity.State, error) {
	st := &entity.State{}

	rows, err := r.pool.Query(ctx, `SELECT id, username, password_hash, data FROM users`)
	if err != nil {
		return nil, fmt.Errorf("load users: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var id, username, hash string
		var data []byte
		if err := rows.Scan(&id, &username, &hash, &data); err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		var u entity.User
		if err := json.Unmarshal(data, &u); err != nil {
			return nil, fmt.Errorf("decode user %s: %w", id, err)
		}
		u.ID = id
		u.Username = username
		u.PasswordHash = hash
		st.Users = append(st.Users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("load users: %w", err)
	}

	if err := loadCollection(ctx, r.pool, "customers", &st.Customers); err != nil {
		return nil, err
	}
	if err := loadCollection(ctx, r.pool, "orders", &st.Orders); err != nil {
		return nil, err
	}
	if err := loadCollection(ctx, r.pool, "expenses", &st.Expenses); err != nil {
		return nil, err
	}
	if err := loadCollection(ctx, r.pool, "workers", &st.Workers); err != nil {
		return nil, err
	}
	if err := loadCollection(ctx, r.pool, "worker_payments", &st.WorkerPayments); err != nil {
		return nil, err
	}
	if err := loadCollection(ctx, r.pool, "accounts", &st.Accounts); err != nil {
		return nil, err
	}

	st.Normalize()
	return st, nil
}

// loadCollection lee una tabla de documentos JSONB a un slice tipado.
func loadCollection[T any](ctx context.Context, pool *pgxpool.Pool, table string, dst *[]T) error {
	rows, err := pool.Query(ctx, fmt.Sprintf(`SELECT data FROM %s`, table))
	if err != nil {
		return fmt.Errorf("load %s: %w", table, err)
	}
	defer rows.Close()
	for rows.Next() {
		var data []byte
		if err := rows.Scan(&data); err != nil {
			return fmt.Errorf("scan %s: %w", table, err)
		}
		var item T
		if err := json.Unmarshal(data, &item); err != nil {
			return fmt.Errorf("decode %s: %w", table, err)
		}
		*dst = append(*dst, item)
	}
	return rows.Err()
}

// SaveAll reemplaza las siete colecciones en una sola transacción. Un
// usuario cuyo hash llega vacío conserva el hash ya almacenado (el hash no
// viaja en el payload de colecciones).
func (r *StateRepo) SaveAll(ctx context.Context, state *entity.State) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	existingHashes := map[string]string{}
	rows, err := tx.Query(ctx, `SELECT id, password_hash FROM users`)
	if err != nil {
		return fmt.Errorf("load hashes: %w", err)
	}
	for rows.Next() {
		var id, hash string
		if err := rows.Scan(&id, &hash); err != nil {
			rows.Close()
			return fmt.Errorf("scan hash: %w", err)
		}
		existingHashes[id] = hash
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return fmt.Errorf("load hashes: %w", err)
	}

	if _, err := tx.Exec(ctx, `DELETE FROM users`); err != nil {
		return fmt.Errorf("clear users: %w", err)
	}
	for i := range state.Users {
		u := state.Users[i]
		hash := u.PasswordHash
		if hash == "" {
			hash = existingHashes[u.ID]
		}
		data, err := json.Marshal(u)
		if err != nil {
			return fmt.Errorf("encode user %s: %w", u.ID, err)
		}
		if _, err := tx.Exec(ctx,
			`INSERT INTO users (id, username, password_hash, data) VALUES ($1, $2, $3, $4)`,
			u.ID, u.Username, hash, data,
		); err != nil {
			if isUniqueViolation(err) {
				return domain.ErrUsernameTaken
			}
			return fmt.Errorf("insert user %s: %w", u.ID, err)
		}
	}

	if err := saveCollection(ctx, tx, "customers", state.Customers, func(c entity.Customer) string { return c.ID }); err != nil {
		return err
	}
	if err := saveCollection(ctx, tx, "orders", state.Orders, func(o entity.Order) string { return o.ID }); err != nil {
		return err
	}
	if err := saveCollection(ctx, tx, "expenses", state.Expenses, func(e entity.Expense) string { return e.ID }); err != nil {
		return err
	}
	if err := saveCollection(ctx, tx, "workers", state.Workers, func(w entity.Worker) string { return w.ID }); err != nil {
		return err
	}
	if err := saveCollection(ctx, tx, "worker_payments", state.WorkerPayments, func(p entity.WorkerPayment) string { return p.ID }); err != nil {
		return err
	}
	if err := saveCollection(ctx, tx, "accounts", state.Accounts, func(a entity.Account) string { return a.ID }); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// saveCollection reemplaza el contenido de una tabla de documentos JSONB.
func saveCollection[T any](ctx context.Context, tx pgx.Tx, table string, items []T, id func(T) string) error {
	if _, err := tx.Exec(ctx, fmt.Sprintf(`DELETE FROM %s`, table)); err != nil {
		return fmt.Errorf("clear %s: %w", table, err)
	}
	for _, item := range items {
		data, err := json.Marshal(item)
		if err != nil {
			return fmt.Errorf("encode %s: %w", table, err)
		}
		if _, err := tx.Exec(ctx,
			fmt.Sprintf(`INSERT INTO %s (id, data) VALUES ($1, $2)`, table),
			id(item), data,
		); err != nil {
			return fmt.Errorf("insert %s: %w", table, err)
		}
	}
	return nil
}

// UpdatePassword persiste el hash de un usuario por su camino dedicado.
func (r *StateRepo) UpdatePassword(ctx context.Context, userID, passwordHash string) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE users SET password_hash = $2 WHERE id = $1`,
		userID, passwordHash,
	)
	if err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}
