// Seed inicial: crea la cuenta Admin y las tres cuentas de dinero por
// defecto si la base está vacía. Idempotente; se puede correr en cada deploy.
package main

import (
	"context"
	"os"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/tu-usuario/tailor-pro/internal/domain/entity"
	"github.com/tu-usuario/tailor-pro/internal/infrastructure/postgres"
	"github.com/tu-usuario/tailor-pro/pkg/config"
	"github.com/tu-usuario/tailor-pro/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: "info"})

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	if err := postgres.EnsureSchema(ctx, pool); err != nil {
		log.Fatal().Err(err).Msg("crear esquema")
	}

	repo := postgres.NewStateRepository(pool)
	state, err := repo.LoadAll(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("cargar estado")
	}

	changed := false

	if len(state.Users) == 0 {
		password := os.Getenv("SEED_ADMIN_PASSWORD")
		if password == "" {
			password = "admin123"
			log.Warn().Msg("SEED_ADMIN_PASSWORD no definido; usando contraseña por defecto (cámbiala al entrar)")
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			log.Fatal().Err(err).Msg("hash de contraseña")
		}
		state.Users = append(state.Users, entity.User{
			ID:           uuid.New().String(),
			Username:     "admin",
			PasswordHash: string(hash),
			Name:         "Administrator",
			Role:         entity.RoleAdmin,
			Permissions:  []string{},
			Active:       true,
			CreatedAt:    time.Now(),
		})
		changed = true
		log.Info().Msg("cuenta admin creada")
	}

	if len(state.Accounts) == 0 {
		for _, a := range []struct{ name, typ string }{
			{"Cash", entity.AccountTypeCash},
			{"Bank", entity.AccountTypeBank},
			{"JazzCash", entity.AccountTypeWallet},
		} {
			state.Accounts = append(state.Accounts, entity.Account{
				ID:   uuid.New().String(),
				Name: a.name,
				Type: a.typ,
			})
		}
		changed = true
		log.Info().Msg("cuentas de dinero por defecto creadas")
	}

	if !changed {
		log.Info().Msg("nada que sembrar; la base ya tiene datos")
		return
	}
	if err := repo.SaveAll(ctx, state); err != nil {
		log.Fatal().Err(err).Msg("guardar seed")
	}
	log.Info().Msg("seed completado")
}
