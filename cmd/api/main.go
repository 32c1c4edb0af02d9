package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/tu-usuario/tailor-pro/internal/application/store"
	"github.com/tu-usuario/tailor-pro/internal/application/usecase"
	infrapdf "github.com/tu-usuario/tailor-pro/internal/infrastructure/pdf"
	"github.com/tu-usuario/tailor-pro/internal/infrastructure/postgres"
	httpRouter "github.com/tu-usuario/tailor-pro/internal/interfaces/http"
	"github.com/tu-usuario/tailor-pro/pkg/config"
	"github.com/tu-usuario/tailor-pro/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	if err := postgres.EnsureSchema(ctx, pool); err != nil {
		log.Fatal().Err(err).Msg("crear esquema")
	}

	stateRepo := postgres.NewStateRepository(pool)
	settingsRepo := postgres.NewSettingsRepository(pool)

	// Hidratar el store: todo el estado del negocio vive en memoria y se
	// persiste en diferido.
	st := store.New()
	state, err := stateRepo.LoadAll(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("cargar estado")
	}
	if err := st.Hydrate(state); err != nil {
		log.Fatal().Err(err).Msg("hidratar store")
	}
	settings, err := settingsRepo.Get(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("cargar settings")
	}
	st.SetSettings(*settings)
	log.Info().
		Int("users", len(state.Users)).
		Int("orders", len(state.Orders)).
		Int("customers", len(state.Customers)).
		Msg("estado hidratado")

	syncer := store.NewSyncer(st, stateRepo, log, time.Duration(cfg.Sync.DebounceMs)*time.Millisecond)

	authUC := usecase.NewAuthUseCase(st, stateRepo, cfg.JWT.Secret, cfg.JWT.Issuer, cfg.JWT.Expiration)
	orderUC := usecase.NewOrderUseCase(st)
	customerUC := usecase.NewCustomerUseCase(st)
	workerUC := usecase.NewWorkerUseCase(st)
	expenseUC := usecase.NewExpenseUseCase(st)
	accountUC := usecase.NewAccountUseCase(st, settingsRepo)
	userUC := usecase.NewUserUseCase(st)
	analyticsUC := usecase.NewAnalyticsUseCase(st)
	exportUC := usecase.NewExportUseCase(st, infrapdf.NewMarotoReceiptGenerator())

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		Store:       st,
		Syncer:      syncer,
		AuthUC:      authUC,
		OrderUC:     orderUC,
		CustomerUC:  customerUC,
		WorkerUC:    workerUC,
		ExpenseUC:   expenseUC,
		AccountUC:   accountUC,
		UserUC:      userUC,
		AnalyticsUC: analyticsUC,
		ExportUC:    exportUC,
		JWTSecret:   cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	// Último vuelo: persistir lo que quede pendiente en la ventana de
	// debounce antes de soltar el proceso.
	syncer.Stop()
	if err := syncer.Flush(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("flush final")
	}
	st.Close()

	log.Info().Msg("aplicación detenida")
}
