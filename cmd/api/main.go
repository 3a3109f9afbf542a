package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	_ "github.com/joho/godotenv/autoload"

	"github.com/tecmade/sitrac-api/internal/application/auth"
	"github.com/tecmade/sitrac-api/internal/application/inventory"
	"github.com/tecmade/sitrac-api/internal/infrastructure/postgres"
	httpRouter "github.com/tecmade/sitrac-api/internal/interfaces/http"
	"github.com/tecmade/sitrac-api/pkg/config"
	"github.com/tecmade/sitrac-api/pkg/logger"
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

	stockRepo := postgres.NewStockRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	tokenRepo := postgres.NewTokenRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	stockUC := inventory.NewMovimientoUseCase(txRunner, stockRepo)
	authUC := auth.NewAuthUseCase(userRepo, tokenRepo, auth.TokenConfig{
		ExpMinutes: cfg.Token.ExpirationMinutes,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "SITRAC API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		StockUC: stockUC,
		AuthUC:  authUC,
	})

	// Purga periódica de tokens vencidos para que la tabla no crezca sin tope.
	purgeCtx, stopPurge := context.WithCancel(ctx)
	defer stopPurge()
	go purgeExpiredTokens(purgeCtx, authUC, log, time.Duration(cfg.Token.PurgeIntervalMinutes)*time.Minute)

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

	log.Info().Msg("aplicación detenida")
}

func purgeExpiredTokens(ctx context.Context, authUC *auth.AuthUseCase, log *logger.Logger, interval time.Duration) {
	if interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := authUC.PurgeExpired(ctx)
			if err != nil {
				log.Warn().Err(err).Msg("purga de tokens vencidos")
				continue
			}
			if n > 0 {
				log.Info().Int64("tokens", n).Msg("tokens vencidos eliminados")
			}
		}
	}
}
