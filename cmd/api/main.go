package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/danieldelarosaginzalez-wq/ACSOLUTION-sub002/docs"
	"github.com/danieldelarosaginzalez-wq/ACSOLUTION-sub002/internal/application/consumption"
	"github.com/danieldelarosaginzalez-wq/ACSOLUTION-sub002/internal/application/distribution"
	"github.com/danieldelarosaginzalez-wq/ACSOLUTION-sub002/internal/application/ledger"
	"github.com/danieldelarosaginzalez-wq/ACSOLUTION-sub002/internal/application/ports"
	"github.com/danieldelarosaginzalez-wq/ACSOLUTION-sub002/internal/application/report"
	"github.com/danieldelarosaginzalez-wq/ACSOLUTION-sub002/internal/application/request"
	"github.com/danieldelarosaginzalez-wq/ACSOLUTION-sub002/internal/application/usecase"
	"github.com/danieldelarosaginzalez-wq/ACSOLUTION-sub002/internal/domain/repository"
	"github.com/danieldelarosaginzalez-wq/ACSOLUTION-sub002/internal/infrastructure/cache"
	"github.com/danieldelarosaginzalez-wq/ACSOLUTION-sub002/internal/infrastructure/kafka"
	"github.com/danieldelarosaginzalez-wq/ACSOLUTION-sub002/internal/infrastructure/memory"
	"github.com/danieldelarosaginzalez-wq/ACSOLUTION-sub002/internal/infrastructure/notify"
	infrapdf "github.com/danieldelarosaginzalez-wq/ACSOLUTION-sub002/internal/infrastructure/pdf"
	"github.com/danieldelarosaginzalez-wq/ACSOLUTION-sub002/internal/infrastructure/postgres"
	"github.com/danieldelarosaginzalez-wq/ACSOLUTION-sub002/internal/infrastructure/xlsx"
	"github.com/danieldelarosaginzalez-wq/ACSOLUTION-sub002/internal/infrastructure/xmlexport"
	httpRouter "github.com/danieldelarosaginzalez-wq/ACSOLUTION-sub002/internal/interfaces/http"
	"github.com/danieldelarosaginzalez-wq/ACSOLUTION-sub002/pkg/config"
	"github.com/danieldelarosaginzalez-wq/ACSOLUTION-sub002/pkg/logger"
	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

// @title                       ACSolution Materiales API
// @version                     1.0
// @description                 Distribución de material a técnicos de campo, conciliación de devoluciones y descuadres.
// @BasePath                    /
// @securityDefinitions.apikey  Bearer
// @in                          header
// @name                        Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("storage", cfg.App.Storage).
		Msg("iniciando aplicación")
	zl := log.Zerolog()

	ctx := context.Background()

	// Almacenamiento: PostgreSQL o memoria (demos y pruebas locales)
	var (
		txRunner ports.TxRunner
		repos    repository.TxRepos
	)
	switch cfg.App.Storage {
	case config.StorageMemory:
		store := memory.NewStore()
		txRunner = store
		repos = store.Repos()
		log.Warn().Msg("almacenamiento en memoria: los datos se pierden al reiniciar")
	default:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()
		if cfg.DB.Migrate {
			if err := postgres.Migrate(ctx, pool); err != nil {
				log.Fatal().Err(err).Msg("migraciones")
			}
			log.Info().Msg("migraciones aplicadas")
		}
		txRunner = postgres.NewTxRunner(pool)
		repos = postgres.NewRepos(pool)
	}

	// Catálogo con caché opcional en Redis
	materials := repos.Materials
	var invalidator usecase.CacheInvalidator
	if cfg.Redis.Addr != "" {
		rdb, err := cache.NewClient(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			log.Warn().Err(err).Str("addr", cfg.Redis.Addr).Msg("redis no disponible, se sigue sin caché")
		} else {
			defer rdb.Close()
			cached := cache.NewMaterialRepo(repos.Materials, rdb, cfg.Redis.TTL, zl)
			materials = cached
			invalidator = cached
		}
	}

	// Notificaciones: Kafka si hay brokers, si no solo log
	var notifier ports.Notifier = notify.NewLogNotifier(zl)
	if len(cfg.Kafka.Brokers) > 0 {
		producer, err := kafka.NewSyncProducer(cfg.Kafka.Brokers, cfg.Kafka.ClientID)
		if err != nil {
			log.Fatal().Err(err).Strs("brokers", cfg.Kafka.Brokers).Msg("productor kafka")
		}
		kn := kafka.NewNotifier(producer, cfg.Kafka.Topic, zl)
		defer kn.Close()
		notifier = kn
	}

	ledgerUC := ledger.NewLedgerUseCase(txRunner, materials, repos.Stock, repos.Movements, notifier, zl)
	learningUC := consumption.NewLearningUseCase(txRunner, repos.Patterns, materials, consumption.Config{
		SafetyFactor:  cfg.Consumption.SafetyFactor,
		MinConfidence: cfg.Consumption.MinConfidence,
	}, zl)
	controlUC := distribution.NewMaterialControlUseCase(txRunner, repos.Controls, materials, ledgerUC, learningUC, notifier, zl)
	requestUC := request.NewMaterialRequestUseCase(txRunner, repos.Requests, learningUC, notifier, zl)
	reportUC := report.NewReportUseCase(repos.Controls, materials, repos.Movements, ledgerUC,
		infrapdf.NewMarotoPDFGenerator(), xlsx.NewFieldSheetGenerator(), xmlexport.NewKardexEncoder(), zl)
	materialUC := usecase.NewMaterialUseCase(txRunner, repos.Materials, invalidator)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger(log.Component("http")))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath:    "/",
		FileContent: []byte(docs.SwaggerInfo.ReadDoc()),
		Path:        "docs",
		Title:       "ACSolution Materiales API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		MaterialUC:    materialUC,
		LedgerUC:      ledgerUC,
		ControlUC:     controlUC,
		RequestUC:     requestUC,
		ConsumptionUC: learningUC,
		ReportUC:      reportUC,
		JWTSecret:     cfg.JWT.Secret,
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

	log.Info().Msg("aplicación detenida")
}
