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

	"github.com/hrunx/Gasable-sub001/internal/application/auth"
	"github.com/hrunx/Gasable-sub001/internal/application/onboarding"
	"github.com/hrunx/Gasable-sub001/internal/application/pricing"
	"github.com/hrunx/Gasable-sub001/internal/application/usecase"
	"github.com/hrunx/Gasable-sub001/internal/infrastructure/draftcache"
	"github.com/hrunx/Gasable-sub001/internal/infrastructure/events"
	"github.com/hrunx/Gasable-sub001/internal/infrastructure/postgres"
	httpRouter "github.com/hrunx/Gasable-sub001/internal/interfaces/http"
	"github.com/hrunx/Gasable-sub001/pkg/config"
	"github.com/hrunx/Gasable-sub001/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("load configuration: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("starting application")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("PostgreSQL connection")
	}
	defer pool.Close()

	companyRepo := postgres.NewCompanyRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	storeRepo := postgres.NewStoreRepository(pool)
	branchRepo := postgres.NewBranchRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	zoneRepo := postgres.NewZoneRepository(pool)
	assignmentRepo := postgres.NewAssignmentRepository(pool)
	vehicleRepo := postgres.NewVehicleRepository(pool)
	driverRepo := postgres.NewDriverRepository(pool)
	approvalRepo := postgres.NewApprovalRepository(pool)

	localCache, err := draftcache.New(cfg.Onboarding.DraftDir)
	if err != nil {
		log.Fatal().Err(err).Str("dir", cfg.Onboarding.DraftDir).Msg("draft cache directory")
	}
	draftStore := onboarding.NewDraftStore(localCache, storeRepo, log)

	// Events are optional: no AMQP_URL means no publisher at all.
	var publisher onboarding.EventPublisher
	if cfg.Events.AMQPURL != "" {
		amqpPub, err := events.NewAMQPPublisher(cfg.Events.AMQPURL, cfg.Events.Exchange, log)
		if err != nil {
			log.Fatal().Err(err).Msg("AMQP connection")
		}
		defer amqpPub.Close()
		publisher = amqpPub
	}

	executors := onboarding.Executors{
		Store:     onboarding.NewStoreCreator(storeRepo, branchRepo, log),
		Products:  onboarding.NewProductCreator(productRepo, log),
		Logistics: onboarding.NewLogisticsSaver(zoneRepo, vehicleRepo, driverRepo, log),
		Approval:  onboarding.NewApprovalSubmitter(storeRepo, approvalRepo, log),
		Finalizer: onboarding.GoLiveFinalizer{},
	}
	onboardingManager := onboarding.NewManager(draftStore, executors, publisher, log)

	pricingSvc := pricing.NewService(zoneRepo, assignmentRepo, productRepo, log)
	companyUC := usecase.NewCompanyUseCase(companyRepo)
	authUC := auth.NewUseCase(userRepo, companyRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI locally: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Gasable Onboarding API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		CompanyUC:  companyUC,
		AuthUC:     authUC,
		Onboarding: onboardingManager,
		Pricing:    pricingSvc,
		JWTSecret:  cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("HTTP server stopped")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutdown signal received, stopping server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown")
	}

	log.Info().Msg("application stopped")
}
