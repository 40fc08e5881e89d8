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

	"github.com/akazantsev/pricewatch/internal/application/auth"
	"github.com/akazantsev/pricewatch/internal/application/importer"
	"github.com/akazantsev/pricewatch/internal/application/usecase"
	"github.com/akazantsev/pricewatch/internal/infrastructure/postgres"
	"github.com/akazantsev/pricewatch/internal/infrastructure/xlsx"
	httpRouter "github.com/akazantsev/pricewatch/internal/interfaces/http"
	"github.com/akazantsev/pricewatch/pkg/config"
	"github.com/akazantsev/pricewatch/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("load configuration: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
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

	categoryRepo := postgres.NewCategoryRepository(pool)
	subcategoryRepo := postgres.NewSubcategoryRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	priceListRepo := postgres.NewPriceListRepository(pool)
	priceRepo := postgres.NewPriceRepository(pool)
	storeRepo := postgres.NewStoreRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	// Use cases follow the catalog hierarchy: stores and subcategories feed
	// products, products feed price lists, price lists feed prices.
	storeUC := usecase.NewStoreUseCase(storeRepo)
	subcategoryUC := usecase.NewSubcategoryUseCase(subcategoryRepo, categoryRepo, productRepo, txRunner)
	categoryUC := usecase.NewCategoryUseCase(categoryRepo, subcategoryUC, txRunner)
	productUC := usecase.NewProductUseCase(productRepo, subcategoryRepo, priceListRepo, txRunner)
	priceListUC := usecase.NewPriceListUseCase(priceListRepo, priceRepo, productRepo, storeRepo, txRunner)
	priceUC := usecase.NewPriceUseCase(priceRepo, priceListRepo, txRunner)

	sheetImporter := importer.New(txRunner, subcategoryUC, productUC, priceListUC, storeUC, log)
	sheetReader := xlsx.NewReader()

	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
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

	// Swagger UI at /docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Pricewatch API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		CategoryUC:    categoryUC,
		SubcategoryUC: subcategoryUC,
		ProductUC:     productUC,
		PriceListUC:   priceListUC,
		PriceUC:       priceUC,
		StoreUC:       storeUC,
		AuthUC:        authUC,
		Importer:      sheetImporter,
		SheetReader:   sheetReader,
		JWTSecret:     cfg.JWT.Secret,
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
