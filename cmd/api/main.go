package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/redis/go-redis/v9"

	_ "github.com/jhoicas/tienda-pos/docs"
	appanalytics "github.com/jhoicas/tienda-pos/internal/application/analytics"
	"github.com/jhoicas/tienda-pos/internal/application/auth"
	"github.com/jhoicas/tienda-pos/internal/application/cashregister"
	"github.com/jhoicas/tienda-pos/internal/application/sale"
	"github.com/jhoicas/tienda-pos/internal/application/usecase"
	"github.com/jhoicas/tienda-pos/internal/infrastructure/memstore"
	infrapdf "github.com/jhoicas/tienda-pos/internal/infrastructure/pdf"
	"github.com/jhoicas/tienda-pos/internal/infrastructure/postgres"
	"github.com/jhoicas/tienda-pos/internal/infrastructure/redisstore"
	"github.com/jhoicas/tienda-pos/internal/infrastructure/xlsx"
	httpRouter "github.com/jhoicas/tienda-pos/internal/interfaces/http"
	"github.com/jhoicas/tienda-pos/pkg/config"
	"github.com/jhoicas/tienda-pos/pkg/logger"
)

// @title        Tienda POS API
// @version      1.0
// @description  Inventario, ventas, caja y reportes de la tienda.
// @BasePath     /
// @securityDefinitions.apikey Bearer
// @in           header
// @name         Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.Log.Level,
	})
	loc := cfg.App.Location()
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("timezone", loc.String()).
		Msg("iniciando aplicación")

	if cfg.JWT.Secret == "" {
		log.Fatal().Msg("JWT_SECRET es requerido")
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	if err := postgres.Migrate(ctx, pool, log.Zerolog()); err != nil {
		log.Fatal().Err(err).Msg("migraciones")
	}

	userRepo := postgres.NewUserRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	saleRepo := postgres.NewSaleRepository(pool)
	expenseRepo := postgres.NewExpenseRepository(pool)
	analyticsRepo := postgres.NewAnalyticsRepository(pool)

	// Carritos: en memoria para una sola instancia, Redis para varias.
	var carts sale.CartStore
	switch cfg.Cart.Store {
	case "redis":
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := rdb.Ping(ctx).Err(); err != nil {
			log.Fatal().Err(err).Str("addr", cfg.Redis.Addr).Msg("conexión a Redis")
		}
		defer rdb.Close()
		carts = redisstore.NewCartStore(rdb, cfg.Cart.TTL())
	default:
		carts = memstore.NewCartStore(cfg.Cart.TTL())
	}
	log.Info().Str("cart_store", cfg.Cart.Store).Msg("almacén de carritos listo")

	zl := log.Zerolog()
	productUC := usecase.NewProductUseCase(productRepo, zl)
	entrySvc := sale.NewEntryService(productRepo, saleRepo, carts, zl)
	ledgerSvc := sale.NewLedgerService(saleRepo,
		xlsx.NewSalesExporter(),
		infrapdf.NewReceiptGenerator(cfg.App.Name, cfg.App.Currency),
		loc, zl)
	cashUC := cashregister.NewUseCase(expenseRepo, analyticsRepo, loc, zl)
	dashboardUC := appanalytics.NewDashboardUseCase(analyticsRepo, loc)
	chartsUC := appanalytics.NewChartsUseCase(analyticsRepo, loc)
	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Tienda POS API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:      authUC,
		UserUC:      usecase.NewUserUseCase(userRepo),
		ProductUC:   productUC,
		Entry:       entrySvc,
		Ledger:      ledgerSvc,
		Cash:        cashUC,
		DashboardUC: dashboardUC,
		ChartsUC:    chartsUC,
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

	log.Info().Msg("aplicación detenida")
}
