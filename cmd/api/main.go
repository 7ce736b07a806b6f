package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"go-pos-ledger/internal/handler"
	"go-pos-ledger/internal/repository"
	"go-pos-ledger/internal/service"
	"go-pos-ledger/internal/session"
	"go-pos-ledger/internal/ws"
	"go-pos-ledger/pkg/config"
	"go-pos-ledger/pkg/logger"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

func main() {
	// 1. Load Env
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	zapLog, err := logger.InitLogger(logger.LogConfig{
		Level:       cfg.LogLevel,
		Environment: cfg.Env,
		ServiceName: cfg.AppName,
		Filename:    cfg.LogFile,
	})
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer zapLog.Sync()

	// 2. Setup Stores
	stores, err := repository.Open(cfg)
	if err != nil {
		zapLog.Fatal("open stores", zap.String("driver", cfg.StoreDriver), zap.Error(err))
	}
	defer stores.Close()
	zapLog.Info("stores ready", zap.String("driver", cfg.StoreDriver))

	// 3. Setup WebSocket Hub
	wsHub := ws.NewHub(zapLog.Named("ws"))
	go wsHub.Run()

	// 4. Dependency Injection (Wiring Layers)
	invService := service.NewInventoryService(stores.Catalog, wsHub, zapLog.Named("inventory"), nil)
	checkoutService := service.NewCheckoutService(stores.Catalog, stores.Ledger, invService, zapLog.Named("checkout"), nil)
	reportService := service.NewReportService(stores.Ledger, cfg.Location, cfg.ReportDefaultDays, cfg.ReportMaxDays, nil)

	registry := session.NewRegistry(cfg.SessionIdleTTL)
	handlers := handler.Handlers{
		Session:   handler.NewSessionHandler(registry),
		Inventory: handler.NewInventoryHandler(invService),
		Sale:      handler.NewSaleHandler(invService, checkoutService),
		Report:    handler.NewReportHandler(reportService, cfg.Location),
	}

	// 5. Setup Fiber
	app := fiber.New(fiber.Config{
		AppName: cfg.AppName,
	})

	// Middleware
	app.Use(fiberlogger.New()) // Logging request
	app.Use(recover.New())     // Panic recovery
	app.Use(cors.New())        // CORS

	// 6. Routes
	handler.RegisterRoutes(app.Group("/api/v1"), handlers, registry)
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	// WebSocket Route
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return c.SendStatus(fiber.StatusUpgradeRequired)
	})
	app.Get("/ws", websocket.New(func(c *websocket.Conn) {
		wsHub.Register <- c
		defer func() { wsHub.Unregister <- c }()

		for {
			// Keep alive loop
			if _, _, err := c.ReadMessage(); err != nil {
				break
			}
		}
	}))

	// 7. Graceful Shutdown
	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			zapLog.Panic("listen", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zapLog.Info("shutting down server")
	if err := app.Shutdown(); err != nil {
		zapLog.Fatal("server forced to shutdown", zap.Error(err))
	}

	zapLog.Info("server exited")
}
