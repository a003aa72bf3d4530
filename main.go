package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"go.uber.org/zap"

	"github.com/sn-be/ecopilot/config"
	"github.com/sn-be/ecopilot/database"
	"github.com/sn-be/ecopilot/routes"
	"github.com/sn-be/ecopilot/services/ai"
)

func main() {
	_ = config.LoadEnvIfExists()

	logger := newLogger(os.Getenv("APP_ENV"))
	defer logger.Sync()
	zap.ReplaceGlobals(logger)

	cfg := config.Load()

	if err := database.Connect(cfg.DatabaseURL); err != nil {
		logger.Fatal("database connection failed", zap.Error(err))
	}

	ai.Init()

	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"service": "ecopilot-api",
			"status":  "ok",
			"env":     cfg.Env,
		})
	})

	routes.SetupAuthRoutes(app)
	routes.SetupOnboardingRoutes(app)
	routes.SetupFootprintRoutes(app)
	routes.SetupCedaRoutes(app)
	routes.SetupChatRoutes(app)

	go func() {
		logger.Info("EcoPilot API listening", zap.String("addr", cfg.HTTPAddr()))
		if err := app.Listen(cfg.HTTPAddr()); err != nil {
			logger.Fatal("server stopped", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down EcoPilot API")
	if err := app.Shutdown(); err != nil {
		logger.Error("forced shutdown", zap.Error(err))
	}
}

func newLogger(env string) *zap.Logger {
	if env == "production" {
		logger, err := zap.NewProduction()
		if err != nil {
			panic(err)
		}
		return logger
	}
	logger, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}
	return logger
}
