package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/etag"
	"github.com/gofiber/fiber/v2/utils"

	"studypulse_backend/internals/configs"
	database "studypulse_backend/internals/databases"
	scheduler "studypulse_backend/internals/features/users/auth/scheduler"
	middlewares "studypulse_backend/internals/middlewares"
	route "studypulse_backend/internals/route"
	"studypulse_backend/internals/services/aigen"
	"studypulse_backend/internals/services/mailer"
	"studypulse_backend/internals/services/notifier"
	"studypulse_backend/internals/services/storage"
)

func main() {
	configs.LoadEnv()

	app := fiber.New(fiber.Config{
		JSONEncoder:             sonic.Marshal,
		JSONDecoder:             sonic.Unmarshal,
		DisableStartupMessage:   true,
		ProxyHeader:             fiber.HeaderXForwardedFor,
		EnableTrustedProxyCheck: true,
		TrustedProxies:          []string{"0.0.0.0/0"},
	})

	app.Use(compress.New(compress.Config{Level: compress.LevelDefault}))
	app.Use(etag.New())

	// request id + timing, and an HTTP timeout guard aligned with the DB
	// statement_timeout
	app.Use(func(c *fiber.Ctx) error {
		id := c.Get("X-Request-ID")
		if id == "" {
			id = utils.UUID()
		}
		c.Set("X-Request-ID", id)
		c.Locals("reqid", id)
		start := time.Now()
		ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
		defer cancel()
		c.SetUserContext(ctx)
		err := c.Next()
		dur := time.Since(start)
		log.Printf("[REQ] id=%s %s %s status=%d dur=%s", id, c.Method(), c.OriginalURL(), c.Response().StatusCode(), dur)
		return err
	})

	middlewares.SetupMiddlewares(app)

	database.ConnectDB()
	database.TunePool()
	database.WarmUpQueries()

	scheduler.StartBlacklistCleanupScheduler(database.DB)

	// shared services
	store := storage.FromEnv()
	mail := mailer.FromEnv(
		configs.SendgridAPIKey,
		configs.GetEnv("MAIL_FROM_NAME", "StudyPulse"),
		configs.GetEnv("MAIL_FROM_EMAIL", "no-reply@studypulse.app"),
	)
	deps := route.Deps{
		Store:    store,
		Notifier: notifier.New(database.DB, mail),
		Gen:      aigen.NewOpenAIGenerator(configs.OpenAIAPIKey, configs.GetEnv("OPENAI_MODEL")),
	}

	// local blob driver serves its files straight from disk
	app.Static("/uploads", configs.GetEnv("UPLOAD_DIR", "./uploads"))

	route.SetupRoutes(app, database.DB, deps)

	app.Server().ReadTimeout = 15 * time.Second
	app.Server().WriteTimeout = 30 * time.Second
	app.Server().IdleTimeout = 90 * time.Second

	port := os.Getenv("PORT")
	if port == "" {
		port = "3000"
	}

	go func() {
		log.Printf("listening on :%s", port)
		if err := app.Listen("0.0.0.0:" + port); err != nil {
			log.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = app.ShutdownWithContext(ctx)

	if sqlDB, err := database.DB.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
