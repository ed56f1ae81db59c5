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
	"github.com/gofiber/utils"

	"materiku_backend/internals/configs"
	database "materiku_backend/internals/databases"
	catalogModel "materiku_backend/internals/features/catalog/model"
	"materiku_backend/internals/features/catalog/store"
	generateService "materiku_backend/internals/features/generate/service"
	scheduler "materiku_backend/internals/features/users/auth/scheduler"
	helper "materiku_backend/internals/helpers"
	"materiku_backend/internals/helpers/google"
	"materiku_backend/internals/helpers/workflow"
	middlewares "materiku_backend/internals/middlewares"
	routes "materiku_backend/internals/route"
)

func main() {
	configs.LoadEnv()

	app := fiber.New(fiber.Config{
		// 🚀 JSON super cepat
		JSONEncoder:             sonic.Marshal,
		JSONDecoder:             sonic.Unmarshal,
		ErrorHandler:            helper.FromFiberError,
		DisableStartupMessage:   true,
		ProxyHeader:             fiber.HeaderXForwardedFor,
		EnableTrustedProxyCheck: true,
		TrustedProxies:          []string{"0.0.0.0/0"},
		BodyLimit:               12 * 1024 * 1024, // file materi max 10MB + overhead multipart
	})

	// ⚙️ middleware dasar + performa
	app.Use(compress.New(compress.Config{Level: compress.LevelDefault})) // gzip
	app.Use(etag.New())                                                 // 304 caching

	// 🔎 Request-ID + timing (observability ringan)
	app.Use(func(c *fiber.Ctx) error {
		id := c.Get("X-Request-ID")
		if id == "" {
			id = utils.UUID()
		}
		c.Set("X-Request-ID", id)
		c.Locals("reqid", id)
		start := time.Now()
		// Timeout guard; upload & panggilan Google API butuh lebih longgar
		ctx, cancel := context.WithTimeout(c.Context(), 30*time.Second)
		defer cancel()
		c.SetUserContext(ctx)
		err := c.Next()
		dur := time.Since(start)
		log.Printf("[REQ] id=%s %s %s status=%d dur=%s", id, c.Method(), c.OriginalURL(), c.Response().StatusCode(), dur)
		return err
	})

	middlewares.SetupMiddlewares(app)

	// 🔌 DB connect + pool + warm-up
	database.ConnectDB()
	database.TunePool()
	database.WarmUpQueries()
	database.MigrateOnBoot()

	// ⏱ scheduler setelah DB siap
	scheduler.StartTokenCleanupScheduler(database.DB)

	// 🔗 Klien Google + katalog
	bootCtx := context.Background()
	driveCfg := configs.LoadDrive()

	sheetsClient, err := google.NewSheetsClient(bootCtx, driveCfg.CredentialsFile)
	if err != nil {
		log.Fatalf("❌ Gagal init Sheets client: %v", err)
	}
	driveSvc, err := google.NewDriveService(bootCtx, driveCfg)
	if err != nil {
		log.Fatalf("❌ Gagal init Drive service: %v", err)
	}
	catalog := store.New(sheetsClient, catalogModel.Tables(configs.LoadCatalogSheets()))

	// 🤖 Gemini untuk generasi konten & analisis kuis
	generator, err := generateService.NewGenerator(bootCtx, configs.LoadGemini())
	if err != nil {
		log.Fatalf("❌ Gagal init Gemini client: %v", err)
	}

	// 📨 Trigger pipeline n8n
	workflowClient := workflow.NewClient(configs.LoadWorkflow())

	// ✅ Routes
	routes.SetupRoutes(app, database.DB, routes.Deps{
		Catalog:   catalog,
		Drive:     driveSvc,
		Sheets:    sheetsClient,
		Generator: generator,
		Workflow:  workflowClient,
	})

	// 🔒 Keep-Alive & timeout koneksi server
	app.Server().ReadTimeout = 30 * time.Second
	app.Server().WriteTimeout = 60 * time.Second
	app.Server().IdleTimeout = 90 * time.Second

	port := os.Getenv("PORT")
	if port == "" {
		port = "3000"
	}

	// Start server non-blocking
	go func() {
		log.Printf("✅ Listening on :%s", port)
		if err := app.Listen("0.0.0.0:" + port); err != nil {
			log.Fatalf("server error: %v", err)
		}
	}()

	// graceful shutdown + tutup pool DB
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
