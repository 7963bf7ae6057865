package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"tabletennis_backend/internals/configs"
	database "tabletennis_backend/internals/databases"
	"tabletennis_backend/internals/helpers/dbtime"
	"tabletennis_backend/internals/helpers/storage"
	routes "tabletennis_backend/internals/route"
	"tabletennis_backend/internals/seeds"
)

func main() {
	configs.LoadEnv()
	cfg := configs.Load()

	if err := dbtime.SetLocation(cfg.Timezone); err != nil {
		log.Printf("[WARN] ACADEMY_TIMEZONE=%q: %v, using UTC", cfg.Timezone, err)
	}

	// 🔌 DB connect + pool + schema
	db, err := database.ConnectDB(cfg.Database)
	if err != nil {
		log.Fatalf("[ERROR] %v", err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatalf("[ERROR] %v", err)
	}

	if cfg.SeedOnStart {
		if err := seeds.Run(context.Background(), db); err != nil {
			log.Printf("[WARN] seeding failed: %v", err)
		}
	}

	store := storage.NewFromEnv(cfg.UploadDir, cfg.UploadURLBase)
	app := routes.NewApp(db, cfg, store)

	// Start server non-blocking
	go func() {
		log.Printf("✅ Listening on :%s", cfg.Port)
		if err := app.Listen("0.0.0.0:" + cfg.Port); err != nil {
			log.Fatalf("server error: %v", err)
		}
	}()

	// graceful shutdown + tutup pool DB
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("[INFO] Shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = app.ShutdownWithContext(ctx)

	if err := database.Close(db); err != nil {
		log.Printf("[WARN] close db: %v", err)
	}
}
