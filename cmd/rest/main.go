package main

import (
	"context"
	"log"

	"fashion-chatbot-be/internal/bootstrap"
	"fashion-chatbot-be/internal/config"
	"fashion-chatbot-be/internal/server"
	"fashion-chatbot-be/internal/tracer"
	"fashion-chatbot-be/pkg/database"
)

func main() {
	// 0. Initialize Tracer
	shutdownTracer := tracer.InitTracer()
	defer shutdownTracer(context.Background())

	// 1. Load Configuration
	cfg := config.Load()

	// 2. Initialize Database
	gormDB, err := database.NewGormDB(cfg.Database.Connection)
	if err != nil {
		log.Panicf("Unable to connect to GORM DB: %v", err)
	}

	// 3. Bootstrap Dependencies (Container)
	container := bootstrap.NewContainer(gormDB, cfg)

	// 4. Make sure the vector collection exists before serving traffic
	if err := container.SyncService.EnsureCollection(context.Background()); err != nil {
		log.Printf("[WARN] Failed to ensure vector collection: %v", err)
	}

	// 5. Start Background Services
	go func() {
		log.Println("Background: Starting Sync Worker...")
		if err := container.SyncWorkerService.Consume(context.Background()); err != nil {
			log.Printf("Background Sync Worker Error: %v", err)
		}
	}()

	// 6. Initialize Server
	srv := server.New(cfg, container)

	// 7. Run Server
	log.Fatal(srv.Run())
}
