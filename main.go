package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"flightdash/internal"
	"flightdash/internal/config"
	"flightdash/internal/container"
	"flightdash/internal/errors"
	"flightdash/internal/ops"
	"flightdash/ui"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	appConfig, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger := internal.DefaultLogger
	logger.SetLevel(internal.ParseLogLevel(appConfig.LogLevel))
	gin.SetMode(appConfig.Server.GinMode)

	appContainer, err := container.New(appConfig, logger)
	if err != nil {
		if errors.IsLoadError(err) {
			log.Fatalf("Failed to load dataset: %v", err)
		}
		log.Fatalf("Failed to create application container: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if appConfig.Ops.Enabled {
		handler := ops.NewRouter(appContainer.Store, appContainer.Started)
		go func() {
			if err := ops.Serve(ctx, ":"+appConfig.Ops.Port, handler); err != nil {
				log.Printf("[Ops] listener stopped: %v", err)
			}
		}()
	}

	server, err := ui.NewServer(ui.Deps{
		Analysis:  appContainer.Analysis,
		Inference: appContainer.Inference,
		Profile:   appContainer.Profile,
		Logger:    logger,
	})
	if err != nil {
		log.Fatalf("Failed to initialize server: %v", err)
	}

	if err := server.Start(":" + appConfig.Server.Port); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
