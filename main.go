// main.go
package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"

	"tacotown/catalog"
	"tacotown/config"
	"tacotown/controllers"
	"tacotown/logger"
	"tacotown/routes"
	"tacotown/utils"
)

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found. Proceeding with environment variables.")
	}

	cfg := config.Load()
	slogger := logger.New(logger.Options{
		Service: "tacotown-api",
		Env:     cfg.AppEnv,
		Level:   cfg.LogLevel,
	})

	// Set the JWT secret key
	utils.JwtKey = []byte(os.Getenv("JWT_SECRET"))

	// Initialize EmailService
	emailService := utils.NewEmailService()

	// Load the menu catalog embedded in the binary
	cat, err := catalog.Load()
	if err != nil {
		log.Fatalf("Failed to load menu catalog: %v", err)
	}

	// Connect to MongoDB
	client := utils.ConnectDB()
	defer func() {
		if err := client.Disconnect(context.TODO()); err != nil {
			log.Fatal(err)
		}
	}()

	// Initialize controllers
	orderController := controllers.NewOrderController(client, emailService, cfg.ShopEmail, slogger)
	menuController := controllers.NewMenuController(cat)
	contactController := controllers.NewContactController(client, emailService, cfg.ShopEmail, slogger)

	indexCtx, cancelIndex := context.WithTimeout(context.Background(), 10*time.Second)
	if err := orderController.EnsureIndexes(indexCtx); err != nil {
		slogger.Warn("failed to ensure order indexes", "error", err)
	}
	cancelIndex()

	// Set up the router
	router := mux.NewRouter()
	routes.RegisterRoutes(router, orderController, menuController, contactController)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		slogger.Info("server listening", "port", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slogger.Error("server failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	slogger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slogger.Error("shutdown failed", "error", err)
	}
}
