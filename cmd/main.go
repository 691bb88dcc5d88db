package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	"github.com/mstgnz/adyenpay/adyen"
	"github.com/mstgnz/adyenpay/infra/config"
	"github.com/mstgnz/adyenpay/infra/logger"
	"github.com/mstgnz/adyenpay/infra/middle"
	"github.com/mstgnz/adyenpay/infra/response"
	"github.com/mstgnz/adyenpay/router"
)

func init() {
	// Load Env
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("Load Env: %v (falling back to process environment)", err)
	}
	// init conf
	_ = config.App()
	logger.Init()
}

func main() {
	cfg := config.GetAppConfig()

	client, err := adyen.NewClient(cfg.MerchantAccount, cfg.Username, cfg.Password,
		adyen.WithTimeout(time.Duration(cfg.RequestTimeout)*time.Second))
	if err != nil {
		logger.Fatal("gateway client setup failed", err)
	}

	urls := adyen.DefaultURLs()
	aliases := make([]string, 0, len(urls))
	for alias := range urls {
		aliases = append(aliases, alias)
	}
	for alias, url := range config.EndpointOverrides(aliases) {
		urls[alias] = url
	}
	for alias, url := range urls {
		if err := client.RegisterURL(alias, url); err != nil {
			logger.Fatal("endpoint registration failed", err)
		}
	}

	storage, err := config.NewSQLiteStorage(cfg.CredentialDBPath)
	if err != nil {
		logger.Error("credential storage unavailable, continuing without it", err)
		storage = nil
	} else {
		defer storage.Close()
	}

	// Chi Define Routes
	r := chi.NewRouter()

	// Basic Middleware
	r.Use(middleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(middle.RequestLogger())

	// Security Middleware
	rateLimiter := middle.NewRateLimiter()
	r.Use(middle.SecurityHeadersMiddleware())
	r.Use(middle.IPWhitelistMiddleware())
	r.Use(middle.RateLimitMiddleware(rateLimiter))
	r.Use(middle.RequestValidationMiddleware())

	// CORS
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-API-Key", "Origin", "X-Requested-With"},
		ExposedHeaders:   []string{"Link", "Content-Length"},
		AllowCredentials: true,
		MaxAge:           300, // Preflight cache time (second)
	}))

	router.Routes(r, client, storage)

	// Not Found
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		response.WriteJSON(w, http.StatusNotFound, response.Response{Code: http.StatusNotFound, Success: false, Message: "Not Found"})
	})

	// Create a context that listens for interrupt and terminate signals
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	server := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.Port),
		Handler:           r,
		ReadTimeout:       60 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
		ReadHeaderTimeout: 60 * time.Second,
	}

	go func() {
		err := server.ListenAndServe()
		if err != nil && err != http.ErrServerClosed {
			logger.Fatal("server stopped", err)
		}
	}()

	logger.Info("API is running on " + cfg.Port)

	// Block until a signal is received
	<-ctx.Done()

	logger.Info("Shutting down gracefully...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown error", err)
	}
}
