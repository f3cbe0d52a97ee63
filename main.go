package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"roomsearch/config"
	_ "roomsearch/docs"
	"roomsearch/internal/adapters/auth"
	"roomsearch/internal/adapters/booking"
	httpdelivery "roomsearch/internal/delivery/http"
	"roomsearch/internal/delivery/http/controllers"
	"roomsearch/internal/delivery/http/middleware"
	"roomsearch/internal/repository/postgres"
	"roomsearch/internal/services"
	"roomsearch/internal/validation"

	_ "github.com/lib/pq"
)

// @title Room Search API
// @version 1.0
// @description Search rooms by capacity, building, equipment and free time window.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	logger := config.NewLogger(os.Stdout)
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", "err", err)
		os.Exit(1)
	}

	db, err := sql.Open("postgres", cfg.DBUrl)
	if err != nil {
		logger.Error("failed to open database", "err", err)
		os.Exit(1)
	}
	defer db.Close()
	if err := db.PingContext(ctx); err != nil {
		logger.Warn("database not reachable at startup", "err", err)
	}

	roomRepo := postgres.NewRoomRepository(db)
	availability := booking.NewHTTPAvailabilityChecker(
		&http.Client{Timeout: cfg.BookingServiceTimeout},
		cfg.BookingServiceURL,
	)
	searchService := services.NewRoomSearchService(roomRepo, availability, logger, cfg.RequestTimeout)

	chain := validation.NewChain(
		validation.NewAuthentication(auth.NewJWTVerifier(cfg.JWTSecret)),
		validation.NewAuthorization(cfg.AllowedRoles...),
	)

	router := httpdelivery.NewRouter(httpdelivery.RouterConfig{
		Search:    controllers.NewRoomSearchController(logger, searchService, time.Local),
		Health:    controllers.NewHealthController(logger, db),
		Validator: chain,
		Logger:    logger,
	})
	handler := middleware.CORS(cfg.CORSAllowedOrigins, middleware.LoggingMiddleware(logger, router))

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("failed to shutdown server", "err", err)
		}
	}()

	logger.Info("room search API listening", "addr", server.Addr, "env", cfg.Environment, "booking_service", cfg.BookingServiceURL)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("server encountered error", "err", err)
		os.Exit(1)
	}
}
