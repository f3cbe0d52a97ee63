package http

import (
	"log/slog"
	"net/http"

	"roomsearch/internal/delivery/http/controllers"
	"roomsearch/internal/delivery/http/middleware"

	httpSwagger "github.com/swaggo/http-swagger"
)

// RouterConfig holds the controllers and the validator chain mounted by NewRouter.
type RouterConfig struct {
	Search    *controllers.RoomSearchController
	Health    *controllers.HealthController
	Validator middleware.RequestValidator
	Logger    *slog.Logger
}

// NewRouter initializes the HTTP router with all application routes
func NewRouter(cfg RouterConfig) *http.ServeMux {
	mux := http.NewServeMux()
	validated := middleware.RequireValidation(cfg.Validator, cfg.Logger)

	// Search
	mux.HandleFunc("GET /search/all-criteria", validated(cfg.Search.SearchRooms))

	// Health
	mux.HandleFunc("GET /healthz", cfg.Health.Health)

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return mux
}
