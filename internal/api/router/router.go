package router

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/hassannetsec/doctors-friend/internal/auth"
	"github.com/hassannetsec/doctors-friend/internal/booking"
	"github.com/hassannetsec/doctors-friend/internal/catalog"
	httpmiddleware "github.com/hassannetsec/doctors-friend/internal/http/middleware"
	"github.com/hassannetsec/doctors-friend/internal/registration"
	"github.com/hassannetsec/doctors-friend/pkg/logging"
)

// Config holds router configuration
type Config struct {
	Logger              *logging.Logger
	RegistrationHandler *registration.Handler
	CatalogHandler      *catalog.Handler
	BookingHandler      *booking.Handler
	AuthHandler         *auth.Handler
	SessionSecret       string
	MetricsHandler      http.Handler
	CORSAllowedOrigins  []string

	// Rate limiting (0 disables)
	RateLimitPerSecond float64
	RateLimitBurst     int
}

// New creates a new Chi router with all routes configured
func New(cfg *Config) http.Handler {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Compress(5))
	if len(cfg.CORSAllowedOrigins) > 0 {
		r.Use(httpmiddleware.CORS(cfg.CORSAllowedOrigins))
	}
	if cfg.Logger != nil {
		r.Use(httpmiddleware.RequestLogger(cfg.Logger))
	}
	if cfg.RateLimitPerSecond > 0 {
		r.Use(httpmiddleware.RateLimit(cfg.RateLimitPerSecond, cfg.RateLimitBurst))
	}

	r.Get("/health", healthCheck)
	if cfg.MetricsHandler != nil {
		r.Handle("/metrics", cfg.MetricsHandler)
	}

	if cfg.RegistrationHandler != nil {
		r.Route("/registrations/{collection}", func(reg chi.Router) {
			reg.Get("/", cfg.RegistrationHandler.List)
			reg.Post("/", cfg.RegistrationHandler.Submit)
		})
	}

	if cfg.CatalogHandler != nil {
		r.Route("/doctors", func(docs chi.Router) {
			docs.Get("/", cfg.CatalogHandler.Search)
			docs.Get("/{id}", cfg.CatalogHandler.Get)
		})
	}

	if cfg.BookingHandler != nil {
		r.Post("/appointment-notifications", cfg.BookingHandler.Confirm)
	}

	if cfg.AuthHandler != nil {
		r.Route("/auth", func(a chi.Router) {
			a.Post("/signup", cfg.AuthHandler.SignUp)
			a.Post("/signin", cfg.AuthHandler.SignIn)
		})
	}

	// Admin routes (protected by session JWT with admin scope)
	if cfg.SessionSecret != "" && cfg.RegistrationHandler != nil {
		r.Route("/admin", func(admin chi.Router) {
			admin.Use(httpmiddleware.AdminJWT(cfg.SessionSecret))
			admin.Get("/registrations/{collection}", cfg.RegistrationHandler.List)
		})
	}

	return r
}

func healthCheck(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}
