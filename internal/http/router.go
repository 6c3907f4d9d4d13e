package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/threatlens/threatlens-api/internal/analysis"
	"github.com/threatlens/threatlens-api/internal/auth"
	"github.com/threatlens/threatlens-api/internal/config"
	"github.com/threatlens/threatlens-api/internal/httputil"
	"github.com/threatlens/threatlens-api/internal/logging"
	"github.com/threatlens/threatlens-api/internal/threat"
)

// Handlers groups the endpoint handlers mounted by NewRouter
type Handlers struct {
	Auth     *auth.Handler
	Threats  *threat.Handler
	Analysis *analysis.Handler
	// Subscribe serves the websocket broadcast channel
	Subscribe http.Handler
}

// NewRouter creates and configures the HTTP router
func NewRouter(cfg *config.Config, handlers Handlers, authMiddleware *auth.Middleware, logger *logging.Logger) *chi.Mux {
	r := chi.NewRouter()

	// CORS - must be first
	if len(cfg.Server.TrustedOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   cfg.Server.TrustedOrigins,
			AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
			ExposedHeaders:   []string{"Content-Length"},
			AllowCredentials: true,
			MaxAge:           300, // 5 minutes
		}))
	}

	r.Use(SecurityHeaders(!cfg.Server.IsDevelopment()))
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(logging.RequestLogger(logger))

	// the websocket upgrade needs the raw connection, so it sits outside Compress
	if handlers.Subscribe != nil {
		r.Method(http.MethodGet, "/ws", handlers.Subscribe)
	}

	r.Group(func(r chi.Router) {
		r.Use(middleware.Compress(5))

		r.Get("/health", handleHealth)

		// Swagger UI - only in development
		if cfg.Server.IsDevelopment() {
			logger.Info("swagger UI enabled at /swagger/*")
			r.Get("/swagger/*", httpSwagger.WrapHandler)
		}

		r.Route("/api/auth", func(r chi.Router) {
			r.Post("/register", handlers.Auth.Register)
			r.Post("/login", handlers.Auth.Login)
			r.With(authMiddleware.RequireAuth).Get("/me", handlers.Auth.Me)
		})

		r.Route("/api/threats", func(r chi.Router) {
			r.Use(authMiddleware.RequireAuth)

			r.Get("/", handlers.Threats.List)
			r.Get("/stats", handlers.Threats.Stats)
			r.Get("/categories", handlers.Threats.Categories)
			r.Get("/{id}", handlers.Threats.Get)
			r.Post("/analyze", handlers.Analysis.Analyze)
		})
	})

	return r
}

// handleHealth is a simple health check endpoint
// @Summary      Health check
// @Description  Check if the API is running
// @Tags         health
// @Produce      json
// @Success      200 {object} map[string]string
// @Router       /health [get]
func handleHealth(w http.ResponseWriter, r *http.Request) {
	httputil.RespondJSON(w, map[string]string{"status": "api is running"}, http.StatusOK)
}
