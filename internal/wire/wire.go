// internal/wire/wire.go
package wire

import (
	"bilemo-api/internal/adaptor"
	"bilemo-api/internal/data/entity"
	"bilemo-api/internal/data/repository"
	"bilemo-api/internal/usecase"
	"bilemo-api/pkg/cache"
	"bilemo-api/pkg/metrics"
	"bilemo-api/pkg/middleware"
	"bilemo-api/pkg/utils"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// App holds the router and what must be released on shutdown
type App struct {
	Router  *chi.Mux
	Service *usecase.Service

	limiter *middleware.IPRateLimiter
}

// Wiring builds services, handlers and routes
func Wiring(repo *repository.Repository, c cache.TagAwareCache, config *utils.Config, logger *zap.Logger) *App {
	metrics.Init()

	service := usecase.NewService(repo, c, config, logger)
	handler := adaptor.NewHandler(service, repo.Health, config, logger)

	app := &App{Service: service}
	if config.HTTP.RateLimitPerMinute > 0 {
		app.limiter = middleware.NewIPRateLimiter(config.HTTP.RateLimitPerMinute, logger)
	}

	app.Router = setupRouter(handler, service, app.limiter, config, logger)
	return app
}

// Close stops background workers started by Wiring
func (a *App) Close() {
	if a.limiter != nil {
		a.limiter.Stop()
	}
}

func setupRouter(
	handler *adaptor.Handler,
	service *usecase.Service,
	limiter *middleware.IPRateLimiter,
	config *utils.Config,
	logger *zap.Logger,
) *chi.Mux {
	r := chi.NewRouter()

	// Apply global middleware
	r.Use(chimw.RequestID)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))
	r.Use(middleware.CORS(config.HTTP.CORSOrigins))
	r.Use(middleware.Metrics)
	if limiter != nil {
		r.Use(limiter.Handler)
	}

	r.Get("/health", handler.Health.Check)
	r.Method("GET", "/metrics", metrics.Handler())

	wireAuth(r, handler.Auth)

	// every /api resource requires a bearer token
	r.Group(func(r chi.Router) {
		r.Use(middleware.AuthJWT(service.Auth, logger))
		admin := middleware.RequireRole(entity.RoleAdmin, logger)

		wireCustomer(r, handler.Customer, admin)
		wirePhone(r, handler.Phone, admin)
		wireUser(r, handler.User)
	})

	return r
}
