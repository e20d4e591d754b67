package api

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog/log"
	"github.com/skybi/tools-sys/internal/api/schema"
	"github.com/skybi/tools-sys/internal/auth"
	"github.com/skybi/tools-sys/internal/config"
	"github.com/skybi/tools-sys/internal/function"
	"github.com/skybi/tools-sys/internal/storage"
)

// Version is reported by the API root endpoint
const Version = "1.0.0"

// Service represents the Tools-Sys REST API service
type Service struct {
	server *http.Server

	Config  *config.Config
	Storage storage.Driver
	Tokens  *auth.TokenIssuer

	writer *schema.Writer
}

// Startup starts up the REST API in the background.
// Unexpected server errors are sent to errs.
func (service *Service) Startup(errs chan<- error) {
	server := &http.Server{
		Addr:    service.Config.ListenAddress,
		Handler: service.Router(),
	}
	service.server = server
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errs <- err
		}
	}()
}

// Shutdown shuts down the REST API
func (service *Service) Shutdown() {
	if service.server != nil {
		service.server.Close()
		service.server = nil
	}
}

// Router builds the HTTP handler serving all API endpoints
func (service *Service) Router() http.Handler {
	// Create the HTTP schema writer
	service.writer = &schema.Writer{
		InternalErrorHook: func(err error) {
			log.Error().Err(err).Msg("the API experienced an unexpected error")
		},
	}

	// Create the HTTP router
	router := chi.NewRouter()
	router.Use(middleware.RedirectSlashes)
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{service.Config.AllowedOrigin},
		AllowedMethods: []string{
			http.MethodHead,
			http.MethodGet,
			http.MethodPost,
			http.MethodPut,
			http.MethodDelete,
		},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	}))
	router.NotFound(func(writer http.ResponseWriter, _ *http.Request) {
		service.writer.WriteErrors(writer, schema.ErrNotFound)
	})
	router.MethodNotAllowed(func(writer http.ResponseWriter, _ *http.Request) {
		service.writer.WriteErrors(writer, schema.ErrMethodNotAllowed)
	})

	// Register the general endpoints
	router.Get("/", service.EndpointRoot)
	router.Get("/api/health", service.EndpointHealth)

	// Register the authentication endpoints
	router.Post("/api/auth/login", service.EndpointLogin)

	// Register the tool controller endpoints
	router.Get("/api/tools", service.EndpointGetTools)
	router.Get("/api/tools/{id}", service.EndpointGetTool)
	router.Post("/api/tools", withMiddlewares(service.EndpointCreateTool, service.MiddlewareVerifyToken, service.MiddlewareCheckAdmin))
	router.Put("/api/tools/{id}", withMiddlewares(service.EndpointUpdateTool, service.MiddlewareVerifyToken, service.MiddlewareCheckAdmin))
	router.Delete("/api/tools/{id}", withMiddlewares(service.EndpointDeleteTool, service.MiddlewareVerifyToken, service.MiddlewareCheckAdmin))

	// Register the user controller endpoints
	router.Get("/api/users", withMiddlewares(service.EndpointGetUsers, service.MiddlewareVerifyToken))
	router.Get("/api/users/{id}", withMiddlewares(service.EndpointGetUser, service.MiddlewareVerifyToken, service.MiddlewareCheckAdmin))
	router.Post("/api/users", withMiddlewares(service.EndpointCreateUser, service.MiddlewareVerifyToken, service.MiddlewareCheckAdmin))
	router.Put("/api/users/{id}", withMiddlewares(service.EndpointUpdateUser, service.MiddlewareVerifyToken, service.MiddlewareCheckAdmin))
	router.Delete("/api/users/{id}", withMiddlewares(service.EndpointDeleteUser, service.MiddlewareVerifyToken, service.MiddlewareCheckAdmin))

	return router
}

// withMiddlewares wraps end so that the first middleware runs first
func withMiddlewares(end http.HandlerFunc, middlewares ...func(http.HandlerFunc) http.HandlerFunc) http.HandlerFunc {
	return function.Nest(end, middlewares...)
}
