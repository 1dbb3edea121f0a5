package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/phrazzld/ideaforge-api/internal/api"
	apiMiddleware "github.com/phrazzld/ideaforge-api/internal/api/middleware"
	"github.com/phrazzld/ideaforge-api/internal/api/shared"
)

// setupRouter creates and configures the application router with all routes and middleware.
// It accepts the application dependencies to create handlers and register routes.
// Returns the configured router.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.TraceMiddleware(app.logger))
	r.Use(app.metrics.Middleware)

	authMiddleware := apiMiddleware.NewAuthMiddleware(app.jwtService)
	generationHandler := api.NewGenerationHandler(app.generator, app.categories, app.logger)
	categoryHandler := api.NewCategoryHandler(app.categories, app.logger)

	r.Route("/api", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)

			r.Route("/ai", func(r chi.Router) {
				r.Post("/generate-ideas", generationHandler.GenerateIdeas)
				r.Post("/construct-prompt", generationHandler.ConstructPrompt)
				r.Post("/test-connection", generationHandler.TestConnection)
				r.Get("/config", generationHandler.GetConfig)
			})

			r.Get("/categories", categoryHandler.ListCategories)
		})
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		shared.RespondWithJSON(w, r, http.StatusOK, map[string]string{"status": "UP"})
	})
	r.Method(http.MethodGet, "/metrics", app.metrics.Handler())

	return r
}
