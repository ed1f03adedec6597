package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimid "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/thesislink/engine/internal/api/handlers"
	mw "github.com/thesislink/engine/internal/api/middleware"
	"github.com/thesislink/engine/internal/models"
)

type Dependencies struct {
	HMACSecret           []byte
	AuthHandler          *handlers.AuthHandler
	ProjectsHandler      *handlers.ProjectsHandler
	ApplicationsHandler  *handlers.ApplicationsHandler
	UsersHandler         *handlers.UsersHandler
	NotificationsHandler *handlers.NotificationsHandler
}

func NewRouter(dep Dependencies) http.Handler {
	r := chi.NewRouter()

	r.Use(mw.RequestID)
	r.Use(mw.Recovery)
	r.Use(mw.Logging)
	r.Use(cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Authorization", "Content-Type", "X-Request-ID"},
	}).Handler)
	r.Use(mw.RateLimit(10, 20))
	r.Use(chimid.Compress(5))

	hh := handlers.NewHealthHandler()
	r.Get("/healthz", hh.Liveness)
	r.Get("/readyz", hh.Readiness)

	r.Get("/docs/*", httpSwagger.Handler(
		httpSwagger.URL("/docs/doc.json"),
	))

	auth := mw.Auth(dep.HMACSecret)
	companyOnly := mw.RequireRole(string(models.RoleCompany))
	studentOnly := mw.RequireRole(string(models.RoleStudent))

	r.Route("/api", func(api chi.Router) {
		api.Route("/auth", func(ar chi.Router) {
			ar.Post("/register", dep.AuthHandler.Register)
			ar.Post("/login", dep.AuthHandler.Login)
			ar.With(auth).Get("/me", dep.AuthHandler.Me)
		})

		api.Route("/projects", func(pr chi.Router) {
			// Public reads
			pr.Get("/", dep.ProjectsHandler.List)
			pr.Get("/company/{companyId}", dep.ProjectsHandler.ListByCompany)
			pr.Get("/{id}", dep.ProjectsHandler.Get)

			// Company-gated mutations; ownership re-checked in the service
			pr.With(auth, companyOnly).Post("/", dep.ProjectsHandler.Create)
			pr.With(auth, companyOnly).Put("/{id}", dep.ProjectsHandler.Update)
			pr.With(auth, companyOnly).Delete("/{id}", dep.ProjectsHandler.Delete)
		})

		api.Route("/applications", func(ar chi.Router) {
			ar.Use(auth)
			ar.Get("/", dep.ApplicationsHandler.List)
			ar.Get("/{id}", dep.ApplicationsHandler.Get)
			ar.With(studentOnly).Post("/", dep.ApplicationsHandler.Create)
			ar.With(companyOnly).Put("/{id}", dep.ApplicationsHandler.UpdateStatus)
			ar.With(studentOnly).Delete("/{id}", dep.ApplicationsHandler.Withdraw)
		})

		api.Route("/users", func(ur chi.Router) {
			ur.Get("/", dep.UsersHandler.List)
			ur.Get("/{id}", dep.UsersHandler.Get)
			ur.With(auth).Put("/{id}", dep.UsersHandler.Update)
			ur.With(auth).Delete("/{id}", dep.UsersHandler.Delete)
		})

		api.With(auth).Get("/notifications", dep.NotificationsHandler.List)
	})

	return r
}
