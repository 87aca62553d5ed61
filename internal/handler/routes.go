package handler

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/msomdec/eventpass/internal/service"
)

// RegisterRoutes sets up all HTTP routes on the given mux.
func RegisterRoutes(
	mux *http.ServeMux,
	auth *service.AuthService,
	registrations *service.RegistrationService,
	categories *service.CategoryService,
	limiter *service.RateLimiter,
	gatherer prometheus.Gatherer,
	cookieSecure bool,
) {
	authHandler := NewAuthHandler(auth, cookieSecure)
	registrationHandler := NewRegistrationHandler(registrations, categories)
	categoryHandler := NewCategoryHandler(categories)
	dashboardHandler := NewDashboardHandler(registrations, categories)
	imageHandler := NewImageHandler(registrations)

	page := func(h http.HandlerFunc) http.Handler { return RequireAdminPage(auth, h) }
	admin := func(h http.HandlerFunc) http.Handler { return RequireAuth(auth, h) }
	limited := func(h http.HandlerFunc) http.Handler { return RateLimit(limiter, h) }

	mux.HandleFunc("GET /healthz", HandleHealthz)
	mux.Handle("GET /metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))

	// Public registration.
	mux.HandleFunc("GET /{$}", registrationHandler.HandleForm)
	mux.Handle("POST /register", limited(registrationHandler.HandleSubmit))
	mux.HandleFunc("GET /api/categories", categoryHandler.HandleListJSON)
	mux.Handle("POST /api/registrations", limited(registrationHandler.HandleSubmitJSON))

	// Admin sign-in.
	mux.HandleFunc("GET /login", authHandler.HandleLoginPage)
	mux.HandleFunc("POST /login", authHandler.HandleLogin)
	mux.HandleFunc("POST /logout", authHandler.HandleLogout)

	// Admin panel.
	mux.Handle("GET /admin", page(dashboardHandler.HandleDashboard))
	mux.Handle("POST /admin/registrations/{id}/pass", admin(dashboardHandler.HandleSendPass))
	mux.Handle("GET /admin/registrations/{id}/pass.pdf", admin(dashboardHandler.HandleArchivedPass))
	mux.Handle("GET /admin/registrations/{id}/photo", admin(imageHandler.HandlePhoto))
	mux.Handle("GET /admin/registrations/{id}/signature", admin(imageHandler.HandleSignature))
	mux.Handle("POST /api/registrations/{id}/pass", admin(dashboardHandler.HandleSendPassJSON))

	mux.Handle("GET /admin/categories", page(categoryHandler.HandlePage))
	mux.Handle("POST /admin/categories", page(categoryHandler.HandleCreate))
	mux.Handle("POST /admin/categories/{id}", page(categoryHandler.HandleUpdate))
	mux.Handle("POST /admin/categories/{id}/delete", admin(categoryHandler.HandleDelete))
}
