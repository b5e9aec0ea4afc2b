package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	escrowHandler "github.com/rekberhq/rekber/internal/http/escrow"
	authMiddleware "github.com/rekberhq/rekber/internal/http/middleware"
	notificationHandler "github.com/rekberhq/rekber/internal/http/notification"
	reviewHandler "github.com/rekberhq/rekber/internal/http/review"
	settingHandler "github.com/rekberhq/rekber/internal/http/setting"
)

func New(
	auth *authMiddleware.Auth,
	transactionsV1 *escrowHandler.Handler,
	reviewsV1 *reviewHandler.Handler,
	notificationsV1 *notificationHandler.Handler,
	settingsV1 *settingHandler.Handler,
) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
	}))

	router.Handle("/metrics", promhttp.Handler())

	router.Route("/api/v1", func(r chi.Router) {
		// Public surface: tracking, the review feed, the fee.
		transactionsV1.PublicRoutes(r)
		reviewsV1.PublicRoutes(r)
		settingsV1.PublicRoutes(r)

		r.Group(func(r chi.Router) {
			r.Use(auth.Authenticate)
			r.Use(middleware.AllowContentType("application/json"))

			r.Route("/transactions", transactionsV1.Routes)
			r.Route("/reviews", reviewsV1.Routes)
			r.Route("/notifications", notificationsV1.Routes)
			settingsV1.Routes(r)
		})
	})

	return router
}
