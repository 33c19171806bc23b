/**
 * @description
 * This file sets up the HTTP router for the campaign-service. It defines the API
 * endpoints, associates them with their corresponding handlers, and applies any
 * necessary middleware, such as for authentication.
 *
 * @dependencies
 * - net/http: Standard Go library for HTTP functionality.
 * - github.com/go-chi/chi/v5: A lightweight and idiomatic router for Go.
 * - github.com/go-chi/cors: CORS middleware for browser clients.
 */

package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// CampaignRoutes creates and returns a new router for the campaign service.
func CampaignRoutes(h *CampaignHandlers, jwksURL, adminToken string, corsOrigins []string) http.Handler {
	r := chi.NewRouter()

	// Add standard middleware for logging, panic recovery, and timeouts.
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   corsOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-ADMIN-TOKEN"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300, // Maximum value not ignored by any major browsers
	}))

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("healthy"))
	})

	// Public browse endpoints
	r.Get("/campaigns", h.ListCampaignsHandler)
	r.Get("/campaigns/{slug}", h.GetCampaignBySlugHandler)
	r.Get("/campaigns/{slug}/donations", h.ListDonationsHandler)
	r.Get("/donations", h.ListDonationsHandler)

	// Donations accept guests; a bearer token, when present, must be valid.
	r.Group(func(r chi.Router) {
		r.Use(OptionalAuthMiddleware(jwksURL))
		r.Post("/donations", h.RecordDonationHandler)
	})

	// Group routes that require authentication.
	r.Group(func(r chi.Router) {
		r.Use(AuthMiddleware(jwksURL))

		r.Post("/campaigns", h.CreateCampaignHandler)
		r.Post("/reports", h.FileReportHandler)

		r.Get("/wallet", h.GetWalletHandler)
		r.Post("/wallet/deposit", h.DepositHandler)
		r.Post("/wallet/withdraw", h.WithdrawHandler)
	})

	// Admin moderation endpoints guarded by the shared secret token.
	r.Group(func(r chi.Router) {
		r.Use(AdminTokenMiddleware(adminToken))

		r.Get("/admin/reports", h.ListReportsHandler)
		r.Post("/admin/reports/resolve", h.ResolveReportHandler)
		r.Post("/admin/campaigns", h.ModerateCampaignHandler)
	})

	return r
}
