package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	mW "github.com/club28/backend/internal/middleware"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// Handlers groups everything the router mounts.
type Handlers struct {
	Registrations *RegistrationHandler
	Matches       *MatchHandler
	Tournaments   *TournamentHandler
	Wallet        *WalletHandler
	Live          *LiveHandler
	Auth          func(http.Handler) http.Handler
}

// NewRouter builds the API. Auth defaults to the JWT middleware.
func NewRouter(h Handlers) *chi.Mux {
	auth := h.Auth
	if auth == nil {
		auth = mW.AuthMiddleware
	}

	r := chi.NewRouter()

	r.Use(mW.SecurityHeaders)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RealIP)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*", "http://*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           86400,
	}))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"status": "healthy"})
	})

	r.Route("/api/v1", func(r chi.Router) {
		// Websocket connections outlive any request timeout.
		if h.Live != nil {
			r.Get("/ws/tournaments/{id}", h.Live.ServeWs)
		}

		r.Group(func(r chi.Router) {
			r.Use(middleware.Timeout(60 * time.Second))

			r.Get("/tournaments", h.Tournaments.List)
			r.Get("/tournaments/{id}", h.Tournaments.Get)
			r.Get("/tournaments/{id}/standings", h.Tournaments.Standings)
			r.Get("/tournaments/{id}/matches", h.Matches.List)
			r.Get("/matches/{id}", h.Matches.Get)
			r.Get("/banks", h.Wallet.Banks)
			r.Post("/payments/verify", h.Wallet.VerifyPayment)

			r.Group(func(r chi.Router) {
				r.Use(auth)

				r.Get("/me", h.Registrations.Profile)
				r.Post("/registrations/join", h.Registrations.Join)
				r.Post("/registrations/{id}/confirm", h.Registrations.ConfirmPartner)

				r.Post("/matches/{id}/score", h.Matches.SubmitScore)
				r.Post("/matches/{id}/verify", h.Matches.Verify)

				r.Get("/wallet/transactions", h.Wallet.Transactions)
				r.Get("/wallet/reconcile", h.Wallet.Reconcile)
				r.Get("/wallet/feed", h.Wallet.Feed)
				r.Post("/wallet/orders", h.Wallet.CreateOrder)
				r.Post("/wallet/withdraw", h.Wallet.Withdraw)
			})

			r.Route("/admin", func(r chi.Router) {
				r.Use(auth)
				r.Use(mW.RequireAdmin)

				r.Post("/tournaments", h.Tournaments.Create)
				r.Put("/tournaments/{id}", h.Tournaments.Edit)
				r.Delete("/tournaments/{id}", h.Tournaments.Delete)
				r.Get("/tournaments/{id}/transactions", h.Tournaments.Transactions)

				r.Post("/registrations", h.Registrations.AdminRegister)
				r.Get("/players", h.Registrations.Players)
				r.Get("/tournament-players/{name}", h.Registrations.TournamentPlayers)

				r.Post("/matches", h.Matches.AdminCreateMatch)
				r.Put("/matches/{id}", h.Matches.AdminEditMatch)
				r.Delete("/matches/{id}", h.Matches.AdminDeleteMatch)
				r.Post("/matches/{id}/verify", h.Matches.AdminVerify)

				r.Post("/wallet/funds", h.Wallet.AddFunds)
				r.Post("/withdrawals/{reference}/complete", h.Wallet.CompleteWithdrawal)
			})
		})
	})

	return r
}
