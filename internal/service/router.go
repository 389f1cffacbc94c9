package service

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/splitpot/splitpot/internal/auth"
	"github.com/splitpot/splitpot/internal/metrics"
	"github.com/splitpot/splitpot/internal/middleware"
	"github.com/splitpot/splitpot/internal/storage"
)

// RouterConfig carries the dependencies the HTTP API needs.
type RouterConfig struct {
	Store         storage.Store
	Authenticator auth.Authenticator
	JWTManager    *auth.JWTManager
	Collector     *metrics.Collector
	Gatherer      prometheus.Gatherer
	RateLimiter   *middleware.RateLimiter
}

// NewRouter assembles the full HTTP API.
//
// Register and login are public; everything else requires a Bearer token.
// The rate limiter sits inside the authenticated group so it can key by
// user ID.
func NewRouter(cfg RouterConfig) http.Handler {
	authService := NewAuthService(cfg.Authenticator, cfg.JWTManager)
	groupService := NewGroupService(cfg.Store)
	expenseService := NewExpenseService(cfg.Store, cfg.Collector)
	inviteService := NewInviteService(cfg.Store, cfg.Collector)

	r := chi.NewRouter()
	r.Use(middleware.Logging)
	r.Use(middleware.CORS)
	r.Use(middleware.Metrics(cfg.Collector))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Method(http.MethodGet, "/metrics", metrics.Handler(cfg.Gatherer))

	r.Route("/api", func(r chi.Router) {
		r.Post("/register", authService.Register)
		r.Post("/login", authService.Login)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth(cfg.JWTManager))
			r.Use(cfg.RateLimiter.Middleware())

			r.Post("/groups", groupService.Create)
			r.Get("/groups", groupService.List)
			r.Post("/groups/{groupID}/members", groupService.AddMember)
			r.Get("/groups/{groupID}/members", groupService.Members)
			r.Get("/groups/{groupID}/expenses", expenseService.ListForGroup)
			r.Get("/groups/{groupID}/summary", groupService.Summary)
			r.Get("/groups/{groupID}/categories", groupService.CategorySummary)

			r.Post("/expenses", expenseService.Create)
			r.Get("/categories", expenseService.Categories)

			r.Post("/invites", inviteService.Create)
			r.Get("/invites/sent", inviteService.ListSent)
			r.Get("/invites/received", inviteService.ListReceived)
			r.Post("/invites/{inviteID}/accept", inviteService.Accept)
			r.Post("/invites/{inviteID}/reject", inviteService.Reject)
			r.Post("/invites/{inviteID}/revoke", inviteService.Revoke)
		})
	})

	return r
}
