package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"insurance-portal/internal/config"
	"insurance-portal/internal/handler"
	"insurance-portal/internal/middleware"
)

type Handlers struct {
	Auth   *handler.AuthHandler
	Claim  *handler.ClaimHandler
	Policy *handler.PolicyHandler
	Chat   *handler.ChatHandler
	Admin  *handler.AdminHandler
}

func New(cfg *config.Config, authMiddleware *middleware.AuthMiddleware, h Handlers) http.Handler {
	r := chi.NewRouter()
	rateLimitMiddleware := middleware.NewRateLimitMiddleware(cfg.RateLimitRPM, cfg.AuthRateLimitRPM)

	r.Use(middleware.Recovery)
	r.Use(middleware.Logging)
	r.Use(middleware.CORS(cfg.CORSOrigins))
	r.Use(middleware.SecurityHeaders)
	r.Use(rateLimitMiddleware.Handler)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Route("/api/v1", func(api chi.Router) {
		api.Use(middleware.Timeout(cfg.RequestTimeout))

		api.Route("/auth", func(auth chi.Router) {
			auth.Post("/login", h.Auth.Login)
			auth.Post("/register", h.Auth.Register)
			auth.With(authMiddleware.RequireAuth).Get("/me", h.Auth.Me)
		})

		api.With(authMiddleware.RequireAuth).Post("/claims", h.Claim.Submit)
		api.With(authMiddleware.RequireAuth).Post("/claims/status", h.Claim.Status)
		api.With(authMiddleware.RequireAuth).Get("/claims", h.Claim.List)
		api.With(authMiddleware.RequireAuth).Get("/policy/user", h.Policy.UserPolicy)
		api.With(authMiddleware.RequireAuth).Post("/chat", h.Chat.Send)
		api.With(authMiddleware.RequireAuth, authMiddleware.RequireRoles("admin")).Post("/admin/documents", h.Admin.UploadDocument)
	})

	return r
}
