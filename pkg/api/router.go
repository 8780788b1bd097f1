package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/jwtauth/v5"
	"go.uber.org/zap"
)

// NewRouter wires the portal's routes. Reads are public; everything
// that mutates state requires a valid token.
func NewRouter(server *Server, hub *Hub, jwtAuth *jwtauth.JWTAuth, logger *zap.Logger) *chi.Mux {
	router := chi.NewRouter()

	router.Use(chiMiddleware.Logger)
	router.Use(chiMiddleware.Recoverer)
	router.Use(jwtauth.Verifier(jwtAuth))
	router.Use(AddMemberToContext())

	// Public routes
	router.Post("/api/auth/login", server.LoginHandler)
	router.Get("/api/members", server.ListMembersHandler)
	router.Get("/api/schedule/{track}", server.GetScheduleHandler)
	router.Get("/api/schedule/{track}/export", server.ExportScheduleHandler)
	router.Get("/api/quicklinks", server.ListQuickLinksHandler)
	router.Get("/api/plugins", server.ListPluginsHandler)
	router.Get("/api/settings", server.ListSettingsHandler)
	router.Get("/api/components/{component}/health", server.ComponentHealthHandler)
	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		RespondWithJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	router.Group(func(r chi.Router) {
		r.Use(jwtauth.Authenticator(jwtAuth))

		r.Get("/ws", WebSocketHandler(hub, logger))

		r.Post("/api/members", server.CreateMemberHandler)
		r.Delete("/api/members/{id}", server.DeleteMemberHandler)

		r.Put("/api/schedule/{track}", server.PutScheduleHandler)
		r.Post("/api/schedule/{track}/import", server.ImportScheduleHandler)

		r.Post("/api/quicklinks", server.CreateQuickLinkHandler)
		r.Delete("/api/quicklinks/{id}", server.DeleteQuickLinkHandler)

		r.Patch("/api/plugins/{id}/enabled", server.SetPluginEnabledHandler)
		r.Put("/api/settings/{key}", server.PutSettingHandler)
	})

	return router
}
