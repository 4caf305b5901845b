package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/greyfield/scholarly/internal/collab/service"
	"github.com/greyfield/scholarly/internal/collab/store"
	"github.com/greyfield/scholarly/pkg/httpx"
	"github.com/greyfield/scholarly/pkg/jwtx"
	"github.com/greyfield/scholarly/pkg/slogx"

	_ "github.com/greyfield/scholarly/api/collab" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	verifier     jwtx.Verifier
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger

	store             store.Store
	InvitationService *service.InvitationService
	VersionService    *service.VersionService
}

func NewRouter(
	verifier jwtx.Verifier,
	buildVersion string,
	st store.Store,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		verifier:     verifier,
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		logger:       logger,
	}

	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerInvitations()
	r.registerVersions()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			Scholarly Collaboration Service API
//	@version		0.1.0
//	@description	Collaboration invitations and document version history for the research portal. Invitees are matched by ORCID iD or email; document versions form an append-only history with gapless numbering.
//
//	@contact.name				Greyfield Research Platform Team
//	@contact.url				https://github.com/greyfield/scholarly
//
//	@license.name				MIT
//	@license.url				https://opensource.org/licenses/MIT
//
//	@host						localhost:8080
//	@BasePath					/
//
//	@schemes					http https
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				JWT access token. Format: "Bearer {token}".
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) registerInvitations() {
	h := &InvitationsHandler{InvitationService: r.InvitationService}

	// POST - strict rate limit by account: each create can fan out mail
	securedCreate := httpx.Chain(http.HandlerFunc(h.HandleCreate),
		httpx.AuthnMiddleware(r.verifier),
		httpx.RequireAnyScope("collab:write"),
		httpx.RateLimitByAccount(httpx.StrictLimit),
	)

	securedList := httpx.Chain(http.HandlerFunc(h.HandleList),
		httpx.AuthnMiddleware(r.verifier),
		httpx.RequireAnyScope("collab:read", "collab:write"),
		httpx.RateLimitByAccount(httpx.LenientLimit),
	)

	r.Mux.Handle("POST /v1/documents/{id}/invitations", securedCreate)
	r.Mux.Handle("GET /v1/documents/{id}/invitations", securedList)
}

func (r *Router) registerVersions() {
	h := &VersionsHandler{VersionService: r.VersionService}

	securedCreate := httpx.Chain(http.HandlerFunc(h.HandleCreate),
		httpx.AuthnMiddleware(r.verifier),
		httpx.RequireAnyScope("collab:write"),
		httpx.RateLimitByAccount(httpx.ModerateLimit),
	)

	securedList := httpx.Chain(http.HandlerFunc(h.HandleList),
		httpx.AuthnMiddleware(r.verifier),
		httpx.RequireAnyScope("collab:read", "collab:write"),
		httpx.RateLimitByAccount(httpx.LenientLimit),
	)

	securedGet := httpx.Chain(http.HandlerFunc(h.HandleGet),
		httpx.AuthnMiddleware(r.verifier),
		httpx.RequireAnyScope("collab:read", "collab:write"),
		httpx.RateLimitByAccount(httpx.LenientLimit),
	)

	securedRestore := httpx.Chain(http.HandlerFunc(h.HandleRestore),
		httpx.AuthnMiddleware(r.verifier),
		httpx.RequireAnyScope("collab:write"),
		httpx.RateLimitByAccount(httpx.ModerateLimit),
	)

	r.Mux.Handle("POST /v1/documents/{id}/versions", securedCreate)
	r.Mux.Handle("GET /v1/documents/{id}/versions", securedList)
	r.Mux.Handle("GET /v1/documents/{id}/versions/{versionID}", securedGet)
	r.Mux.Handle("POST /v1/documents/{id}/versions/{versionID}/restore", securedRestore)
}

func (r *Router) registerSystem() {
	// Monitoring systems poll these frequently, keep the limits lenient.
	r.Mux.Handle("GET /livez",
		httpx.Chain(LivezHandler(r.startTime, r.buildVersion),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("GET /readyz",
		httpx.Chain(ReadyzHandler(r.startTime, r.buildVersion, r.store),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
}
