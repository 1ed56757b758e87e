package httpx

import (
	"io"
	"log/slog"
	"net/http"

	"github.com/openfest/festival-ui-api/internal/domain/access"
	"github.com/openfest/festival-ui-api/internal/ports"
)

// RouterServices holds all the services needed by the HTTP router.
type RouterServices struct {
	Auth         AuthServiceInterface
	Guards       GuardsInterface
	Users        ports.UserDirectory
	CookieDomain string
	// DefaultDeny treats unlisted non-public paths as protected pages at the
	// edge instead of passing them through.
	DefaultDeny bool
	Logger      *slog.Logger // Logger for HTTP errors (optional)
}

// NewRouter creates and configures a new HTTP router wrapped in the edge
// filter. Route policy for pages comes from the shared policy table, so the
// registered page prefixes always match what the edge filter and the
// revalidation endpoint enforce.
func NewRouter(services RouterServices) http.Handler {
	return NewRouterWithEdge(services, EdgeFilterConfig{DefaultDeny: services.DefaultDeny})
}

// NewRouterWithEdge is NewRouter with an explicit edge filter configuration,
// used when the caller wires a metrics sink.
func NewRouterWithEdge(services RouterServices, edge EdgeFilterConfig) http.Handler {
	mux := http.NewServeMux()

	authHandlers := &AuthHandlers{
		Svc:          services.Auth,
		CookieDomain: services.CookieDomain,
		Logger:       services.Logger,
	}
	sessionHandlers := &SessionHandlers{
		Guards: services.Guards,
		Users:  services.Users,
		Logger: services.Logger,
	}
	pageHandlers := &PageHandlers{
		Guards: services.Guards,
		Logger: services.Logger,
	}

	mux.Handle("GET /healthz", http.HandlerFunc(healthHandler))
	mux.Handle("HEAD /healthz", http.HandlerFunc(healthHandler))

	registerAuthRoutes(mux, authHandlers)
	registerSessionRoutes(mux, sessionHandlers)
	registerPageRoutes(mux, pageHandlers)

	return EdgeFilter(edge)(mux)
}

func registerAuthRoutes(mux *http.ServeMux, h *AuthHandlers) {
	mux.HandleFunc("GET "+access.LoginPath, h.Login)
	mux.HandleFunc("GET /auth/callback", h.Callback)
	mux.HandleFunc("POST /auth/logout", h.Logout)
	mux.HandleFunc("GET /auth/status", h.Status)
}

func registerSessionRoutes(mux *http.ServeMux, h *SessionHandlers) {
	mux.HandleFunc("GET "+access.PrivateAPIPrefix+"/session", h.Session)
	mux.HandleFunc("GET "+access.PrivateAPIPrefix+"/route-access", h.RouteAccess)
	mux.HandleFunc("GET "+access.PrivateAPIPrefix+"/admin/users", h.AdminUsers)
}

func registerPageRoutes(mux *http.ServeMux, h *PageHandlers) {
	for _, policy := range access.RoutePolicies() {
		// Exact match plus the whole subtree under the prefix.
		mux.HandleFunc("GET "+policy.Prefix, h.Protected)
		mux.HandleFunc("GET "+policy.Prefix+"/", h.Protected)
	}
}

const healthResponse = `{"status":"ok"}`

// healthHandler returns a simple 200 OK status for readiness/liveness checks.
func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if r.Method == http.MethodHead {
		return
	}
	if _, err := io.WriteString(w, healthResponse); err != nil {
		// Nothing more to do if the client connection is gone.
		return
	}
}
