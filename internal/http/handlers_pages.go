package httpx

import (
	"bytes"
	"html/template"
	"log/slog"
	"net/http"
	"strings"

	"github.com/openfest/festival-ui-api/internal/domain/access"
	domainauth "github.com/openfest/festival-ui-api/internal/domain/auth"
)

// shellTemplate is the server-rendered application shell. The browser app
// takes over rendering after load; the server's job here is access control
// and handing over the resolved identity.
var shellTemplate = template.Must(template.New("shell").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="utf-8">
  <meta name="viewport" content="width=device-width, initial-scale=1">
  <title>{{.Title}}</title>
</head>
<body>
  <div id="app"
    data-user-id="{{.UserID}}"
    data-user-name="{{.UserName}}"
    data-role="{{.Role}}"
    data-path="{{.Path}}"></div>
</body>
</html>
`))

type shellData struct {
	Title    string
	UserID   string
	UserName string
	Role     string
	Path     string
}

// PageHandlers serves the protected application pages. Every request passing
// through here has already survived the edge filter's cheap cookie check;
// this layer performs the real session resolution and role comparison.
type PageHandlers struct {
	Guards GuardsInterface
	Logger *slog.Logger
}

func (h *PageHandlers) logger() *slog.Logger {
	if h != nil && h.Logger != nil {
		return h.Logger
	}
	return slog.Default()
}

// Protected guards and serves a protected page. The role requirement comes
// from the route policy table, so pages and the revalidation API can never
// disagree about who may see what.
func (h *PageHandlers) Protected(w http.ResponseWriter, r *http.Request) {
	req, ok := access.RequirementForPath(r.URL.Path)
	if !ok {
		// Registered route with no policy entry; require a session at minimum.
		req = domainauth.RequireAuthenticated
	}

	grant, err := h.Guards.Require(r.Context(), SessionIDFromRequest(r), req)
	if err != nil {
		RedirectGuardError(w, r, err)
		return
	}

	r = r.WithContext(SetGrantInContext(r.Context(), &GrantInfo{
		Session: grant.Session,
		User:    grant.User,
		Role:    grant.Role,
	}))
	h.renderShell(w, r, grant.User, grant.Role)
}

func (h *PageHandlers) renderShell(w http.ResponseWriter, r *http.Request, user domainauth.User, role domainauth.Role) {
	data := shellData{
		Title:    pageTitle(r.URL.Path),
		UserID:   user.ID,
		UserName: strings.TrimSpace(user.FirstName + " " + user.LastName),
		Role:     string(role),
		Path:     r.URL.Path,
	}

	// Render to a buffer first so a template failure yields a clean 500
	// instead of a half-written page.
	var buf bytes.Buffer
	if err := shellTemplate.Execute(&buf, data); err != nil {
		h.logger().ErrorContext(r.Context(), "render page shell", "error", err, "path", r.URL.Path)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	_, _ = buf.WriteTo(w)
}

// pageTitle derives a human title from the first path segment.
func pageTitle(path string) string {
	seg := strings.TrimPrefix(path, "/")
	if i := strings.IndexByte(seg, '/'); i >= 0 {
		seg = seg[:i]
	}
	if seg == "" {
		return "Festival"
	}
	return "Festival | " + strings.ToUpper(seg[:1]) + seg[1:]
}
