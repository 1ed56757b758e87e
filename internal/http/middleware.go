package httpx

import (
	"log/slog"
	"net"
	"net/http"
	"runtime/debug"
	"strings"
	"time"

	"github.com/openfest/festival-ui-api/internal/domain/access"
	"github.com/openfest/festival-ui-api/internal/observability/statsd"
)

// SessionCookieName is the cookie carrying the opaque session identifier.
const SessionCookieName = "session_id"

// Logging returns a middleware that logs HTTP requests and responses.
func Logging(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			const defaultHTTPStatus = 200
			ww := &respWriter{ResponseWriter: w, status: defaultHTTPStatus}
			next.ServeHTTP(ww, r)
			logger.Info("http",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Int("status", ww.status),
				slog.Duration("duration", time.Since(start)),
			)
		})
	}
}

type respWriter struct {
	http.ResponseWriter
	status int
}

func (w *respWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

// Recover returns a middleware that recovers from panics and logs them.
func Recover(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					logger.Error("panic",
						slog.Any("error", err),
						slog.String("path", r.URL.Path),
						slog.String("method", r.Method),
						slog.String("stack", string(debug.Stack())))
					http.Error(w, "Internal Server Error", http.StatusInternalServerError)
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// HasSessionCookie reports whether the request carries a session cookie.
// Presence only: no signature or claim verification happens here.
func HasSessionCookie(r *http.Request) bool {
	c, err := r.Cookie(SessionCookieName)
	return err == nil && c.Value != ""
}

// SessionIDFromRequest returns the session ID from the request cookie, or ""
// when absent.
func SessionIDFromRequest(r *http.Request) string {
	c, err := r.Cookie(SessionCookieName)
	if err != nil {
		return ""
	}
	return c.Value
}

// EdgeFilterConfig configures the edge filter middleware.
type EdgeFilterConfig struct {
	// DefaultDeny treats unlisted non-public paths as protected pages.
	DefaultDeny bool

	// Metrics receives a counter per turned-away request. Optional.
	Metrics statsd.Sink
}

// EdgeFilter returns the first-line request gate. It runs before every
// handler and applies the shared edge rule: public paths pass, a present
// session cookie passes (full verification happens in the guards), and
// everything else is turned away: protected APIs with a structured 401,
// protected pages with a redirect to login carrying the original
// destination. It costs no session-store round trip.
func EdgeFilter(cfg EdgeFilterConfig) func(http.Handler) http.Handler {
	opts := access.Options{DefaultDeny: cfg.DefaultDeny}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			decision := access.EvaluateEdgeWith(r.URL.Path, r.URL.RawQuery, HasSessionCookie(r), opts)
			switch decision.Kind {
			case access.KindDeny:
				setAuditHeaders(w, r)
				countUnauthorized(cfg.Metrics, "api")
				WriteJSON(w, http.StatusUnauthorized, map[string]string{"error": decision.Reason})
			case access.KindRedirect:
				setAuditHeaders(w, r)
				countUnauthorized(cfg.Metrics, "page")
				http.Redirect(w, r, decision.Location, http.StatusSeeOther)
			default:
				next.ServeHTTP(w, r)
			}
		})
	}
}

func countUnauthorized(sink statsd.Sink, surface string) {
	if sink == nil {
		return
	}
	sink.Count("edge.unauthorized", 1, map[string]string{"surface": surface})
}

// setAuditHeaders records an unauthorized attempt for the external audit
// collaborator. Observability hook only; it carries no authorization weight
// and this layer writes no logs itself.
func setAuditHeaders(w http.ResponseWriter, r *http.Request) {
	h := w.Header()
	h.Set("X-Unauthorized-Attempt", "true")
	h.Set("X-Attempted-Path", r.URL.Path)
	h.Set("X-Client-Ip", clientIP(r))
	h.Set("X-User-Agent", r.UserAgent())
}

// clientIP returns the originating client address, preferring the first
// X-Forwarded-For hop when present.
func clientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		if idx := strings.IndexByte(fwd, ','); idx >= 0 {
			return strings.TrimSpace(fwd[:idx])
		}
		return strings.TrimSpace(fwd)
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
