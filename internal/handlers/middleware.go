package handlers

import (
	"context"
	"encoding/gob"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/sessions"

	"github.com/Technomind786/order-management/internal/i18n"
	"github.com/Technomind786/order-management/internal/models"
)

// sessionName is the single cookie session carrying authentication,
// language preference and flash messages.
const sessionName = "order-session"

// Register types for gob encoding (used by sessions)
func init() {
	gob.Register(FlashMessage{})
}

// Identity is the authenticated caller, loaded once per request by the
// auth middleware and threaded through the request context.
type Identity struct {
	ID       uint
	Username string
	Role     models.Role
	Lang     i18n.Lang
}

type contextKey int

const identityKey contextKey = iota

// CurrentIdentity returns the authenticated identity placed on the
// request by RequireAuth.
func CurrentIdentity(r *http.Request) (Identity, bool) {
	id, ok := r.Context().Value(identityKey).(Identity)
	return id, ok
}

func withIdentity(r *http.Request, id Identity) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), identityKey, id))
}

// sessionLang reads the session language flag, defaulting to English.
func sessionLang(session *sessions.Session) i18n.Lang {
	if raw, ok := session.Values["lang"].(string); ok {
		if lang, ok := i18n.ParseLang(raw); ok {
			return lang
		}
	}
	return i18n.LangEnglish
}

// LoggingMiddleware logs the details of each HTTP request
func LoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		// Wrap ResponseWriter to capture status code
		ww := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(ww, r)
		slog.Info("HTTP Request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.statusCode,
			"duration", time.Since(start),
			"ip", r.RemoteAddr,
		)
	})
}

type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// SecurityHeadersMiddleware adds standard security headers
func SecurityHeadersMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Content-Security-Policy", "default-src 'self'; style-src 'self' 'unsafe-inline'")
		next.ServeHTTP(w, r)
	})
}

// FlashMessage structure
type FlashMessage struct {
	Type    string
	Message string
}

// flashRedirect queues a flash and saves the session before the
// redirect writes headers; saving any later would drop the Set-Cookie.
func flashRedirect(w http.ResponseWriter, r *http.Request, session *sessions.Session, fm FlashMessage, target string) {
	session.AddFlash(fm)
	session.Save(r, w)
	http.Redirect(w, r, target, http.StatusSeeOther)
}

// GetFlash retrieves flash messages from the session
func GetFlash(session *sessions.Session) []FlashMessage {
	flashes := session.Flashes()
	var messages []FlashMessage
	for _, f := range flashes {
		if fm, ok := f.(FlashMessage); ok {
			messages = append(messages, fm)
		}
	}
	return messages
}
