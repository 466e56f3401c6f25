package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/csrf"
	"github.com/gorilla/sessions"
	"golang.org/x/crypto/bcrypt"

	"github.com/Technomind786/order-management/internal/i18n"
	"github.com/Technomind786/order-management/internal/models"
	"github.com/Technomind786/order-management/internal/store"
)

type AuthHandler struct {
	Store        *store.Store
	SessionStore *sessions.CookieStore
	Templates    *TemplateCache
}

func (h *AuthHandler) LoginForm(w http.ResponseWriter, r *http.Request) {
	tmpl := h.Templates.Get("login.html")
	if tmpl == nil {
		http.Error(w, "Template not found", http.StatusInternalServerError)
		return
	}
	session, _ := h.SessionStore.Get(r, sessionName)
	data := map[string]interface{}{
		"CsrfField": csrf.TemplateField(r),
		"Flashes":   GetFlash(session),
		"Lang":      sessionLang(session),
	}
	session.Save(r, w)
	tmpl.Execute(w, data)
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	session, _ := h.SessionStore.Get(r, sessionName)

	username := r.FormValue("username")
	password := r.FormValue("password")

	user, err := h.Store.GetUserByUsername(username)
	if err != nil {
		session.AddFlash(FlashMessage{Type: "error", Message: "Internal Server Error"})
		session.Save(r, w)
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	if user == nil || bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		session.AddFlash(FlashMessage{Type: "error", Message: "Invalid username or password"})
		session.Save(r, w)
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	session.Values["authenticated"] = true
	session.Values["user_id"] = user.ID
	if err := session.Save(r, w); err != nil {
		slog.Error("Failed to save session", "error", err)
		http.Error(w, "Failed to save session", http.StatusInternalServerError)
		return
	}

	slog.Info("Login successful", "user_id", user.ID, "role", user.Role)
	switch user.Role {
	case models.RoleSales:
		http.Redirect(w, r, "/sales", http.StatusSeeOther)
	case models.RoleProduction:
		http.Redirect(w, r, "/production", http.StatusSeeOther)
	case models.RoleAdmin:
		http.Redirect(w, r, "/admin", http.StatusSeeOther)
	default:
		http.Redirect(w, r, "/", http.StatusSeeOther)
	}
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	session, _ := h.SessionStore.Get(r, sessionName)
	session.Values["authenticated"] = false
	delete(session.Values, "user_id")
	session.Options.MaxAge = -1 // Expire immediately
	session.Save(r, w)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// SetLanguage stores the session language flag and bounces back to the
// page the user came from. Public: the login page carries the switch.
func (h *AuthHandler) SetLanguage(w http.ResponseWriter, r *http.Request) {
	session, _ := h.SessionStore.Get(r, sessionName)
	if lang, ok := i18n.ParseLang(r.PathValue("lang")); ok {
		session.Values["lang"] = string(lang)
		session.Save(r, w)
	}
	target := r.Referer()
	if target == "" {
		target = "/"
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

// RequireAuth loads the session user from the database and threads the
// identity through the request context. Unauthenticated or stale
// sessions redirect to the login page.
func (h *AuthHandler) RequireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, _ := h.SessionStore.Get(r, sessionName)
		auth, ok := session.Values["authenticated"].(bool)
		userID, idOK := session.Values["user_id"].(uint)
		if !ok || !auth || !idOK {
			http.Redirect(w, r, "/", http.StatusSeeOther)
			return
		}

		user, err := h.Store.GetUserByID(userID)
		if err != nil {
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}
		if user == nil {
			// Account deleted since login.
			session.Options.MaxAge = -1
			session.Save(r, w)
			http.Redirect(w, r, "/", http.StatusSeeOther)
			return
		}

		next(w, withIdentity(r, Identity{
			ID:       user.ID,
			Username: user.Username,
			Role:     user.Role,
			Lang:     sessionLang(session),
		}))
	}
}

// RequireRole additionally restricts a route to a single role.
// Violations redirect to the login page.
func (h *AuthHandler) RequireRole(role models.Role, next http.HandlerFunc) http.HandlerFunc {
	return h.RequireAuth(func(w http.ResponseWriter, r *http.Request) {
		identity, _ := CurrentIdentity(r)
		if identity.Role != role {
			http.Redirect(w, r, "/", http.StatusSeeOther)
			return
		}
		next(w, r)
	})
}
