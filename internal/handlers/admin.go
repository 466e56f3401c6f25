package handlers

import (
	"net/http"
	"strconv"

	"github.com/gorilla/csrf"
	"github.com/gorilla/sessions"
	"golang.org/x/crypto/bcrypt"

	"github.com/Technomind786/order-management/internal/models"
	"github.com/Technomind786/order-management/internal/store"
)

type AdminHandler struct {
	Store        *store.Store
	SessionStore *sessions.CookieStore
	Templates    *TemplateCache
}

func (h *AdminHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	users, err := h.Store.ListUsers()
	if err != nil {
		http.Error(w, "Error fetching users", http.StatusInternalServerError)
		return
	}

	tmpl := h.Templates.Get("admin_dashboard.html")
	if tmpl == nil {
		http.Error(w, "Template not found", http.StatusInternalServerError)
		return
	}
	identity, _ := CurrentIdentity(r)
	session, _ := h.SessionStore.Get(r, sessionName)
	data := map[string]interface{}{
		"Users":     users,
		"CsrfField": csrf.TemplateField(r),
		"Identity":  identity,
		"Lang":      identity.Lang,
		"Flashes":   GetFlash(session),
	}
	session.Save(r, w)
	tmpl.Execute(w, data)
}

func (h *AdminHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	session, _ := h.SessionStore.Get(r, sessionName)

	username := r.FormValue("username")
	password := r.FormValue("password")
	role, roleOK := models.ParseRole(r.FormValue("role"))

	if username == "" || password == "" || !roleOK {
		flashRedirect(w, r, session, FlashMessage{Type: "error", Message: "Username, password and a valid role are required."}, "/admin")
		return
	}

	taken, err := h.Store.UsernameTaken(username, 0)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	if taken {
		flashRedirect(w, r, session, FlashMessage{Type: "error", Message: "Username already exists"}, "/admin")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	user := &models.User{Username: username, Password: string(hash), Role: role}
	if err := h.Store.CreateUser(user); err != nil {
		flashRedirect(w, r, session, FlashMessage{Type: "error", Message: "Failed to create user."}, "/admin")
		return
	}

	flashRedirect(w, r, session, FlashMessage{Type: "success", Message: "User " + username + " created."}, "/admin")
}

func (h *AdminHandler) getUser(w http.ResponseWriter, r *http.Request) *models.User {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		http.Error(w, "Invalid user ID", http.StatusBadRequest)
		return nil
	}
	user, err := h.Store.GetUserByID(uint(id))
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return nil
	}
	if user == nil {
		http.NotFound(w, r)
		return nil
	}
	return user
}

func (h *AdminHandler) EditUserForm(w http.ResponseWriter, r *http.Request) {
	user := h.getUser(w, r)
	if user == nil {
		return
	}

	tmpl := h.Templates.Get("edit_user.html")
	if tmpl == nil {
		http.Error(w, "Template not found", http.StatusInternalServerError)
		return
	}
	identity, _ := CurrentIdentity(r)
	session, _ := h.SessionStore.Get(r, sessionName)
	data := map[string]interface{}{
		"User":      user,
		"CsrfField": csrf.TemplateField(r),
		"Identity":  identity,
		"Lang":      identity.Lang,
		"Flashes":   GetFlash(session),
	}
	session.Save(r, w)
	tmpl.Execute(w, data)
}

func (h *AdminHandler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	user := h.getUser(w, r)
	if user == nil {
		return
	}

	session, _ := h.SessionStore.Get(r, sessionName)

	username := r.FormValue("username")
	role, roleOK := models.ParseRole(r.FormValue("role"))
	if username == "" || !roleOK {
		flashRedirect(w, r, session, FlashMessage{Type: "error", Message: "Username and a valid role are required."}, r.URL.Path)
		return
	}

	taken, err := h.Store.UsernameTaken(username, user.ID)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	if taken {
		flashRedirect(w, r, session, FlashMessage{Type: "error", Message: "Username already exists"}, r.URL.Path)
		return
	}

	user.Username = username
	user.Role = role

	// Blank password leaves the current one unchanged.
	if password := r.FormValue("password"); password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}
		user.Password = string(hash)
	}

	if err := h.Store.UpdateUser(user); err != nil {
		flashRedirect(w, r, session, FlashMessage{Type: "error", Message: "Failed to update user."}, r.URL.Path)
		return
	}

	flashRedirect(w, r, session, FlashMessage{Type: "success", Message: "User " + username + " updated."}, "/admin")
}

func (h *AdminHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	user := h.getUser(w, r)
	if user == nil {
		return
	}

	session, _ := h.SessionStore.Get(r, sessionName)

	identity, _ := CurrentIdentity(r)
	if user.ID == identity.ID {
		flashRedirect(w, r, session, FlashMessage{Type: "error", Message: "You cannot delete your own account."}, "/admin")
		return
	}

	if err := h.Store.DeleteUser(user.ID); err != nil {
		flashRedirect(w, r, session, FlashMessage{Type: "error", Message: "Failed to delete user."}, "/admin")
		return
	}

	flashRedirect(w, r, session, FlashMessage{Type: "success", Message: "User " + user.Username + " deleted."}, "/admin")
}
