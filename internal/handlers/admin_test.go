package handlers_test

import (
	"io"
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/Technomind786/order-management/internal/models"
)

func TestAdminCreateUser(t *testing.T) {
	env := newTestEnv(t)
	env.addUser(t, "admin", "secret", models.RoleAdmin)
	env.login(t, "admin", "secret", "/admin")

	resp := env.postForm(t, "/admin", url.Values{
		"username": {"sales9"},
		"password": {"pass123"},
		"role":     {"sales"},
	})
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	require.Equal(t, "/admin", resp.Header.Get("Location"))

	user, err := env.Store.GetUserByUsername("sales9")
	require.NoError(t, err)
	require.NotNil(t, user)
	require.Equal(t, models.RoleSales, user.Role)
	require.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("pass123")))
}

func TestAdminCreateUserDuplicateRejected(t *testing.T) {
	env := newTestEnv(t)
	env.addUser(t, "admin", "secret", models.RoleAdmin)
	env.addUser(t, "sales1", "secret", models.RoleSales)
	env.login(t, "admin", "secret", "/admin")

	resp := env.postForm(t, "/admin", url.Values{
		"username": {"sales1"},
		"password": {"pass123"},
		"role":     {"sales"},
	})
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)

	users, err := env.Store.ListUsers()
	require.NoError(t, err)
	require.Len(t, users, 2)

	page := env.get(t, "/admin")
	require.Equal(t, http.StatusOK, page.StatusCode)
	body, err := io.ReadAll(page.Body)
	require.NoError(t, err)
	require.Contains(t, string(body), "Username already exists")
}

func TestAdminCreateUserInvalidRoleRejected(t *testing.T) {
	env := newTestEnv(t)
	env.addUser(t, "admin", "secret", models.RoleAdmin)
	env.login(t, "admin", "secret", "/admin")

	resp := env.postForm(t, "/admin", url.Values{
		"username": {"intruder"},
		"password": {"pass123"},
		"role":     {"superuser"},
	})
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)

	user, err := env.Store.GetUserByUsername("intruder")
	require.NoError(t, err)
	require.Nil(t, user)
}

func TestAdminEditUser(t *testing.T) {
	env := newTestEnv(t)
	env.addUser(t, "admin", "secret", models.RoleAdmin)
	target := env.addUser(t, "sales1", "secret", models.RoleSales)
	env.login(t, "admin", "secret", "/admin")

	originalHash := target.Password

	// Blank password keeps the current hash.
	resp := env.postForm(t, "/edit_user/" + itoa(target.ID), url.Values{
		"username": {"sales1renamed"},
		"role":     {"production"},
		"password": {""},
	})
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	require.Equal(t, "/admin", resp.Header.Get("Location"))

	updated, err := env.Store.GetUserByID(target.ID)
	require.NoError(t, err)
	require.Equal(t, "sales1renamed", updated.Username)
	require.Equal(t, models.RoleProduction, updated.Role)
	require.Equal(t, originalHash, updated.Password)

	// A new password re-hashes.
	resp = env.postForm(t, "/edit_user/" + itoa(target.ID), url.Values{
		"username": {"sales1renamed"},
		"role":     {"production"},
		"password": {"fresh"},
	})
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)

	updated, err = env.Store.GetUserByID(target.ID)
	require.NoError(t, err)
	require.NoError(t, bcrypt.CompareHashAndPassword([]byte(updated.Password), []byte("fresh")))
}

func TestAdminEditUserRenameConflictRejected(t *testing.T) {
	env := newTestEnv(t)
	env.addUser(t, "admin", "secret", models.RoleAdmin)
	env.addUser(t, "sales1", "secret", models.RoleSales)
	target := env.addUser(t, "sales2", "secret", models.RoleSales)
	env.login(t, "admin", "secret", "/admin")

	resp := env.postForm(t, "/edit_user/" + itoa(target.ID), url.Values{
		"username": {"sales1"},
		"role":     {"sales"},
	})
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)

	unchanged, err := env.Store.GetUserByID(target.ID)
	require.NoError(t, err)
	require.Equal(t, "sales2", unchanged.Username)
}

func TestAdminCannotDeleteSelf(t *testing.T) {
	env := newTestEnv(t)
	admin := env.addUser(t, "admin", "secret", models.RoleAdmin)
	env.login(t, "admin", "secret", "/admin")

	resp := env.get(t, "/delete_user/" + itoa(admin.ID))
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	require.Equal(t, "/admin", resp.Header.Get("Location"))

	still, err := env.Store.GetUserByID(admin.ID)
	require.NoError(t, err)
	require.NotNil(t, still)
}

func TestAdminDeleteOtherUser(t *testing.T) {
	env := newTestEnv(t)
	env.addUser(t, "admin", "secret", models.RoleAdmin)
	target := env.addUser(t, "sales1", "secret", models.RoleSales)
	env.login(t, "admin", "secret", "/admin")

	resp := env.get(t, "/delete_user/" + itoa(target.ID))
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)

	gone, err := env.Store.GetUserByID(target.ID)
	require.NoError(t, err)
	require.Nil(t, gone)

	users, err := env.Store.ListUsers()
	require.NoError(t, err)
	require.Len(t, users, 1)
}

func TestDeleteMissingUser(t *testing.T) {
	env := newTestEnv(t)
	env.addUser(t, "admin", "secret", models.RoleAdmin)
	env.login(t, "admin", "secret", "/admin")

	resp := env.get(t, "/delete_user/999")
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
}
