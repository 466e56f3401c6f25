package handlers_test

import (
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/sessions"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/Technomind786/order-management/internal/handlers"
	"github.com/Technomind786/order-management/internal/models"
	"github.com/Technomind786/order-management/internal/store"
)

type testEnv struct {
	Server *httptest.Server
	Store  *store.Store
	Client *http.Client
}

// newTestEnv boots the full router over an in-memory database. The
// client carries a cookie jar so session-based flows behave like a
// browser, but never follows redirects so each response's Location can
// be asserted directly.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := store.NewStore(":memory:")
	require.NoError(t, err)
	require.NoError(t, db.Migrate())

	sessionStore := sessions.NewCookieStore([]byte("test-session-key-0123456789abcdef"))
	sessionStore.Options.Path = "/"
	// httptest serves plain HTTP; a Secure cookie would never come back.
	sessionStore.Options.Secure = false
	sessionStore.Options.SameSite = http.SameSiteLaxMode

	templates := handlers.NewTemplateCache()
	require.NoError(t, templates.Load("../../templates"))

	auth := &handlers.AuthHandler{Store: db, SessionStore: sessionStore, Templates: templates}
	orders := &handlers.OrderHandler{Store: db, SessionStore: sessionStore, Templates: templates}
	production := &handlers.ProductionHandler{Store: db, SessionStore: sessionStore, Templates: templates}
	admin := &handlers.AdminHandler{Store: db, SessionStore: sessionStore, Templates: templates}

	srv := httptest.NewServer(handlers.NewRouter(auth, orders, production, admin))
	t.Cleanup(srv.Close)

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)

	return &testEnv{
		Server: srv,
		Store:  db,
		Client: &http.Client{
			Jar: jar,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
	}
}

func (e *testEnv) addUser(t *testing.T, username, password string, role models.Role) *models.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	user := &models.User{Username: username, Password: string(hash), Role: role}
	require.NoError(t, e.Store.CreateUser(user))
	return user
}

func (e *testEnv) get(t *testing.T, path string) *http.Response {
	t.Helper()
	resp, err := e.Client.Get(e.Server.URL + path)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func (e *testEnv) postForm(t *testing.T, path string, form url.Values) *http.Response {
	t.Helper()
	resp, err := e.Client.Post(e.Server.URL+path, "application/x-www-form-urlencoded", strings.NewReader(form.Encode()))
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

// login posts credentials and asserts the role-based redirect target.
func (e *testEnv) login(t *testing.T, username, password, wantLocation string) {
	t.Helper()
	resp := e.postForm(t, "/", url.Values{
		"username": {username},
		"password": {password},
	})
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	require.Equal(t, wantLocation, resp.Header.Get("Location"))
}

func itoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}

func (e *testEnv) makeOrder(t *testing.T, salesPerson string, dispatch time.Time, items []models.OrderItem) *models.Order {
	t.Helper()
	order := &models.Order{
		CustomerName:  "Acme",
		PlaceOfSupply: "Delhi",
		OrderDate:     time.Now().UTC(),
		DispatchDate:  dispatch,
		SalesPerson:   salesPerson,
		Status:        models.StatusPending,
	}
	require.NoError(t, e.Store.CreateOrder(order, items))
	return order
}
