package guard_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/mahimDev/bistro-boss-server/app/guard"
	"github.com/mahimDev/bistro-boss-server/app/models"
	"github.com/mahimDev/bistro-boss-server/app/repositories"
	"github.com/mahimDev/bistro-boss-server/pkg/auth"
	"github.com/mahimDev/bistro-boss-server/pkg/router"
)

// fakeUserStore serves role lookups and counts them.
type fakeUserStore struct {
	users   map[string]models.User
	lookups int
	err     error
}

func (f *fakeUserStore) FindByEmail(_ context.Context, email string) (models.User, error) {
	f.lookups++
	if f.err != nil {
		return models.User{}, f.err
	}
	u, ok := f.users[email]
	if !ok {
		return models.User{}, repositories.ErrNotFound
	}
	return u, nil
}

func (f *fakeUserStore) All(context.Context) ([]models.User, error)        { return nil, nil }
func (f *fakeUserStore) Create(context.Context, *models.User) error        { return nil }
func (f *fakeUserStore) SetRole(context.Context, string, models.Role) error { return nil }
func (f *fakeUserStore) Delete(context.Context, string) error              { return nil }
func (f *fakeUserStore) Count(context.Context) (int64, error)              { return 0, nil }

func adminStore(email string) *fakeUserStore {
	return &fakeUserStore{users: map[string]models.User{
		email: {ID: primitive.NewObjectID(), Email: email, Role: models.RoleAdmin},
	}}
}

func regularStore(email string) *fakeUserStore {
	return &fakeUserStore{users: map[string]models.User{
		email: {ID: primitive.NewObjectID(), Email: email, Role: models.RoleRegular},
	}}
}

// serve mounts handler behind the given guard middleware and performs one
// request with an optional bearer token.
func serve(t *testing.T, path, reqPath, token string, handler http.HandlerFunc, mws ...router.Middleware) *httptest.ResponseRecorder {
	t.Helper()

	r := router.New()
	r.Get(path, "test.route", handler, mws...)

	req := httptest.NewRequest(http.MethodGet, reqPath, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, req)
	return rec
}

func okHandler(called *bool) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		*called = true
		w.WriteHeader(http.StatusOK)
	}
}

func TestAuthenticate_MissingOrMalformedHeader(t *testing.T) {
	g := guard.New(&fakeUserStore{})

	var called bool
	rec := serve(t, "/users", "/users", "", okHandler(&called), g.Authenticate)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("no header: expected 401, got %d", rec.Code)
	}

	r := router.New()
	r.Get("/users", "test.route", okHandler(&called), g.Authenticate)
	req := httptest.NewRequest(http.MethodGet, "/users", nil)
	req.Header.Set("Authorization", "Token abc") // wrong scheme
	w := httptest.NewRecorder()
	r.Handler().ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("wrong scheme: expected 401, got %d", w.Code)
	}

	if called {
		t.Error("handler must not run without a valid token")
	}
}

func TestAuthenticate_InvalidToken(t *testing.T) {
	g := guard.New(&fakeUserStore{})

	var called bool
	rec := serve(t, "/users", "/users", "not-a-jwt", okHandler(&called), g.Authenticate)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", rec.Code)
	}
	if called {
		t.Error("handler must not run with an invalid token")
	}
}

func TestAuthenticate_AttachesPrincipal(t *testing.T) {
	g := guard.New(&fakeUserStore{})
	token, err := auth.IssueToken("diner@example.com", "Diner")
	if err != nil {
		t.Fatal(err)
	}

	var got guard.Principal
	rec := serve(t, "/users", "/users", token, func(w http.ResponseWriter, r *http.Request) {
		got, _ = guard.FromCtx(r.Context())
		w.WriteHeader(http.StatusOK)
	}, g.Authenticate)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if got.Email != "diner@example.com" || got.Name != "Diner" {
		t.Errorf("unexpected principal: %+v", got)
	}
}

func TestRequireAdmin_RegularUserForbidden(t *testing.T) {
	store := regularStore("diner@example.com")
	g := guard.New(store)
	token, _ := auth.IssueToken("diner@example.com", "")

	var called bool
	rec := serve(t, "/admin-stats", "/admin-stats", token, okHandler(&called), g.Authenticate, g.RequireAdmin)
	if rec.Code != http.StatusForbidden {
		t.Errorf("expected 403, got %d", rec.Code)
	}
	if called {
		t.Error("handler must not run for a non-admin")
	}
}

func TestRequireAdmin_UnknownAccountForbidden(t *testing.T) {
	g := guard.New(&fakeUserStore{users: map[string]models.User{}})
	token, _ := auth.IssueToken("ghost@example.com", "")

	var called bool
	rec := serve(t, "/admin-stats", "/admin-stats", token, okHandler(&called), g.Authenticate, g.RequireAdmin)
	if rec.Code != http.StatusForbidden {
		t.Errorf("expected 403 for an account with no record, got %d", rec.Code)
	}
	if called {
		t.Error("handler must not run")
	}
}

func TestRequireAdmin_StoreErrorIs500(t *testing.T) {
	g := guard.New(&fakeUserStore{err: errors.New("store down")})
	token, _ := auth.IssueToken("diner@example.com", "")

	rec := serve(t, "/admin-stats", "/admin-stats", token, okHandler(new(bool)), g.Authenticate, g.RequireAdmin)
	if rec.Code != http.StatusInternalServerError {
		t.Errorf("a store failure must not read as forbidden; expected 500, got %d", rec.Code)
	}
}

func TestRequireAdmin_AdminAllowed(t *testing.T) {
	store := adminStore("boss@example.com")
	g := guard.New(store)
	token, _ := auth.IssueToken("boss@example.com", "")

	var called bool
	rec := serve(t, "/admin-stats", "/admin-stats", token, okHandler(&called), g.Authenticate, g.RequireAdmin)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !called {
		t.Error("handler should have run for an admin")
	}
	if store.lookups != 1 {
		t.Errorf("role must be read from the store exactly once, got %d lookups", store.lookups)
	}
}

func TestRequireSelf(t *testing.T) {
	g := guard.New(&fakeUserStore{})
	token, _ := auth.IssueToken("diner@example.com", "")

	var called bool
	rec := serve(t, "/payment/{email}", "/payment/diner@example.com", token,
		okHandler(&called), g.Authenticate, g.RequireSelf("email"))
	if rec.Code != http.StatusOK || !called {
		t.Errorf("own email: expected 200 and handler run, got %d", rec.Code)
	}

	called = false
	rec = serve(t, "/payment/{email}", "/payment/other@example.com", token,
		okHandler(&called), g.Authenticate, g.RequireSelf("email"))
	if rec.Code != http.StatusForbidden {
		t.Errorf("foreign email: expected 403, got %d", rec.Code)
	}
	if called {
		t.Error("handler must not run for a foreign email")
	}

	// Comparison is exact-string: a case variant is a different identity.
	called = false
	rec = serve(t, "/payment/{email}", "/payment/Diner@example.com", token,
		okHandler(&called), g.Authenticate, g.RequireSelf("email"))
	if rec.Code != http.StatusForbidden {
		t.Errorf("case variant: expected 403, got %d", rec.Code)
	}
}
