package router_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mahimDev/bistro-boss-server/pkg/router"
)

func TestNamedRoutesAndURL(t *testing.T) {
	r := router.New()
	r.Get("/payment/{email}", "payments.history", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	path, ok := r.Path("payments.history")
	if !ok || path != "/payment/{email}" {
		t.Errorf("Path = %q, %v", path, ok)
	}

	url, err := r.URL("payments.history", map[string]string{"email": "diner@example.com"})
	if err != nil {
		t.Fatalf("URL returned unexpected error: %v", err)
	}
	if url != "/payment/diner@example.com" {
		t.Errorf("URL = %q", url)
	}

	if _, err := r.URL("payments.history", nil); err == nil {
		t.Error("expected an error when params are missing")
	}
	if _, err := r.URL("nope", nil); err == nil {
		t.Error("expected an error for an unknown route name")
	}
}

func TestRoutesListing(t *testing.T) {
	r := router.New()
	r.Get("/menu", "menu.list", func(http.ResponseWriter, *http.Request) {})
	r.Post("/payment", "payments.settle", func(http.ResponseWriter, *http.Request) {})
	r.Delete("/cart/{id}", "cart.delete", func(http.ResponseWriter, *http.Request) {})

	infos := r.Routes()
	if len(infos) != 3 {
		t.Fatalf("expected 3 routes, got %d", len(infos))
	}

	byName := map[string]router.RouteInfo{}
	for _, ri := range infos {
		byName[ri.Name] = ri
	}
	if ri := byName["payments.settle"]; ri.Method != http.MethodPost || ri.Path != "/payment" {
		t.Errorf("payments.settle = %+v", ri)
	}
	if ri := byName["cart.delete"]; ri.Method != http.MethodDelete {
		t.Errorf("cart.delete method = %q", ri.Method)
	}
}

func TestGroupPrefixAndMiddleware(t *testing.T) {
	r := router.New()

	var order []string
	mw := func(tag string) router.Middleware {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
				order = append(order, tag)
				next.ServeHTTP(w, req)
			})
		}
	}

	api := r.Group("/api", mw("group"))
	api.Get("/menu", "menu.list", func(w http.ResponseWriter, _ *http.Request) {
		order = append(order, "handler")
		w.WriteHeader(http.StatusOK)
	}, mw("route"))

	req := httptest.NewRequest(http.MethodGet, "/api/menu", nil)
	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if len(order) != 3 || order[0] != "group" || order[1] != "route" || order[2] != "handler" {
		t.Errorf("middleware order = %v", order)
	}
}

func TestMethodRouting(t *testing.T) {
	r := router.New()
	r.Patch("/user/admin/{id}", "users.promote", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/user/admin/42", nil)
	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, req)
	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("GET on a PATCH route: expected 405, got %d", rec.Code)
	}
}
