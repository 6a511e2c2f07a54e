package controllers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/mahimDev/bistro-boss-server/app/controllers"
	"github.com/mahimDev/bistro-boss-server/app/models"
	"github.com/mahimDev/bistro-boss-server/app/repositories"
	"github.com/mahimDev/bistro-boss-server/pkg/router"
)

type stubUserStore struct {
	byEmail map[string]models.User
}

func (s *stubUserStore) FindByEmail(_ context.Context, email string) (models.User, error) {
	u, ok := s.byEmail[email]
	if !ok {
		return models.User{}, repositories.ErrNotFound
	}
	return u, nil
}

func (s *stubUserStore) All(context.Context) ([]models.User, error) { return nil, nil }

func (s *stubUserStore) Create(_ context.Context, u *models.User) error {
	u.ID = primitive.NewObjectID()
	s.byEmail[u.Email] = *u
	return nil
}

func (s *stubUserStore) SetRole(context.Context, string, models.Role) error { return nil }
func (s *stubUserStore) Delete(context.Context, string) error               { return nil }
func (s *stubUserStore) Count(context.Context) (int64, error)               { return 0, nil }

func newUserRouter(store *stubUserStore) *router.Router {
	r := router.New()
	r.Post("/user", "users.create", controllers.NewUserController(store).Create)
	return r
}

func TestCreateUser_New(t *testing.T) {
	store := &stubUserStore{byEmail: map[string]models.User{}}
	r := newUserRouter(store)

	rec := postJSON(t, r, "/user", `{"name": "Diner", "email": "diner@example.com"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body["insertedId"] == "" {
		t.Error("expected insertedId in response")
	}

	created := store.byEmail["diner@example.com"]
	if created.Role != models.RoleRegular {
		t.Errorf("new accounts must start without the admin role, got %q", created.Role)
	}
}

func TestCreateUser_DuplicateAcknowledgedWithoutInsert(t *testing.T) {
	store := &stubUserStore{byEmail: map[string]models.User{
		"diner@example.com": {ID: primitive.NewObjectID(), Email: "diner@example.com"},
	}}
	r := newUserRouter(store)

	rec := postJSON(t, r, "/user", `{"email": "diner@example.com"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 for a repeat registration, got %d", rec.Code)
	}

	var body map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body["message"] != "user already exists" {
		t.Errorf("unexpected message: %v", body["message"])
	}
	if body["insertedId"] != nil {
		t.Errorf("expected insertedId null, got %v", body["insertedId"])
	}
	if len(store.byEmail) != 1 {
		t.Errorf("duplicate registration must not insert, store holds %d users", len(store.byEmail))
	}
}

func TestCreateUser_BadEmailIs422(t *testing.T) {
	r := newUserRouter(&stubUserStore{byEmail: map[string]models.User{}})

	rec := postJSON(t, r, "/user", `{"email": "nope"}`)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Errorf("expected 422, got %d", rec.Code)
	}
}
