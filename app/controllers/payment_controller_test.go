package controllers_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stripe/stripe-go/v76"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/mahimDev/bistro-boss-server/app/controllers"
	"github.com/mahimDev/bistro-boss-server/app/models"
	"github.com/mahimDev/bistro-boss-server/app/services"
	"github.com/mahimDev/bistro-boss-server/pkg/event"
	"github.com/mahimDev/bistro-boss-server/pkg/router"
)

type stubPaymentStore struct {
	records []models.PaymentRecord
}

func (s *stubPaymentStore) Create(_ context.Context, rec *models.PaymentRecord) (string, error) {
	rec.ID = primitive.NewObjectID()
	s.records = append(s.records, *rec)
	return rec.ID.Hex(), nil
}

func (s *stubPaymentStore) FindByID(_ context.Context, id string) (models.PaymentRecord, error) {
	for _, rec := range s.records {
		if rec.ID.Hex() == id {
			return rec, nil
		}
	}
	return models.PaymentRecord{}, errors.New("not found")
}

func (s *stubPaymentStore) FindByEmail(_ context.Context, email string) ([]models.PaymentRecord, error) {
	out := []models.PaymentRecord{}
	for _, rec := range s.records {
		if rec.Email == email {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (s *stubPaymentStore) FindSince(context.Context, time.Time) ([]models.PaymentRecord, error) {
	return nil, nil
}

func (s *stubPaymentStore) All(context.Context) ([]models.PaymentRecord, error) {
	return s.records, nil
}

func (s *stubPaymentStore) Count(context.Context) (int64, error) {
	return int64(len(s.records)), nil
}

func (s *stubPaymentStore) TotalRevenue(context.Context) (float64, error) { return 0, nil }

type stubCartStore struct {
	entries map[string]models.CartEntry
}

func (s *stubCartStore) FindByEmail(context.Context, string) ([]models.CartEntry, error) {
	return nil, nil
}

func (s *stubCartStore) Create(_ context.Context, e *models.CartEntry) error {
	e.ID = primitive.NewObjectID()
	s.entries[e.ID.Hex()] = *e
	return nil
}

func (s *stubCartStore) Delete(_ context.Context, id string) (int64, error) {
	if _, ok := s.entries[id]; !ok {
		return 0, nil
	}
	delete(s.entries, id)
	return 1, nil
}

func (s *stubCartStore) DeleteMany(_ context.Context, ids []string) (int64, error) {
	var n int64
	for _, id := range ids {
		if _, ok := s.entries[id]; ok {
			delete(s.entries, id)
			n++
		}
	}
	return n, nil
}

type stubIntents struct {
	err error
}

func (s *stubIntents) New(*stripe.PaymentIntentParams) (*stripe.PaymentIntent, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &stripe.PaymentIntent{ClientSecret: "cs_test_123"}, nil
}

func newPaymentRouter(intents services.IntentCreator, payments *stubPaymentStore, carts *stubCartStore) *router.Router {
	c := controllers.NewPaymentController(
		services.NewPaymentServiceWith(intents, "usd"),
		services.NewSettlementService(payments, carts),
		payments,
	)

	r := router.New()
	r.Post("/create-payment-intent", "payments.intent", c.CreateIntent)
	r.Post("/payment", "payments.settle", c.Settle)
	return r
}

func postJSON(t *testing.T, r *router.Router, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, req)
	return rec
}

func TestCreateIntent_ReturnsClientSecret(t *testing.T) {
	r := newPaymentRouter(&stubIntents{}, &stubPaymentStore{}, &stubCartStore{entries: map[string]models.CartEntry{}})

	rec := postJSON(t, r, "/create-payment-intent", `{"price": 19.99}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body["clientSecret"] != "cs_test_123" {
		t.Errorf("expected clientSecret in response, got %v", body)
	}
}

func TestCreateIntent_ProcessorRejectionIs402(t *testing.T) {
	r := newPaymentRouter(&stubIntents{err: errors.New("card_declined")}, &stubPaymentStore{}, &stubCartStore{entries: map[string]models.CartEntry{}})

	rec := postJSON(t, r, "/create-payment-intent", `{"price": 10}`)
	if rec.Code != http.StatusPaymentRequired {
		t.Errorf("expected 402, got %d", rec.Code)
	}
}

func TestCreateIntent_MissingPriceIs422(t *testing.T) {
	r := newPaymentRouter(&stubIntents{}, &stubPaymentStore{}, &stubCartStore{entries: map[string]models.CartEntry{}})

	rec := postJSON(t, r, "/create-payment-intent", `{}`)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Errorf("expected 422, got %d", rec.Code)
	}
}

func TestSettle_ReportsBothSteps(t *testing.T) {
	event.Flush()
	defer event.Flush()

	payments := &stubPaymentStore{}
	carts := &stubCartStore{entries: map[string]models.CartEntry{"c1": {}}}
	r := newPaymentRouter(&stubIntents{}, payments, carts)

	// c2 was already removed by the client; only c1 remains.
	rec := postJSON(t, r, "/payment", `{
		"email": "diner@example.com",
		"amount": 19.99,
		"transactionId": "pi_123",
		"menu_ids": ["m1", "m2"],
		"cartIds": ["c1", "c2"]
	}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var body struct {
		PaymentResult struct {
			InsertedID string `json:"insertedId"`
		} `json:"paymentResult"`
		DeleteResult struct {
			DeletedCount int64 `json:"deletedCount"`
		} `json:"deleteResult"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body.PaymentResult.InsertedID == "" {
		t.Error("expected paymentResult.insertedId")
	}
	if body.DeleteResult.DeletedCount != 1 {
		t.Errorf("expected deleteResult.deletedCount 1, got %d", body.DeleteResult.DeletedCount)
	}
	if len(payments.records) != 1 {
		t.Fatalf("expected 1 recorded payment, got %d", len(payments.records))
	}
	if payments.records[0].TransactionID != "pi_123" {
		t.Errorf("transaction id not persisted: %+v", payments.records[0])
	}
}

func TestSettle_MissingEmailIs422(t *testing.T) {
	r := newPaymentRouter(&stubIntents{}, &stubPaymentStore{}, &stubCartStore{entries: map[string]models.CartEntry{}})

	rec := postJSON(t, r, "/payment", `{"amount": 5, "cartIds": ["c1"]}`)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Errorf("expected 422, got %d", rec.Code)
	}
}
