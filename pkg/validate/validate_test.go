package validate_test

import (
	"testing"

	"github.com/mahimDev/bistro-boss-server/pkg/validate"
)

type settleInput struct {
	Email    string   `json:"email"    validate:"required,email"`
	Amount   float64  `json:"amount"   validate:"required,gt=0"`
	Currency string   `json:"currency" validate:"nullable,in=usd,eur,bdt"`
	CartIDs  []string `json:"cartIds"  validate:"required"`
}

func TestValidInput(t *testing.T) {
	errs := validate.Struct(settleInput{
		Email:    "diner@example.com",
		Amount:   19.99,
		Currency: "", // nullable — allowed to be empty
		CartIDs:  []string{"c1"},
	})
	if validate.HasErrors(errs) {
		t.Errorf("expected no errors, got: %v", errs)
	}
}

func TestRequiredFails(t *testing.T) {
	errs := validate.Struct(settleInput{})
	if !validate.HasErrors(errs) {
		t.Error("expected required errors")
	}
	if _, ok := errs["email"]; !ok {
		t.Error("expected email to be required")
	}
	if _, ok := errs["cartIds"]; !ok {
		t.Error("expected cartIds to be required")
	}
}

func TestEmailRule(t *testing.T) {
	type in struct {
		Email string `json:"email" validate:"required,email"`
	}
	errs := validate.Struct(in{Email: "not-an-email"})
	if _, ok := errs["email"]; !ok {
		t.Error("expected email validation error")
	}
	errs = validate.Struct(in{Email: "valid@example.com"})
	if validate.HasErrors(errs) {
		t.Errorf("expected valid email to pass, got: %v", errs)
	}
}

func TestGtRule(t *testing.T) {
	type in struct {
		Price float64 `json:"price" validate:"required,gt=0"`
	}
	if errs := validate.Struct(in{Price: -5}); !validate.HasErrors(errs) {
		t.Error("expected negative price to fail")
	}
	if errs := validate.Struct(in{Price: 8.5}); validate.HasErrors(errs) {
		t.Errorf("expected positive price to pass, got: %v", errs)
	}
}

func TestInRule(t *testing.T) {
	type in struct {
		Currency string `json:"currency" validate:"required,in=usd,eur,bdt"`
	}
	if errs := validate.Struct(in{Currency: "gbp"}); !validate.HasErrors(errs) {
		t.Error("expected unsupported currency to fail")
	}
	if errs := validate.Struct(in{Currency: "usd"}); validate.HasErrors(errs) {
		t.Errorf("expected usd to pass, got: %v", errs)
	}
}

func TestInRuleFollowedByAnotherRule(t *testing.T) {
	// Multi-value params must not swallow the next rule.
	type in struct {
		Currency string `json:"currency" validate:"in=usd,eur,max=3"`
	}
	if errs := validate.Struct(in{Currency: "eur"}); validate.HasErrors(errs) {
		t.Errorf("expected eur to pass, got: %v", errs)
	}
	if errs := validate.Struct(in{Currency: "euro"}); !validate.HasErrors(errs) {
		t.Error("expected euro to fail the in rule")
	}
}

func TestFirstFailingRuleWins(t *testing.T) {
	type in struct {
		Email string `json:"email" validate:"required,email"`
	}
	errs := validate.Struct(in{})
	if errs["email"] != "The email field is required." {
		t.Errorf("expected the required message first, got %q", errs["email"])
	}
}
