package bind_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mahimDev/bistro-boss-server/pkg/bind"
)

type intentInput struct {
	Price float64 `json:"price" validate:"required,gt=0"`
}

func request(body string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/create-payment-intent", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func TestJSON_Valid(t *testing.T) {
	var in intentInput
	errs, err := bind.JSON(request(`{"price": 19.99}`), &in)
	require.NoError(t, err)
	require.Nil(t, errs)
	assert.Equal(t, 19.99, in.Price)
}

func TestJSON_ValidationFailure(t *testing.T) {
	var in intentInput
	errs, err := bind.JSON(request(`{"price": 0}`), &in)
	require.NoError(t, err)
	require.NotNil(t, errs)
	assert.Contains(t, errs, "price")
}

func TestJSON_MalformedBody(t *testing.T) {
	var in intentInput
	_, err := bind.JSON(request(`{"price": `), &in)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid JSON")
}
