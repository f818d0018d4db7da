package stripe

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateIntentSendsFormAndDecodesResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/payment_intents", r.URL.Path)
		assert.Equal(t, "Bearer sk_test", r.Header.Get("Authorization"))

		require.NoError(t, r.ParseForm())
		assert.Equal(t, "2000", r.PostForm.Get("amount"))
		assert.Equal(t, "usd", r.PostForm.Get("currency"))
		assert.Equal(t, "ord-1", r.PostForm.Get("metadata[order_id]"))
		assert.Equal(t, "true", r.PostForm.Get("automatic_payment_methods[enabled]"))

		json.NewEncoder(w).Encode(map[string]any{
			"id":            "pi_1",
			"amount":        2000,
			"currency":      "usd",
			"status":        "requires_payment_method",
			"client_secret": "pi_1_secret",
			"metadata":      map[string]string{"order_id": "ord-1"},
		})
	}))
	defer server.Close()

	c := New("sk_test", server.URL, "whsec")
	intent, err := c.CreateIntent(context.Background(), 2000, "usd", map[string]string{"order_id": "ord-1"})
	require.NoError(t, err)

	assert.Equal(t, "pi_1", intent.ID)
	assert.Equal(t, int64(2000), intent.Amount)
	assert.Equal(t, "pi_1_secret", intent.ClientSecret)
	assert.Equal(t, "ord-1", intent.Metadata["order_id"])
}

func TestRetrieveIntent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/v1/payment_intents/pi_42", r.URL.Path)

		json.NewEncoder(w).Encode(map[string]any{
			"id":     "pi_42",
			"status": IntentSucceeded,
		})
	}))
	defer server.Close()

	c := New("sk_test", server.URL, "whsec")
	intent, err := c.RetrieveIntent(context.Background(), "pi_42")
	require.NoError(t, err)
	assert.Equal(t, IntentSucceeded, intent.Status)
}

func TestGatewayErrorDecodingAndStatusMapping(t *testing.T) {
	cases := []struct {
		errType    string
		wantStatus int
	}{
		{"card_error", http.StatusBadRequest},
		{"invalid_request_error", http.StatusBadRequest},
		{"rate_limit_error", http.StatusTooManyRequests},
		{"api_error", http.StatusServiceUnavailable},
	}

	for _, tc := range cases {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusPaymentRequired)
			json.NewEncoder(w).Encode(map[string]any{
				"error": map[string]string{
					"type":    tc.errType,
					"code":    "card_declined",
					"message": "Your card was declined.",
				},
			})
		}))

		c := New("sk_test", server.URL, "whsec")
		_, err := c.CreateIntent(context.Background(), 100, "usd", nil)
		require.Error(t, err)

		var gwErr *GatewayError
		require.ErrorAs(t, err, &gwErr)
		assert.Equal(t, tc.errType, gwErr.Type)
		assert.Equal(t, "Your card was declined.", gwErr.Message)
		assert.Equal(t, tc.wantStatus, gwErr.HTTPStatus(), "type %s", tc.errType)

		server.Close()
	}
}

func TestUnparseableErrorBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("upstream exploded"))
	}))
	defer server.Close()

	c := New("sk_test", server.URL, "whsec")
	_, err := c.CreateIntent(context.Background(), 100, "usd", nil)
	require.Error(t, err)

	var gwErr *GatewayError
	assert.False(t, errors.As(err, &gwErr))
	assert.Contains(t, err.Error(), "stripe API error (502)")
}
