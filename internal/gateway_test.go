package internal

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGatewayRequestSignsAndUnwraps(t *testing.T) {
	var received map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		require.NoError(t, DecodeJson(body, &received))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"response":{"response_status":"success","checkout_url":"https://pay.example.com/c/1"}}`))
	}))
	defer server.Close()

	gateway := NewGateway("secret")
	params := map[string]any{"order_id": "7#1700000000", "merchant_id": "1396424"}

	envelope, err := gateway.Request(context.Background(), server.URL, params)
	require.NoError(t, err)

	url, ok := envelope.Field("checkout_url")
	assert.True(t, ok)
	assert.Equal(t, "https://pay.example.com/c/1", url)

	request, ok := received["request"].(map[string]any)
	require.True(t, ok, "body must carry the request envelope")
	assert.Equal(t, "7#1700000000", request["order_id"])
	assert.Equal(t, NewSigner("secret").Sign(params), request["signature"])
}

func TestGatewayRequestErrorMessageVerbatim(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"response":{"response_status":"failure","error_message":"Order not found","error_code":1018}}`))
	}))
	defer server.Close()

	gateway := NewGateway("secret")
	_, err := gateway.Request(context.Background(), server.URL, map[string]any{"order_id": "1"})
	require.Error(t, err)
	assert.Equal(t, "Order not found", err.Error())
}

func TestGatewayRequestContractViolation(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"response":{"something":"else"}}`))
	}))
	defer server.Close()

	gateway := NewGateway("secret")
	_, err := gateway.Request(context.Background(), server.URL, map[string]any{"order_id": "1"})
	require.ErrorIs(t, err, ErrGatewayContract)
}

func TestGatewayRequestMalformedResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`not a json`))
	}))
	defer server.Close()

	gateway := NewGateway("secret")
	_, err := gateway.Request(context.Background(), server.URL, map[string]any{"order_id": "1"})
	require.ErrorIs(t, err, ErrJsonDecode)
}

func TestGatewayRequestTransportFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	server.Close()

	gateway := NewGateway("secret")
	_, err := gateway.Request(context.Background(), server.URL, map[string]any{"order_id": "1"})
	require.ErrorIs(t, err, ErrTransport)
}
