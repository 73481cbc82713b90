package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSelectStrategy(t *testing.T) {
	// explicit method wins over configuration
	assert.Equal(t, StrategyRedirect, SelectStrategy("redirect", true, false).Name)
	assert.Equal(t, StrategyEmbedded, SelectStrategy("embedded", false, false).Name)

	// configuration decides when no method is given
	assert.Equal(t, StrategyEmbedded, SelectStrategy("", true, false).Name)
	assert.Equal(t, StrategyRedirect, SelectStrategy("", false, false).Name)

	assert.True(t, SelectStrategy("", false, true).TestMode)
}

func TestStrategyUrls(t *testing.T) {
	redirect := RedirectStrategy(false)
	assert.Equal(t, "https://api.fondy.eu/api/checkout/url/", redirect.CheckoutUrl())
	assert.Equal(t, "https://api.fondy.eu/api/reverse/order_id/", redirect.ReverseUrl())

	embedded := EmbeddedStrategy(false)
	assert.Equal(t, "https://api.fondy.eu/api/checkout/token/", embedded.CheckoutUrl())

	// test mode targets the sandbox host
	sandbox := RedirectStrategy(true)
	assert.Equal(t, "https://dev2.pay.fondy.eu/api/checkout/url/", sandbox.CheckoutUrl())
	assert.Equal(t, "https://dev2.pay.fondy.eu/api/reverse/order_id/", sandbox.ReverseUrl())
}

func TestStrategySessionKeys(t *testing.T) {
	redirect := RedirectStrategy(false)
	assert.Equal(t, "checkout_url_hash", redirect.SessionKeyHash())
	assert.Equal(t, "checkout_url_credentials", redirect.SessionKeyCredentials())

	embedded := EmbeddedStrategy(false)
	assert.Equal(t, "checkout_token_hash", embedded.SessionKeyHash())
	assert.Equal(t, "checkout_token_credentials", embedded.SessionKeyCredentials())
}

func TestStrategyCredentials(t *testing.T) {
	envelope := &Envelope{Response: map[string]any{
		"response_status": "success",
		"checkout_url":    "https://pay.example.com/c/1",
		"token":           "widget-token-1",
	}}

	url, ok := RedirectStrategy(false).Credentials(envelope)
	assert.True(t, ok)
	assert.Equal(t, "https://pay.example.com/c/1", url)

	token, ok := EmbeddedStrategy(false).Credentials(envelope)
	assert.True(t, ok)
	assert.Equal(t, "widget-token-1", token)

	_, ok = RedirectStrategy(false).Credentials(&Envelope{Response: map[string]any{}})
	assert.False(t, ok)

	assert.False(t, RedirectStrategy(false).IsEmbedded())
	assert.True(t, EmbeddedStrategy(false).IsEmbedded())
}
