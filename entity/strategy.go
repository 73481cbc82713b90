package entity

import "fmt"

// Checkout flow variants. A strategy is plain data: it carries the endpoint
// templates, the session-key templates and the name of the response field the
// checkout credentials are extracted from.
const (
	StrategyRedirect = "url"
	StrategyEmbedded = "token"
)

const (
	patternUrl        = "https://api.fondy.eu/api/%s/"
	patternUrlSandbox = "https://dev2.pay.fondy.eu/api/%s/"

	patternUriCheckout = "checkout/%s"
	patternUriReverse  = "reverse/order_id"

	patternSessionKeyHash        = "checkout_%s_hash"
	patternSessionKeyCredentials = "checkout_%s_credentials"
)

// Strategy is selected once per checkout preparation and immutable thereafter.
type Strategy struct {
	Name             string
	TestMode         bool
	CredentialsField string
}

// RedirectStrategy pays through a hosted checkout page; credentials are a URL.
func RedirectStrategy(testMode bool) Strategy {
	return Strategy{
		Name:             StrategyRedirect,
		TestMode:         testMode,
		CredentialsField: "checkout_url",
	}
}

// EmbeddedStrategy pays through the embedded widget; credentials are a token.
func EmbeddedStrategy(testMode bool) Strategy {
	return Strategy{
		Name:             StrategyEmbedded,
		TestMode:         testMode,
		CredentialsField: "token",
	}
}

// SelectStrategy picks the checkout flow. An explicit caller-specified method
// wins; otherwise the configured payment type decides; redirect is the default.
func SelectStrategy(method string, embeddedConfigured bool, testMode bool) Strategy {
	if method != "" {
		if method == "redirect" {
			return RedirectStrategy(testMode)
		}
		return EmbeddedStrategy(testMode)
	}
	if embeddedConfigured {
		return EmbeddedStrategy(testMode)
	}
	return RedirectStrategy(testMode)
}

func (s Strategy) urlPattern() string {
	if s.TestMode {
		return patternUrlSandbox
	}
	return patternUrl
}

// CheckoutUrl is the endpoint checkout credentials are requested from.
func (s Strategy) CheckoutUrl() string {
	return fmt.Sprintf(s.urlPattern(), fmt.Sprintf(patternUriCheckout, s.Name))
}

// ReverseUrl is the refund endpoint; it is the same for both flows.
func (s Strategy) ReverseUrl() string {
	return fmt.Sprintf(s.urlPattern(), patternUriReverse)
}

func (s Strategy) SessionKeyHash() string {
	return fmt.Sprintf(patternSessionKeyHash, s.Name)
}

func (s Strategy) SessionKeyCredentials() string {
	return fmt.Sprintf(patternSessionKeyCredentials, s.Name)
}

// IsEmbedded reports whether credentials are a widget token rather than a URL.
func (s Strategy) IsEmbedded() bool {
	return s.Name == StrategyEmbedded
}

// Credentials pulls this strategy's credential field out of a success envelope.
func (s Strategy) Credentials(envelope *Envelope) (string, bool) {
	return envelope.Field(s.CredentialsField)
}
