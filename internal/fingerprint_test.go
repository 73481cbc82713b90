package internal

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCheckoutFingerprintKnownAnswer(t *testing.T) {
	// Digest of the bare order reference when no hashed field is present.
	hash := CheckoutFingerprint("order7#1", map[string]any{})
	assert.Equal(t, "a366cedd58a544ad3f30908d821e02e4", hash)
}

func TestCheckoutFingerprintDeterministic(t *testing.T) {
	params := map[string]any{
		"merchant_id": "1396424",
		"amount":      int64(2550),
		"currency":    "EUR",
	}
	first := CheckoutFingerprint("7#1700000000", params)
	second := CheckoutFingerprint("7#1700000000", params)

	assert.Equal(t, first, second)
	assert.Len(t, first, 32)
}

func TestCheckoutFingerprintSensitivity(t *testing.T) {
	params := map[string]any{
		"merchant_id": "1396424",
		"amount":      int64(2550),
	}
	base := CheckoutFingerprint("7#1700000000", params)

	params["amount"] = int64(2551)
	assert.NotEqual(t, base, CheckoutFingerprint("7#1700000000", params))

	params["amount"] = int64(2550)
	assert.NotEqual(t, base, CheckoutFingerprint("8#1700000000", params))
}

func TestCheckoutFingerprintIgnoresUnlistedFields(t *testing.T) {
	params := map[string]any{
		"merchant_id": "1396424",
		"amount":      int64(2550),
	}
	base := CheckoutFingerprint("7#1700000000", params)

	params["lifetime"] = int64(3600)
	params["preauth"] = "Y"
	params["user_agent"] = "Mozilla/5.0"
	assert.Equal(t, base, CheckoutFingerprint("7#1700000000", params))
}
