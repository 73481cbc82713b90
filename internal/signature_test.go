package internal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanonicalizeDropsAbsentValues(t *testing.T) {
	values := Canonicalize(map[string]any{
		"b": 1,
		"a": "",
		"c": nil,
		"d": "x",
	})
	assert.Equal(t, []string{"1", "x"}, values)
}

func TestSignKnownAnswer(t *testing.T) {
	signer := NewSigner("test")
	params := map[string]any{"a": "1", "b": "2"}

	assert.Equal(t, "test|1|2", signer.SignatureBase(params))
	assert.Equal(t, "521fab339ecc7130eda41fdd93df462c884b69e1", signer.Sign(params))
}

func TestSignTrimsSecret(t *testing.T) {
	assert.Equal(t,
		NewSigner("test").Sign(map[string]any{"a": "1"}),
		NewSigner("  test \n").Sign(map[string]any{"a": "1"}))
}

func TestSignatureBaseStructuredValues(t *testing.T) {
	signer := NewSigner("s")
	base := signer.SignatureBase(map[string]any{"list": []string{"a", "b"}})
	assert.Equal(t, "s|['a','b']", base)
}

func TestVerifyRoundTrip(t *testing.T) {
	signer := NewSigner("secret")
	payload := map[string]any{
		"order_id":     "7#1700000000",
		"order_status": "approved",
		"merchant_id":  "1396424",
	}
	payload["signature"] = signer.Sign(payload)

	require.NoError(t, signer.Verify(payload))
}

func TestVerifyIgnoresResponseSignatureString(t *testing.T) {
	signer := NewSigner("secret")
	payload := map[string]any{"order_status": "approved"}
	payload["signature"] = signer.Sign(payload)
	payload["response_signature_string"] = "**********|approved"

	require.NoError(t, signer.Verify(payload))
}

func TestVerifyRejectsTamperedPayload(t *testing.T) {
	signer := NewSigner("secret")
	payload := map[string]any{"order_status": "declined"}
	payload["signature"] = signer.Sign(payload)
	payload["order_status"] = "approved"

	err := signer.Verify(payload)
	require.ErrorIs(t, err, ErrInvalidSignature)
}

func TestVerifyRejectsMissingSignature(t *testing.T) {
	signer := NewSigner("secret")
	err := signer.Verify(map[string]any{"order_status": "approved"})
	require.ErrorIs(t, err, ErrInvalidSignature)
}
