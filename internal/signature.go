package internal

import (
	"crypto/subtle"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"gitee.com/golang-module/dongle"
)

const signatureSeparator = "|"

// Fields stripped from a callback payload before its signature is recomputed.
const (
	fieldSignature               = "signature"
	fieldResponseSignatureString = "response_signature_string"
)

// Signer produces and verifies the keyed request signature: the SHA-1 hex
// digest of the secret joined with the canonicalized parameter values.
type Signer struct {
	secret string
}

func NewSigner(secret string) *Signer {
	return &Signer{secret: strings.TrimSpace(secret)}
}

// Canonicalize drops entries whose value is absent or an empty string and
// returns the remaining values as strings, ordered by their keys.
func Canonicalize(params map[string]any) []string {
	keys := make([]string, 0, len(params))
	for key, value := range params {
		if value == nil {
			continue
		}
		if s, ok := value.(string); ok && s == "" {
			continue
		}
		keys = append(keys, key)
	}
	sort.Strings(keys)

	values := make([]string, 0, len(keys))
	for _, key := range keys {
		values = append(values, stringifyValue(params[key]))
	}
	return values
}

// Sign computes the signature over the canonicalized parameters.
func (s *Signer) Sign(params map[string]any) string {
	return dongle.Encrypt.FromString(s.SignatureBase(params)).BySha1().ToHexString()
}

// SignatureBase builds the raw string the digest is taken over:
// secret|value1|value2|... in canonical value order.
func (s *Signer) SignatureBase(params map[string]any) string {
	var b strings.Builder
	b.WriteString(s.secret)
	for _, value := range Canonicalize(params) {
		b.WriteString(signatureSeparator)
		b.WriteString(value)
	}
	return b.String()
}

// Verify recomputes the signature of a received payload, after stripping the
// declared signature fields, and compares it against the declared value.
func (s *Signer) Verify(payload map[string]any) error {
	declared, ok := payload[fieldSignature].(string)
	if !ok || declared == "" {
		return fmt.Errorf("%w: signature is missing", ErrInvalidSignature)
	}

	stripped := make(map[string]any, len(payload))
	for key, value := range payload {
		if key == fieldSignature || key == fieldResponseSignatureString {
			continue
		}
		stripped[key] = value
	}

	computed := s.Sign(stripped)
	if subtle.ConstantTimeCompare([]byte(computed), []byte(declared)) != 1 {
		return ErrInvalidSignature
	}
	return nil
}

// stringifyValue renders a parameter value the way the gateway canonicalizes
// it: scalars as plain decimal/text, structured values as JSON with double
// quotes replaced by single quotes to match the legacy signature format.
func stringifyValue(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		if v {
			return "1"
		}
		return ""
	default:
		data, err := EncodeJson(value)
		if err != nil {
			return fmt.Sprint(value)
		}
		return strings.ReplaceAll(string(data), `"`, `'`)
	}
}
