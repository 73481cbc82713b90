package internal

import (
	"strings"

	"gitee.com/golang-module/dongle"
)

// The fixed ordered field subset a checkout fingerprint is computed over.
// Fields outside this list (user agent, lifetime, preauth) never influence
// the fingerprint.
var fingerprintFields = []string{
	"merchant_id",
	"order_desc",
	"amount",
	"currency",
	"server_callback_url",
	"response_url",
	"lang",
	"sender_email",
	"payment_systems",
	"reservation_data",
}

// CheckoutFingerprint derives the deterministic session-cache key for one
// checkout request. It is content-derived and used only for deduplication,
// not as a security boundary.
func CheckoutFingerprint(orderRef string, params map[string]any) string {
	var b strings.Builder
	b.WriteString(orderRef)
	for _, field := range fingerprintFields {
		if value, ok := params[field]; ok && value != nil {
			b.WriteString(stringifyValue(value))
		}
	}
	return dongle.Encrypt.FromString(b.String()).ByMd5().ToHexString()
}
