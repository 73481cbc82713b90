package internal

import "errors"

// Failure kinds surfaced by the core. Callers classify with errors.Is;
// the wrapped text carries the operation context.
var (
	ErrJsonEncode        = errors.New("unable to encode value into JSON")
	ErrJsonDecode        = errors.New("unable to decode a JSON string")
	ErrTransport         = errors.New("unable to make request to the Frisbee API")
	ErrGatewayContract   = errors.New("Frisbee response error, contact Frisbee support")
	ErrMalformedCallback = errors.New("malformed callback")
	ErrMerchantMismatch  = errors.New("an error has occurred during payment, merchant data is incorrect")
	ErrInvalidSignature  = errors.New("signature is not valid")
	ErrOrderNotFound     = errors.New("order not found")
)
