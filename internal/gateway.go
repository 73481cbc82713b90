package internal

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"frisbee/entity"
	"frisbee/services"
)

const requestUserAgent = "Frisbee Go CMS"

// GatewayClient executes signed one-shot HTTP calls against the payment
// gateway. Each call is a single blocking attempt: no retry, no circuit
// breaking. Delivery retries belong to the gateway side.
type GatewayClient struct {
	signer     *Signer
	logger     services.LogHandler
	httpClient *http.Client
}

func NewGateway(secret string) *GatewayClient {
	return &GatewayClient{
		signer: NewSigner(secret),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
	}
}

func (g *GatewayClient) SetLogger(logger services.LogHandler) {
	g.logger = logger
}

// Request appends the computed signature, posts {"request": params} as JSON
// and interprets the envelope. The returned error is one of the typed kinds:
// ErrTransport, ErrJsonEncode/ErrJsonDecode, ErrGatewayContract, or a plain
// error carrying the gateway's own error_message verbatim.
func (g *GatewayClient) Request(ctx context.Context, requestUrl string, params map[string]any) (*entity.Envelope, error) {
	signed := make(map[string]any, len(params)+1)
	for key, value := range params {
		signed[key] = value
	}
	signed["signature"] = g.signer.Sign(params)

	body, err := EncodeJson(map[string]any{"request": signed})
	if err != nil {
		return nil, err
	}

	request, err := http.NewRequestWithContext(ctx, http.MethodPost, requestUrl, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTransport, err)
	}
	request.Header.Set("Content-Type", "application/json")
	request.Header.Set("Accept", "application/json")
	request.Header.Set("User-Agent", requestUserAgent)

	g.debug(fmt.Sprintf("gateway request: %s", requestUrl))

	response, err := g.httpClient.Do(request)
	if err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("%w: %v", ErrTransport, ctx.Err())
		}
		return nil, fmt.Errorf("%w: %v", ErrTransport, err)
	}
	defer func(responseBody io.ReadCloser) {
		if err := responseBody.Close(); err != nil {
			g.error("close response body", err)
		}
	}(response.Body)

	responseData, err := io.ReadAll(response.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTransport, err)
	}

	var envelope entity.Envelope
	if err = DecodeJson(responseData, &envelope); err != nil {
		return nil, err
	}

	if message := envelope.ErrorMessage(); message != "" {
		return nil, fmt.Errorf("%s", message)
	}
	if envelope.Status() != "success" {
		return nil, ErrGatewayContract
	}

	return &envelope, nil
}

// RequestCheckoutCredentials calls the strategy's checkout endpoint and pulls
// the strategy-specific credential field out of the success envelope.
func (g *GatewayClient) RequestCheckoutCredentials(ctx context.Context, strategy entity.Strategy, params map[string]any) (string, error) {
	envelope, err := g.Request(ctx, strategy.CheckoutUrl(), params)
	if err != nil {
		return "", err
	}
	credentials, ok := strategy.Credentials(envelope)
	if !ok {
		return "", fmt.Errorf("%w: missing %s field", ErrGatewayContract, strategy.CredentialsField)
	}
	return credentials, nil
}

// Reverse executes a reversal against the strategy's reverse endpoint.
func (g *GatewayClient) Reverse(ctx context.Context, strategy entity.Strategy, params map[string]any) (*entity.Envelope, error) {
	return g.Request(ctx, strategy.ReverseUrl(), params)
}

func (g *GatewayClient) debug(message string) {
	if g.logger != nil {
		g.logger.Debug(message)
	}
}

func (g *GatewayClient) error(message string, err error) {
	if g.logger != nil {
		g.logger.Error(message, err)
	}
}
