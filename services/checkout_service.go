package services

import (
	"context"
	"net/url"

	"frisbee/entity"
)

// Checkout negotiates checkout sessions with the payment gateway.
type Checkout interface {
	Checkout(ctx context.Context, store SessionStore, orderId int, method string) (*entity.CheckoutResult, error)
	Refund(ctx context.Context, orderId int, amount int64) error
}

// Callbacks reconciles asynchronous payment-status callbacks with order state.
type Callbacks interface {
	Process(ctx context.Context, body []byte, contentType string, query url.Values) *entity.CallbackOutcome
}

// Gateway executes signed HTTP calls against the payment gateway.
type Gateway interface {
	Request(ctx context.Context, requestUrl string, params map[string]any) (*entity.Envelope, error)
	RequestCheckoutCredentials(ctx context.Context, strategy entity.Strategy, params map[string]any) (string, error)
	Reverse(ctx context.Context, strategy entity.Strategy, params map[string]any) (*entity.Envelope, error)
}

// Notifier delivers templated customer notifications. Mail transport lives
// outside the core; a nil notifier simply skips the notification.
type Notifier interface {
	SendPaymentSuccess(ctx context.Context, order *entity.Order) error
}
