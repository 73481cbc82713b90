package internal

import (
	"bytes"
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"frisbee/config"
	"frisbee/entity"
	"frisbee/services"
)

// Order statuses provisioned for reversal outcomes; the remaining statuses
// come from configuration.
const (
	OrderStatusTotallyRefunded   = "refunded"
	OrderStatusPartiallyRefunded = "refunded_partial"
)

const (
	callbackStatusApproved   = "approved"
	callbackStatusDeclined   = "declined"
	callbackStatusExpired    = "expired"
	callbackStatusReversed   = "reversed"
	callbackStatusProcessing = "processing"
)

// Callbacks reconciles asynchronous gateway callbacks with order state. Every
// callback resolves to exactly one event from a closed set; a failure at any
// stage degrades the order to the processing status with an explanatory
// comment instead of leaving it half-updated.
type Callbacks struct {
	conf     *config.Config
	signer   *Signer
	database services.Database
	notifier services.Notifier
	logger   services.LogHandler
}

func NewCallbacks(conf *config.Config, secret string) *Callbacks {
	return &Callbacks{
		conf:   conf,
		signer: NewSigner(secret),
	}
}

func (c *Callbacks) SetDatabase(database services.Database) {
	c.database = database
}

func (c *Callbacks) SetNotifier(notifier services.Notifier) {
	c.notifier = notifier
}

func (c *Callbacks) SetLogger(logger services.LogHandler) {
	c.logger = logger
}

// Process parses, validates, classifies and applies one callback. It always
// returns an outcome: HTTPStatus 200 when the callback was reconciled (even
// when it changed nothing), 4xx when the payload never identified an order,
// 500 when reconciliation failed after the order was loaded.
func (c *Callbacks) Process(ctx context.Context, body []byte, contentType string, query url.Values) (outcome *entity.CallbackOutcome) {
	outcome = &entity.CallbackOutcome{HTTPStatus: http.StatusOK}

	defer func() {
		if r := recover(); r != nil {
			c.logger.Error("callback processing", fmt.Errorf("panic: %v", r))
			outcome.Message = fmt.Sprintf("callback processing failed: %v", r)
			outcome.HTTPStatus = http.StatusInternalServerError
		}
	}()

	payload, err := parseCallbackData(body, contentType, query)
	if err != nil {
		c.logger.Error("parse callback", err)
		outcome.Message = err.Error()
		outcome.HTTPStatus = http.StatusBadRequest
		return outcome
	}

	orderRef := stringField(payload, "order_id")
	orderId, err := parseOrderRef(orderRef)
	if err != nil {
		c.logger.Error("parse callback order reference", err)
		outcome.Message = err.Error()
		outcome.HTTPStatus = http.StatusBadRequest
		return outcome
	}
	outcome.OrderId = orderId

	order, err := c.database.GetOrder(ctx, orderId)
	if err != nil {
		c.logger.Error(fmt.Sprintf("load order %v", orderId), err)
		outcome.Message = err.Error()
		outcome.HTTPStatus = http.StatusInternalServerError
		if err == ErrOrderNotFound {
			outcome.HTTPStatus = http.StatusNotFound
		}
		return outcome
	}

	c.ensureOrderStatuses(ctx)

	if err = c.validate(payload); err != nil {
		return c.degrade(ctx, order, payload, outcome, err)
	}

	decision := c.classify(payload, order)
	if err = c.apply(ctx, order, payload, decision); err != nil {
		return c.degrade(ctx, order, payload, outcome, err)
	}

	outcome.Message = decision.Message
	return outcome
}

// validate rejects payloads before any order mutation: required fields first,
// then the merchant identity, then the keyed signature. Verification can be
// switched off in configuration for gateway sandboxes that sign incorrectly;
// the fact is logged on every callback.
func (c *Callbacks) validate(payload map[string]any) error {
	for _, field := range []string{"order_status", "merchant_id", "signature"} {
		if stringField(payload, field) == "" {
			return fmt.Errorf("%w: missing %s field", ErrMalformedCallback, field)
		}
	}

	if stringField(payload, "merchant_id") != strings.TrimSpace(c.conf.Merchant.Id) {
		return ErrMerchantMismatch
	}

	if c.conf.Merchant.SkipSignatureCheck {
		c.logger.Warn("callback signature check is disabled")
		return nil
	}
	return c.signer.Verify(payload)
}

// classify resolves the payload to a single event. Order of checks matters:
// expiry before anything financial, full reversal before partial, partial
// before decline and approval.
func (c *Callbacks) classify(payload map[string]any, order *entity.Order) entity.Decision {
	status := strings.ToLower(stringField(payload, "order_status"))
	message := stringField(payload, "response_description")

	switch status {
	case callbackStatusExpired:
		return entity.Decision{
			Event:   entity.EventExpired,
			Message: "checkout expired, order state is unchanged",
		}
	case callbackStatusReversed:
		return entity.Decision{
			Event:           entity.EventFullyReversed,
			Message:         withDefault(message, "Order was fully reversed."),
			OrderStatus:     OrderStatusTotallyRefunded,
			TransactionType: entity.TransactionRefund,
			Amount:          order.GrandTotal,
			Mutate:          true,
		}
	}

	if reversal := minorAmountField(payload, "reversal_amount"); reversal > 0 {
		return entity.Decision{
			Event:           entity.EventPartiallyReversed,
			Message:         withDefault(message, "Order was partially reversed."),
			OrderStatus:     OrderStatusPartiallyRefunded,
			TransactionType: entity.TransactionRefund,
			Amount:          reversal,
			Mutate:          true,
		}
	}

	if status == callbackStatusDeclined ||
		(status == callbackStatusProcessing && stringField(payload, "actual_amount") == "") {
		return entity.Decision{
			Event:       entity.EventDeclined,
			Message:     withDefault(message, "Order was declined."),
			OrderStatus: c.conf.Statuses.Canceled,
			Mutate:      true,
		}
	}

	if status == callbackStatusApproved {
		transactionType := entity.TransactionOrder
		if stringField(payload, "preauth") == "Y" {
			transactionType = entity.TransactionAuth
		}
		return entity.Decision{
			Event:           entity.EventApproved,
			Message:         withDefault(message, "Order was approved."),
			OrderStatus:     c.conf.Statuses.Paid,
			TransactionType: transactionType,
			Amount:          order.GrandTotal,
			Notify:          true,
			Mutate:          true,
		}
	}

	return entity.Decision{
		Event:   entity.EventUnrecognized,
		Message: fmt.Sprintf("unrecognized order status %s, order state is unchanged", status),
	}
}

// apply performs the side effects of one decision: record the transaction,
// move the order to its new status with a comment, persist, notify.
func (c *Callbacks) apply(ctx context.Context, order *entity.Order, payload map[string]any, decision entity.Decision) error {
	if !decision.Mutate {
		return nil
	}

	paymentId := stringField(payload, "payment_id")

	if decision.TransactionType != "" {
		transaction := &entity.PaymentTransaction{
			TxnId:   paymentId,
			OrderId: order.Id,
			Type:    decision.TransactionType,
			Amount:  decision.Amount,
			Raw:     payload,
			Time:    time.Now(),
		}
		if err := c.database.SaveTransaction(ctx, transaction); err != nil {
			return fmt.Errorf("save transaction for order %v: %v", order.Id, err)
		}

		switch decision.TransactionType {
		case entity.TransactionAuth:
			order.AmountAuthorized = decision.Amount
		case entity.TransactionOrder:
			order.TotalPaid = decision.Amount
		case entity.TransactionRefund:
			order.AmountRefunded += decision.Amount
		}
	}

	order.Status = decision.OrderStatus
	order.AddComment(decision.OrderStatus, callbackComment(decision.Message, stringField(payload, "order_id"), paymentId), decision.Notify)

	if err := c.database.SaveOrder(ctx, order); err != nil {
		return fmt.Errorf("save order %v: %v", order.Id, err)
	}

	if decision.Notify && c.notifier != nil {
		if err := c.notifier.SendPaymentSuccess(ctx, order); err != nil {
			c.logger.Error(fmt.Sprintf("notify customer of order %v", order.Id), err)
		}
	}
	return nil
}

// degrade is the catch-all: the order is parked in the processing status with
// the failure recorded as a comment, and the gateway is told to retry.
func (c *Callbacks) degrade(ctx context.Context, order *entity.Order, payload map[string]any, outcome *entity.CallbackOutcome, cause error) *entity.CallbackOutcome {
	c.logger.Error(fmt.Sprintf("callback for order %v", order.Id), cause)

	order.Status = c.conf.Statuses.Processing
	order.AddComment(order.Status, callbackComment(cause.Error(), stringField(payload, "order_id"), stringField(payload, "payment_id")), false)
	if err := c.database.SaveOrder(ctx, order); err != nil {
		c.logger.Error(fmt.Sprintf("save degraded order %v", order.Id), err)
	}

	outcome.Message = cause.Error()
	outcome.HTTPStatus = http.StatusInternalServerError
	return outcome
}

// ensureOrderStatuses provisions the reversal statuses missing from a fresh
// installation. Failures only get logged, classification does not depend on
// the status records existing.
func (c *Callbacks) ensureOrderStatuses(ctx context.Context) {
	statuses, err := c.database.GetOrderStatuses(ctx)
	if err != nil {
		c.logger.Error("load order statuses", err)
		return
	}

	existing := make(map[string]bool, len(statuses))
	for _, status := range statuses {
		existing[status.Status] = true
	}

	required := []entity.OrderStatus{
		{Status: OrderStatusTotallyRefunded, Label: "Totally Refunded", State: callbackStatusProcessing, VisibleOnFront: true},
		{Status: OrderStatusPartiallyRefunded, Label: "Partially Refunded", State: callbackStatusProcessing, VisibleOnFront: true},
	}
	for _, status := range required {
		if existing[status.Status] {
			continue
		}
		status := status
		if err := c.database.CreateOrderStatus(ctx, &status); err != nil {
			c.logger.Error(fmt.Sprintf("create order status %s", status.Status), err)
		}
	}
}

func callbackComment(message, orderRef, paymentId string) string {
	return fmt.Sprintf("Message: %s Frisbee ID: %s Payment ID: %s", message, orderRef, paymentId)
}

// parseCallbackData decodes the payload by content type: JSON and XML bodies,
// otherwise the query string.
func parseCallbackData(body []byte, contentType string, query url.Values) (map[string]any, error) {
	switch {
	case strings.Contains(contentType, "json"):
		payload := make(map[string]any)
		if err := DecodeJson(body, &payload); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedCallback, err)
		}
		return payload, nil
	case strings.Contains(contentType, "xml"):
		return parseXmlPayload(body)
	default:
		payload := make(map[string]any, len(query))
		for key := range query {
			payload[key] = query.Get(key)
		}
		if len(payload) == 0 {
			return nil, fmt.Errorf("%w: empty payload", ErrMalformedCallback)
		}
		return payload, nil
	}
}

// parseXmlPayload flattens the elements directly under the document root into
// a string map.
func parseXmlPayload(body []byte) (map[string]any, error) {
	payload := make(map[string]any)
	decoder := xml.NewDecoder(bytes.NewReader(body))

	depth := 0
	current := ""
	for {
		token, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedCallback, err)
		}
		switch t := token.(type) {
		case xml.StartElement:
			depth++
			if depth == 2 {
				current = t.Name.Local
			}
		case xml.EndElement:
			if depth == 2 {
				current = ""
			}
			depth--
		case xml.CharData:
			if current == "" {
				continue
			}
			if text := strings.TrimSpace(string(t)); text != "" {
				payload[current] = text
			}
		}
	}

	if len(payload) == 0 {
		return nil, fmt.Errorf("%w: empty payload", ErrMalformedCallback)
	}
	return payload, nil
}

// parseOrderRef extracts the store order id from the gateway reference, the
// part before the "#" separator.
func parseOrderRef(orderRef string) (int, error) {
	if orderRef == "" {
		return 0, fmt.Errorf("%w: missing order_id field", ErrMalformedCallback)
	}
	idPart, _, _ := strings.Cut(orderRef, orderSeparator)
	id, err := strconv.Atoi(idPart)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: invalid order reference %s", ErrMalformedCallback, orderRef)
	}
	return id, nil
}

func stringField(payload map[string]any, name string) string {
	value, ok := payload[name]
	if !ok || value == nil {
		return ""
	}
	switch v := value.(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return fmt.Sprint(v)
	}
}

// minorAmountField reads a money field into minor units; zero when the field
// is absent or unparseable.
func minorAmountField(payload map[string]any, name string) int64 {
	value, ok := payload[name]
	if !ok || value == nil {
		return 0
	}
	switch v := value.(type) {
	case string:
		amount, err := entity.ParseAmount(v)
		if err != nil {
			return 0
		}
		return amount
	case float64:
		amount, err := entity.ParseAmount(strconv.FormatFloat(v, 'f', 2, 64))
		if err != nil {
			return 0
		}
		return amount
	default:
		return 0
	}
}

func withDefault(message, fallback string) string {
	if message == "" {
		return fallback
	}
	return message
}
