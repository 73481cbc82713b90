package internal

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"frisbee/config"
	"frisbee/entity"
	"frisbee/services"

	"gitee.com/golang-module/dongle"
)

const (
	orderSeparator = "#"

	paymentMethodCards     = "card"
	paymentMethodBankLinks = "banklinks_eu"
	paymentMethodWallets   = "wallets"

	credentialsLifetime = 3600 * time.Second
)

// Checkout assembles signed checkout requests from order data and manages the
// per-session credential cache that keeps repeated requests from creating
// duplicate gateway checkouts.
type Checkout struct {
	conf     *config.Config
	database services.Database
	gateway  services.Gateway
	logger   services.LogHandler
}

func NewCheckout(conf *config.Config) *Checkout {
	return &Checkout{conf: conf}
}

func (c *Checkout) SetDatabase(database services.Database) {
	c.database = database
}

func (c *Checkout) SetGateway(gateway services.Gateway) {
	c.gateway = gateway
}

func (c *Checkout) SetLogger(logger services.LogHandler) {
	c.logger = logger
}

// Checkout prepares the request for one order, negotiates credentials with
// the gateway (or reuses the cached ones) and returns the result for the
// frontend. Gateway failures are converted to a status message in the result,
// never propagated as errors; only order lookup and persistence failures are.
func (c *Checkout) Checkout(ctx context.Context, store services.SessionStore, orderId int, method string) (*entity.CheckoutResult, error) {
	if c.database == nil {
		return nil, fmt.Errorf("database not set")
	}

	order, err := c.database.GetOrder(ctx, orderId)
	if err != nil {
		return nil, err
	}

	params, strategy, orderRef := c.Prepare(order, method)
	result := &entity.CheckoutResult{OrderRef: orderRef}

	credentials, err := c.RetrieveCheckoutCredentials(ctx, store, strategy, params, orderRef)
	if err != nil {
		c.logger.Error(fmt.Sprintf("checkout credentials for order %v", orderId), err)
		result.Message = err.Error()
	}

	order.ExtOrderId = orderRef
	order.Status = c.conf.Statuses.Processing
	if err := c.database.SaveOrder(ctx, order); err != nil {
		return nil, fmt.Errorf("save order %v: %v", orderId, err)
	}

	if credentials == "" {
		return result, nil
	}

	if strategy.IsEmbedded() {
		result.Token = credentials
		result.Options = c.GenerateCheckoutOptions(params, credentials)
	} else {
		result.Url = credentials
	}
	return result, nil
}

// Prepare applies the configuration toggles in a fixed order and assembles the
// request parameters for one order. It returns the parameters, the selected
// strategy and the gateway order reference (external id when the order already
// has one, otherwise "<id>#<unix-time>").
func (c *Checkout) Prepare(order *entity.Order, method string) (map[string]any, entity.Strategy, string) {
	conf := c.conf
	params := make(map[string]any)

	var systems []string
	if conf.Methods.Cards.Enabled {
		systems = append(systems, paymentMethodCards)
	}
	if conf.Methods.BankLinks.Enabled {
		systems = append(systems, paymentMethodBankLinks)
		params["default_payment_system"] = paymentMethodBankLinks
	}
	if conf.Methods.Wallets.Enabled {
		systems = append(systems, paymentMethodWallets)
	}
	if len(systems) > 0 {
		params["payment_systems"] = systems
	}

	orderRef := order.ExtOrderId
	if orderRef == "" {
		orderRef = fmt.Sprintf("%d%s%d", order.Id, orderSeparator, time.Now().Unix())
	}

	params["order_id"] = orderRef
	params["merchant_id"] = strings.TrimSpace(conf.Merchant.Id)
	params["order_desc"] = orderDescription(order)
	params["amount"] = order.GrandTotal
	params["currency"] = order.Currency
	params["server_callback_url"] = conf.Merchant.CallbackUrl
	params["response_url"] = conf.Merchant.ResponseUrl
	params["lang"] = languageCode(order.Locale)
	params["sender_email"] = order.CustomerEmail
	params["reservation_data"] = c.reservationData(order)
	params["merchant_data"] = merchantData(order)
	params["user_agent"] = requestUserAgent
	params["lifetime"] = int64(credentialsLifetime / time.Second)
	if conf.Merchant.PreAuth {
		params["preauth"] = "Y"
	}

	strategy := entity.SelectStrategy(method, conf.Merchant.PaymentType == "embedded", conf.Merchant.TestMode)
	return params, strategy, orderRef
}

// RetrieveCheckoutCredentials returns credentials for the prepared request,
// reusing the session cache when the fingerprint matches a live entry. The
// hash store is first-writer-wins per strategy key: a second concurrent
// request within the TTL reuses the stored credentials instead of opening a
// second gateway checkout. If neither path yields credentials, one forced
// fresh request is the last resort.
func (c *Checkout) RetrieveCheckoutCredentials(ctx context.Context, store services.SessionStore, strategy entity.Strategy, params map[string]any, orderRef string) (string, error) {
	prepared := prepareRequestParameters(params)
	uniqueHash := CheckoutFingerprint(orderRef, prepared)

	var credentials string
	var err error
	if c.isCheckoutSessionUnique(ctx, store, strategy, uniqueHash) {
		credentials, err = c.gateway.RequestCheckoutCredentials(ctx, strategy, prepared)
	} else {
		credentials, _ = store.Get(ctx, strategy.SessionKeyCredentials())
	}

	if credentials != "" {
		if !store.Has(ctx, strategy.SessionKeyHash()) {
			if err := store.Set(ctx, strategy.SessionKeyHash(), uniqueHash, credentialsLifetime); err != nil {
				c.logger.Error("store checkout hash", err)
			}
			if err := store.Set(ctx, strategy.SessionKeyCredentials(), credentials, credentialsLifetime); err != nil {
				c.logger.Error("store checkout credentials", err)
			}
		}
		return credentials, nil
	}
	if err != nil {
		return "", err
	}

	return c.gateway.RequestCheckoutCredentials(ctx, strategy, prepared)
}

func (c *Checkout) isCheckoutSessionUnique(ctx context.Context, store services.SessionStore, strategy entity.Strategy, hash string) bool {
	stored, ok := store.Get(ctx, strategy.SessionKeyHash())
	return !ok || stored != hash
}

// Refund builds the minimal reversal parameter set and executes it against
// the gateway, then records the refund on the order.
func (c *Checkout) Refund(ctx context.Context, orderId int, amount int64) error {
	if c.database == nil {
		return fmt.Errorf("database not set")
	}
	if amount <= 0 {
		return fmt.Errorf("amount to refund is zero")
	}

	order, err := c.database.GetOrder(ctx, orderId)
	if err != nil {
		return err
	}
	if order.ExtOrderId == "" {
		return fmt.Errorf("order %v has no gateway reference", orderId)
	}

	params := map[string]any{
		"order_id":    order.ExtOrderId,
		"currency":    order.Currency,
		"amount":      amount,
		"merchant_id": strings.TrimSpace(c.conf.Merchant.Id),
	}

	strategy := entity.RedirectStrategy(c.conf.Merchant.TestMode)
	if _, err = c.gateway.Reverse(ctx, strategy, params); err != nil {
		c.logger.Error(fmt.Sprintf("reverse order %v", orderId), err)
		return err
	}

	order.AmountRefunded += amount
	status := OrderStatusPartiallyRefunded
	if order.AmountRefunded >= order.GrandTotal {
		status = OrderStatusTotallyRefunded
	}
	order.Status = status
	order.AddComment(status, fmt.Sprintf("Message: Order was reversed. Frisbee ID: %s", order.ExtOrderId), false)

	if err := c.database.SaveOrder(ctx, order); err != nil {
		return fmt.Errorf("save order %v: %v", orderId, err)
	}
	return nil
}

// GenerateCheckoutOptions builds the UI-options envelope for the embedded
// widget. Pure data transform, no I/O: the token replaces amount/currency in
// the parameter set when present.
func (c *Checkout) GenerateCheckoutOptions(params map[string]any, token string) map[string]any {
	conf := c.conf
	p := cloneParams(params)
	lang, _ := p["lang"].(string)

	messages := make(map[string]map[string]string)
	setTitle := func(methodName, title string) {
		if title == "" || lang == "" {
			return
		}
		if messages[lang] == nil {
			messages[lang] = make(map[string]string)
		}
		messages[lang][methodName] = title
	}

	if conf.Methods.Cards.Enabled {
		setTitle(paymentMethodCards, conf.Methods.Cards.Title)
	}
	if conf.Methods.BankLinks.Enabled {
		setTitle(paymentMethodBankLinks, conf.Methods.BankLinks.Title)
		if conf.Methods.BankLinks.Countries != "" {
			p["countries"] = strings.Split(conf.Methods.BankLinks.Countries, ",")
		}
		if conf.Methods.BankLinks.DefaultCountry != "" {
			p["default_country"] = conf.Methods.BankLinks.DefaultCountry
		}
	}
	if conf.Methods.Wallets.Enabled {
		setTitle(paymentMethodWallets, conf.Methods.Wallets.Title)
	}
	if conf.Shop.Title != "" {
		p["title"] = conf.Shop.Title
	}

	options := map[string]any{
		"fields":      false,
		"full_screen": false,
		"button":      true,
	}
	if systems, ok := p["payment_systems"].([]string); ok && len(systems) > 0 {
		options["methods"] = systems
	} else {
		options["methods"] = []string{paymentMethodCards}
	}
	if defaultSystem, ok := p["default_payment_system"].(string); ok && defaultSystem == paymentMethodBankLinks {
		options["active_tab"] = defaultSystem
	}
	if value, ok := p["default_country"]; ok {
		options["default_country"] = value
	}
	if value, ok := p["countries"]; ok {
		options["countries"] = value
	}
	if value, ok := p["title"]; ok {
		options["title"] = value
	}
	if lang != "" {
		options["locales"] = []string{lang}
	}
	if value, ok := p["response_url"]; ok {
		options["link"] = value
	}

	outParams := cloneParams(p)
	if id, err := strconv.Atoi(strings.TrimSpace(conf.Merchant.Id)); err == nil {
		outParams["merchant_id"] = id
	}
	if token != "" {
		outParams["token"] = token
		delete(outParams, "amount")
		delete(outParams, "currency")
	}

	out := map[string]any{
		"options": options,
		"params":  outParams,
	}
	if len(messages) > 0 {
		out["messages"] = messages
	}
	return out
}

// prepareRequestParameters takes the immutable snapshot that is hashed and
// sent: list-valued parameters are joined to comma-separated strings.
func prepareRequestParameters(params map[string]any) map[string]any {
	prepared := cloneParams(params)
	if systems, ok := prepared["payment_systems"].([]string); ok {
		prepared["payment_systems"] = strings.Join(systems, ",")
	}
	if countries, ok := prepared["countries"].([]string); ok {
		prepared["countries"] = strings.Join(countries, ",")
	}
	return prepared
}

func cloneParams(params map[string]any) map[string]any {
	clone := make(map[string]any, len(params))
	for key, value := range params {
		clone[key] = value
	}
	return clone
}

// orderDescription concatenates each line item's name, price, quantity and
// row total the way the gateway displays it.
func orderDescription(order *entity.Order) string {
	var b strings.Builder
	for _, item := range order.Items {
		b.WriteString(fmt.Sprintf("Name: %s ", item.Name))
		b.WriteString(fmt.Sprintf("Price: %s ", entity.FormatAmount(item.Price)))
		b.WriteString(fmt.Sprintf("Qty: %d ", item.Qty))
		b.WriteString(fmt.Sprintf("Amount: %s\n", entity.FormatAmount(item.RowTotal)))
	}
	return b.String()
}

// reservationData collects billing address, country code, product list and
// shop metadata as base64-of-JSON; empty when the order has no billing
// address or the data cannot be serialized.
func (c *Checkout) reservationData(order *entity.Order) string {
	billing := order.BillingAddress
	if billing == nil {
		return ""
	}

	data := map[string]any{
		"phonemobile":      billing.Phone,
		"customer_address": billing.Street,
		"customer_country": CountryThreeLetter(billing.CountryId),
		"customer_state":   billing.Region,
		"customer_name":    order.CustomerName,
		"customer_city":    billing.City,
		"customer_zip":     billing.Postcode,
		"account":          order.CustomerId,
		"products":         productsParameter(order),
		"cms_name":         c.conf.Shop.CmsName,
		"cms_version":      c.conf.Shop.CmsVersion,
		"shop_domain":      c.conf.Shop.Domain,
		"uuid":             fmt.Sprintf("%s_%s", c.conf.Shop.Domain, c.conf.Shop.CmsName),
	}

	encoded, err := EncodeJson(data)
	if err != nil {
		return ""
	}
	return dongle.Encode.FromBytes(encoded).ByBase64().ToString()
}

func productsParameter(order *entity.Order) []map[string]string {
	products := make([]map[string]string, 0, len(order.Items))
	for _, item := range order.Items {
		products = append(products, map[string]string{
			"id":           strconv.Itoa(item.Id),
			"name":         item.Name,
			"price":        entity.FormatAmount(item.Price),
			"total_amount": entity.FormatAmount(item.RowTotal),
			"quantity":     entity.FormatAmount(int64(item.Qty) * 100),
		})
	}
	return products
}

// merchantData carries the first available of the billing or shipping full
// name as a JSON string; empty when the order has neither.
func merchantData(order *entity.Order) string {
	address := order.BillingAddress
	if address == nil {
		address = order.ShippingAddress
	}
	if address == nil {
		return ""
	}
	encoded, err := EncodeJson(map[string]string{"Fullname": address.Fullname()})
	if err != nil {
		return ""
	}
	return string(encoded)
}

// languageCode is the locale prefix before the first underscore: en_US -> en.
func languageCode(locale string) string {
	lang, _, _ := strings.Cut(locale, "_")
	return lang
}
