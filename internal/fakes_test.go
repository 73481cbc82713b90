package internal

import (
	"context"

	"frisbee/config"
	"frisbee/entity"
	"frisbee/services"
)

// Shared test doubles for the checkout and callback suites.

type nopLogger struct{}

func (nopLogger) Debug(string)        {}
func (nopLogger) Info(string)         {}
func (nopLogger) Warn(string)         {}
func (nopLogger) Error(string, error) {}

type fakeDatabase struct {
	orders       map[int]*entity.Order
	savedOrders  []*entity.Order
	transactions []*entity.PaymentTransaction
	statuses     []entity.OrderStatus
	saveErr      error
}

func newFakeDatabase(orders ...*entity.Order) *fakeDatabase {
	db := &fakeDatabase{orders: make(map[int]*entity.Order)}
	for _, order := range orders {
		db.orders[order.Id] = order
	}
	return db
}

func (f *fakeDatabase) WriteLogMessage(services.Data) error {
	return nil
}

func (f *fakeDatabase) GetOrder(_ context.Context, id int) (*entity.Order, error) {
	order, ok := f.orders[id]
	if !ok {
		return nil, ErrOrderNotFound
	}
	return order, nil
}

func (f *fakeDatabase) SaveOrder(_ context.Context, order *entity.Order) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.savedOrders = append(f.savedOrders, order)
	return nil
}

func (f *fakeDatabase) SaveTransaction(_ context.Context, transaction *entity.PaymentTransaction) error {
	f.transactions = append(f.transactions, transaction)
	return nil
}

func (f *fakeDatabase) GetOrderStatuses(_ context.Context) ([]entity.OrderStatus, error) {
	return f.statuses, nil
}

func (f *fakeDatabase) CreateOrderStatus(_ context.Context, status *entity.OrderStatus) error {
	f.statuses = append(f.statuses, *status)
	return nil
}

type fakeGateway struct {
	credentials  string
	err          error
	calls        int
	reverseCalls int
	lastParams   map[string]any
}

func (f *fakeGateway) Request(context.Context, string, map[string]any) (*entity.Envelope, error) {
	return nil, f.err
}

func (f *fakeGateway) RequestCheckoutCredentials(_ context.Context, _ entity.Strategy, params map[string]any) (string, error) {
	f.calls++
	f.lastParams = params
	return f.credentials, f.err
}

func (f *fakeGateway) Reverse(_ context.Context, _ entity.Strategy, params map[string]any) (*entity.Envelope, error) {
	f.reverseCalls++
	f.lastParams = params
	if f.err != nil {
		return nil, f.err
	}
	return &entity.Envelope{Response: map[string]any{"response_status": "success"}}, nil
}

func testConfig() *config.Config {
	conf := &config.Config{}
	conf.Merchant.Id = "1396424"
	conf.Merchant.CallbackUrl = "https://shop.example.com/callback"
	conf.Merchant.ResponseUrl = "https://shop.example.com/response"
	conf.Methods.Cards.Enabled = true
	conf.Methods.Cards.Title = "Pay by card"
	conf.Statuses.Processing = "processing"
	conf.Statuses.Canceled = "canceled"
	conf.Statuses.Paid = "complete"
	conf.Shop.Title = "Example Shop"
	conf.Shop.Domain = "shop.example.com"
	conf.Shop.CmsName = "Frisbee Go"
	conf.Shop.CmsVersion = "1.0"
	return conf
}

func testOrder() *entity.Order {
	return &entity.Order{
		Id:            7,
		Currency:      "EUR",
		GrandTotal:    2550,
		Status:        "pending",
		CustomerId:    "42",
		CustomerName:  "Jane Roe",
		CustomerEmail: "jane@example.com",
		Locale:        "en_US",
		Items: []entity.OrderItem{
			{Id: 1, Name: "Mug", Price: 1050, Qty: 1, RowTotal: 1050},
			{Id: 2, Name: "Coaster", Price: 750, Qty: 2, RowTotal: 1500},
		},
		BillingAddress: &entity.Address{
			Firstname: "Jane",
			Lastname:  "Roe",
			Phone:     "+37120000000",
			Street:    "Brivibas 1",
			City:      "Riga",
			Postcode:  "LV-1001",
			CountryId: "LV",
		},
	}
}
