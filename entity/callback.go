package entity

// CallbackEvent is the closed set of outcomes a gateway callback resolves to.
type CallbackEvent int

const (
	EventUnrecognized CallbackEvent = iota
	EventApproved
	EventDeclined
	EventExpired
	EventFullyReversed
	EventPartiallyReversed
)

func (e CallbackEvent) String() string {
	switch e {
	case EventApproved:
		return "approved"
	case EventDeclined:
		return "declined"
	case EventExpired:
		return "expired"
	case EventFullyReversed:
		return "fully_reversed"
	case EventPartiallyReversed:
		return "partially_reversed"
	}
	return "unrecognized"
}

// TransactionType classifies the financial action recorded for an order.
type TransactionType string

const (
	TransactionOrder  TransactionType = "order"
	TransactionAuth   TransactionType = "authorization"
	TransactionRefund TransactionType = "refund"
)

// Decision is what the reconciler resolves a callback into. The caller
// pattern-matches on Event and applies the side effects: Mutate says whether
// the order gets a new status, TransactionType is empty when no financial
// action is recorded.
type Decision struct {
	Event           CallbackEvent
	Message         string
	OrderStatus     string
	TransactionType TransactionType
	Amount          int64
	Notify          bool
	Mutate          bool
}

// CallbackOutcome is the reply delivered back to the gateway.
type CallbackOutcome struct {
	OrderId    int    `json:"order_id"`
	Message    string `json:"message"`
	HTTPStatus int    `json:"-"`
}
