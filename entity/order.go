// Package entity defines data models for the Frisbee payment service.
package entity

import "time"

// Order is the host-shop order as the payment core sees it.
// All monetary fields are integer minor currency units (cents).
type Order struct {
	Id               int            `json:"order_id" bson:"order_id"`
	ExtOrderId       string         `json:"ext_order_id" bson:"ext_order_id"`
	Currency         string         `json:"currency" bson:"currency"`
	GrandTotal       int64          `json:"grand_total" bson:"grand_total"`
	TotalPaid        int64          `json:"total_paid" bson:"total_paid"`
	AmountAuthorized int64          `json:"amount_authorized" bson:"amount_authorized"`
	AmountRefunded   int64          `json:"amount_refunded" bson:"amount_refunded"`
	Status           string         `json:"status" bson:"status"`
	CustomerId       string         `json:"customer_id" bson:"customer_id"`
	CustomerName     string         `json:"customer_name" bson:"customer_name"`
	CustomerEmail    string         `json:"customer_email" bson:"customer_email"`
	Locale           string         `json:"locale" bson:"locale"`
	Items            []OrderItem    `json:"items" bson:"items"`
	BillingAddress   *Address       `json:"billing_address,omitempty" bson:"billing_address"`
	ShippingAddress  *Address       `json:"shipping_address,omitempty" bson:"shipping_address"`
	History          []OrderComment `json:"history" bson:"history"`
}

type OrderItem struct {
	Id       int    `json:"item_id" bson:"item_id"`
	Name     string `json:"name" bson:"name"`
	Price    int64  `json:"price" bson:"price"`
	Qty      int    `json:"qty" bson:"qty"`
	RowTotal int64  `json:"row_total" bson:"row_total"`
}

type Address struct {
	Firstname  string `json:"firstname" bson:"firstname"`
	Middlename string `json:"middlename" bson:"middlename"`
	Lastname   string `json:"lastname" bson:"lastname"`
	Phone      string `json:"phone" bson:"phone"`
	Street     string `json:"street" bson:"street"`
	City       string `json:"city" bson:"city"`
	Region     string `json:"region" bson:"region"`
	Postcode   string `json:"postcode" bson:"postcode"`
	CountryId  string `json:"country_id" bson:"country_id"`
}

// Fullname joins the non-empty name parts with single spaces.
func (a *Address) Fullname() string {
	name := a.Firstname
	if a.Middlename != "" {
		name += " " + a.Middlename
	}
	if a.Lastname != "" {
		name += " " + a.Lastname
	}
	return name
}

// OrderComment is one entry of the order status history.
type OrderComment struct {
	Status   string    `json:"status" bson:"status"`
	Comment  string    `json:"comment" bson:"comment"`
	Notified bool      `json:"notified" bson:"notified"`
	Time     time.Time `json:"time" bson:"time"`
}

// AddComment appends a status-history entry; duplicates are allowed,
// the history is an audit trail.
func (o *Order) AddComment(status, comment string, notified bool) {
	o.History = append(o.History, OrderComment{
		Status:   status,
		Comment:  comment,
		Notified: notified,
		Time:     time.Now(),
	})
}

// OrderStatus is one entry of the external order-status registry.
type OrderStatus struct {
	Status         string `json:"status" bson:"status"`
	Label          string `json:"label" bson:"label"`
	State          string `json:"state" bson:"state"`
	IsDefault      bool   `json:"is_default" bson:"is_default"`
	VisibleOnFront bool   `json:"visible_on_front" bson:"visible_on_front"`
}

// PaymentTransaction records a financial action resolved from a gateway callback.
type PaymentTransaction struct {
	TxnId   string          `json:"txn_id" bson:"txn_id"`
	OrderId int             `json:"order_id" bson:"order_id"`
	Type    TransactionType `json:"type" bson:"type"`
	Amount  int64           `json:"amount" bson:"amount"`
	Raw     map[string]any  `json:"raw" bson:"raw"`
	Time    time.Time       `json:"time" bson:"time"`
}
