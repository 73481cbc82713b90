package services

import (
	"context"

	"frisbee/entity"
)

type Database interface {
	WriteLogMessage(data Data) error

	GetOrder(ctx context.Context, id int) (*entity.Order, error)
	SaveOrder(ctx context.Context, order *entity.Order) error

	SaveTransaction(ctx context.Context, transaction *entity.PaymentTransaction) error

	GetOrderStatuses(ctx context.Context) ([]entity.OrderStatus, error)
	CreateOrderStatus(ctx context.Context, status *entity.OrderStatus) error
}

type Data interface {
	DataType() string
}

type LogHandler interface {
	Debug(message string)
	Info(message string)
	Warn(message string)
	Error(message string, err error)
}
