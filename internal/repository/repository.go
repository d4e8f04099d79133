package repository

import (
	"context"
	"errors"

	"github.com/cloud-wave-best-zizon/order-console/internal/domain"
)

var (
	ErrOrderNotFound = errors.New("order not found")
	ErrItemNotFound  = errors.New("item not found")
	ErrItemExists    = errors.New("item already in order")
)

// OrderRepository stores orders and their item rows. Create assigns the id;
// the id field of the argument is ignored.
type OrderRepository interface {
	CreateOrder(ctx context.Context, order *domain.Order) error
	GetOrder(ctx context.Context, id int) (*domain.Order, error)
	UpdateOrder(ctx context.Context, order *domain.Order) error
	DeleteOrder(ctx context.Context, id int) error
	ListOrders(ctx context.Context, userID int) ([]domain.Order, error)

	AddItem(ctx context.Context, item *domain.Item) error
	GetItem(ctx context.Context, orderID, itemID int) (*domain.Item, error)
	UpdateItem(ctx context.Context, item *domain.Item) error
	DeleteItem(ctx context.Context, orderID, itemID int) error
	ListItems(ctx context.Context, orderID int) ([]domain.Item, error)
}
