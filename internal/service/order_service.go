package service

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/cloud-wave-best-zizon/order-console/internal/domain"
	"github.com/cloud-wave-best-zizon/order-console/internal/events"
	"github.com/cloud-wave-best-zizon/order-console/internal/repository"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ValidationError is returned for request bodies the service refuses.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func invalid(format string, args ...any) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

type OrderService struct {
	orderRepo repository.OrderRepository
	publisher events.Publisher
	logger    *zap.Logger
	now       func() time.Time

	// orderLocks serializes read-modify-write cycles on one order.
	orderLocks sync.Map
}

func NewOrderService(orderRepo repository.OrderRepository, publisher events.Publisher, logger *zap.Logger) *OrderService {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	return &OrderService{
		orderRepo: orderRepo,
		publisher: publisher,
		logger:    logger,
		now:       time.Now,
	}
}

// lockOrder holds the order's mutex until the returned func is called.
func (s *OrderService) lockOrder(id int) func() {
	v, _ := s.orderLocks.LoadOrStore(id, &sync.Mutex{})
	mu := v.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}

func (s *OrderService) publish(ctx context.Context, event events.OrderEvent, requestID string) {
	event.EventID = uuid.New().String()
	event.Timestamp = s.now()
	event.RequestID = requestID

	if err := s.publisher.Publish(ctx, event); err != nil {
		// The write already happened; the event is best effort.
		s.logger.Error("Failed to publish event",
			zap.String("type", string(event.Type)),
			zap.Int("order_id", event.OrderID),
			zap.Error(err))
	}
}

func orderFromFields(userID *int, createTime *int64, status *domain.Status, items []int) (*domain.Order, error) {
	if userID == nil {
		return nil, invalid("Invalid order: missing user_id")
	}
	if createTime == nil {
		return nil, invalid("Invalid order: missing create_time")
	}
	if status == nil {
		return nil, invalid("Invalid order: missing status")
	}
	if !status.Valid() {
		return nil, invalid("Invalid order: unknown status %d", int(*status))
	}
	if items == nil {
		items = []int{}
	}
	return &domain.Order{
		UserID:     *userID,
		CreateTime: *createTime,
		Items:      items,
		Status:     *status,
	}, nil
}

func (s *OrderService) CreateOrder(ctx context.Context, req domain.CreateOrderRequest, requestID string) (*domain.Order, error) {
	order, err := orderFromFields(req.UserID, req.CreateTime, req.Status, req.Items)
	if err != nil {
		return nil, err
	}

	if err := s.orderRepo.CreateOrder(ctx, order); err != nil {
		s.logger.Error("Failed to save order",
			zap.Int("user_id", order.UserID),
			zap.Error(err))
		return nil, err
	}

	s.publish(ctx, events.OrderEvent{
		Type:    events.OrderCreated,
		OrderID: order.ID,
		UserID:  order.UserID,
		Status:  order.Status,
		Items:   order.Items,
	}, requestID)

	s.logger.Info("Order created successfully",
		zap.Int("order_id", order.ID),
		zap.Int("user_id", order.UserID),
		zap.Ints("items", order.Items))

	return order, nil
}

func (s *OrderService) GetOrder(ctx context.Context, id int) (*domain.Order, error) {
	return s.orderRepo.GetOrder(ctx, id)
}

func (s *OrderService) ListOrders(ctx context.Context, userID int) ([]domain.Order, error) {
	return s.orderRepo.ListOrders(ctx, userID)
}

// SearchOrders lists a user's orders in the given status.
func (s *OrderService) SearchOrders(ctx context.Context, userID int, status domain.Status) ([]domain.Order, error) {
	orders, err := s.orderRepo.ListOrders(ctx, userID)
	if err != nil {
		return nil, err
	}
	matched := []domain.Order{}
	for _, o := range orders {
		if o.Status == status {
			matched = append(matched, o)
		}
	}
	return matched, nil
}

// UpdateOrder replaces every field of the order, including create_time.
func (s *OrderService) UpdateOrder(ctx context.Context, id int, req domain.UpdateOrderRequest, requestID string) (*domain.Order, error) {
	order, err := orderFromFields(req.UserID, req.CreateTime, req.Status, req.Items)
	if err != nil {
		return nil, err
	}
	order.ID = id

	unlock := s.lockOrder(id)
	defer unlock()

	if err := s.orderRepo.UpdateOrder(ctx, order); err != nil {
		return nil, err
	}

	s.publish(ctx, events.OrderEvent{
		Type:    events.OrderUpdated,
		OrderID: order.ID,
		UserID:  order.UserID,
		Status:  order.Status,
		Items:   order.Items,
	}, requestID)

	s.logger.Info("Order updated",
		zap.Int("order_id", order.ID),
		zap.Stringer("status", order.Status))
	return order, nil
}

func (s *OrderService) CancelOrder(ctx context.Context, id int, req domain.CancelOrderRequest, requestID string) (*domain.Order, error) {
	if req.Status != domain.StatusCancelled && req.Status != domain.StatusUnrecognized {
		return nil, invalid("cancel requires status %d, got %d", int(domain.StatusCancelled), int(req.Status))
	}

	unlock := s.lockOrder(id)
	defer unlock()

	order, err := s.orderRepo.GetOrder(ctx, id)
	if err != nil {
		return nil, err
	}
	order.Status = domain.StatusCancelled
	if err := s.orderRepo.UpdateOrder(ctx, order); err != nil {
		return nil, err
	}

	s.publish(ctx, events.OrderEvent{
		Type:    events.OrderCancelled,
		OrderID: order.ID,
		UserID:  order.UserID,
		Status:  order.Status,
	}, requestID)

	s.logger.Info("Order cancelled", zap.Int("order_id", order.ID))
	return order, nil
}

// DeleteOrder is idempotent: deleting a missing order succeeds.
func (s *OrderService) DeleteOrder(ctx context.Context, id int, requestID string) error {
	unlock := s.lockOrder(id)
	defer unlock()

	err := s.orderRepo.DeleteOrder(ctx, id)
	if errors.Is(err, repository.ErrOrderNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	s.publish(ctx, events.OrderEvent{Type: events.OrderDeleted, OrderID: id}, requestID)
	s.logger.Info("Order deleted", zap.Int("order_id", id))
	return nil
}

func (s *OrderService) ListItems(ctx context.Context, orderID int) ([]domain.Item, error) {
	if orderID < 0 {
		return nil, invalid("order id %d should not be negative", orderID)
	}
	return s.orderRepo.ListItems(ctx, orderID)
}

// AddItem stores the item row and appends the item id to the order's items.
func (s *OrderService) AddItem(ctx context.Context, orderID int, req domain.AddItemRequest, requestID string) (*domain.Item, error) {
	if req.ItemID == nil {
		return nil, invalid("Invalid item: missing item_id")
	}
	if req.OrderID != nil && *req.OrderID != orderID {
		return nil, invalid("order_id %d in body does not match order %d", *req.OrderID, orderID)
	}

	unlock := s.lockOrder(orderID)
	defer unlock()

	order, err := s.orderRepo.GetOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}

	item := &domain.Item{OrderID: orderID, ItemID: *req.ItemID}
	if err := s.orderRepo.AddItem(ctx, item); err != nil {
		return nil, err
	}

	if !slices.Contains(order.Items, item.ItemID) {
		order.Items = append(order.Items, item.ItemID)
		if err := s.orderRepo.UpdateOrder(ctx, order); err != nil {
			return nil, err
		}
	}

	s.publish(ctx, events.OrderEvent{Type: events.ItemAdded, OrderID: orderID, ItemID: item.ItemID}, requestID)
	return item, nil
}

func (s *OrderService) UpdateItem(ctx context.Context, orderID, itemID int, detail, requestID string) (*domain.Item, error) {
	item, err := s.orderRepo.GetItem(ctx, orderID, itemID)
	if err != nil {
		return nil, err
	}
	item.Detail = detail
	if err := s.orderRepo.UpdateItem(ctx, item); err != nil {
		return nil, err
	}

	s.publish(ctx, events.OrderEvent{Type: events.ItemUpdated, OrderID: orderID, ItemID: itemID}, requestID)
	return item, nil
}

// DeleteItem removes the item row and drops the id from the order's items.
// Like DeleteOrder it succeeds when there is nothing to remove.
func (s *OrderService) DeleteItem(ctx context.Context, orderID, itemID int, requestID string) error {
	unlock := s.lockOrder(orderID)
	defer unlock()

	removed := false

	err := s.orderRepo.DeleteItem(ctx, orderID, itemID)
	switch {
	case err == nil:
		removed = true
	case !errors.Is(err, repository.ErrItemNotFound):
		return err
	}

	order, err := s.orderRepo.GetOrder(ctx, orderID)
	switch {
	case errors.Is(err, repository.ErrOrderNotFound):
		return nil
	case err != nil:
		return err
	}
	if i := slices.Index(order.Items, itemID); i >= 0 {
		order.Items = slices.Delete(order.Items, i, i+1)
		if err := s.orderRepo.UpdateOrder(ctx, order); err != nil {
			return err
		}
		removed = true
	}

	if removed {
		s.publish(ctx, events.OrderEvent{Type: events.ItemRemoved, OrderID: orderID, ItemID: itemID}, requestID)
	}
	return nil
}
