package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/cloud-wave-best-zizon/order-console/internal/domain"
	"github.com/cloud-wave-best-zizon/order-console/internal/events"
	"github.com/cloud-wave-best-zizon/order-console/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type recordingPublisher struct {
	events []events.OrderEvent
	err    error
}

func (p *recordingPublisher) Publish(ctx context.Context, event events.OrderEvent) error {
	if p.err != nil {
		return p.err
	}
	p.events = append(p.events, event)
	return nil
}

func (p *recordingPublisher) Close() error { return nil }

func (p *recordingPublisher) types() []events.EventType {
	var out []events.EventType
	for _, e := range p.events {
		out = append(out, e.Type)
	}
	return out
}

func newTestService(t *testing.T) (*OrderService, *recordingPublisher) {
	t.Helper()
	pub := &recordingPublisher{}
	svc := NewOrderService(repository.NewMemoryRepository(), pub, zap.NewNop())
	svc.now = func() time.Time { return time.Unix(1700000000, 0) }
	return svc, pub
}

func ptr[T any](v T) *T { return &v }

func createReq(userID int, items ...int) domain.CreateOrderRequest {
	return domain.CreateOrderRequest{
		UserID:     ptr(userID),
		CreateTime: ptr(int64(1700000000)),
		Items:      items,
		Status:     ptr(domain.StatusCreated),
	}
}

func TestCreateOrder(t *testing.T) {
	svc, pub := newTestService(t)
	ctx := context.Background()

	order, err := svc.CreateOrder(ctx, createReq(7, 1, 2), "req-1")
	require.NoError(t, err)
	assert.Equal(t, 1, order.ID)
	assert.Equal(t, []int{1, 2}, order.Items)

	require.Len(t, pub.events, 1)
	evt := pub.events[0]
	assert.Equal(t, events.OrderCreated, evt.Type)
	assert.Equal(t, "req-1", evt.RequestID)
	assert.NotEmpty(t, evt.EventID)
	assert.Equal(t, time.Unix(1700000000, 0), evt.Timestamp)
}

func TestCreateOrderValidation(t *testing.T) {
	svc, pub := newTestService(t)

	tests := []struct {
		name string
		mod  func(r *domain.CreateOrderRequest)
		msg  string
	}{
		{"missing user", func(r *domain.CreateOrderRequest) { r.UserID = nil }, "Invalid order: missing user_id"},
		{"missing create time", func(r *domain.CreateOrderRequest) { r.CreateTime = nil }, "Invalid order: missing create_time"},
		{"missing status", func(r *domain.CreateOrderRequest) { r.Status = nil }, "Invalid order: missing status"},
		{"bad status", func(r *domain.CreateOrderRequest) { r.Status = ptr(domain.Status(9)) }, "Invalid order: unknown status 9"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := createReq(1)
			tt.mod(&req)
			_, err := svc.CreateOrder(context.Background(), req, "")
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.msg, verr.Message)
		})
	}
	assert.Empty(t, pub.events)
}

func TestCreateOrderNilItemsStoredEmpty(t *testing.T) {
	svc, _ := newTestService(t)
	order, err := svc.CreateOrder(context.Background(), createReq(1), "")
	require.NoError(t, err)
	assert.Equal(t, []int{}, order.Items)
}

func TestPublishFailureDoesNotFailWrite(t *testing.T) {
	svc, pub := newTestService(t)
	pub.err = errors.New("broker down")

	order, err := svc.CreateOrder(context.Background(), createReq(1), "")
	require.NoError(t, err)

	got, err := svc.GetOrder(context.Background(), order.ID)
	require.NoError(t, err)
	assert.Equal(t, order.ID, got.ID)
}

func TestSearchOrdersFiltersByStatus(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	a, err := svc.CreateOrder(ctx, createReq(5), "")
	require.NoError(t, err)
	b, err := svc.CreateOrder(ctx, createReq(5), "")
	require.NoError(t, err)
	_, err = svc.CreateOrder(ctx, createReq(6), "")
	require.NoError(t, err)
	_, err = svc.CancelOrder(ctx, b.ID, domain.CancelOrderRequest{Status: domain.StatusCancelled}, "")
	require.NoError(t, err)

	created, err := svc.SearchOrders(ctx, 5, domain.StatusCreated)
	require.NoError(t, err)
	require.Len(t, created, 1)
	assert.Equal(t, a.ID, created[0].ID)

	cancelled, err := svc.SearchOrders(ctx, 5, domain.StatusCancelled)
	require.NoError(t, err)
	require.Len(t, cancelled, 1)
	assert.Equal(t, b.ID, cancelled[0].ID)

	none, err := svc.SearchOrders(ctx, 5, domain.StatusCompleted)
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)
}

func TestUpdateOrderReplacesFields(t *testing.T) {
	svc, pub := newTestService(t)
	ctx := context.Background()

	order, err := svc.CreateOrder(ctx, createReq(1, 1), "")
	require.NoError(t, err)

	updated, err := svc.UpdateOrder(ctx, order.ID, domain.UpdateOrderRequest{
		UserID:     ptr(2),
		CreateTime: ptr(int64(1800000000)),
		Items:      []int{4, 5},
		Status:     ptr(domain.StatusCompleted),
	}, "")
	require.NoError(t, err)

	got, err := svc.GetOrder(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, updated, got)
	assert.Equal(t, int64(1800000000), got.CreateTime)
	assert.Equal(t, []events.EventType{events.OrderCreated, events.OrderUpdated}, pub.types())

	_, err = svc.UpdateOrder(ctx, 99, domain.UpdateOrderRequest{
		UserID:     ptr(2),
		CreateTime: ptr(int64(1)),
		Status:     ptr(domain.StatusCreated),
	}, "")
	assert.ErrorIs(t, err, repository.ErrOrderNotFound)
}

func TestCancelOrder(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	order, err := svc.CreateOrder(ctx, createReq(1), "")
	require.NoError(t, err)

	_, err = svc.CancelOrder(ctx, order.ID, domain.CancelOrderRequest{Status: domain.StatusCompleted}, "")
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)

	cancelled, err := svc.CancelOrder(ctx, order.ID, domain.CancelOrderRequest{Status: domain.StatusCancelled}, "")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCancelled, cancelled.Status)

	_, err = svc.CancelOrder(ctx, 99, domain.CancelOrderRequest{Status: domain.StatusCancelled}, "")
	assert.ErrorIs(t, err, repository.ErrOrderNotFound)
}

func TestDeleteOrderIsIdempotent(t *testing.T) {
	svc, pub := newTestService(t)
	ctx := context.Background()

	order, err := svc.CreateOrder(ctx, createReq(1), "")
	require.NoError(t, err)

	require.NoError(t, svc.DeleteOrder(ctx, order.ID, ""))
	require.NoError(t, svc.DeleteOrder(ctx, order.ID, ""))

	_, err = svc.GetOrder(ctx, order.ID)
	assert.ErrorIs(t, err, repository.ErrOrderNotFound)
	assert.Equal(t, []events.EventType{events.OrderCreated, events.OrderDeleted}, pub.types())
}

func TestItemLifecycle(t *testing.T) {
	svc, pub := newTestService(t)
	ctx := context.Background()

	order, err := svc.CreateOrder(ctx, createReq(1, 3), "")
	require.NoError(t, err)

	item, err := svc.AddItem(ctx, order.ID, domain.AddItemRequest{OrderID: ptr(order.ID), ItemID: ptr(9)}, "")
	require.NoError(t, err)
	assert.Equal(t, 9, item.ItemID)

	got, err := svc.GetOrder(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, []int{3, 9}, got.Items)

	updated, err := svc.UpdateItem(ctx, order.ID, 9, "gift wrap", "")
	require.NoError(t, err)
	assert.Equal(t, "gift wrap", updated.Detail)

	items, err := svc.ListItems(ctx, order.ID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "gift wrap", items[0].Detail)

	require.NoError(t, svc.DeleteItem(ctx, order.ID, 9, ""))
	got, err = svc.GetOrder(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, []int{3}, got.Items)

	items, err = svc.ListItems(ctx, order.ID)
	require.NoError(t, err)
	assert.Empty(t, items)

	assert.Equal(t, []events.EventType{
		events.OrderCreated, events.ItemAdded, events.ItemUpdated, events.ItemRemoved,
	}, pub.types())
}

func TestDeleteItemWithoutRowStillDropsID(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	order, err := svc.CreateOrder(ctx, createReq(1, 3, 4), "")
	require.NoError(t, err)

	require.NoError(t, svc.DeleteItem(ctx, order.ID, 3, ""))
	got, err := svc.GetOrder(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, []int{4}, got.Items)

	require.NoError(t, svc.DeleteItem(ctx, 42, 1, ""))
}

func TestAddItemErrors(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	order, err := svc.CreateOrder(ctx, createReq(1), "")
	require.NoError(t, err)

	var verr *ValidationError
	_, err = svc.AddItem(ctx, order.ID, domain.AddItemRequest{OrderID: ptr(order.ID)}, "")
	require.ErrorAs(t, err, &verr)

	_, err = svc.AddItem(ctx, order.ID, domain.AddItemRequest{OrderID: ptr(order.ID + 1), ItemID: ptr(1)}, "")
	require.ErrorAs(t, err, &verr)

	_, err = svc.AddItem(ctx, 99, domain.AddItemRequest{ItemID: ptr(1)}, "")
	assert.ErrorIs(t, err, repository.ErrOrderNotFound)

	_, err = svc.AddItem(ctx, order.ID, domain.AddItemRequest{ItemID: ptr(1)}, "")
	require.NoError(t, err)
	_, err = svc.AddItem(ctx, order.ID, domain.AddItemRequest{ItemID: ptr(1)}, "")
	assert.ErrorIs(t, err, repository.ErrItemExists)

	_, err = svc.UpdateItem(ctx, order.ID, 2, "x", "")
	assert.ErrorIs(t, err, repository.ErrItemNotFound)
}

func TestListItemsRejectsNegativeOrder(t *testing.T) {
	svc, _ := newTestService(t)
	_, err := svc.ListItems(context.Background(), -1)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "order id -1 should not be negative", verr.Message)
}

func TestConcurrentItemChangesKeepOrderItemsInSync(t *testing.T) {
	svc := NewOrderService(repository.NewMemoryRepository(), events.NopPublisher{}, zap.NewNop())
	ctx := context.Background()

	order, err := svc.CreateOrder(ctx, createReq(1), "")
	require.NoError(t, err)

	const n = 500
	var wg sync.WaitGroup
	for i := 1; i <= n; i++ {
		wg.Add(1)
		go func(itemID int) {
			defer wg.Done()
			_, err := svc.AddItem(ctx, order.ID, domain.AddItemRequest{ItemID: ptr(itemID)}, "")
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	got, err := svc.GetOrder(ctx, order.ID)
	require.NoError(t, err)
	items, err := svc.ListItems(ctx, order.ID)
	require.NoError(t, err)
	assert.Len(t, items, n)
	assert.Len(t, got.Items, n)

	for i := 1; i <= n; i += 2 {
		wg.Add(1)
		go func(itemID int) {
			defer wg.Done()
			assert.NoError(t, svc.DeleteItem(ctx, order.ID, itemID, ""))
		}(i)
	}
	wg.Wait()

	got, err = svc.GetOrder(ctx, order.ID)
	require.NoError(t, err)
	items, err = svc.ListItems(ctx, order.ID)
	require.NoError(t, err)
	assert.Len(t, items, n/2)
	require.Len(t, got.Items, n/2)
	for _, id := range got.Items {
		assert.Zero(t, id%2, "odd item %d survived", id)
	}
}
