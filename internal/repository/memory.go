package repository

import (
	"context"
	"slices"
	"sort"
	"sync"

	"github.com/cloud-wave-best-zizon/order-console/internal/domain"
)

type itemKey struct {
	orderID int
	itemID  int
}

// MemoryRepository keeps everything in process memory.
type MemoryRepository struct {
	mu         sync.RWMutex
	orders     map[int]domain.Order
	items      map[itemKey]domain.Item
	nextOrder  int
	nextItemID int
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		orders: make(map[int]domain.Order),
		items:  make(map[itemKey]domain.Item),
	}
}

func copyOrder(o domain.Order) domain.Order {
	o.Items = slices.Clone(o.Items)
	if o.Items == nil {
		o.Items = []int{}
	}
	return o
}

func (r *MemoryRepository) CreateOrder(ctx context.Context, order *domain.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextOrder++
	order.ID = r.nextOrder
	r.orders[order.ID] = copyOrder(*order)
	return nil
}

func (r *MemoryRepository) GetOrder(ctx context.Context, id int) (*domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	o, ok := r.orders[id]
	if !ok {
		return nil, ErrOrderNotFound
	}
	o = copyOrder(o)
	return &o, nil
}

func (r *MemoryRepository) UpdateOrder(ctx context.Context, order *domain.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.orders[order.ID]; !ok {
		return ErrOrderNotFound
	}
	r.orders[order.ID] = copyOrder(*order)
	return nil
}

// DeleteOrder removes the order and cascades to its item rows.
func (r *MemoryRepository) DeleteOrder(ctx context.Context, id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.orders[id]; !ok {
		return ErrOrderNotFound
	}
	delete(r.orders, id)
	for k := range r.items {
		if k.orderID == id {
			delete(r.items, k)
		}
	}
	return nil
}

func (r *MemoryRepository) ListOrders(ctx context.Context, userID int) ([]domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := []domain.Order{}
	for _, o := range r.orders {
		if o.UserID == userID {
			result = append(result, copyOrder(o))
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (r *MemoryRepository) AddItem(ctx context.Context, item *domain.Item) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.orders[item.OrderID]; !ok {
		return ErrOrderNotFound
	}
	if _, ok := r.items[itemKey{item.OrderID, item.ItemID}]; ok {
		return ErrItemExists
	}
	r.nextItemID++
	item.ID = r.nextItemID
	r.items[itemKey{item.OrderID, item.ItemID}] = *item
	return nil
}

func (r *MemoryRepository) GetItem(ctx context.Context, orderID, itemID int) (*domain.Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	it, ok := r.items[itemKey{orderID, itemID}]
	if !ok {
		return nil, ErrItemNotFound
	}
	return &it, nil
}

func (r *MemoryRepository) UpdateItem(ctx context.Context, item *domain.Item) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	k := itemKey{item.OrderID, item.ItemID}
	if _, ok := r.items[k]; !ok {
		return ErrItemNotFound
	}
	r.items[k] = *item
	return nil
}

func (r *MemoryRepository) DeleteItem(ctx context.Context, orderID, itemID int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	k := itemKey{orderID, itemID}
	if _, ok := r.items[k]; !ok {
		return ErrItemNotFound
	}
	delete(r.items, k)
	return nil
}

func (r *MemoryRepository) ListItems(ctx context.Context, orderID int) ([]domain.Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := []domain.Item{}
	for k, it := range r.items {
		if k.orderID == orderID {
			result = append(result, it)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}
