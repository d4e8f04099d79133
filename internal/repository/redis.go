package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strconv"

	"github.com/cloud-wave-best-zizon/order-console/internal/domain"
	"github.com/go-redis/redis/v8"
)

const (
	redisOrderSeq = "orders:seq"
	redisItemSeq  = "items:seq"
)

func redisOrderKey(id int) string { return fmt.Sprintf("order:%d", id) }
func redisOrderItemsKey(id int) string { return fmt.Sprintf("order:%d:items", id) }
func redisUserOrdersKey(userID int) string { return fmt.Sprintf("user:%d:orders", userID) }

// RedisRepository stores each order as a JSON string, its items in a hash
// keyed by item id, and a per-user set of order ids.
type RedisRepository struct {
	client *redis.Client
}

func NewRedisClient(url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}
	return redis.NewClient(opts), nil
}

func NewRedisRepository(client *redis.Client) *RedisRepository {
	return &RedisRepository{client: client}
}

func (r *RedisRepository) CreateOrder(ctx context.Context, order *domain.Order) error {
	id, err := r.client.Incr(ctx, redisOrderSeq).Result()
	if err != nil {
		return fmt.Errorf("failed to allocate order id: %w", err)
	}
	order.ID = int(id)
	if order.Items == nil {
		order.Items = []int{}
	}

	data, err := json.Marshal(order)
	if err != nil {
		return fmt.Errorf("failed to marshal order: %w", err)
	}
	_, err = r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, redisOrderKey(order.ID), data, 0)
		pipe.SAdd(ctx, redisUserOrdersKey(order.UserID), order.ID)
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to save order: %w", err)
	}
	return nil
}

func (r *RedisRepository) GetOrder(ctx context.Context, id int) (*domain.Order, error) {
	data, err := r.client.Get(ctx, redisOrderKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}

	var order domain.Order
	if err := json.Unmarshal(data, &order); err != nil {
		return nil, fmt.Errorf("failed to unmarshal order %d: %w", id, err)
	}
	return &order, nil
}

func (r *RedisRepository) UpdateOrder(ctx context.Context, order *domain.Order) error {
	old, err := r.GetOrder(ctx, order.ID)
	if err != nil {
		return err
	}
	data, err := json.Marshal(order)
	if err != nil {
		return fmt.Errorf("failed to marshal order: %w", err)
	}
	_, err = r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, redisOrderKey(order.ID), data, 0)
		if old.UserID != order.UserID {
			pipe.SRem(ctx, redisUserOrdersKey(old.UserID), order.ID)
			pipe.SAdd(ctx, redisUserOrdersKey(order.UserID), order.ID)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to save order: %w", err)
	}
	return nil
}

func (r *RedisRepository) DeleteOrder(ctx context.Context, id int) error {
	old, err := r.GetOrder(ctx, id)
	if err != nil {
		return err
	}
	_, err = r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, redisOrderKey(id), redisOrderItemsKey(id))
		pipe.SRem(ctx, redisUserOrdersKey(old.UserID), id)
		return nil
	})
	return err
}

func (r *RedisRepository) ListOrders(ctx context.Context, userID int) ([]domain.Order, error) {
	ids, err := r.client.SMembers(ctx, redisUserOrdersKey(userID)).Result()
	if err != nil {
		return nil, err
	}
	orders := []domain.Order{}
	if len(ids) == 0 {
		return orders, nil
	}

	keys := make([]string, 0, len(ids))
	for _, raw := range ids {
		id, err := strconv.Atoi(raw)
		if err != nil {
			continue
		}
		keys = append(keys, redisOrderKey(id))
	}
	values, err := r.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, err
	}
	for _, v := range values {
		s, ok := v.(string)
		if !ok {
			continue
		}
		var order domain.Order
		if err := json.Unmarshal([]byte(s), &order); err != nil {
			return nil, fmt.Errorf("failed to unmarshal order: %w", err)
		}
		orders = append(orders, order)
	}
	sort.Slice(orders, func(i, j int) bool { return orders[i].ID < orders[j].ID })
	return orders, nil
}

func (r *RedisRepository) AddItem(ctx context.Context, item *domain.Item) error {
	n, err := r.client.Exists(ctx, redisOrderKey(item.OrderID)).Result()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrOrderNotFound
	}

	id, err := r.client.Incr(ctx, redisItemSeq).Result()
	if err != nil {
		return fmt.Errorf("failed to allocate item id: %w", err)
	}
	item.ID = int(id)

	data, err := json.Marshal(item)
	if err != nil {
		return fmt.Errorf("failed to marshal item: %w", err)
	}
	added, err := r.client.HSetNX(ctx, redisOrderItemsKey(item.OrderID), strconv.Itoa(item.ItemID), data).Result()
	if err != nil {
		return err
	}
	if !added {
		return ErrItemExists
	}
	return nil
}

func (r *RedisRepository) GetItem(ctx context.Context, orderID, itemID int) (*domain.Item, error) {
	data, err := r.client.HGet(ctx, redisOrderItemsKey(orderID), strconv.Itoa(itemID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrItemNotFound
	}
	if err != nil {
		return nil, err
	}
	var item domain.Item
	if err := json.Unmarshal(data, &item); err != nil {
		return nil, fmt.Errorf("failed to unmarshal item: %w", err)
	}
	return &item, nil
}

func (r *RedisRepository) UpdateItem(ctx context.Context, item *domain.Item) error {
	key := redisOrderItemsKey(item.OrderID)
	field := strconv.Itoa(item.ItemID)

	ok, err := r.client.HExists(ctx, key, field).Result()
	if err != nil {
		return err
	}
	if !ok {
		return ErrItemNotFound
	}
	data, err := json.Marshal(item)
	if err != nil {
		return fmt.Errorf("failed to marshal item: %w", err)
	}
	return r.client.HSet(ctx, key, field, data).Err()
}

func (r *RedisRepository) DeleteItem(ctx context.Context, orderID, itemID int) error {
	n, err := r.client.HDel(ctx, redisOrderItemsKey(orderID), strconv.Itoa(itemID)).Result()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrItemNotFound
	}
	return nil
}

func (r *RedisRepository) ListItems(ctx context.Context, orderID int) ([]domain.Item, error) {
	values, err := r.client.HVals(ctx, redisOrderItemsKey(orderID)).Result()
	if err != nil {
		return nil, err
	}
	items := make([]domain.Item, 0, len(values))
	for _, v := range values {
		var item domain.Item
		if err := json.Unmarshal([]byte(v), &item); err != nil {
			return nil, fmt.Errorf("failed to unmarshal item: %w", err)
		}
		items = append(items, item)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })
	return items, nil
}
