package client

import (
	"context"

	"github.com/cloud-wave-best-zizon/order-console/internal/domain"
)

func (c *Client) CreateOrder(ctx context.Context, userID int, items []int) (*domain.Order, error) {
	var order domain.Order
	if err := c.Do(ctx, CreateOrderRequest(userID, items, c.now()), &order); err != nil {
		return nil, err
	}
	return &order, nil
}

func (c *Client) GetOrder(ctx context.Context, orderID int) (*domain.Order, error) {
	var order domain.Order
	if err := c.Do(ctx, RetrieveOrderRequest(orderID), &order); err != nil {
		return nil, err
	}
	return &order, nil
}

func (c *Client) ListOrders(ctx context.Context, userID int) ([]domain.Order, error) {
	var orders []domain.Order
	if err := c.Do(ctx, ListOrdersRequest(userID), &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

func (c *Client) SearchOrders(ctx context.Context, userID int, status domain.Status) ([]domain.Order, error) {
	var orders []domain.Order
	if err := c.Do(ctx, SearchOrdersRequest(userID, status), &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

func (c *Client) UpdateOrder(ctx context.Context, orderID, userID int, status domain.Status, items []int) (*domain.Order, error) {
	var order domain.Order
	if err := c.Do(ctx, UpdateOrderRequest(orderID, userID, status, items, c.now()), &order); err != nil {
		return nil, err
	}
	return &order, nil
}

func (c *Client) CancelOrder(ctx context.Context, orderID int) (*domain.Order, error) {
	var order domain.Order
	if err := c.Do(ctx, CancelOrderRequest(orderID), &order); err != nil {
		return nil, err
	}
	return &order, nil
}

func (c *Client) DeleteOrder(ctx context.Context, orderID int) error {
	return c.Do(ctx, DeleteOrderRequest(orderID), nil)
}

func (c *Client) ListItems(ctx context.Context, orderID int) ([]domain.Item, error) {
	var items []domain.Item
	if err := c.Do(ctx, ListItemsRequest(orderID), &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (c *Client) AddItem(ctx context.Context, orderID, itemID int) (*domain.Item, error) {
	item := domain.Item{OrderID: orderID, ItemID: itemID}
	if err := c.Do(ctx, AddItemRequest(orderID, itemID), &item); err != nil {
		return nil, err
	}
	return &item, nil
}

// UpdateItem returns the stored item, or the submitted values when the server
// answers with an empty body.
func (c *Client) UpdateItem(ctx context.Context, orderID, itemID int, detail string) (*domain.Item, error) {
	item := domain.Item{OrderID: orderID, ItemID: itemID, Detail: detail}
	if err := c.Do(ctx, UpdateItemRequest(orderID, itemID, detail), &item); err != nil {
		return nil, err
	}
	return &item, nil
}

func (c *Client) DeleteItem(ctx context.Context, orderID, itemID int) error {
	return c.Do(ctx, DeleteItemRequest(orderID, itemID), nil)
}
