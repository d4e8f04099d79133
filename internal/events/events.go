package events

import (
	"time"

	"github.com/cloud-wave-best-zizon/order-console/internal/domain"
)

type EventType string

const (
	OrderCreated   EventType = "order.created"
	OrderUpdated   EventType = "order.updated"
	OrderCancelled EventType = "order.cancelled"
	OrderDeleted   EventType = "order.deleted"
	ItemAdded      EventType = "item.added"
	ItemUpdated    EventType = "item.updated"
	ItemRemoved    EventType = "item.removed"
)

type OrderEvent struct {
	EventID   string        `json:"event_id"`
	Type      EventType     `json:"type"`
	OrderID   int           `json:"order_id"`
	UserID    int           `json:"user_id,omitempty"`
	Status    domain.Status `json:"status,omitempty"`
	Items     []int         `json:"items,omitempty"`
	ItemID    int           `json:"item_id,omitempty"`
	Timestamp time.Time     `json:"timestamp"`
	RequestID string        `json:"request_id,omitempty"`
}
