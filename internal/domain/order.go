package domain

type Order struct {
	ID         int    `json:"id"`
	UserID     int    `json:"user_id"`
	CreateTime int64  `json:"create_time"`
	Items      []int  `json:"items"`
	Status     Status `json:"status"`
}

type Item struct {
	ID      int    `json:"id,omitempty"`
	OrderID int    `json:"order_id"`
	ItemID  int    `json:"item_id"`
	Detail  string `json:"detail,omitempty"`
}

type CreateOrderRequest struct {
	UserID     *int    `json:"user_id" binding:"required"`
	CreateTime *int64  `json:"create_time" binding:"required"`
	Items      []int   `json:"items"`
	Status     *Status `json:"status" binding:"required"`
}

// UpdateOrderRequest carries the full replacement body of PUT /orders/{id}.
// The client always sends a fresh create_time here.
type UpdateOrderRequest struct {
	UserID     *int    `json:"user_id" binding:"required"`
	CreateTime *int64  `json:"create_time" binding:"required"`
	Items      []int   `json:"items"`
	Status     *Status `json:"status" binding:"required"`
}

type CancelOrderRequest struct {
	Status Status `json:"status"`
}

type AddItemRequest struct {
	OrderID *int `json:"order_id" binding:"required"`
	ItemID  *int `json:"item_id" binding:"required"`
}

// ErrorResponse is the body of every non-2xx response from the orders API.
type ErrorResponse struct {
	Message string `json:"message"`
}

type IndexResponse struct {
	Name    string `json:"name"`
	Version string `json:"version"`
	Paths   string `json:"paths"`
}
