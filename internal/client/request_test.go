package client

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/cloud-wave-best-zizon/order-console/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func encodeBody(t *testing.T, r Request) string {
	t.Helper()
	if r.RawBody != nil {
		return *r.RawBody
	}
	if r.Body == nil {
		return ""
	}
	b, err := json.Marshal(r.Body)
	require.NoError(t, err)
	return string(b)
}

func TestRequestTable(t *testing.T) {
	now := time.Unix(1700000000, 0)

	tests := []struct {
		name   string
		req    Request
		method string
		path   string
		query  string
		body   string
		ctype  string
	}{
		{
			name:   "create order",
			req:    CreateOrderRequest(7, []int{1, 2}, now),
			method: http.MethodPost,
			path:   "/orders",
			body:   `{"user_id":7,"create_time":1700000000,"items":[1,2],"status":1}`,
			ctype:  contentTypeJSON,
		},
		{
			name:   "retrieve order",
			req:    RetrieveOrderRequest(5),
			method: http.MethodGet,
			path:   "/orders/5",
		},
		{
			name:   "list orders",
			req:    ListOrdersRequest(7),
			method: http.MethodGet,
			path:   "/orders",
			query:  "user_id=7",
		},
		{
			name:   "search orders",
			req:    SearchOrdersRequest(7, domain.StatusCompleted),
			method: http.MethodGet,
			path:   "/orders/7/2",
		},
		{
			name:   "update order",
			req:    UpdateOrderRequest(5, 7, domain.StatusCompleted, []int{3}, now),
			method: http.MethodPut,
			path:   "/orders/5",
			body:   `{"user_id":7,"create_time":1700000000,"items":[3],"status":2}`,
			ctype:  contentTypeJSON,
		},
		{
			name:   "cancel order",
			req:    CancelOrderRequest(5),
			method: http.MethodPost,
			path:   "/orders/5/cancel",
			body:   `{"status":3}`,
			ctype:  contentTypeJSON,
		},
		{
			name:   "delete order",
			req:    DeleteOrderRequest(5),
			method: http.MethodDelete,
			path:   "/orders/5",
		},
		{
			name:   "list items",
			req:    ListItemsRequest(5),
			method: http.MethodGet,
			path:   "/orders/5/items",
		},
		{
			name:   "add item",
			req:    AddItemRequest(5, 9),
			method: http.MethodPost,
			path:   "/orders/5/items",
			body:   `{"order_id":5,"item_id":9}`,
			ctype:  contentTypeJSON,
		},
		{
			name:   "update item",
			req:    UpdateItemRequest(5, 9, "gift wrap, {not json}"),
			method: http.MethodPut,
			path:   "/orders/5/items/9",
			body:   "gift wrap, {not json}",
			ctype:  contentTypeText,
		},
		{
			name:   "delete item",
			req:    DeleteItemRequest(5, 9),
			method: http.MethodDelete,
			path:   "/orders/5/items/9",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.method, tt.req.Method)
			assert.Equal(t, tt.path, tt.req.Path)
			assert.Equal(t, tt.query, tt.req.Query.Encode())
			assert.Equal(t, tt.ctype, tt.req.ContentType())
			got := encodeBody(t, tt.req)
			if tt.ctype == contentTypeJSON {
				assert.JSONEq(t, tt.body, got)
			} else {
				assert.Equal(t, tt.body, got)
			}
		})
	}
}

func TestCreateOrderRequestSendsEmptyItemsArray(t *testing.T) {
	body := encodeBody(t, CreateOrderRequest(7, nil, time.Unix(10, 0)))
	assert.JSONEq(t, `{"user_id":7,"create_time":10,"items":[],"status":1}`, body)
}

func TestUpdateOrderRequestUsesSubmissionTime(t *testing.T) {
	first := encodeBody(t, UpdateOrderRequest(1, 7, domain.StatusCreated, nil, time.Unix(100, 0)))
	second := encodeBody(t, UpdateOrderRequest(1, 7, domain.StatusCreated, nil, time.Unix(200, 0)))

	assert.Contains(t, first, `"create_time":100`)
	assert.Contains(t, second, `"create_time":200`)
}
