package client

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/cloud-wave-best-zizon/order-console/internal/domain"
)

const (
	contentTypeJSON = "application/json"
	contentTypeText = "text/plain; charset=utf-8"
)

// Request is a fully built call against the orders API. Builders below are
// pure so the exact verb, path and body of every action can be asserted
// without a server.
type Request struct {
	Method  string
	Path    string
	Query   url.Values
	Body    any
	RawBody *string
}

// ContentType is the media type of the encoded body, or "" when there is none.
func (r Request) ContentType() string {
	switch {
	case r.RawBody != nil:
		return contentTypeText
	case r.Body != nil:
		return contentTypeJSON
	}
	return ""
}

func ordersPath(orderID int) string {
	return "/orders/" + strconv.Itoa(orderID)
}

func itemsPath(orderID int) string {
	return ordersPath(orderID) + "/items"
}

func itemPath(orderID, itemID int) string {
	return itemsPath(orderID) + "/" + strconv.Itoa(itemID)
}

func nonNilItems(items []int) []int {
	if items == nil {
		return []int{}
	}
	return items
}

// CreateOrderRequest stamps create_time from now and always starts the order
// in the created state.
func CreateOrderRequest(userID int, items []int, now time.Time) Request {
	createTime := now.Unix()
	status := domain.StatusCreated
	return Request{
		Method: http.MethodPost,
		Path:   "/orders",
		Body: domain.CreateOrderRequest{
			UserID:     &userID,
			CreateTime: &createTime,
			Items:      nonNilItems(items),
			Status:     &status,
		},
	}
}

func RetrieveOrderRequest(orderID int) Request {
	return Request{Method: http.MethodGet, Path: ordersPath(orderID)}
}

func ListOrdersRequest(userID int) Request {
	return Request{
		Method: http.MethodGet,
		Path:   "/orders",
		Query:  url.Values{"user_id": []string{strconv.Itoa(userID)}},
	}
}

// SearchOrdersRequest puts the integer status code in the path.
func SearchOrdersRequest(userID int, status domain.Status) Request {
	return Request{
		Method: http.MethodGet,
		Path:   fmt.Sprintf("/orders/%d/%d", userID, int(status)),
	}
}

// UpdateOrderRequest replaces the order. create_time is taken from now, not
// from the stored order, so an update overwrites the original creation time.
func UpdateOrderRequest(orderID, userID int, status domain.Status, items []int, now time.Time) Request {
	createTime := now.Unix()
	return Request{
		Method: http.MethodPut,
		Path:   ordersPath(orderID),
		Body: domain.UpdateOrderRequest{
			UserID:     &userID,
			CreateTime: &createTime,
			Items:      nonNilItems(items),
			Status:     &status,
		},
	}
}

func CancelOrderRequest(orderID int) Request {
	return Request{
		Method: http.MethodPost,
		Path:   ordersPath(orderID) + "/cancel",
		Body:   domain.CancelOrderRequest{Status: domain.StatusCancelled},
	}
}

func DeleteOrderRequest(orderID int) Request {
	return Request{Method: http.MethodDelete, Path: ordersPath(orderID)}
}

func ListItemsRequest(orderID int) Request {
	return Request{Method: http.MethodGet, Path: itemsPath(orderID)}
}

func AddItemRequest(orderID, itemID int) Request {
	return Request{
		Method: http.MethodPost,
		Path:   itemsPath(orderID),
		Body:   domain.AddItemRequest{OrderID: &orderID, ItemID: &itemID},
	}
}

// UpdateItemRequest sends the detail text as-is; it is not parsed.
func UpdateItemRequest(orderID, itemID int, detail string) Request {
	return Request{
		Method:  http.MethodPut,
		Path:    itemPath(orderID, itemID),
		RawBody: &detail,
	}
}

func DeleteItemRequest(orderID, itemID int) Request {
	return Request{Method: http.MethodDelete, Path: itemPath(orderID, itemID)}
}
