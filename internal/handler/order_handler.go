package handler

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/cloud-wave-best-zizon/order-console/internal/domain"
	"github.com/cloud-wave-best-zizon/order-console/internal/repository"
	"github.com/cloud-wave-best-zizon/order-console/internal/service"
	"github.com/cloud-wave-best-zizon/order-console/pkg/middleware"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const jsonContentType = "application/json"

type OrderHandler struct {
	orderService *service.OrderService
	logger       *zap.Logger
}

func NewOrderHandler(orderService *service.OrderService, logger *zap.Logger) *OrderHandler {
	return &OrderHandler{
		orderService: orderService,
		logger:       logger,
	}
}

func (h *OrderHandler) abort(c *gin.Context, code int, format string, args ...any) {
	c.AbortWithStatusJSON(code, domain.ErrorResponse{Message: fmt.Sprintf(format, args...)})
}

// fail maps service and repository errors onto response codes.
func (h *OrderHandler) fail(c *gin.Context, err error) {
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		h.abort(c, http.StatusBadRequest, "%s", verr.Message)
	case errors.Is(err, repository.ErrOrderNotFound), errors.Is(err, repository.ErrItemNotFound):
		h.abort(c, http.StatusNotFound, "%s", err.Error())
	case errors.Is(err, repository.ErrItemExists):
		h.abort(c, http.StatusConflict, "%s", err.Error())
	default:
		h.logger.Error("Request failed",
			zap.String("request_id", c.GetString(middleware.RequestIDKey)),
			zap.Error(err))
		h.abort(c, http.StatusInternalServerError, "internal server error")
	}
}

func (h *OrderHandler) requireJSON(c *gin.Context) bool {
	if c.ContentType() == jsonContentType {
		return true
	}
	h.logger.Warn("Invalid Content-Type", zap.String("content_type", c.GetHeader("Content-Type")))
	h.abort(c, http.StatusUnsupportedMediaType, "Content-Type must be %s", jsonContentType)
	return false
}

func (h *OrderHandler) bind(c *gin.Context, req any) bool {
	if !h.requireJSON(c) {
		return false
	}
	if err := c.ShouldBindJSON(req); err != nil {
		h.logger.Warn("Invalid request", zap.Error(err))
		h.abort(c, http.StatusBadRequest, "%s", bindMessage(err))
		return false
	}
	return true
}

func (h *OrderHandler) pathID(c *gin.Context, name string) (int, bool) {
	id, err := strconv.Atoi(c.Param(name))
	if err != nil {
		h.abort(c, http.StatusBadRequest, "invalid %s %q", name, c.Param(name))
		return 0, false
	}
	if id < 0 {
		h.abort(c, http.StatusBadRequest, "%s %d should not be negative", name, id)
		return 0, false
	}
	return id, true
}

func externalURL(c *gin.Context, path string) string {
	scheme := "http"
	if c.Request.TLS != nil {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s%s", scheme, c.Request.Host, path)
}

func (h *OrderHandler) Index(c *gin.Context) {
	c.JSON(http.StatusOK, domain.IndexResponse{
		Name:    "Order REST API Service",
		Version: "1.0",
		Paths:   externalURL(c, "/"),
	})
}

func (h *OrderHandler) CreateOrder(c *gin.Context) {
	var req domain.CreateOrderRequest
	if !h.bind(c, &req) {
		return
	}

	requestID := c.GetString(middleware.RequestIDKey)
	order, err := h.orderService.CreateOrder(c.Request.Context(), req, requestID)
	if err != nil {
		h.fail(c, err)
		return
	}

	c.Header("Location", externalURL(c, fmt.Sprintf("/orders/%d", order.ID)))
	c.JSON(http.StatusCreated, order)
}

func (h *OrderHandler) GetOrder(c *gin.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	order, err := h.orderService.GetOrder(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, order)
}

// ListOrders requires user_id; without it the caller is treated as anonymous.
func (h *OrderHandler) ListOrders(c *gin.Context) {
	raw, ok := c.GetQuery("user_id")
	if !ok {
		h.abort(c, http.StatusUnauthorized, "unauthorized user")
		return
	}
	userID, err := strconv.Atoi(raw)
	if err != nil {
		h.abort(c, http.StatusBadRequest, "invalid user_id %q", raw)
		return
	}

	orders, err := h.orderService.ListOrders(c.Request.Context(), userID)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, orders)
}

// SearchOrders serves /orders/{user_id}/{status}. The first segment is named
// id because gin requires one wildcard name per path position.
func (h *OrderHandler) SearchOrders(c *gin.Context) {
	userID, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	code, err := strconv.Atoi(c.Param("status"))
	if err != nil {
		h.abort(c, http.StatusBadRequest, "invalid status %q", c.Param("status"))
		return
	}
	status := domain.Status(code)
	if !status.Valid() {
		h.abort(c, http.StatusBadRequest, "unknown status %d", code)
		return
	}

	orders, err := h.orderService.SearchOrders(c.Request.Context(), userID, status)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, orders)
}

func (h *OrderHandler) UpdateOrder(c *gin.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	var req domain.UpdateOrderRequest
	if !h.bind(c, &req) {
		return
	}

	order, err := h.orderService.UpdateOrder(c.Request.Context(), id, req, c.GetString(middleware.RequestIDKey))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

func (h *OrderHandler) CancelOrder(c *gin.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	var req domain.CancelOrderRequest
	if !h.bind(c, &req) {
		return
	}

	order, err := h.orderService.CancelOrder(c.Request.Context(), id, req, c.GetString(middleware.RequestIDKey))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

func (h *OrderHandler) DeleteOrder(c *gin.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	if err := h.orderService.DeleteOrder(c.Request.Context(), id, c.GetString(middleware.RequestIDKey)); err != nil {
		h.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *OrderHandler) ListItems(c *gin.Context) {
	orderID, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	items, err := h.orderService.ListItems(c.Request.Context(), orderID)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *OrderHandler) AddItem(c *gin.Context) {
	orderID, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	var req domain.AddItemRequest
	if !h.bind(c, &req) {
		return
	}

	item, err := h.orderService.AddItem(c.Request.Context(), orderID, req, c.GetString(middleware.RequestIDKey))
	if err != nil {
		h.fail(c, err)
		return
	}

	c.Header("Location", externalURL(c, fmt.Sprintf("/orders/%d/items/%d", orderID, item.ItemID)))
	c.JSON(http.StatusCreated, item)
}

// UpdateItem takes the new detail as the raw request body.
func (h *OrderHandler) UpdateItem(c *gin.Context) {
	orderID, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	itemID, ok := h.pathID(c, "item_id")
	if !ok {
		return
	}
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		h.abort(c, http.StatusBadRequest, "unreadable body: %v", err)
		return
	}

	item, err := h.orderService.UpdateItem(c.Request.Context(), orderID, itemID, string(body), c.GetString(middleware.RequestIDKey))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

func (h *OrderHandler) DeleteItem(c *gin.Context) {
	orderID, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	itemID, ok := h.pathID(c, "item_id")
	if !ok {
		return
	}
	if err := h.orderService.DeleteItem(c.Request.Context(), orderID, itemID, c.GetString(middleware.RequestIDKey)); err != nil {
		h.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
