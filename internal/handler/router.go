package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"
	"sync"

	"github.com/cloud-wave-best-zizon/order-console/pkg/middleware"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

var registerTagNames sync.Once

// useJSONFieldNames makes validation errors report the wire field name.
func useJSONFieldNames() {
	registerTagNames.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
			if name == "-" {
				return ""
			}
			return name
		})
	})
}

func bindMessage(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		return fmt.Sprintf("Invalid request: missing %s", verrs[0].Field())
	}
	var terr *json.UnmarshalTypeError
	if errors.As(err, &terr) {
		return fmt.Sprintf("Invalid request: %s must be %s", terr.Field, terr.Type)
	}
	return "Invalid request: " + err.Error()
}

// NewRouter builds the gin engine serving the orders API.
func NewRouter(h *OrderHandler, store string, logger *zap.Logger) *gin.Engine {
	useJSONFieldNames()

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger(logger))

	router.GET("/", h.Index)
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": "order-console",
			"store":   store,
		})
	})

	orders := router.Group("/orders")
	{
		orders.POST("", h.CreateOrder)
		orders.GET("", h.ListOrders)
		orders.GET("/:id", h.GetOrder)
		orders.PUT("/:id", h.UpdateOrder)
		orders.DELETE("/:id", h.DeleteOrder)
		orders.POST("/:id/cancel", h.CancelOrder)
		orders.GET("/:id/items", h.ListItems)
		orders.POST("/:id/items", h.AddItem)
		orders.GET("/:id/:status", h.SearchOrders)
		orders.PUT("/:id/items/:item_id", h.UpdateItem)
		orders.DELETE("/:id/items/:item_id", h.DeleteItem)
	}

	return router
}
