package handler

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/pricesync/backend/internal/application/sync"
	"github.com/pricesync/backend/internal/infrastructure/logger"
)

// OrderPriceSyncer runs the price sync pipeline for one order
type OrderPriceSyncer interface {
	SyncOrderPrices(ctx context.Context, orderID string) (*sync.SyncOrderResult, *sync.SyncError)
}

// OrderHandler handles order price sync API endpoints
type OrderHandler struct {
	syncer OrderPriceSyncer
}

// NewOrderHandler creates a new OrderHandler
func NewOrderHandler(syncer OrderPriceSyncer) *OrderHandler {
	return &OrderHandler{syncer: syncer}
}

// RegisterRoutes registers the order routes on the given group
func (h *OrderHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/order/:order_id", h.SyncOrderPrices)
}

// SyncOrderPrices recalculates and pushes buy prices for every line of the
// order, then returns the computed prices keyed by order product ID.
//
// Failures come back as 400 with a plain-text body; the message format is
// relied on by the downstream automation that calls this endpoint, so it
// must stay stable.
func (h *OrderHandler) SyncOrderPrices(c *gin.Context) {
	orderID := c.Param("order_id")

	result, syncErr := h.syncer.SyncOrderPrices(c.Request.Context(), orderID)
	if syncErr != nil {
		log := logger.GetGinLogger(c)
		log.Warn("Order price sync failed",
			zap.String("order_id", orderID),
			zap.String("stage", string(syncErr.Stage)),
			zap.String("entity_id", syncErr.EntityID),
			zap.Error(syncErr.Err),
		)
		c.String(http.StatusBadRequest, syncFailureMessage(syncErr))
		return
	}

	prices := make(map[string]float64, len(result.Lines))
	for _, line := range result.Lines {
		prices[line.OrderProductID] = line.Price.InexactFloat64()
	}

	c.JSON(http.StatusOK, prices)
}

// syncFailureMessage renders the stage-specific plain-text error body
func syncFailureMessage(syncErr *sync.SyncError) string {
	switch syncErr.Stage {
	case sync.StageFetchOrder:
		return fmt.Sprintf("Unable to get products for order with ID: %s</br>Error message: %v",
			syncErr.EntityID, syncErr.Err)
	case sync.StageResolvePrice:
		return fmt.Sprintf("Error while collecting new prices from presta for product ID: %s</br>Error message: %v",
			syncErr.EntityID, syncErr.Err)
	case sync.StagePushPrice:
		return fmt.Sprintf("Error while updating price for order product ID: %s</br>Error message: %v",
			syncErr.EntityID, syncErr.Err)
	default:
		return syncErr.Error()
	}
}
