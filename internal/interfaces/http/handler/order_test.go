package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pricesync/backend/internal/application/sync"
	"github.com/pricesync/backend/internal/domain/integration"
	"github.com/pricesync/backend/internal/infrastructure/ecommerce"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// stubSyncer returns a fixed result or error
type stubSyncer struct {
	result *sync.SyncOrderResult
	err    *sync.SyncError
}

func (s *stubSyncer) SyncOrderPrices(ctx context.Context, orderID string) (*sync.SyncOrderResult, *sync.SyncError) {
	return s.result, s.err
}

func newOrderRouter(syncer OrderPriceSyncer) *gin.Engine {
	router := gin.New()
	NewOrderHandler(syncer).RegisterRoutes(router.Group(""))
	return router
}

func TestOrderHandler_SyncOrderPrices_FailureMessages(t *testing.T) {
	tests := []struct {
		name     string
		err      *sync.SyncError
		wantBody string
	}{
		{
			name: "fetch stage",
			err: &sync.SyncError{
				Stage:    sync.StageFetchOrder,
				EntityID: "4021",
				Err:      assert.AnError,
			},
			wantBody: "Unable to get products for order with ID: 4021</br>Error message: " + assert.AnError.Error(),
		},
		{
			name: "resolve stage",
			err: &sync.SyncError{
				Stage:    sync.StageResolvePrice,
				EntityID: "77",
				Err:      assert.AnError,
			},
			wantBody: "Error while collecting new prices from presta for product ID: 77</br>Error message: " + assert.AnError.Error(),
		},
		{
			name: "push stage",
			err: &sync.SyncError{
				Stage:    sync.StagePushPrice,
				EntityID: "101",
				Err:      assert.AnError,
			},
			wantBody: "Error while updating price for order product ID: 101</br>Error message: " + assert.AnError.Error(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newOrderRouter(&stubSyncer{err: tt.err})

			req := httptest.NewRequest("GET", "/order/4021", nil)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Contains(t, w.Header().Get("Content-Type"), "text/plain")
			assert.Equal(t, tt.wantBody, w.Body.String())
		})
	}
}

func TestOrderHandler_SyncOrderPrices_Success(t *testing.T) {
	router := newOrderRouter(&stubSyncer{
		result: &sync.SyncOrderResult{
			OrderID: "4021",
			Lines: []integration.LinePrice{
				{OrderProductID: "101", Price: decimal.RequireFromString("11")},
				{OrderProductID: "102", Price: decimal.Zero},
			},
		},
	})

	req := httptest.NewRequest("GET", "/order/4021", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"101": 11, "102": 0}`, w.Body.String())
}

// TestOrderHandler_EndToEnd drives the full pipeline against fake upstream
// platforms: two order lines, one of them without a product reference.
func TestOrderHandler_EndToEnd(t *testing.T) {
	var updates []map[string]any

	orderPlatform := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		switch r.PostFormValue("method") {
		case "getOrders":
			w.Write([]byte(`{
				"status": "SUCCESS",
				"orders": [{
					"order_id": 4021,
					"products": [
						{"order_product_id": "101", "product_id": "P1"},
						{"order_product_id": "102", "product_id": ""}
					]
				}]
			}`))
		case "setOrderProductFields":
			var params map[string]any
			require.NoError(t, json.Unmarshal([]byte(r.PostFormValue("parameters")), &params))
			updates = append(updates, params)
			w.Write([]byte(`{"status": "SUCCESS"}`))
		default:
			t.Errorf("unexpected method %q", r.PostFormValue("method"))
		}
	}))
	defer orderPlatform.Close()

	shop := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/products/P1", r.URL.Path)
		w.Write([]byte(`<prestashop><product><wholesale_price><![CDATA[5.500000]]></wholesale_price></product></prestashop>`))
	}))
	defer shop.Close()

	blConfig := ecommerce.NewBaseLinkerConfig("test-token")
	blConfig.APIBaseURL = orderPlatform.URL
	orderAdapter, err := ecommerce.NewBaseLinkerAdapter(blConfig)
	require.NoError(t, err)

	shopAdapter, err := ecommerce.NewPrestaAdapter(ecommerce.NewPrestaConfig(shop.URL+"/api", "test-key"))
	require.NoError(t, err)

	service := sync.NewOrderPriceSyncService(
		orderAdapter, shopAdapter, orderAdapter,
		decimal.RequireFromString("2.0"), nil,
	)

	router := newOrderRouter(service)

	req := httptest.NewRequest("GET", "/order/4021", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.JSONEq(t, `{"101": 11, "102": 0}`, w.Body.String())

	// both lines were pushed back, including the zero-priced one
	require.Len(t, updates, 2)
	assert.Equal(t, "101", updates[0]["order_product_id"])
	assert.InDelta(t, 11.0, updates[0]["price_brutto"], 1e-9)
	assert.Equal(t, "102", updates[1]["order_product_id"])
	assert.InDelta(t, 0.0, updates[1]["price_brutto"], 1e-9)
}
