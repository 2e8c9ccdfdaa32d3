package ecommerce

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/pricesync/backend/internal/domain/integration"
)

// maxResponseSize is the maximum allowed response size from platform APIs (10MB)
const maxResponseSize = 10 * 1024 * 1024

// BaseLinker API method discriminators
const (
	baseLinkerMethodGetOrders       = "getOrders"
	baseLinkerMethodSetOrderProduct = "setOrderProductFields"
)

// BaseLinkerAdapter implements the OrderSource and PriceWriter ports against
// the BaseLinker connector API. Every operation is a POST to a single
// endpoint with a method discriminator and a JSON-encoded parameters field.
type BaseLinkerAdapter struct {
	config     *BaseLinkerConfig
	httpClient *http.Client
}

// NewBaseLinkerAdapter creates a new BaseLinker adapter with the given configuration
func NewBaseLinkerAdapter(config *BaseLinkerConfig) (*BaseLinkerAdapter, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &BaseLinkerAdapter{
		config: config,
		httpClient: &http.Client{
			Timeout: time.Duration(config.TimeoutSeconds) * time.Second,
		},
	}, nil
}

// FetchOrderLines retrieves the line items of one order via getOrders.
// The API returns at most one order for an order_id query; the first entry
// is authoritative.
func (a *BaseLinkerAdapter) FetchOrderLines(ctx context.Context, orderID string) (integration.OrderLines, error) {
	status, body, err := a.doRequest(ctx, baseLinkerMethodGetOrders, map[string]any{
		"order_id": orderID,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", integration.ErrOrderAPIUnavailable, err)
	}
	if status < 200 || status >= 300 {
		return nil, fmt.Errorf("%w: order platform responded with code %d", integration.ErrOrderAPIRequestFailed, status)
	}

	var resp BaseLinkerGetOrdersResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("%w: failed to parse response: %v", integration.ErrOrderAPIRequestFailed, err)
	}

	if !resp.IsSuccess() {
		return nil, fmt.Errorf("%w: %s", integration.ErrOrderAPIStatus, resp.ErrorMessage)
	}

	if len(resp.Orders) == 0 {
		return nil, fmt.Errorf("%w: %s", integration.ErrOrderNotFound, orderID)
	}

	var lines integration.OrderLines
	for _, item := range resp.Orders[0].Products {
		lines = lines.Append(integration.OrderLine{
			OrderProductID: item.OrderProductID.String(),
			ProductID:      item.ProductID.String(),
		})
	}

	return lines, nil
}

// UpdateOrderProductPrice sets the gross price of one order line via
// setOrderProductFields.
func (a *BaseLinkerAdapter) UpdateOrderProductPrice(ctx context.Context, orderID, orderProductID string, price decimal.Decimal) error {
	status, body, err := a.doRequest(ctx, baseLinkerMethodSetOrderProduct, map[string]any{
		"order_id":         orderID,
		"order_product_id": orderProductID,
		"price_brutto":     price.InexactFloat64(),
	})
	if err != nil {
		return fmt.Errorf("%w: %v", integration.ErrPriceUpdateFailed, err)
	}
	if status < 200 || status >= 300 {
		// The raw body tends to carry the platform's explanation.
		return fmt.Errorf("%w: %s", integration.ErrPriceUpdateFailed, strings.TrimSpace(string(body)))
	}

	var resp BaseLinkerSetFieldsResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return fmt.Errorf("%w: failed to parse response: %v", integration.ErrPriceUpdateFailed, err)
	}

	if !resp.IsSuccess() {
		return fmt.Errorf("%w: %s", integration.ErrPriceUpdateRejected, resp.ErrorMessage)
	}

	return nil
}

// doRequest performs one connector call and returns the HTTP status code and
// raw body. The body is form-encoded with the method discriminator and the
// JSON-encoded parameters, as the connector protocol requires.
func (a *BaseLinkerAdapter) doRequest(ctx context.Context, method string, parameters any) (int, []byte, error) {
	paramsJSON, err := json.Marshal(parameters)
	if err != nil {
		return 0, nil, fmt.Errorf("baselinker: failed to encode parameters: %w", err)
	}

	form := url.Values{}
	form.Set("method", method)
	form.Set("parameters", string(paramsJSON))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.config.APIBaseURL, strings.NewReader(form.Encode()))
	if err != nil {
		return 0, nil, fmt.Errorf("baselinker: failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("X-BLToken", a.config.Token)

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return resp.StatusCode, nil, fmt.Errorf("baselinker: failed to read response: %w", err)
	}

	return resp.StatusCode, body, nil
}

// Ensure BaseLinkerAdapter implements the order platform ports
var (
	_ integration.OrderSource = (*BaseLinkerAdapter)(nil)
	_ integration.PriceWriter = (*BaseLinkerAdapter)(nil)
)
