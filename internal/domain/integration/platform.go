package integration

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
)

// ---------------------------------------------------------------------------
// Platform Errors
// ---------------------------------------------------------------------------

var (
	// Order API errors
	ErrOrderAPIUnavailable   = errors.New("integration: order platform unreachable")
	ErrOrderAPIRequestFailed = errors.New("integration: order platform request failed")
	ErrOrderAPIStatus        = errors.New("integration: order platform returned error status")
	ErrOrderNotFound         = errors.New("integration: no order with this ID")

	// Pricing source errors
	ErrPricingUnavailable     = errors.New("integration: pricing source unreachable")
	ErrPricingInvalidResponse = errors.New("integration: invalid pricing source response")
	ErrWholesalePriceNotFound = errors.New("integration: wholesale price not found")

	// Price update errors
	ErrPriceUpdateFailed   = errors.New("integration: price update request failed")
	ErrPriceUpdateRejected = errors.New("integration: price update rejected by platform")
)

// ---------------------------------------------------------------------------
// Ports
// ---------------------------------------------------------------------------

// OrderSource reads order line items from the marketplace order platform.
type OrderSource interface {
	// FetchOrderLines returns the line items of the order, in the order the
	// platform lists them. Fails with ErrOrderNotFound when the platform
	// knows no order with this ID.
	FetchOrderLines(ctx context.Context, orderID string) (OrderLines, error)
}

// PriceSource resolves wholesale (buy) prices from the retail platform.
type PriceSource interface {
	// WholesalePrice returns the wholesale price of the product. Fails with
	// ErrWholesalePriceNotFound when the platform has no usable price for it.
	WholesalePrice(ctx context.Context, productID string) (decimal.Decimal, error)
}

// PriceWriter pushes recomputed gross prices back to the order platform.
type PriceWriter interface {
	// UpdateOrderProductPrice sets the gross price of one order line.
	UpdateOrderProductPrice(ctx context.Context, orderID, orderProductID string, price decimal.Decimal) error
}
