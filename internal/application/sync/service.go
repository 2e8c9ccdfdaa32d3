package sync

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/pricesync/backend/internal/domain/integration"
)

// Stage identifies which step of a sync run produced a failure. The HTTP
// layer renders a different error body per stage.
type Stage string

const (
	StageFetchOrder   Stage = "fetch_order"
	StageResolvePrice Stage = "resolve_price"
	StagePushPrice    Stage = "push_price"
)

// SyncError describes a failed sync run: the stage that failed, the
// identifier the stage was working on, and the underlying cause.
type SyncError struct {
	Stage    Stage
	EntityID string
	Err      error
}

func (e *SyncError) Error() string {
	return fmt.Sprintf("sync %s failed for %s: %v", e.Stage, e.EntityID, e.Err)
}

func (e *SyncError) Unwrap() error {
	return e.Err
}

// SyncOrderResult is the outcome of a successful sync run. Lines keeps the
// order the platform returned them in.
type SyncOrderResult struct {
	OrderID string
	Lines   []integration.LinePrice
}

// PriceByLine returns the computed prices keyed by order product ID
func (r *SyncOrderResult) PriceByLine() map[string]decimal.Decimal {
	out := make(map[string]decimal.Decimal, len(r.Lines))
	for _, line := range r.Lines {
		out[line.OrderProductID] = line.Price
	}
	return out
}

// OrderPriceSyncService recalculates the gross price of every line of an
// order from the shop's wholesale prices and writes the results back to the
// order platform.
type OrderPriceSyncService struct {
	orders     integration.OrderSource
	prices     integration.PriceSource
	writer     integration.PriceWriter
	multiplier decimal.Decimal
	logger     *zap.Logger
}

// NewOrderPriceSyncService creates a new OrderPriceSyncService
func NewOrderPriceSyncService(
	orders integration.OrderSource,
	prices integration.PriceSource,
	writer integration.PriceWriter,
	multiplier decimal.Decimal,
	logger *zap.Logger,
) *OrderPriceSyncService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &OrderPriceSyncService{
		orders:     orders,
		prices:     prices,
		writer:     writer,
		multiplier: multiplier,
		logger:     logger,
	}
}

// SyncOrderPrices runs the full pipeline for one order: fetch its lines,
// resolve a marked-up price per line, and push every price back.
//
// The run is transactional in intent only: the first failure aborts the run,
// and prices already pushed stay pushed. Lines without a product reference
// get a zero price and skip the wholesale lookup.
func (s *OrderPriceSyncService) SyncOrderPrices(ctx context.Context, orderID string) (*SyncOrderResult, *SyncError) {
	// Every run gets its own ID so the log lines of interleaved requests
	// can be correlated.
	log := s.logger.With(
		zap.String("sync_run_id", uuid.NewString()),
		zap.String("order_id", orderID),
	)

	lines, err := s.orders.FetchOrderLines(ctx, orderID)
	if err != nil {
		return nil, &SyncError{Stage: StageFetchOrder, EntityID: orderID, Err: err}
	}

	log.Debug("fetched order lines", zap.Int("line_count", len(lines)))

	result := &SyncOrderResult{
		OrderID: orderID,
		Lines:   make([]integration.LinePrice, 0, len(lines)),
	}

	for _, line := range lines {
		price := decimal.Zero
		if line.ProductID != "" {
			wholesale, err := s.prices.WholesalePrice(ctx, line.ProductID)
			if err != nil {
				return nil, &SyncError{Stage: StageResolvePrice, EntityID: line.ProductID, Err: err}
			}
			price = integration.MarkupPrice(wholesale, s.multiplier)
		}
		result.Lines = append(result.Lines, integration.LinePrice{
			OrderProductID: line.OrderProductID,
			Price:          price,
		})
	}

	for _, line := range result.Lines {
		if err := s.writer.UpdateOrderProductPrice(ctx, orderID, line.OrderProductID, line.Price); err != nil {
			return nil, &SyncError{Stage: StagePushPrice, EntityID: line.OrderProductID, Err: err}
		}
	}

	log.Info("order prices synced", zap.Int("line_count", len(result.Lines)))

	return result, nil
}
