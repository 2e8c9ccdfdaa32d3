package ecommerce

import (
	"bytes"
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/pricesync/backend/internal/domain/integration"
)

// decimalPattern matches the first plain decimal inside an XML text node.
// PrestaShop wraps numeric fields in CDATA and pads them with whitespace,
// so a strict parse of the raw node would reject valid values.
var decimalPattern = regexp.MustCompile(`\d+\.\d+`)

// PrestaAdapter implements the PriceSource port against the PrestaShop
// webservice. Product resources are fetched as XML documents.
type PrestaAdapter struct {
	config     *PrestaConfig
	httpClient *http.Client
}

// NewPrestaAdapter creates a new PrestaShop adapter with the given configuration
func NewPrestaAdapter(config *PrestaConfig) (*PrestaAdapter, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &PrestaAdapter{
		config: config,
		httpClient: &http.Client{
			Timeout: time.Duration(config.TimeoutSeconds) * time.Second,
		},
	}, nil
}

// WholesalePrice fetches the product resource and extracts its wholesale
// (buy) price. The body is parsed regardless of the HTTP status: the
// webservice reports missing products and auth failures as XML documents,
// and those surface as a missing wholesale_price element.
func (a *PrestaAdapter) WholesalePrice(ctx context.Context, productID string) (decimal.Decimal, error) {
	body, err := a.getProduct(ctx, productID)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %v", integration.ErrPricingUnavailable, err)
	}

	raw, err := extractElementText(body, "wholesale_price")
	if err != nil {
		if errors.Is(err, errElementNotFound) {
			return decimal.Zero, fmt.Errorf("%w: product %s", integration.ErrWholesalePriceNotFound, productID)
		}
		return decimal.Zero, fmt.Errorf("%w: %v", integration.ErrPricingInvalidResponse, err)
	}

	match := decimalPattern.FindString(raw)
	if match == "" {
		return decimal.Zero, fmt.Errorf("%w: product %s", integration.ErrWholesalePriceNotFound, productID)
	}

	price, err := decimal.NewFromString(match)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %v", integration.ErrPricingInvalidResponse, err)
	}

	return price, nil
}

// getProduct performs the GET request for one product resource
func (a *PrestaAdapter) getProduct(ctx context.Context, productID string) ([]byte, error) {
	endpoint := strings.TrimRight(a.config.APIBaseURL, "/") + "/products/" + url.PathEscape(productID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("presta: failed to create request: %w", err)
	}

	q := req.URL.Query()
	q.Set("ws_key", a.config.WSKey)
	req.URL.RawQuery = q.Encode()

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("presta: failed to read response: %w", err)
	}

	return body, nil
}

var errElementNotFound = errors.New("presta: element not found")

// extractElementText walks the XML token stream and returns the character
// data of the first element with the given local name.
func extractElementText(body []byte, name string) (string, error) {
	decoder := xml.NewDecoder(bytes.NewReader(body))

	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			return "", errElementNotFound
		}
		if err != nil {
			return "", fmt.Errorf("presta: malformed XML: %w", err)
		}

		start, ok := tok.(xml.StartElement)
		if !ok || start.Name.Local != name {
			continue
		}

		var text string
		if err := decoder.DecodeElement(&text, &start); err != nil {
			return "", fmt.Errorf("presta: malformed XML: %w", err)
		}
		return text, nil
	}
}

// Ensure PrestaAdapter implements the pricing port
var _ integration.PriceSource = (*PrestaAdapter)(nil)
