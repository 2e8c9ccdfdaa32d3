package ecommerce

import "errors"

// Presta configuration errors
var (
	ErrPrestaConfigMissingURL = errors.New("presta: API base URL is required")
	ErrPrestaConfigMissingKey = errors.New("presta: webservice key is required")
)

// PrestaConfig holds the PrestaShop webservice configuration
type PrestaConfig struct {
	// APIBaseURL is the root of the shop's webservice, e.g.
	// https://shop.example.com/api
	APIBaseURL string

	// WSKey is the webservice access key, passed as the ws_key query
	// parameter on every request
	WSKey string

	// TimeoutSeconds is the HTTP request timeout
	TimeoutSeconds int
}

// NewPrestaConfig creates a Presta configuration with default timeout
func NewPrestaConfig(baseURL, wsKey string) *PrestaConfig {
	return &PrestaConfig{
		APIBaseURL:     baseURL,
		WSKey:          wsKey,
		TimeoutSeconds: 30,
	}
}

// Validate checks the configuration and applies defaults
func (c *PrestaConfig) Validate() error {
	if c.APIBaseURL == "" {
		return ErrPrestaConfigMissingURL
	}
	if c.WSKey == "" {
		return ErrPrestaConfigMissingKey
	}
	if c.TimeoutSeconds <= 0 {
		c.TimeoutSeconds = 30
	}
	return nil
}
