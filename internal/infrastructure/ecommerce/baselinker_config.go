package ecommerce

import "errors"

// BaseLinkerConfig holds configuration for the BaseLinker order API
type BaseLinkerConfig struct {
	// Token is the X-BLToken API token
	Token string
	// APIBaseURL is the connector endpoint URL
	APIBaseURL string
	// TimeoutSeconds is the HTTP request timeout
	TimeoutSeconds int
}

// BaseLinkerProductionAPIURL is the production connector endpoint
const BaseLinkerProductionAPIURL = "https://api.baselinker.com/connector.php"

// ErrBaseLinkerConfigMissingToken indicates a missing API token
var ErrBaseLinkerConfigMissingToken = errors.New("baselinker: API token is required")

// NewBaseLinkerConfig creates a new BaseLinker configuration with defaults
func NewBaseLinkerConfig(token string) *BaseLinkerConfig {
	return &BaseLinkerConfig{
		Token:          token,
		APIBaseURL:     BaseLinkerProductionAPIURL,
		TimeoutSeconds: 30,
	}
}

// Validate validates the BaseLinker configuration
func (c *BaseLinkerConfig) Validate() error {
	if c.Token == "" {
		return ErrBaseLinkerConfigMissingToken
	}
	if c.APIBaseURL == "" {
		c.APIBaseURL = BaseLinkerProductionAPIURL
	}
	if c.TimeoutSeconds <= 0 {
		c.TimeoutSeconds = 30
	}
	return nil
}
