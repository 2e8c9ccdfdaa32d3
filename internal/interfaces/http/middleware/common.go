package middleware

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

// CORSConfig holds CORS middleware configuration
type CORSConfig struct {
	AllowOrigins     []string
	AllowMethods     []string
	AllowHeaders     []string
	ExposeHeaders    []string
	AllowCredentials bool
	MaxAge           time.Duration
}

// DefaultCORSConfig returns the CORS defaults for this service: a GET-only
// surface with no allowed origins until they are configured explicitly.
func DefaultCORSConfig() CORSConfig {
	return CORSConfig{
		AllowOrigins:     []string{},
		AllowMethods:     []string{"GET", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", "X-Request-ID", "Accept", "Origin", "Cache-Control"},
		ExposeHeaders:    []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
}

// CORSWithConfig returns a CORS middleware. Requests from origins outside
// the whitelist pass through without CORS headers; preflight requests are
// always answered with 204 so they never fall through to a 404.
func CORSWithConfig(cfg CORSConfig) gin.HandlerFunc {
	allowAll := false
	for _, o := range cfg.AllowOrigins {
		if o == "*" {
			allowAll = true
			break
		}
	}

	return func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")

		allowed := ""
		switch {
		case allowAll:
			allowed = "*"
		case origin != "":
			for _, o := range cfg.AllowOrigins {
				if o == origin {
					allowed = origin
					break
				}
			}
		}

		if allowed != "" {
			h := c.Writer.Header()
			h.Set("Access-Control-Allow-Origin", allowed)
			// Credentials with a wildcard origin is rejected by browsers
			if cfg.AllowCredentials && allowed != "*" {
				h.Set("Access-Control-Allow-Credentials", "true")
			}
			h.Set("Access-Control-Allow-Methods", strings.Join(cfg.AllowMethods, ", "))
			h.Set("Access-Control-Allow-Headers", strings.Join(cfg.AllowHeaders, ", "))
			if len(cfg.ExposeHeaders) > 0 {
				h.Set("Access-Control-Expose-Headers", strings.Join(cfg.ExposeHeaders, ", "))
			}
			if cfg.MaxAge > 0 {
				h.Set("Access-Control-Max-Age", strconv.Itoa(int(cfg.MaxAge.Seconds())))
			}
		}

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

// RequestID ensures every request carries an X-Request-ID, generating one
// when the caller did not send it. The ID is mirrored in the response so
// callers can quote it when reporting a failed sync.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Request-ID")
		if id == "" {
			id = newRequestID()
		}
		c.Set("request_id", id)
		c.Writer.Header().Set("X-Request-ID", id)
		c.Next()
	}
}

// newRequestID returns 128 random bits as hex. crypto/rand does not fail
// on supported platforms.
func newRequestID() string {
	buf := make([]byte, 16)
	_, _ = rand.Read(buf)
	return hex.EncodeToString(buf)
}

// SecurityConfig holds the security header settings. HSTS stays off until
// the service is deployed behind TLS.
type SecurityConfig struct {
	HSTSEnabled           bool
	HSTSMaxAge            int // seconds
	HSTSIncludeSubdomains bool
	ContentSecurityPolicy string
}

// DefaultSecurityConfig returns headers suited to an API that serves only
// JSON and plain text: nothing here is meant to be embedded or scripted.
func DefaultSecurityConfig() SecurityConfig {
	return SecurityConfig{
		HSTSEnabled:           false,
		HSTSMaxAge:            31536000,
		HSTSIncludeSubdomains: true,
		ContentSecurityPolicy: "default-src 'none'; frame-ancestors 'none'",
	}
}

// Secure adds security headers using the default configuration
func Secure() gin.HandlerFunc {
	return SecureWithConfig(DefaultSecurityConfig())
}

// SecureWithConfig adds security headers to every response
func SecureWithConfig(cfg SecurityConfig) gin.HandlerFunc {
	var hsts string
	if cfg.HSTSEnabled {
		hsts = fmt.Sprintf("max-age=%d", cfg.HSTSMaxAge)
		if cfg.HSTSIncludeSubdomains {
			hsts += "; includeSubDomains"
		}
	}

	return func(c *gin.Context) {
		h := c.Writer.Header()
		h.Set("X-Frame-Options", "DENY")
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("Referrer-Policy", "no-referrer")
		if cfg.ContentSecurityPolicy != "" {
			h.Set("Content-Security-Policy", cfg.ContentSecurityPolicy)
		}
		if hsts != "" {
			h.Set("Strict-Transport-Security", hsts)
		}
		c.Next()
	}
}
