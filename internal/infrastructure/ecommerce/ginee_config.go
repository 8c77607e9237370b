package ecommerce

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"strings"
	"time"
)

// GineeConfig holds the Ginee OpenAPI credentials and endpoint
type GineeConfig struct {
	// AccessKey identifies the seller account
	AccessKey string
	// SecretKey signs every request
	SecretKey string
	// APIBaseURL is the OpenAPI host
	APIBaseURL string
	// Country selects the regional store (ID, MY, TH, PH, VN)
	Country string
	// Timeout bounds each HTTP request
	Timeout time.Duration
}

const (
	// GineeProductionAPIURL is the production OpenAPI endpoint
	GineeProductionAPIURL = "https://api.ginee.com"
	// GineeDefaultCountry is used when no country is configured
	GineeDefaultCountry = "ID"

	gineeCountryHeader = "X-Advai-Country"
)

// Errors for Ginee configuration
var (
	ErrGineeConfigMissingAccessKey = errors.New("ginee: access key is required")
	ErrGineeConfigMissingSecretKey = errors.New("ginee: secret key is required")
)

// NewGineeConfig creates a configuration with production defaults
func NewGineeConfig(accessKey, secretKey string) *GineeConfig {
	return &GineeConfig{
		AccessKey:  accessKey,
		SecretKey:  secretKey,
		APIBaseURL: GineeProductionAPIURL,
		Country:    GineeDefaultCountry,
		Timeout:    30 * time.Second,
	}
}

// Validate checks credentials and fills in defaults
func (c *GineeConfig) Validate() error {
	if c.AccessKey == "" {
		return ErrGineeConfigMissingAccessKey
	}
	if c.SecretKey == "" {
		return ErrGineeConfigMissingSecretKey
	}
	if c.APIBaseURL == "" {
		c.APIBaseURL = GineeProductionAPIURL
	}
	c.APIBaseURL = strings.TrimRight(c.APIBaseURL, "/")
	if c.Country == "" {
		c.Country = GineeDefaultCountry
	}
	if c.Timeout <= 0 {
		c.Timeout = 30 * time.Second
	}
	return nil
}

// Sign returns the request signature: base64(HMAC-SHA256(secret, METHOD$PATH$)).
func (c *GineeConfig) Sign(method, path string) string {
	h := hmac.New(sha256.New, []byte(c.SecretKey))
	h.Write([]byte(strings.ToUpper(method) + "$" + path + "$"))
	return base64.StdEncoding.EncodeToString(h.Sum(nil))
}

// Authorization builds the Authorization header value for a request
func (c *GineeConfig) Authorization(method, path string) string {
	return c.AccessKey + ":" + c.Sign(method, path)
}
