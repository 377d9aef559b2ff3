package bitable

import "errors"

// Config holds credentials and table addressing for the external tabular
// service (Lark Bitable open API).
type Config struct {
	// BaseURL is the open-apis endpoint root
	BaseURL string
	// AppID is the application id used for tenant token acquisition
	AppID string
	// AppSecret is the application secret used for tenant token acquisition
	AppSecret string
	// AppToken identifies the bitable app containing the tables
	AppToken string
	// ProductTable is the table id of the product catalog
	ProductTable string
	// OrderTable is the table id of the order line-item ledger
	OrderTable string
	// TimeoutSeconds is the HTTP request timeout
	TimeoutSeconds int
}

// DefaultBaseURL is the production open-apis endpoint
const DefaultBaseURL = "https://open.feishu.cn"

// Errors for bitable configuration
var (
	ErrConfigMissingAppID     = errors.New("bitable: app id is required")
	ErrConfigMissingAppSecret = errors.New("bitable: app secret is required")
	ErrConfigMissingAppToken  = errors.New("bitable: app token is required")
)

// NewConfig creates a new configuration with defaults
func NewConfig(appID, appSecret, appToken string) *Config {
	return &Config{
		BaseURL:        DefaultBaseURL,
		AppID:          appID,
		AppSecret:      appSecret,
		AppToken:       appToken,
		TimeoutSeconds: 30,
	}
}

// Validate validates the configuration and fills in defaults
func (c *Config) Validate() error {
	if c.AppID == "" {
		return ErrConfigMissingAppID
	}
	if c.AppSecret == "" {
		return ErrConfigMissingAppSecret
	}
	if c.AppToken == "" {
		return ErrConfigMissingAppToken
	}
	if c.BaseURL == "" {
		c.BaseURL = DefaultBaseURL
	}
	if c.TimeoutSeconds <= 0 {
		c.TimeoutSeconds = 30
	}
	return nil
}
