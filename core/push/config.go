package push

// Config holds configuration for the push notification gateway.
type Config struct {
	// Endpoint is the HTTP endpoint of the push gateway.
	Endpoint string `mapstructure:"endpoint" default:""`
	// APIKey authenticates against the gateway.
	APIKey string `mapstructure:"api_key" default:""`
	// TimeoutSeconds bounds each delivery request.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"10"`
}
