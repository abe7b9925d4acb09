package auth

// Config holds configuration for token issuance and validation.
type Config struct {
	// SecretKey signs access tokens (HS256).
	SecretKey string `mapstructure:"secret_key" default:"your-secret-key-change-in-production-please"`
	// TokenTTLHours is the access token lifetime in hours.
	TokenTTLHours int `mapstructure:"token_ttl_hours" default:"24"`
}
