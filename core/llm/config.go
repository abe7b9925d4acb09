package llm

// Config holds configuration for the LLM provider.
type Config struct {
	// APIKey authenticates against the provider.
	APIKey string `mapstructure:"api_key" default:""`
	// Model is the model identifier to use for completions.
	Model string `mapstructure:"model" default:"claude-3-5-sonnet-20241022"`
	// MaxTokens bounds the completion length.
	MaxTokens int `mapstructure:"max_tokens" default:"512"`
	// Temperature controls sampling randomness.
	Temperature float64 `mapstructure:"temperature" default:"0.7"`
}
