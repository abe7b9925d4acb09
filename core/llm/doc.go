// Package llm wraps the Anthropic Messages API behind a one-method Client
// interface. The chat feature builds its suggestion prompts on top of it and
// tests substitute a stub implementation.
package llm
