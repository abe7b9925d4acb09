// Package chat suggests reply options for psychologists by sending the
// patient conversation to an LLM, flavored with the therapist's configured
// style, tone and extra instructions.
package chat
