// Package messages implements the chat between a patient and their
// psychologist, including unread tracking.
package messages
