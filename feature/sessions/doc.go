// Package sessions records therapy sessions held between a psychologist and
// a patient, optionally with a snapshot of the chat around the session.
package sessions
