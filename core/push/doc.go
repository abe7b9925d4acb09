// Package push delivers mobile push notifications through an HTTP gateway
// (an FCM relay in production). The Sender interface keeps the notifications
// feature testable without a live gateway, and ErrInvalidToken signals that
// a device token should be pruned.
package push
