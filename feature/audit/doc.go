// Package audit records user and system actions for compliance review.
//
// The Recorder is shared by every other feature: it persists an AuditLog row
// and mirrors the entry into the structured log. Recording is best-effort and
// never fails the calling handler.
//
// # HTTP Endpoints
//
//   - GET /audit-logs : paginated listing, newest first (admin only).
package audit
