// Package auth implements the login, logout and presence endpoints.
//
// Psychologists authenticate with email + password, patients with their
// patient_code + access_code pair. Both receive HS256 access tokens issued by
// core/auth. The heartbeat endpoint accumulates online time for both actor
// kinds, and /patient/status lets the patient app show whether their
// psychologist is currently available.
//
// # HTTP Endpoints
//
//   - POST /login           : psychologist login
//   - POST /auth            : patient login
//   - POST /logout          : mark the caller offline
//   - POST /heartbeat       : refresh presence
//   - GET  /patient/status  : patient + psychologist liveness
package auth
