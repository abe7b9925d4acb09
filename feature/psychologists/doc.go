// Package psychologists manages practitioner accounts.
//
// Account creation is admin-only: a random password is generated, hashed and
// emailed to the new user. Deleting an account unassigns its patients first.
// Profile updates (including the AI style/tone configuration used by the chat
// feature) are restricted to the owner or an admin, and profile photos are
// stored in object storage.
//
// # HTTP Endpoints
//
//   - GET    /psychologists        : list accounts (admin)
//   - POST   /psychologists        : create account (admin)
//   - DELETE /psychologists/:id    : delete account (admin)
//   - GET    /profile/:id          : read profile (self or admin)
//   - PUT    /profile/:id          : update profile (self or admin)
//   - PUT    /profile/:id/photo    : upload profile photo (self or admin)
package psychologists
