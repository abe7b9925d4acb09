// Package auth implements authentication and authorization.
//
// Two kinds of actors authenticate against the API:
//
//   - Psychologists (and admin/superadmin accounts) with email + bcrypt
//     password, identified by a "sub" claim.
//   - Patients with patient_code + access_code, identified by "sub" plus a
//     "role":"patient" claim and a token_version that invalidates old tokens
//     when the access code is regenerated.
//
// Tokens are HS256 JWTs with a configurable TTL (24h by default). The guard
// middleware (RequireUser, RequirePatient, RequireActor, RequireAdmin,
// RequireSuperadmin) loads the account from the database and stores it in the
// Fiber request locals, where handlers retrieve it via UserFromCtx,
// PatientFromCtx and ActorFromCtx.
//
// VerifyPatientAccess enforces the ownership rule: admins can act on every
// patient, psychologists only on patients assigned to them.
package auth
