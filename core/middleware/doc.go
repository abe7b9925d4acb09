// Package middleware contains HTTP middleware for the Fiber application.
//
// It provides cross-cutting concerns that sit between the request and the
// handler:
//
//   - RayID: generates a unique request id for every incoming request,
//     injecting it into the context and response headers for tracing.
//
// Authentication guards live in core/auth because they need database access.
package middleware
