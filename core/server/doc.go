// Package server holds the HTTP server configuration.
//
// The server listens on a configurable host/port pair (default 0.0.0.0:8001)
// and supports a development reload flag. Binding failures are fatal and
// surface as a non-zero process exit.
package server
