package server

import "net"

// Config holds configuration for the HTTP server.
type Config struct {
	// Host is the bind address. Empty or 0.0.0.0 accepts all interfaces.
	Host string `mapstructure:"host" default:"0.0.0.0"`
	// Port is the port where the server will listen.
	Port string `mapstructure:"port" default:"8001"`
	// Reload enables development mode behaviour (verbose errors, no prefork).
	Reload bool `mapstructure:"reload" default:"false"`
}

// Addr returns the host:port pair the listener should bind to.
func (c Config) Addr() string {
	return net.JoinHostPort(c.Host, c.Port)
}
