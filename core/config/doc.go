// Package config loads the application configuration.
//
// Configuration comes from environment variables, optionally seeded from a
// .env file. Nested keys map to underscored variables (SERVER_PORT ->
// server.port) and defaults are declared as struct tags on the per-package
// config types (server, database, auth, log, storage, llm, push, mail).
package config
