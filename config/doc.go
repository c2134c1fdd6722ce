// Package config handles loading and parsing of the dashboard server's
// settings from YAML files and environment variables. It defines the build
// mode, listen address and public origin, the upstream backend, health check
// and circuit breaker tuning, and the log level.
package config
