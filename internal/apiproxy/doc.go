// Package apiproxy is the reverse proxy that sits in front of the backend in
// production deployments. It strips the proxied base path from incoming
// requests, forwards them to the backend service and guards every backend
// endpoint with its own circuit breaker.
package apiproxy
