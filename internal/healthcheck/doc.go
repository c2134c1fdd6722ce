// Package healthcheck implements periodic health and readiness monitoring of
// the proxy backend. The resulting status feeds the dashboard's pod monitor
// page.
package healthcheck
