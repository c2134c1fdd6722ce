// Package handler implements the dashboard's HTTP surface: the resolved
// configuration, environment info and route table, the /api reverse proxy,
// and the navigation fallback that resolves page paths against the route
// table.
package handler
