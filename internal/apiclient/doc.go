// Package apiclient talks to the proxy backend on behalf of the dashboard.
//
// A Client is built from a resolved apiconfig.Configuration and takes its
// base URL, request timeout, default headers and retry policy from it.
// Relative base URLs, as used behind the reverse proxy, are resolved
// against the page origin given to New.
package apiclient
