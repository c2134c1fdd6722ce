// Package environment maps the build-mode signal onto the closed set of
// deployment environments the dashboard knows about.
package environment
