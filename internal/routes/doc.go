// Package routes holds the dashboard's page table: the ordered mapping from
// URL path to page identity handed to the navigation layer.
//
// A Table is validated when it is built. Duplicate paths or names, and
// routes missing a path, name or component, are reported as errors so the
// process fails at startup instead of serving broken navigation.
//
// Lookups are first-match-wins over declaration order. Paths are literal
// except for {param} segments, which match exactly one non-empty segment.
package routes
