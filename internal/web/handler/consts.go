// Package handler holds shared constants for the route handlers.
package handler

const (
	// RootPath is the root path the route group.
	RootPath = "/"

	// APIPrefix is the prefix for the monitoring and navigation API routes.
	APIPrefix = "/api"
)
