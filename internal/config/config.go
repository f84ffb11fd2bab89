package config

import "time"

const (
	// DefaultPort is the default HTTP server port.
	DefaultPort = "8080"

	// DefaultDatabaseURL is empty; must be provided via flag or environment.
	DefaultDatabaseURL = ""

	// DefaultTokenTTL is the default lifetime of issued access tokens.
	DefaultTokenTTL = 24 * time.Hour

	// DefaultListLimit is the page size applied when a task listing carries
	// no explicit limit.
	DefaultListLimit = 50

	// MaxListLimit caps the page size a caller may request.
	MaxListLimit = 200
)
