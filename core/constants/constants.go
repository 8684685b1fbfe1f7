package constants

import "time"

// Timeouts
const (
	DefaultTimeout          = 30 * time.Second
	DefaultRequestTimeout   = 15 * time.Second
	ExternalCalendarTimeout = 5 * time.Second
)

// Context keys
const (
	ContextTokenData = "token_data"
)

// Token scopes
const (
	ScopeTokenAccess  = "access"
	ScopeTokenRefresh = "refresh"
)

// Database defaults
const (
	DatabaseSSLMode         = "disable"
	DatabaseMaxOpenConns    = 25
	DatabaseMaxIdleConns    = 5
	DatabaseConnMaxLifetime = 30 // minutes
)

// Availability engine limits
const (
	// MaxAvailabilityRangeDays bounds a single availability query. Larger
	// ranges must be paginated by the caller.
	MaxAvailabilityRangeDays = 90

	// AvailabilityCacheTTL is how long a computed slot list may be served
	// from cache before being recomputed.
	AvailabilityCacheTTL = 30 * time.Second
)

// Booking reference
const (
	BookingReferenceLength = 10
)
