// Copyright (c) 2026 SkillHub. All rights reserved.

/*
Package constants provides centralized, immutable values for the web front end.

It defines default timeouts, rate limits, and cross-cutting keys shared between
layers, so Magic Strings and Magic Numbers stay out of the business logic.

Categories:

  - Server Timing: Read/Write/Idle timeouts for the HTTP server.
  - Upstream: Timeouts and wire formats for the remote marketplace API.
  - Rate Limiting: Burst capacities and IP tracking TTLs.
  - Security: Session cookie configuration.
*/
package constants

import "time"

// # Metadata

const (
	AppName    = "skillhub-web"
	AppVersion = "0.1.0-dev"
)

// # Server Timing

const (
	// DefaultReadTimeout is the maximum duration for reading the entire request.
	DefaultReadTimeout = 5 * time.Second

	// DefaultWriteTimeout is the maximum duration before timing out writes of the response.
	DefaultWriteTimeout = 10 * time.Second

	// DefaultIdleTimeout is the maximum amount of time to wait for the next request.
	DefaultIdleTimeout = 120 * time.Second

	// DefaultReadHeaderTimeout is the amount of time allowed to read request headers.
	DefaultReadHeaderTimeout = 2 * time.Second

	// GlobalRequestTimeout is the deadline for the entire request lifecycle.
	GlobalRequestTimeout = 30 * time.Second

	// ShutdownTimeout is how long we wait for in-flight requests during shutdown.
	ShutdownTimeout = 30 * time.Second
)

// # Upstream Marketplace API

const (
	// UpstreamRequestTimeout bounds a single call to the remote marketplace API.
	UpstreamRequestTimeout = 15 * time.Second

	// ScheduledAtWireFormat is the timestamp layout the booking endpoint expects.
	ScheduledAtWireFormat = "2006-01-02 15:04:05"

	// ScheduledAtInputFormat is the layout produced by a datetime-local form field.
	ScheduledAtInputFormat = "2006-01-02T15:04"
)

// # Rate Limiting

const (
	// DefaultRateLimitRPS is the requests per second allowed per IP.
	DefaultRateLimitRPS = 100.0

	// DefaultRateLimitBurst is the maximum burst allowed for the rate limiter.
	DefaultRateLimitBurst = 150

	// RateLimitCleanupInterval is how often old IP entries are removed from memory.
	RateLimitCleanupInterval = 1 * time.Minute

	// RateLimitClientTTL is how long a client must be idle before its entry is deleted.
	RateLimitClientTTL = 3 * time.Minute
)

// # Session Cookie

const (
	// SessionCookieName is the cookie that carries the signed browser identity.
	SessionCookieName = "skillhub_session"

	// SessionCookiePath scopes the cookie to the whole site.
	SessionCookiePath = "/"

	// CookieIssuer is the 'iss' claim stamped into the signed cookie.
	CookieIssuer = "skillhub.web"
)

// # Navigation Targets

const (
	PathLogin           = "/login"
	PathServices        = "/services"
	PathMyOrders        = "/my-orders"
	PathDashboard       = "/provider/dashboard"
	PathCompleteProfile = "/provider/complete-profile"
)

// # HTTP Headers

const (
	HeaderXRequestID    = "X-Request-ID"
	HeaderXRealIP       = "X-Real-IP"
	HeaderXForwardedFor = "X-Forwarded-For"
	HeaderOrigin        = "Origin"
	HeaderAuthorization = "Authorization"
)

// # JSON Field Identifiers

const (
	FieldData     = "data"
	FieldError    = "error"
	FieldCode     = "code"
	FieldDetails  = "details"
	FieldMessage  = "message"
	FieldStatus   = "status"
	FieldRedirect = "redirect"
	FieldApp      = "app"
	FieldVersion  = "version"
	FieldChecks   = "checks"
)

// # Redis Prefixes

const (
	// RedisPrefixBrowserSession keys the durable per-browser session record.
	RedisPrefixBrowserSession = "session:browser:"

	// RedisPrefixLocationSelection keys the per-browser selected location.
	RedisPrefixLocationSelection = "selection:browser:"
)
