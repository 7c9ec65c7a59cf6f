// Copyright (c) 2026 Kuramono. All rights reserved.

/*
Package constants provides centralized, immutable values for the entire platform.

It defines default timeouts, rate limits, storage keys, and the seed data used
when the archive is opened for the first time.

Categories:

  - Server Timing: Read/Write/Idle timeouts for the HTTP server.
  - Rate Limiting: Burst capacities and IP tracking TTLs.
  - Storage Keys: The fixed logical key set of the persistence gateway.
  - Archive Defaults: Seed character set and item templates.

Using this package ensures Magic Strings and Magic Numbers are eliminated
from the business logic.
*/
package constants

import "time"

// # Metadata

const (
	AppName    = "kuramono-api"
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

	// ShutdownTimeout is how long we wait for in-flight requests to complete during shutdown.
	ShutdownTimeout = 30 * time.Second
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

// # HTTP Headers

const (
	HeaderXRequestID    = "X-Request-ID"
	HeaderXRealIP       = "X-Real-IP"
	HeaderXForwardedFor = "X-Forwarded-For"
	HeaderOrigin        = "Origin"
)

// # JSON Field Identifiers

const (
	FieldData    = "data"
	FieldError   = "error"
	FieldCode    = "code"
	FieldDetails = "details"
	FieldMessage = "message"
	FieldStatus  = "status"
)

// # Storage Keys (Gateway Taxonomy)

// The persistence gateway stores the archive under this fixed key set.
// Every mutation rewrites all of them; there is no partial persistence.
const (
	StorageKeyDB          = "archive:db"
	StorageKeyOrder       = "archive:order"
	StorageKeyCharSets    = "archive:char_sets"
	StorageKeyTemplates   = "archive:templates"
	StorageKeyPresets     = "archive:presets"
	StorageKeyTradeConfig = "archive:trade_config"
	StorageKeySortMode    = "archive:sort_mode"
	StorageKeyLastItem    = "archive:last_item"
)

// # Archive Defaults

// DefaultSetName is the reserved character set that must always exist in the
// registry. New items and series templates pull their target list from it.
const DefaultSetName = "デフォルト"

// DefaultCharacterSet seeds the registry on first launch.
var DefaultCharacterSet = []string{
	"北門", "是国", "金城", "阿修", "愛染", "増長", "音済",
	"王茶利", "野目", "釈村", "唯月", "遙日", "不動", "殿",
}

// DefaultTemplates seeds the item templates applied to new series.
var DefaultTemplates = []string{"缶バッジ", "アクスタ", "ブロマイド"}
