package utils

import (
	"time"
)

// ContextKey is the type used for request-scoped context values
type ContextKey string

// Request context keys
const (
	RequestIDKey  ContextKey = "X-Request-ID"
	UserAgentKey  ContextKey = "User-Agent"
	IPAddressKey  ContextKey = "IP-Address"
	EndpointKey   ContextKey = "Endpoint"
	TimeoutKey    ContextKey = "Timeout"
	CancelFuncKey ContextKey = "Cancel-Func"
)

// Token and session time constants
const (
	// AccessTokenTTL is the time-to-live for negotiator tokens (24 hours)
	AccessTokenTTL = 24 * time.Hour
)

// CORS and security constants
const (
	// CORSMaxAge is the maximum age for CORS preflight requests (24 hours)
	CORSMaxAge = 86400
)

// Version retention constants
const (
	// DefaultVersionKeepLast is the default retention window for pruning
	DefaultVersionKeepLast = 50
)
