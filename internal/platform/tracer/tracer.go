// Package tracer provides a lightweight tracing abstraction for the consent
// lifecycle. It defines an internal interface that doesn't depend directly on
// OpenTelemetry APIs, so services can emit spans while remaining decoupled
// from the specific tracing implementation.
//
// Implementations:
//   - NoopTracer: for tests (zero overhead)
//   - OTelTracer: OpenTelemetry adapter for production
package tracer

import "context"

// Span represents an active trace span.
type Span interface {
	// End completes the span, recording any error that occurred.
	// End must be called exactly once, typically via defer.
	End(err error)

	// SetAttributes adds key-value pairs to the span.
	SetAttributes(attrs ...Attribute)

	// AddEvent records a timestamped event within the span.
	AddEvent(name string, attrs ...Attribute)
}

// Tracer creates spans for distributed tracing.
// Implementations must be safe for concurrent use.
type Tracer interface {
	// Start creates a new span with the given name and attributes.
	// The returned context contains the new span and should be passed to
	// child operations. The span must be ended by calling Span.End().
	Start(ctx context.Context, name string, attrs ...Attribute) (context.Context, Span)
}

// Attribute represents a key-value pair attached to spans.
type Attribute struct {
	Key   string
	Value any
}

// String creates a string attribute.
func String(key, value string) Attribute {
	return Attribute{Key: key, Value: value}
}

// Int64 creates an int64 attribute.
func Int64(key string, value int64) Attribute {
	return Attribute{Key: key, Value: value}
}

// Span names used by the consent module.
const (
	SpanConsentAuthorize = "consent.authorize"
	SpanConsentRevoke    = "consent.revoke"
	SpanConsentRenew     = "consent.renew"
	SpanConsentAccess    = "consent.access"
)

// Attribute keys used by the consent module.
const (
	AttrConsentID   = "consent_id"
	AttrProviderID  = "provider_id"
	AttrPermissions = "permission_count"
	AttrAccounts    = "account_count"
)
