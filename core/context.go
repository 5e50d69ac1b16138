package core

import (
	"context"

	"github.com/bekerk/hotspot/internal/contract"
	"github.com/bekerk/hotspot/schema"
)

// Context keys for analysis options
type contextKey string

const suppressHeaderKey contextKey = "suppressHeader"

// withSuppressHeader marks the context so analysis headers are not printed.
func withSuppressHeader(ctx context.Context) context.Context {
	return context.WithValue(ctx, suppressHeaderKey, true)
}

// shouldSuppressHeader returns whether headers should be suppressed from context
func shouldSuppressHeader(ctx context.Context) bool {
	val := ctx.Value(suppressHeaderKey)
	if val == nil {
		return false // default: show headers
	}
	suppress, ok := val.(bool)
	return ok && suppress
}

// shouldPrintHeader reports whether the text header goes to stdout.
// Runs writing their table to a file keep stdout clean.
func shouldPrintHeader(ctx context.Context, cfg *contract.Config) bool {
	return !shouldSuppressHeader(ctx) && cfg.Output == schema.TextOut && cfg.OutputFile == ""
}
