package flog

import (
	"context"

	"github.com/google/flogger-sub002/metadata"
)

// scopeKey carries a metadata scope through a [context.Context].
type scopeKey struct{}

// NewScope returns a context carrying md as ambient metadata, which
// statements adopt with [Context.Ctx]. Scopes nest: md is appended
// after any scope ctx already carries, so inner values win last-wins
// resolution for single-valued keys.
func NewScope(ctx context.Context, md metadata.Metadata) context.Context {
	if md == nil || md.Len() == 0 {
		return ctx
	}

	if outer := ScopeFrom(ctx); outer.Len() > 0 {
		md = metadata.Concat(outer, md)
	}

	return context.WithValue(ctx, scopeKey{}, md)
}

// ScopeFrom returns the metadata scope carried by ctx, or the empty
// metadata when none is attached.
func ScopeFrom(ctx context.Context) metadata.Metadata {
	if md, ok := ctx.Value(scopeKey{}).(metadata.Metadata); ok {
		return md
	}

	return metadata.Empty()
}
