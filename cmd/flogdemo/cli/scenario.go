//nolint:gochecknoglobals
package cli

import (
	"context"

	"github.com/google/uuid"

	"github.com/google/flogger-sub002/flog"
	"github.com/google/flogger-sub002/metadata"
	"github.com/google/flogger-sub002/pkg"
)

// Metadata keys shared by the scenarios. Each scenario's records carry the
// request id of the run and, where present, the worker that issued them.
var (
	keyRequest = metadata.Single[string]("request")
	keyWorker  = metadata.Single[int]("worker")
	keyAttempt = metadata.Single[int]("attempt")
	keyTick    = metadata.Single[int]("tick")
	keyShard   = metadata.Single[string]("shard")
)

var errSimulated = pkg.NewError("simulated downstream failure")

// requestScope returns ctx carrying a fresh request id in scope metadata.
func requestScope(ctx context.Context) context.Context {
	scope := new(metadata.List).Add(keyRequest, uuid.NewString())

	return flog.NewScope(ctx, scope)
}

// workerScope returns ctx carrying the scope metadata every record from one
// worker shares: a fresh request id and the worker index.
func workerScope(ctx context.Context, worker int) context.Context {
	scope := new(metadata.List).
		Add(keyRequest, uuid.NewString()).
		Add(keyWorker, worker)

	return flog.NewScope(ctx, scope)
}
