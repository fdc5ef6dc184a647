package flog_test

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/google/flogger-sub002/backend"
	"github.com/google/flogger-sub002/flog"
	"github.com/google/flogger-sub002/metadata"
)

func Example() {
	console := backend.NewConsole(os.Stdout,
		backend.WithColor(false),
		backend.WithTimeLayout("none"))

	logger := flog.New(console)
	keyAttempt := metadata.Single[int]("attempt")

	logger.AtInfo().Log("server started")
	flog.With(logger.AtWarning(), keyAttempt, 3).Log("retrying")
	logger.AtError().WithCause(errors.New("boom")).Log("request failed")

	// Output:
	// INFO  server started
	// WARN  retrying [CONTEXT attempt=3]
	// ERROR request failed
	//   cause: boom
}

func ExampleContext_Every() {
	console := backend.NewConsole(os.Stdout,
		backend.WithColor(false),
		backend.WithTimeLayout("none"))

	logger := flog.New(console)

	for range 7 {
		logger.AtInfo().Every(3).Log("tick")
	}

	// Output:
	// INFO  tick [CONTEXT ratelimit_count=3]
	// INFO  tick [CONTEXT ratelimit_count=3 skipped=2]
	// INFO  tick [CONTEXT ratelimit_count=3 skipped=2]
}

func ExampleNewScope() {
	console := backend.NewConsole(os.Stdout,
		backend.WithColor(false),
		backend.WithTimeLayout("none"))

	logger := flog.New(console)
	keyRequest := metadata.Single[string]("request")

	ctx := flog.NewScope(context.Background(),
		new(metadata.List).Add(keyRequest, "a81f"))

	logger.AtInfo().Ctx(ctx).Log("loading profile")

	// Output:
	// INFO  loading profile [CONTEXT request="a81f"]
}

func ExampleTags() {
	tags := flog.Tags{}.With("env", "prod").With("shard", "b", "a")

	fmt.Println(tags)

	// Output: [env=prod shard=a shard=b]
}
