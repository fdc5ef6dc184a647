//go:build !pprof

package profile

import "sync"

// Modes returns nil when built without the pprof build tag.
var Modes = sync.OnceValue(func() []string { return nil })

func start(string, string, bool) interface{ Stop() } { return ignore{} }
