// Package cli implements the flogdemo command-line interface.
//
// The binary exercises the flog library end to end. It builds a backend
// from flags or a YAML configuration file, wraps it in a [flog.Logger],
// and runs one of three logging scenarios against it:
//
//   - burst:  floods the logger from concurrent workers with count-based
//     rate limits
//   - steady: emits a ticker-driven heartbeat held to a wall-clock period
//   - sample: demonstrates statistical sampling and per-shard limiting
//
// Every scenario tags its records with a request id carried in scope
// metadata, so interleaved output remains attributable to its worker.
//
// The configuration file supplies the base document and flags given
// explicitly on the command line override it:
//
//	flogdemo --config flog.yaml --backend-kind zap burst --workers 8
//
// Without --config, a config.yaml under the user config directory is
// consulted when present. Flags also read environment variables named
// after the executable, for example FLOGDEMO_BACKEND_KIND.
//
// Profiling is compiled in with the pprof build tag and enabled with
// --pprof-mode.
package cli
