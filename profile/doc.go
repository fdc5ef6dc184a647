// Package profile provides optional runtime profiling for the flogdemo
// binary.
//
// # Overview
//
// This package wraps [github.com/pkg/profile] behind a build tag so that
// profiling support costs nothing unless it is compiled in. Build with
// -tags pprof to enable it; without the tag every operation is a no-op.
//
// # Profiling Modes
//
// The following modes are available when built with the pprof tag:
//
//   - allocs:    memory allocation profiling (all allocations)
//   - block:     block (synchronization) profiling
//   - clock:     wall-clock profiling
//   - cpu:       CPU profiling
//   - goroutine: goroutine profiling
//   - heap:      heap memory profiling (live allocations)
//   - mem:       general memory profiling
//   - mutex:     mutex contention profiling
//   - thread:    thread creation profiling
//   - trace:     execution trace profiling
//
// Use [Modes] to retrieve the supported modes programmatically; it returns
// nil when the tag is absent.
//
// # Usage
//
// Configure a [Profiler] and start it; the returned control stops the
// profiler and flushes its output file:
//
//	p := profile.Profiler{Mode: "cpu", Path: "/tmp/profiles", Quiet: true}
//	ctrl := p.Start()
//	defer ctrl.Stop()
//
// Profile files are written into Path with names matching the mode
// (cpu.pprof, mem.pprof, and so on). An empty Mode, or a binary built
// without the tag, yields a control whose Stop does nothing.
//
// The flogdemo command exposes these settings as flags:
//
//	flogdemo --pprof-mode cpu --pprof-dir ./profiles burst
//
// Analyze the output with the usual tooling:
//
//	go tool pprof ./flogdemo /tmp/profiles/cpu.pprof
//	go tool pprof -http=: /tmp/profiles/cpu.pprof
//
// When built with the pprof tag this package also imports [net/http/pprof],
// so a binary that serves HTTP exposes live profiles under /debug/pprof/.
package profile

// Tag is the build tag required to enable pprof profiling.
const Tag = `pprof`
