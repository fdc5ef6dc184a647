// Package backend delivers finished log records to concrete sinks.
//
// A [Record] carries everything one log statement produced: timestamp,
// level, call site, the literal or deferred-format message, the logged
// and ambient scope metadata, and the logging reentrancy depth. The
// frontend builds records; backends consume them through the [Backend]
// interface and never see the fluent API.
//
// # Formatting
//
// [Formatter] renders the merged metadata of a record as a context
// suffix appended to the message:
//
//	request failed [CONTEXT path="/v1/items" attempt=3 skipped=17]
//
// Distinct keys appear in first-encounter order, single keys resolve to
// their last value, and repeated keys contribute one pair per value.
// The cause is excluded from the suffix; backends recover it with
// [Record.Cause] and attach it in their native form.
//
// # Sinks
//
// [Console] writes styled human-readable lines, [File] writes plain
// lines through a size-rotated file, and [Memory] captures records for
// tests. [NewSlog], [NewZap], and [NewLogrus] adapt records onto
// existing logging stacks, translating metadata into the attribute or
// field form native to each.
//
// # Filtering
//
// [NewFilter] decorates any backend with a compiled predicate over the
// record's message, level, site, cause, and metadata:
//
//	be, err := backend.NewFilter(next, `level == "error" || meta.attempt > 3`)
//
// Compiled programs are cached by source text, so rebuilding a filter
// from unchanged configuration is free.
package backend
