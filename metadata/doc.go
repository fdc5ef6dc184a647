// Package metadata provides typed, identity-based key/value context for
// structured log statements, and the machinery to merge, deduplicate, and
// dispatch that context during formatting.
//
// # Keys
//
// A [Key] identifies one metadata slot. Keys are created once, typically
// as package-level singletons, and compare by identity: two keys with the
// same label are still distinct slots.
//
//	var KeyUser = metadata.Single[string]("user")
//	var KeyShard = metadata.Repeated[int]("shard")
//
// Single keys resolve duplicates by keeping the last value; repeated keys
// accumulate every value in order.
//
// # Merging
//
// A [Processor] merges the ambient scope metadata and the log-site
// metadata of one statement into a single ordered view:
//
//	p := metadata.ForScopeAndLogSite(scope, logged)
//	metadata.Process(p, handler, &buf)
//
// Distinct keys appear in first-encounter order scanning scope first. The
// processor picks one of two interchangeable representations based on the
// combined element count; both behave identically.
//
// # Dispatch
//
// A [Handler] maps keys to handling callbacks. Handlers are immutable and
// shared; per-call state travels in a caller-supplied context value:
//
//	h := metadata.NewHandlerBuilder[*strings.Builder](emitPair).
//		Handle(KeyUser, emitUser).
//		Build()
package metadata
