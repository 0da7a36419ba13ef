// Package trace is the structured event log of the bong tool.
//
// Every interesting step (a CLI command, a directory walk, loading, lexing and
// parsing a file, a cache lookup) is recorded as a span with a begin and an
// end event, or as a single point event. Events carry a scope that says how
// fine-grained they are; the configured Level decides which scopes are kept.
//
// Usage:
//
//	bong parse --trace=- --trace-level=detail conf/
//
// Tracers:
//
//   - Nop: zero-overhead tracer used when tracing is off
//   - StreamTracer: writes every event immediately (text or NDJSON)
//   - RingTracer: keeps the last N events in memory, dumped on failure
//
// ModeBoth fans every event out to a stream and a ring.
//
// Levels: off, error (ring only, dumped when a command fails), phase (driver
// and pass spans), detail (per-file spans), debug (everything, including
// cache and point events).
//
// Tracers travel through the pipeline in a context:
//
//	ctx = trace.WithTracer(ctx, tracer)
//	ctx, span := trace.StartSpan(ctx, trace.ScopePass, "parse")
//	defer span.End("")
package trace
