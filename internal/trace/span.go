package trace

import (
	"bytes"
	"context"
	"runtime"
	"strconv"
	"sync/atomic"
	"time"
)

var (
	seq    atomic.Uint64 // порядковый номер события, общий для всех трейсеров
	spanID atomic.Uint64
)

// goroutineID reads the id from the "goroutine N [...]" header of the stack.
func goroutineID() uint64 {
	var buf [64]byte
	b := buf[:runtime.Stack(buf[:], false)]
	b = bytes.TrimPrefix(b, []byte("goroutine "))
	if i := bytes.IndexByte(b, ' '); i > 0 {
		if id, err := strconv.ParseUint(string(b[:i]), 10, 64); err == nil {
			return id
		}
	}
	return 0
}

func newEvent(kind Kind, scope Scope, name string) *Event {
	return &Event{Time: time.Now(), Seq: seq.Add(1), Kind: kind, Scope: scope, Name: name}
}

// Span is one begin/end pair. A span from a disabled tracer has ID 0 and
// still measures its duration, which the driver feeds to --timings.
type Span struct {
	tracer  Tracer
	id      uint64
	parent  uint64
	gid     uint64
	scope   Scope
	name    string
	started time.Time
	extra   map[string]string
}

func (s *Span) live() bool { return s != nil && s.id != 0 }

// Begin opens a span under parent (0 for a root) and emits its begin event.
func Begin(t Tracer, scope Scope, name string, parent uint64) *Span {
	s := &Span{tracer: Nop, started: time.Now()}
	if t == nil || !t.Enabled() || !t.Level().ShouldEmit(scope) {
		return s
	}
	s.tracer, s.id, s.parent, s.gid = t, spanID.Add(1), parent, goroutineID()
	s.scope, s.name = scope, name

	ev := newEvent(KindSpanBegin, scope, name)
	ev.Time = s.started
	ev.SpanID, ev.ParentID, ev.GID = s.id, parent, s.gid
	t.Emit(ev)
	return s
}

// StartSpan begins a span under the tracer and parent span found in ctx and
// returns a context carrying the new span as parent for nested work.
func StartSpan(ctx context.Context, scope Scope, name string) (context.Context, *Span) {
	s := Begin(FromContext(ctx), scope, name, CurrentSpan(ctx).SpanID)
	if !s.live() {
		return ctx, s
	}
	return WithSpanContext(ctx, SpanContext{SpanID: s.id, GID: s.gid}), s
}

// End emits the end event with detail and returns the elapsed time.
func (s *Span) End(detail string) time.Duration {
	if s == nil {
		return 0
	}
	dur := time.Since(s.started)
	if !s.live() {
		return dur
	}
	ev := newEvent(KindSpanEnd, s.scope, s.name)
	ev.SpanID, ev.ParentID, ev.GID = s.id, s.parent, s.gid
	ev.Detail, ev.Elapsed, ev.Extra = detail, dur, s.extra
	s.tracer.Emit(ev)
	return dur
}

// WithExtra attaches key=value to the end event.
func (s *Span) WithExtra(key, value string) *Span {
	if !s.live() {
		return s
	}
	if s.extra == nil {
		s.extra = make(map[string]string, 2)
	}
	s.extra[key] = value
	return s
}

func (s *Span) ID() uint64 {
	if s == nil {
		return 0
	}
	return s.id
}

// Point emits an instant event under the span found in ctx.
func Point(ctx context.Context, scope Scope, name, detail string) {
	if !Enabled(ctx, scope) {
		return
	}
	ev := newEvent(KindPoint, scope, name)
	ev.ParentID, ev.GID, ev.Detail = CurrentSpan(ctx).SpanID, goroutineID(), detail
	FromContext(ctx).Emit(ev)
}
