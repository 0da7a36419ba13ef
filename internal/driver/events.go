package driver

import "context"

// Stage is the pipeline step a file is in.
type Stage uint8

const (
	StageLoad Stage = iota
	StageLex
	StageParse
)

func (s Stage) String() string {
	switch s {
	case StageLoad:
		return "load"
	case StageLex:
		return "lex"
	case StageParse:
		return "parse"
	default:
		return "unknown"
	}
}

// Status reports where a file is within its stage.
type Status uint8

const (
	StatusQueued Status = iota
	StatusWorking
	StatusDone
	StatusError
	// StatusCached means the tree came from the disk cache.
	StatusCached
)

// Event is one progress update for the directory UI.
type Event struct {
	File   string
	Stage  Stage
	Status Status
}

// emit sends ev unless the channel is nil or ctx is cancelled.
func emit(ctx context.Context, ch chan<- Event, ev Event) {
	if ch == nil {
		return
	}
	select {
	case ch <- ev:
	case <-ctx.Done():
	}
}
