package domain

import (
	"context"
	"time"
)

// EventType defines the category of the event.
type EventType string

const (
	EventRunStart EventType = "run_start"
	EventStep     EventType = "step"
	EventRunStop  EventType = "run_stop"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
}

// StepEvent is emitted after every applied transition.
type StepEvent struct {
	EventBase
	Step       int        `json:"step"`
	From       string     `json:"from"`
	Read       Symbol     `json:"read"`
	Transition Transition `json:"transition"`
}

// RunEvent marks the start or the end of a run.
type RunEvent struct {
	EventBase
	Input  string        `json:"input"`
	Status Status        `json:"status"`
	Steps  int           `json:"steps"`
	Err    error         `json:"-"`
	Took   time.Duration `json:"took,omitempty"`
}

// LifecycleHooks defines callbacks for engine observability.
// Every field is optional.
type LifecycleHooks struct {
	OnRunStart func(context.Context, *RunEvent)
	OnStep     func(context.Context, *StepEvent)
	OnRunStop  func(context.Context, *RunEvent)
}
