package domain

import (
	"strconv"
	"strings"
)

// Status is the abstract state of a run.
type Status string

const (
	StatusRunning   Status = "running"
	StatusHalted    Status = "halted"              // No instruction for (state, symbol)
	StatusFailed    Status = "failed"              // A malformed transition was executed
	StatusStepLimit Status = "step_limit_exceeded" // Configured step budget exhausted
	StatusCanceled  Status = "canceled"            // Context canceled between steps
)

// Terminal reports whether no further step can be taken.
func (s Status) Terminal() bool {
	return s != StatusRunning && s != ""
}

// LabelStart marks the record of the initial configuration.
const LabelStart = "START"

// StepLabel returns the label of the record emitted for step n.
func StepLabel(n int) string {
	return "STEP" + strconv.Itoa(n)
}

// Record is one line of a trace: a snapshot of the configuration.
type Record struct {
	Label string `json:"label"`
	Step  int    `json:"step"`
	State string `json:"state"`

	// Tape is the rendered tape, margin stripped.
	Tape string `json:"tape"`

	// Pointer is the head offset from cell 0 of the input. It is negative
	// once the head has moved left of the origin.
	Pointer int `json:"pointer"`

	// Caret is the head offset inside Tape.
	Caret int `json:"caret"`

	Status Status `json:"status"`
	Error  string `json:"error,omitempty"`
}

// Trimmed returns Tape without its leading and trailing blanks.
func (r Record) Trimmed(blank Symbol) string {
	return strings.Trim(r.Tape, string(blank))
}

// Result is the outcome of one run.
type Result struct {
	Machine     string `json:"machine,omitempty"`
	Fingerprint string `json:"fingerprint,omitempty"`
	Input       string `json:"input"`
	Status      Status `json:"status"`

	// Steps is the number of transitions actually applied.
	Steps int `json:"steps"`

	Final   Record   `json:"final"`
	Records []Record `json:"records"`
	Error   string   `json:"error,omitempty"`

	// Err is the typed error behind Error. It does not survive serialization.
	Err error `json:"-"`

	// Cached is set by the runner when the result came from a ResultStore.
	Cached bool `json:"cached,omitempty"`
}

// Complete reports whether Records holds every configuration of the run:
// START, one record per applied step and the terminal record.
func (r *Result) Complete() bool {
	return len(r.Records) == r.Steps+2
}

// Summary returns a copy of r keeping only the START and terminal records.
func (r *Result) Summary() *Result {
	out := *r
	if len(r.Records) > 2 {
		out.Records = []Record{r.Records[0], r.Records[len(r.Records)-1]}
	}
	return &out
}

// Halted is a convenience for the common success check.
func (r *Result) Halted() bool {
	return r.Status == StatusHalted
}
