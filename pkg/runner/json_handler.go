package runner

import (
	"context"
	"encoding/json"
	"io"
	"os"

	"github.com/aretw0/tmsim/pkg/domain"
)

// JSONHandler writes one Result per line (NDJSON).
type JSONHandler struct {
	Encoder *json.Encoder

	// Compact drops the per-step records and keeps only the final one.
	Compact bool
}

// NewJSONHandler creates a handler for JSON output.
func NewJSONHandler(w io.Writer, compact bool) *JSONHandler {
	if w == nil {
		w = os.Stdout
	}
	return &JSONHandler{
		Encoder: json.NewEncoder(w),
		Compact: compact,
	}
}

func (h *JSONHandler) Handle(ctx context.Context, res *domain.Result) error {
	if h.Compact {
		trimmed := *res
		trimmed.Records = nil
		res = &trimmed
	}
	return h.Encoder.Encode(res)
}
