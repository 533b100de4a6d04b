package runner_test

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/aretw0/tmsim"
	"github.com/aretw0/tmsim/pkg/domain"
	"github.com/aretw0/tmsim/pkg/runner"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTextHandler(t *testing.T) {
	prog, err := tmsim.CompileText("1 1 1 r 1\n1 _ _ l 2")
	require.NoError(t, err)

	tests := []struct {
		name    string
		verbose bool
		want    string
	}{
		{
			name: "Terse",
			want: "START     : 1\n" +
				"            ^\n" +
				"STEP3     : 1_\n" +
				"            ^\n",
		},
		{
			name:    "Verbose",
			verbose: true,
			want: "START     : 1\n" +
				"            ^\n" +
				"STEP1     : 1_\n" +
				"             ^\n" +
				"STEP2     : 1_\n" +
				"            ^\n" +
				"STEP3     : 1_\n" +
				"            ^\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			h := runner.NewTextHandler(&buf, runner.WithVerbose(tt.verbose))

			_, err := runner.New(runner.WithHandler(h), runner.WithFullTrace(tt.verbose)).Run(context.Background(), prog, []string{"1"})
			require.NoError(t, err)
			assert.Equal(t, tt.want, buf.String())
		})
	}
}

func TestTextHandler_SeparatesRuns(t *testing.T) {
	prog, err := tmsim.CompileText("1 1 1 r 2")
	require.NoError(t, err)

	var buf bytes.Buffer
	h := runner.NewTextHandler(&buf)
	_, err = runner.New(runner.WithHandler(h)).Run(context.Background(), prog, []string{"1", "1"})
	require.NoError(t, err)

	runs := strings.Split(buf.String(), "\n\n")
	require.Len(t, runs, 2)
	assert.Equal(t, runs[0]+"\n", runs[1])
}

func TestTextHandler_StatusLine(t *testing.T) {
	prog, err := tmsim.CompileText("1 _ _ r 1", tmsim.WithStepLimit(2))
	require.NoError(t, err)

	var buf bytes.Buffer
	_, err = runner.New(runner.WithHandler(runner.NewTextHandler(&buf))).
		Run(context.Background(), prog, []string{""})
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	last := lines[len(lines)-1]
	assert.True(t, strings.HasPrefix(last, strings.Repeat(" ", 12)+string(domain.StatusStepLimit)), last)
}

func TestJSONHandler(t *testing.T) {
	prog, err := tmsim.CompileText("1 1 1 r 1\n1 _ _ l 2")
	require.NoError(t, err)

	for _, compact := range []bool{false, true} {
		var buf bytes.Buffer
		h := runner.NewJSONHandler(&buf, compact)
		_, err := runner.New(runner.WithHandler(h), runner.WithFullTrace(!compact)).Run(context.Background(), prog, []string{"1", "11"})
		require.NoError(t, err)

		lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
		require.Len(t, lines, 2)

		var res domain.Result
		require.NoError(t, json.Unmarshal([]byte(lines[1]), &res))
		assert.Equal(t, "11", res.Input)
		assert.Equal(t, domain.StatusHalted, res.Status)
		assert.Equal(t, "11_", res.Final.Tape)
		assert.Equal(t, prog.Fingerprint(), res.Fingerprint)
		if compact {
			assert.Empty(t, res.Records)
		} else {
			assert.Len(t, res.Records, 5)
		}
	}
}
