package tmsim_test

import (
	"context"
	"strings"
	"testing"

	"github.com/aretw0/tmsim"
	"github.com/aretw0/tmsim/internal/compiler"
	"github.com/aretw0/tmsim/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const returnHome = "1 1 1 r 1\n1 _ _ l 2"

func TestCompileText_Run(t *testing.T) {
	prog, err := tmsim.CompileText(returnHome)
	require.NoError(t, err)

	res := prog.Run(context.Background(), "1")
	assert.True(t, res.Halted())
	assert.Equal(t, 2, res.Steps)
	assert.Equal(t, "1_", res.Final.Tape)
	assert.Equal(t, "1", res.Final.Trimmed(domain.DefaultBlank))
	assert.Equal(t, prog.Fingerprint(), res.Fingerprint)
	assert.Empty(t, res.Machine)
	assert.True(t, res.Complete())
}

func TestProgram_Outcome(t *testing.T) {
	prog, err := tmsim.CompileText(returnHome)
	require.NoError(t, err)

	full := prog.Run(context.Background(), "11")
	res := prog.Outcome(context.Background(), "11")

	assert.Equal(t, full.Summary(), res)
	assert.Len(t, res.Records, 2)
	assert.False(t, res.Complete())
	assert.Equal(t, "11", res.Final.Trimmed(domain.DefaultBlank))
}

func TestCompileText_Errors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want error
	}{
		{"Empty", "", domain.ErrNoRules},
		{"Ambiguous", "1 0 1 r 1\n1 0 0 l 2", domain.ErrAmbiguousTransition},
		{"Direction", "1 0 0 x 1", domain.ErrInvalidDirection},
		{"UnknownStart", "2 0 0 r 3", domain.ErrUnknownStartState},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prog, err := tmsim.CompileText(tt.src)
			assert.Nil(t, prog)
			assert.ErrorIs(t, err, tt.want)
		})
	}

	t.Run("Syntax", func(t *testing.T) {
		_, err := tmsim.CompileText("1 0 0 r")
		var syn *compiler.SyntaxError
		assert.ErrorAs(t, err, &syn)
	})
}

func TestCompile_MachineDefaults(t *testing.T) {
	m := &domain.Machine{
		ID:    "eraser",
		Start: "a",
		Blank: '.',
		Rules: []domain.Rule{
			{State: "a", Read: '1', Write: '.', Move: domain.DirectionRight, Next: "a"},
		},
	}

	prog, err := tmsim.Compile(m)
	require.NoError(t, err)
	assert.Equal(t, "a", prog.Table().Start)
	assert.Equal(t, domain.Symbol('.'), prog.Table().Blank)
	assert.Equal(t, "eraser", prog.ID())

	res := prog.Run(context.Background(), "111")
	assert.True(t, res.Halted())
	assert.Equal(t, "....", res.Final.Tape)
	assert.Equal(t, "eraser", res.Machine)

	// Options win over the definition.
	_, err = tmsim.Compile(m, tmsim.WithStart("b"))
	assert.ErrorIs(t, err, domain.ErrUnknownStartState)
	assert.Contains(t, err.Error(), "eraser")
}

func TestProgram_DeferredDirections(t *testing.T) {
	prog, err := tmsim.CompileText("1 0 0 x 1", tmsim.WithDeferredDirections())
	require.NoError(t, err)
	assert.True(t, prog.Deferred())

	res := prog.Run(context.Background(), "0")
	assert.Equal(t, domain.StatusFailed, res.Status)
	assert.ErrorIs(t, res.Err, domain.ErrInvalidDirection)

	// Tapes that never reach the bad rule still halt.
	res = prog.Run(context.Background(), "1")
	assert.True(t, res.Halted())
}

func TestProgram_StepLimit(t *testing.T) {
	prog, err := tmsim.CompileText("1 _ 1 r 1", tmsim.WithStepLimit(100))
	require.NoError(t, err)
	assert.Equal(t, 100, prog.StepLimit())

	res := prog.Run(context.Background(), "")
	assert.Equal(t, domain.StatusStepLimit, res.Status)
	assert.Equal(t, 100, res.Steps)
	assert.Equal(t, strings.Repeat("1", 100)+"_", res.Final.Tape)
}

func TestProgram_TraceMatchesRun(t *testing.T) {
	prog, err := tmsim.CompileText(returnHome)
	require.NoError(t, err)

	var lazy []domain.Record
	for rec := range prog.Trace(context.Background(), "111") {
		lazy = append(lazy, rec)
	}
	assert.Equal(t, prog.Run(context.Background(), "111").Records, lazy)
}

func TestProgram_ConcurrentRuns(t *testing.T) {
	prog, err := tmsim.CompileText(returnHome)
	require.NoError(t, err)

	want := prog.Run(context.Background(), "1111").Records

	done := make(chan []domain.Record)
	for range 8 {
		go func() {
			done <- prog.Run(context.Background(), "1111").Records
		}()
	}
	for range 8 {
		assert.Equal(t, want, <-done)
	}
}

func TestProgram_Fingerprint(t *testing.T) {
	a, err := tmsim.CompileText("1 1 1 r 1\n1 _ _ l 2")
	require.NoError(t, err)
	reordered, err := tmsim.CompileText("# same rules\n1 _ _ l 2\n1 1 1 r 1")
	require.NoError(t, err)
	other, err := tmsim.CompileText("1 1 0 r 1\n1 _ _ l 2")
	require.NoError(t, err)
	otherBlank, err := tmsim.CompileText("1 1 1 r 1\n1 _ _ l 2", tmsim.WithBlank('b'))
	require.NoError(t, err)

	assert.Len(t, a.Fingerprint(), 64)
	assert.Equal(t, a.Fingerprint(), reordered.Fingerprint())
	assert.NotEqual(t, a.Fingerprint(), other.Fingerprint())
	assert.NotEqual(t, a.Fingerprint(), otherBlank.Fingerprint())
}

func TestProgram_Hooks(t *testing.T) {
	var steps int
	var final domain.Status
	prog, err := tmsim.CompileText(returnHome, tmsim.WithLifecycleHooks(domain.LifecycleHooks{
		OnStep:    func(ctx context.Context, e *domain.StepEvent) { steps++ },
		OnRunStop: func(ctx context.Context, e *domain.RunEvent) { final = e.Status },
	}))
	require.NoError(t, err)

	prog.Run(context.Background(), "11")
	assert.Equal(t, 3, steps)
	assert.Equal(t, domain.StatusHalted, final)
}

func TestParseTapes(t *testing.T) {
	tapes, err := tmsim.ParseTapes(strings.NewReader("\n10\n\n11 \n"))
	require.NoError(t, err)
	assert.Equal(t, []string{"10", "", "11"}, tapes)
}

func TestVersion(t *testing.T) {
	assert.NotEmpty(t, strings.TrimSpace(tmsim.Version))
}
