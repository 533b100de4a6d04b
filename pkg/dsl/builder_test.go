package dsl_test

import (
	"context"
	"strings"
	"testing"

	"github.com/aretw0/tmsim/pkg/domain"
	"github.com/aretw0/tmsim/pkg/dsl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func increment() *dsl.Builder {
	b := dsl.New("increment")

	b.State("right").
		Keep('0', dsl.R, "right").
		Keep('1', dsl.R, "right").
		On('_', '_', dsl.L, "carry")

	b.State("carry").
		On('1', '0', dsl.L, "carry").
		On('0', '1', dsl.L, "done").
		On('_', '1', dsl.L, "done")

	b.State("done").Halt()
	return b.Tapes("1011", "111")
}

func TestBuilder_Build(t *testing.T) {
	m, err := increment().Build()
	require.NoError(t, err)

	assert.Equal(t, "increment", m.ID)
	assert.Equal(t, "right", m.Start, "first state is the start state")
	assert.Equal(t, []string{"1011", "111"}, m.Tapes)
	require.Len(t, m.Rules, 6)
	assert.Equal(t, "right 0 0 r right", m.Rules[0].String())
	assert.Equal(t, "carry _ 1 l done", m.Rules[5].String())
}

func TestBuilder_Compile(t *testing.T) {
	prog, err := increment().Compile()
	require.NoError(t, err)

	tests := map[string]string{
		"1011": "1100",
		"111":  "1000",
		"0":    "1",
	}
	for input, want := range tests {
		res := prog.Run(context.Background(), input)
		require.Equal(t, domain.StatusHalted, res.Status, input)
		assert.Equal(t, want, strings.Trim(res.Final.Tape, "_"), input)
	}
}

func TestBuilder_StateReuse(t *testing.T) {
	b := dsl.New("m")
	b.State("a").Keep('1', dsl.R, "b")
	b.State("b").Keep('1', dsl.R, "a")
	b.State("a").Keep('0', dsl.R, "a")

	m, err := b.Build()
	require.NoError(t, err)
	require.Len(t, m.Rules, 3)
	assert.Equal(t, "a", m.Rules[1].State, "rules are grouped by state")
}

func TestBuilder_Options(t *testing.T) {
	b := dsl.New("eraser").Start("e").Blank('.').Describe("erases ones")
	b.State("e").On('1', '.', dsl.R, "e")

	m, err := b.Build()
	require.NoError(t, err)
	assert.Equal(t, "e", m.Start)
	assert.Equal(t, domain.Symbol('.'), m.Blank)
	assert.Equal(t, "erases ones", m.Description)
}

func TestBuilder_Errors(t *testing.T) {
	_, err := dsl.New("empty").Build()
	assert.ErrorIs(t, err, domain.ErrNoRules)

	b := dsl.New("dup")
	b.State("1").Keep('1', dsl.R, "1").On('1', '0', dsl.L, "1")
	_, err = b.Compile()
	assert.ErrorIs(t, err, domain.ErrAmbiguousTransition)
}

func TestBuilder_Loader(t *testing.T) {
	loader, err := increment().Loader()
	require.NoError(t, err)

	m, err := loader.GetMachine(context.Background(), "increment")
	require.NoError(t, err)
	assert.Len(t, m.Rules, 6)
}
