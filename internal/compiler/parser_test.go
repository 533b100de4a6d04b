package compiler

import (
	"errors"
	"strings"
	"testing"

	"github.com/aretw0/tmsim/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParser_ParseRules(t *testing.T) {
	src := `
# binary increment
1 1 1 r 1
1 _ _   L 2

2	0 1 l 3
`
	rules, err := NewParser().ParseRules(strings.NewReader(src))
	require.NoError(t, err)
	require.Len(t, rules, 3)

	assert.Equal(t, domain.Rule{State: "1", Read: '1', Write: '1', Move: domain.DirectionRight, Next: "1", Line: 3}, rules[0])
	assert.Equal(t, domain.DirectionLeft, rules[1].Move, "direction is case-insensitive")
	assert.Equal(t, 4, rules[1].Line)
	assert.Equal(t, "3", rules[2].Next, "tabs separate fields too")
}

func TestParser_ParseRules_KeepsUnknownDirection(t *testing.T) {
	rules, err := NewParser().ParseRules(strings.NewReader("1 0 0 X 1"))
	require.NoError(t, err)
	assert.Equal(t, domain.Direction("x"), rules[0].Move)
	assert.False(t, rules[0].Move.Valid())
}

func TestParser_ParseRules_Errors(t *testing.T) {
	tests := []struct {
		name   string
		src    string
		reason string
	}{
		{"too few fields", "1 1 1 r", "expected 5 fields"},
		{"too many fields", "1 1 1 r 1 extra", "expected 5 fields"},
		{"multi-char read", "1 11 1 r 1", "read symbol"},
		{"multi-char write", "1 1 ab r 1", "write symbol"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewParser().ParseRules(strings.NewReader(tt.src))
			require.Error(t, err)

			var syn *SyntaxError
			require.True(t, errors.As(err, &syn))
			assert.Equal(t, 1, syn.Line)
			assert.Contains(t, syn.Error(), tt.reason)
		})
	}
}

func TestParser_ParseRules_ReportsEveryBadLine(t *testing.T) {
	src := "1 1 1 r\n1 0 0 r 1\n1 1\n"
	_, err := NewParser().ParseRules(strings.NewReader(src))
	require.Error(t, err)

	errs := SyntaxErrors(err)
	require.Len(t, errs, 2)
	assert.Contains(t, err.Error(), "2 syntax errors")
	assert.Contains(t, errs[1].Error(), "line 3")
}

func TestParser_ParseRules_Empty(t *testing.T) {
	_, err := NewParser().ParseRules(strings.NewReader("\n# only comments\n\n"))
	assert.ErrorIs(t, err, domain.ErrNoRules)
}

func TestParser_ParseTapes(t *testing.T) {
	tapes, err := NewParser().ParseTapes(strings.NewReader("\n  1011 \n\n111\r\n\n"))
	require.NoError(t, err)
	assert.Equal(t, []string{"1011", "", "111"}, tapes)

	tapes, err = NewParser().ParseTapes(strings.NewReader("  \n"))
	require.NoError(t, err)
	assert.Empty(t, tapes)
}
