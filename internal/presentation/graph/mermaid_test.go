package graph_test

import (
	"context"
	"strings"
	"testing"

	"github.com/aretw0/tmsim"
	"github.com/aretw0/tmsim/internal/presentation/graph"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateMermaid(t *testing.T) {
	tests := []struct {
		name     string
		src      string
		opts     []tmsim.Option
		contains []string
		excludes []string
	}{
		{
			name: "Start And Halting Shapes",
			src:  "1 1 1 r 1\n1 _ _ l 2",
			contains: []string{
				"graph LR",
				`s_1(("1"))`,
				`s_2((("2")))`,
			},
		},
		{
			name: "Merged Parallel Edges",
			src:  "1 0 0 r 1\n1 1 1 r 1\n1 _ _ l 2",
			contains: []string{
				`s_1 -->|"0/0,R<br/>1/1,R"| s_1`,
				`s_1 -->|"_/_,L"| s_2`,
			},
		},
		{
			name: "ID Sanitization",
			src:  "q-0 a b r end.state",
			opts: []tmsim.Option{tmsim.WithStart("q-0")},
			contains: []string{
				`s_q_0(("q-0"))`,
				`s_end_state((("end.state")))`,
			},
		},
		{
			name: "Quoted Symbols Escaped",
			src:  "1 \" ' r 2",
			contains: []string{
				`"#quot;/',R"`,
			},
		},
		{
			name: "Invalid Direction Dotted",
			src:  "1 0 0 x 2",
			opts: []tmsim.Option{tmsim.WithDeferredDirections()},
			contains: []string{
				`s_1 -.->|"0/0,?x"| s_2`,
			},
		},
		{
			name:     "No Overlay By Default",
			src:      "1 1 1 r 1",
			excludes: []string{"classDef"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prog, err := tmsim.CompileText(tt.src, tt.opts...)
			require.NoError(t, err)

			got := graph.GenerateMermaid(prog.Table(), nil)
			for _, want := range tt.contains {
				assert.Contains(t, got, want)
			}
			for _, unwanted := range tt.excludes {
				assert.NotContains(t, got, unwanted)
			}
		})
	}
}

func TestGenerateMermaid_Overlay(t *testing.T) {
	prog, err := tmsim.CompileText("1 1 1 r 1\n1 _ _ l 2\n3 0 0 r 1")
	require.NoError(t, err)

	res := prog.Run(context.Background(), "11")
	overlay := graph.OverlayFromResult(res)
	require.NotNil(t, overlay)
	assert.Equal(t, "2", overlay.CurrentState)

	got := graph.GenerateMermaid(prog.Table(), overlay)
	assert.Contains(t, got, "classDef visited")
	assert.Contains(t, got, "class s_1 visited;")
	assert.Contains(t, got, "class s_2 current;")
	assert.NotContains(t, got, "class s_3")
	assert.Equal(t, 1, strings.Count(got, "class s_1 visited;"))
}

func TestOverlayFromTrace(t *testing.T) {
	prog, err := tmsim.CompileText("1 1 1 r 1\n1 _ _ l 2\n2 1 1 l 2")
	require.NoError(t, err)

	overlay := graph.OverlayFromTrace(prog.Trace(context.Background(), "111"))
	assert.Equal(t, []string{"1", "2"}, overlay.VisitedStates)
	assert.Equal(t, "2", overlay.CurrentState)
	assert.Equal(t, graph.OverlayFromResult(prog.Run(context.Background(), "111")), overlay)
}

func TestOverlayFromResult_Nil(t *testing.T) {
	assert.Nil(t, graph.OverlayFromResult(nil))
}
