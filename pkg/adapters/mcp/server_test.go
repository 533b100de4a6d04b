package mcp

import (
	"context"
	"testing"

	"github.com/aretw0/tmsim/internal/service"
	"github.com/aretw0/tmsim/pkg/adapters/memory"
	"github.com/aretw0/tmsim/pkg/domain"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer() *Server {
	loader := memory.NewLoader(map[string]string{
		"walk": "1 1 1 r 1\n1 _ _ l 2",
	})
	return NewServer(service.New(service.WithLoader(loader)))
}

func TestHandleRun(t *testing.T) {
	s := newTestServer()

	resp, err := s.handleRun(context.Background(), mcp.CallToolRequest{}, RunArgs{
		MachineArgs: MachineArgs{ID: "walk"},
		Tapes:       []string{"11"},
	})
	require.NoError(t, err)
	require.Len(t, resp.Results, 1)

	res := resp.Results[0]
	assert.Equal(t, domain.StatusHalted, res.Status)
	require.Len(t, res.Records, 2, "terse output keeps START and the last record")
	assert.Equal(t, "START", res.Records[0].Label)
	assert.Equal(t, "STEP4", res.Records[1].Label)

	resp, err = s.handleRun(context.Background(), mcp.CallToolRequest{}, RunArgs{
		MachineArgs: MachineArgs{ID: "walk"},
		Tapes:       []string{"11"},
		Verbose:     true,
	})
	require.NoError(t, err)
	assert.Len(t, resp.Results[0].Records, 5)
}

func TestHandleRun_Errors(t *testing.T) {
	s := newTestServer()

	_, err := s.handleRun(context.Background(), mcp.CallToolRequest{}, RunArgs{
		MachineArgs: MachineArgs{ID: "nope"},
		Tapes:       []string{"1"},
	})
	assert.ErrorIs(t, err, domain.ErrMachineNotFound)

	_, err = s.handleRun(context.Background(), mcp.CallToolRequest{}, RunArgs{
		MachineArgs: MachineArgs{Rules: "1 1 1 r 1\n1 1 1 l 1"},
		Tapes:       []string{"1"},
	})
	assert.ErrorIs(t, err, domain.ErrAmbiguousTransition)
}

func TestHandleValidate(t *testing.T) {
	s := newTestServer()

	resp, err := s.handleValidate(context.Background(), mcp.CallToolRequest{}, ValidateArgs{
		MachineArgs: MachineArgs{Rules: "1 1 1 r 2\n5 1 1 r 5"},
		Strict:      true,
	})
	require.NoError(t, err)
	assert.False(t, resp.Valid)
	assert.Equal(t, []string{"5"}, resp.Report.Unreachable)
}

func TestHandleGraph(t *testing.T) {
	s := newTestServer()

	req := mcp.CallToolRequest{}
	req.Params.Name = "graph_machine"
	req.Params.Arguments = map[string]any{"id": "walk", "input": "1"}

	res, err := s.handleGraph(context.Background(), req)
	require.NoError(t, err)
	require.False(t, res.IsError)
	require.NotEmpty(t, res.Content)

	text, ok := res.Content[0].(mcp.TextContent)
	require.True(t, ok)
	assert.Contains(t, text.Text, "graph LR")
	assert.Contains(t, text.Text, "class s_2 current")

	req.Params.Arguments = map[string]any{"id": "nope"}
	res, err = s.handleGraph(context.Background(), req)
	require.NoError(t, err)
	assert.True(t, res.IsError)
}

func TestHandleList(t *testing.T) {
	s := newTestServer()
	resp, err := s.handleList(context.Background(), mcp.CallToolRequest{}, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"walk"}, resp.Machines)
}
