package file_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/aretw0/tmsim/internal/compiler"
	"github.com/aretw0/tmsim/internal/testutils"
	"github.com/aretw0/tmsim/pkg/adapters/file"
	"github.com/aretw0/tmsim/pkg/domain"
	contract "github.com/aretw0/tmsim/pkg/ports/tests"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var returnHome = []domain.Rule{
	{State: "1", Read: '1', Write: '1', Move: domain.DirectionRight, Next: "1"},
	{State: "1", Read: '_', Write: '_', Move: domain.DirectionLeft, Next: "2"},
}

func TestLoader_Contract(t *testing.T) {
	dir := t.TempDir()
	testutils.WriteFiles(t, dir, map[string]string{
		"listing.tm": "1 1 1 r 1\n1 _ _ l 2\n",
		"block.yaml": `
description: Walks right, then steps back.
rules: |
  1 1 1 r 1
  1 _ _ l 2
`,
		"lines.yml": `
rules:
  - 1 1 1 r 1
  - 1 _ _ l 2
`,
		"maps/return.yaml": `
rules:
  - {state: 1, read: 1, write: 1, move: r, next: 1}
  - {state: 1, read: _, write: _, move: L, next: 2}
`,
		"notes.txt":         "ignored",
		".hidden/skip.yaml": "rules: [\"1 0 0 r 1\"]",
	})

	contract.MachineLoaderContractTest(t, file.NewLoader(dir), map[string][]domain.Rule{
		"listing":     returnHome,
		"block":       returnHome,
		"lines":       returnHome,
		"maps/return": returnHome,
	})
}

func TestLoader_YAMLFields(t *testing.T) {
	dir := t.TempDir()
	testutils.WriteFiles(t, dir, map[string]string{
		"inc.yaml": `
id: binary-increment
description: |
  Adds one to a binary number.
start: scan
blank: b
rules:
  - scan 0 0 r scan
  - scan 1 1 r scan
  - scan b b l carry
  - carry 1 0 l carry
  - carry 0 1 l done
  - carry b 1 l done
tapes:
  - 0011
  - 1
  - ""
`,
	})

	m, err := file.NewLoader(dir).GetMachine(context.Background(), "inc")
	require.NoError(t, err)

	assert.Equal(t, "binary-increment", m.ID, "the document names itself")
	assert.Equal(t, "Adds one to a binary number.", m.Description)
	assert.Equal(t, "scan", m.Start)
	assert.Equal(t, domain.Symbol('b'), m.Blank)
	assert.Len(t, m.Rules, 6)
	assert.Equal(t, []string{"0011", "1", ""}, m.Tapes, "tapes keep leading zeros")
}

func TestLoader_Errors(t *testing.T) {
	dir := t.TempDir()
	testutils.WriteFiles(t, dir, map[string]string{
		"bad-line.yaml":  "rules:\n  - 1 1 1 r\n  - 1 _ _ l 2\n",
		"bad-map.yaml":   "rules:\n  - {state: 1, read: 1, write: 1, move: r, nxt: 2}\n",
		"bad-blank.yaml": "blank: __\nrules: \"1 1 1 r 1\"\n",
		"no-rules.yaml":  "description: nothing\n",
		"broken.yaml":    "rules: [\n",
	})
	loader := file.NewLoader(dir)
	ctx := context.Background()

	_, err := loader.GetMachine(ctx, "bad-line")
	var syn *compiler.SyntaxError
	require.ErrorAs(t, err, &syn)
	assert.Equal(t, 1, syn.Line)

	_, err = loader.GetMachine(ctx, "bad-map")
	assert.ErrorAs(t, err, &syn)

	_, err = loader.GetMachine(ctx, "bad-blank")
	assert.ErrorIs(t, err, domain.ErrInvalidSymbol)

	_, err = loader.GetMachine(ctx, "no-rules")
	assert.ErrorIs(t, err, domain.ErrNoRules)

	_, err = loader.GetMachine(ctx, "broken")
	assert.Error(t, err)

	_, err = loader.GetMachine(ctx, "../outside")
	assert.ErrorIs(t, err, domain.ErrMachineNotFound)
}

func TestLoader_Collision(t *testing.T) {
	dir := t.TempDir()
	testutils.WriteFiles(t, dir, map[string]string{
		"dup.tm":   "1 1 1 r 1",
		"dup.yaml": "rules: \"1 1 1 r 1\"",
	})

	_, err := file.NewLoader(dir).ListMachines(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "collision detected")
}

func TestLoader_TMWithSiblingTapes(t *testing.T) {
	dir := t.TempDir()
	testutils.WriteFiles(t, dir, map[string]string{
		"home.tm":    "1 1 1 r 1\n1 _ _ l 2\n",
		"home.tapes": "1\n\n111\n",
	})

	m, err := file.NewLoader(dir).GetMachine(context.Background(), "home")
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "", "111"}, m.Tapes)
}

func TestLoadPair(t *testing.T) {
	dir := t.TempDir()
	testutils.WriteFiles(t, dir, map[string]string{
		"instructions.txt": "1 1 1 r 1\n1 _ _ l 2\n",
		"tapes.txt":        "  1\n11  \n",
	})

	m, err := file.LoadPair(filepath.Join(dir, "instructions.txt"), filepath.Join(dir, "tapes.txt"))
	require.NoError(t, err)
	assert.Equal(t, "instructions", m.ID)
	assert.Equal(t, []string{"1", "11"}, m.Tapes)
	assert.Equal(t, 2, m.Rules[1].Line)

	m, err = file.LoadPair(filepath.Join(dir, "instructions.txt"), "")
	require.NoError(t, err)
	assert.Empty(t, m.Tapes)

	_, err = file.LoadPair(filepath.Join(dir, "missing.txt"), "")
	assert.Error(t, err)
}

func TestDecodeSpec(t *testing.T) {
	spec, err := file.DecodeSpec(map[string]any{
		"id":    "n",
		"start": 1,
		"blank": "_",
		"rules": []any{"1 1 1 r 1", map[string]any{"state": 1, "read": "_", "write": "_", "move": "l", "next": 2}},
		"tapes": []any{"1", 11},
		"title": "extra keys are tolerated",
	})
	require.NoError(t, err)
	assert.Equal(t, "1", spec.Start)
	assert.Equal(t, []string{"1", "11"}, spec.Tapes)

	m, err := spec.Machine("fallback")
	require.NoError(t, err)
	assert.Equal(t, "n", m.ID)
	require.Len(t, m.Rules, 2)
	assert.Equal(t, returnHome[1].String(), m.Rules[1].String())
}
