package cli

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aretw0/tmsim/internal/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	dir := t.TempDir()
	testutils.WriteFiles(t, dir, map[string]string{
		"clean.tm":  walkListing,
		"island.tm": walkListing + "7 1 1 r 7\n",
	})

	var out bytes.Buffer
	err := Validate(context.Background(), RunOptions{MachineFile: filepath.Join(dir, "clean.tm"), Stdout: &out}, true)
	require.NoError(t, err)
	assert.Equal(t, "clean: 2 states, 2 transitions, alphabet \"1_\"\n", out.String())

	out.Reset()
	err = Validate(context.Background(), RunOptions{MachineFile: filepath.Join(dir, "island.tm"), Stdout: &out}, false)
	require.NoError(t, err)
	assert.Contains(t, out.String(), `warning: state "7" is unreachable`)

	err = Validate(context.Background(), RunOptions{MachineFile: filepath.Join(dir, "island.tm"), Stdout: &out}, true)
	assert.Equal(t, ExitLoadError, exitCode(err))
}

func TestGraph(t *testing.T) {
	instr, _ := writePair(t, "")

	var out bytes.Buffer
	input := "1"
	require.NoError(t, Graph(context.Background(), RunOptions{Instructions: instr, Stdout: &out}, &input))
	assert.True(t, strings.HasPrefix(out.String(), "graph LR"))
	assert.Contains(t, out.String(), "class s_2 current")
}

func TestDescribe_Raw(t *testing.T) {
	instr, _ := writePair(t, "")

	var out bytes.Buffer
	require.NoError(t, Describe(context.Background(), RunOptions{Instructions: instr, Stdout: &out}, true))
	assert.Contains(t, out.String(), "# walk")
}
