package cli

import (
	"context"
	"os"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignalContext_CapturesSignal(t *testing.T) {
	sc := NewSignalContext(context.Background())
	defer sc.Cancel()

	proc, err := os.FindProcess(os.Getpid())
	require.NoError(t, err)
	require.NoError(t, proc.Signal(syscall.SIGTERM))

	select {
	case <-sc.Done():
	case <-time.After(5 * time.Second):
		t.Fatal("context not canceled by SIGTERM")
	}
	assert.Equal(t, syscall.SIGTERM, sc.Signal())
}

func TestSignalContext_PlainCancel(t *testing.T) {
	sc := NewSignalContext(context.Background())
	sc.Cancel()

	<-sc.Done()
	assert.Nil(t, sc.Signal())
}
