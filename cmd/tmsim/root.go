package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/aretw0/tmsim/internal/cli"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "tmsim",
	Short: "tmsim is a single-tape deterministic Turing machine simulator",
	Long: `tmsim runs Turing machines written as plain instruction listings
("state read write l|r next", one rule per line) over one or more input tapes
and prints every configuration with a caret under the head.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and maps errors to
// process exit codes.
func Execute() {
	os.Exit(execute(context.Background(), os.Stderr))
}

// execute runs the root command and returns the process exit code. The
// signal context is released before the caller exits.
func execute(parent context.Context, stderr io.Writer) int {
	sigCtx := cli.NewSignalContext(parent)
	defer sigCtx.Cancel()

	err := rootCmd.ExecuteContext(sigCtx)
	if sig := sigCtx.Signal(); sig != nil {
		fmt.Fprintf(stderr, "interrupted by %s\n", sig)
	}
	return exitCode(err, stderr)
}

func exitCode(err error, stderr io.Writer) int {
	if err == nil {
		return 0
	}

	var exitErr *cli.ExitError
	if errors.As(err, &exitErr) {
		if exitErr.Msg != "" {
			fmt.Fprintln(stderr, exitErr.Msg)
		}
		return exitErr.Code
	}
	fmt.Fprintf(stderr, "Error: %v\n", err)
	return cli.ExitLoadError
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("dir", "", "Directory holding a machine library (YAML, .tm or Loam Markdown)")
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging on stderr")
}
