// Package terminal wires the audit pipeline into the command-line surface.
package terminal

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

// Exit codes for the CLI process.
const (
	ExitOK            = 0
	ExitConfigFailure = 1
	ExitUploadFailure = 2
)

// ExitError carries the process exit code a failed run maps to.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string { return e.Err.Error() }

func (e *ExitError) Unwrap() error { return e.Err }

// ExitCode maps an Execute error onto the process exit code.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitConfigFailure
}

func configFailure(format string, args ...any) error {
	return &ExitError{Code: ExitConfigFailure, Err: fmt.Errorf(format, args...)}
}

func uploadFailure(format string, args ...any) error {
	return &ExitError{Code: ExitUploadFailure, Err: fmt.Errorf(format, args...)}
}

// CLI represents the command-line interface.
type CLI struct {
	rootCmd *cobra.Command
}

// NewCLI creates a new CLI instance.
func NewCLI() *CLI {
	cli := &CLI{}
	cli.rootCmd = cli.newRootCmd()
	return cli
}

func (cli *CLI) Execute() error {
	return cli.rootCmd.Execute()
}

func (cli *CLI) newRootCmd() *cobra.Command {
	ac := &auditCmd{}
	cmd := &cobra.Command{
		Use:           "backup-atlas",
		Short:         "Audit OCI block/boot volume backup posture and upload reports to Object Storage",
		RunE:          ac.run,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.Flags().BoolVar(&ac.skipUpload, "skip-upload", false,
		"Generate local reports only, do not upload to Object Storage")

	return cmd
}
