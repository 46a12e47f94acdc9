package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	apperrors "github.com/laserfinity/laserfinity/pkg/errors"
)

// Process exit codes.
const (
	ExitOK       = 0
	ExitError    = 1
	ExitCanceled = 130 // shell convention for SIGINT
)

// HandleError reports err the way the command line expects and returns the
// process exit code. Missing drawer dimensions print the message and usage
// to stdout; other errors go to stderr.
func (c *CLI) HandleError(cmd *cobra.Command, err error) int {
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, context.Canceled):
		return ExitCanceled
	case apperrors.Is(err, apperrors.ErrCodeMissingArgument):
		fmt.Fprintln(c.Stdout, apperrors.UserMessage(err))
		cmd.SetOut(c.Stdout)
		_ = cmd.Usage()
		return ExitError
	}

	msg := err.Error()
	if apperrors.IsInputError(err) {
		msg = apperrors.UserMessage(err)
	}
	fmt.Fprintln(c.Stderr, styleIconError.Render(iconError)+" "+msg)
	return ExitError
}
