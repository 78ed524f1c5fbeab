package cli

import (
	"context"
	"errors"
	"os"

	bmerrors "github.com/matzehuels/bracketmaker/pkg/errors"
)

// Execute runs the bracketmaker CLI with args and returns the first error.
// Logging goes to stderr at info level, or debug with --verbose (-v).
//
//	func main() {
//	    if err := cli.Execute(ctx, os.Args[1:]); err != nil {
//	        fmt.Fprintln(os.Stderr, cli.ErrorMessage(err))
//	        os.Exit(cli.ExitCode(err))
//	    }
//	}
func Execute(ctx context.Context, args []string) error {
	root := New(os.Stderr, LogInfo).RootCommand()
	root.SetArgs(args)
	return root.ExecuteContext(ctx)
}

// ErrorMessage formats err for the terminal. Errors carrying a code are
// prefixed with it so scripts can match on the code.
func ErrorMessage(err error) string {
	if code := bmerrors.GetCode(err); code != "" {
		return "error [" + string(code) + "]: " + bmerrors.UserMessage(err)
	}
	if classified := bmerrors.Classify(err); bmerrors.GetCode(classified) != bmerrors.ErrCodeInternal {
		return ErrorMessage(classified)
	}
	return "error: " + err.Error()
}

// ExitCode maps err to a process exit status: 130 after an interrupt, 2 for
// invalid input and 1 for anything else.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, context.Canceled):
		return 130 // Standard shell convention for SIGINT
	}
	switch bmerrors.GetCode(bmerrors.Classify(err)) {
	case bmerrors.ErrCodeInvalidCapacity, bmerrors.ErrCodeInvalidFormat, bmerrors.ErrCodeInvalidRoster, bmerrors.ErrCodeInvalidConfig:
		return 2
	default:
		return 1
	}
}
