package cli

import (
	"context"
	"io"
)

// Execute runs the jsonview CLI with args, writing command output to
// stdout and logs to stderr. It is the entry point of cmd/jsonview.
//
// Logging:
//   - Default: the [log] level from the config file, info unless set
//   - With --verbose (-v): debug level
//
// Example:
//
//	func main() {
//	    if err := cli.Execute(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
//	        os.Exit(1)
//	    }
//	}
func Execute(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	c := New(stderr, LogInfo)
	root := c.RootCommand()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)
	return root.ExecuteContext(ctx)
}
