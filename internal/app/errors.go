// Where: internal/app/errors.go
// What: Exit helpers shared by command handlers.
// Why: Keep error output and exit codes consistent.
package app

import (
	"fmt"
	"io"
)

func exitWithError(out io.Writer, err error) int {
	fmt.Fprintln(out, err)
	return 1
}

func exitWithSuggestion(out io.Writer, message string, suggestions []string) int {
	fmt.Fprintln(out, message)
	if len(suggestions) > 0 {
		fmt.Fprintln(out, "Try:")
		for _, suggestion := range suggestions {
			fmt.Fprintf(out, "  %s\n", suggestion)
		}
	}
	return 1
}
