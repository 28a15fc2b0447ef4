package main

import (
	"errors"
	"os"

	"curationsla/cmd"
	"curationsla/internal/clierr"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(exitCode(err))
	}
}

// exitCode maps error classes to distinct exit codes so schedulers can tell
// a missing path apart from a corrupt index or a failed write.
func exitCode(err error) int {
	switch {
	case errors.Is(err, clierr.ErrNotFound):
		return 2
	case errors.Is(err, clierr.ErrParse):
		return 3
	case errors.Is(err, clierr.ErrStore):
		return 4
	default:
		return 1
	}
}
