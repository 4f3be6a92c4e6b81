package commands

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"godo/internal/exitcode"
	"godo/internal/model"
	"godo/internal/store"
)

// ErrRefRequired is returned when a command needs a task number and none
// was given.
var ErrRefRequired = errors.New("task reference required")

// parseBucket maps a bucket flag value to a status.
func parseBucket(s string) (model.Status, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "inbox":
		return model.StatusInbox, nil
	case "today":
		return model.StatusToday, nil
	case "done":
		return model.StatusDone, nil
	}
	return "", fmt.Errorf("unknown bucket: %s", s)
}

// parseRef parses the single positional 1-based task number.
func parseRef(args []string) (int, error) {
	if len(args) == 0 {
		return 0, ErrRefRequired
	}
	if len(args) > 1 {
		return 0, fmt.Errorf("expected one task number, got %d arguments", len(args))
	}
	n, err := strconv.Atoi(args[0])
	if err != nil || n < 1 {
		return 0, fmt.Errorf("invalid task number: %s", args[0])
	}
	return n, nil
}

// fail reports a store or storage error and returns the matching exit code.
func fail(errOut io.Writer, err error) int {
	fmt.Fprintf(errOut, "error: %v\n", err)
	switch {
	case errors.Is(err, store.ErrValidation),
		errors.Is(err, store.ErrNotFound),
		errors.Is(err, store.ErrTransition):
		return exitcode.UserError
	}
	return exitcode.StorageError
}
