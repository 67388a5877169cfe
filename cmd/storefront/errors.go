package main

import (
	"errors"
	"fmt"
	"io"
)

// shownError marks a failure that a view already explained to the user, so
// main only sets the exit status.
type shownError struct{ err error }

func (e *shownError) Error() string { return e.err.Error() }
func (e *shownError) Unwrap() error { return e.err }

func shown(err error) error {
	if err == nil {
		return nil
	}
	return &shownError{err: err}
}

func reportError(w io.Writer, err error) {
	var se *shownError
	if errors.As(err, &se) {
		return
	}
	fmt.Fprintln(w, "Error:", err)
}

func render(w io.Writer, view string) {
	fmt.Fprintln(w, view)
}
