package errors

import (
	"errors"
	"io/fs"
	"os"
	"syscall"
)

// reasons maps platform errors to the short reason shown to users.
// Order matters: the first target matched by errors.Is wins.
var reasons = []struct {
	target error
	reason string
}{
	{fs.ErrNotExist, "not found"},
	{fs.ErrPermission, "permission denied"},
	{fs.ErrExist, "already exists"},
	{syscall.EISDIR, "is a directory"},
	{syscall.ENOTDIR, "not a directory"},
	{syscall.EPIPE, "broken pipe"},
	{syscall.ENOSPC, "no space left on device"},
	{syscall.EROFS, "read-only file system"},
	{os.ErrDeadlineExceeded, "timed out"},
	{fs.ErrClosed, "already closed"},
}

// Reason returns a short, human-readable description of an OS-level error.
// Errors not present in the mapping table are reported as "i/o error".
func Reason(err error) string {
	for _, r := range reasons {
		if errors.Is(err, r.target) {
			return r.reason
		}
	}
	return "i/o error"
}

// FromIO wraps an I/O error under code, appending the mapped [Reason] to the
// formatted message. A nil err yields nil.
func FromIO(code Code, err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	e := Wrap(code, err, format, args...)
	e.Message += " (" + Reason(err) + ")"
	return e
}
