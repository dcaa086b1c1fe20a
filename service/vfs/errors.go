package vfs

import (
	"errors"
	"fmt"
)

// File store error kinds; match with errors.Is.
var (
	ErrNotFound          = errors.New("No such file or directory")
	ErrIsDirectory       = errors.New("Is a directory")
	ErrProtectedFile     = errors.New("File is protected")
	ErrNoSuchParent      = errors.New("No such file or directory")
	ErrAlreadyExists     = errors.New("File exists")
	ErrDirectoryNotEmpty = errors.New("Directory not empty")
	ErrTimeout           = errors.New("Operation timed out")
)

// Error describes a failed file store operation on a path
type Error struct {
	Op   string
	Path string
	Err  error
}

// Error returns message in the style of the matching shell utility
func (e *Error) Error() string {
	reason := e.Err.Error()
	switch e.Op {
	case "readFile":
		return fmt.Sprintf("cat: %s: %s", e.Path, reason)
	case "writeFile":
		if errors.Is(e.Err, ErrProtectedFile) {
			return fmt.Sprintf("cannot overwrite '%s': %s", e.Path, reason)
		}
		return fmt.Sprintf("cannot create %s: %s", e.Path, reason)
	case "deleteFile":
		return fmt.Sprintf("rm: cannot remove '%s': %s", e.Path, reason)
	case "readdir":
		return fmt.Sprintf("ls: cannot access '%s': %s", e.Path, reason)
	case "mkdir":
		return fmt.Sprintf("mkdir: cannot create directory '%s': %s", e.Path, reason)
	case "rmdir":
		return fmt.Sprintf("rmdir: failed to remove '%s': %s", e.Path, reason)
	case "stat":
		return fmt.Sprintf("stat: cannot stat '%s': %s", e.Path, reason)
	case "touch":
		return fmt.Sprintf("touch: cannot touch '%s': %s", e.Path, reason)
	}
	return fmt.Sprintf("%s '%s': %s", e.Op, e.Path, reason)
}

// Unwrap returns the error kind
func (e *Error) Unwrap() error {
	return e.Err
}

func newError(op, path string, err error) error {
	return &Error{Op: op, Path: path, Err: err}
}
