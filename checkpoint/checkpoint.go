// Package checkpoint decorates errors with the file and line they passed through,
// which gives a short trace without a full stacktrace.
// Both the decorating error and the wrapped cause stay reachable by errors.Is and errors.As.
package checkpoint

import (
	"errors"
	"fmt"
	"path/filepath"
	"runtime"
	"strings"
)

// From marks err with the location of the caller.
// It returns nil if err == nil.
func From(err error) error {
	if err == nil {
		return nil
	}

	return &checkpoint{
		err:   err,
		frame: caller(),
	}
}

// Wrap marks cause with the location of the caller and describes it by err.
// Typically err is one of the predefined sentinel errors of a package:
//
//	var ErrIO = errors.New("image i/o failed")
//
//	func sync() error {
//		err := unix.Msync(data, unix.MS_SYNC)
//		return checkpoint.Wrap(err, ErrIO)
//	}
//
// The result matches errors.Is for ErrIO as well as for the unix error.
// Returns nil if cause == nil.
func Wrap(cause, err error) error {
	if cause == nil {
		return nil
	}

	return &checkpoint{
		err:   err,
		cause: cause,
		frame: caller(),
	}
}

type frame struct {
	ok   bool
	file string
	line int
}

func caller() frame {
	// Skip caller() and the exported constructor.
	_, file, line, ok := runtime.Caller(2)
	return frame{
		ok:   ok,
		file: filepath.Base(file),
		line: line,
	}
}

func (f frame) String() string {
	if !f.ok {
		return "unknown"
	}
	return fmt.Sprintf("%s:%d", f.file, f.line)
}

type checkpoint struct {
	err   error
	cause error
	frame frame
}

// Location returns "file:line" of the place err was checkpointed at
// or "" if err is no checkpoint.
func Location(err error) string {
	var c *checkpoint
	if !errors.As(err, &c) {
		return ""
	}
	return c.frame.String()
}

func (c *checkpoint) Error() string {
	msg := fmt.Sprintf("%s: %v", c.frame, c.err)
	if c.cause == nil {
		return msg
	}

	causeMsg := c.cause.Error()
	if _, ok := c.cause.(*checkpoint); !ok {
		causeMsg = "unknown: " + causeMsg
	}
	return msg + "\n\t" + strings.ReplaceAll(causeMsg, "\n", "\n\t")
}

func (c *checkpoint) Unwrap() error {
	if c.cause != nil {
		return c.cause
	}
	return c.err
}

func (c *checkpoint) Is(target error) bool {
	return errors.Is(c.err, target)
}

func (c *checkpoint) As(target interface{}) bool {
	return errors.As(c.err, target)
}
