// Package checkpoint decorates errors with the file and line of the caller
// so that a failure deep inside the volume driver still tells where it
// passed through. Every error attached to a checkpoint stays visible to
// errors.Is and errors.As.
package checkpoint

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"runtime"
)

// From wraps err into a new checkpoint carrying caller information.
// It returns nil if err is nil.
func From(err error) error {
	// io.EOF and io.ErrUnexpectedEOF must stay comparable by ==.
	// https://github.com/golang/go/issues/39155
	if err == io.EOF || err == io.ErrUnexpectedEOF {
		return err
	}
	if err == nil {
		return nil
	}

	_, file, line, ok := runtime.Caller(1)
	return &checkpoint{
		err:      nil,
		prev:     err,
		callerOk: ok,
		file:     filepath.Base(file),
		line:     line,
	}
}

// Wrap adds a checkpoint on top of prev and attaches err as an additional
// marker error. It returns nil if prev is nil, so call sites can wrap
// unconditionally:
//  return checkpoint.Wrap(doSomething(), ErrSomethingFailed)
// Both prev and err can be matched with errors.Is afterwards.
func Wrap(prev, err error) error {
	if prev == io.EOF {
		return io.EOF
	}
	if prev == nil {
		return nil
	}

	_, file, line, ok := runtime.Caller(1)
	return &checkpoint{
		err:      err,
		prev:     prev,
		callerOk: ok,
		file:     filepath.Base(file),
		line:     line,
	}
}

type checkpoint struct {
	err  error
	prev error

	callerOk bool
	file     string
	line     int
}

func (e *checkpoint) Error() string {
	location := "unknown"
	if e.callerOk {
		location = fmt.Sprintf("%s:%d", e.file, e.line)
	}

	if e.err == nil {
		return fmt.Sprintf("%s: %v", location, e.prev)
	}
	return fmt.Sprintf("%s: %v: %v", location, e.err, e.prev)
}

func (e *checkpoint) Unwrap() error {
	return e.prev
}

func (e *checkpoint) Is(target error) bool {
	return e.err != nil && errors.Is(e.err, target)
}

func (e *checkpoint) As(target interface{}) bool {
	return e.err != nil && errors.As(e.err, target)
}
