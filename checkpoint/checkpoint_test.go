package checkpoint

import (
	"errors"
	"io"
	"strings"
	"testing"
)

var errCause = errors.New("the cause")
var errMarker = errors.New("the marker")

func TestFrom(t *testing.T) {
	if got := From(nil); got != nil {
		t.Errorf("From(nil) = %v, want nil", got)
	}
	if got := From(io.EOF); got != io.EOF {
		t.Errorf("From(io.EOF) = %v, want the untouched io.EOF", got)
	}
	if got := From(io.ErrUnexpectedEOF); got != io.ErrUnexpectedEOF {
		t.Errorf("From(io.ErrUnexpectedEOF) = %v, want the untouched error", got)
	}

	got := From(errCause)
	if !errors.Is(got, errCause) {
		t.Errorf("From() lost the wrapped error: %v", got)
	}
	if !strings.Contains(got.Error(), "checkpoint_test.go:") {
		t.Errorf("From().Error() = %q, want the caller location", got.Error())
	}
	if !strings.Contains(got.Error(), errCause.Error()) {
		t.Errorf("From().Error() = %q, want the cause message", got.Error())
	}
}

func TestWrap(t *testing.T) {
	if got := Wrap(nil, errMarker); got != nil {
		t.Errorf("Wrap(nil) = %v, want nil", got)
	}
	if got := Wrap(io.EOF, errMarker); got != io.EOF {
		t.Errorf("Wrap(io.EOF) = %v, want the untouched io.EOF", got)
	}

	got := Wrap(errCause, errMarker)
	if !errors.Is(got, errCause) {
		t.Errorf("Wrap() lost the cause: %v", got)
	}
	if !errors.Is(got, errMarker) {
		t.Errorf("Wrap() lost the marker: %v", got)
	}
	if !strings.Contains(got.Error(), errMarker.Error()) {
		t.Errorf("Wrap().Error() = %q, want the marker message", got.Error())
	}
}

func TestNestedCheckpoints(t *testing.T) {
	inner := Wrap(errCause, errMarker)
	outer := From(inner)

	if !errors.Is(outer, errCause) {
		t.Errorf("nested checkpoint lost the cause: %v", outer)
	}
	if !errors.Is(outer, errMarker) {
		t.Errorf("nested checkpoint lost the marker: %v", outer)
	}
}

type fancyError struct {
	code int
}

func (e *fancyError) Error() string {
	return "fancy"
}

func TestAs(t *testing.T) {
	wrapped := Wrap(errCause, &fancyError{code: 7})

	fancy := &fancyError{}
	if !errors.As(wrapped, &fancy) {
		t.Fatalf("errors.As() did not find the marker type")
	}
	if fancy.code != 7 {
		t.Errorf("errors.As() target code = %d, want 7", fancy.code)
	}
}
