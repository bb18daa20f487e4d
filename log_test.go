package fatmod

import (
	"bytes"
	"testing"
)

func TestNewLogger(t *testing.T) {
	output := bytes.Buffer{}
	log := NewLogger(&output)

	log.Warn("something looks off")
	log.Error("something failed")

	want := "WARNING: something looks off\nsomething failed\n"
	if output.String() != want {
		t.Errorf("logger output = %q, want %q", output.String(), want)
	}
}
