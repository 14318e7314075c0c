// Package testkit holds the helpers the unit and integration tests share
package testkit

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
)

// serial guards tests that replace package level seams
var serial sync.Mutex

// Swap sets *target to v until the test ends
func Swap[T any](t *testing.T, target *T, v T) {
	t.Helper()
	prev := *target
	*target = v
	t.Cleanup(func() { *target = prev })
}

// Serial holds a process wide lock until the test ends.
// Tests that Swap a seam another parallel test reads call it first.
func Serial(t *testing.T) {
	t.Helper()
	serial.Lock()
	t.Cleanup(serial.Unlock)
}

// MustPanic fails the test unless fn panics
func MustPanic(t *testing.T, fn func()) {
	t.Helper()
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic")
		}
	}()
	fn()
}

// MustNotPanic fails the test if fn panics
func MustNotPanic(t *testing.T, fn func()) {
	t.Helper()
	defer func() {
		if r := recover(); r != nil {
			t.Fatalf("unexpected panic: %v", r)
		}
	}()
	fn()
}

// MustContain fails unless body contains want. Long bodies such as
// rendered OpenAPI documents are written to a temp file instead of the log.
func MustContain(t *testing.T, body, want string) {
	t.Helper()
	if strings.Contains(body, want) {
		return
	}
	if len(body) <= 512 {
		t.Fatalf("missing %q in %q", want, body)
	}
	dump := filepath.Join(t.TempDir(), "body.txt")
	_ = os.WriteFile(dump, []byte(body), 0o600)
	t.Fatalf("missing %q; body written to %s", want, dump)
}
