package cli

import (
	"errors"
	"strings"
	"testing"
)

func TestFlags_ToConfigFlags(t *testing.T) {
	f := &Flags{
		Verbose: 2,
		Quiet:   1,
		Exclude: []string{"test_slow"},
		NoClean: true,
		TestDir: "suite",
		Filter:  "test_io*",
		Target:  "preprocess",
		Cases:   true,
		Summary: true,
	}

	got := f.ToConfigFlags()
	if got.Verbose != 2 || got.Quiet != 1 {
		t.Errorf("verbosity flags not copied: %+v", got)
	}
	if !got.NoClean || got.Clean {
		t.Errorf("clean flags not copied: %+v", got)
	}
	if got.TestDir != "suite" || got.Filter != "test_io*" || got.Target != "preprocess" {
		t.Errorf("string flags not copied: %+v", got)
	}
	if !got.Cases || !got.Summary {
		t.Errorf("subcommand flags not copied: %+v", got)
	}

	// The exclude list is copied, not shared.
	f.Exclude[0] = "changed"
	if got.Exclude[0] != "test_slow" {
		t.Errorf("exclude list shares storage with the CLI flags")
	}
}

func TestUsageError_Message(t *testing.T) {
	err := NewUsageError(errors.New("unknown flag: --bogus"), "Usage:\n  regress [flags]\n")

	if !errors.Is(err, err.Err) {
		t.Errorf("UsageError should unwrap to its cause")
	}
	msg := err.Message("regress")
	if !strings.HasPrefix(msg, "regress: ERROR: unknown flag: --bogus\n") {
		t.Errorf("unexpected message %q", msg)
	}
	if !strings.HasSuffix(msg, "regress [flags]\n") {
		t.Errorf("usage missing from %q", msg)
	}
}
