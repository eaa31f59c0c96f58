// Package harness is the entry point for programs that register Go test
// modules with the suite package and want the regress command line.
//
//	func main() {
//		suite.RegisterFunc("test_cache", cacheSuite)
//		os.Exit(harness.Main())
//	}
package harness

import (
	"io"
	"os"

	"regress/internal/cli/commands"
	"regress/suite"
)

// Main runs the regress command line over os.Args with the default registry.
func Main() int {
	return Run(os.Args[1:], suite.Default, "dev")
}

// Run executes the command line in args against registry and returns the
// exit code: 0 on success, 1 when tests failed, 2 on usage or runtime errors.
func Run(args []string, registry *suite.Registry, version string) int {
	return RunWithOutput(args, os.Stdout, os.Stderr, registry, version)
}

// RunWithOutput is Run with explicit output streams.
func RunWithOutput(args []string, stdout, stderr io.Writer, registry *suite.Registry, version string) int {
	return commands.Main(args, stdout, stderr, registry, version)
}
