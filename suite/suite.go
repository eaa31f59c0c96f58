// Package suite defines the contract between the regress harness and the
// test modules it discovers.
//
// A module is any value with a name. Modules that can build a test suite
// implement SuiteBuilder; the harness skips the others with a warning.
// Go modules register themselves in the Default registry, usually from an
// init function, the same way database drivers do:
//
//	func init() {
//		suite.RegisterFunc("test_tokenizer", func() *suite.Suite {
//			return suite.New("test_tokenizer",
//				suite.NewCase("empty input", testEmptyInput),
//			)
//		})
//	}
package suite

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
)

// Env is what a case receives when it runs.
type Env struct {
	Context context.Context

	// Module is the name of the module the case belongs to.
	Module string
	// Workspace is the temporary directory shared by the run.
	Workspace string
	// DevDir is searched for commands before PATH.
	DevDir string
	// Environ is the process environment with DevDir first on PATH.
	Environ []string

	Log logrus.FieldLogger
}

// Case is a single runnable test.
type Case interface {
	Name() string
	Run(env *Env) error
}

type funcCase struct {
	name string
	fn   func(env *Env) error
}

// NewCase wraps a function as a Case.
func NewCase(name string, fn func(env *Env) error) Case {
	return &funcCase{name: name, fn: fn}
}

func (c *funcCase) Name() string { return c.name }
func (c *funcCase) Run(env *Env) error { return c.fn(env) }

// entry is either a case or a nested suite, kept in insertion order.
type entry struct {
	c Case
	s *Suite
}

// Suite is an ordered collection of cases and nested suites.
type Suite struct {
	name    string
	entries []entry
}

// New creates a suite holding the given cases.
func New(name string, cases ...Case) *Suite {
	s := &Suite{name: name}
	return s.Add(cases...)
}

// Name returns the suite name. The aggregate suite built by the harness is unnamed.
func (s *Suite) Name() string {
	return s.name
}

// Add appends cases to the suite.
func (s *Suite) Add(cases ...Case) *Suite {
	for _, c := range cases {
		if c != nil {
			s.entries = append(s.entries, entry{c: c})
		}
	}
	return s
}

// AddSuite appends nested suites.
func (s *Suite) AddSuite(children ...*Suite) *Suite {
	for _, child := range children {
		if child != nil {
			s.entries = append(s.entries, entry{s: child})
		}
	}
	return s
}

// CountCases returns the number of cases in the suite and all nested suites.
func (s *Suite) CountCases() int {
	n := 0
	s.Walk(func(string, Case) { n++ })
	return n
}

// Walk visits every case depth-first in insertion order. owner is the name
// of the innermost named suite containing the case.
func (s *Suite) Walk(fn func(owner string, c Case)) {
	s.walk("", fn)
}

func (s *Suite) walk(owner string, fn func(string, Case)) {
	if s.name != "" {
		owner = s.name
	}
	for _, e := range s.entries {
		if e.c != nil {
			fn(owner, e.c)
			continue
		}
		e.s.walk(owner, fn)
	}
}

// FailureError marks an assertion failure, as opposed to an error raised
// while running the case.
type FailureError struct {
	Msg string
}

func (e *FailureError) Error() string { return e.Msg }

// Failf returns a FailureError.
func Failf(format string, args ...any) error {
	return &FailureError{Msg: fmt.Sprintf(format, args...)}
}

// SkipError marks a case that chose not to run.
type SkipError struct {
	Reason string
}

func (e *SkipError) Error() string { return "skipped: " + e.Reason }

// Skipf returns a SkipError.
func Skipf(format string, args ...any) error {
	return &SkipError{Reason: fmt.Sprintf(format, args...)}
}

// IsFailure reports whether err is, or wraps, a FailureError.
func IsFailure(err error) bool {
	var fe *FailureError
	return errors.As(err, &fe)
}

// IsSkip reports whether err is, or wraps, a SkipError.
func IsSkip(err error) bool {
	var se *SkipError
	return errors.As(err, &se)
}
