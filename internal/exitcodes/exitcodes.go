// Package exitcodes defines the exit codes used by regress.
package exitcodes

const (
	Success     = 0 // help, or every case passed
	TestFailure = 1 // one or more cases failed or errored
	RuntimeErr  = 2 // bad arguments, or the run could not be carried out
)
