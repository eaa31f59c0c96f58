package cli

import "regress/internal/config"

// Flags holds command-line flags
type Flags struct {
	Verbose      int
	Quiet        int
	Exclude      []string
	Clean        bool
	NoClean      bool
	TestDir      string
	Filter       string
	Target       string
	Workspace    string
	ViewFailures bool
	Cases        bool
	Summary      bool
}

// ToConfigFlags converts CLI flags to config flags
func (f *Flags) ToConfigFlags() config.Flags {
	return config.Flags{
		Verbose:      f.Verbose,
		Quiet:        f.Quiet,
		Exclude:      append([]string(nil), f.Exclude...),
		Clean:        f.Clean,
		NoClean:      f.NoClean,
		TestDir:      f.TestDir,
		Filter:       f.Filter,
		Target:       f.Target,
		Workspace:    f.Workspace,
		ViewFailures: f.ViewFailures,
		Cases:        f.Cases,
		Summary:      f.Summary,
	}
}
