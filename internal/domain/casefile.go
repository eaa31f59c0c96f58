package domain

import "time"

// CaseFile is a declarative test module
type CaseFile struct {
	Description string `yaml:"description"`
	// Suite is nil when the file has no suite key; such a module exposes no suite.
	Suite *[]CaseSpec `yaml:"suite"`
}

// CaseSpec describes one command case
type CaseSpec struct {
	Name    string            `yaml:"name"`
	Command string            `yaml:"command"` // defaults to the configured target
	Args    []string          `yaml:"args"`
	Stdin   string            `yaml:"stdin"`
	Env     map[string]string `yaml:"env"`
	Dir     string            `yaml:"dir"` // relative to the module directory
	Timeout time.Duration     `yaml:"timeout"`
	Skip    string            `yaml:"skip"`

	ExitCode       int      `yaml:"exit_code"`
	Stdout         *string  `yaml:"stdout"`
	StdoutFile     string   `yaml:"stdout_file"`
	StdoutContains []string `yaml:"stdout_contains"`
	StderrContains []string `yaml:"stderr_contains"`
	StripANSI      bool     `yaml:"strip_ansi"`
}
