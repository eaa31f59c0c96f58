package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	// Discovery settings
	TestDir string
	Prefix  string
	Suffix  string
	Marker  string

	// Setup settings
	Target       string
	VersionFlag  string
	WorkspaceDir string

	// Output settings
	OutputJSONFile string
	OutputJSONDir  string

	// Verbosity is DefaultVerbosity adjusted by -v and -q
	Verbosity int

	// Command flags
	Flags Flags
}

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

// New creates a new Config with defaults
func New() *Config {
	return &Config{
		TestDir:        DefaultTestDir,
		Prefix:         DefaultPrefix,
		Suffix:         DefaultSuffix,
		Marker:         DefaultMarker,
		VersionFlag:    DefaultVersionFlag,
		WorkspaceDir:   DefaultWorkspaceDir,
		OutputJSONFile: DefaultOutputJSONFile,
		OutputJSONDir:  DefaultOutputJSONDir,
		Verbosity:      DefaultVerbosity,
	}
}

// Load creates a config and applies flags
func Load(flags Flags) (*Config, error) {
	cfg := New()
	if err := cfg.Apply(flags); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Apply stores flags on the config and resolves the final settings.
// Precedence is flags, then the environment (including <test-dir>/.env), then defaults.
func (c *Config) Apply(flags Flags) error {
	c.Flags = flags
	if flags.TestDir != "" {
		c.TestDir = flags.TestDir
	}

	if err := c.loadEnv(); err != nil {
		return err
	}

	if flags.Target != "" {
		c.Target = flags.Target
	}
	if flags.Workspace != "" {
		c.WorkspaceDir = flags.Workspace
	}
	c.Verbosity = DefaultVerbosity + flags.Verbose - flags.Quiet
	return c.ValidateWorkspace()
}

// ErrUnsafeWorkspace is returned when teardown of the workspace would remove
// the test directory or anything above it.
var ErrUnsafeWorkspace = errors.New("unsafe workspace")

// ValidateWorkspace checks that the workspace lies strictly inside or beside
// the test directory, never on or above it.
func (c *Config) ValidateWorkspace() error {
	ws := filepath.Clean(c.GetWorkspaceDir())
	testDir := filepath.Clean(c.GetTestDir())

	rel, err := filepath.Rel(ws, testDir)
	if err != nil {
		return nil
	}
	if rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))) {
		return fmt.Errorf("%w: %s contains the test directory %s", ErrUnsafeWorkspace, ws, testDir)
	}
	return nil
}

// loadEnv reads <test-dir>/.env if present and applies REGRESS_* overrides.
// Variables already set in the process environment win over the file.
func (c *Config) loadEnv() error {
	envPath := filepath.Join(c.TestDir, ".env")
	if err := godotenv.Load(envPath); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load %s: %w", envPath, err)
	}

	if v := os.Getenv(EnvTarget); v != "" {
		c.Target = v
	}
	if v := os.Getenv(EnvWorkspace); v != "" {
		c.WorkspaceDir = v
	}
	if v := os.Getenv(EnvSuffix); v != "" {
		c.Suffix = v
	}
	if v := os.Getenv(EnvMarker); v != "" {
		c.Marker = v
	}
	return nil
}

// GetTestDir returns the absolute test directory
func (c *Config) GetTestDir() string {
	if abs, err := filepath.Abs(c.TestDir); err == nil {
		return abs
	}
	return c.TestDir
}

// GetDevDir returns the development directory: the parent of the test dir.
// Commands found there shadow installed copies on PATH.
func (c *Config) GetDevDir() string {
	return filepath.Dir(c.GetTestDir())
}

// GetWorkspaceDir returns the workspace path, relative paths resolved against the test dir
func (c *Config) GetWorkspaceDir() string {
	if filepath.IsAbs(c.WorkspaceDir) {
		return c.WorkspaceDir
	}
	return filepath.Join(c.GetTestDir(), c.WorkspaceDir)
}

// GetOutputPath returns the full path to the last-run record.
// It lives outside the workspace so teardown keeps it.
func (c *Config) GetOutputPath() string {
	return filepath.Join(c.GetTestDir(), c.OutputJSONDir, c.OutputJSONFile)
}
