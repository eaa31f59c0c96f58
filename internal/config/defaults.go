package config

const (
	// DefaultTestDir is the directory holding the test modules
	DefaultTestDir = "."
	// DefaultPrefix is the name prefix of test modules
	DefaultPrefix = "test_"
	// DefaultSuffix is the extension of case-file modules
	DefaultSuffix = ".yaml"
	// DefaultMarker marks a test_ directory as a module package
	DefaultMarker = "suite.yaml"
	// DefaultVersionFlag is passed to the target by the setup probe
	DefaultVersionFlag = "-V"
	// DefaultWorkspaceDir is the workspace, relative to the test dir
	DefaultWorkspaceDir = "tmp"
	// DefaultOutputJSONFile is the last-run record file name
	DefaultOutputJSONFile = "last-run.json"
	// DefaultOutputJSONDir is the last-run record directory, relative to the test dir
	DefaultOutputJSONDir = ".regress"
	// DefaultVerbosity is the baseline verbosity before -v/-q
	DefaultVerbosity = 2
)

// Environment variables read after loading <test-dir>/.env
const (
	EnvTarget    = "REGRESS_TARGET"
	EnvWorkspace = "REGRESS_WORKSPACE"
	EnvSuffix    = "REGRESS_SUFFIX"
	EnvMarker    = "REGRESS_MARKER"
)
