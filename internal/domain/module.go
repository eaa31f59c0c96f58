package domain

// ModuleKind tells where a module was loaded from
type ModuleKind string

const (
	KindFile       ModuleKind = "file"       // <test-dir>/test_x.yaml
	KindPackage    ModuleKind = "package"    // <test-dir>/test_x/<marker>
	KindRegistered ModuleKind = "registered" // Go module in the registry
)

// ModuleRef describes a resolved test module
type ModuleRef struct {
	Name string
	Kind ModuleKind
	Path string // case file path; empty for registered modules
	Dir  string // directory case commands run in
}

// ModuleInfo is what the list command shows for a module
type ModuleInfo struct {
	ModuleRef
	HasSuite bool
	Cases    []string
}
