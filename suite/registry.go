package suite

import (
	"errors"
	"sort"
	"sync"
)

// ErrModuleNotFound is returned when a module name resolves to nothing.
var ErrModuleNotFound = errors.New("module not found")

// Module is a loadable unit of tests.
type Module interface {
	Name() string
}

// SuiteBuilder is implemented by modules that expose a test suite.
type SuiteBuilder interface {
	Module
	Suite() *Suite
}

type plainModule struct {
	name string
}

func (m *plainModule) Name() string { return m.name }

type builderModule struct {
	plainModule
	build func() *Suite
}

func (m *builderModule) Suite() *Suite { return m.build() }

// NewModule returns a module named name. When build is nil the module has no
// suite builder.
func NewModule(name string, build func() *Suite) Module {
	if build == nil {
		return &plainModule{name: name}
	}
	return &builderModule{plainModule: plainModule{name: name}, build: build}
}

// Registry holds Go-registered modules by name.
type Registry struct {
	mu      sync.RWMutex
	modules map[string]Module
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{modules: make(map[string]Module)}
}

// Register adds m to the registry. It panics if m is nil or a module with the
// same name is already registered.
func (r *Registry) Register(m Module) {
	if m == nil {
		panic("suite: Register module is nil")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, dup := r.modules[m.Name()]; dup {
		panic("suite: Register called twice for module " + m.Name())
	}
	r.modules[m.Name()] = m
}

// RegisterFunc registers a module whose suite is built by build.
func (r *Registry) RegisterFunc(name string, build func() *Suite) {
	r.Register(NewModule(name, build))
}

// Lookup returns the module registered under name.
func (r *Registry) Lookup(name string) (Module, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	m, ok := r.modules[name]
	return m, ok
}

// Names returns the registered module names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.modules))
	for name := range r.modules {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Default is the registry consulted by the regress command.
var Default = NewRegistry()

// Register adds m to the Default registry.
func Register(m Module) {
	Default.Register(m)
}

// RegisterFunc registers a module with the Default registry.
func RegisterFunc(name string, build func() *Suite) {
	Default.RegisterFunc(name, build)
}
