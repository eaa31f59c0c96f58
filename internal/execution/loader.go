package execution

import (
	"fmt"
	"os"
	"path/filepath"

	"regress/internal/config"
	"regress/internal/domain"
	"regress/internal/parser"
	"regress/suite"
)

// Loader resolves module names to modules
type Loader struct {
	config   *config.Config
	registry *suite.Registry
	parser   parser.Parser
}

// NewLoader creates a new Loader
func NewLoader(cfg *config.Config, registry *suite.Registry, p parser.Parser) *Loader {
	return &Loader{config: cfg, registry: registry, parser: p}
}

// Resolve loads the module called name. Registered modules win over case
// files; a case file wins over a package of the same name. An unknown name
// yields an error wrapping suite.ErrModuleNotFound.
func (l *Loader) Resolve(name string) (suite.Module, domain.ModuleRef, error) {
	if l.registry != nil {
		if m, ok := l.registry.Lookup(name); ok {
			return m, domain.ModuleRef{Name: name, Kind: domain.KindRegistered}, nil
		}
	}

	testDir := l.config.GetTestDir()
	candidates := []domain.ModuleRef{
		{Name: name, Kind: domain.KindFile, Path: filepath.Join(testDir, name+l.config.Suffix), Dir: testDir},
		{Name: name, Kind: domain.KindPackage, Path: filepath.Join(testDir, name, l.config.Marker), Dir: filepath.Join(testDir, name)},
	}
	for _, ref := range candidates {
		info, err := os.Stat(ref.Path)
		if err != nil || !info.Mode().IsRegular() {
			continue
		}
		m, err := l.load(ref)
		if err != nil {
			return nil, ref, err
		}
		return m, ref, nil
	}

	return nil, domain.ModuleRef{Name: name}, fmt.Errorf("%w: %s (looked in %s)", suite.ErrModuleNotFound, name, testDir)
}

func (l *Loader) load(ref domain.ModuleRef) (suite.Module, error) {
	cf, err := l.parser.Parse(ref.Path)
	if err != nil {
		return nil, fmt.Errorf("load module %s: %w", ref.Name, err)
	}
	if cf.Suite == nil {
		return suite.NewModule(ref.Name, nil), nil
	}

	specs := *cf.Suite
	target := l.config.Target
	return suite.NewModule(ref.Name, func() *suite.Suite {
		s := suite.New(ref.Name)
		for _, spec := range specs {
			s.Add(newCommandCase(spec, ref.Dir, target))
		}
		return s
	}), nil
}

// Describe resolves name and lists its cases without running anything.
func (l *Loader) Describe(name string) (domain.ModuleInfo, error) {
	m, ref, err := l.Resolve(name)
	if err != nil {
		return domain.ModuleInfo{ModuleRef: ref}, err
	}
	info := domain.ModuleInfo{ModuleRef: ref}
	b, ok := m.(suite.SuiteBuilder)
	if !ok {
		return info, nil
	}
	info.HasSuite = true
	if s := b.Suite(); s != nil {
		s.Walk(func(_ string, c suite.Case) {
			info.Cases = append(info.Cases, c.Name())
		})
	}
	return info, nil
}
