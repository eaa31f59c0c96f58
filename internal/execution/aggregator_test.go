package execution

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"regress/internal/parser"
	"regress/internal/workspace"
	"regress/suite"
)

func newTestExecutor(t *testing.T, dir string, reg *suite.Registry, verbosity int) (*SuiteExecutor, *test.Hook) {
	t.Helper()
	cfg := newTestConfig(t, dir)
	cfg.Verbosity = verbosity
	logger, hook := test.NewNullLogger()
	loader := NewLoader(cfg, reg, parser.NewCaseFileParser())
	return NewSuiteExecutor(cfg, loader, NewRunner(), logger), hook
}

func passing(name string) suite.Case {
	return suite.NewCase(name, func(*suite.Env) error { return nil })
}

func TestSuiteExecutor_Aggregate(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "test_plain.yaml"), "description: helpers\n")

	reg := suite.NewRegistry()
	reg.Register(suite.NewModule("test_a", func() *suite.Suite { return suite.New("test_a", passing("one"), passing("two")) }))
	reg.Register(suite.NewModule("test_b", func() *suite.Suite { return suite.New("", passing("three")) }))

	tests := []struct {
		name      string
		verbosity int
		warnings  int
	}{
		{name: "verbose reports skipped module", verbosity: 2, warnings: 1},
		{name: "quiet skips silently", verbosity: 1, warnings: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			se, hook := newTestExecutor(t, dir, reg, tt.verbosity)

			all, err := se.Aggregate([]string{"test_a", "test_plain", "test_b"})
			require.NoError(t, err)
			assert.Equal(t, 3, all.CountCases())

			var owners []string
			all.Walk(func(owner string, c suite.Case) { owners = append(owners, owner+"/"+c.Name()) })
			assert.Equal(t, []string{"test_a/one", "test_a/two", "test_b/three"}, owners)

			var warnings []*logrus.Entry
			for _, e := range hook.AllEntries() {
				if e.Level == logrus.WarnLevel {
					warnings = append(warnings, e)
				}
			}
			require.Len(t, warnings, tt.warnings)
			if tt.warnings > 0 {
				assert.Equal(t, "module 'test_plain' did not have a suite builder", warnings[0].Message)
			}
		})
	}
}

func TestSuiteExecutor_AggregateLoadErrorAborts(t *testing.T) {
	se, _ := newTestExecutor(t, t.TempDir(), suite.NewRegistry(), 2)

	_, err := se.Aggregate([]string{"test_missing"})
	require.ErrorIs(t, err, suite.ErrModuleNotFound)
}

func TestSuiteExecutor_AggregateNilSuite(t *testing.T) {
	reg := suite.NewRegistry()
	reg.Register(suite.NewModule("test_nil", func() *suite.Suite { return nil }))
	se, _ := newTestExecutor(t, t.TempDir(), reg, 2)

	_, err := se.Aggregate([]string{"test_nil"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nil suite")
}

func TestSuiteExecutor_Execute(t *testing.T) {
	reg := suite.NewRegistry()
	var workspaceSeen string
	reg.Register(suite.NewModule("test_ws", func() *suite.Suite {
		return suite.New("test_ws",
			suite.NewCase("sees_workspace", func(env *suite.Env) error {
				workspaceSeen = env.Workspace
				return nil
			}),
			suite.NewCase("fails", func(*suite.Env) error { return suite.Failf("nope") }),
		)
	}))

	dir := t.TempDir()
	se, _ := newTestExecutor(t, dir, reg, 2)
	rep := &recordingReporter{}
	se.SetReporter(rep)

	ws := workspace.New(filepath.Join(dir, "tmp"), filepath.Dir(dir), nil)
	result, err := se.Execute(context.Background(), ws, []string{"test_ws"})
	require.NoError(t, err)

	assert.Equal(t, ws.Dir, workspaceSeen)
	assert.Equal(t, 2, result.TestsRun())
	assert.Len(t, result.Failures(), 1)
	assert.Equal(t, "fails (test_ws)", result.Failures()[0].ID())
	assert.Same(t, result, rep.finished)
}
