package workspace

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeScript(t *testing.T, path, body string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"+body+"\n"), 0755))
}

func TestSetup_ProbesTargetInDevDir(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("shell scripts")
	}
	devDir := t.TempDir()
	writeScript(t, filepath.Join(devDir, "preprocess"), `echo "preprocess 1.2.3"`)

	ws := New(filepath.Join(devDir, "test", "tmp"), devDir, nil)
	var out bytes.Buffer
	require.NoError(t, ws.Setup(context.Background(), &out, "preprocess", "-V"))

	lines := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "Setup to test: preprocess 1.2.3", lines[0])
	assert.Equal(t, strings.Repeat("-", 70), lines[1])
	assert.DirExists(t, ws.Dir)
}

func TestSetup_MissingTargetIsNotFatal(t *testing.T) {
	logger, hook := test.NewNullLogger()
	devDir := t.TempDir()
	ws := New(filepath.Join(devDir, "tmp"), devDir, logger)

	var out bytes.Buffer
	require.NoError(t, ws.Setup(context.Background(), &out, "regress-no-such-target", "-V"))

	assert.True(t, strings.HasPrefix(out.String(), "Setup to test: regress-no-such-target\n"))
	require.NotNil(t, hook.LastEntry())
	assert.Equal(t, logrus.WarnLevel, hook.LastEntry().Level)
}

func TestSetup_NoTarget(t *testing.T) {
	devDir := t.TempDir()
	ws := New(filepath.Join(devDir, "tmp"), devDir, nil)

	var out bytes.Buffer
	require.NoError(t, ws.Setup(context.Background(), &out, "", "-V"))
	assert.Contains(t, out.String(), "(no target configured)")
}

func TestTeardown(t *testing.T) {
	t.Run("missing workspace is fine", func(t *testing.T) {
		ws := New(filepath.Join(t.TempDir(), "absent"), "", nil)
		assert.NoError(t, ws.Teardown())
	})

	t.Run("removes read-only tree", func(t *testing.T) {
		skipIfRoot(t)
		dir := filepath.Join(t.TempDir(), "tmp")
		nested := filepath.Join(dir, "a", "b")
		require.NoError(t, os.MkdirAll(nested, 0755))
		require.NoError(t, os.WriteFile(filepath.Join(nested, "out.txt"), []byte("x"), 0444))
		require.NoError(t, os.Chmod(nested, 0555))
		require.NoError(t, os.Chmod(filepath.Join(dir, "a"), 0555))

		ws := New(dir, "", nil)
		require.NoError(t, ws.Teardown())
		assert.NoDirExists(t, dir)
	})
}

func TestTeardown_LeavesParentPermissions(t *testing.T) {
	skipIfRoot(t)
	parent := t.TempDir()
	dir := filepath.Join(parent, "tmp")
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "a"), 0755))
	require.NoError(t, os.Chmod(parent, 0555))
	t.Cleanup(func() { _ = os.Chmod(parent, 0755) })

	ws := New(dir, "", nil)
	assert.Error(t, ws.Teardown())

	info, err := os.Stat(parent)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0555), info.Mode().Perm())
}

func skipIfRoot(t *testing.T) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("unix permissions")
	}
	if os.Geteuid() == 0 {
		t.Skip("permission checks do not apply to root")
	}
}

func TestLookPath_DevDirFirst(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("shell scripts")
	}
	devDir := t.TempDir()
	writeScript(t, filepath.Join(devDir, "sh"), "exit 0")

	path, err := LookPath(devDir, "sh")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(devDir, "sh"), path)

	path, err = LookPath(t.TempDir(), "sh")
	require.NoError(t, err)
	assert.NotEqual(t, filepath.Join(devDir, "sh"), path)

	path, err = LookPath(devDir, "./local/tool")
	require.NoError(t, err)
	assert.Equal(t, "./local/tool", path)
}

func TestEnviron_DevDirFirstOnPath(t *testing.T) {
	t.Setenv("PATH", "/usr/bin")
	ws := New("", "/project", nil)

	var paths []string
	for _, kv := range ws.Environ() {
		if strings.HasPrefix(kv, "PATH=") {
			paths = append(paths, kv)
		}
	}
	assert.Equal(t, []string{"PATH=/project" + string(os.PathListSeparator) + "/usr/bin"}, paths)
}
