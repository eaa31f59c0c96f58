// Package workspace prepares and removes the temporary directory used by a
// run, and resolves commands against the development directory.
package workspace

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"

	"regress/suite"
)

const separatorWidth = 70

// maxRemoveAttempts bounds the permission-reset retries in RemoveAll.
const maxRemoveAttempts = 3

// Workspace is the temporary directory of a run plus the development
// directory searched before PATH.
type Workspace struct {
	Dir    string
	DevDir string
	log    logrus.FieldLogger
}

// New creates a Workspace. Nothing is touched on disk until Setup.
func New(dir, devDir string, log logrus.FieldLogger) *Workspace {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Workspace{Dir: dir, DevDir: devDir, log: log}
}

// Setup probes target with versionFlag, prints the separator line and
// creates the workspace directory. A failing probe is only logged.
func (w *Workspace) Setup(ctx context.Context, out io.Writer, target, versionFlag string) error {
	fmt.Fprint(out, "Setup to test: ")
	w.probe(ctx, out, target, versionFlag)
	fmt.Fprintln(out, strings.Repeat("-", separatorWidth))

	if err := os.MkdirAll(w.Dir, 0755); err != nil {
		return fmt.Errorf("create workspace: %w", err)
	}
	w.log.Debugf("workspace ready at %s", w.Dir)
	return nil
}

func (w *Workspace) probe(ctx context.Context, out io.Writer, target, versionFlag string) {
	if target == "" {
		fmt.Fprintln(out, "(no target configured)")
		return
	}

	path, err := LookPath(w.DevDir, target)
	if err != nil {
		fmt.Fprintln(out, target)
		w.log.Warnf("target %s not found: %v", target, err)
		return
	}

	cmd := exec.CommandContext(ctx, path, versionFlag)
	cmd.Env = w.Environ()
	output, err := cmd.CombinedOutput()
	output = bytes.TrimRight(output, "\n")
	fmt.Fprintf(out, "%s\n", output)
	if err != nil {
		w.log.Warnf("target probe %s %s failed: %v", path, versionFlag, err)
	}
}

// Teardown removes the workspace if it exists.
func (w *Workspace) Teardown() error {
	if _, err := os.Lstat(w.Dir); errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err := RemoveAll(w.Dir); err != nil {
		return fmt.Errorf("remove workspace: %w", err)
	}
	w.log.Debugf("workspace %s removed", w.Dir)
	return nil
}

// Environ returns the process environment with DevDir first on PATH.
func (w *Workspace) Environ() []string {
	path := w.DevDir
	if cur := os.Getenv("PATH"); cur != "" {
		path += string(os.PathListSeparator) + cur
	}

	env := make([]string, 0, len(os.Environ())+1)
	for _, kv := range os.Environ() {
		if !strings.HasPrefix(kv, "PATH=") {
			env = append(env, kv)
		}
	}
	return append(env, "PATH="+path)
}

// Env returns the base environment handed to every case.
func (w *Workspace) Env(ctx context.Context) suite.Env {
	return suite.Env{
		Context:   ctx,
		Workspace: w.Dir,
		DevDir:    w.DevDir,
		Environ:   w.Environ(),
		Log:       w.log,
	}
}

// LookPath resolves a command name. Names with a path separator are returned
// as is; otherwise an executable in devDir wins over PATH.
func LookPath(devDir, name string) (string, error) {
	if strings.ContainsRune(name, '/') || strings.ContainsRune(name, filepath.Separator) {
		return name, nil
	}
	if devDir != "" {
		candidate := filepath.Join(devDir, name)
		if info, err := os.Stat(candidate); err == nil && info.Mode().IsRegular() && info.Mode().Perm()&0111 != 0 {
			return candidate, nil
		}
	}
	return exec.LookPath(name)
}

// RemoveAll removes dir recursively. Permission errors are handled by
// making the tree writable and retrying.
func RemoveAll(dir string) error {
	err := os.RemoveAll(dir)
	for attempt := 0; err != nil && attempt < maxRemoveAttempts; attempt++ {
		if !errors.Is(err, fs.ErrPermission) {
			return err
		}
		makeWritable(dir)
		err = os.RemoveAll(dir)
	}
	return err
}

// makeWritable opens up permissions on every entry it can reach under root.
// A directory is chmodded before it is read, so unreadable directories are
// walked too. The parent of root is left alone.
func makeWritable(root string) {
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			_ = os.Chmod(path, 0777)
			return nil
		}
		if d.IsDir() {
			_ = os.Chmod(path, 0777)
			return nil
		}
		if d.Type()&fs.ModeSymlink == 0 {
			_ = os.Chmod(path, 0666)
		}
		return nil
	})
}
