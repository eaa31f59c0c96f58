package execution

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/acarl005/stripansi"
	"github.com/google/go-cmp/cmp"

	"regress/internal/domain"
	"regress/internal/workspace"
	"regress/suite"
)

// Environment variables set for every command case
const (
	EnvWorkspace = "REGRESS_WORKSPACE"
	EnvModuleDir = "REGRESS_MODULE_DIR"
)

// waitDelay bounds how long a killed command may hold its output pipes open
const waitDelay = 2 * time.Second

// commandCase runs one command from a case file and checks its output
type commandCase struct {
	spec   domain.CaseSpec
	dir    string // module directory
	target string
}

func newCommandCase(spec domain.CaseSpec, dir, target string) *commandCase {
	return &commandCase{spec: spec, dir: dir, target: target}
}

func (c *commandCase) Name() string {
	return c.spec.Name
}

// Run executes the command. A command that cannot be started is an error;
// unexpected exit codes or output are failures.
func (c *commandCase) Run(env *suite.Env) error {
	if c.spec.Skip != "" {
		return suite.Skipf("%s", c.spec.Skip)
	}

	name := c.spec.Command
	if name == "" {
		name = c.target
	}
	if name == "" {
		return errors.New("case has no command and no target is configured")
	}

	expand := strings.NewReplacer("{workspace}", env.Workspace, "{dir}", c.dir).Replace

	path, err := workspace.LookPath(env.DevDir, expand(name))
	if err != nil {
		return fmt.Errorf("find command %s: %w", name, err)
	}

	ctx := env.Context
	if ctx == nil {
		ctx = context.Background()
	}
	if c.spec.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.spec.Timeout)
		defer cancel()
	}

	args := make([]string, len(c.spec.Args))
	for i, a := range c.spec.Args {
		args[i] = expand(a)
	}

	cmd := exec.CommandContext(ctx, path, args...)
	cmd.WaitDelay = waitDelay
	cmd.Dir = c.dir
	if c.spec.Dir != "" {
		cmd.Dir = filepath.Join(c.dir, expand(c.spec.Dir))
	}
	cmd.Env = append([]string{}, env.Environ...)
	cmd.Env = append(cmd.Env,
		fmt.Sprintf("%s=%s", EnvWorkspace, env.Workspace),
		fmt.Sprintf("%s=%s", EnvModuleDir, c.dir),
	)
	keys := make([]string, 0, len(c.spec.Env))
	for k := range c.spec.Env {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		cmd.Env = append(cmd.Env, fmt.Sprintf("%s=%s", k, expand(c.spec.Env[k])))
	}
	if c.spec.Stdin != "" {
		cmd.Stdin = strings.NewReader(expand(c.spec.Stdin))
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if env.Log != nil {
		env.Log.Debugf("running %s %s in %s", path, strings.Join(args, " "), cmd.Dir)
	}

	exitCode := 0
	if err := cmd.Run(); err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return fmt.Errorf("%s timed out after %s", name, c.spec.Timeout)
		}
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			return fmt.Errorf("run %s: %w", name, err)
		}
		exitCode = exitErr.ExitCode()
	}

	return c.check(exitCode, stdout.String(), stderr.String())
}

func (c *commandCase) check(exitCode int, stdout, stderr string) error {
	if c.spec.StripANSI {
		stdout = stripansi.Strip(stdout)
		stderr = stripansi.Strip(stderr)
	}

	var problems []string
	if exitCode != c.spec.ExitCode {
		problems = append(problems, fmt.Sprintf("exit code %d, want %d", exitCode, c.spec.ExitCode))
	}

	want, haveWant, err := c.expectedStdout()
	if err != nil {
		return err
	}
	if haveWant && stdout != want {
		problems = append(problems, fmt.Sprintf("stdout mismatch (-want +got):\n%s", cmp.Diff(want, stdout)))
	}

	for _, s := range c.spec.StdoutContains {
		if !strings.Contains(stdout, s) {
			problems = append(problems, fmt.Sprintf("stdout does not contain %q", s))
		}
	}
	for _, s := range c.spec.StderrContains {
		if !strings.Contains(stderr, s) {
			problems = append(problems, fmt.Sprintf("stderr does not contain %q", s))
		}
	}

	if len(problems) == 0 {
		return nil
	}
	if stderr != "" {
		problems = append(problems, "stderr:\n"+strings.TrimRight(stderr, "\n"))
	}
	return suite.Failf("%s", strings.Join(problems, "\n"))
}

func (c *commandCase) expectedStdout() (string, bool, error) {
	if c.spec.Stdout != nil {
		return *c.spec.Stdout, true, nil
	}
	if c.spec.StdoutFile == "" {
		return "", false, nil
	}
	path := c.spec.StdoutFile
	if !filepath.IsAbs(path) {
		path = filepath.Join(c.dir, path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", false, fmt.Errorf("read expected output: %w", err)
	}
	want := string(data)
	if c.spec.StripANSI {
		want = stripansi.Strip(want)
	}
	return want, true, nil
}
