package runner

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/renegade-fi/devnet-deployer/pkg/config"
	"github.com/renegade-fi/devnet-deployer/pkg/steps"
)

// Runner executes steps as subprocesses of the deploy tool.
type Runner struct {
	log *logrus.Entry

	command []string
	workDir string
	env     []string
	dryrun  bool

	stdout io.Writer
	stderr io.Writer
}

func New(log *logrus.Entry, deployer *config.Deployer, dryrun bool) (*Runner, error) {
	if deployer == nil || len(deployer.Command) == 0 {
		return nil, fmt.Errorf("no deployer command configured")
	}

	var env []string
	for k, v := range deployer.Env {
		env = append(env, k+"="+v)
	}
	sort.Strings(env)

	return &Runner{
		log:     log.WithField("component", "runner"),
		command: append([]string(nil), deployer.Command...),
		workDir: deployer.WorkDir,
		env:     env,
		dryrun:  dryrun,
		stdout:  os.Stdout,
		stderr:  os.Stderr,
	}, nil
}

// RunStep runs the deploy tool for step and waits for it to exit. Output is
// passed through to this process. A non-zero exit is returned as an
// *exec.ExitError.
func (r *Runner) RunStep(ctx context.Context, step steps.Step) error {
	log := r.log.WithField("step", step.Name)
	log.Debugf("%s %s", strings.Join(r.command, " "), step)

	if r.dryrun {
		log.Info("dry run, not executing")
		return nil
	}

	args := append([]string{}, r.command[1:]...)
	args = append(args, step.Command)
	args = append(args, step.Args...)

	cmd := exec.CommandContext(ctx, r.command[0], args...)
	cmd.Dir = r.workDir
	cmd.Env = append(os.Environ(), r.env...)
	cmd.Stdout = r.stdout
	cmd.Stderr = r.stderr

	if err := cmd.Run(); err != nil {
		return err
	}

	return nil
}
