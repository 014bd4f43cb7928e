package sequencer

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/renegade-fi/devnet-deployer/pkg/steps"
)

// StepRunner executes a single step, returning nil only on success.
type StepRunner interface {
	RunStep(ctx context.Context, step steps.Step) error
}

// StepError reports the step that halted a sequence.
type StepError struct {
	Index int
	Step  string
	Err   error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("step %d (%s) failed: %s", e.Index+1, e.Step, e.Err)
}

func (e *StepError) Unwrap() error {
	return e.Err
}

// ExitCode is the exit code of the failed command, or 1 if it did not exit
// with one.
func (e *StepError) ExitCode() int {
	var exitErr *exec.ExitError
	if errors.As(e.Err, &exitErr) && exitErr.ExitCode() > 0 {
		return exitErr.ExitCode()
	}
	return 1
}

type Sequencer struct {
	log    *logrus.Entry
	runner StepRunner
}

func New(log *logrus.Entry, runner StepRunner) *Sequencer {
	return &Sequencer{
		log:    log.WithField("component", "sequencer"),
		runner: runner,
	}
}

// Run executes seq in order and stops at the first failing step. Failed steps
// are never retried and completed steps are never rolled back.
func (s *Sequencer) Run(ctx context.Context, seq steps.Sequence) error {
	start := time.Now()
	s.log.Infof("running %d deployment steps", len(seq))

	for i, step := range seq {
		log := s.log.WithField("step", step.Name)
		log.Infof("[%d/%d] running %s", i+1, len(seq), step.Name)

		stepStart := time.Now()
		if err := s.runner.RunStep(ctx, step); err != nil {
			log.Errorf("%s failed after %s, skipping %d remaining steps: %s",
				step.Name, time.Since(stepStart).Round(time.Millisecond), len(seq)-i-1, err)
			return &StepError{
				Index: i,
				Step:  step.Name,
				Err:   err,
			}
		}

		log.Infof("%s succeeded in %s", step.Name, time.Since(stepStart).Round(time.Millisecond))
	}

	s.log.Infof("all %d deployment steps succeeded in %s", len(seq), time.Since(start).Round(time.Millisecond))

	return nil
}
