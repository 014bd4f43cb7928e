package sequencer

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/renegade-fi/devnet-deployer/pkg/steps"
)

type fakeRunner struct {
	failAt int
	err    error
	calls  []string
}

func (f *fakeRunner) RunStep(_ context.Context, step steps.Step) error {
	f.calls = append(f.calls, step.Name)
	if len(f.calls)-1 == f.failAt {
		return f.err
	}
	return nil
}

func testSequence(n int) steps.Sequence {
	seq := make(steps.Sequence, n)
	for i := range seq {
		seq[i] = steps.Step{
			Name:    fmt.Sprintf("step-%d", i),
			Command: "noop",
			Include: true,
		}
	}
	return seq
}

func newSequencer(runner StepRunner) *Sequencer {
	return New(logrus.NewEntry(logrus.New()), runner)
}

func TestRunAllSucceed(t *testing.T) {
	for _, n := range []int{0, 1, 4, 9} {
		runner := &fakeRunner{failAt: -1}
		seq := testSequence(n)

		require.NoError(t, newSequencer(runner).Run(context.Background(), seq))
		assert.Equal(t, seq.Names(), append([]string{}, runner.calls...))
	}
}

func TestRunFailFast(t *testing.T) {
	failure := errors.New("deploy failed")

	for _, n := range []int{1, 4, 9} {
		for i := 0; i < n; i++ {
			t.Run(fmt.Sprintf("%d steps, fail at %d", n, i), func(t *testing.T) {
				runner := &fakeRunner{failAt: i, err: failure}
				seq := testSequence(n)

				err := newSequencer(runner).Run(context.Background(), seq)
				require.Error(t, err)

				// Steps after the failing one are never invoked.
				assert.Len(t, runner.calls, i+1)
				assert.Equal(t, seq.Names()[:i+1], runner.calls)

				var stepErr *StepError
				require.True(t, errors.As(err, &stepErr))
				assert.Equal(t, i, stepErr.Index)
				assert.Equal(t, seq[i].Name, stepErr.Step)
				assert.True(t, errors.Is(err, failure))
				assert.Equal(t, 1, stepErr.ExitCode())
			})
		}
	}
}

func TestStepErrorExitCode(t *testing.T) {
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}

	runErr := exec.Command("sh", "-c", "exit 7").Run()
	require.Error(t, runErr)

	err := &StepError{Index: 1, Step: "deploy-merkle", Err: fmt.Errorf("wrapped: %w", runErr)}
	assert.Equal(t, 7, err.ExitCode())
	assert.Equal(t, "step 2 (deploy-merkle) failed: wrapped: exit status 7", err.Error())
}
