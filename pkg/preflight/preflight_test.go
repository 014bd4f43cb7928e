package preflight

import (
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/renegade-fi/devnet-deployer/pkg/config"
)

func TestRun(t *testing.T) {
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}

	log := logrus.NewEntry(logrus.New())
	dir := t.TempDir()
	file := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(file, nil, 0600))

	tests := map[string]struct {
		deployer    config.Deployer
		deployments string
		dryrun      bool
		expErr      bool
	}{
		"deploy tool on path": {
			deployer:    config.Deployer{Command: []string{"sh"}},
			deployments: filepath.Join(dir, "deployments.json"),
		},
		"missing deploy tool": {
			deployer:    config.Deployer{Command: []string{"no-such-deploy-tool"}},
			deployments: filepath.Join(dir, "deployments.json"),
			expErr:      true,
		},
		"missing deploy tool in dry run": {
			deployer:    config.Deployer{Command: []string{"no-such-deploy-tool"}},
			deployments: filepath.Join(dir, "deployments.json"),
			dryrun:      true,
		},
		"no deploy tool": {
			deployments: filepath.Join(dir, "deployments.json"),
			expErr:      true,
		},
		"missing working directory": {
			deployer:    config.Deployer{Command: []string{"sh"}, WorkDir: filepath.Join(dir, "missing")},
			deployments: filepath.Join(dir, "deployments.json"),
			expErr:      true,
		},
		"working directory is a file": {
			deployer:    config.Deployer{Command: []string{"sh"}, WorkDir: file},
			deployments: filepath.Join(dir, "deployments.json"),
			expErr:      true,
		},
		"missing deployments directory": {
			deployer:    config.Deployer{Command: []string{"sh"}},
			deployments: filepath.Join(dir, "missing", "deployments.json"),
			dryrun:      true,
			expErr:      true,
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			deployer := test.deployer
			err := New(log, &deployer, test.deployments).Run(test.dryrun)
			assert.Equal(t, test.expErr, err != nil, "%v", err)
		})
	}
}
