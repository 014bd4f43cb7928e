package preflight

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"github.com/renegade-fi/devnet-deployer/pkg/config"
)

// Preflight checks the local environment before the deployer starts waiting
// on the devnet, so a broken container fails immediately rather than after
// the devnet has bootstrapped.
type Preflight struct {
	log *logrus.Entry

	deployer        *config.Deployer
	deploymentsPath string
}

func New(log *logrus.Entry, deployer *config.Deployer, deploymentsPath string) *Preflight {
	return &Preflight{
		log:             log.WithField("step", "preflight"),
		deployer:        deployer,
		deploymentsPath: deploymentsPath,
	}
}

// Run ensures that
// - the deploy tool binary can be found
// - the deploy tool working directory exists
// - the directory the deployments file is written to exists
// When dryrun is set the deploy tool is never executed, so only the
// deployments directory is checked.
func (p *Preflight) Run(dryrun bool) error {
	p.log.Debug("running preflight checks...")

	if !dryrun {
		if len(p.deployer.Command) == 0 {
			return fmt.Errorf("no deployer command configured")
		}

		path, err := exec.LookPath(p.deployer.Command[0])
		if err != nil {
			return fmt.Errorf("deploy tool %q not found: %w", p.deployer.Command[0], err)
		}
		p.log.Debugf("using deploy tool %s", path)

		if len(p.deployer.WorkDir) > 0 {
			if err := isDir(p.deployer.WorkDir); err != nil {
				return fmt.Errorf("deployer working directory: %w", err)
			}
		}
	}

	if err := isDir(filepath.Dir(p.deploymentsPath)); err != nil {
		return fmt.Errorf("deployments directory: %w", err)
	}

	p.log.Debug("preflight checks passed")

	return nil
}

func isDir(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}

	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", path)
	}

	return nil
}
