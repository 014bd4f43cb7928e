package config

import (
	"fmt"
	"io/ioutil"
	"time"

	"gopkg.in/yaml.v2"

	"github.com/renegade-fi/devnet-deployer/pkg/types"
)

const (
	DefaultPollInterval   = time.Second
	DefaultRequestTimeout = 5 * time.Second
)

type Deployer struct {
	// Command is the deploy tool invocation that every step's sub-command and
	// arguments are appended to.
	Command []string          `yaml:"command"`
	WorkDir string            `yaml:"workDir"`
	Env     map[string]string `yaml:"env"`
}

type Readiness struct {
	Interval time.Duration `yaml:"interval"`
	// MaxAttempts of zero polls until the network is ready.
	MaxAttempts int `yaml:"maxAttempts"`
	// RequestTimeout bounds a single query. Zero uses DefaultRequestTimeout.
	RequestTimeout time.Duration `yaml:"requestTimeout"`
}

// Options are the orchestrator tunables. None of them change which steps run.
type Options struct {
	*Deployer  `yaml:"deployer"`
	*Readiness `yaml:"readiness"`
}

func DefaultOptions() *Options {
	return &Options{
		Deployer: &Deployer{
			Command: []string{types.DefaultDeployerBinary},
		},
		Readiness: &Readiness{
			Interval: DefaultPollInterval,
		},
	}
}

// LoadOptions reads the YAML options file at path over the defaults. An empty
// path returns the defaults.
func LoadOptions(path string) (*Options, error) {
	opts := DefaultOptions()
	if len(path) == 0 {
		return opts, nil
	}

	yamlFile, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config path %q: %s",
			path, err)
	}

	if err := yaml.UnmarshalStrict(yamlFile, opts); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config %q: %s",
			path, err)
	}

	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %q: %s", path, err)
	}

	return opts, nil
}

func (o *Options) Validate() error {
	if o.Deployer == nil || len(o.Deployer.Command) == 0 {
		return fmt.Errorf("deployer.command must not be empty")
	}

	if o.Readiness == nil || o.Readiness.Interval <= 0 {
		return fmt.Errorf("readiness.interval must be positive")
	}

	if o.Readiness.MaxAttempts < 0 {
		return fmt.Errorf("readiness.maxAttempts must not be negative")
	}

	if o.Readiness.RequestTimeout < 0 {
		return fmt.Errorf("readiness.requestTimeout must not be negative")
	}

	return nil
}
