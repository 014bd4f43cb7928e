package app

import (
	"errors"
	"fmt"

	"github.com/spf13/pflag"

	"github.com/renegade-fi/devnet-deployer/pkg/config"
)

func (o *Options) AddFlags(fs *pflag.FlagSet) {
	fs.StringVarP(&o.LogLevel, "log-level", "v", "info", "Set logging level [debug|info|warn|error|fatal]")
	fs.StringVarP(&o.ConfigPath, "config", "c", "", "File path to an optional YAML options file.")
	fs.StringVar(&o.EnvFile, "env-file", "", "Dotenv file to load deployment parameters from. Variables already set in the environment take precedence.")
	fs.BoolVar(&o.DryRun, "dry-run", false, "Wait for the devnet and log every deployment step without executing it.")
}

func (o *Options) AddDeployerFlags(fs *pflag.FlagSet) {
	fs.StringSliceVar(&o.Deployer, "deployer", nil, "Deploy tool command, comma separated, that each step's sub-command is appended to. Overrides deployer.command.")
	fs.DurationVar(&o.PollInterval, "poll-interval", config.DefaultPollInterval, "Delay between readiness checks. Overrides readiness.interval.")
	fs.IntVar(&o.MaxPollAttempts, "max-poll-attempts", 0, "Give up after this many readiness checks. 0 waits forever. Overrides readiness.maxAttempts.")
	fs.DurationVar(&o.RequestTimeout, "request-timeout", 0, "Deadline of a single readiness check. 0 uses the default of 5s. Overrides readiness.requestTimeout.")
}

func (o *Options) Validate() error {
	if o.PollInterval <= 0 {
		return errors.New("--poll-interval must be positive")
	}

	if o.MaxPollAttempts < 0 {
		return errors.New("--max-poll-attempts must not be negative")
	}

	if o.RequestTimeout < 0 {
		return errors.New("--request-timeout must not be negative")
	}

	return nil
}

// Apply overrides the file options with every flag that was set explicitly.
func (o *Options) Apply(fs *pflag.FlagSet, opts *config.Options) error {
	if fs.Changed("deployer") {
		opts.Deployer.Command = append([]string(nil), o.Deployer...)
	}

	if fs.Changed("poll-interval") {
		opts.Readiness.Interval = o.PollInterval
	}

	if fs.Changed("max-poll-attempts") {
		opts.Readiness.MaxAttempts = o.MaxPollAttempts
	}

	if fs.Changed("request-timeout") {
		opts.Readiness.RequestTimeout = o.RequestTimeout
	}

	if err := opts.Validate(); err != nil {
		return fmt.Errorf("invalid options: %s", err)
	}

	return nil
}
