package app

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	cliflag "k8s.io/component-base/cli/flag"

	"github.com/renegade-fi/devnet-deployer/pkg/config"
	"github.com/renegade-fi/devnet-deployer/pkg/orchestrator"
	"github.com/renegade-fi/devnet-deployer/pkg/preflight"
	"github.com/renegade-fi/devnet-deployer/pkg/readiness"
	"github.com/renegade-fi/devnet-deployer/pkg/runner"
	"github.com/renegade-fi/devnet-deployer/pkg/types"
)

type Options struct {
	LogLevel   string
	ConfigPath string
	EnvFile    string
	DryRun     bool

	Deployer        []string
	PollInterval    time.Duration
	MaxPollAttempts int
	RequestTimeout  time.Duration
}

const (
	long = `  devnet-deployer deploys the darkpool contracts to a freshly started Arbitrum
  devnet. It waits until the devnet has deployed code at the readiness marker
  address, deploys the verifier, merkle, darkpool and proxy contracts in that
  order, optionally uploads the circuit verification keys, and then keeps
  running until it is terminated. The first failing step stops the deployment
  and the process exits with that step's exit code.

  Deployment parameters are read from the environment:
    ` + config.EnvRPCURL + `       devnet RPC endpoint (e.g. ` + types.DefaultDevnetRPCURL + `)
    ` + config.EnvInitCheckAddr + `   address whose code marks the devnet as bootstrapped
    ` + config.EnvPrivateKey + `          private key that signs every deployment
    ` + config.EnvDeploymentsPath + `     file the deploy tool records contract addresses in
    ` + config.EnvProxyOwner + `          owner of the darkpool proxy
    ` + config.EnvNoVerify + `            deploy the darkpool without proof verification
    ` + config.EnvUploadVkeys + `         upload the circuit verification keys

  ` + config.EnvNoVerify + ` and ` + config.EnvUploadVkeys + ` are booleans, not presence flags. Unset or
  empty means false, ` + config.EnvNoVerify + `=false leaves verification on, and
  only 1, t, true, 0, f, false (or their upper case forms) are accepted. Any
  other value, such as yes, stops the deployer before it starts.`
	examples = `
  # Deploy using the environment of the container
  devnet-deployer

  # Load deployment parameters from a dotenv file and print every step
  devnet-deployer --env-file .env --dry-run -v debug

  # Give up if the devnet has not bootstrapped after 5 minutes
  devnet-deployer --poll-interval 1s --max-poll-attempts 300`
)

func NewRunCmd(ctx context.Context) *cobra.Command {
	o := new(Options)

	cmd := &cobra.Command{
		Use:           "devnet-deployer",
		Short:         "devnet-deployer deploys the darkpool contracts to an Arbitrum devnet.",
		Long:          long,
		Example:       examples,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := o.Validate(); err != nil {
				return err
			}

			lvl, err := logrus.ParseLevel(o.LogLevel)
			if err != nil {
				return fmt.Errorf("failed to parse --log-level: %s", err)
			}

			logger := logrus.New()
			logger.SetLevel(lvl)
			log := logrus.NewEntry(logger)
			if o.DryRun {
				log = log.WithField("dry-run", true)
			}

			opts, err := config.LoadOptions(o.ConfigPath)
			if err != nil {
				return err
			}
			if err := o.Apply(cmd.Flags(), opts); err != nil {
				return err
			}

			var envFiles []string
			if len(o.EnvFile) > 0 {
				envFiles = append(envFiles, o.EnvFile)
			}

			cfg, err := config.FromEnv(envFiles...)
			if err != nil {
				return fmt.Errorf("invalid deployment config: %w", err)
			}

			if err := preflight.New(log, opts.Deployer, cfg.DeploymentsPath).Run(o.DryRun); err != nil {
				return fmt.Errorf("preflight checks failed: %w", err)
			}

			fetcher := readiness.NewEthCodeFetcher(cfg.RPCURL)
			defer fetcher.Close()

			poller := readiness.New(log, fetcher, cfg.InitCheckAddr, opts.Readiness)

			r, err := runner.New(log, opts.Deployer, o.DryRun)
			if err != nil {
				return err
			}

			return orchestrator.New(log, cfg, poller, r).Run(ctx)
		},
	}

	nfs := new(cliflag.NamedFlagSets)

	usageFmt := "Usage:\n  %s\n\n"
	cmd.SetUsageFunc(func(cmd *cobra.Command) error {
		fmt.Fprintf(cmd.OutOrStderr(), usageFmt, cmd.UseLine())
		cliflag.PrintSections(cmd.OutOrStderr(), *nfs, -1)
		return nil
	})

	cmd.SetHelpFunc(func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "%s\n\n"+usageFmt, cmd.Long, cmd.UseLine())
		fmt.Fprintf(cmd.OutOrStdout(), "Examples:%s\n\n", cmd.Example)
		cliflag.PrintSections(cmd.OutOrStdout(), *nfs, -1)
	})

	o.AddFlags(nfs.FlagSet("Option"))
	o.AddDeployerFlags(nfs.FlagSet("Deployer"))

	fs := cmd.Flags()
	for _, name := range nfs.Order {
		fs.AddFlagSet(nfs.FlagSets[name])
	}

	return cmd
}
