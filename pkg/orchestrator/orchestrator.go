// Package orchestrator runs a complete devnet deployment: it waits for the
// devnet to finish bootstrapping, runs the deployment sequence, and then holds
// the process open.
package orchestrator

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/renegade-fi/devnet-deployer/pkg/config"
	"github.com/renegade-fi/devnet-deployer/pkg/deployments"
	"github.com/renegade-fi/devnet-deployer/pkg/keepalive"
	"github.com/renegade-fi/devnet-deployer/pkg/sequencer"
	"github.com/renegade-fi/devnet-deployer/pkg/steps"
)

// Waiter blocks until the target network can accept deployments.
type Waiter interface {
	WaitUntilReady(ctx context.Context) error
}

type Orchestrator struct {
	log    *logrus.Entry
	config *config.Config

	waiter    Waiter
	sequencer *sequencer.Sequencer

	// block is called once the whole sequence has succeeded.
	block func(ctx context.Context)
}

func New(log *logrus.Entry, config *config.Config, waiter Waiter, runner sequencer.StepRunner) *Orchestrator {
	log = log.WithField("run", uuid.New().String())

	return &Orchestrator{
		log:       log,
		config:    config,
		waiter:    waiter,
		sequencer: sequencer.New(log, runner),
		block: func(ctx context.Context) {
			keepalive.Block(ctx, log, keepalive.DefaultHeartbeat)
		},
	}
}

// Run deploys the contracts and, on success, blocks until ctx is cancelled.
// The first failing step is returned as a *sequencer.StepError and nothing
// after it runs.
func (o *Orchestrator) Run(ctx context.Context) error {
	signer, err := o.config.SignerAddress()
	if err != nil {
		return err
	}

	o.log.Infof("deploying to %s as %s (no-verify=%t, upload-vkeys=%t)",
		config.RedactURL(o.config.RPCURL), signer.Hex(), o.config.NoVerify, o.config.UploadVkeys)

	start := time.Now()
	if err := o.waiter.WaitUntilReady(ctx); err != nil {
		return fmt.Errorf("failed waiting for network: %w", err)
	}
	o.log.Infof("network ready after %s", time.Since(start).Round(time.Millisecond))

	seq := steps.Build(o.config)
	o.log.Debugf("deployment sequence: %v", seq.Names())

	if err := o.sequencer.Run(ctx, seq); err != nil {
		return err
	}

	deployments.Report(o.log, o.config.DeploymentsPath)

	o.block(ctx)

	return nil
}
