package readiness

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/sirupsen/logrus"
	"k8s.io/apimachinery/pkg/util/wait"

	"github.com/renegade-fi/devnet-deployer/pkg/config"
)

var ErrNotReady = errors.New("network did not become ready")

// CodeFetcher returns the code deployed at an address in the latest state.
type CodeFetcher interface {
	CodeAt(ctx context.Context, addr common.Address) ([]byte, error)
}

type Poller struct {
	log     *logrus.Entry
	fetcher CodeFetcher
	addr    common.Address

	interval    time.Duration
	timeout     time.Duration
	maxAttempts int

	// state of the current wait
	attempts int
	lastSize int
}

func New(log *logrus.Entry, fetcher CodeFetcher, addr common.Address, opts *config.Readiness) *Poller {
	interval := config.DefaultPollInterval
	var timeout time.Duration
	var maxAttempts int
	if opts != nil {
		if opts.Interval > 0 {
			interval = opts.Interval
		}
		timeout = opts.RequestTimeout
		maxAttempts = opts.MaxAttempts
	}
	if timeout <= 0 {
		timeout = config.DefaultRequestTimeout
	}

	return &Poller{
		log:         log.WithField("component", "readiness"),
		fetcher:     fetcher,
		addr:        addr,
		interval:    interval,
		timeout:     timeout,
		maxAttempts: maxAttempts,
	}
}

// WaitUntilReady blocks until code is deployed at the readiness marker
// address. Transport errors, queries that outlive the request timeout and
// empty code are all treated as not ready and retried. With no attempt bound
// configured the only other way out is ctx being cancelled.
func (p *Poller) WaitUntilReady(ctx context.Context) error {
	p.attempts, p.lastSize = 0, 0

	p.log.Infof("waiting for code at readiness marker %s", p.addr.Hex())

	err := wait.PollUntilContextCancel(ctx, p.interval, true, p.ready)
	if err != nil {
		if errors.Is(err, ErrNotReady) {
			return err
		}
		return fmt.Errorf("stopped waiting for network after %d attempts: %w", p.attempts, err)
	}

	p.log.Infof("network ready after %d attempts (%d bytes of code at %s)",
		p.attempts, p.lastSize, p.addr.Hex())

	return nil
}

func (p *Poller) ready(ctx context.Context) (bool, error) {
	p.attempts++

	reqCtx, cancel := context.WithTimeout(ctx, p.timeout)
	code, err := p.fetcher.CodeAt(reqCtx, p.addr)
	cancel()

	switch {
	case err != nil:
		p.log.Debugf("attempt %d: query failed: %s", p.attempts, err)
	case len(code) == 0:
		p.log.Debugf("attempt %d: no code at %s yet", p.attempts, p.addr.Hex())
	default:
		p.lastSize = len(code)
		return true, nil
	}

	if p.maxAttempts > 0 && p.attempts >= p.maxAttempts {
		return false, fmt.Errorf("%w: no code at %s after %d attempts",
			ErrNotReady, p.addr.Hex(), p.attempts)
	}

	return false, nil
}
