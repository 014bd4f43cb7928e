// Package keepalive holds the process open after a successful deployment so
// that the container running it, and the devnet beside it, stay up.
package keepalive

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
	"k8s.io/apimachinery/pkg/util/wait"
)

const DefaultHeartbeat = 10 * time.Minute

// Block returns only once ctx is cancelled. A positive heartbeat logs at debug
// level on that period while blocked.
func Block(ctx context.Context, log *logrus.Entry, heartbeat time.Duration) {
	log = log.WithField("component", "keepalive")
	log.Info("deployment complete, holding process open until terminated")

	if heartbeat <= 0 {
		<-ctx.Done()
		return
	}

	start := time.Now()
	wait.UntilWithContext(ctx, func(context.Context) {
		log.Debugf("alive for %s", time.Since(start).Round(time.Second))
	}, heartbeat)
}
