// Package schedule runs the periodic check for newly matching jobs.
package schedule

import (
	"fmt"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// Poller wraps robfig/cron and invokes a callback on every tick.
type Poller struct {
	cron *cron.Cron
	spec string
	tick func()
	log  logrus.FieldLogger
}

// New creates a Poller firing tick on spec, e.g. "@every 30s".
func New(spec string, tick func(), log logrus.FieldLogger) *Poller {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Poller{
		cron: cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		spec: spec,
		tick: tick,
		log:  log.WithField("component", "poller"),
	}
}

// Start registers the tick and starts the scheduler.
func (p *Poller) Start() error {
	_, err := p.cron.AddFunc(p.spec, func() {
		p.log.Debug("freshness tick")
		p.tick()
	})
	if err != nil {
		return fmt.Errorf("cron.AddFunc %q: %w", p.spec, err)
	}

	p.cron.Start()
	p.log.WithField("spec", p.spec).Info("poller started")
	return nil
}

// Stop halts the scheduler and waits for a running tick to return.
func (p *Poller) Stop() {
	<-p.cron.Stop().Done()
	p.log.Info("poller stopped")
}
