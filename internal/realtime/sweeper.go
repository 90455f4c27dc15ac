package realtime

import (
	"fmt"
	"github.com/pkg/errors"
	"github.com/robfig/cron/v3"
	log "github.com/sirupsen/logrus"
	"time"
)

type Sweeper struct {
	hub      *Hub
	cron     *cron.Cron
	interval time.Duration
}

// NewSweeper schedules a liveness sweep of hub every interval and starts it.
func NewSweeper(hub *Hub, interval time.Duration) (*Sweeper, error) {

	if interval <= 0 {
		return nil, errors.New("sweep interval must be greater than zero")
	}

	s := &Sweeper{
		hub: hub,
		cron: cron.New(cron.WithChain(
			cron.SkipIfStillRunning(cron.PrintfLogger(log.StandardLogger())),
		)),
		interval: interval,
	}

	_, err := s.cron.AddFunc(fmt.Sprintf("@every %s", interval), s.hub.Sweep)
	if err != nil {
		return nil, errors.Wrap(err, "schedule sweep")
	}

	s.cron.Start()
	log.Infof("liveness sweeper started, interval: %v", s.interval)
	return s, nil
}

func (s *Sweeper) Stop() {
	<-s.cron.Stop().Done()
}
