package scheduler

import (
	"time"

	"github.com/robfig/cron/v3"

	applog "marrent/internal/log"
	"marrent/internal/services"
)

// Scheduler runs the daily sweep: log rentals close to their end date and
// refresh the store mirror.
type Scheduler struct {
	cron     *cron.Cron
	tracking *services.TrackingService
	backup   services.Backup
}

func New(tracking *services.TrackingService, backup services.Backup, sweepSpec string) (*Scheduler, error) {
	c := cron.New(cron.WithLocation(time.UTC))
	s := &Scheduler{cron: c, tracking: tracking, backup: backup}

	if _, err := c.AddFunc(sweepSpec, s.sweep); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Scheduler) Start() { s.cron.Start() }
func (s *Scheduler) Stop()  { s.cron.Stop() }

func (s *Scheduler) sweep() {
	all, expiring, err := s.tracking.Snapshot()
	if err != nil {
		applog.Job("sweep.tracking", err, nil)
		return
	}
	for _, r := range expiring {
		applog.Job("sweep.rental.expiring", nil, map[string]any{
			"rental_id":      r.ID,
			"customer":       r.CustomerName,
			"end_date":       r.EndDate,
			"days_remaining": r.DaysRemaining,
		})
	}
	applog.Job("sweep.done", nil, map[string]any{"active": len(all), "expiring": len(expiring)})

	if s.backup != nil {
		s.backup.PushAsync("sweep")
	}
}
