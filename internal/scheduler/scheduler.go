// Package scheduler owns the single daily broadcast trigger. The
// trigger is re-derived from persisted settings on every
// UpdateSchedule call: the previous cron entry is removed and a new
// one installed under one mutex, so observers never see zero or two
// entries.
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/AkhmedovBotir/truckbot/internal/domain"
	"github.com/AkhmedovBotir/truckbot/internal/store"
)

// Job is the unit of work the trigger fires: one broadcast cycle.
type Job interface {
	RunCycle(ctx context.Context) error
}

// Scheduler installs and maintains the daily trigger.
type Scheduler struct {
	settings store.SettingsStore
	job      Job
	log      *zap.Logger

	mu      sync.Mutex
	c       *cron.Cron
	entry   cron.EntryID
	armed   bool
	started bool
}

// New creates a stopped scheduler. Call UpdateSchedule to arm it and
// Start to begin the timer loop.
func New(settings store.SettingsStore, job Job, log *zap.Logger) *Scheduler {
	return &Scheduler{
		settings: settings,
		job:      job,
		log:      log,
		c: cron.New(
			cron.WithParser(cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)),
			cron.WithLocation(time.Local),
		),
	}
}

// Start begins the timer loop. Safe to call more than once.
func (s *Scheduler) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.started {
		return
	}
	s.started = true
	s.c.Start()
	s.log.Info("scheduler started")
}

// Stop halts the timer loop. An in-flight broadcast keeps running; only
// future fires are cancelled.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.started {
		return
	}
	s.started = false
	s.c.Stop()
	s.log.Info("scheduler stopped")
}

// UpdateSchedule re-reads the configured send time and replaces the
// trigger. A malformed time is logged and leaves the previous trigger
// (if any) installed; it never crashes the process.
func (s *Scheduler) UpdateSchedule(ctx context.Context) error {
	cfg, err := s.settings.Settings(ctx)
	if err != nil {
		s.log.Error("reschedule: settings unreadable", zap.Error(err))
		return err
	}

	hour, minute, err := domain.ParseHHMM(cfg.SendTime)
	if err != nil {
		s.log.Warn("reschedule: malformed send time, keeping previous trigger",
			zap.String("send_time", cfg.SendTime), zap.Error(err))
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.armed {
		s.c.Remove(s.entry)
		s.armed = false
	}

	spec := fmt.Sprintf("%d %d * * *", minute, hour)
	id, err := s.c.AddFunc(spec, s.fire)
	if err != nil {
		// Spec is built from validated numbers; failing here means a
		// programming error. Log loudly, stay disarmed.
		s.log.Error("reschedule: cron rejected spec", zap.String("spec", spec), zap.Error(err))
		return err
	}
	s.entry = id
	s.armed = true

	s.log.Info("daily broadcast scheduled",
		zap.String("send_time", fmt.Sprintf("%02d:%02d", hour, minute)))
	return nil
}

func (s *Scheduler) fire() {
	if err := s.job.RunCycle(context.Background()); err != nil {
		s.log.Error("scheduled broadcast cycle failed", zap.Error(err))
	}
}

// NextFire returns the next fire time of the installed trigger, or
// ok=false while disarmed. Used by the admin statistics screen and
// tests.
func (s *Scheduler) NextFire() (time.Time, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.armed {
		return time.Time{}, false
	}
	return s.c.Entry(s.entry).Schedule.Next(time.Now()), true
}

// entryCount reports how many triggers are installed.
func (s *Scheduler) entryCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.c.Entries())
}
