// Package broadcast runs one broadcast cycle: load settings, fetch the
// selected rates, format a single message and fan it out to every
// registered user and configured channel.
package broadcast

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/AkhmedovBotir/truckbot/internal/domain"
	"github.com/AkhmedovBotir/truckbot/internal/format"
	"github.com/AkhmedovBotir/truckbot/internal/store"
)

// RateSource resolves one currency code for a date. Not-found is a
// normal outcome, not an error.
type RateSource interface {
	FetchByCode(ctx context.Context, code string, date time.Time) (domain.Rate, bool)
}

// Options tunes the fan-out. Zero values fall back to defaults.
type Options struct {
	Workers      int           // concurrent deliveries (default 4)
	PerSecond    int           // outbound rate limit (default 20)
	SendTimeout  time.Duration // per-recipient timeout (default 10s)
	CycleTimeout time.Duration // bound on a whole cycle (default 2m)
}

// Engine orchestrates broadcast cycles. The scheduler's trigger and the
// admin test-send action both call RunCycle; there is no separate test
// path.
type Engine struct {
	settings store.SettingsStore
	users    store.UserDirectory
	rates    RateSource
	delivery Delivery
	log      *zap.Logger

	limiter      *rate.Limiter
	workers      int
	sendTimeout  time.Duration
	cycleTimeout time.Duration

	now func() time.Time // swapped in tests
}

// NewEngine wires a broadcast engine.
func NewEngine(settings store.SettingsStore, users store.UserDirectory, src RateSource, delivery Delivery, log *zap.Logger, opt Options) *Engine {
	if opt.Workers <= 0 {
		opt.Workers = 4
	}
	if opt.PerSecond <= 0 {
		opt.PerSecond = 20
	}
	if opt.SendTimeout <= 0 {
		opt.SendTimeout = 10 * time.Second
	}
	if opt.CycleTimeout <= 0 {
		opt.CycleTimeout = 2 * time.Minute
	}
	return &Engine{
		settings:     settings,
		users:        users,
		rates:        src,
		delivery:     delivery,
		log:          log,
		limiter:      rate.NewLimiter(rate.Limit(opt.PerSecond), opt.PerSecond),
		workers:      opt.Workers,
		sendTimeout:  opt.SendTimeout,
		cycleTimeout: opt.CycleTimeout,
		now:          time.Now,
	}
}

// result is the per-recipient delivery outcome, kept for the summary
// log. The external contract stays log-only.
type result struct {
	to  Recipient
	err error
}

// RunCycle performs one full broadcast cycle. A non-nil error means the
// cycle could not run at all (settings or directory unreadable);
// partial per-recipient failures are logged and never surfaced.
func (e *Engine) RunCycle(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, e.cycleTimeout)
	defer cancel()

	cfg, err := e.settings.Settings(ctx)
	if err != nil {
		e.log.Error("broadcast: settings unreadable", zap.Error(err))
		return err
	}
	if len(cfg.SelectedCurrencies) == 0 {
		e.log.Info("broadcast: no currencies selected, nothing to send")
		return nil
	}

	today := e.now()
	resolved := make([]domain.Rate, 0, len(cfg.SelectedCurrencies))
	for _, code := range cfg.SelectedCurrencies {
		r, ok := e.rates.FetchByCode(ctx, code, today)
		if !ok {
			e.log.Warn("broadcast: currency not found, skipped", zap.String("code", code))
			continue
		}
		resolved = append(resolved, r)
	}
	if len(resolved) == 0 {
		e.log.Info("broadcast: no rate data available, nothing to send")
		return nil
	}

	text := format.Broadcast(resolved, today)

	users, err := e.users.ListUsers(ctx)
	if err != nil {
		e.log.Error("broadcast: user list unreadable", zap.Error(err))
		return err
	}

	recipients := make([]Recipient, 0, len(users)+len(cfg.Channels))
	for _, u := range users {
		recipients = append(recipients, UserRecipient(u.UserID))
	}
	for _, ch := range cfg.ActiveChannels() {
		recipients = append(recipients, ChannelRecipient(ch))
	}
	if len(recipients) == 0 {
		e.log.Info("broadcast: no recipients")
		return nil
	}

	start := time.Now()
	results := e.fanOut(ctx, recipients, text)

	var failed []string
	for _, r := range results {
		if r.err != nil {
			failed = append(failed, r.to.String())
		}
	}
	fields := []zap.Field{
		zap.Int("total", len(results)),
		zap.Int("failed", len(failed)),
		zap.Int("currencies", len(resolved)),
		zap.Duration("dur", time.Since(start)),
	}
	if len(failed) > 0 {
		e.log.Warn("broadcast cycle finished with failures", append(fields, zap.Strings("failed_recipients", failed))...)
	} else {
		e.log.Info("broadcast cycle finished", fields...)
	}
	return nil
}

// fanOut delivers text to every recipient through a bounded worker
// pool. Each delivery is independent: a failure is recorded and logged,
// never retried, and never stops the rest.
func (e *Engine) fanOut(ctx context.Context, recipients []Recipient, text string) []result {
	results := make([]result, len(recipients))
	jobs := make(chan int)

	var wg sync.WaitGroup
	for w := 0; w < e.workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				results[i] = result{to: recipients[i], err: e.sendOne(ctx, recipients[i], text)}
			}
		}()
	}
	for i := range recipients {
		jobs <- i
	}
	close(jobs)
	wg.Wait()
	return results
}

func (e *Engine) sendOne(ctx context.Context, to Recipient, text string) error {
	if err := e.limiter.Wait(ctx); err != nil {
		return err
	}
	sendCtx, cancel := context.WithTimeout(ctx, e.sendTimeout)
	defer cancel()

	if err := e.delivery.Send(sendCtx, to, text); err != nil {
		e.log.Warn("broadcast send failed", zap.String("recipient", to.String()), zap.Error(err))
		return err
	}
	return nil
}
