package app

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/AkhmedovBotir/truckbot/internal/broadcast"
	"github.com/AkhmedovBotir/truckbot/internal/config"
	"github.com/AkhmedovBotir/truckbot/internal/rates"
	"github.com/AkhmedovBotir/truckbot/internal/scheduler"
	"github.com/AkhmedovBotir/truckbot/internal/store"
	"github.com/AkhmedovBotir/truckbot/internal/telegram"
)

// App owns every long-lived dependency. All components receive their
// collaborators explicitly at construction; nothing is ambient.
type App struct {
	cfg     config.Config
	log     *zap.Logger
	bot     *tgbotapi.BotAPI
	httpSrv *http.Server
	repo    *store.SQLiteStore
	sched   *scheduler.Scheduler
	router  *telegram.Router
}

func New(cfg config.Config, log *zap.Logger) (*App, error) {
	bot, err := tgbotapi.NewBotAPI(cfg.BotToken)
	if err != nil {
		return nil, err
	}
	bot.Debug = false

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) })
	srv := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      mux,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	}

	return &App{cfg: cfg, log: log, bot: bot, httpSrv: srv}, nil
}

func (a *App) Run(ctx context.Context) error {
	a.log.Info("starting truckbot",
		zap.String("bot", a.bot.Self.UserName),
		zap.String("http", a.cfg.HTTPAddr),
	)

	repo, err := store.OpenSQLite(ctx, a.cfg.DBPath)
	if err != nil {
		a.log.Error("open sqlite failed", zap.Error(err))
		return err
	}
	a.repo = repo
	a.log.Info("sqlite ready", zap.String("path", a.cfg.DBPath))

	ratesClient := rates.New(a.cfg.RatesURL, a.log)
	engine := broadcast.NewEngine(repo, repo, ratesClient, telegram.NewSender(a.bot), a.log, broadcast.Options{
		Workers:   a.cfg.SendWorkers,
		PerSecond: a.cfg.SendPerSec,
	})
	a.sched = scheduler.New(repo, engine, a.log)
	a.router = telegram.NewRouter(a.bot, a.log, a.cfg, repo, ratesClient, engine, a.sched)

	// Arm the daily trigger from persisted settings before the timer
	// loop starts; a malformed stored time just leaves it disarmed.
	if err := a.sched.UpdateSchedule(ctx); err != nil {
		a.log.Warn("initial schedule not installed", zap.Error(err))
	}
	a.sched.Start()

	go func() {
		if err := a.httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.log.Error("http server error", zap.Error(err))
		}
	}()

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 30
	updCh := a.bot.GetUpdatesChan(u)

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	for {
		select {
		case <-ctx.Done():
			a.log.Info("shutdown signal received")
			a.shutdown()
			return nil
		case upd := <-updCh:
			a.router.HandleUpdate(ctx, upd)
		}
	}
}

func (a *App) shutdown() {
	// Stop future fires; an in-flight broadcast runs to completion.
	a.sched.Stop()

	shCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	err := a.httpSrv.Shutdown(shCtx)
	cancel()
	if err != nil {
		a.log.Warn("http server shutdown error", zap.Error(err))
	}

	if a.repo != nil {
		_ = a.repo.Close()
	}
}
