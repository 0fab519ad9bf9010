package main

import (
	"context"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/gofrs/flock"
	"github.com/joho/godotenv"

	"remotejobs-engine/internal/alerts"
	"remotejobs-engine/internal/config"
	"remotejobs-engine/internal/events"
	"remotejobs-engine/internal/httpapi"
	"remotejobs-engine/internal/mailer"
	"remotejobs-engine/internal/scheduler"
	"remotejobs-engine/internal/secrets"
	"remotejobs-engine/internal/store"
)

func main() {
	// .env is optional; real env vars win either way.
	_ = godotenv.Load()

	dataDir := os.Getenv("REMOTEJOBS_DATA_DIR")
	if dataDir == "" {
		dataDir = "."
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		log.Fatal(err)
	}

	defaultCfgPath := filepath.Join("config", "config.yml")
	userCfgPath, err := config.EnsureUserConfig(dataDir, defaultCfgPath)
	if err != nil {
		log.Fatalf("config bootstrap failed: %v", err)
	}

	var cfgVal atomic.Value // stores config.Config
	loadCfg := func() (config.Config, error) {
		return config.Load(userCfgPath)
	}
	cfg, err := loadCfg()
	if err != nil {
		log.Fatalf("config load failed (%s): %v", userCfgPath, err)
	}
	cfg, vr := config.NormalizeAndValidate(cfg)
	for _, warn := range vr.Warnings {
		log.Printf("[config] warning: %s", warn)
	}
	if !vr.OK() {
		log.Fatalf("config invalid: %v", vr.Errors)
	}
	cfgVal.Store(cfg)

	db, err := store.Open(filepath.Join(dataDir, "board.db"))
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	if err := store.Migrate(db.Pool); err != nil {
		log.Fatal(err)
	}

	hub := events.NewHub()

	engine := alerts.Engine{
		RecentListings: func(ctx context.Context, since time.Time) ([]store.Listing, error) {
			return store.ListingsPostedAfter(ctx, db.Pool, since)
		},
		ActiveSubscriptions: func(ctx context.Context) ([]store.Subscription, error) {
			return store.ActiveSubscriptions(ctx, db.Pool)
		},
		Dispatcher: alerts.Dispatcher{
			Sender:    newSender(&cfgVal),
			SendDelay: time.Duration(cfg.Alerts.SendDelayMS) * time.Millisecond,
			MaxTitles: cfg.Alerts.MaxTitles,
		},
		Window: time.Duration(cfg.Alerts.WindowHours) * time.Hour,
	}

	// One digest run at a time: the cron tick and a manual /alerts/run
	// trigger must not overlap.
	runLock := flock.New(filepath.Join(dataDir, "alerts.lock"))
	runAlerts := func(ctx context.Context) (int, error) {
		locked, err := runLock.TryLock()
		if err != nil {
			return 0, err
		}
		if !locked {
			return 0, httpapi.ErrRunInProgress
		}
		defer func() { _ = runLock.Unlock() }()

		sent, err := engine.Run(ctx)
		if err == nil && sent > 0 {
			hub.Publish(events.MakeEvent("", events.TypeDigestCompleted, 1, map[string]any{"sent": sent}))
		}
		return sent, err
	}

	sched := scheduler.New()
	interval := time.Duration(cfg.Alerts.IntervalHours) * time.Hour
	err = sched.Every(context.Background(), interval, "alerts", func(ctx context.Context) error {
		sent, err := runAlerts(ctx)
		if err != nil {
			return err
		}
		log.Printf("[alerts] scheduled run done sent=%d", sent)
		return nil
	})
	if err != nil {
		log.Fatal(err)
	}
	sched.Start()
	defer sched.Stop()

	mux := httpapi.NewMux(httpapi.Deps{
		DB:            db.Pool,
		Hub:           hub,
		CfgVal:        &cfgVal,
		UserCfgPath:   userCfgPath,
		LoadCfg:       loadCfg,
		RunAlerts:     runAlerts,
		NotifyListing: engine.NotifyListing,
	})

	handler := httpapi.Chain(mux,
		httpapi.RequestID,
		httpapi.AccessLog,
		httpapi.Recover,
		httpapi.Cors,
	)

	addr := fmt.Sprintf(":%d", cfg.App.Port)
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		log.Fatal(err)
	}
	log.Printf("engine listening on %s (data=%s)", ln.Addr(), dataDir)

	srv := &http.Server{
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}
	log.Fatal(srv.Serve(ln))
}

// newSender rebuilds the SMTP sender from the live config on every send, so a
// config update applies without a restart.
func newSender(cfgVal *atomic.Value) alerts.Sender {
	return senderFunc(func(ctx context.Context, to, subject, htmlBody string) error {
		cfg := cfgVal.Load().(config.Config)
		if !cfg.SMTP.Enabled {
			log.Printf("[mailer] smtp disabled; dropping mail to=%s subject=%q", to, subject)
			return nil
		}
		pw, err := secrets.GetSMTPPassword(secrets.SMTPKeyringAccount(cfg))
		if err != nil {
			return err
		}
		s := mailer.SMTPSender{
			Host:     cfg.SMTP.Host,
			Port:     cfg.SMTP.Port,
			Username: cfg.SMTP.Username,
			Password: pw,
			From:     cfg.SMTP.From,
		}
		return s.Send(ctx, to, subject, htmlBody)
	})
}

type senderFunc func(ctx context.Context, to, subject, htmlBody string) error

func (f senderFunc) Send(ctx context.Context, to, subject, htmlBody string) error {
	return f(ctx, to, subject, htmlBody)
}
