package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"stockwatch/internal/autostart"
	"stockwatch/internal/config"
	"stockwatch/internal/fetcher"
	"stockwatch/internal/notifier"
	"stockwatch/internal/pipeline"
	"stockwatch/internal/recorder"
	"stockwatch/internal/render"
	"stockwatch/internal/scheduler"
	"stockwatch/internal/settings"
)

const appName = "stockwatch"

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("[INFO] stockwatch starting...")

	_ = godotenv.Load()

	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("[FATAL] load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("[FATAL] config validation: %v", err)
	}
	mgr := settings.NewManager(cfg)

	// Init price source
	var src fetcher.Source
	if os.Getenv("MOCK_SOURCE") == "true" {
		src = &fetcher.MockSource{Price: 70000}
	} else {
		src = fetcher.NewNaverSource(cfg.Proxy)
	}
	log.Printf("[INFO] price source: %s", src.Name())

	// Init notifiers
	channels := []notifier.Notifier{notifier.NewDesktopNotifier(appName)}
	if cfg.Telegram.BotToken != "" && cfg.Telegram.ChatID != "" {
		channels = append(channels, notifier.NewTelegramNotifier(cfg.Telegram.BotToken, cfg.Telegram.ChatID, cfg.Proxy))
	}
	notify := notifier.NewMultiNotifier(channels...)

	// Init recorder
	var rec recorder.Recorder
	if cfg.Database.SQLitePath != "" {
		sr, err := recorder.NewSQLiteRecorder(cfg.Database.SQLitePath)
		if err != nil {
			log.Printf("[WARN] init sqlite recorder failed, using noop: %v", err)
			rec = recorder.NewNoopRecorder()
		} else {
			rec = sr
			defer sr.Close()
		}
	} else {
		rec = recorder.NewNoopRecorder()
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pipe := pipeline.New(cfg, src, notify, rec)
	pipe.SetRenderer(&render.FileRenderer{
		ChartPath: cfg.Chart.Path,
		Symbol:    cfg.Symbol,
		Periods:   cfg.Periods,
	})

	// Seed the series file with historical closes when absent.
	if err := pipe.Backfill(ctx); err != nil {
		log.Printf("[ERROR] backfill: %v", err)
	}

	sched := scheduler.NewScheduler(func() {
		if err := pipe.Run(ctx); err != nil {
			log.Printf("[ERROR] scheduled update failed: %v", err)
		}
	})
	sched.Reschedule(cfg.NotifyTimes)
	sched.Start()
	defer sched.Stop()

	applyAutostart(cfg)

	if os.Getenv("RUN_ON_START") == "true" {
		log.Println("[INFO] RUN_ON_START enabled, executing update now")
		go func() {
			if err := pipe.Run(ctx); err != nil {
				log.Printf("[ERROR] initial update failed: %v", err)
			}
		}()
	}

	log.Println("[INFO] stockwatch is running. SIGHUP reloads settings, Ctrl+C stops.")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)

	for sig := range sigCh {
		if sig != syscall.SIGHUP {
			break
		}
		reload(cfgPath, mgr, pipe, sched)
	}

	log.Println("[INFO] shutdown signal received, stopping...")
	cancel()
	log.Println("[INFO] stockwatch stopped")
}

// reload runs the settings-change workflow: load the file, validate,
// and on success swap the confirmed config into the pipeline and
// scheduler. A rejected proposal leaves the last-applied settings in
// force.
func reload(cfgPath string, mgr *settings.Manager, pipe *pipeline.Pipeline, sched *scheduler.Scheduler) {
	log.Println("[INFO] SIGHUP received, reloading settings")
	candidate, err := config.Load(cfgPath)
	if err != nil {
		log.Printf("[ERROR] reload config: %v", err)
		return
	}
	if err := mgr.Propose(candidate); err != nil {
		log.Printf("[ERROR] settings rejected, keeping previous: %v", err)
		return
	}
	applied, err := mgr.Apply()
	if err != nil {
		log.Printf("[ERROR] apply settings: %v", err)
		return
	}

	pipe.Reconfigure(applied)
	pipe.SetRenderer(&render.FileRenderer{
		ChartPath: applied.Chart.Path,
		Symbol:    applied.Symbol,
		Periods:   applied.Periods,
	})
	sched.Reschedule(applied.NotifyTimes)
	applyAutostart(applied)
	log.Println("[INFO] settings reload complete")
}

func applyAutostart(cfg *config.Config) {
	exe, err := os.Executable()
	if err != nil {
		log.Printf("[WARN] resolve executable path: %v", err)
		return
	}
	if err := autostart.Apply(autostart.New(), appName, exe, cfg.RunAtStartup); err != nil {
		log.Printf("[WARN] autostart registration: %v", err)
	}
}
