package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"TrendBoard/internal/analyzer"
	"TrendBoard/internal/cache"
	"TrendBoard/internal/config"
	"TrendBoard/internal/exchange"
	"TrendBoard/internal/model"
	"TrendBoard/internal/recorder"
	"TrendBoard/internal/scheduler"
	"TrendBoard/internal/server"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("[INFO] TrendBoard starting...")

	// .env first, so it can feed the config overrides below.
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

	// One cache for the process lifetime; the analyzer owns no state of its own.
	seriesCache := cache.New(cfg.SeriesTTL(), cfg.HandleTTL(), cfg.Cache.Capacity, cfg.MinFetchDelay())
	connector := exchange.NewConnector(cfg.Proxy)
	anl := analyzer.New(connector, seriesCache)

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

	runCycle := func() *model.AnalysisReport {
		report := anl.Run(cfg.Portfolio, cfg.Watchlist)
		if err := rec.RecordCycle(report); err != nil {
			log.Printf("[ERROR] record cycle: %v", err)
		}
		return report
	}

	// The manual trigger drops cached data first so the cycle refetches.
	forceRefresh := func() *model.AnalysisReport {
		seriesCache.Clear()
		return runCycle()
	}

	srv := server.New(cfg.Server.Addr, forceRefresh)

	sched := scheduler.NewScheduler(func() {
		srv.SetReport(runCycle())
	})
	if err := sched.Register(cfg.Schedule.RefreshCron); err != nil {
		log.Fatalf("[FATAL] register cron tasks: %v", err)
	}
	sched.Start()
	defer sched.Stop()

	if os.Getenv("RUN_ON_START") == "true" {
		log.Println("[INFO] RUN_ON_START enabled, executing analysis cycle now")
		go sched.RunNow()
	}

	go func() {
		if err := srv.Start(); err != nil {
			log.Fatalf("[FATAL] http server: %v", err)
		}
	}()

	log.Println("[INFO] TrendBoard is running. Press Ctrl+C to stop.")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Println("[INFO] shutdown signal received, stopping...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("[WARN] http shutdown: %v", err)
	}
	log.Println("[INFO] TrendBoard stopped")
}
