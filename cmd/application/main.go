package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"github.com/Evgeny1337/seller-apis/config"
	"github.com/Evgeny1337/seller-apis/internal/history"
	"github.com/Evgeny1337/seller-apis/internal/ozon"
	"github.com/Evgeny1337/seller-apis/internal/pipeline"
	"github.com/Evgeny1337/seller-apis/internal/remnants"
	"github.com/Evgeny1337/seller-apis/internal/yandex"
	"github.com/Evgeny1337/seller-apis/metrics"
	"github.com/Evgeny1337/seller-apis/pkg/dbconnect/postgres"
	"github.com/Evgeny1337/seller-apis/pkg/logger"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to the yaml config")
	flag.Parse()

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Printf("skipping .env: %v", err)
	}

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			log.Fatalf("loading config %s: %v", *configPath, err)
		}
		cfg = config.DefaultConfig()
	}

	writer := os.Stdout
	mainLog := logger.NewLogger(writer, "[seller-apis]")
	mainLog.Log("started sync cycle")

	if cfg.MetricsAddr != "" {
		go func() {
			mux := http.NewServeMux()
			mux.Handle("/metrics", metrics.MetricsHandler())
			if err := http.ListenAndServe(cfg.MetricsAddr, mux); err != nil {
				mainLog.Log("metrics server stopped: %v", err)
			}
		}()
	}

	ctx := context.Background()

	loaderOpts := []remnants.Option{}
	if cfg.Remnants.URL != "" {
		loaderOpts = append(loaderOpts, remnants.WithURL(cfg.Remnants.URL))
	}
	if cfg.Remnants.HeaderRow > 0 {
		loaderOpts = append(loaderOpts, remnants.WithHeaderRow(cfg.Remnants.HeaderRow))
	}
	loader := remnants.NewLoader(writer, loaderOpts...)

	snapshot, err := loader.Load(ctx)
	if err != nil {
		log.Fatalf("loading remnants snapshot: %v", err)
	}

	var auditLog *history.Repository
	if cfg.HistoryOn {
		connector := postgres.NewPgConnector(&cfg.Postgres, mainLog.WithPrefix("[pg]"))
		db, err := connector.Connect()
		if err != nil {
			mainLog.Log("history disabled, postgres unavailable: %v", err)
		} else {
			defer db.Close()
			auditLog = history.NewRepository(db, writer)
			if err := auditLog.Migrate(); err != nil {
				mainLog.Log("history disabled, migration failed: %v", err)
				auditLog = nil
			}
		}
	}

	targets := []pipeline.Marketplace{
		ozon.NewClient(cfg.Ozon.ClientID, cfg.Ozon.ApiKey, writer,
			ozon.WithBatchSizes(cfg.Ozon.StockBatchSize, cfg.Ozon.PriceBatchSize)),
		yandex.NewClient("yandex-fbs", cfg.Yandex.FBS.CampaignID, cfg.Yandex.FBS.WarehouseID, cfg.Yandex.Token, writer,
			yandex.WithBatchSizes(cfg.Yandex.StockBatchSize, cfg.Yandex.PriceBatchSize)),
		yandex.NewClient("yandex-dbs", cfg.Yandex.DBS.CampaignID, cfg.Yandex.DBS.WarehouseID, cfg.Yandex.Token, writer,
			yandex.WithBatchSizes(cfg.Yandex.StockBatchSize, cfg.Yandex.PriceBatchSize)),
	}

	sm := &metrics.SyncMetrics{}
	failed := 0

	// Цели обходим последовательно; упавшая цель не мешает следующим.
	for _, target := range targets {
		service := pipeline.NewService(target, sm, writer)
		report, err := service.Run(ctx, snapshot)
		if err != nil {
			failed++
			sm.FailedTargets.Add(1)
			mainLog.Log("%s cycle failed: %v", target.Name(), err)
		} else {
			mainLog.Log("%s: %d stocks (%d non-zero), %d prices, %s",
				report.Marketplace, report.StockRecords, report.NonZeroStocks,
				report.PriceRecords, report.Duration)
		}
		if auditLog != nil {
			if recErr := auditLog.RecordRun(target.Name(), report, err); recErr != nil {
				mainLog.Log("recording history for %s: %v", target.Name(), recErr)
			}
		}
	}

	mainLog.Log("cycle finished: %d records pushed in %d batches, %d target(s) failed",
		sm.StocksPushed.Load()+sm.PricesPushed.Load(), sm.BatchesSubmitted.Load(), failed)
	if failed > 0 {
		os.Exit(1)
	}
}
