package main

import (
	"flag"
	"log"
	"os"
	"path/filepath"

	"go-pos-ledger/internal/export"
	"go-pos-ledger/internal/repository"
	"go-pos-ledger/internal/service"
	"go-pos-ledger/pkg/config"
	"go-pos-ledger/pkg/logger"

	"github.com/araddon/dateparse"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

// export writes the sales ledger for a date range to CSV without starting the server.
func main() {
	start := flag.String("start", "", "first day, inclusive (default: REPORT_DEFAULT_DAYS ago)")
	end := flag.String("end", "", "last day, inclusive (default: today)")
	dir := flag.String("dir", ".", "output directory")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, relying on system env")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	zapLog, err := logger.InitLogger(logger.LogConfig{
		Level:       cfg.LogLevel,
		Environment: cfg.Env,
		ServiceName: "export",
		Filename:    cfg.LogFile,
	})
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer zapLog.Sync()

	stores, err := repository.Open(cfg)
	if err != nil {
		zapLog.Fatal("open stores", zap.Error(err))
	}
	defer stores.Close()

	reports := service.NewReportService(stores.Ledger, cfg.Location, cfg.ReportDefaultDays, cfg.ReportMaxDays, nil)
	from, to := reports.DefaultRange()
	if *start != "" {
		if from, err = dateparse.ParseIn(*start, cfg.Location); err != nil {
			zapLog.Fatal("invalid -start", zap.String("value", *start), zap.Error(err))
		}
	}
	if *end != "" {
		if to, err = dateparse.ParseIn(*end, cfg.Location); err != nil {
			zapLog.Fatal("invalid -end", zap.String("value", *end), zap.Error(err))
		}
	}

	report, err := reports.Summarize(from, to)
	if err != nil {
		zapLog.Fatal("summarize", zap.Error(err))
	}

	path := filepath.Join(*dir, export.FileName(report.Start, report.End))
	f, err := os.Create(path)
	if err != nil {
		zapLog.Fatal("create export file", zap.Error(err))
	}
	defer f.Close()

	if err := export.WriteSalesCSV(f, report.Records, cfg.Location); err != nil {
		zapLog.Fatal("write export", zap.String("path", path), zap.Error(err))
	}
	zapLog.Info("sales exported",
		zap.String("path", path),
		zap.Int("records", len(report.Records)),
		zap.String("revenue", report.TotalRevenue.StringFixed(2)),
	)
}
