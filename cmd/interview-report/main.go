// interview-report prints daily statistics of the interview log.
//
// Usage:
//
//	interview-report [-date 2024-01-15] [-json]
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/joho/godotenv"

	"wine-interviewer/internal/analytics"
	"wine-interviewer/internal/config"
	"wine-interviewer/internal/interview"
	"wine-interviewer/internal/storage"
)

func main() {
	date := flag.String("date", time.Now().Format("2006-01-02"), "day to report (YYYY-MM-DD, local time)")
	asJSON := flag.Bool("json", false, "print JSON instead of text")
	flag.Parse()

	if err := godotenv.Load(".env"); err != nil {
		log.Printf("Warning: .env file not found: %v", err)
	}
	// the report only needs the store settings
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}

	day, err := time.ParseInLocation("2006-01-02", *date, time.Local)
	if err != nil {
		log.Fatalf("invalid -date: %v", err)
	}

	guide := interview.DefaultGuide()
	if cfg.GuidePath != "" {
		if guide, err = interview.LoadGuide(cfg.GuidePath); err != nil {
			log.Fatalf("failed to load guide: %v", err)
		}
	}

	ctx := context.Background()
	var rec storage.Recorder
	if cfg.StoreDriver == config.StoreJSONL {
		rec, err = storage.OpenFileRecorder(cfg.StorePath)
	} else {
		rec, err = storage.OpenSQLiteRecorder(ctx, cfg.StorePath)
	}
	if err != nil {
		log.Fatalf("failed to open store: %v", err)
	}
	defer rec.Close()

	records, err := rec.LoadRecords(ctx)
	if err != nil {
		log.Fatalf("failed to load records: %v", err)
	}

	stats := analytics.AnalyzeDailyLogs(records, day, guide.Opening, guide.Closing)
	if *asJSON {
		out, err := stats.ToJSON()
		if err != nil {
			log.Fatalf("failed to encode stats: %v", err)
		}
		fmt.Println(out)
		return
	}
	fmt.Print(stats.GenerateReportSummary())
}
