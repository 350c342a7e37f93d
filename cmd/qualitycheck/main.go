package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"datalens/internal/cleaning"
	"datalens/internal/config"
	"datalens/internal/dataset"
	"datalens/internal/exporter"
	"datalens/internal/infrastructure"
	"datalens/internal/quality"
)

func main() {
	in := flag.String("in", "", "input csv file (required)")
	out := flag.String("out", "", "write the cleaned dataset to this csv file")
	clean := flag.Bool("clean", false, "run the cleaning pipeline before assessing")
	asJSON := flag.Bool("json", false, "print the quality report as JSON")
	flag.Parse()

	if *in == "" {
		fmt.Fprintln(os.Stderr, "usage: qualitycheck -in data.csv [-clean] [-out cleaned.csv] [-json]")
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Warn("Failed to load config, using defaults", "error", err)
		defaults := config.Default()
		cfg = &defaults
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		logger = slog.Default()
	}
	defer infrastructure.CloseLogFile()

	file, err := os.Open(*in)
	if err != nil {
		logger.Error("Failed to open input file", "path", *in, "error", err)
		os.Exit(1)
	}
	defer file.Close()

	ds, err := dataset.FromCSV(file)
	if err != nil {
		logger.Error("Failed to parse csv", "path", *in, "error", err)
		os.Exit(1)
	}
	logger.Info("dataset loaded",
		slog.String("path", *in),
		slog.Int("rows", ds.Len()),
		slog.Int("columns", len(ds.Columns)))

	if *clean {
		result := cleaning.NewCleaner(cfg.Cleaning).Clean(ds)
		ds = result.Data
		for _, line := range result.Report {
			fmt.Println(line)
		}
		if *out != "" {
			if err := writeCSV(cfg, *out, ds); err != nil {
				logger.Error("Failed to write cleaned csv", "path", *out, "error", err)
				os.Exit(1)
			}
			logger.Info("cleaned dataset written", slog.String("path", *out))
		}
	}

	report := quality.NewAssessor(cfg.Quality).Assess(ds)
	printReport(report, *asJSON)

	if report.Status == quality.StatusRed {
		os.Exit(1)
	}
}

func writeCSV(cfg *config.Config, path string, ds *dataset.Dataset) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return exporter.NewDelimited(cfg.Export).Write(file, ds)
}

func printReport(report quality.Report, asJSON bool) {
	if asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(report)
		return
	}

	fmt.Printf("Quality: %s (score %d)\n", report.Status, report.Score)
	for _, check := range report.Checks {
		fmt.Printf("  [%s] %s: %s\n", check.Status, check.Name, check.Message)
	}
}
