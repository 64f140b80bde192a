package main

import (
	"fmt"
	"os"
	"time"

	"github.com/Xaaaaii7/lliga-sub001/internal/logger"
	"github.com/Xaaaaii7/lliga-sub001/pkg/util/curio"
)

func main() {
	// Configure logging
	logger.SetShowDateTime(true)

	logger.Info("Starting github.com/Xaaaaii7/lliga-sub001 application")

	if err := curio.ValidateConfig(curio.Config); err != nil {
		logger.Error("Invalid configuration:", err)
		os.Exit(1)
	}

	// Log command line arguments
	if len(os.Args) > 1 {
		logger.Info("Command line arguments received:", len(os.Args)-1)
		for i, arg := range os.Args[1:] {
			logger.Debug(fmt.Sprintf("Argument %d:", i+1), arg)
		}

		switch os.Args[1] {
		case "import":
			// optional season argument, "import 2024-25"
			if len(os.Args) > 2 {
				season, err := curio.ParseSeason(os.Args[2])
				if err != nil {
					logger.Error("Invalid season argument:", err)
					os.Exit(1)
				}
				curio.SetCurrentSeason(season)
			}
			logger.Info("Starting results import for season", curio.GetCurrentSeason())
			if err := curio.GetResultsImporter().Update(); err != nil {
				logger.Error("Import failed:", err)
				os.Exit(1)
			}
			logger.Info("Results import completed successfully")
			return
		case "metric":
			// evaluate a single catalog metric, "metric player_top_scorer"
			if len(os.Args) < 3 {
				logger.Error("Usage: metric <kind>")
				os.Exit(1)
			}
			if err := runSingleMetric(os.Args[2]); err != nil {
				logger.Error("Metric run failed:", err)
				os.Exit(1)
			}
			return
		}
	} else {
		logger.Info("No command line arguments provided")
	}

	// Run the daily curiosity job against the configured scope
	ds, err := curio.GetSqliteDatasource()
	if err != nil {
		logger.Error("Could not open datasource:", err)
		os.Exit(1)
	}

	scope := curio.DefaultScope()
	today := time.Now()
	result, err := curio.RunAndPersist(ds, scope, today)
	if err != nil {
		logger.Error("Curiosity run failed:", err)
		os.Exit(1)
	}

	if daily := curio.PickDailyFinding(result, today); daily != nil {
		logger.Info("Curiosity of the day:", daily.Title)
		logger.Info(daily.Description)
	} else {
		logger.Warn("No curiosity available for today")
	}
}

// runSingleMetric evaluates one metric by its catalog kind and prints the
// finding without persisting it
func runSingleMetric(kind string) error {
	metric := curio.MetricByKind(kind)
	if metric == nil {
		return fmt.Errorf("unknown metric kind: %s", kind)
	}

	ds, err := curio.GetSqliteDatasource()
	if err != nil {
		return fmt.Errorf("could not open datasource: %w", err)
	}

	cand, err := metric.Evaluate(ds, curio.DefaultScope())
	if err != nil {
		return err
	}
	if cand == nil {
		logger.Warn("No eligible candidate for", kind)
		return nil
	}

	finding := curio.FormatFinding(metric, cand, curio.DefaultScope(), time.Now())
	logger.Info(finding.Title)
	logger.Info(finding.Description)
	return nil
}
