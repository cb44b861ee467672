package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"healthlab/domain/chart"
	"healthlab/internal"
	"healthlab/internal/config"
	"healthlab/internal/container"

	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	appConfig, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	logger := internal.NewLogger(internal.ParseLogLevel(appConfig.LogLevel))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	appContainer, err := container.New(appConfig, logger)
	if err != nil {
		log.Fatalf("Failed to create application container: %v", err)
	}

	start := time.Now()
	if err := appContainer.Init(ctx); err != nil {
		log.Fatalf("Failed to initialize container: %v", err)
	}
	logger.Info("Dataset %s loaded in %.2fms (%d rows)", appConfig.Data.File, float64(time.Since(start).Nanoseconds())/1e6, appContainer.Dataset.Len())

	analyzer := appContainer.Analyzer
	if err := analyzer.PrintSimulationReport(ctx, os.Stdout, appConfig.Simulation.Samples, appConfig.Simulation.Seed); err != nil {
		log.Fatalf("Simulation failed: %v", err)
	}

	if !appConfig.Report.Enabled {
		for _, render := range []func(context.Context) error{
			discard(analyzer.BloodPressureHistogram),
			discard(analyzer.WeightBySexBoxplot),
			discard(analyzer.SmokerBarChart),
			discard(analyzer.DiseasePrevalenceChart),
		} {
			if err := render(ctx); err != nil {
				log.Fatalf("Chart rendering failed: %v", err)
			}
		}
		return
	}

	report, err := appContainer.Reports.Generate(ctx, appContainer.ReportOptions())
	if err != nil {
		log.Fatalf("Report generation failed: %v", err)
	}
	logger.Info("Report %s written to %s", report.ID, report.HTMLPath)
}

// discard adapts a chart method to a plain error-returning step
func discard(render func(context.Context) (chart.Figure, chart.Artifact, error)) func(context.Context) error {
	return func(ctx context.Context) error {
		_, _, err := render(ctx)
		return err
	}
}
