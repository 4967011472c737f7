package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/iwvelando/deal-viability/internal/config"
	"github.com/iwvelando/deal-viability/internal/deal"
	"github.com/iwvelando/deal-viability/internal/logging"
	"github.com/iwvelando/deal-viability/internal/optimizer"
	"github.com/iwvelando/deal-viability/internal/rental"
	"github.com/iwvelando/deal-viability/internal/viability"
	"github.com/iwvelando/deal-viability/pkg/constants"
	"github.com/iwvelando/deal-viability/pkg/output"
	"github.com/iwvelando/deal-viability/pkg/validation"
	"go.uber.org/zap"
)

func main() {
	// Process command line flags first to get config location
	configLocation := flag.String("config", constants.DefaultConfigFile, "path to configuration file")
	outputFormatFlag := flag.String("output-format", "", "type of output override: pretty, csv, json")
	logLevel := flag.String("log-level", "", "log level override (debug, info, warn, error)")
	flag.Parse()

	// Load the config file to get logging configuration
	conf, err := config.LoadConfiguration(*configLocation)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to load configuration at %s\", \"error\": \"%v\"}\n", *configLocation, err)
		os.Exit(1)
	}

	// Initialize logging based on config and CLI override
	logger, err := logging.NewLogger(conf.Logging, *logLevel)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to initialize logger\", \"error\": \"%v\"}\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = logger.Sync()
	}()

	// Determine output format (CLI override takes precedence over config)
	outputFormat := conf.Output.Format
	if *outputFormatFlag != "" {
		outputFormat = *outputFormatFlag
	}
	if outputFormat == "" {
		outputFormat = constants.OutputFormatPretty
	}

	if err := validation.ValidateOutputFormat(outputFormat); err != nil {
		logger.Fatal(err.Error(),
			zap.String("op", "main"),
		)
	}

	// Validate configuration and display any warnings
	for _, warning := range conf.ValidateConfiguration() {
		logger.Warn("Configuration warning: "+warning,
			zap.String("op", "main"),
		)
	}

	inputs := make([]deal.ProjectInput, 0, len(conf.Deals))
	for _, d := range conf.Deals {
		input, err := d.ToProjectInput()
		if err != nil {
			logger.Fatal("invalid deal",
				zap.String("op", "main"),
				zap.Error(err),
			)
		}
		inputs = append(inputs, input)
	}

	engine := viability.NewEngine(logger)
	results, err := engine.EvaluateAll(context.Background(), inputs, constants.DefaultBatchConcurrency)
	if err != nil {
		logger.Fatal("failed to evaluate deals",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}

	rentals := make([]output.RentalReport, 0, len(conf.Rentals))
	for i, rc := range conf.Rentals {
		input, err := rc.ToRentalInput()
		if err != nil {
			logger.Fatal("invalid rental case",
				zap.String("op", "main"),
				zap.Error(err),
			)
		}
		metrics, err := rental.Analyze(input)
		if err != nil {
			logger.Warn("skipping rental case",
				zap.String("op", "main"),
				zap.String("rental", rc.DisplayName(i)),
				zap.Error(err),
			)
			continue
		}
		rentals = append(rentals, output.RentalReport{Name: rc.DisplayName(i), Metrics: metrics})
	}

	optimizations, err := optimizer.NewRunner(logger).RunDeals(conf.Deals, inputs)
	if err != nil {
		logger.Fatal("failed to run optimizer",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}

	logger.Debug("evaluation complete",
		zap.String("op", "main"),
		zap.Int("deals", len(results)),
		zap.Int("rentals", len(rentals)),
		zap.Int("optimizations", len(optimizations)),
	)

	// Handle output.
	report := output.Report{Deals: results, Rentals: rentals, Optimizations: optimizations}
	if err := output.Write(os.Stdout, outputFormat, report); err != nil {
		logger.Fatal("failed to write output",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}
}
