package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"energyreport/internal/config"
	"energyreport/internal/exporter"
	"energyreport/internal/files"
	"energyreport/internal/infrastructure"
	"energyreport/internal/services"
	"energyreport/pkg/contracts"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// run generates one report and returns the process exit code: 0 on success,
// 1 when generation fails and 2 for bad flags.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("reportgen", flag.ContinueOnError)
	fs.SetOutput(stderr)

	configFile := fs.String("config", "", "YAML config file (defaults to config.yaml or configs/config.yaml when present)")
	varsPath := fs.String("vars", "", "variable sheet, .csv/.tsv or .xlsx (overrides MAIN_CSV)")
	chartPath := fs.String("chart", "", "chart sheet, .csv/.tsv or .xlsx (overrides CHART_CSV)")
	templatePath := fs.String("template", "", "HTML template (overrides TEMPLATE_PATH)")
	outDir := fs.String("out", "", "output directory (overrides OUTPUT_DIR)")
	pdf := fs.Bool("pdf", false, "also render <name>.pdf with headless Chrome")
	dump := fs.Bool("dump", false, "also write <name>.placeholders.csv")
	version := fs.Bool("version", false, "print version information and exit")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	if *version {
		fmt.Fprintln(stdout, contracts.GetFullVersionString())
		return 0
	}

	cfg, err := loadConfig(*configFile)
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}

	// Explicit flags win over configuration, including -pdf=false.
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "vars":
			cfg.Report.VariablesPath = *varsPath
		case "chart":
			cfg.Report.ChartPath = *chartPath
		case "template":
			cfg.Report.TemplatePath = *templatePath
		case "out":
			cfg.Report.OutputDir = *outDir
		case "pdf":
			cfg.Report.PDF = *pdf
		case "dump":
			cfg.Report.DumpPlaceholders = *dump
		}
	})

	logger := infrastructure.NewLogger(stderr, &slog.HandlerOptions{
		Level: infrastructure.ParseLogLevel(cfg.Logging.Level),
	})

	path, err := generate(ctx, cfg, logger)
	if err != nil {
		infrastructure.WithError(logger, err).ErrorContext(ctx, "report generation failed")
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}

	fmt.Fprintf(stdout, "Report written to %s\n", path)
	return 0
}

func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadFrom(path)
	}
	return config.Load()
}

// generate runs one report to disk and returns the HTML path.
func generate(ctx context.Context, cfg *config.Config, logger *slog.Logger) (string, error) {
	// A one-shot run has no scrape endpoint.
	telemetry := cfg.Telemetry
	telemetry.MetricsExporter = "none"
	providers, err := infrastructure.InitializeOTel(telemetry, logger)
	if err != nil {
		return "", fmt.Errorf("initialize telemetry: %w", err)
	}
	defer func() {
		if err := providers.Shutdown(context.WithoutCancel(ctx)); err != nil {
			logger.WarnContext(ctx, "telemetry shutdown failed", slog.String("error", err.Error()))
		}
	}()

	svcCfg := services.ReportServiceConfig{
		Loader:     files.NewLoader(files.NewManager(""), logger),
		OutputDir:  cfg.Report.OutputDir,
		Disclaimer: cfg.Report.Disclaimer,
		Surface:    services.SurfaceCLI,
		Tracer:     providers.Tracer,
		Logger:     logger,
	}
	if cfg.Report.PDF {
		svcCfg.PDF = exporter.NewPDFRenderer(cfg.Report.PDFTimeout, logger)
	}
	svc := services.NewReportService(svcCfg)

	logger.InfoContext(ctx, "generating report",
		slog.String("variables", cfg.Report.VariablesPath),
		slog.String("chart", cfg.Report.ChartPath),
		slog.String("template", cfg.Report.TemplatePath),
		slog.String("output_dir", cfg.Report.OutputDir),
		slog.Bool("pdf", cfg.Report.PDF),
		slog.Bool("dump", cfg.Report.DumpPlaceholders),
	)

	result, err := svc.GenerateToDisk(ctx, files.InputPaths{
		Variables: cfg.Report.VariablesPath,
		Chart:     cfg.Report.ChartPath,
		Template:  cfg.Report.TemplatePath,
	}, services.WriteOptions{
		PDF:              cfg.Report.PDF,
		DumpPlaceholders: cfg.Report.DumpPlaceholders,
	})
	if err != nil {
		return "", err
	}
	return result.HTMLPath, nil
}
