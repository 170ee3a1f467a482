package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Vodeneev/dkprops/internal/collector"
	pkgconfig "github.com/Vodeneev/dkprops/internal/pkg/config"
	"github.com/Vodeneev/dkprops/internal/pkg/export"
	"github.com/Vodeneev/dkprops/internal/pkg/health"
	"github.com/Vodeneev/dkprops/internal/pkg/interfaces"
	"github.com/Vodeneev/dkprops/internal/pkg/logging"
	"github.com/Vodeneev/dkprops/internal/pkg/notify"
	"github.com/Vodeneev/dkprops/internal/scraper"

	// Register all supported sources via init().
	_ "github.com/Vodeneev/dkprops/internal/scraper/all"
)

const (
	defaultConfigPath = "configs/production.yaml"
	defaultSource     = "draftkings"
	defaultInterval   = 20 * time.Minute
)

type config struct {
	configPath string
	runFor     time.Duration
	source     string // Override scraper.source from config
	once       bool
	sequential bool
	csvPath    string // Override export.csv_path from config, implies saving
}

func main() {
	if err := run(); err != nil {
		slog.Error("Collector failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	slog.Info("Starting collector...")

	cfg := parseFlags()
	slog.Info("Loading config", "path", cfg.configPath)

	appConfig, err := pkgconfig.Load(cfg.configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	_, err = logging.SetupLogger(&appConfig.Logging, "collector")
	if err != nil {
		slog.Warn("Failed to setup logging, continuing with default logger", "error", err)
	} else {
		slog.Info("Logging initialized", "service", "collector")
	}

	slog.Info("Config loaded successfully")

	source, err := selectSource(cfg, appConfig)
	if err != nil {
		return err
	}
	slog.Info("Using source", "source", source.Name())

	runner := buildRunner(cfg, appConfig, source)

	ctx, cancel := createContext(cfg.runFor)
	defer cancel()
	setupSignalHandler(ctx, cancel)

	port := appConfig.Health.Port
	if port <= 0 {
		slog.Error("health.port must be specified in config")
		os.Exit(1)
	}
	health.Run(ctx, health.AddrFor(port), "collector", appConfig.Health.ReadHeaderTimeout)

	if cfg.once {
		_, err := runner.RunOnce(ctx)
		return err
	}
	return runPeriodic(ctx, runner, appConfig.Collector.Interval)
}

func parseFlags() config {
	var cfg config

	defaultConfig := os.Getenv("CONFIG_PATH")
	if defaultConfig == "" {
		defaultConfig = defaultConfigPath
	}

	flag.StringVar(&cfg.configPath, "config", defaultConfig, "Path to config file (can be set via CONFIG_PATH env var)")
	flag.DurationVar(&cfg.runFor, "run-for", 0, "Auto-stop after duration (e.g. 10s, 1m). 0 = run until SIGINT/SIGTERM")
	flag.StringVar(&cfg.source, "source", "", "Override scraper.source: specify source name (e.g. 'draftkings'). Empty = use config")
	flag.BoolVar(&cfg.once, "once", false, "Run a single gather and exit (non-zero exit code on failure)")
	flag.BoolVar(&cfg.sequential, "sequential", false, "Fetch subcategories one at a time (overrides collector.concurrency)")
	flag.StringVar(&cfg.csvPath, "csv", "", "Write the run table to this CSV path even when export.save_csv is off. Empty = use config")
	flag.Parse()
	return cfg
}

func selectSource(cfg config, appConfig *pkgconfig.Config) (interfaces.Source, error) {
	name := appConfig.Scraper.Source
	if cfg.source != "" {
		name = cfg.source
	}
	if name == "" {
		name = defaultSource
	}
	return scraper.SourceByName(name, appConfig)
}

func buildRunner(cfg config, appConfig *pkgconfig.Config, source interfaces.Source) *collector.Runner {
	if cfg.sequential {
		appConfig.Collector.Concurrency = 1
	}
	if cfg.csvPath != "" {
		appConfig.Export.SaveCSV = true
		appConfig.Export.CSVPath = cfg.csvPath
	}

	c := collector.New(appConfig, source)
	catalog := collector.CatalogFromConfig(appConfig.Collector.Categories)

	sinks := []collector.Sink{export.NewConsolePrinter(appConfig.Export.ConsoleRows)}

	csvPath := ""
	if appConfig.Export.SaveCSV {
		w := export.NewCSVWriter(appConfig.Export.CSVPath)
		sinks = append(sinks, w)
		csvPath = w.Path()
	}

	notifier := notify.NewTelegramNotifier(appConfig.Telegram)

	return collector.NewRunner(c, catalog, sinks, notifier, csvPath)
}

func createContext(runFor time.Duration) (context.Context, context.CancelFunc) {
	if runFor > 0 {
		return context.WithTimeout(context.Background(), runFor)
	}
	return context.WithCancel(context.Background())
}

func setupSignalHandler(ctx context.Context, cancel context.CancelFunc) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		select {
		case sig := <-sigChan:
			slog.Info("Received shutdown signal, stopping collector...", "signal", sig.String())
			cancel()
		case <-ctx.Done():
			// Context already cancelled (timeout or parent cancellation)
			signal.Stop(sigChan)
			close(sigChan)
		}
	}()
}

func runPeriodic(ctx context.Context, runner *collector.Runner, interval time.Duration) error {
	if interval <= 0 {
		interval = defaultInterval
		slog.Info("collector.interval not set, using default", "interval", interval)
	} else {
		slog.Info("Starting periodic collection", "interval", interval)
	}

	// First gather right away, ticks follow. RunOnce logs and reports its
	// own failures; periodic mode keeps running through them.
	_, _ = runner.RunOnce(ctx)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			slog.Info("Collector stopped gracefully")
			return nil
		case <-ticker.C:
			_, _ = runner.RunOnce(ctx)
		}
	}
}
