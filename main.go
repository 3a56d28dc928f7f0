package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"casino-collector/config"
	"casino-collector/models"
	"casino-collector/scraper"
	"casino-collector/scraper/browser"
	"casino-collector/scraper/generic"
	"casino-collector/services"
	"casino-collector/storage"
	"casino-collector/utils"
)

type collectFlags struct {
	url        string
	file       string
	list       string
	output     string
	useBrowser bool
	noJSON     bool
	noCSV      bool
	noSummary  bool
	delayMin   float64
	delayMax   float64
	logLevel   string
	logFile    string
	postgres   bool
}

func main() {
	cfg := config.Load()

	root := &cobra.Command{
		Use:   "casino-collector",
		Short: "Gather structured data about online casinos",
		Long: "Casino Intelligence Collector — an end-to-end system for gathering\n" +
			"structured data about online casinos: licensing, RTP, fairness,\n" +
			"providers, security, withdrawal methods and reviews.",
		SilenceUsage: true,
	}

	root.AddCommand(
		newCollectCmd(cfg),
		newReportCmd(cfg),
		newExportCmd(cfg),
		newDemoCmd(cfg),
	)

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func newCollectCmd(cfg *config.Config) *cobra.Command {
	flags := &collectFlags{}

	cmd := &cobra.Command{
		Use:   "collect",
		Short: "Scrape one or more casino sites and export the results",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCollect(cfg, flags)
		},
	}

	cmd.Flags().StringVarP(&flags.url, "url", "u", "", "single casino URL to scrape")
	cmd.Flags().StringVarP(&flags.file, "file", "f", "", "file containing casino URLs (one per line, or mixed with text)")
	cmd.Flags().StringVarP(&flags.list, "list", "l", "", "multi-line list of casino URLs (paste directly)")
	cmd.Flags().StringVarP(&flags.output, "output", "o", cfg.OutputDir, "output directory for results")
	cmd.Flags().BoolVar(&flags.useBrowser, "browser", false, "render pages in a headless browser (for JS-heavy sites)")
	cmd.Flags().BoolVar(&flags.noJSON, "no-json", false, "skip JSON output")
	cmd.Flags().BoolVar(&flags.noCSV, "no-csv", false, "skip CSV output")
	cmd.Flags().BoolVar(&flags.noSummary, "no-summary", false, "skip summary report generation")
	cmd.Flags().Float64Var(&flags.delayMin, "delay-min", cfg.DelayMin.Seconds(), "minimum delay between requests in seconds")
	cmd.Flags().Float64Var(&flags.delayMax, "delay-max", cfg.DelayMax.Seconds(), "maximum delay between requests in seconds")
	cmd.Flags().StringVar(&flags.logLevel, "log-level", cfg.LogLevel, "logging level (DEBUG, INFO, WARN, ERROR)")
	cmd.Flags().StringVar(&flags.logFile, "log-file", cfg.LogFile, "path to log file")
	cmd.Flags().BoolVar(&flags.postgres, "postgres", cfg.PostgresEnabled, "also store results in PostgreSQL")

	return cmd
}

func runCollect(cfg *config.Config, flags *collectFlags) error {
	logger, err := utils.NewLoggerWith(utils.ParseLevel(flags.logLevel), flags.logFile)
	if err != nil {
		return err
	}
	defer logger.Close()

	urls, err := gatherURLs(flags, logger)
	if err != nil {
		return err
	}
	if len(urls) == 0 {
		return fmt.Errorf("no valid URLs to scrape")
	}

	logger.Info("=== Casino Intelligence Collector starting ===")
	logger.Info("Config — URLs: %d | delay: %.1fs-%.1fs | concurrency: %d | retries: %d | output: %s",
		len(urls), flags.delayMin, flags.delayMax, cfg.MaxConcurrency, cfg.MaxRetries, flags.output)

	var casinoScraper scraper.CasinoScraper
	if flags.useBrowser {
		casinoScraper = browser.New(logger, cfg.ChromeBin, cfg.UserAgent, cfg.MaxRetries)
	} else {
		casinoScraper = generic.New(logger, cfg.UserAgent, cfg.RequestTimeout, cfg.MaxRetries)
	}

	pool := utils.NewWorkerPool(cfg.MaxConcurrency,
		time.Duration(flags.delayMin*float64(time.Second)),
		time.Duration(flags.delayMax*float64(time.Second)))

	start := time.Now()

	// Results land at their input index so collection order (and the
	// first-seen tie-breaks derived from it) stays stable regardless of
	// worker scheduling.
	results := make([]*models.CasinoData, len(urls))

	for i, u := range urls {
		i, u := i, u
		pool.Submit(func() {
			logger.Info("[%d/%d] Scraping: %s", i+1, len(urls), u)

			casino, err := casinoScraper.Scrape(context.Background(), u)
			if err != nil {
				logger.Error("Failed to scrape %s: %v", u, err)
				return
			}
			results[i] = casino
			logger.Info("  ✓ %s — completeness %.1f%% (licenses: %d, providers: %d, withdrawals: %d)",
				casino.Name, casino.DataCompletenessScore,
				len(casino.Licenses), len(casino.Providers), len(casino.WithdrawalMethods))
		})
	}
	pool.Wait()

	collected := make([]*models.CasinoData, 0, len(urls))
	for _, casino := range results {
		if casino != nil {
			collected = append(collected, casino)
		}
	}

	logger.Info("Scrape complete — %d/%d casinos collected in %s",
		len(collected), len(urls), utils.FormatDuration(time.Since(start)))

	if len(collected) == 0 {
		return fmt.Errorf("no casino data collected")
	}

	if err := exportCollection(cfg, flags, logger, collected); err != nil {
		return err
	}

	insightSvc := services.NewInsightService(logger)
	insightSvc.Print(insightSvc.Generate(collected))
	return nil
}

// gatherURLs builds the deduplicated target list from whichever input
// flag was given.
func gatherURLs(flags *collectFlags, logger *utils.Logger) ([]string, error) {
	var candidates []string

	switch {
	case flags.url != "":
		candidates = []string{flags.url}
	case flags.file != "":
		content, err := os.ReadFile(flags.file)
		if err != nil {
			return nil, fmt.Errorf("read url file: %w", err)
		}
		candidates = utils.ExtractURLs(string(content))
	case flags.list != "":
		candidates = utils.ExtractURLs(flags.list)
	default:
		return nil, fmt.Errorf("one of --url, --file or --list is required")
	}

	seen := utils.NewURLSet()
	var urls []string
	for _, u := range candidates {
		if !utils.ValidateURL(u) {
			logger.Warn("Invalid URL skipped: %s", u)
			continue
		}
		if seen.Add(u) {
			urls = append(urls, u)
		}
	}
	return urls, nil
}

func exportCollection(cfg *config.Config, flags *collectFlags, logger *utils.Logger, collected []*models.CasinoData) error {
	if !flags.noJSON {
		store, err := storage.NewJSONStore(flags.output)
		if err != nil {
			return err
		}
		path, err := store.Save(collected, "")
		if err != nil {
			return err
		}
		logger.Info("JSON saved to %s", path)
	}

	if !flags.noCSV {
		csvPath := fmt.Sprintf("%s/casino_data_%s.csv", flags.output, time.Now().Format("20060102_150405"))
		csvWriter, err := storage.NewCSVWriter(csvPath)
		if err != nil {
			return err
		}
		if err := csvWriter.Write(collected); err != nil {
			csvWriter.Close()
			return err
		}
		csvWriter.Close()
		logger.Info("CSV saved to %s", csvPath)
	}

	if !flags.noSummary {
		reportWriter, err := storage.NewReportWriter(flags.output)
		if err != nil {
			return err
		}
		insightSvc := services.NewInsightService(logger)
		path, err := reportWriter.Write(collected, insightSvc.Generate(collected), "")
		if err != nil {
			return err
		}
		logger.Info("Summary report saved to %s", path)
	}

	if flags.postgres {
		pgWriter, err := storage.NewPostgresWriter(cfg.DSN())
		if err != nil {
			logger.Error("PostgreSQL unavailable: %v", err)
			logger.Error("Make sure the database is running: docker compose up -d")
			return err
		}
		defer pgWriter.Close()

		if err := pgWriter.Write(collected); err != nil {
			return err
		}
		logger.Info("Casino records stored in PostgreSQL (table: casinos)")
	}

	return nil
}

func newReportCmd(cfg *config.Config) *cobra.Command {
	var output string
	var fromDB bool

	cmd := &cobra.Command{
		Use:   "report [collection.json]",
		Short: "Compute insights over a saved collection",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := utils.NewLogger()

			var casinos []*models.CasinoData
			switch {
			case fromDB:
				pgWriter, err := storage.NewPostgresWriter(cfg.DSN())
				if err != nil {
					return err
				}
				defer pgWriter.Close()
				casinos, err = pgWriter.FetchAll()
				if err != nil {
					return err
				}
			case len(args) == 1:
				store, err := storage.NewJSONStore(output)
				if err != nil {
					return err
				}
				casinos, err = store.Load(args[0])
				if err != nil {
					return err
				}
			default:
				return fmt.Errorf("a collection file argument or --from-db is required")
			}

			logger.Info("Loaded %d casino records", len(casinos))

			insightSvc := services.NewInsightService(logger)
			report := insightSvc.Generate(casinos)
			insightSvc.Print(report)

			reportWriter, err := storage.NewReportWriter(output)
			if err != nil {
				return err
			}
			path, err := reportWriter.Write(casinos, report, "")
			if err != nil {
				return err
			}
			logger.Info("Summary report saved to %s", path)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", cfg.OutputDir, "output directory")
	cmd.Flags().BoolVar(&fromDB, "from-db", false, "load the collection from PostgreSQL instead of a file")
	return cmd
}

func newExportCmd(cfg *config.Config) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "export <collection.json>",
		Short: "Flatten a saved collection to CSV",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := utils.NewLogger()

			store, err := storage.NewJSONStore(output)
			if err != nil {
				return err
			}
			casinos, err := store.Load(args[0])
			if err != nil {
				return err
			}

			csvPath := fmt.Sprintf("%s/casino_data_%s.csv", output, time.Now().Format("20060102_150405"))
			csvWriter, err := storage.NewCSVWriter(csvPath)
			if err != nil {
				return err
			}
			defer csvWriter.Close()

			if err := csvWriter.Write(casinos); err != nil {
				return err
			}
			logger.Info("Exported %d records to %s", len(casinos), csvPath)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", cfg.OutputDir, "output directory")
	return cmd
}

func newDemoCmd(cfg *config.Config) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Run the full pipeline on bundled sample records (no network)",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := utils.NewLogger()
			casinos := sampleCasinos()

			for _, c := range casinos {
				if err := c.Validate(); err != nil {
					return err
				}
				services.Finalize(c)
			}

			flags := &collectFlags{output: output}
			if err := exportCollection(cfg, flags, logger, casinos); err != nil {
				return err
			}

			insightSvc := services.NewInsightService(logger)
			insightSvc.Print(insightSvc.Generate(casinos))
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "demo_output", "output directory")
	return cmd
}
