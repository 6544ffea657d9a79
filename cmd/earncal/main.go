// earncal — corporate earnings announcement date tracker
//
// Main CLI entrypoint using cobra command framework.
package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/seenimoa/earncal/api"
	"github.com/seenimoa/earncal/internal/config"
	"github.com/seenimoa/earncal/internal/earnings"
	"github.com/seenimoa/earncal/internal/logging"
	"github.com/seenimoa/earncal/internal/provider"
	"github.com/seenimoa/earncal/internal/providers"
	"github.com/seenimoa/earncal/internal/report"
	"github.com/seenimoa/earncal/pkg/models"
	"github.com/seenimoa/earncal/pkg/utils"
)

// Build-time variables (set via -ldflags).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// Globals shared by the subcommands, set in PersistentPreRunE.
var (
	cfg    *config.Config
	logger *zap.Logger
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "earncal",
	Short: "earncal — upcoming earnings announcement dates, in Eastern Time",
	Long: `earncal tracks corporate earnings announcement dates.

It resolves the next (or most recent) earnings date for each requested
company from free market-data sources, renders a date-grouped listing in
US Eastern Time, and persists the results as CSV.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		configFile, _ := cmd.Flags().GetString("config")
		if configFile != "" {
			cfg, err = config.LoadFromFile(configFile)
		} else {
			cfg, err = config.Load()
		}
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		if lvl, _ := cmd.Flags().GetString("log-level"); lvl != "" {
			cfg.Logging.Level = lvl
		}
		logger, err = logging.New(cfg.Logging)
		if err != nil {
			return fmt.Errorf("failed to set up logging: %w", err)
		}
		zap.ReplaceGlobals(logger)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "config file path (default: ./earncal.yaml)")
	rootCmd.PersistentFlags().String("log-level", "", "log level override (debug, info, warn, error)")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(trackCmd)
	rootCmd.AddCommand(newsCmd)
	rootCmd.AddCommand(providersCmd)
	rootCmd.AddCommand(serveCmd)
}

// newRegistry builds the provider registry from the loaded config.
func newRegistry() (*provider.Registry, error) {
	return providers.NewRegistry(providers.Options{
		FMPAPIKey: cfg.Provider.FMPAPIKey,
		Default:   cfg.Provider.Default,
	})
}

// --- Version Command ---

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("earncal %s\n", version)
		fmt.Printf("  commit:  %s\n", commit)
		fmt.Printf("  built:   %s\n", date)
	},
}

// --- Track Command ---

var trackCmd = &cobra.Command{
	Use:   "track",
	Short: "Look up earnings dates for a list of companies",
	Long: `Look up the upcoming (or most recent) earnings announcement date for
each company, print a date-grouped listing in Eastern Time, and save the
results as CSV.

Examples:
  earncal track -t AAPL,MSFT,GOOGL
  earncal track -f tickers.txt -o earnings.csv
  earncal track -t NVDA --delay 2s`,
	RunE: func(cmd *cobra.Command, args []string) error {
		tickers, err := gatherTickers(cmd)
		if err != nil {
			return err
		}

		output, _ := cmd.Flags().GetString("output")
		if output == "" {
			output = cfg.Output.File
		}

		delay := cfg.Fetch.Delay
		if cmd.Flags().Changed("delay") {
			delay, _ = cmd.Flags().GetDuration("delay")
		}

		reg, err := newRegistry()
		if err != nil {
			return err
		}

		resolver := earnings.NewResolver(reg, logger)
		agg := earnings.NewAggregator(resolver,
			earnings.WithDelay(delay),
			earnings.WithProgress(func(i, n int, ticker string) {
				fmt.Printf("[%d/%d] Getting data for %s\n", i, n, ticker)
			}),
		)

		fmt.Println("All times will be displayed in Eastern Time (ET)")
		fmt.Printf("Processing %d companies...\n", len(tickers))

		results := agg.Aggregate(cmd.Context(), tickers)

		fmt.Printf("\n%s\n", report.RenderDisplay(results))

		if err := report.SaveCSV(output, results); err != nil {
			return err
		}
		fmt.Printf("Results saved to %s\n", output)
		fmt.Println("Note: All times in the CSV are in Eastern Time (ET)")
		return nil
	},
}

func init() {
	trackCmd.Flags().StringP("tickers", "t", "", "comma-separated ticker symbols (e.g., AAPL,MSFT,GOOGL)")
	trackCmd.Flags().StringP("file", "f", "", "file containing ticker symbols (one per line)")
	trackCmd.Flags().StringP("output", "o", "", "output CSV file (default from config: earnings_dates.csv)")
	trackCmd.Flags().Duration("delay", 0, "pause between ticker lookups (default from config: 1s)")
	trackCmd.MarkFlagsMutuallyExclusive("tickers", "file")
	trackCmd.MarkFlagsOneRequired("tickers", "file")
}

// gatherTickers reads the ticker list from --tickers or --file.
func gatherTickers(cmd *cobra.Command) ([]string, error) {
	if inline, _ := cmd.Flags().GetString("tickers"); inline != "" {
		var tickers []string
		for _, t := range strings.Split(inline, ",") {
			if t = strings.TrimSpace(t); t != "" {
				tickers = append(tickers, t)
			}
		}
		if len(tickers) == 0 {
			return nil, fmt.Errorf("no tickers in --tickers list")
		}
		return tickers, nil
	}

	path, _ := cmd.Flags().GetString("file")
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read ticker file: %w", err)
	}

	var tickers []string
	for _, line := range strings.Split(string(data), "\n") {
		if line = strings.TrimSpace(line); line != "" {
			tickers = append(tickers, line)
		}
	}
	if len(tickers) == 0 {
		return nil, fmt.Errorf("no tickers in %s", path)
	}
	return tickers, nil
}

// --- News Command ---

var newsCmd = &cobra.Command{
	Use:   "news SYMBOL [SYMBOL...]",
	Short: "Show recent headlines for one or more companies",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		reg, err := newRegistry()
		if err != nil {
			return err
		}

		type headlines struct {
			symbol   string
			articles []models.NewsArticle
		}
		results := make([]headlines, len(args))

		// Headlines are independent of the resolution pipeline, so they
		// fan out concurrently with a small bound.
		g, ctx := errgroup.WithContext(cmd.Context())
		g.SetLimit(4)
		for i, arg := range args {
			symbol := utils.NormalizeTicker(arg)
			g.Go(func() error {
				params := provider.QueryParams{
					provider.ParamSymbol: symbol,
					provider.ParamLimit:  strconv.Itoa(limit),
				}
				res, err := reg.FetchWithFallback(ctx, provider.ModelCompanyNews, params)
				if err != nil {
					logger.Warn("news fetch failed", zap.String("ticker", symbol), zap.Error(err))
					results[i] = headlines{symbol: symbol}
					return nil
				}
				articles, _ := res.Data.([]models.NewsArticle)
				results[i] = headlines{symbol: symbol, articles: articles}
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return err
		}

		for _, r := range results {
			fmt.Printf("\n\033[1m%s\033[0m\n", r.symbol)
			if len(r.articles) == 0 {
				fmt.Println("  no recent headlines")
				continue
			}
			for _, a := range r.articles {
				fmt.Printf("  %s  %s (%s)\n", a.PublishedAt.In(utils.Eastern).Format("2006-01-02 15:04"), a.Title, a.Source)
				fmt.Printf("    %s\n", a.URL)
			}
		}
		return nil
	},
}

func init() {
	newsCmd.Flags().Int("limit", 5, "max headlines per company")
}

// --- Providers Command ---

var providersCmd = &cobra.Command{
	Use:   "providers",
	Short: "List registered data providers and their coverage",
	RunE: func(cmd *cobra.Command, args []string) error {
		reg, err := newRegistry()
		if err != nil {
			return err
		}

		fmt.Println("═══════════════════════════════════════")
		fmt.Println("  earncal — Data Providers")
		fmt.Println("═══════════════════════════════════════")
		for _, info := range reg.List() {
			fmt.Printf("  %s — %s\n", info.Name, info.Description)
			for _, m := range info.Models {
				def, _ := reg.DefaultProvider(m)
				marker := ""
				if def == info.Name {
					marker = " (default)"
				}
				fmt.Printf("    %-20s %s%s\n", m, provider.ModelCategory(m), marker)
			}
			fmt.Println()
		}

		fmt.Println("  API Keys:")
		for _, k := range config.CheckAPIKeys(cfg) {
			status := "❌ not set"
			if k.IsSet {
				status = fmt.Sprintf("✅ set (%s: %s)", k.Source, k.Masked)
			}
			fmt.Printf("    %-25s %s\n", k.Name+":", status)
		}
		fmt.Println("═══════════════════════════════════════")
		return nil
	},
}

// --- Serve Command (API Server) ---

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server and dashboard",
	RunE: func(cmd *cobra.Command, args []string) error {
		addr, _ := cmd.Flags().GetString("addr")
		if addr == "" {
			addr = cfg.Server.Addr
		}

		reg, err := newRegistry()
		if err != nil {
			return err
		}

		api.Version = version
		srv := api.NewServer(cfg, reg, logger)

		fmt.Printf("🌐 Starting earncal API server on %s\n", addr)
		return srv.ListenAndServe(addr)
	},
}

func init() {
	serveCmd.Flags().String("addr", "", "listen address (default from config: :8420)")
}
