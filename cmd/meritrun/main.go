package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/humna-mustafa/PakUni-sub008/internal/cache"
	"github.com/humna-mustafa/PakUni-sub008/internal/engine"
	httpapi "github.com/humna-mustafa/PakUni-sub008/internal/interfaces/http"
	"github.com/humna-mustafa/PakUni-sub008/internal/metrics"
	"github.com/humna-mustafa/PakUni-sub008/internal/models"
	"github.com/humna-mustafa/PakUni-sub008/internal/refdata"
	"github.com/humna-mustafa/PakUni-sub008/internal/refdata/postgres"
)

var (
	configDir string
	logLevel  string

	serveHost        string
	servePort        int
	serveRedisAddr   string
	servePostgresDSN string
	serveRefresh     time.Duration

	calcInstitution string
	calcMatric      []float64
	calcInter       []float64
	calcTest        []float64
	calcFormat      string

	recPrograms []string
	recCities   []string
	recType     string
	recSession  string
	recProvince string
	recDistrict string
	recGender   string
	recHafiz    bool
	recFormat   string
	recLimit    int
)

// rootCmd is the base command for the meritrun CLI
var rootCmd = &cobra.Command{
	Use:   "meritrun",
	Short: "Pakistani university merit calculator and admission recommender",
	Long: `meritrun computes admission aggregates under institution-specific merit
formulas and recommends universities from historical closing-merit data,
quota eligibility and institutional tiers.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		setupLogging()
	},
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("meritrun - university merit and admission recommendation engine")
		fmt.Println("Use 'meritrun calc' for a merit aggregate or 'meritrun serve' for the HTTP API")
	},
}

// serveCmd runs the HTTP API server
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API server",
	Long: `Serve the merit and recommendation API over HTTP.

Example usage:
  meritrun serve                                  # builtin datasets, no cache
  meritrun serve --config config                  # datasets from a directory
  meritrun serve --redis localhost:6379           # enable the response cache
  meritrun serve --postgres "$DSN" --refresh 1h   # periodic history refresh`,
	RunE: runServe,
}

// calcCmd computes one merit aggregate
var calcCmd = &cobra.Command{
	Use:   "calc",
	Short: "Calculate a merit aggregate",
	Long: `Calculate the admission aggregate for one set of scores.

Example usage:
  meritrun calc --matric 950,1100 --inter 850,1100 --test 150,200 --institution nust
  meritrun calc --matric 900,1100 --inter 880,1100 --format json`,
	RunE: runCalc,
}

// recommendCmd runs the full recommendation pipeline
var recommendCmd = &cobra.Command{
	Use:   "recommend",
	Short: "Recommend universities for a score profile",
	Long: `Run the full recommendation pipeline: merit calculation, quota detection,
historical matching, scoring and ranking.

Example usage:
  meritrun recommend --matric 990,1100 --inter 930,1100 --test 160,200 \
      --institution nust --programs "computer science" --cities Islamabad,Lahore
  meritrun recommend --matric 950,1100 --inter 900,1100 --province balochistan --format json`,
	RunE: runRecommend,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configDir, "config", "", "Dataset directory (empty uses builtin datasets)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(calcCmd)
	rootCmd.AddCommand(recommendCmd)

	serveCmd.Flags().StringVar(&serveHost, "host", "127.0.0.1", "Listen host")
	serveCmd.Flags().IntVar(&servePort, "port", 8080, "Listen port")
	serveCmd.Flags().StringVar(&serveRedisAddr, "redis", "", "Redis address for the response cache (empty disables)")
	serveCmd.Flags().StringVar(&servePostgresDSN, "postgres", "", "PostgreSQL DSN for merit history refresh (empty disables)")
	serveCmd.Flags().DurationVar(&serveRefresh, "refresh", time.Hour, "History refresh interval (needs --postgres)")

	for _, cmd := range []*cobra.Command{calcCmd, recommendCmd} {
		cmd.Flags().Float64SliceVar(&calcMatric, "matric", nil, "Matric scores as obtained,total")
		cmd.Flags().Float64SliceVar(&calcInter, "inter", nil, "Intermediate scores as obtained,total")
		cmd.Flags().Float64SliceVar(&calcTest, "test", nil, "Entry test scores as obtained,total (omit if not taken)")
		cmd.Flags().StringVar(&calcInstitution, "institution", "", "Institution whose formula to apply")
	}
	calcCmd.Flags().StringVar(&calcFormat, "format", "table", "Output format: table, json")

	recommendCmd.Flags().StringSliceVar(&recPrograms, "programs", nil, "Preferred programs or fields")
	recommendCmd.Flags().StringSliceVar(&recCities, "cities", nil, "Preferred cities")
	recommendCmd.Flags().StringVar(&recType, "type", "", "Institution type: public, private (empty means both)")
	recommendCmd.Flags().StringVar(&recSession, "session", "", "Preferred session: fall, spring")
	recommendCmd.Flags().StringVar(&recProvince, "province", "", "Home province for quota detection")
	recommendCmd.Flags().StringVar(&recDistrict, "district", "", "Home district for quota detection")
	recommendCmd.Flags().StringVar(&recGender, "gender", "", "Gender for quota detection")
	recommendCmd.Flags().BoolVar(&recHafiz, "hafiz", false, "Hafiz-e-Quran (formula bonus and quota)")
	recommendCmd.Flags().StringVar(&recFormat, "format", "table", "Output format: table, json")
	recommendCmd.Flags().IntVar(&recLimit, "limit", 15, "Maximum recommendations to print")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// setupLogging configures the global zerolog logger. Interactive terminals get
// the console writer, pipes get plain JSON.
func setupLogging() {
	level, err := zerolog.ParseLevel(strings.ToLower(logLevel))
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	if term.IsTerminal(int(os.Stderr.Fd())) {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	}
}

// loadSnapshot loads the dataset directory when given, builtin data otherwise
func loadSnapshot() (*refdata.Snapshot, error) {
	if configDir != "" {
		return refdata.LoadDir(configDir)
	}
	return refdata.LoadDefault()
}

func runServe(cmd *cobra.Command, args []string) error {
	snapshot, err := loadSnapshot()
	if err != nil {
		return fmt.Errorf("failed to load datasets: %w", err)
	}

	eng := engine.New(snapshot)
	collector := metrics.NewCollector()
	collector.SnapshotRecordsLoaded.Set(float64(len(snapshot.History)))

	var recCache *cache.RecommendationCache
	if serveRedisAddr != "" {
		client := redis.NewClient(&redis.Options{Addr: serveRedisAddr})
		if err := client.Ping(context.Background()).Err(); err != nil {
			return fmt.Errorf("redis unreachable at %s: %w", serveRedisAddr, err)
		}
		recCache = cache.New(client, cache.DefaultTTL)
		log.Info().Str("addr", serveRedisAddr).Msg("response cache enabled")
	}

	config := httpapi.DefaultServerConfig()
	config.Host = serveHost
	config.Port = servePort
	server := httpapi.NewServer(eng, recCache, collector, config)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if servePostgresDSN != "" {
		db, err := postgres.Connect(servePostgresDSN)
		if err != nil {
			return fmt.Errorf("postgres connect failed: %w", err)
		}
		repo := postgres.NewHistoryRepo(db, 30*time.Second)
		go runRefreshLoop(ctx, eng, refdata.NewRefresher(repo), collector)
	}

	errCh := make(chan error, 1)
	go func() { errCh <- server.Start() }()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-sigCh:
		log.Info().Str("signal", sig.String()).Msg("shutting down")
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()
	return server.Shutdown(shutdownCtx)
}

// runRefreshLoop swaps in refreshed history on a fixed interval until ctx ends
func runRefreshLoop(ctx context.Context, eng *engine.Engine, refresher *refdata.Refresher, collector *metrics.Collector) {
	ticker := time.NewTicker(serveRefresh)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			next, err := refresher.Refresh(ctx, eng.Snapshot())
			if err != nil {
				log.Warn().Err(err).Msg("history refresh skipped")
				continue
			}
			eng.Reload(next)
			collector.SnapshotReloads.Inc()
			collector.SnapshotRecordsLoaded.Set(float64(len(next.History)))
		}
	}
}

// parsePair turns an obtained,total flag value into its two parts
func parsePair(name string, values []float64) (obtained, total float64, err error) {
	switch len(values) {
	case 0:
		return 0, 0, nil
	case 2:
		return values[0], values[1], nil
	default:
		return 0, 0, fmt.Errorf("--%s expects obtained,total", name)
	}
}

func buildMeritInput() (models.MeritInput, error) {
	var input models.MeritInput
	var err error

	if input.MatricObtained, input.MatricTotal, err = parsePair("matric", calcMatric); err != nil {
		return input, err
	}
	if input.InterObtained, input.InterTotal, err = parsePair("inter", calcInter); err != nil {
		return input, err
	}
	if input.TestObtained, input.TestTotal, err = parsePair("test", calcTest); err != nil {
		return input, err
	}
	input.HasTestScore = len(calcTest) == 2
	input.InstitutionID = calcInstitution
	input.HafizQuran = recHafiz
	return input, nil
}

func runCalc(cmd *cobra.Command, args []string) error {
	snapshot, err := loadSnapshot()
	if err != nil {
		return fmt.Errorf("failed to load datasets: %w", err)
	}
	input, err := buildMeritInput()
	if err != nil {
		return err
	}

	result := engine.New(snapshot).CalculateMerit(input)

	if strings.ToLower(calcFormat) == "json" {
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		return encoder.Encode(result)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "Aggregate\t%.2f%%\n", result.Aggregate)
	fmt.Fprintf(w, "Formula\t%s\n", result.Formula)
	fmt.Fprintf(w, "Matric\t%.2f%% (contributes %.2f)\n", result.MatricPct, result.Breakdown.Matric)
	fmt.Fprintf(w, "Intermediate\t%.2f%% (contributes %.2f)\n", result.InterPct, result.Breakdown.Inter)
	if result.TestPct > 0 {
		fmt.Fprintf(w, "Entry test\t%.2f%% (contributes %.2f)\n", result.TestPct, result.Breakdown.Test)
	}
	if result.Breakdown.Bonus > 0 {
		fmt.Fprintf(w, "Bonus\t+%.2f\n", result.Breakdown.Bonus)
	}
	fmt.Fprintf(w, "Chance\t%s\n", result.Chance)
	if result.UsedFallback {
		fmt.Fprintln(w, "Note\tno test score supplied, test-free weights applied")
	}
	return w.Flush()
}

func runRecommend(cmd *cobra.Command, args []string) error {
	snapshot, err := loadSnapshot()
	if err != nil {
		return fmt.Errorf("failed to load datasets: %w", err)
	}
	input, err := buildMeritInput()
	if err != nil {
		return err
	}

	criteria := models.RecommendationCriteria{
		MeritInput:        input,
		PreferredPrograms: recPrograms,
		PreferredCities:   recCities,
		InstitutionType:   models.Sector(strings.ToLower(recType)),
		PreferredSession:  models.Session(strings.ToLower(recSession)),
	}
	if recProvince != "" || recDistrict != "" || recGender != "" || recHafiz {
		criteria.Quota = &models.QuotaProfile{
			Gender:     recGender,
			Region:     recDistrict,
			Province:   recProvince,
			HafizQuran: recHafiz,
		}
	}

	recommendations, merit := engine.New(snapshot).Recommend(criteria)
	if recLimit > 0 && len(recommendations) > recLimit {
		recommendations = recommendations[:recLimit]
	}

	if strings.ToLower(recFormat) == "json" {
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		return encoder.Encode(struct {
			Merit           models.MeritResult      `json:"merit"`
			Recommendations []models.Recommendation `json:"recommendations"`
		}{merit, recommendations})
	}

	fmt.Printf("Aggregate: %.2f%% (%s, chance %s)\n\n", merit.Aggregate, merit.Formula, merit.Chance)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "Institution\tCategory\tScore\tTier\tClosing\tGap\tTrend")
	fmt.Fprintln(w, "-----------\t--------\t-----\t----\t-------\t---\t-----")
	for _, rec := range recommendations {
		closing, gap, trend := "-", "-", "-"
		if rec.Insight != nil {
			closing = fmt.Sprintf("%.1f", rec.Insight.ClosingMerit)
			gap = fmt.Sprintf("%+.1f", rec.Insight.Gap)
			trend = string(rec.Insight.Trend)
		}
		fmt.Fprintf(w, "%s\t%s\t%.0f\t%d\t%s\t%s\t%s\n",
			rec.Institution.Name, rec.Category, rec.Score, rec.Tier, closing, gap, trend)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	for _, rec := range recommendations {
		if len(rec.QuotaOptions) == 0 {
			continue
		}
		fmt.Printf("\nQuota options at %s:\n", rec.Institution.Name)
		for _, q := range rec.QuotaOptions {
			marker := " "
			if q.Clears {
				marker = "*"
			}
			fmt.Printf("  %s %s closing %.1f (gap %+.1f)\n", marker, q.Label, q.ClosingMerit, q.Gap)
		}
	}
	return nil
}
