package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strings"

	"github.com/cognicore/wordfreq/internal/source"
	"github.com/cognicore/wordfreq/pkg/wordfreq"
	"github.com/cognicore/wordfreq/pkg/wordfreq/config"
	"github.com/cognicore/wordfreq/pkg/wordfreq/report"
	"github.com/cognicore/wordfreq/pkg/wordfreq/stoplist"
	"github.com/cognicore/wordfreq/pkg/wordfreq/store"
	"github.com/cognicore/wordfreq/pkg/wordfreq/store/cached"
	"github.com/cognicore/wordfreq/pkg/wordfreq/store/sqlite"
)

type options struct {
	configPath string
	stoplist   string
	db         string
	k          int
	kSet       bool
	workers    int
	jsonOut    bool
	history    int
	suggest    bool
	inputs     []string
}

func parseFlags(args []string) (options, error) {
	fs := flag.NewFlagSet("wordfreq", flag.ContinueOnError)
	var opts options
	fs.StringVar(&opts.configPath, "config", "", "YAML config file")
	fs.StringVar(&opts.stoplist, "stoplist", "", "YAML stoplist file (overrides config)")
	fs.StringVar(&opts.db, "db", "", "SQLite database for saved reports (overrides config)")
	fs.IntVar(&opts.k, "k", config.DefaultK, "Number of most and least frequent words (overrides config)")
	fs.IntVar(&opts.workers, "workers", 0, "Parallel workers when several inputs are given")
	fs.BoolVar(&opts.jsonOut, "json", false, "Print the report as JSON")
	fs.IntVar(&opts.history, "history", 0, "List the N newest saved reports and exit")
	fs.BoolVar(&opts.suggest, "suggest-stopwords", false, "Also print stopword candidates")
	if err := fs.Parse(args); err != nil {
		return opts, err
	}
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "k" {
			opts.kSet = true
		}
	})
	opts.inputs = fs.Args()
	return opts, nil
}

func main() {
	opts, err := parseFlags(os.Args[1:])
	if errors.Is(err, flag.ErrHelp) {
		os.Exit(0)
	}
	if err != nil {
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, opts, os.Stdout); err != nil {
		log.Fatalf("wordfreq: %v", err)
	}
}

func run(ctx context.Context, opts options, out io.Writer) error {
	loader := config.Loader{
		ConfigPath:   opts.configPath,
		StoplistPath: opts.stoplist,
	}
	components, err := loader.Load()
	if err != nil {
		return fmt.Errorf("load configs: %w", err)
	}

	cfg := applyOverrides(components.Config, opts)
	if err := cfg.Validate(); err != nil {
		return err
	}

	var st store.Store
	if cfg.DB != "" {
		st, err = openStore(ctx, cfg.DB)
		if err != nil {
			return err
		}
	}

	analyzer, err := wordfreq.New(wordfreq.Options{
		Tokenizer: components.Tokenizer,
		Store:     st,
		K:         cfg.K,
		Workers:   cfg.Workers,
	})
	if err != nil {
		return err
	}
	defer analyzer.Close()

	if opts.history > 0 {
		reports, err := analyzer.History(ctx, opts.history)
		if err != nil {
			return err
		}
		return printHistory(out, reports, cfg.Format)
	}

	if len(opts.inputs) == 0 {
		return fmt.Errorf("at least one input file is required")
	}

	readers := make([]io.Reader, 0, len(opts.inputs))
	for _, path := range opts.inputs {
		rc, err := source.Open(path)
		if err != nil {
			return err
		}
		defer rc.Close()
		readers = append(readers, rc)
	}

	name := strings.Join(opts.inputs, ",")
	table, err := analyzer.Count(ctx, readers)
	if err != nil {
		return fmt.Errorf("analyze %s: %w", name, err)
	}
	rep, err := analyzer.Report(ctx, name, table)
	if err != nil {
		return err
	}

	log.Printf("Analyzed %s: %d tokens, %d distinct words", name, rep.TotalTokens, rep.DistinctWords)
	log.Printf("Most frequent words: %v", rep.Top)
	log.Printf("Most rare words: %v", rep.Bottom)
	if st != nil {
		log.Printf("Saved report %s to %s", rep.ID, cfg.DB)
	}

	if err := printReport(out, rep, cfg.Format); err != nil {
		return err
	}

	if opts.suggest {
		cands := components.Tokenizer.Stoplist().SuggestCandidates(table, stoplist.DefaultThresholds())
		printCandidates(out, cands)
	}
	return nil
}

func applyOverrides(cfg config.Config, opts options) config.Config {
	if opts.kSet {
		cfg.K = opts.k
	}
	if opts.workers > 0 {
		cfg.Workers = opts.workers
	}
	if opts.db != "" {
		cfg.DB = opts.db
	}
	if opts.jsonOut {
		cfg.Format = config.FormatJSON
	}
	return cfg
}

func openStore(ctx context.Context, path string) (store.Store, error) {
	db, err := sqlite.OpenSQLite(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("open store %s: %w", path, err)
	}
	st, err := cached.New(db, cached.DefaultSize)
	if err != nil {
		db.Close()
		return nil, err
	}
	return st, nil
}

func printReport(w io.Writer, rep report.Report, format string) error {
	if format == config.FormatJSON {
		data, err := json.MarshalIndent(rep, "", "  ")
		if err != nil {
			return fmt.Errorf("marshal report: %w", err)
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	}
	return report.WriteText(w, rep)
}

func printHistory(w io.Writer, reports []report.Report, format string) error {
	if format == config.FormatJSON {
		data, err := json.MarshalIndent(reports, "", "  ")
		if err != nil {
			return fmt.Errorf("marshal history: %w", err)
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	}
	for _, r := range reports {
		fmt.Fprintf(w, "%s  %s  k=%d  tokens=%d  distinct=%d  %s\n",
			r.ID, r.CreatedAt.Format("2006-01-02 15:04:05"), r.K, r.TotalTokens, r.DistinctWords, r.Source)
	}
	return nil
}

func printCandidates(w io.Writer, cands []stoplist.Candidate) {
	fmt.Fprintf(w, "\nStopword candidates:\n")
	if len(cands) == 0 {
		fmt.Fprintf(w, "  (none)\n")
		return
	}
	for _, c := range cands {
		fmt.Fprintf(w, "  %-12s %6.2f%%  (%d)\n", c.Word, c.Reason.SharePercent, c.Count)
	}
}
