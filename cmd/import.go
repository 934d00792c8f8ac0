package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"osint-desk/internal/ai"
	"osint-desk/internal/config"
	"osint-desk/internal/csvparse"
	"osint-desk/internal/ingest"
	"osint-desk/internal/merge"
	"osint-desk/internal/redisclient"
	"osint-desk/internal/storage"

	"github.com/spf13/cobra"
)

var (
	errNoCSVPath = errors.New("please provide path to CSV file")
	errEmptyCSV  = errors.New("CSV appears empty")
)

var (
	importOutput  string
	importExplain bool
	importLock    bool
)

// importOptions are the per-run switches of an import.
type importOptions struct {
	Output   string
	Enricher merge.Enricher
	Locker   locker
	Now      func() time.Time
}

type locker interface {
	Acquire(ctx context.Context) error
	Release(ctx context.Context) error
}

// importCmd merges a TwExtract CSV export into the dashboard dataset.
var importCmd = &cobra.Command{
	Use:   "import <csv_path>",
	Short: "Import a CSV export into the event dataset",
	Args: func(cmd *cobra.Command, args []string) error {
		if len(args) < 1 || args[0] == "" {
			return errNoCSVPath
		}
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := GetConfig()
		opts := importOptions{Output: importOutput}
		if opts.Output == "" {
			opts.Output = cfg.Dataset.Path
		}

		if importExplain {
			ex, err := newExplainer(cfg)
			if err != nil {
				return err
			}
			opts.Enricher = ai.Annotator{Explainer: ex}
		}
		if cfg.Lock.Enabled || importLock {
			ttl, _ := time.ParseDuration(cfg.Lock.TTL)
			rdb := redisclient.New(cfg.Redis)
			defer rdb.Close()
			abs, err := filepath.Abs(opts.Output)
			if err != nil {
				return err
			}
			opts.Locker = storage.NewRedisLock(rdb, abs, ttl)
		}

		return runImport(cmd.Context(), cmd.OutOrStdout(), cfg, args[0], opts)
	},
}

func runImport(ctx context.Context, w io.Writer, cfg config.Config, csvPath string, opts importOptions) error {
	f, err := os.Open(csvPath)
	if err != nil {
		return fmt.Errorf("open csv: %w", err)
	}
	rows, err := csvparse.ReadAll(f)
	f.Close()
	if err != nil {
		return fmt.Errorf("read csv: %w", err)
	}
	if dataRows(rows) == 0 {
		return errEmptyCSV
	}

	prep, err := ingest.Prepare(rows, ingest.Transformer{Region: cfg.Dataset.Region, Now: opts.Now})
	if err != nil {
		return err
	}
	slog.Info("import: csv parsed", "file", csvPath, "rows", prep.Rows, "skipped", prep.Skipped, "relevant", len(prep.Events))

	if opts.Locker != nil {
		if err := opts.Locker.Acquire(ctx); err != nil {
			return err
		}
		defer func() {
			if err := opts.Locker.Release(context.Background()); err != nil {
				slog.Warn("import: lock release failed", "err", err)
			}
		}()
	}

	eng := &merge.Engine{Repo: storage.NewFileStore(opts.Output), Enricher: opts.Enricher}
	sum, err := eng.Import(ctx, prep.Events)
	if err != nil {
		return err
	}
	fmt.Fprintln(w, sum.Line(filepath.Base(opts.Output)))
	return nil
}

// dataRows counts the rows below the header that are not blank lines.
func dataRows(rows [][]string) int {
	n := 0
	for i, r := range rows {
		if i == 0 || (len(r) == 1 && strings.TrimSpace(r[0]) == "") {
			continue
		}
		n++
	}
	return n
}

func newExplainer(cfg config.Config) (ai.Explainer, error) {
	if cfg.OpenAI.APIKey == "" {
		return nil, fmt.Errorf("openai config missing: set openai.api_key in config.yaml or OSINT_OPENAI_API_KEY")
	}
	tm, _ := time.ParseDuration(cfg.OpenAI.Timeout)
	return ai.NewOpenAI(ai.Config{
		APIKey:  cfg.OpenAI.APIKey,
		Model:   cfg.OpenAI.Model,
		BaseURL: cfg.OpenAI.BaseURL,
		Timeout: tm,
	})
}

func init() {
	importCmd.Flags().StringVarP(&importOutput, "output", "o", "", "dataset file (default: dataset.path, mockData.json)")
	importCmd.Flags().BoolVar(&importExplain, "explain", false, "write analyst notes for new events with OpenAI")
	importCmd.Flags().BoolVar(&importLock, "lock", false, "hold a redis lock on the dataset while importing")
	rootCmd.AddCommand(importCmd)
}
