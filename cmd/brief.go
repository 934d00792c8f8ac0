package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"osint-desk/internal/ai"
	"osint-desk/internal/briefing"
	"osint-desk/internal/config"
	"osint-desk/internal/storage"

	"github.com/spf13/cobra"
)

var (
	briefTop       int
	briefLevel     string
	briefSummarize bool
)

// briefCmd renders the most credible events into a markdown brief.
var briefCmd = &cobra.Command{
	Use:   "brief",
	Short: "Write a markdown brief of the most credible events",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := GetConfig()
		var ex ai.Explainer
		if briefSummarize {
			var err error
			if ex, err = newExplainer(cfg); err != nil {
				return err
			}
		}
		top := briefTop
		if top <= 0 {
			top = cfg.Briefing.TopN
		}
		_, err := writeBrief(cmd.Context(), cmd.OutOrStdout(), cfg, storage.NewFileStore(cfg.Dataset.Path), top, briefLevel, ex, time.Now())
		return err
	},
}

// writeBrief renders the brief and returns the written path, or "" when there was nothing to write.
func writeBrief(ctx context.Context, w io.Writer, cfg config.Config, repo storage.Repository, top int, level string, ex ai.Explainer, now time.Time) (string, error) {
	events, err := repo.LoadAll(ctx)
	if err != nil {
		return "", err
	}
	picked := briefing.Select(events, top, level)
	if len(picked) == 0 {
		fmt.Fprintln(w, "No events found; skipping brief.")
		return "", nil
	}

	var summary string
	if ex != nil {
		if summary, err = ex.SummarizeBrief(ctx, picked); err != nil {
			slog.Warn("brief: summary failed", "err", err)
		}
	}

	dateName := now.UTC().Format("20060102")
	slug := "brief-" + dateName
	doc, err := briefing.Render(briefing.Data{
		Title:    briefing.ExpandVars(cfg.Briefing.Title, now, len(picked)),
		Slug:     slug,
		Datetime: now.UTC().Format("2006-01-02 15:04"),
		Preface:  briefing.ExpandVars(cfg.Briefing.Preface, now, len(picked)),
		Summary:  strings.TrimSpace(summary),
		Items:    briefing.Items(picked),
	})
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(cfg.Briefing.OutputDir, 0o755); err != nil {
		return "", err
	}
	path := filepath.Join(cfg.Briefing.OutputDir, slug+".md")
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		return "", err
	}
	slog.Info("brief: written", "path", path, "items", len(picked))
	fmt.Fprintf(w, "Wrote %s with %d events\n", path, len(picked))
	return path, nil
}

func init() {
	briefCmd.Flags().IntVar(&briefTop, "top", 0, "number of events (default: briefing.top_n)")
	briefCmd.Flags().StringVar(&briefLevel, "level", "", "only include this credibility level")
	briefCmd.Flags().BoolVar(&briefSummarize, "summarize", false, "add an OpenAI summary paragraph")
	rootCmd.AddCommand(briefCmd)
}
