package cmd

import (
	"context"
	"fmt"
	"io"

	"osint-desk/internal/dashboard"
	"osint-desk/internal/model"
	"osint-desk/internal/storage"

	"github.com/spf13/cobra"
)

var (
	eventsSource      string
	eventsCredibility string
	eventsDate        string
	eventsSearch      string
)

// eventsCmd lists the dataset through the dashboard toolbar filters.
var eventsCmd = &cobra.Command{
	Use:   "events",
	Short: "List events from the dataset",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := GetConfig()
		state := dashboard.Default()
		for _, a := range []dashboard.Action{
			{Kind: dashboard.SetSource, Value: eventsSource},
			{Kind: dashboard.SetCredibility, Value: eventsCredibility},
			{Kind: dashboard.SetDate, Value: eventsDate},
			{Kind: dashboard.SetSearch, Value: eventsSearch},
		} {
			state = dashboard.Update(state, a)
		}
		return listEvents(cmd.Context(), cmd.OutOrStdout(), storage.NewFileStore(cfg.Dataset.Path), state)
	},
}

func listEvents(ctx context.Context, w io.Writer, repo storage.Repository, state dashboard.State) error {
	events, err := repo.LoadAll(ctx)
	if err != nil {
		return err
	}
	shown := dashboard.Apply(state, events)
	for _, ev := range shown {
		fmt.Fprintln(w, formatEvent(ev))
	}
	fmt.Fprintf(w, "%d of %d events\n", len(shown), len(events))
	return nil
}

func formatEvent(ev model.Event) string {
	return fmt.Sprintf("#%d [%s %.2f] %s %s", ev.ID, ev.CredibilityLevel, ev.CredibilityScore, ev.Category, ev.Headline)
}

func init() {
	eventsCmd.Flags().StringVar(&eventsSource, "source", dashboard.AllSources, `"All sources", "Trusted only" or "Crowd only"`)
	eventsCmd.Flags().StringVar(&eventsCredibility, "credibility", dashboard.AllCredibility, "High, Medium, Low or \"All credibility\"")
	eventsCmd.Flags().StringVar(&eventsDate, "date", "", "only events on this day (YYYY-MM-DD)")
	eventsCmd.Flags().StringVar(&eventsSearch, "search", "", "case-insensitive text search")
	rootCmd.AddCommand(eventsCmd)
}
