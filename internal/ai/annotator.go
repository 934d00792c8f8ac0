package ai

import (
	"context"
	"log/slog"

	"osint-desk/internal/model"
)

// Annotator fills gptExplanation on imported events. Failures are logged and the
// field is left empty; nothing is retried.
type Annotator struct {
	Explainer Explainer
}

func (a Annotator) Enrich(ctx context.Context, ev *model.Event) {
	if a.Explainer == nil || ev.GPTExplanation != "" {
		return
	}
	note, err := a.Explainer.Explain(ctx, *ev)
	if err != nil {
		slog.Warn("ai: explain failed", "id", ev.ID, "link", ev.SourceLink, "err", err)
		return
	}
	ev.GPTExplanation = note
}
