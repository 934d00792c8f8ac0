package ai

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"osint-desk/internal/model"

	openai "github.com/sashabaranov/go-openai"
)

// Explainer writes short analyst notes about events.
type Explainer interface {
	// Explain returns a 1-2 sentence note on why an event matters and how far to trust it.
	Explain(ctx context.Context, ev model.Event) (string, error)
	// SummarizeBrief returns a short paragraph covering a set of events.
	SummarizeBrief(ctx context.Context, events []model.Event) (string, error)
}

// OpenAIClient implements Explainer using the Chat Completions API.
type OpenAIClient struct {
	client  *openai.Client
	model   string
	timeout time.Duration
}

type Config struct {
	APIKey  string
	Model   string
	BaseURL string        // optional
	Timeout time.Duration // per call
}

func NewOpenAI(cfg Config) (*OpenAIClient, error) {
	if cfg.Model == "" {
		return nil, fmt.Errorf("openai: model must be specified")
	}
	var c *openai.Client
	if cfg.BaseURL != "" {
		cc := openai.DefaultConfig(cfg.APIKey)
		cc.BaseURL = cfg.BaseURL
		c = openai.NewClientWithConfig(cc)
	} else {
		c = openai.NewClient(cfg.APIKey)
	}
	tm := cfg.Timeout
	if tm <= 0 {
		tm = 60 * time.Second
	}
	return &OpenAIClient{client: c, model: cfg.Model, timeout: tm}, nil
}

const explainSystem = `
	You are an OSINT analyst. In 1-2 plain sentences (under 60 words), explain what the post
	reports and how much weight it deserves given its engagement-based credibility.
	Do not invent facts. No links, no markdown.
	`

func (o *OpenAIClient) Explain(ctx context.Context, ev model.Event) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, o.timeout)
	defer cancel()
	text := strings.TrimSpace(ev.Text)
	if text == "" {
		text = ev.Headline
	}
	if len([]rune(text)) > 1000 {
		text = string([]rune(text)[:1000])
	}
	user := fmt.Sprintf("Category: %s\nCredibility: %s (%.2f)\nSource: %s\nPost: %s",
		ev.Category, ev.CredibilityLevel, ev.CredibilityScore, ev.SourceName, text)
	out, err := o.create(ctx, explainSystem, user)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

func (o *OpenAIClient) SummarizeBrief(ctx context.Context, events []model.Event) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, o.timeout)
	defer cancel()
	if len(events) == 0 {
		return "", nil
	}
	b := &strings.Builder{}
	for i, ev := range events {
		if i >= 15 {
			break
		}
		fmt.Fprintf(b, "- [%s/%s] %s\n", ev.Category, ev.CredibilityLevel, ev.Headline)
	}
	sys := `
		You are an OSINT desk editor. Write 3-5 sentences summarizing the situation picture
		from the listed items. Weigh High credibility items over Low ones. Plain text, no links.
		`
	user := fmt.Sprintf("Items (category/credibility and headline):\n%s", b.String())
	out, err := o.create(ctx, sys, user)
	if err != nil {
		slog.Error("openai: summarize brief error", "err", err)
		return "", err
	}
	return strings.TrimSpace(out), nil
}

func (o *OpenAIClient) create(ctx context.Context, system, user string) (string, error) {
	resp, err := o.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: o.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			{Role: openai.ChatMessageRoleUser, Content: user},
		},
		Temperature: 0.2,
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", nil
	}
	return resp.Choices[0].Message.Content, nil
}
