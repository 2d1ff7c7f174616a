package oracle

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/sagan-labs/treecache/internal/treeerr"
)

const (
	defaultTopicShiftPrompt = "Answer with a single word, \"yes\" or \"no\": did the conversation change topic between the previous message and the current message?"
	defaultSummaryPrompt    = "Summarize the following conversation messages, oldest first, into a short paragraph that preserves the important facts and decisions."
)

// Anthropic is a LanguageOracle backed by the Anthropic Messages API.
type Anthropic struct {
	client *anthropic.Client
	model  anthropic.Model
	logger *slog.Logger
}

// NewAnthropic returns an Anthropic oracle using apiKey and model. baseURL
// overrides the API host when non-empty (for proxies or self-hosted
// gateways); logger defaults to slog.Default() when nil.
func NewAnthropic(apiKey, baseURL string, model anthropic.Model, logger *slog.Logger) *Anthropic {
	opts := []option.RequestOption{option.WithAPIKey(apiKey)}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}
	client := anthropic.NewClient(opts...)
	if logger == nil {
		logger = slog.Default()
	}
	return &Anthropic{client: &client, model: model, logger: logger}
}

func (o *Anthropic) complete(ctx context.Context, system, user string) (string, error) {
	msg, err := o.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     o.model,
		MaxTokens: 1024,
		System: []anthropic.TextBlockParam{
			{Text: system},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(user)),
		},
	})
	if err != nil {
		return "", fmt.Errorf("%w: anthropic messages.new: %v", treeerr.ErrOracle, err)
	}
	var sb strings.Builder
	for _, block := range msg.Content {
		if text, ok := block.AsAny().(anthropic.TextBlock); ok {
			sb.WriteString(text.Text)
		}
	}
	out := strings.TrimSpace(sb.String())
	if out == "" {
		return "", fmt.Errorf("%w: anthropic returned an empty response", treeerr.ErrOracle)
	}
	return out, nil
}

func (o *Anthropic) TopicShift(ctx context.Context, previous, current string) (bool, error) {
	if previous == "" {
		return false, nil
	}
	reply, err := o.complete(ctx, defaultTopicShiftPrompt, "Previous message:\n"+previous+"\n\nCurrent message:\n"+current)
	if err != nil {
		return false, err
	}
	return strings.HasPrefix(strings.ToLower(reply), "y"), nil
}

func (o *Anthropic) Summarize(ctx context.Context, texts []string) (string, error) {
	var sb strings.Builder
	for i, t := range texts {
		fmt.Fprintf(&sb, "%d. %s\n", i+1, t)
	}
	return o.complete(ctx, defaultSummaryPrompt, sb.String())
}

func (o *Anthropic) Group(ctx context.Context, messages []string) ([][]int, error) {
	return groupViaJSONReply(ctx, o.complete, messages)
}

var _ LanguageOracle = (*Anthropic)(nil)
