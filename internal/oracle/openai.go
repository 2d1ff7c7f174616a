package oracle

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"

	"github.com/sagan-labs/treecache/internal/treeerr"
)

// OpenAI is a LanguageOracle backed by the OpenAI chat completions API.
type OpenAI struct {
	client openai.Client
	model  openai.ChatModel
	logger *slog.Logger
}

// NewOpenAI returns an OpenAI oracle using apiKey and model. baseURL
// overrides the API host when non-empty (for OpenAI-compatible gateways);
// logger defaults to slog.Default() when nil.
func NewOpenAI(apiKey, baseURL string, model openai.ChatModel, logger *slog.Logger) *OpenAI {
	opts := []option.RequestOption{option.WithAPIKey(apiKey)}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &OpenAI{client: openai.NewClient(opts...), model: model, logger: logger}
}

func (o *OpenAI) complete(ctx context.Context, system, user string) (string, error) {
	resp, err := o.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: o.model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(system),
			openai.UserMessage(user),
		},
	})
	if err != nil {
		return "", fmt.Errorf("%w: openai chat.completions.new: %v", treeerr.ErrOracle, err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%w: openai returned no choices", treeerr.ErrOracle)
	}
	out := strings.TrimSpace(resp.Choices[0].Message.Content)
	if out == "" {
		return "", fmt.Errorf("%w: openai returned an empty response", treeerr.ErrOracle)
	}
	return out, nil
}

func (o *OpenAI) TopicShift(ctx context.Context, previous, current string) (bool, error) {
	if previous == "" {
		return false, nil
	}
	reply, err := o.complete(ctx, defaultTopicShiftPrompt, "Previous message:\n"+previous+"\n\nCurrent message:\n"+current)
	if err != nil {
		return false, err
	}
	return strings.HasPrefix(strings.ToLower(reply), "y"), nil
}

func (o *OpenAI) Summarize(ctx context.Context, texts []string) (string, error) {
	var sb strings.Builder
	for i, t := range texts {
		fmt.Fprintf(&sb, "%d. %s\n", i+1, t)
	}
	return o.complete(ctx, defaultSummaryPrompt, sb.String())
}

func (o *OpenAI) Group(ctx context.Context, messages []string) ([][]int, error) {
	return groupViaJSONReply(ctx, o.complete, messages)
}

var _ LanguageOracle = (*OpenAI)(nil)
