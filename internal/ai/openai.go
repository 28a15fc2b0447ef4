package ai

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
)

// Summarizer rewrites feed blurbs into newsletter voice. It is optional:
// when no API key is configured the generate step uses the raw descriptions.
type Summarizer interface {
	// SummarizeItem creates a concise 1-2 sentence description for an item.
	SummarizeItem(ctx context.Context, title, content string) (string, error)
}

// OpenAIClient implements Summarizer using the OpenAI Chat Completions API.
type OpenAIClient struct {
	client *openai.Client
	model  string
}

type Config struct {
	APIKey  string
	Model   string
	BaseURL string // optional
}

func NewOpenAI(cfg Config) *OpenAIClient {
	var c *openai.Client
	if cfg.BaseURL != "" {
		cc := openai.DefaultConfig(cfg.APIKey)
		cc.BaseURL = cfg.BaseURL
		c = openai.NewClientWithConfig(cc)
	} else {
		c = openai.NewClient(cfg.APIKey)
	}
	model := cfg.Model
	if model == "" {
		model = openai.GPT4oMini
	}
	return &OpenAIClient{client: c, model: model}
}

func (o *OpenAIClient) SummarizeItem(ctx context.Context, title, content string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, 60*time.Second)
	defer cancel()

	content = strings.TrimSpace(content)
	if content == "" {
		content = title
	}
	if len([]rune(content)) > 1000 {
		content = string([]rune(content)[:1000])
	}

	sys := `Rewrite the text as a warm, upbeat 1-2 sentence newsletter blurb about Los Angeles.
Keep names, places, and dates. No hashtags, no exclamation overload.`
	user := fmt.Sprintf("Title: %s\nContent: %s", title, content)

	resp, err := o.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: o.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: sys},
			{Role: openai.ChatMessageRoleUser, Content: user},
		},
	})
	if err != nil {
		slog.Error("openai: summarize item error", "err", err)
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("openai: empty response")
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}
