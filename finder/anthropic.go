package finder

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	antoption "github.com/anthropics/anthropic-sdk-go/option"
	"github.com/linkdock/linkdock/logger"
)

const defaultAnthropicModel = "claude-sonnet-4-5"

func init() {
	Register("anthropic", Registration{
		EnvKey: "ANTHROPIC_API_KEY",
		Constructor: func(opts Options) (Finder, error) {
			return newAnthropicFinder(opts)
		},
	})
}

// AnthropicFinder asks a Claude model for design links.
type AnthropicFinder struct {
	modelName string
	client    anthropic.Client
}

func newAnthropicFinder(opts Options) (*AnthropicFinder, error) {
	if opts.APIKey == "" {
		return nil, fmt.Errorf("anthropic finder requires an API key")
	}
	modelName := opts.Model
	if modelName == "" {
		modelName = defaultAnthropicModel
	}

	clientOpts := []antoption.RequestOption{
		antoption.WithAPIKey(opts.APIKey),
		antoption.WithMaxRetries(sdkMaxRetries),
	}
	if base := strings.TrimSpace(opts.APIBase); base != "" {
		clientOpts = append(clientOpts, antoption.WithBaseURL(strings.TrimRight(base, "/")))
	}
	return &AnthropicFinder{
		modelName: modelName,
		client:    anthropic.NewClient(clientOpts...),
	}, nil
}

// Find implements Finder.
func (f *AnthropicFinder) Find(ctx context.Context, query string, limit int) ([]Result, error) {
	start := time.Now()
	logger.Info("anthropic find request", "model", f.modelName, "queryChars", len(query))

	msg, err := f.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(f.modelName),
		MaxTokens: 1024,
		System: []anthropic.TextBlockParam{
			{Text: findSystemPrompt},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(findUserPrompt(query, limit))),
		},
	})
	if err != nil {
		logger.Error("anthropic find request error", "err", err)
		return nil, fmt.Errorf("request failed: %w", err)
	}

	var reply strings.Builder
	for _, block := range msg.Content {
		if block.Type == "text" {
			reply.WriteString(block.Text)
		}
	}

	results, err := parseResults(reply.String(), limit)
	if err != nil {
		return nil, err
	}

	logger.Info("anthropic find response",
		"model", f.modelName,
		"results", len(results),
		"inputTokens", msg.Usage.InputTokens,
		"outputTokens", msg.Usage.OutputTokens,
		"latencyMs", time.Since(start).Milliseconds(),
	)
	return results, nil
}
