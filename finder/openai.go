package finder

import (
	"context"
	"fmt"
	"time"

	"github.com/linkdock/linkdock/logger"
	openai "github.com/openai/openai-go/v3"
	oaioption "github.com/openai/openai-go/v3/option"
	"github.com/openai/openai-go/v3/shared"
)

const (
	openAIAPIBase      = "https://api.openai.com/v1"
	defaultOpenAIModel = "gpt-4.1-mini"
)

func init() {
	Register("openai", Registration{
		EnvKey: "OPENAI_API_KEY",
		Constructor: func(opts Options) (Finder, error) {
			return newOpenAIFinder(opts)
		},
	})
}

// OpenAIFinder asks an OpenAI-compatible chat model for design links.
type OpenAIFinder struct {
	modelName string
	client    openai.Client
}

func newOpenAIFinder(opts Options) (*OpenAIFinder, error) {
	if opts.APIKey == "" {
		return nil, fmt.Errorf("openai finder requires an API key")
	}
	modelName := opts.Model
	if modelName == "" {
		modelName = defaultOpenAIModel
	}

	client := openai.NewClient(
		oaioption.WithAPIKey(opts.APIKey),
		oaioption.WithBaseURL(normalizeBaseURL(opts.APIBase, openAIAPIBase)),
		oaioption.WithMaxRetries(sdkMaxRetries),
	)
	return &OpenAIFinder{modelName: modelName, client: client}, nil
}

// Find implements Finder.
func (f *OpenAIFinder) Find(ctx context.Context, query string, limit int) ([]Result, error) {
	start := time.Now()
	logger.Info("openai find request", "model", f.modelName, "queryChars", len(query))

	chatReq := openai.ChatCompletionNewParams{
		Model: shared.ChatModel(f.modelName),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(findSystemPrompt),
			openai.UserMessage(findUserPrompt(query, limit)),
		},
		MaxTokens:   openai.Int(1024),
		Temperature: openai.Float(0.2),
	}

	chatResp, err := f.client.Chat.Completions.New(ctx, chatReq)
	if err != nil {
		logger.Error("openai find request error", "err", err)
		return nil, fmt.Errorf("request failed: %w", err)
	}
	if len(chatResp.Choices) == 0 {
		return nil, fmt.Errorf("no choices in response")
	}

	results, err := parseResults(chatResp.Choices[0].Message.Content, limit)
	if err != nil {
		return nil, err
	}

	logger.Info("openai find response",
		"model", f.modelName,
		"results", len(results),
		"promptTokens", chatResp.Usage.PromptTokens,
		"completionTokens", chatResp.Usage.CompletionTokens,
		"latencyMs", time.Since(start).Milliseconds(),
	)
	return results, nil
}
