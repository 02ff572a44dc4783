package llm

import (
	"context"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/pagesift/pagesift/log"
)

// OpenRouter attribution headers.
const REFERER = "https://github.com/pagesift/pagesift"
const TITLE = "pagesift"

const TEMPERATURE = 0.1
const MAX_TOKENS = 4000

// MAX_CONTENT_RUNES caps how much page markdown is handed to the model in a
// single completion input.
const MAX_CONTENT_RUNES = 100_000

// Completer is the completion surface the scraper depends on.
type Completer interface {
	// Complete sends a single-message prompt and returns the model's reply.
	Complete(ctx context.Context, prompt string) (string, error)
	// Model returns the model identifier requests run against.
	Model() string
}

// Client talks to an OpenAI-compatible completion endpoint. The base URL
// points at OpenRouter by default.
type Client struct {
	log zerolog.Logger

	client *openai.Client
	model  openai.ChatModel
}

func NewClient(apiKey, baseURL, model string) *Client {
	log := log.NewLogger("llm")

	log.Info().Str("base_url", baseURL).Str("model", model).Msg("Initializing completion client")
	client := openai.NewClient(
		option.WithAPIKey(apiKey),
		option.WithBaseURL(baseURL),
		option.WithHeader("HTTP-Referer", REFERER),
		option.WithHeader("X-Title", TITLE),
	)

	return &Client{
		log:    log,
		client: client,
		model:  openai.ChatModel(model),
	}
}

// Complete runs one chat completion with the configured model.
func (c *Client) Complete(ctx context.Context, prompt string) (string, error) {
	start := time.Now()

	chat, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Messages: openai.F([]openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		}),
		Model:       openai.F(c.model),
		Temperature: openai.Float(TEMPERATURE),
		MaxTokens:   openai.Int(MAX_TOKENS),
	})
	if err != nil {
		return "", errors.Wrap(err, "completion request failed")
	}

	if len(chat.Choices) == 0 {
		return "", errors.New("completion returned no choices")
	}

	c.log.Debug().Dur("duration", time.Since(start)).Int("prompt_len", len(prompt)).Msg("Completion finished")

	return chat.Choices[0].Message.Content, nil
}

func (c *Client) Model() string {
	return string(c.model)
}
