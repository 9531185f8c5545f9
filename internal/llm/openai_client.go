// ABOUTME: OpenAI client for embeddings and chat completions
// ABOUTME: Retries transient failures with backoff and reports every failure as a provider error
package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	openai "github.com/sashabaranov/go-openai"

	"github.com/harper/vault-assistant/internal/logging"
	"github.com/harper/vault-assistant/internal/models"
	"github.com/harper/vault-assistant/internal/util"
)

const (
	// DefaultChatModel is the default model for chat completions
	DefaultChatModel = "gpt-4o-mini"
	// DefaultEmbeddingModel is the default model for embeddings
	DefaultEmbeddingModel = string(openai.SmallEmbedding3)
)

// ClientConfig holds configuration for the OpenAI client
type ClientConfig struct {
	APIKey         string
	BaseURL        string
	ChatModel      string
	EmbeddingModel string
	Timeout        time.Duration
	MaxRetries     int
	RetryDelay     time.Duration
}

// DefaultConfig returns the default client configuration
func DefaultConfig(apiKey string) *ClientConfig {
	return &ClientConfig{
		APIKey:         apiKey,
		ChatModel:      DefaultChatModel,
		EmbeddingModel: DefaultEmbeddingModel,
		Timeout:        30 * time.Second,
		MaxRetries:     3,
		RetryDelay:     time.Second * 2,
	}
}

// OpenAIClient wraps the OpenAI API client with retry logic
type OpenAIClient struct {
	client         *openai.Client
	apiKey         string
	chatModel      string
	embeddingModel string
	timeout        time.Duration
	maxRetries     int
	retryDelay     time.Duration
	logger         *log.Logger
}

// NewOpenAIClient creates a new OpenAI client with the given API key using default configuration
func NewOpenAIClient(apiKey string) *OpenAIClient {
	return NewOpenAIClientWithConfig(DefaultConfig(apiKey))
}

// NewOpenAIClientWithConfig creates a new OpenAI client with custom configuration.
// A missing key is reported by Validate rather than here so callers can decide
// when credentials are needed.
func NewOpenAIClientWithConfig(config *ClientConfig) *OpenAIClient {
	oaiConfig := openai.DefaultConfig(config.APIKey)
	if config.BaseURL != "" {
		oaiConfig.BaseURL = config.BaseURL
	}

	chatModel := config.ChatModel
	if chatModel == "" {
		chatModel = DefaultChatModel
	}
	embeddingModel := config.EmbeddingModel
	if embeddingModel == "" {
		embeddingModel = DefaultEmbeddingModel
	}
	timeout := config.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	return &OpenAIClient{
		client:         openai.NewClientWithConfig(oaiConfig),
		apiKey:         config.APIKey,
		chatModel:      chatModel,
		embeddingModel: embeddingModel,
		timeout:        timeout,
		maxRetries:     config.MaxRetries,
		retryDelay:     config.RetryDelay,
		logger:         logging.New("OpenAI"),
	}
}

// Validate reports a configuration error when no API key is set
func (c *OpenAIClient) Validate() error {
	if strings.TrimSpace(c.apiKey) == "" {
		return fmt.Errorf("%w: OpenAI API key is required (set OPENAI_API_KEY)", models.ErrConfiguration)
	}
	return nil
}

// ModelName returns the embedding model in use
func (c *OpenAIClient) ModelName() string {
	return c.embeddingModel
}

// GenerateEmbedding returns the embedding vector for text
func (c *OpenAIClient) GenerateEmbedding(ctx context.Context, text string) ([]float64, error) {
	var embedding []float64

	err := c.withRetry(ctx, "embedding", func(callCtx context.Context) error {
		resp, err := c.client.CreateEmbeddings(callCtx, openai.EmbeddingRequestStrings{
			Input: []string{text},
			Model: openai.EmbeddingModel(c.embeddingModel),
		})
		if err != nil {
			return err
		}
		if len(resp.Data) == 0 || len(resp.Data[0].Embedding) == 0 {
			return errors.New("no embeddings returned")
		}

		// Convert []float32 to []float64
		embedding32 := resp.Data[0].Embedding
		embedding = make([]float64, len(embedding32))
		for i, v := range embedding32 {
			embedding[i] = float64(v)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return embedding, nil
}

// Complete sends one non-streaming chat completion and returns the reply text.
// An empty system message is omitted.
func (c *OpenAIClient) Complete(ctx context.Context, system, prompt string) (string, error) {
	var messages []openai.ChatCompletionMessage
	if system != "" {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: system,
		})
	}
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: prompt,
	})

	var reply string
	err := c.withRetry(ctx, "chat", func(callCtx context.Context) error {
		resp, err := c.client.CreateChatCompletion(callCtx, openai.ChatCompletionRequest{
			Model:    c.chatModel,
			Messages: messages,
		})
		if err != nil {
			return err
		}
		if len(resp.Choices) == 0 {
			return errors.New("no completion choices returned")
		}
		reply = resp.Choices[0].Message.Content
		return nil
	})
	if err != nil {
		return "", err
	}
	return reply, nil
}

// withRetry runs call until it succeeds, fails permanently, or retries run out.
// Every returned error other than cancellation wraps ErrProvider.
func (c *OpenAIClient) withRetry(ctx context.Context, op string, call func(context.Context) error) error {
	var lastErr error

	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			if err := util.Sleep(ctx, util.CalculateBackoff(c.retryDelay, attempt)); err != nil {
				return err
			}
		}

		callCtx, cancel := context.WithTimeout(ctx, c.timeout)
		err := call(callCtx)
		cancel()

		if err == nil {
			return nil
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}

		lastErr = fmt.Errorf("attempt %d: %w", attempt+1, err)
		if !retryable(err) {
			break
		}
		c.logger.Warn("request failed, retrying", "op", op, "attempt", attempt+1, "err", err)
	}

	return fmt.Errorf("%w: %s failed: %w", models.ErrProvider, op, lastErr)
}

// retryable reports whether err may succeed on a later attempt.
// Client errors other than rate limiting are permanent.
func retryable(err error) bool {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return !isPermanentStatus(apiErr.HTTPStatusCode)
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return !isPermanentStatus(reqErr.HTTPStatusCode)
	}
	return true
}

func isPermanentStatus(code int) bool {
	return code >= 400 && code < 500 && code != http.StatusTooManyRequests
}
