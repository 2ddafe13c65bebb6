package llm

import (
	"context"
	"fmt"
	"time"

	"github.com/bdschi1/fin-reasoning-eval/internal/config"
)

// Provider is a single model vendor capable of answering benchmark
// prompts.
type Provider interface {
	Name() string
	Complete(ctx context.Context, req *CompletionRequest) (*CompletionResponse, error)
}

type CompletionRequest struct {
	Model       string
	System      string
	Prompt      string
	MaxTokens   int
	Temperature float64
	JSONMode    bool
}

type CompletionResponse struct {
	Content      string
	FinishReason string
	ModelName    string
	Usage        Usage
	Latency      time.Duration
}

type Usage struct {
	PromptTokens     int
	CompletionTokens int
	TotalTokens      int
}

// Client routes completion requests to the configured providers.
type Client struct {
	providers       map[string]Provider
	defaultProvider string
	timeout         time.Duration
}

// NewClient builds a client from configuration. At least one provider
// must be configured; an unknown default falls back to any available
// provider.
func NewClient(cfg *config.LLMConfig) (*Client, error) {
	c := &Client{
		providers:       make(map[string]Provider),
		defaultProvider: cfg.DefaultProvider,
		timeout:         cfg.Timeout,
	}

	if cfg.OllamaBaseURL != "" {
		c.providers["ollama"] = NewOllamaProvider(cfg.OllamaBaseURL, cfg.OllamaModel, cfg.Timeout)
	}

	if cfg.OpenAIAPIKey != "" {
		c.providers["openai"] = NewOpenAIProvider(cfg.OpenAIAPIKey)
	}

	if cfg.AnthropicAPIKey != "" {
		c.providers["anthropic"] = NewAnthropicProvider(cfg.AnthropicAPIKey, cfg.Timeout)
	}

	if len(c.providers) == 0 {
		return nil, fmt.Errorf("no LLM providers configured")
	}

	if _, ok := c.providers[c.defaultProvider]; !ok {
		for name := range c.providers {
			c.defaultProvider = name
			break
		}
	}

	return c, nil
}

// Complete sends the request to the default provider.
func (c *Client) Complete(ctx context.Context, req *CompletionRequest) (*CompletionResponse, error) {
	return c.CompleteWithProvider(ctx, c.defaultProvider, req)
}

// CompleteWithProvider sends the request to a named provider.
func (c *Client) CompleteWithProvider(ctx context.Context, providerName string, req *CompletionRequest) (*CompletionResponse, error) {
	provider, ok := c.providers[providerName]
	if !ok {
		return nil, fmt.Errorf("unknown provider %q", providerName)
	}

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	return provider.Complete(ctx, req)
}

// Providers returns the names of the configured providers.
func (c *Client) Providers() []string {
	names := make([]string, 0, len(c.providers))
	for name := range c.providers {
		names = append(names, name)
	}
	return names
}
