package providers

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	openai "github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"

	"github.com/novelquest/novelquest/internal/types"
)

const (
	GeminiName         = "gemini"
	OpenAIName         = "openai"
	geminiDefaultModel = "gemini-2.0-flash"

	// geminiOpenAIBaseURL is Gemini's OpenAI-compatible endpoint.
	geminiOpenAIBaseURL = "https://generativelanguage.googleapis.com/v1beta/openai/"

	// Generation defaults match the tuned values for the recommendation
	// prompt: low-ish temperature for format adherence, enough tokens for
	// ten full blocks.
	defaultTemperature = 0.5
	defaultMaxTokens   = 1250
)

// ChatConfig holds configuration for a chat completion client.
type ChatConfig struct {
	APIKey      string
	Model       string
	Temperature float64
	MaxTokens   int
	Timeout     time.Duration // HTTP timeout
	BaseURL     string        // Optional (tests)
	HTTPClient  *http.Client  // Optional (tests)
}

// ChatClient implements Client on top of the OpenAI SDK. The same client
// serves both the "gemini" provider type (via Gemini's OpenAI-compatible
// endpoint) and a plain "openai" provider type.
type ChatClient struct {
	name        string
	model       string
	temperature float64
	maxTokens   int
	client      openai.Client
}

// NewGeminiClient creates a chat client against Gemini's OpenAI-compatible
// endpoint.
func NewGeminiClient(cfg ChatConfig) *ChatClient {
	if cfg.BaseURL == "" {
		cfg.BaseURL = geminiOpenAIBaseURL
	}
	if cfg.Model == "" {
		cfg.Model = geminiDefaultModel
	}
	return newChatClient(GeminiName, cfg)
}

// NewOpenAIClient creates a chat client against the OpenAI API.
func NewOpenAIClient(cfg ChatConfig) *ChatClient {
	if cfg.Model == "" {
		cfg.Model = "gpt-4o-mini"
	}
	return newChatClient(OpenAIName, cfg)
}

func newChatClient(name string, cfg ChatConfig) *ChatClient {
	if cfg.Temperature <= 0 {
		cfg.Temperature = defaultTemperature
	}
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = defaultMaxTokens
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 60 * time.Second
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}

	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithHTTPClient(httpClient),
		// A failed turn surfaces to the user; no transport retries.
		option.WithMaxRetries(0),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}

	return &ChatClient{
		name:        name,
		model:       cfg.Model,
		temperature: cfg.Temperature,
		maxTokens:   cfg.MaxTokens,
		client:      openai.NewClient(opts...),
	}
}

// Name returns the client identifier.
func (c *ChatClient) Name() string {
	return c.name
}

// Generate sends one completion request and returns the reply text.
func (c *ChatClient) Generate(ctx context.Context, req *Request) (*Result, error) {
	start := time.Now()

	requestID := req.RequestID
	if requestID == "" {
		requestID = uuid.New().String()
	}

	model := req.Model
	if model == "" {
		model = c.model
	}
	temperature := req.Temperature
	if temperature <= 0 {
		temperature = c.temperature
	}
	maxTokens := req.MaxTokens
	if maxTokens <= 0 {
		maxTokens = c.maxTokens
	}

	messages := make([]openai.ChatCompletionMessageParamUnion, 0, len(req.History)+2)
	if req.System != "" {
		messages = append(messages, openai.SystemMessage(req.System))
	}
	for _, m := range req.History {
		switch m.Role {
		case types.RoleAssistant:
			messages = append(messages, openai.AssistantMessage(m.Content))
		default:
			messages = append(messages, openai.UserMessage(m.Content))
		}
	}
	messages = append(messages, openai.UserMessage(req.Message))

	resp, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model:       openai.ChatModel(model),
		Messages:    messages,
		Temperature: openai.Float(temperature),
		MaxTokens:   openai.Int(int64(maxTokens)),
	})
	if err != nil {
		return nil, fmt.Errorf("%s completion failed: %w", c.name, err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("%s returned no choices (model=%s)", c.name, model)
	}

	return &Result{
		Text:             resp.Choices[0].Message.Content,
		PromptTokens:     int(resp.Usage.PromptTokens),
		CompletionTokens: int(resp.Usage.CompletionTokens),
		Provider:         c.name,
		ModelUsed:        model,
		RequestID:        requestID,
		TotalTime:        time.Since(start),
	}, nil
}
