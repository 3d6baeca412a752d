// Package providers implements text-generation clients and their registry.
package providers

import (
	"context"
	"strings"
	"time"
)

// Client is the text-generation gateway boundary. Given a composed prompt
// and optional prior turns it returns a block of free text. The caller does
// not retry: a single failure surfaces as a failed turn.
type Client interface {
	// Generate sends one completion request and returns the reply text.
	Generate(ctx context.Context, req *Request) (*Result, error)

	// Name returns the client identifier (e.g. "gemini").
	Name() string
}

// Message is one prior conversation turn sent as context.
type Message struct {
	Role    string `json:"role"` // "user" or "assistant"
	Content string `json:"content"`
}

// Request is a completion request.
type Request struct {
	// System is the fixed system instruction.
	System string `json:"system"`

	// History holds prior turns, oldest first. May be empty.
	History []Message `json:"history,omitempty"`

	// Message is the new user turn.
	Message string `json:"message"`

	// Model overrides the client default when set.
	Model string `json:"model,omitempty"`

	// Generation parameters. Zero values use the client defaults.
	Temperature float64 `json:"temperature,omitempty"`
	MaxTokens   int     `json:"max_tokens,omitempty"`

	// RequestID tracks the request through logs.
	RequestID string `json:"-"`
}

// Result is the reply from a completion request.
type Result struct {
	Text string `json:"text"`

	PromptTokens     int `json:"prompt_tokens,omitempty"`
	CompletionTokens int `json:"completion_tokens,omitempty"`

	Provider  string        `json:"provider"`
	ModelUsed string        `json:"model_used"`
	RequestID string        `json:"request_id"`
	TotalTime time.Duration `json:"total_time"`
}

// rateLimitMarkers are substrings that identify a rate-limit failure in
// provider error text. No structured error code is defined by the gateway
// contract, so detection is substring-based.
var rateLimitMarkers = []string{
	"429",
	"rate limit",
	"rate-limit",
	"resource_exhausted",
	"quota",
	"too many requests",
}

// IsRateLimited reports whether err looks like a provider rate limit.
func IsRateLimited(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	for _, marker := range rateLimitMarkers {
		if strings.Contains(msg, marker) {
			return true
		}
	}
	return false
}
