// Package recommender orchestrates one recommendation turn: compose the
// prompt, call the text-generation provider, extract records, and back-fill
// the computed fields.
package recommender

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/novelquest/novelquest/internal/config"
	"github.com/novelquest/novelquest/internal/covers"
	"github.com/novelquest/novelquest/internal/links"
	"github.com/novelquest/novelquest/internal/providers"
	"github.com/novelquest/novelquest/internal/recommend"
	"github.com/novelquest/novelquest/internal/session"
	"github.com/novelquest/novelquest/internal/types"
)

// ErrEmptyQuery indicates a blank request reached the service. Callers are
// expected to reject empty submissions first; this is the backstop.
var ErrEmptyQuery = errors.New("query must not be empty")

// ErrNoRecommendations indicates the model's reply could not be parsed into
// any book record. It is not a gateway failure: the caller should ask the
// user to rephrase.
var ErrNoRecommendations = errors.New("no recommendations could be parsed from the response")

// CoverResolver is the cover-lookup collaborator boundary.
type CoverResolver interface {
	Resolve(ctx context.Context, title, author string) (string, error)
}

// Service runs recommendation turns.
type Service struct {
	registry  *providers.Registry
	covers    CoverResolver
	sessions  *session.Manager
	extractor *recommend.Extractor
	cfg       func() *config.Config
	logger    *slog.Logger
}

// New creates a recommendation service. cfg is called per turn so config
// hot-reloads take effect without restarting.
func New(registry *providers.Registry, resolver CoverResolver, sessions *session.Manager, cfg func() *config.Config, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		registry:  registry,
		covers:    resolver,
		sessions:  sessions,
		extractor: recommend.NewExtractor(logger),
		cfg:       cfg,
		logger:    logger,
	}
}

// TurnRequest is one user submission.
type TurnRequest struct {
	// SessionID continues an existing conversation. Empty starts a new one.
	SessionID string

	// Query is the user's free-text description.
	Query string

	// Count is the requested number of books (clamped to 1-10; 0 uses the
	// configured default).
	Count int

	// Filters are the optional constraints from the form.
	Filters types.Filters

	// Provider names the client to use; empty uses the configured default.
	Provider string
}

// TurnResult is the outcome of a successful turn.
type TurnResult struct {
	SessionID string             `json:"session_id"`
	Books     []types.BookRecord `json:"books"`
	Provider  string             `json:"provider"`
	ModelUsed string             `json:"model_used"`
}

// Recommend runs one turn. On any failure the session's prior state
// (history and result set) is left unchanged; the user resubmits.
func (s *Service) Recommend(ctx context.Context, req TurnRequest) (*TurnResult, error) {
	query := strings.TrimSpace(req.Query)
	if query == "" {
		return nil, ErrEmptyQuery
	}

	cfg := s.cfg()
	count := req.Count
	if count == 0 {
		count = cfg.Defaults.ResultCount
	}
	count = recommend.ClampCount(count)

	providerName := req.Provider
	if providerName == "" {
		providerName = cfg.Defaults.Provider
	}
	client, err := s.registry.Get(providerName)
	if err != nil {
		return nil, err
	}

	sessionID := s.sessions.GetOrCreate(req.SessionID)
	history := s.sessions.History(sessionID)

	message := recommend.TurnMessage(query, req.Filters, history)
	requestID := uuid.New().String()

	s.logger.Info("recommendation turn",
		"session_id", sessionID,
		"request_id", requestID,
		"provider", providerName,
		"count", count,
		"follow_up", len(history) > 0)

	// One gateway call per turn; failures surface verbatim.
	result, err := client.Generate(ctx, &providers.Request{
		System:    recommend.SystemPrompt(s.extractor.Schema, count),
		Message:   message,
		RequestID: requestID,
	})
	if err != nil {
		return nil, err
	}

	books := s.extractor.Extract(result.Text)
	if len(books) == 0 {
		s.logger.Warn("no records extracted",
			"session_id", sessionID,
			"request_id", requestID,
			"response_len", len(result.Text))
		return nil, ErrNoRecommendations
	}

	s.backfill(ctx, books)

	userTurn := types.ConversationTurn{Role: types.RoleUser, Content: message}
	assistantTurn := types.ConversationTurn{Role: types.RoleAssistant, Content: result.Text}
	if err := s.sessions.ApplyTurn(sessionID, userTurn, assistantTurn, books); err != nil {
		return nil, fmt.Errorf("failed to record turn: %w", err)
	}

	return &TurnResult{
		SessionID: sessionID,
		Books:     books,
		Provider:  result.Provider,
		ModelUsed: result.ModelUsed,
	}, nil
}

// backfill computes the fields the model is not trusted to produce: the
// purchase link (deterministic) and the cover image (one lookup per book,
// placeholder on any failure).
func (s *Service) backfill(ctx context.Context, books []types.BookRecord) {
	coversEnabled := s.covers != nil && s.cfg().Covers.Enabled
	for i := range books {
		b := &books[i]
		b.PurchaseLink = links.AmazonSearchURL(b.Name, b.Author)
		b.CoverImageURL = covers.PlaceholderURL
		if !coversEnabled {
			continue
		}
		coverURL, err := s.covers.Resolve(ctx, b.Name, b.Author)
		if err != nil {
			s.logger.Debug("cover lookup failed", "name", b.Name, "error", err)
			continue
		}
		b.CoverImageURL = coverURL
	}
}
