package recommender

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/novelquest/novelquest/internal/config"
	"github.com/novelquest/novelquest/internal/covers"
	"github.com/novelquest/novelquest/internal/providers"
	"github.com/novelquest/novelquest/internal/session"
	"github.com/novelquest/novelquest/internal/types"
)

const goodReply = `Book 1:
Name: Dune
Author: Frank Herbert
Genre: Science Fiction, Epic
Price: ₹499
ai_reasoning: A genre-defining desert epic.
Amazon Link:
description: Politics and prophecy on Arrakis.

Book 2:
Name: Hyperion
Author: Dan Simmons
Genre: Science Fiction
Price: ₹599
ai_reasoning: Pilgrims tell their stories.
Amazon Link:
description: A far-future Canterbury Tales.
`

// fixedResolver returns a constant cover URL or error.
type fixedResolver struct {
	url string
	err error
}

func (f *fixedResolver) Resolve(ctx context.Context, title, author string) (string, error) {
	return f.url, f.err
}

func newTestService(t *testing.T, mock *providers.MockClient, resolver CoverResolver) (*Service, *session.Manager) {
	t.Helper()
	registry := providers.NewRegistry()
	registry.Register("mock", mock)
	sessions := session.NewManager(nil)
	cfg := config.DefaultConfig()
	cfg.Defaults.Provider = "mock"
	svc := New(registry, resolver, sessions, func() *config.Config { return cfg }, nil)
	return svc, sessions
}

func TestRecommend(t *testing.T) {
	t.Run("happy path", func(t *testing.T) {
		mock := providers.NewMockClient()
		mock.ResponseText = goodReply
		svc, sessions := newTestService(t, mock, &fixedResolver{url: "https://covers.openlibrary.org/b/id/1-M.jpg"})

		result, err := svc.Recommend(context.Background(), TurnRequest{Query: "epic sci-fi"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(result.Books) != 2 {
			t.Fatalf("expected 2 books, got %d", len(result.Books))
		}
		if result.SessionID == "" {
			t.Error("expected a session ID")
		}

		dune := result.Books[0]
		if dune.PurchaseLink != "https://www.amazon.in/s?k=Dune%20Frank%20Herbert%20book" {
			t.Errorf("unexpected purchase link %q", dune.PurchaseLink)
		}
		if dune.CoverImageURL != "https://covers.openlibrary.org/b/id/1-M.jpg" {
			t.Errorf("unexpected cover %q", dune.CoverImageURL)
		}

		s, err := sessions.Snapshot(result.SessionID)
		if err != nil {
			t.Fatalf("session missing: %v", err)
		}
		if len(s.History) != 2 {
			t.Errorf("expected 2 history turns, got %d", len(s.History))
		}
		if len(s.Books) != 2 {
			t.Errorf("expected result set recorded, got %d books", len(s.Books))
		}
	})

	t.Run("cover failure falls back to placeholder", func(t *testing.T) {
		mock := providers.NewMockClient()
		mock.ResponseText = goodReply
		svc, _ := newTestService(t, mock, &fixedResolver{err: covers.ErrNoCover})

		result, err := svc.Recommend(context.Background(), TurnRequest{Query: "epic sci-fi"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		for _, b := range result.Books {
			if b.CoverImageURL != covers.PlaceholderURL {
				t.Errorf("expected placeholder cover, got %q", b.CoverImageURL)
			}
		}
	})

	t.Run("cover lookup follows config changes", func(t *testing.T) {
		mock := providers.NewMockClient()
		mock.ResponseText = goodReply
		registry := providers.NewRegistry()
		registry.Register("mock", mock)
		cfg := config.DefaultConfig()
		cfg.Defaults.Provider = "mock"
		cfg.Covers.Enabled = false
		svc := New(registry, &fixedResolver{url: "https://covers.openlibrary.org/b/id/1-M.jpg"},
			session.NewManager(nil), func() *config.Config { return cfg }, nil)

		result, err := svc.Recommend(context.Background(), TurnRequest{Query: "epic sci-fi"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if result.Books[0].CoverImageURL != covers.PlaceholderURL {
			t.Errorf("expected placeholder while disabled, got %q", result.Books[0].CoverImageURL)
		}

		// Simulate a config reload enabling covers; the next turn should
		// use the resolver without a restart.
		cfg.Covers.Enabled = true

		result, err = svc.Recommend(context.Background(), TurnRequest{Query: "more sci-fi"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if result.Books[0].CoverImageURL != "https://covers.openlibrary.org/b/id/1-M.jpg" {
			t.Errorf("expected resolved cover after enabling, got %q", result.Books[0].CoverImageURL)
		}
	})

	t.Run("empty query rejected", func(t *testing.T) {
		svc, _ := newTestService(t, providers.NewMockClient(), nil)
		_, err := svc.Recommend(context.Background(), TurnRequest{Query: "   "})
		if !errors.Is(err, ErrEmptyQuery) {
			t.Errorf("expected ErrEmptyQuery, got %v", err)
		}
	})

	t.Run("gateway failure leaves session untouched", func(t *testing.T) {
		mock := providers.NewMockClient()
		mock.ResponseText = goodReply
		svc, sessions := newTestService(t, mock, nil)

		first, err := svc.Recommend(context.Background(), TurnRequest{Query: "epic sci-fi"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		mock.ShouldFail = true
		mock.FailErr = errors.New("upstream exploded")
		_, err = svc.Recommend(context.Background(), TurnRequest{
			SessionID: first.SessionID,
			Query:     "more please",
		})
		if err == nil || !strings.Contains(err.Error(), "upstream exploded") {
			t.Fatalf("expected gateway error to surface, got %v", err)
		}

		s, _ := sessions.Snapshot(first.SessionID)
		if len(s.History) != 2 {
			t.Errorf("failed turn must not grow history, got %d turns", len(s.History))
		}
		if len(s.Books) != 2 {
			t.Errorf("failed turn must not change results, got %d books", len(s.Books))
		}
	})

	t.Run("unparseable reply", func(t *testing.T) {
		mock := providers.NewMockClient()
		mock.ResponseText = "Could you tell me more about what you enjoy reading?"
		svc, sessions := newTestService(t, mock, nil)

		_, err := svc.Recommend(context.Background(), TurnRequest{Query: "hmm"})
		if !errors.Is(err, ErrNoRecommendations) {
			t.Fatalf("expected ErrNoRecommendations, got %v", err)
		}
		if sessions.Count() != 1 {
			t.Errorf("expected the session to exist, got %d", sessions.Count())
		}
	})

	t.Run("unknown provider", func(t *testing.T) {
		svc, _ := newTestService(t, providers.NewMockClient(), nil)
		_, err := svc.Recommend(context.Background(), TurnRequest{Query: "q", Provider: "nope"})
		if err == nil {
			t.Error("expected error for unknown provider")
		}
	})

	t.Run("follow-up includes prior conversation", func(t *testing.T) {
		mock := providers.NewMockClient()
		mock.ResponseText = goodReply
		svc, _ := newTestService(t, mock, nil)

		first, err := svc.Recommend(context.Background(), TurnRequest{Query: "epic sci-fi"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if _, err := svc.Recommend(context.Background(), TurnRequest{
			SessionID: first.SessionID,
			Query:     "shorter books",
			Filters:   types.Filters{PageMax: 300},
		}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		req := mock.LastRequest()
		if req == nil {
			t.Fatal("expected a captured request")
		}
		if !strings.Contains(req.Message, "Previous conversation:") {
			t.Error("expected history in follow-up message")
		}
		if !strings.Contains(req.Message, "New request: shorter books The book should be at most 300 pages.") {
			t.Errorf("unexpected message %q", req.Message)
		}
	})
}
