package session

import (
	"errors"
	"sync"
	"testing"

	"github.com/novelquest/novelquest/internal/types"
)

func TestGetOrCreate(t *testing.T) {
	m := NewManager(nil)

	t.Run("empty id creates new session", func(t *testing.T) {
		id := m.GetOrCreate("")
		if id == "" {
			t.Fatal("expected non-empty session ID")
		}
		if _, err := m.Snapshot(id); err != nil {
			t.Errorf("created session not found: %v", err)
		}
	})

	t.Run("known id is returned unchanged", func(t *testing.T) {
		id := m.Create()
		if got := m.GetOrCreate(id); got != id {
			t.Errorf("expected %q, got %q", id, got)
		}
	})

	t.Run("unknown id is adopted", func(t *testing.T) {
		id := m.GetOrCreate("client-chosen-id")
		if id != "client-chosen-id" {
			t.Errorf("expected client-chosen-id, got %q", id)
		}
		if _, err := m.Snapshot(id); err != nil {
			t.Errorf("adopted session not found: %v", err)
		}
	})
}

func TestApplyTurn(t *testing.T) {
	m := NewManager(nil)
	id := m.Create()

	books := []types.BookRecord{{Name: "Dune", Author: "Frank Herbert"}}
	err := m.ApplyTurn(id,
		types.ConversationTurn{Role: types.RoleUser, Content: "sci-fi please"},
		types.ConversationTurn{Role: types.RoleAssistant, Content: "Book 1:\nName: Dune"},
		books,
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	s, err := m.Snapshot(id)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(s.History) != 2 {
		t.Errorf("expected 2 history turns, got %d", len(s.History))
	}
	if s.History[0].Role != types.RoleUser || s.History[1].Role != types.RoleAssistant {
		t.Error("history turns out of order")
	}
	if len(s.Books) != 1 || s.Books[0].Name != "Dune" {
		t.Errorf("unexpected books %v", s.Books)
	}

	t.Run("results replaced wholesale", func(t *testing.T) {
		next := []types.BookRecord{{Name: "Hyperion", Author: "Dan Simmons"}}
		if err := m.ApplyTurn(id,
			types.ConversationTurn{Role: types.RoleUser, Content: "something newer"},
			types.ConversationTurn{Role: types.RoleAssistant, Content: "Book 1:\nName: Hyperion"},
			next,
		); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		s, _ := m.Snapshot(id)
		if len(s.Books) != 1 || s.Books[0].Name != "Hyperion" {
			t.Errorf("expected replaced result set, got %v", s.Books)
		}
		if len(s.History) != 4 {
			t.Errorf("expected 4 history turns, got %d", len(s.History))
		}
	})

	t.Run("unknown session", func(t *testing.T) {
		err := m.ApplyTurn("nope", types.ConversationTurn{}, types.ConversationTurn{}, nil)
		if !errors.Is(err, ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})
}

func TestClear(t *testing.T) {
	m := NewManager(nil)
	id := m.Create()

	book := types.BookRecord{Name: "Dune", Author: "Frank Herbert"}
	_ = m.ApplyTurn(id,
		types.ConversationTurn{Role: types.RoleUser, Content: "q"},
		types.ConversationTurn{Role: types.RoleAssistant, Content: "a"},
		[]types.BookRecord{book},
	)
	if _, err := m.AddFavorite(id, book); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := m.Clear(id); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	s, _ := m.Snapshot(id)
	if len(s.History) != 0 || len(s.Books) != 0 {
		t.Error("expected history and books cleared")
	}
	if len(s.Favorites) != 1 {
		t.Error("favorites should survive a clear")
	}
}

func TestFavorites(t *testing.T) {
	m := NewManager(nil)
	id := m.Create()
	dune := types.BookRecord{Name: "Dune", Author: "Frank Herbert"}

	t.Run("add and list", func(t *testing.T) {
		added, err := m.AddFavorite(id, dune)
		if err != nil || !added {
			t.Fatalf("expected add to succeed, got added=%v err=%v", added, err)
		}
		favs, err := m.Favorites(id)
		if err != nil || len(favs) != 1 {
			t.Fatalf("expected 1 favorite, got %v (%v)", favs, err)
		}
	})

	t.Run("duplicate is ignored", func(t *testing.T) {
		// Same book, different case
		added, err := m.AddFavorite(id, types.BookRecord{Name: "DUNE", Author: "frank herbert"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if added {
			t.Error("expected duplicate to be rejected")
		}
	})

	t.Run("remove", func(t *testing.T) {
		removed, err := m.RemoveFavorite(id, "dune", "Frank Herbert")
		if err != nil || !removed {
			t.Fatalf("expected remove to succeed, got removed=%v err=%v", removed, err)
		}
		favs, _ := m.Favorites(id)
		if len(favs) != 0 {
			t.Errorf("expected no favorites, got %v", favs)
		}
	})

	t.Run("remove missing", func(t *testing.T) {
		removed, err := m.RemoveFavorite(id, "Nope", "Nobody")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if removed {
			t.Error("expected no removal for unknown book")
		}
	})
}

func TestSnapshotIsolation(t *testing.T) {
	m := NewManager(nil)
	id := m.Create()
	_ = m.ApplyTurn(id,
		types.ConversationTurn{Role: types.RoleUser, Content: "q"},
		types.ConversationTurn{Role: types.RoleAssistant, Content: "a"},
		[]types.BookRecord{{Name: "Dune", Author: "Frank Herbert"}},
	)

	s, _ := m.Snapshot(id)
	s.Books[0].Name = "mutated"
	s.History[0].Content = "mutated"

	fresh, _ := m.Snapshot(id)
	if fresh.Books[0].Name != "Dune" || fresh.History[0].Content != "q" {
		t.Error("snapshot mutation leaked into stored session")
	}
}

func TestConcurrentAccess(t *testing.T) {
	m := NewManager(nil)
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			id := m.Create()
			_ = m.ApplyTurn(id,
				types.ConversationTurn{Role: types.RoleUser, Content: "q"},
				types.ConversationTurn{Role: types.RoleAssistant, Content: "a"},
				nil,
			)
			_, _ = m.Snapshot(id)
		}()
	}
	wg.Wait()
	if m.Count() != 20 {
		t.Errorf("expected 20 sessions, got %d", m.Count())
	}
}
