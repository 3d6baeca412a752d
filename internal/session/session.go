// Package session holds per-session conversation state.
//
// A session owns the conversation history, the current result set, and the
// user-curated favorites. Nothing is persisted: state lives for the lifetime
// of the process and is cleared explicitly by the user.
package session

import (
	"errors"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/novelquest/novelquest/internal/types"
)

// ErrNotFound indicates the session ID is unknown.
var ErrNotFound = errors.New("session not found")

// Session is the mutable state of one user's conversation.
// Fields are only accessed through Manager methods, which hold the lock.
type Session struct {
	ID        string                   `json:"id"`
	History   []types.ConversationTurn `json:"history"`
	Books     []types.BookRecord       `json:"books"`
	Favorites []types.BookRecord       `json:"favorites"`
}

// Manager owns all sessions. Within one session there are no concurrent
// writers (one turn at a time), but different sessions are served by
// different requests, so the map itself is guarded.
type Manager struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	logger   *slog.Logger
}

// NewManager creates an empty session manager.
func NewManager(logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.Default()
	}
	return &Manager{
		sessions: make(map[string]*Session),
		logger:   logger,
	}
}

// Create creates a new session and returns its ID.
func (m *Manager) Create() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	id := uuid.New().String()
	m.sessions[id] = &Session{ID: id}
	m.logger.Debug("created session", "session_id", id)
	return id
}

// GetOrCreate returns the session with the given ID, creating a fresh one
// when the ID is empty or unknown. The returned ID is the effective one.
func (m *Manager) GetOrCreate(id string) string {
	if id != "" {
		m.mu.RLock()
		_, ok := m.sessions[id]
		m.mu.RUnlock()
		if ok {
			return id
		}
	}
	if id == "" {
		return m.Create()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.sessions[id]; !ok {
		m.sessions[id] = &Session{ID: id}
		m.logger.Debug("adopted session", "session_id", id)
	}
	return id
}

// Snapshot returns a copy of the session's state.
func (m *Manager) Snapshot(id string) (*Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &Session{
		ID:        s.ID,
		History:   append([]types.ConversationTurn(nil), s.History...),
		Books:     append([]types.BookRecord(nil), s.Books...),
		Favorites: append([]types.BookRecord(nil), s.Favorites...),
	}, nil
}

// History returns a copy of the session's conversation history.
// An unknown ID yields an empty history.
func (m *Manager) History(id string) []types.ConversationTurn {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[id]
	if !ok {
		return nil
	}
	return append([]types.ConversationTurn(nil), s.History...)
}

// ApplyTurn records a successful turn: both turns are appended to the
// history and the result set is replaced wholesale. Failed turns never reach
// this method, so prior state survives them untouched.
func (m *Manager) ApplyTurn(id string, user, assistant types.ConversationTurn, books []types.BookRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[id]
	if !ok {
		return ErrNotFound
	}
	s.History = append(s.History, user, assistant)
	s.Books = append([]types.BookRecord(nil), books...)
	return nil
}

// Clear resets the session's history and result set. Favorites are a
// separate user-curated collection and survive a clear.
func (m *Manager) Clear(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[id]
	if !ok {
		return ErrNotFound
	}
	s.History = nil
	s.Books = nil
	m.logger.Debug("cleared session", "session_id", id)
	return nil
}

// AddFavorite copies a book into the session's favorites. Returns false
// when the book is already present (matched by name and author).
func (m *Manager) AddFavorite(id string, book types.BookRecord) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[id]
	if !ok {
		return false, ErrNotFound
	}
	for _, fav := range s.Favorites {
		if fav.SameBook(book) {
			return false, nil
		}
	}
	s.Favorites = append(s.Favorites, book)
	return true, nil
}

// RemoveFavorite removes a favorite by name and author. Returns false when
// no matching favorite exists.
func (m *Manager) RemoveFavorite(id, name, author string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[id]
	if !ok {
		return false, ErrNotFound
	}
	probe := types.BookRecord{Name: name, Author: author}
	for i, fav := range s.Favorites {
		if fav.SameBook(probe) {
			s.Favorites = append(s.Favorites[:i], s.Favorites[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

// Favorites returns a copy of the session's favorites.
func (m *Manager) Favorites(id string) ([]types.BookRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	return append([]types.BookRecord(nil), s.Favorites...), nil
}

// Count returns the number of live sessions.
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}
