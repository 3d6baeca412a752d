// Package types provides shared types used across multiple packages.
// This package has no dependencies on other novelquest packages to avoid import cycles.
package types

import "strings"

// BookRecord is a single structured recommendation produced by the extractor.
//
// Name, Author, Genres, Rationale and Description come verbatim (after trim)
// from the model's text. PurchaseLink and CoverImageURL are never taken from
// the model - they are computed locally after extraction.
type BookRecord struct {
	Name        string   `json:"name"`
	Author      string   `json:"author"`
	Genres      []string `json:"genres"`
	Price       string   `json:"price,omitempty"`
	Rationale   string   `json:"ai_reasoning"`
	Description string   `json:"description"`

	PurchaseLink  string `json:"purchase_link,omitempty"`
	CoverImageURL string `json:"cover_image_url,omitempty"`
}

// SameBook reports whether two records refer to the same book.
// Used for favorites deduplication; comparison is case-insensitive.
func (b BookRecord) SameBook(other BookRecord) bool {
	return strings.EqualFold(b.Name, other.Name) && strings.EqualFold(b.Author, other.Author)
}

// Conversation roles.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// ConversationTurn is one message in a session's conversation history.
type ConversationTurn struct {
	Role    string `json:"role"` // "user" or "assistant"
	Content string `json:"content"`
}

// Filters are the optional constraints a user can attach to a request.
// Zero values mean "not set".
type Filters struct {
	PageMin int      `json:"page_min,omitempty"`
	PageMax int      `json:"page_max,omitempty"`
	YearMin int      `json:"year_min,omitempty"`
	YearMax int      `json:"year_max,omitempty"`
	Genres  []string `json:"genres,omitempty"`
}

// Empty reports whether no filter constraint is set.
func (f Filters) Empty() bool {
	return f.PageMin == 0 && f.PageMax == 0 && f.YearMin == 0 && f.YearMax == 0 && len(f.Genres) == 0
}
