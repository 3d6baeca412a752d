// Package covers resolves book cover images via the Open Library API.
package covers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// PlaceholderURL is shown when no cover can be resolved.
const PlaceholderURL = "https://i.imgur.com/YsaUJOQ.png"

const coversHost = "https://covers.openlibrary.org"

// ErrNoCover indicates the lookup succeeded but returned no usable
// image identifier.
var ErrNoCover = errors.New("no cover found")

// ErrRateLimited indicates the lookup provider throttled the request.
var ErrRateLimited = errors.New("rate limited by cover provider")

// Resolver looks up cover image URLs by title and author.
// It performs a single search per book with a short timeout and no retries;
// callers substitute PlaceholderURL on any failure.
type Resolver struct {
	client  *http.Client
	baseURL string
}

// NewResolver creates a Resolver against the public Open Library API.
func NewResolver() *Resolver {
	return &Resolver{
		client:  &http.Client{Timeout: 5 * time.Second},
		baseURL: "https://openlibrary.org",
	}
}

// NewResolverWithBase creates a Resolver against a custom endpoint (tests).
func NewResolverWithBase(baseURL string, client *http.Client) *Resolver {
	if client == nil {
		client = &http.Client{Timeout: 5 * time.Second}
	}
	return &Resolver{client: client, baseURL: baseURL}
}

// olSearchResponse is the subset of the search response we read.
type olSearchResponse struct {
	NumFound int           `json:"numFound"`
	Docs     []olSearchDoc `json:"docs"`
}

type olSearchDoc struct {
	CoverI int      `json:"cover_i"`
	ISBN   []string `json:"isbn"`
}

// Resolve returns a cover image URL for the given book.
//
// The first search result's cover identifier is preferred; its first ISBN is
// the fallback. ErrNoCover is returned when neither is present.
func (r *Resolver) Resolve(ctx context.Context, title, author string) (string, error) {
	params := url.Values{}
	params.Set("title", title)
	if author != "" {
		params.Set("author", author)
	}
	params.Set("limit", "1")
	params.Set("fields", "cover_i,isbn")

	searchURL := fmt.Sprintf("%s/search.json?%s", r.baseURL, params.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, searchURL, nil)
	if err != nil {
		return "", err
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		return "", ErrRateLimited
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}

	var data olSearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return "", err
	}
	if data.NumFound == 0 || len(data.Docs) == 0 {
		return "", ErrNoCover
	}

	doc := data.Docs[0]
	if doc.CoverI > 0 {
		return fmt.Sprintf("%s/b/id/%d-M.jpg", coversHost, doc.CoverI), nil
	}
	if len(doc.ISBN) > 0 && doc.ISBN[0] != "" {
		return fmt.Sprintf("%s/b/isbn/%s-M.jpg", coversHost, doc.ISBN[0]), nil
	}
	return "", ErrNoCover
}
