package endpoints

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/spf13/cobra"

	"github.com/novelquest/novelquest/internal/api"
	"github.com/novelquest/novelquest/internal/session"
	"github.com/novelquest/novelquest/internal/svcctx"
	"github.com/novelquest/novelquest/internal/types"
)

// FavoritesResponse lists a session's favorites.
type FavoritesResponse struct {
	SessionID string             `json:"session_id"`
	Favorites []types.BookRecord `json:"favorites"`
}

// ListFavoritesEndpoint handles GET /api/sessions/{id}/favorites.
type ListFavoritesEndpoint struct{}

func (e *ListFavoritesEndpoint) Route() (string, string, http.HandlerFunc) {
	return "GET", "/api/sessions/{id}/favorites", e.handler
}

func (e *ListFavoritesEndpoint) RequiresInit() bool { return true }

// handler godoc
//
//	@Summary		List favorites
//	@Tags			favorites
//	@Produce		json
//	@Param			id	path		string	true	"Session ID"
//	@Success		200	{object}	FavoritesResponse
//	@Failure		404	{object}	ErrorResponse
//	@Router			/api/sessions/{id}/favorites [get]
func (e *ListFavoritesEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	sessions := svcctx.SessionsFrom(r.Context())
	if sessions == nil {
		writeError(w, http.StatusServiceUnavailable, "session manager not initialized")
		return
	}

	favorites, err := sessions.Favorites(id)
	if err != nil {
		if errors.Is(err, session.ErrNotFound) {
			writeError(w, http.StatusNotFound, "session not found")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, FavoritesResponse{SessionID: id, Favorites: favorites})
}

func (e *ListFavoritesEndpoint) Command(getServerURL func() string) *cobra.Command {
	return &cobra.Command{
		Use:   "list <session-id>",
		Short: "List a session's favorite books",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client := api.NewClient(getServerURL())
			var resp FavoritesResponse
			if err := client.Get(cmd.Context(), "/api/sessions/"+args[0]+"/favorites", &resp); err != nil {
				return err
			}
			return api.Output(resp)
		},
	}
}

// AddFavoriteEndpoint handles POST /api/sessions/{id}/favorites.
// The book is copied by value from the session's displayed records.
type AddFavoriteEndpoint struct{}

func (e *AddFavoriteEndpoint) Route() (string, string, http.HandlerFunc) {
	return "POST", "/api/sessions/{id}/favorites", e.handler
}

func (e *AddFavoriteEndpoint) RequiresInit() bool { return true }

// handler godoc
//
//	@Summary		Add a favorite
//	@Description	Copies a book record into the session's favorites; duplicates (same name and author) are ignored
//	@Tags			favorites
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string				true	"Session ID"
//	@Param			book	body		types.BookRecord	true	"Book to favorite"
//	@Success		200		{object}	FavoritesResponse
//	@Failure		400		{object}	ErrorResponse
//	@Failure		404		{object}	ErrorResponse
//	@Router			/api/sessions/{id}/favorites [post]
func (e *AddFavoriteEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var book types.BookRecord
	if err := json.NewDecoder(r.Body).Decode(&book); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body: "+err.Error())
		return
	}
	if strings.TrimSpace(book.Name) == "" {
		writeError(w, http.StatusBadRequest, "book name is required")
		return
	}

	sessions := svcctx.SessionsFrom(r.Context())
	if sessions == nil {
		writeError(w, http.StatusServiceUnavailable, "session manager not initialized")
		return
	}

	if _, err := sessions.AddFavorite(id, book); err != nil {
		if errors.Is(err, session.ErrNotFound) {
			writeError(w, http.StatusNotFound, "session not found")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	favorites, _ := sessions.Favorites(id)
	writeJSON(w, http.StatusOK, FavoritesResponse{SessionID: id, Favorites: favorites})
}

func (e *AddFavoriteEndpoint) Command(getServerURL func() string) *cobra.Command {
	var author string
	cmd := &cobra.Command{
		Use:   "add <session-id> <book-name>",
		Short: "Add a book to a session's favorites",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			client := api.NewClient(getServerURL())
			book := types.BookRecord{Name: args[1], Author: author}
			var resp FavoritesResponse
			if err := client.Post(cmd.Context(), "/api/sessions/"+args[0]+"/favorites", book, &resp); err != nil {
				return err
			}
			return api.Output(resp)
		},
	}
	cmd.Flags().StringVar(&author, "author", "", "Book author")
	return cmd
}

// RemoveFavoriteEndpoint handles DELETE /api/sessions/{id}/favorites.
// The book is identified by name and author query parameters.
type RemoveFavoriteEndpoint struct{}

func (e *RemoveFavoriteEndpoint) Route() (string, string, http.HandlerFunc) {
	return "DELETE", "/api/sessions/{id}/favorites", e.handler
}

func (e *RemoveFavoriteEndpoint) RequiresInit() bool { return true }

// handler godoc
//
//	@Summary		Remove a favorite
//	@Tags			favorites
//	@Produce		json
//	@Param			id		path		string	true	"Session ID"
//	@Param			name	query		string	true	"Book name"
//	@Param			author	query		string	false	"Book author"
//	@Success		200		{object}	FavoritesResponse
//	@Failure		404		{object}	ErrorResponse
//	@Router			/api/sessions/{id}/favorites [delete]
func (e *RemoveFavoriteEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	name := r.URL.Query().Get("name")
	author := r.URL.Query().Get("author")
	if name == "" {
		writeError(w, http.StatusBadRequest, "name query parameter is required")
		return
	}

	sessions := svcctx.SessionsFrom(r.Context())
	if sessions == nil {
		writeError(w, http.StatusServiceUnavailable, "session manager not initialized")
		return
	}

	removed, err := sessions.RemoveFavorite(id, name, author)
	if err != nil {
		if errors.Is(err, session.ErrNotFound) {
			writeError(w, http.StatusNotFound, "session not found")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if !removed {
		writeError(w, http.StatusNotFound, "favorite not found")
		return
	}

	favorites, _ := sessions.Favorites(id)
	writeJSON(w, http.StatusOK, FavoritesResponse{SessionID: id, Favorites: favorites})
}

func (e *RemoveFavoriteEndpoint) Command(getServerURL func() string) *cobra.Command {
	var author string
	cmd := &cobra.Command{
		Use:   "remove <session-id> <book-name>",
		Short: "Remove a book from a session's favorites",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			client := api.NewClient(getServerURL())
			path := fmt.Sprintf("/api/sessions/%s/favorites?name=%s&author=%s",
				args[0], url.QueryEscape(args[1]), url.QueryEscape(author))
			if err := client.Delete(cmd.Context(), path); err != nil {
				return err
			}
			fmt.Println("Favorite removed")
			return nil
		},
	}
	cmd.Flags().StringVar(&author, "author", "", "Book author")
	return cmd
}
