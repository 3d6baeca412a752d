package endpoints

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/spf13/cobra"

	"github.com/novelquest/novelquest/internal/api"
	"github.com/novelquest/novelquest/internal/providers"
	"github.com/novelquest/novelquest/internal/recommender"
	"github.com/novelquest/novelquest/internal/svcctx"
	"github.com/novelquest/novelquest/internal/types"
)

// RecommendRequest is the body for POST /api/recommendations.
type RecommendRequest struct {
	// SessionID continues an existing conversation; empty starts a new one.
	SessionID string `json:"session_id,omitempty"`

	// Query is the user's free-text book description.
	Query string `json:"query"`

	// Count is the requested number of books (1-10, default from config).
	Count int `json:"count,omitempty"`

	// Filters are optional constraints from the form.
	Filters types.Filters `json:"filters,omitempty"`

	// Provider names the LLM client to use (default from config).
	Provider string `json:"provider,omitempty"`
}

// RecommendResponse is the successful turn result.
type RecommendResponse struct {
	SessionID string             `json:"session_id"`
	Books     []types.BookRecord `json:"books"`
	Provider  string             `json:"provider,omitempty"`
	ModelUsed string             `json:"model_used,omitempty"`
}

// RecommendEndpoint handles POST /api/recommendations.
type RecommendEndpoint struct{}

func (e *RecommendEndpoint) Route() (string, string, http.HandlerFunc) {
	return "POST", "/api/recommendations", e.handler
}

func (e *RecommendEndpoint) RequiresInit() bool { return true }

// handler godoc
//
//	@Summary		Run one recommendation turn
//	@Description	Composes a prompt from the query, filters, and any prior conversation, calls the LLM, and returns structured book records
//	@Tags			recommendations
//	@Accept			json
//	@Produce		json
//	@Param			request	body		RecommendRequest	true	"Recommendation request"
//	@Success		200		{object}	RecommendResponse
//	@Failure		400		{object}	ErrorResponse
//	@Failure		422		{object}	ErrorResponse	"Reply could not be parsed; ask the user to rephrase"
//	@Failure		429		{object}	ErrorResponse	"Provider rate limited"
//	@Failure		502		{object}	ErrorResponse	"Provider failure"
//	@Router			/api/recommendations [post]
func (e *RecommendEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	var req RecommendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body: "+err.Error())
		return
	}
	if strings.TrimSpace(req.Query) == "" {
		writeError(w, http.StatusBadRequest, "query is required")
		return
	}

	svc := svcctx.RecommenderFrom(r.Context())
	if svc == nil {
		writeError(w, http.StatusServiceUnavailable, "recommender not initialized")
		return
	}

	result, err := svc.Recommend(r.Context(), recommender.TurnRequest{
		SessionID: req.SessionID,
		Query:     req.Query,
		Count:     req.Count,
		Filters:   req.Filters,
		Provider:  req.Provider,
	})
	if err != nil {
		switch {
		case errors.Is(err, recommender.ErrEmptyQuery):
			writeError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, recommender.ErrNoRecommendations):
			writeJSON(w, http.StatusUnprocessableEntity, ErrorResponse{
				Error: err.Error(),
				Hint:  "try a more specific description of the book you are looking for",
			})
		case providers.IsRateLimited(err):
			writeJSON(w, http.StatusTooManyRequests, ErrorResponse{
				Error: err.Error(),
				Hint:  "the AI provider is rate limiting requests; wait a moment and resubmit",
			})
		default:
			writeError(w, http.StatusBadGateway, err.Error())
		}
		return
	}

	writeJSON(w, http.StatusOK, RecommendResponse{
		SessionID: result.SessionID,
		Books:     result.Books,
		Provider:  result.Provider,
		ModelUsed: result.ModelUsed,
	})
}

func (e *RecommendEndpoint) Command(getServerURL func() string) *cobra.Command {
	var (
		sessionID string
		count     int
		genres    []string
		pageMin   int
		pageMax   int
		yearMin   int
		yearMax   int
		provider  string
	)

	cmd := &cobra.Command{
		Use:   "recommend <query>",
		Short: "Ask for book recommendations",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client := api.NewClient(getServerURL())

			req := RecommendRequest{
				SessionID: sessionID,
				Query:     args[0],
				Count:     count,
				Provider:  provider,
				Filters: types.Filters{
					PageMin: pageMin,
					PageMax: pageMax,
					YearMin: yearMin,
					YearMax: yearMax,
					Genres:  genres,
				},
			}

			var resp RecommendResponse
			if err := client.Post(cmd.Context(), "/api/recommendations", req, &resp); err != nil {
				return err
			}
			return api.Output(resp)
		},
	}

	cmd.Flags().StringVar(&sessionID, "session", "", "Session ID for follow-up turns")
	cmd.Flags().IntVarP(&count, "count", "n", 0, "Number of books to request (1-10)")
	cmd.Flags().StringSliceVar(&genres, "genre", nil, "Genre filter (repeatable)")
	cmd.Flags().IntVar(&pageMin, "pages-min", 0, "Minimum page count")
	cmd.Flags().IntVar(&pageMax, "pages-max", 0, "Maximum page count")
	cmd.Flags().IntVar(&yearMin, "year-min", 0, "Earliest publication year")
	cmd.Flags().IntVar(&yearMax, "year-max", 0, "Latest publication year")
	cmd.Flags().StringVar(&provider, "provider", "", "LLM provider to use")

	return cmd
}
