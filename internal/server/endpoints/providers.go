package endpoints

import (
	"net/http"

	"github.com/spf13/cobra"

	"github.com/novelquest/novelquest/internal/api"
	"github.com/novelquest/novelquest/internal/svcctx"
)

// ProvidersResponse lists the registered LLM providers.
type ProvidersResponse struct {
	Providers []string `json:"providers"`
	Default   string   `json:"default,omitempty"`
}

// ProvidersEndpoint handles GET /api/providers.
type ProvidersEndpoint struct{}

func (e *ProvidersEndpoint) Route() (string, string, http.HandlerFunc) {
	return "GET", "/api/providers", e.handler
}

func (e *ProvidersEndpoint) RequiresInit() bool { return false }

// handler godoc
//
//	@Summary		List providers
//	@Description	Returns the names of all registered LLM providers and the configured default
//	@Tags			providers
//	@Produce		json
//	@Success		200	{object}	ProvidersResponse
//	@Router			/api/providers [get]
func (e *ProvidersEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	resp := ProvidersResponse{Providers: []string{}}

	if registry := svcctx.RegistryFrom(r.Context()); registry != nil {
		resp.Providers = registry.List()
	}
	if mgr := svcctx.ConfigFrom(r.Context()); mgr != nil {
		if cfg := mgr.Get(); cfg != nil {
			resp.Default = cfg.Defaults.Provider
		}
	}

	writeJSON(w, http.StatusOK, resp)
}

func (e *ProvidersEndpoint) Command(getServerURL func() string) *cobra.Command {
	return &cobra.Command{
		Use:   "providers",
		Short: "List registered LLM providers",
		RunE: func(cmd *cobra.Command, args []string) error {
			client := api.NewClient(getServerURL())
			var resp ProvidersResponse
			if err := client.Get(cmd.Context(), "/api/providers", &resp); err != nil {
				return err
			}
			return api.Output(resp)
		},
	}
}
