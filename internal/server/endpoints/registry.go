package endpoints

import (
	"github.com/novelquest/novelquest/internal/api"
)

// Config holds dependencies needed by some endpoints.
type Config struct {
	SwaggerSpecPath string
}

// All returns all endpoint instances.
func All(cfg Config) []api.Endpoint {
	return []api.Endpoint{
		// Health endpoints
		&HealthEndpoint{},
		&StatusEndpoint{},

		// Recommendation endpoint
		&RecommendEndpoint{},

		// Session endpoints
		&GetSessionEndpoint{},
		&ClearSessionEndpoint{},

		// Favorites endpoints
		&ListFavoritesEndpoint{},
		&AddFavoriteEndpoint{},
		&RemoveFavoriteEndpoint{},

		// Provider endpoints
		&ProvidersEndpoint{},

		// Swagger/OpenAPI endpoints
		&SwaggerEndpoint{SpecPath: cfg.SwaggerSpecPath},
		&SwaggerUIEndpoint{},

		// Static files (catch-all, must be last)
		&StaticEndpoint{},
	}
}

// SessionCommands returns endpoints for session operations.
// This groups session-related commands under "session" subcommand.
func SessionCommands() []api.Endpoint {
	return []api.Endpoint{
		&GetSessionEndpoint{},
		&ClearSessionEndpoint{},
	}
}

// FavoriteCommands returns endpoints for favorites operations.
// This groups favorites-related commands under "favorites" subcommand.
func FavoriteCommands() []api.Endpoint {
	return []api.Endpoint{
		&ListFavoritesEndpoint{},
		&AddFavoriteEndpoint{},
		&RemoveFavoriteEndpoint{},
	}
}
