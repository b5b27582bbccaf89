package ports

import (
	"context"

	"github.com/fredcamaral/deckmd/internal/domain/entities"
)

// ConfigLoader loads tool configuration from the filesystem
type ConfigLoader interface {
	// LoadGlobal loads the user-wide configuration, creating defaults
	// on first run.
	LoadGlobal(ctx context.Context) (*entities.Config, error)

	// LoadLocal loads the optional per-directory configuration; a nil
	// config with nil error means none was found.
	LoadLocal(ctx context.Context, dir string) (*entities.Config, error)
}
