package ports

import (
	"context"

	"github.com/fredcamaral/deckmd/internal/domain/entities"
)

// DeckReader opens a slide deck container and produces its ordered slide
// sequence. Implementations must release the container handle before
// returning, on every path including validation failure.
type DeckReader interface {
	// Open reads the deck at path. Container-level problems are reported
	// as ConversionError values (not_found or invalid_format); shapes
	// that carry no text are skipped silently.
	Open(ctx context.Context, path string) (*entities.Deck, error)
}
