package ports

import (
	"context"

	"github.com/fredcamaral/deckmd/internal/domain/entities"
)

// ConversionHandle is what a caller holds while a run is in flight: a
// progress stream and exactly one terminal result. Both channels are
// closed once the run reaches a terminal state.
type ConversionHandle interface {
	// ID identifies the run
	ID() string

	// Progress yields percentages in [0, 100], non-decreasing. A
	// non-empty deck starts at 0; every run that gets past reading
	// ends at exactly 100.
	Progress() <-chan int

	// Result yields the single terminal result, then closes.
	Result() <-chan entities.ConversionResult
}

// Converter starts conversion runs. One run at a time per engine
// instance; a second Convert while a run is outstanding fails with
// entities.ErrConversionInProgress.
type Converter interface {
	// Convert starts a background run converting sourcePath into
	// destPath. An empty destPath selects the default destination
	// (source path with the markup extension). Cancelling ctx stops
	// the run cooperatively between slides.
	Convert(ctx context.Context, sourcePath, destPath string) (ConversionHandle, error)
}
