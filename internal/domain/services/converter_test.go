package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fredcamaral/deckmd/internal/adapters/secondary/markdown"
	"github.com/fredcamaral/deckmd/internal/domain/entities"
	"github.com/fredcamaral/deckmd/internal/domain/ports"
	"github.com/fredcamaral/deckmd/internal/test/builders"
)

type stubReader struct {
	deck *entities.Deck
	err  error
}

func (s *stubReader) Open(ctx context.Context, path string) (*entities.Deck, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.deck, nil
}

// blockingReader holds Open until released, to exercise exclusivity.
type blockingReader struct {
	release chan struct{}
	deck    *entities.Deck
}

func (b *blockingReader) Open(ctx context.Context, path string) (*entities.Deck, error) {
	<-b.release
	return b.deck, nil
}

// cancellingReader cancels the run's context as it returns the deck.
type cancellingReader struct {
	cancel context.CancelFunc
	deck   *entities.Deck
}

func (c *cancellingReader) Open(ctx context.Context, path string) (*entities.Deck, error) {
	c.cancel()
	return c.deck, nil
}

type captureWriter struct {
	path    string
	content []byte
	err     error
}

func (w *captureWriter) Write(path string, content []byte) error {
	if w.err != nil {
		return w.err
	}
	w.path = path
	w.content = content
	return nil
}

// drain collects every progress event and the terminal result.
func drain(t *testing.T, h ports.ConversionHandle) ([]int, entities.ConversionResult) {
	t.Helper()

	var events []int
	for v := range h.Progress() {
		events = append(events, v)
	}

	select {
	case res := <-h.Result():
		return events, res
	case <-time.After(5 * time.Second):
		t.Fatal("no terminal result delivered")
		return nil, entities.ConversionResult{}
	}
}

func threeSlideDeck() *entities.Deck {
	return builders.NewDeckBuilder().
		WithSourcePath("/decks/demo.pptx").
		WithSlide(builders.NewSlideBuilder().WithTitle("Intro").WithBlocks("Welcome").Build()).
		WithSlide(builders.NewSlideBuilder().WithBlocks("Point A", "Point B").Build()).
		WithSlide(builders.NewSlideBuilder().WithTitle("Conclusion").Build()).
		Build()
}

func TestConverterService_Convert(t *testing.T) {
	t.Run("three slide round trip", func(t *testing.T) {
		writer := &captureWriter{}
		svc := NewConverterService(&stubReader{deck: threeSlideDeck()}, markdown.NewRenderer(), writer, nil)

		h, err := svc.Convert(context.Background(), "/decks/demo.pptx", "/out/demo.md")
		require.NoError(t, err)
		require.NotEmpty(t, h.ID())

		events, res := drain(t, h)

		assert.Equal(t, []int{0, 33, 66, 100}, events)
		require.True(t, res.Success)
		assert.Equal(t, "/out/demo.md", res.OutputPath)
		assert.Equal(t, "/out/demo.md", writer.path)

		want := "# demo.pptx\n\n" +
			"## Intro\n\nWelcome\n\n---\n\n" +
			"## Slide 2\n\nPoint A\n\nPoint B\n\n---\n\n" +
			"## Conclusion\n\n---\n\n"
		assert.Equal(t, want, string(writer.content))
	})

	t.Run("empty destination selects default", func(t *testing.T) {
		writer := &captureWriter{}
		svc := NewConverterService(&stubReader{deck: threeSlideDeck()}, markdown.NewRenderer(), writer, nil)

		h, err := svc.Convert(context.Background(), "/decks/demo.pptx", "")
		require.NoError(t, err)

		_, res := drain(t, h)
		require.True(t, res.Success)
		assert.Equal(t, "/decks/demo.md", res.OutputPath)
	})

	t.Run("empty source rejected", func(t *testing.T) {
		svc := NewConverterService(&stubReader{}, markdown.NewRenderer(), &captureWriter{}, nil)
		_, err := svc.Convert(context.Background(), "", "")
		require.Error(t, err)
	})

	t.Run("empty deck emits single 100 and header only", func(t *testing.T) {
		deck := builders.NewDeckBuilder().WithSourcePath("/decks/empty.pptx").Build()
		writer := &captureWriter{}
		svc := NewConverterService(&stubReader{deck: deck}, markdown.NewRenderer(), writer, nil)

		h, err := svc.Convert(context.Background(), "/decks/empty.pptx", "")
		require.NoError(t, err)

		events, res := drain(t, h)
		assert.Equal(t, []int{100}, events)
		require.True(t, res.Success)
		assert.Equal(t, "# empty.pptx\n\n", string(writer.content))
	})

	t.Run("single slide deck starts at zero", func(t *testing.T) {
		deck := builders.NewDeckBuilder().
			WithSourcePath("/decks/one.pptx").
			WithSlide(builders.NewSlideBuilder().WithTitle("Only").Build()).
			Build()
		svc := NewConverterService(&stubReader{deck: deck}, markdown.NewRenderer(), &captureWriter{}, nil)

		h, err := svc.Convert(context.Background(), "/decks/one.pptx", "")
		require.NoError(t, err)

		events, res := drain(t, h)
		assert.Equal(t, []int{0, 100}, events)
		assert.True(t, res.Success)
	})

	t.Run("large deck progress is deduplicated and monotonic", func(t *testing.T) {
		db := builders.NewDeckBuilder().WithSourcePath("/decks/big.pptx")
		for i := 0; i < 137; i++ {
			db.WithSlide(builders.NewSlideBuilder().WithBlocks("x").Build())
		}
		svc := NewConverterService(&stubReader{deck: db.Build()}, markdown.NewRenderer(), &captureWriter{}, nil)

		h, err := svc.Convert(context.Background(), "/decks/big.pptx", "")
		require.NoError(t, err)

		events, res := drain(t, h)
		require.True(t, res.Success)
		require.NotEmpty(t, events)

		assert.Equal(t, 0, events[0])
		assert.Equal(t, 100, events[len(events)-1])
		for i := 1; i < len(events); i++ {
			assert.Greater(t, events[i], events[i-1])
		}
	})
}

func TestConverterService_Failures(t *testing.T) {
	t.Run("reader failure emits no progress events", func(t *testing.T) {
		readErr := entities.NewInvalidFormatError("/decks/fake.pptx", errors.New("not a zip"))
		svc := NewConverterService(&stubReader{err: readErr}, markdown.NewRenderer(), &captureWriter{}, nil)

		h, err := svc.Convert(context.Background(), "/decks/fake.pptx", "")
		require.NoError(t, err)

		events, res := drain(t, h)
		assert.Empty(t, events)
		require.False(t, res.Success)
		assert.Contains(t, res.Error, "not a valid slide deck")
	})

	t.Run("write failure after full scan", func(t *testing.T) {
		writeErr := entities.NewDestinationError("/out/demo.md", errors.New("permission denied"))
		writer := &captureWriter{err: writeErr}
		svc := NewConverterService(&stubReader{deck: threeSlideDeck()}, markdown.NewRenderer(), writer, nil)

		h, err := svc.Convert(context.Background(), "/decks/demo.pptx", "/out/demo.md")
		require.NoError(t, err)

		events, res := drain(t, h)
		require.False(t, res.Success)
		assert.Contains(t, res.Error, "cannot write destination")
		// Scanning still completed before the write was attempted.
		assert.Equal(t, 100, events[len(events)-1])
	})

	t.Run("cancellation stops the run with a failure", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		reader := &cancellingReader{cancel: cancel, deck: threeSlideDeck()}
		writer := &captureWriter{}
		svc := NewConverterService(reader, markdown.NewRenderer(), writer, nil)

		h, err := svc.Convert(ctx, "/decks/demo.pptx", "")
		require.NoError(t, err)

		events, res := drain(t, h)
		require.False(t, res.Success)
		assert.Contains(t, res.Error, "cancelled")
		assert.Empty(t, events)
		assert.Nil(t, writer.content)
	})
}

func TestConverterService_Exclusivity(t *testing.T) {
	reader := &blockingReader{release: make(chan struct{}), deck: threeSlideDeck()}
	svc := NewConverterService(reader, markdown.NewRenderer(), &captureWriter{}, nil)

	first, err := svc.Convert(context.Background(), "/decks/demo.pptx", "")
	require.NoError(t, err)

	// Second start while the first run is outstanding is rejected.
	_, err = svc.Convert(context.Background(), "/decks/demo.pptx", "")
	require.ErrorIs(t, err, entities.ErrConversionInProgress)

	close(reader.release)
	_, res := drain(t, first)
	require.True(t, res.Success)

	// Once the first run reached a terminal state, a new run may start.
	second, err := svc.Convert(context.Background(), "/decks/demo.pptx", "")
	require.NoError(t, err)
	_, res = drain(t, second)
	assert.True(t, res.Success)
}
