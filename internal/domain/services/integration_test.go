package services

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fredcamaral/deckmd/internal/adapters/secondary/markdown"
	"github.com/fredcamaral/deckmd/internal/adapters/secondary/pptx"
	"github.com/fredcamaral/deckmd/internal/test/builders"
)

// Full pipeline: real archive on disk, real reader, real renderer,
// real writer.
func TestConvertPipeline(t *testing.T) {
	dir := t.TempDir()
	sourcePath := filepath.Join(dir, "talk.pptx")

	require.NoError(t, builders.NewPPTXBuilder().
		WithTitledSlide("Intro", "Welcome").
		WithUntitledSlide("Point A", "Point B").
		WithTitledSlide("Conclusion").
		Write(sourcePath))

	newService := func() *ConverterService {
		return NewConverterService(pptx.NewReader(), markdown.NewRenderer(), markdown.NewWriter(), nil)
	}

	t.Run("default destination and exact output", func(t *testing.T) {
		h, err := newService().Convert(context.Background(), sourcePath, "")
		require.NoError(t, err)

		var events []int
		for v := range h.Progress() {
			events = append(events, v)
		}
		res := <-h.Result()

		require.True(t, res.Success, res.Error)
		assert.Equal(t, filepath.Join(dir, "talk.md"), res.OutputPath)
		assert.Equal(t, []int{0, 33, 66, 100}, events)

		got, err := os.ReadFile(res.OutputPath)
		require.NoError(t, err)

		want := "# talk.pptx\n\n" +
			"## Intro\n\nWelcome\n\n---\n\n" +
			"## Slide 2\n\nPoint A\n\nPoint B\n\n---\n\n" +
			"## Conclusion\n\n---\n\n"
		assert.Equal(t, want, string(got))
	})

	t.Run("conversion is deterministic across runs", func(t *testing.T) {
		destA := filepath.Join(dir, "a.md")
		destB := filepath.Join(dir, "b.md")

		for _, dest := range []string{destA, destB} {
			h, err := newService().Convert(context.Background(), sourcePath, dest)
			require.NoError(t, err)
			for range h.Progress() {
			}
			res := <-h.Result()
			require.True(t, res.Success, res.Error)
		}

		a, err := os.ReadFile(destA)
		require.NoError(t, err)
		b, err := os.ReadFile(destB)
		require.NoError(t, err)
		assert.Equal(t, a, b)
	})

	t.Run("missing source", func(t *testing.T) {
		h, err := newService().Convert(context.Background(), filepath.Join(dir, "absent.pptx"), "")
		require.NoError(t, err)

		var events []int
		for v := range h.Progress() {
			events = append(events, v)
		}
		res := <-h.Result()

		assert.Empty(t, events)
		require.False(t, res.Success)
		assert.Contains(t, res.Error, "not found")
	})
}
