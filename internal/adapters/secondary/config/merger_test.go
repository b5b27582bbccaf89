package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fredcamaral/deckmd/internal/domain/entities"
)

func TestMerger_Merge(t *testing.T) {
	m := NewMerger()

	t.Run("no configs returns defaults", func(t *testing.T) {
		cfg := m.Merge()
		require.NotNil(t, cfg)
		assert.Equal(t, 5273, cfg.Preview.Port)
	})

	t.Run("later configs win", func(t *testing.T) {
		base := GetDefaultConfig()
		local := &entities.Config{
			Preview: entities.PreviewConfig{Port: 9000},
			Output:  entities.OutputConfig{Dir: "/tmp/out"},
		}

		cfg := m.Merge(base, local)

		assert.Equal(t, 9000, cfg.Preview.Port)
		assert.Equal(t, "/tmp/out", cfg.Output.Dir)
		// Untouched fields keep the base values.
		assert.Equal(t, "localhost", cfg.Preview.Host)
		assert.Equal(t, "info", cfg.Logging.Level)
	})

	t.Run("nil overlays are skipped", func(t *testing.T) {
		base := GetDefaultConfig()
		cfg := m.Merge(base, nil, nil)
		assert.Equal(t, base.Preview.Port, cfg.Preview.Port)
	})

	t.Run("merge does not mutate inputs", func(t *testing.T) {
		base := GetDefaultConfig()
		local := &entities.Config{Preview: entities.PreviewConfig{Port: 9000}}

		_ = m.Merge(base, local)
		assert.Equal(t, 5273, base.Preview.Port)
	})
}

func TestMerger_ApplyFlags(t *testing.T) {
	m := NewMerger()

	t.Run("flags override config", func(t *testing.T) {
		cfg := m.ApplyFlags(GetDefaultConfig(), map[string]interface{}{
			"output-dir":  "/exports",
			"html":        true,
			"frontmatter": true,
			"port":        8100,
			"host":        "0.0.0.0",
		})

		assert.Equal(t, "/exports", cfg.Output.Dir)
		assert.True(t, cfg.Output.HTML)
		assert.True(t, cfg.Output.FrontMatter)
		assert.Equal(t, 8100, cfg.Preview.Port)
		assert.Equal(t, "0.0.0.0", cfg.Preview.Host)
	})

	t.Run("verbose raises the log level", func(t *testing.T) {
		cfg := m.ApplyFlags(GetDefaultConfig(), map[string]interface{}{"verbose": true})
		assert.True(t, cfg.Logging.Verbose)
		assert.Equal(t, "debug", cfg.Logging.Level)
	})

	t.Run("zero values leave config untouched", func(t *testing.T) {
		cfg := m.ApplyFlags(GetDefaultConfig(), map[string]interface{}{
			"output-dir": "",
			"port":       0,
		})
		assert.Empty(t, cfg.Output.Dir)
		assert.Equal(t, 5273, cfg.Preview.Port)
	})
}
