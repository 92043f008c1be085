package render

import (
	"testing"

	"github.com/bi-tools/reportsmith/pkg/models/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubRenderer struct{}

func (stubRenderer) Render(domain.Report) (string, error) { return "", nil }
func (stubRenderer) Ext() string                          { return ".txt" }

func stubFactory() (Renderer, error) {
	return stubRenderer{}, nil
}

func TestRegistry(t *testing.T) {
	t.Run("create seeded format", func(t *testing.T) {
		registry := NewRegistry(map[string]RendererFactory{"text": stubFactory})

		renderer, err := registry.Create("text")
		require.NoError(t, err)
		assert.Equal(t, ".txt", renderer.Ext())
	})

	t.Run("unknown format", func(t *testing.T) {
		registry := NewRegistry(nil)
		_, err := registry.Create("markdown")
		assert.Error(t, err)
	})

	t.Run("duplicate registration", func(t *testing.T) {
		registry := NewRegistry(map[string]RendererFactory{"text": stubFactory})
		err := registry.Register("text", stubFactory)
		assert.Error(t, err)
	})

	t.Run("list formats", func(t *testing.T) {
		registry := NewRegistry(map[string]RendererFactory{"text": stubFactory})
		require.NoError(t, registry.Register("markdown", stubFactory))
		assert.ElementsMatch(t, []string{"text", "markdown"}, registry.ListFormats())
	})
}
