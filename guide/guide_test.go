package guide

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet(t *testing.T) {
	main, err := Get("")
	require.NoError(t, err)
	assert.Contains(t, main, "# skilld Guide")

	layout, err := Get("layout")
	require.NoError(t, err)
	assert.Contains(t, layout, "_meta.json")

	_, err = Get("nonexistent")
	assert.Error(t, err)
}

func TestList(t *testing.T) {
	topics, err := List()
	require.NoError(t, err)
	assert.Equal(t, []string{"layout", "search", "tools"}, topics)
}
