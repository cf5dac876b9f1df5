package web

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jask/dualpick/core"
	"github.com/jask/dualpick/core/selection"
)

func TestInitConfigOmitsFalseLayoutFlags(t *testing.T) {
	cfg := core.Config{
		Widget:       selection.Config{AllowOrder: true},
		WorkerScript: "/assets/worker.js",
		Text:         core.LocalizedText{AddTitle: " Add \"this\"\nnow "},
	}
	out, err := NewInitConfig(cfg).JSON()
	require.NoError(t, err)

	var m map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &m))
	assert.Equal(t, true, m["allowOrder"])
	assert.Equal(t, false, m["allowMoveAll"])
	assert.NotContains(t, m, "vertical")
	assert.NotContains(t, m, "filter")
	assert.NotContains(t, m, "customClass")
	assert.Equal(t, "/assets/worker.js", m["workerScript"])

	text := m["localizedText"].(map[string]any)
	assert.Equal(t, "Add 'this' now", text["addTitle"])
	assert.Equal(t, "", text["clearFilterTitle"])
}

func TestInitConfigIncludesTrueFlags(t *testing.T) {
	cfg := core.Config{Widget: selection.Config{Vertical: true, Filter: true, CustomClass: "wide"}}
	out, err := NewInitConfig(cfg).JSON()
	require.NoError(t, err)
	assert.Contains(t, out, `"vertical":true`)
	assert.Contains(t, out, `"filter":true`)
	assert.Contains(t, out, `"customClass":"wide"`)
}
