package layout

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"
)

const garden = `
ground:
  size: [15, 15]
  color: 0x3f7d1a
catalog: [BirchTree_4, PineTree_1]
models:
  - model: BirchTree_4
    position: [0, 0, 0]
  - model: PineTree_1
    position: [-3, 0, 2]
    scale: 0.8
    rotation: 45
buttons:
  - label: "+"
    position: [5.5, 0, 7]
    action: spawn_tree
  - label: Move
    position: [3.5, 0, 6]
    action: move
`

func known(ids ...string) func(string) bool {
	set := make(map[string]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return func(id string) bool { return set[id] }
}

func TestParse(t *testing.T) {
	l, err := Parse([]byte(garden), "garden")
	require.NoError(t, err)

	assert.Equal(t, [2]float64{15, 15}, l.Ground.Size)
	assert.Equal(t, uint32(0x3f7d1a), l.Ground.Color)
	assert.Equal(t, []string{"BirchTree_4", "PineTree_1"}, l.Catalog)
	require.Len(t, l.Models, 2)
	assert.Equal(t, 1.0, l.Models[0].Scale, "missing scale defaults to 1")
	assert.Equal(t, 0.8, l.Models[1].Scale)
	assert.Equal(t, 45.0, l.Models[1].Rotation)
	require.Len(t, l.Buttons, 2)
	assert.Equal(t, "+", l.Buttons[0].Label)
	assert.Equal(t, [3]float64{5.5, 0, 7}, l.Buttons[0].Position)
	assert.Equal(t, "move", l.Buttons[1].Action)

	assert.NoError(t, l.Validate(known("BirchTree_4", "PineTree_1"), known("spawn_tree", "move")))
}

func TestParseDefaultsGround(t *testing.T) {
	l, err := Parse([]byte("models: []\n"), "empty")
	require.NoError(t, err)
	assert.Equal(t, [2]float64{15, 15}, l.Ground.Size)
	assert.Equal(t, uint32(0x3f7d1a), l.Ground.Color)
}

func TestParseError(t *testing.T) {
	_, err := Parse([]byte("models: [\n"), "bad.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse layout bad.yaml")
}

func TestValidateCollectsAllProblems(t *testing.T) {
	l := &Layout{
		Ground:  Ground{Size: [2]float64{15, 0}},
		Catalog: []string{"Oak"},
		Models:  []Model{{Model: "Maple", Scale: -1}},
		Buttons: []Button{{Label: "a", Action: "fly"}, {Label: "a"}, {Label: ""}},
	}
	err := l.Validate(known(), known("spawn_tree"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalid)
	// ground, catalog, model id, scale, unknown action, duplicate label, empty label
	assert.Len(t, multierr.Errors(err), 7)
}

func TestValidateSkipsActionsWithoutLookup(t *testing.T) {
	l := &Layout{
		Ground:  Ground{Size: [2]float64{1, 1}},
		Buttons: []Button{{Label: "x", Action: "anything"}},
	}
	assert.NoError(t, l.Validate(known(), nil))
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scene.yaml")
	require.NoError(t, os.WriteFile(path, []byte(garden), 0o644))
	l, err := Load(path)
	require.NoError(t, err)
	assert.Len(t, l.Models, 2)

	_, err = Load(filepath.Join(t.TempDir(), "none.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
