package assets

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/deadsy/sdfx/sdf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phanxgames/arbor"
)

func smallLoader() *Procedural {
	return NewProcedural(Options{Cells: 8})
}

func TestLoadUnknownModel(t *testing.T) {
	_, err := smallLoader().Load(context.Background(), "Oak_9")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownModel))
}

func TestLoadBuildsYUpSubtree(t *testing.T) {
	n, err := smallLoader().Load(context.Background(), "PineTree_1")
	require.NoError(t, err)

	assert.Equal(t, "PineTree_1", n.Name)
	require.Equal(t, 2, n.NumChildren())
	for _, c := range n.Children() {
		require.NotNil(t, c.Mesh)
		assert.False(t, c.Mesh.IsEmpty(), "part %s has no triangles", c.Name)
		require.NotNil(t, c.Material)
		assert.True(t, c.Material.Standard)
	}

	box, ok := n.WorldBounds()
	require.True(t, ok)
	// Trees stand on the ground and grow along +Y.
	assert.InDelta(t, 0, box.Min.Y, 0.3)
	assert.Greater(t, box.Max.Y, 3.0)
	assert.Less(t, box.Max.X-box.Min.X, box.Max.Y-box.Min.Y)
}

func TestLoadReturnsIndependentCopies(t *testing.T) {
	p := smallLoader()
	a, err := p.Load(context.Background(), "Rock_1")
	require.NoError(t, err)
	b, err := p.Load(context.Background(), "Rock_1")
	require.NoError(t, err)

	assert.Equal(t, 1, p.Builds())
	require.NotSame(t, a, b)

	a.Children()[0].Material.Color = arbor.ColorHex(0xff0000)
	a.Children()[0].Mesh.Vertices[0].X += 10
	assert.NotEqual(t, a.Children()[0].Material.Color, b.Children()[0].Material.Color)
	assert.NotEqual(t, a.Children()[0].Mesh.Vertices[0], b.Children()[0].Mesh.Vertices[0])
}

func TestConcurrentLoadsShareOneBuild(t *testing.T) {
	p := smallLoader()
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := p.Load(context.Background(), "CommonTree_1")
			assert.NoError(t, err)
		}()
	}
	wg.Wait()
	assert.Equal(t, 1, p.Builds())
}

func TestPreload(t *testing.T) {
	p := smallLoader()
	ids := p.Models(KindTree)
	assert.Equal(t, []string{"BirchTree_4", "CommonTree_1", "PineTree_1", "Willow_1"}, ids)

	require.NoError(t, p.Preload(context.Background(), ids...))
	assert.Equal(t, len(ids), p.Builds())

	err := p.Preload(context.Background(), "Rock_1", "Nope")
	assert.ErrorIs(t, err, ErrUnknownModel)
}

func TestLoadCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := smallLoader().Load(ctx, "Rock_1")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestBuildErrorPropagates(t *testing.T) {
	boom := errors.New("bad solid")
	p := NewProcedural(Options{Cells: 8, Catalog: map[string]Recipe{
		"Broken": {Kind: KindRock, Parts: []Part{{
			Name:  "x",
			Solid: func() (sdf.SDF3, error) { return nil, boom },
		}}},
	}})
	_, err := p.Load(context.Background(), "Broken")
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 0, p.Builds())
}

func TestModelsAndHas(t *testing.T) {
	p := smallLoader()
	assert.Equal(t, []string{"Rock_1", "Rock_2"}, p.Models(KindRock))
	assert.Len(t, p.Models(""), 6)
	assert.True(t, p.Has("Willow_1"))
	assert.False(t, p.Has("willow_1"))
}

func TestProceduralIsAssetLoader(t *testing.T) {
	var _ arbor.AssetLoader = smallLoader()
}
