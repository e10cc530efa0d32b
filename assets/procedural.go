// Package assets builds model subtrees for arbor from a procedural catalog.
//
// Models are solids described with sdfx signed distance functions and
// triangulated with marching cubes. Built subtrees are cached, and callers
// always receive an independent deep copy.
package assets

import (
	"context"
	"errors"
	"fmt"
	"math"
	"runtime"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/deadsy/sdfx/render"
	"github.com/deadsy/sdfx/sdf"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"github.com/phanxgames/arbor"
)

// ErrUnknownModel is returned for an identifier missing from the catalog.
var ErrUnknownModel = errors.New("assets: unknown model")

// DefaultCells is the default marching cubes resolution along the longest
// side of a part.
const DefaultCells = 24

// Options configures a Procedural loader.
type Options struct {
	// Cells is the marching cubes resolution. Zero means DefaultCells.
	Cells int
	// Catalog replaces DefaultCatalog when non-nil.
	Catalog map[string]Recipe
	Logger  *zap.Logger
}

// Procedural is an arbor.AssetLoader backed by a recipe catalog.
// It is safe for concurrent use.
type Procedural struct {
	cells   int
	catalog map[string]Recipe
	log     *zap.Logger

	group  singleflight.Group
	mu     sync.RWMutex
	cache  map[uint64]*arbor.Node
	builds atomic.Int32
}

// NewProcedural creates a loader.
func NewProcedural(opts Options) *Procedural {
	p := &Procedural{
		cells:   opts.Cells,
		catalog: opts.Catalog,
		log:     opts.Logger,
		cache:   make(map[uint64]*arbor.Node),
	}
	if p.cells <= 0 {
		p.cells = DefaultCells
	}
	if p.catalog == nil {
		p.catalog = DefaultCatalog()
	}
	if p.log == nil {
		p.log = zap.NewNop()
	}
	return p
}

// Models returns the sorted identifiers of the given kind, or all
// identifiers when kind is empty.
func (p *Procedural) Models(kind Kind) []string {
	var ids []string
	for id, r := range p.catalog {
		if kind == "" || r.Kind == kind {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return ids
}

// Has reports whether id is in the catalog.
func (p *Procedural) Has(id string) bool {
	_, ok := p.catalog[id]
	return ok
}

// Builds returns how many subtrees have been built, for cache diagnostics.
func (p *Procedural) Builds() int {
	return int(p.builds.Load())
}

// Load returns a fresh copy of the subtree for id. Concurrent loads of the
// same identifier share one build.
func (p *Procedural) Load(ctx context.Context, id string) (*arbor.Node, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	recipe, ok := p.catalog[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownModel, id)
	}
	key := xxhash.Sum64String(id)

	p.mu.RLock()
	cached := p.cache[key]
	p.mu.RUnlock()
	if cached != nil {
		return cached.Clone(), nil
	}

	v, err, _ := p.group.Do(id, func() (any, error) {
		n, err := p.build(id, recipe)
		if err != nil {
			return nil, err
		}
		p.mu.Lock()
		p.cache[key] = n
		p.mu.Unlock()
		return n, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*arbor.Node).Clone(), nil
}

// Preload builds every listed model concurrently. The first error cancels
// the rest and is returned.
func (p *Procedural) Preload(ctx context.Context, ids ...string) error {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())
	for _, id := range ids {
		g.Go(func() error {
			_, err := p.Load(ctx, id)
			return err
		})
	}
	return g.Wait()
}

// zUpToYUp rotates sdfx's Z-up solids into arbor's Y-up space.
var zUpToYUp = sdf.RotateX(-math.Pi / 2)

func (p *Procedural) build(id string, recipe Recipe) (*arbor.Node, error) {
	start := time.Now()
	root := arbor.NewGroup(id)
	tris := 0
	for _, part := range recipe.Parts {
		s, err := part.Solid()
		if err != nil {
			return nil, fmt.Errorf("build %s/%s: %w", id, part.Name, err)
		}
		mesh := p.triangulate(sdf.Transform3D(s, zUpToYUp))
		tris += mesh.TriangleCount()
		root.AddChild(arbor.NewMeshNode(part.Name, mesh, arbor.NewStandardMaterial(part.Color)))
	}
	p.builds.Add(1)
	p.log.Debug("model built",
		zap.String("model", id),
		zap.Int("parts", len(recipe.Parts)),
		zap.Int("triangles", tris),
		zap.Duration("elapsed", time.Since(start)))
	return root, nil
}

// triangulate meshes s with marching cubes.
func (p *Procedural) triangulate(s sdf.SDF3) *arbor.Mesh {
	triangles := render.ToTriangles(s, render.NewMarchingCubesUniform(p.cells))
	soup := make([][3]arbor.Vec3, 0, len(triangles))
	for _, tri := range triangles {
		soup = append(soup, [3]arbor.Vec3{tri[0], tri[1], tri[2]})
	}
	return arbor.NewMeshFromTriangles(soup)
}
