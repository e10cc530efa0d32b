package app

import (
	"context"
	"fmt"
	"math/rand/v2"
	"os"
	"path/filepath"

	"github.com/tanema/gween/ease"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
	"go.uber.org/zap"

	"github.com/phanxgames/arbor"
	"github.com/phanxgames/arbor/assets"
	"github.com/phanxgames/arbor/config"
	"github.com/phanxgames/arbor/ecs"
	"github.com/phanxgames/arbor/layout"
	"github.com/phanxgames/arbor/script"
)

// defaultActions are loaded before the scripts directory, which may
// redefine them.
const defaultActions = `
function spawn_tree(label)
  spawn_random("tree", 5.5, 1.25, 7, 0.4)
  remove_button(label)
end

function move(label)
  log("Translate")
end
`

// Garden is the assembled application. It implements script.Host.
type Garden struct {
	Config  *config.Config
	Log     *zap.Logger
	World   *arbor.World
	Loader  *assets.Procedural
	ECS     donburi.World
	Scripts *script.Engine
	Clicks  *ecs.ClickCounter

	baseDir    string
	ctx        context.Context
	rng        *rand.Rand
	prototypes map[string]*arbor.Model
	buttons    map[string]*arbor.Button
}

var _ script.Host = (*Garden)(nil)

// NewGarden creates a Garden. Call Setup before running it.
func NewGarden(cfg *config.Config, dir BaseDir, log *zap.Logger, world *arbor.World, loader *assets.Procedural, ecsWorld donburi.World) (*Garden, func(), error) {
	g := &Garden{
		Config:     cfg,
		Log:        log,
		World:      world,
		Loader:     loader,
		ECS:        ecsWorld,
		Clicks:     &ecs.ClickCounter{},
		baseDir:    string(dir),
		ctx:        context.Background(),
		rng:        rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
		prototypes: make(map[string]*arbor.Model),
		buttons:    make(map[string]*arbor.Button),
	}
	g.Scripts = script.NewEngine(g, log.Named("script"))
	if err := g.Scripts.LoadString(defaultActions); err != nil {
		g.Scripts.Close()
		return nil, nil, err
	}
	g.Clicks.Track(ecsWorld)
	return g, g.Scripts.Close, nil
}

// Seed makes random spawns deterministic.
func (g *Garden) Seed(a, b uint64) {
	g.rng = rand.New(rand.NewPCG(a, b))
}

func (g *Garden) path(p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(g.baseDir, p)
}

// Setup loads scripts, the scene layout and the optional test script from
// the paths in the config, then builds the scene.
func (g *Garden) Setup(ctx context.Context) error {
	if dir := g.Config.Scene.ScriptsDir; dir != "" {
		if err := g.Scripts.LoadDir(g.path(dir)); err != nil {
			return fmt.Errorf("load scripts: %w", err)
		}
	}
	l, err := layout.Load(g.path(g.Config.Scene.Layout))
	if err != nil {
		return err
	}
	if ts := g.Config.Scene.TestScript; ts != "" {
		data, err := os.ReadFile(g.path(ts))
		if err != nil {
			return fmt.Errorf("read test script %s: %w", ts, err)
		}
		runner, err := arbor.LoadTestScript(data)
		if err != nil {
			return err
		}
		g.World.SetTestRunner(runner)
	}
	return g.Build(ctx, l)
}

// Build validates l and populates the world: ground plane, preloaded
// catalog prototypes, placed models and buttons.
func (g *Garden) Build(ctx context.Context, l *layout.Layout) error {
	if err := l.Validate(g.Loader.Has, g.Scripts.HasAction); err != nil {
		return fmt.Errorf("layout: %w", err)
	}
	g.ctx = ctx

	ground := arbor.NewMeshNode("ground",
		arbor.NewPlaneMesh(l.Ground.Size[0], l.Ground.Size[1]),
		&arbor.Material{Color: arbor.ColorHex(l.Ground.Color), Roughness: 1, Standard: true})
	if err := g.World.Add(arbor.NewStatic(ground)); err != nil {
		return err
	}

	if g.Config.Assets.Preload {
		if err := g.Loader.Preload(ctx, l.Catalog...); err != nil {
			return fmt.Errorf("preload: %w", err)
		}
	}
	for _, id := range l.Catalog {
		if _, err := g.prototype(id); err != nil {
			return err
		}
	}

	for _, pm := range l.Models {
		m, err := g.place(pm.Model, vec(pm.Position), pm.Scale)
		if err != nil {
			return err
		}
		m.SetRotation(arbor.Vec3{Y: arbor.Degrees(pm.Rotation)})
	}

	for _, lb := range l.Buttons {
		g.addButton(lb)
	}
	g.Log.Info("garden ready",
		zap.Int("entities", len(g.World.Entities())),
		zap.Int("buttons", len(g.buttons)))
	return nil
}

func (g *Garden) addButton(lb layout.Button) {
	action := lb.Action
	b := arbor.NewButton(g.World, lb.Label, func(b *arbor.Button, ev *arbor.PointerEvent) {
		if action == "" {
			return
		}
		if err := g.Scripts.Run(action, b.Label); err != nil {
			g.Log.Warn("button action failed", zap.String("button", b.Label), zap.Error(err))
		}
	})
	b.FadeDuration = float32(g.Config.Interaction.HoverFade)
	b.SetPosition(vec(lb.Position))
	if err := g.World.Add(b); err != nil {
		g.Log.Warn("add button", zap.String("button", lb.Label), zap.Error(err))
		return
	}
	g.buttons[lb.Label] = b
}

// Button returns the button with the given label, if it is in the scene.
func (g *Garden) Button(label string) (*arbor.Button, bool) {
	b, ok := g.buttons[label]
	return b, ok
}

// prototype returns the loaded template model for id, loading it once.
func (g *Garden) prototype(id string) (*arbor.Model, error) {
	if m, ok := g.prototypes[id]; ok {
		return m, nil
	}
	m := arbor.NewModel(g.World, id)
	if err := g.World.LoadModel(g.ctx, m); err != nil {
		return nil, err
	}
	g.prototypes[id] = m
	return m, nil
}

// place clones the prototype for id into the world.
func (g *Garden) place(id string, pos arbor.Vec3, scale float64) (*arbor.Model, error) {
	proto, err := g.prototype(id)
	if err != nil {
		return nil, err
	}
	m := proto.Clone()
	m.SetPosition(pos)
	m.SetScale(scale)
	if err := g.World.Add(m); err != nil {
		return nil, err
	}
	return m, nil
}

// Update advances the world one frame and delivers ECS events.
func (g *Garden) Update(dt float32) {
	g.World.Update(dt)
	events.ProcessAllEvents(g.ECS)
}

// --- script.Host ---

// Spawn places a clone of model at pos.
func (g *Garden) Spawn(model string, pos arbor.Vec3, scale float64) error {
	_, err := g.place(model, pos, scale)
	return err
}

// SpawnRandom places a random model of kind and returns its identifier.
func (g *Garden) SpawnRandom(kind string, pos arbor.Vec3, scale float64) (string, error) {
	ids := g.Models(kind)
	if len(ids) == 0 {
		return "", fmt.Errorf("%w: no %s models", assets.ErrUnknownModel, kind)
	}
	id := ids[g.rng.IntN(len(ids))]
	if err := g.Spawn(id, pos, scale); err != nil {
		return "", err
	}
	g.Log.Info("spawned", zap.String("model", id), zap.String("kind", kind))
	return id, nil
}

// RemoveButton takes the labeled button out of the scene.
func (g *Garden) RemoveButton(label string) bool {
	b, ok := g.buttons[label]
	if !ok {
		return false
	}
	g.World.Remove(b)
	delete(g.buttons, label)
	g.World.Cursor().Set(arbor.CursorDefault)
	return true
}

// FlyTo animates the camera focus to target.
func (g *Garden) FlyTo(target arbor.Vec3) {
	g.World.Camera().FlyTo(target, float32(g.Config.Interaction.FlyDuration), ease.InOutQuad)
}

// Models lists catalog identifiers of kind.
func (g *Garden) Models(kind string) []string {
	return g.Loader.Models(assets.Kind(kind))
}
