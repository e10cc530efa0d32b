package arbor

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
)

// Sentinel errors returned by World.
var (
	// ErrNotReady is returned by Add for a Loadable entity that has not loaded.
	ErrNotReady = errors.New("arbor: entity not ready")
	// ErrNoWorldObject is returned by Add for an entity without a world object.
	ErrNoWorldObject = errors.New("arbor: entity has no world object")
	// ErrNoLoader is returned by LoadModel when the World has no AssetLoader.
	ErrNoLoader = errors.New("arbor: no asset loader")
	// ErrInWorld is returned by LoadModel for a model already added to the
	// World. Reloading it would swap its object out from under the scene.
	ErrInWorld = errors.New("arbor: model already in world")
)

const loadQueueSize = 64

// loadResult is an asset load completion delivered to the loop goroutine.
type loadResult struct {
	model *Model
	obj   *Node
	err   error
	done  func(*Model, error)
}

// WorldOption configures a World.
type WorldOption func(*World)

// WithLogger sets the logger. The default discards everything.
func WithLogger(log *zap.Logger) WorldOption {
	return func(w *World) {
		if log != nil {
			w.log = log
		}
	}
}

// WithLoader sets the asset loader used by LoadModel.
func WithLoader(l AssetLoader) WorldOption {
	return func(w *World) { w.loader = l }
}

// WithEnvironment replaces the default lighting.
func WithEnvironment(env Environment) WorldOption {
	return func(w *World) { w.env = env }
}

// WithEntityStore forwards interaction events to an ECS bridge.
func WithEntityStore(store EntityStore) WorldOption {
	return func(w *World) { w.store = store }
}

// WithCamera replaces the default camera.
func WithCamera(cam *Camera) WorldOption {
	return func(w *World) {
		if cam != nil {
			w.camera = cam
		}
	}
}

// World is the scene and session coordinator. It owns the scene root, the
// camera, the Intersector and the TransformController, and keeps scene
// membership and pointer registration in lockstep.
type World struct {
	root        *Node
	camera      *Camera
	cursor      *Cursor
	intersector *Intersector
	controller  *TransformController
	env         Environment
	loader      AssetLoader
	store       EntityStore
	log         *zap.Logger

	entities []WorldEntity

	loads        chan loadResult
	pendingLoads int

	injectQueue     []syntheticPointerEvent
	screenshotQueue []string
	testRunner      *TestRunner
	pointerHeld     bool
	width, height   float64
}

// NewWorld creates a World with a default camera placed like a garden
// overview, default lighting, and no loader.
func NewWorld(opts ...WorldOption) *World {
	cam := NewCamera(45, 16.0/9.0, 1, 500)
	cam.Position = Vec3{X: 7.5, Y: 3, Z: 14}
	w := &World{
		root:   NewGroup("root"),
		camera: cam,
		cursor: &Cursor{},
		env:    DefaultEnvironment(),
		log:    zap.NewNop(),
		loads:  make(chan loadResult, loadQueueSize),
	}
	for _, opt := range opts {
		opt(w)
	}
	w.intersector = NewIntersector(w.camera, w.log.Named("intersector"))
	w.intersector.SetEntityStore(w.store)
	w.controller = NewTransformController(w.camera, w.cursor)
	w.controller.Gizmo().OnDraggingChanged(func(dragging bool) {
		w.camera.OrbitEnabled = !dragging
	})
	return w
}

// Root returns the scene root.
func (w *World) Root() *Node { return w.root }

// Camera returns the active camera.
func (w *World) Camera() *Camera { return w.camera }

// Cursor returns the cursor signal the host polls each frame.
func (w *World) Cursor() *Cursor { return w.cursor }

// Intersector returns the pointer router.
func (w *World) Intersector() *Intersector { return w.intersector }

// TransformControl returns the gizmo.
func (w *World) TransformControl() *Gizmo { return w.controller.Gizmo() }

// Environment returns the lighting environment.
func (w *World) Environment() Environment { return w.env }

// Logger returns the world logger.
func (w *World) Logger() *zap.Logger { return w.log }

// Entities returns the entities currently in the world, in insertion order.
func (w *World) Entities() []WorldEntity {
	out := make([]WorldEntity, len(w.entities))
	copy(out, w.entities)
	return out
}

// Contains reports whether e has been added and not removed.
func (w *World) Contains(e WorldEntity) bool {
	return w.indexOf(e) >= 0
}

func (w *World) indexOf(e WorldEntity) int {
	if e == nil {
		return -1
	}
	for i, x := range w.entities {
		if x == e {
			return i
		}
	}
	return -1
}

// SetViewport sets the viewport size in pixels and updates the camera aspect.
func (w *World) SetViewport(width, height float64) {
	w.width, w.height = width, height
	w.intersector.SetViewport(width, height)
	w.camera.SetAspect(width, height)
}

// Add inserts e's world object under the scene root. Clickable entities are
// registered with the Intersector. Adding an entity twice is a no-op.
// Returns ErrNotReady for a Loadable entity that is not ready.
func (w *World) Add(e WorldEntity) error {
	if e == nil {
		return ErrNoWorldObject
	}
	if l, ok := e.(Loadable); ok && l.LoadState() != LoadReady {
		return fmt.Errorf("add %s: %w", entityName(e), ErrNotReady)
	}
	if e.WorldObject() == nil {
		return ErrNoWorldObject
	}
	if w.Contains(e) {
		return nil
	}
	w.root.AddChild(e.WorldObject())
	w.entities = append(w.entities, e)
	if IsInteractive(e) {
		w.intersector.Attach(e)
	}
	w.UpdateAllMaterials()
	w.log.Debug("entity added",
		zap.String("entity", entityName(e)),
		zap.Bool("interactive", IsInteractive(e)))
	return nil
}

// Remove detaches e from the Intersector and the scene graph. The gizmo is
// left alone; releasing it is the entity's responsibility.
func (w *World) Remove(e WorldEntity) {
	idx := w.indexOf(e)
	if idx < 0 {
		return
	}
	w.intersector.Detach(e)
	if root := e.WorldObject(); root != nil && root.Parent == w.root {
		w.root.RemoveChild(root)
	}
	copy(w.entities[idx:], w.entities[idx+1:])
	w.entities[len(w.entities)-1] = nil
	w.entities = w.entities[:len(w.entities)-1]
	w.log.Debug("entity removed", zap.String("entity", entityName(e)))
}

// ToggleTransformControl attaches the gizmo to e or cycles its mode.
func (w *World) ToggleTransformControl(e WorldEntity) {
	w.controller.Toggle(e)
}

// RemoveTransformControl releases the gizmo from e unless a drag is running.
func (w *World) RemoveTransformControl(e WorldEntity) {
	w.controller.Remove(e)
}

// UpdateAllMaterials applies the environment map to every standard material
// in the scene and enables shadows on their meshes. Safe to call repeatedly.
func (w *World) UpdateAllMaterials() {
	w.root.Traverse(func(n *Node) {
		if n.Mesh == nil || n.Material == nil || !n.Material.Standard {
			return
		}
		n.Material.EnvMap = w.env.EnvMap
		n.Material.EnvMapIntensity = w.env.EnvMapIntensity
		n.CastShadow = true
		n.ReceiveShadow = true
	})
}

// --- Model loading ---

// LoadModel loads m's world object synchronously.
func (w *World) LoadModel(ctx context.Context, m *Model) error {
	if err := w.canLoad(m); err != nil {
		return err
	}
	obj, err := w.loader.Load(ctx, m.ModelID())
	return w.finishLoad(m, obj, err)
}

func (w *World) canLoad(m *Model) error {
	if w.loader == nil {
		return ErrNoLoader
	}
	if w.Contains(m) {
		return fmt.Errorf("load model %q: %w", m.ModelID(), ErrInWorld)
	}
	return nil
}

// LoadModelAsync starts loading m on another goroutine. The result is applied
// and done (which may be nil) is called during a later Update.
func (w *World) LoadModelAsync(ctx context.Context, m *Model, done func(*Model, error)) {
	if err := w.canLoad(m); err != nil {
		if done != nil {
			done(m, err)
		}
		return
	}
	w.pendingLoads++
	loader := w.loader
	go func() {
		obj, err := loader.Load(ctx, m.ModelID())
		w.loads <- loadResult{model: m, obj: obj, err: err, done: done}
	}()
}

// AddWhenLoaded loads m asynchronously and adds it to the world once ready.
func (w *World) AddWhenLoaded(ctx context.Context, m *Model) {
	w.LoadModelAsync(ctx, m, func(m *Model, err error) {
		if err != nil {
			return
		}
		if err := w.Add(m); err != nil {
			w.log.Warn("add loaded model", zap.Error(err))
		}
	})
}

// PendingLoads returns the number of async loads not yet applied.
func (w *World) PendingLoads() int { return w.pendingLoads }

func (w *World) finishLoad(m *Model, obj *Node, err error) error {
	if err == nil && obj == nil {
		err = ErrNoWorldObject
	}
	if err != nil {
		err = fmt.Errorf("load model %q: %w", m.ModelID(), err)
		w.log.Warn("model load failed", zap.String("model", m.ModelID()), zap.Error(err))
	} else {
		w.log.Debug("model loaded", zap.String("model", m.ModelID()))
	}
	m.resolve(obj, err)
	return err
}

// drainLoads applies every completed async load without blocking.
func (w *World) drainLoads() {
	for {
		select {
		case r := <-w.loads:
			w.pendingLoads--
			var err error
			if w.Contains(r.model) {
				// Loaded by another call and added meanwhile; keep the live object.
				err = fmt.Errorf("load model %q: %w", r.model.ModelID(), ErrInWorld)
			} else {
				err = w.finishLoad(r.model, r.obj, r.err)
			}
			if r.done != nil {
				r.done(r.model, err)
			}
		default:
			return
		}
	}
}

// --- Frame loop ---

// Update advances one frame: applies finished loads, replays one injected
// pointer event, advances Updater entities and camera animation.
func (w *World) Update(dt float32) {
	w.drainLoads()
	if w.testRunner != nil {
		w.testRunner.step(w)
	}
	w.processInjectedInput()
	for _, e := range w.Entities() {
		if u, ok := e.(Updater); ok {
			u.Update(dt)
		}
	}
	w.camera.Update(dt)
}

// --- Pointer routing ---

// PointerMove routes a pointer move. While the gizmo is dragging, the drag
// follows the pointer ray as well.
func (w *World) PointerMove(x, y float64) *PointerEvent {
	g := w.controller.Gizmo()
	if g.Dragging() {
		if ndc, ok := ScreenToNDC(x, y, w.width, w.height); ok {
			g.DragTo(w.camera.RayFromNDC(ndc))
		}
	}
	return w.intersector.PointerMove(x, y)
}

// PointerDown routes a pointer press. A press on a gizmo handle starts a
// drag before entities are notified, so the owner's click-out cannot
// release the gizmo mid-drag.
func (w *World) PointerDown(x, y float64) *PointerEvent {
	w.pointerHeld = true
	g := w.controller.Gizmo()
	if ndc, ok := ScreenToNDC(x, y, w.width, w.height); ok {
		r := w.camera.RayFromNDC(ndc)
		if g.HitHandle(r) {
			g.BeginDrag(r)
		}
	}
	return w.intersector.PointerDown(x, y)
}

// PointerUp ends a gizmo drag.
func (w *World) PointerUp(x, y float64) {
	w.pointerHeld = false
	w.controller.Gizmo().EndDrag()
}

// PointerHeld reports whether the primary button is down.
func (w *World) PointerHeld() bool { return w.pointerHeld }
