// Package arbor is a retained-mode 3D scene and pointer-interaction library
// for placing and arranging models on a terrain, hosted on [Ebitengine].
//
// The core is display-free: scene graph, camera, raycasting, pointer routing
// and the transform gizmo are plain Go and fully testable. The ebitenhost
// package drives a World from an ebiten game loop.
//
// # Quick start
//
//	world := arbor.NewWorld(arbor.WithLoader(assets.NewProcedural(assets.Options{})))
//	world.SetViewport(1280, 720)
//
//	ground := arbor.NewMeshNode("ground", arbor.NewPlaneMesh(15, 15),
//		arbor.NewStandardMaterial(arbor.ColorHex(0x3f7d1a)))
//	world.Add(arbor.NewStatic(ground))
//
//	birch := arbor.NewModel(world, "BirchTree_4")
//	if err := world.LoadModel(ctx, birch); err != nil {
//		return err
//	}
//	world.Add(birch)
//
// Each frame the host calls [World.PointerMove], [World.PointerDown] and
// [World.PointerUp] with viewport pixels, then [World.Update].
//
// # Entities
//
// Anything placed in a World is a [WorldEntity]: it exposes a root [Node].
// Interaction is opt-in through capability interfaces: [Clickable],
// [ClickOutHandler], [HoverEnterHandler] and [HoverOutHandler]. Capabilities
// are classified once, when the entity is registered. Entities that are not
// Clickable are scenery and never receive pointer callbacks.
//
// [Button], [Model] and [Static] are the shipped entity kinds.
//
// # Pointer routing
//
// The [Intersector] casts a ray from the camera through the pointer for
// every registered entity, in registration order. Hover callbacks are
// edge-triggered and gated on the root's visibility. A press fires Click on
// every entity the ray hits and ClickOut on every entity it misses; there is
// no nearest-hit resolution, so overlapping entities all receive Click.
//
// # Transform gizmo
//
// A World owns one [Gizmo] through its [TransformController]. Clicking a
// model attaches the gizmo in translate mode (X and Z handles); clicking it
// again switches to rotate mode (Y ring), and again back to translate.
// Clicking anywhere else releases the gizmo unless a drag is in progress.
//
// # Loading
//
// Models resolve their geometry through an [AssetLoader]. A [Model] is
// Pending until its load completes and [World.Add] refuses it with
// [ErrNotReady] until then. [World.LoadModelAsync] runs the load on another
// goroutine and applies the result during [World.Update].
//
// # Automated testing
//
// [World.InjectMove], [World.InjectClick] and [World.InjectDrag] queue
// synthetic pointer events consumed one per frame. [LoadTestScript] reads a
// JSON script of such steps:
//
//	{"steps": [
//		{"action": "move",  "x": 640, "y": 360},
//		{"action": "click", "x": 640, "y": 360},
//		{"action": "wait",  "frames": 10}
//	]}
//
// [Ebitengine]: https://ebitengine.org
package arbor
