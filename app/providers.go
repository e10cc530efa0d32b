// Package app assembles the garden application: configuration, logging,
// the asset loader, the ECS bridge, the World and the Lua action scripts.
package app

import (
	"github.com/google/wire"
	"github.com/yohamta/donburi"
	"go.uber.org/zap"

	"github.com/phanxgames/arbor"
	"github.com/phanxgames/arbor/assets"
	"github.com/phanxgames/arbor/config"
	"github.com/phanxgames/arbor/ecs"
	"github.com/phanxgames/arbor/logging"
)

// BaseDir is the directory relative paths in the config resolve against.
type BaseDir string

// ProviderSet builds a Garden from a config and base directory.
var ProviderSet = wire.NewSet(
	ProvideLogger,
	ProvideLoader,
	ProvideECS,
	ProvideWorld,
	NewGarden,
)

// ProvideLogger builds the zap logger. The cleanup flushes it.
func ProvideLogger(cfg *config.Config) (*zap.Logger, func(), error) {
	log, err := logging.New(cfg.Logging)
	if err != nil {
		return nil, nil, err
	}
	return log, func() { _ = log.Sync() }, nil
}

// ProvideLoader builds the procedural asset loader.
func ProvideLoader(cfg *config.Config, log *zap.Logger) *assets.Procedural {
	return assets.NewProcedural(assets.Options{
		Cells:  cfg.Assets.MeshCells,
		Logger: log.Named("assets"),
	})
}

// ProvideECS creates the donburi world receiving interaction events.
func ProvideECS() donburi.World {
	return donburi.NewWorld()
}

// ProvideWorld creates the arbor World from the camera and lighting config.
func ProvideWorld(cfg *config.Config, log *zap.Logger, loader *assets.Procedural, ecsWorld donburi.World) *arbor.World {
	cc := cfg.Camera
	cam := arbor.NewCamera(cc.FovY, 1, cc.Near, cc.Far)
	cam.Position = vec(cc.Position)
	cam.Target = vec(cc.Target)

	w := arbor.NewWorld(
		arbor.WithLogger(log.Named("world")),
		arbor.WithCamera(cam),
		arbor.WithLoader(loader),
		arbor.WithEnvironment(environment(cfg.Lighting)),
		arbor.WithEntityStore(ecs.NewDonburiStore(ecsWorld)),
	)
	w.SetViewport(float64(cfg.Window.Width), float64(cfg.Window.Height))
	return w
}

func environment(lc config.LightingConfig) arbor.Environment {
	return arbor.Environment{
		Ambient: arbor.Light{Color: arbor.ColorHex(lc.AmbientColor), Intensity: lc.AmbientIntensity},
		Directional: arbor.DirectionalLight{
			Light:      arbor.Light{Color: arbor.ColorHex(lc.DirectionalColor), Intensity: lc.DirectionalIntensity},
			Position:   vec(lc.DirectionalPosition),
			CastShadow: true,
		},
		EnvMap:          lc.EnvMap,
		EnvMapIntensity: lc.EnvMapIntensity,
		Background:      arbor.ColorHex(lc.Background),
	}
}

func vec(a [3]float64) arbor.Vec3 {
	return arbor.Vec3{X: a[0], Y: a[1], Z: a[2]}
}
