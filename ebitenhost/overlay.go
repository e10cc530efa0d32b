package ebitenhost

import (
	"bytes"
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/phanxgames/arbor"
)

const labelSize = 18

// labelLift raises a button label above the button's top face.
var labelLift = arbor.Vec3{Y: 0.15}

// overlay draws button labels and the optional debug readout.
type overlay struct {
	face *text.GoTextFace
}

func newOverlay() (*overlay, error) {
	src, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		return nil, fmt.Errorf("load label font: %w", err)
	}
	return &overlay{face: &text.GoTextFace{Source: src, Size: labelSize}}, nil
}

func (o *overlay) drawLabels(screen *ebiten.Image, w *arbor.World) {
	b := screen.Bounds()
	width, height := float64(b.Dx()), float64(b.Dy())
	cam := w.Camera()
	for _, e := range w.Entities() {
		btn, ok := e.(*arbor.Button)
		if !ok || btn.Label == "" {
			continue
		}
		ndc, _, ok := cam.Project(btn.WorldObject().WorldPosition().Add(labelLift))
		if !ok {
			continue
		}
		x, y := arbor.NDCToScreen(ndc, width, height)
		op := &text.DrawOptions{}
		op.GeoM.Translate(x, y)
		op.PrimaryAlign = text.AlignCenter
		op.SecondaryAlign = text.AlignEnd
		if btn.Disabled {
			op.ColorScale.ScaleWithColor(color.Gray{Y: 0x80})
		}
		text.Draw(screen, btn.Label, o.face, op)
	}
}

func (o *overlay) drawDebug(screen *ebiten.Image, w *arbor.World, stats Stats) {
	g := w.TransformControl()
	target := "-"
	if obj := g.Object(); obj != nil {
		target = fmt.Sprintf("%s (%s)", obj.Name, g.Mode())
	}
	ebitenutil.DebugPrint(screen, fmt.Sprintf(
		"FPS: %.1f  TPS: %.1f\ntris: %d  draws: %d  render: %s\nentities: %d  loading: %d\ngizmo: %s",
		ebiten.ActualFPS(), ebiten.ActualTPS(),
		stats.Triangles, stats.DrawCalls, stats.Elapsed.Round(10_000),
		len(w.Entities()), w.PendingLoads(),
		target,
	))
}
