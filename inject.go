package arbor

// injectKind is the kind of a synthetic pointer event.
type injectKind uint8

const (
	injectMove injectKind = iota
	injectPress
	injectRelease
)

// syntheticPointerEvent is one injected pointer event in viewport pixels,
// routed exactly like real host input.
type syntheticPointerEvent struct {
	kind             injectKind
	screenX, screenY float64
}

// InjectMove queues a pointer move at the given viewport coordinates.
// The event is consumed by a later Update, one event per frame.
func (w *World) InjectMove(x, y float64) {
	w.injectQueue = append(w.injectQueue, syntheticPointerEvent{kind: injectMove, screenX: x, screenY: y})
}

// InjectPress queues a pointer press.
func (w *World) InjectPress(x, y float64) {
	w.injectQueue = append(w.injectQueue, syntheticPointerEvent{kind: injectPress, screenX: x, screenY: y})
}

// InjectRelease queues a pointer release.
func (w *World) InjectRelease(x, y float64) {
	w.injectQueue = append(w.injectQueue, syntheticPointerEvent{kind: injectRelease, screenX: x, screenY: y})
}

// InjectClick queues a press followed by a release at the same point.
// Consumes two frames.
func (w *World) InjectClick(x, y float64) {
	w.InjectPress(x, y)
	w.InjectRelease(x, y)
}

// InjectDrag queues a press at (fromX, fromY), frames-2 interpolated moves,
// and a release at (toX, toY). Minimum frames is 2.
func (w *World) InjectDrag(fromX, fromY, toX, toY float64, frames int) {
	if frames < 2 {
		frames = 2
	}
	w.InjectPress(fromX, fromY)
	steps := frames - 2
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps+1)
		w.InjectMove(fromX+(toX-fromX)*t, fromY+(toY-fromY)*t)
	}
	w.InjectRelease(toX, toY)
}

// Injecting reports whether synthetic input is queued or a test runner is
// still playing. Hosts skip real pointer input while it is true.
func (w *World) Injecting() bool {
	return len(w.injectQueue) > 0 || (w.testRunner != nil && !w.testRunner.Done())
}

// processInjectedInput pops one event from the queue and routes it.
// Returns true if an event was consumed.
func (w *World) processInjectedInput() bool {
	if len(w.injectQueue) == 0 {
		return false
	}
	evt := w.injectQueue[0]
	copy(w.injectQueue, w.injectQueue[1:])
	w.injectQueue = w.injectQueue[:len(w.injectQueue)-1]

	switch evt.kind {
	case injectMove:
		w.PointerMove(evt.screenX, evt.screenY)
	case injectPress:
		w.PointerMove(evt.screenX, evt.screenY)
		w.PointerDown(evt.screenX, evt.screenY)
	case injectRelease:
		w.PointerUp(evt.screenX, evt.screenY)
	}
	return true
}

// Screenshot queues a labeled screenshot request. The host captures the
// next rendered frame for every queued label.
func (w *World) Screenshot(label string) {
	w.screenshotQueue = append(w.screenshotQueue, label)
}

// TakeScreenshotRequests returns and clears the queued screenshot labels.
func (w *World) TakeScreenshotRequests() []string {
	if len(w.screenshotQueue) == 0 {
		return nil
	}
	labels := w.screenshotQueue
	w.screenshotQueue = nil
	return labels
}
