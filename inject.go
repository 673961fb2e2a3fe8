package slider

// syntheticPointerEvent represents a single injected pointer event in screen
// coordinates (matching what a script sees in screenshots).
type syntheticPointerEvent struct {
	screenX, screenY float64
	pressed          bool
}

// InjectPress queues a pointer press at the given screen coordinates. The
// event is consumed on the next frame's processInput call.
func (s *Scene) InjectPress(x, y float64) {
	s.injectQueue = append(s.injectQueue, syntheticPointerEvent{screenX: x, screenY: y, pressed: true})
}

// InjectRelease queues a pointer release at the given screen coordinates.
func (s *Scene) InjectRelease(x, y float64) {
	s.injectQueue = append(s.injectQueue, syntheticPointerEvent{screenX: x, screenY: y})
}

// InjectClick queues a press followed by a release at the same screen
// coordinates. Consumes two frames; the press frame emits the advance signal.
func (s *Scene) InjectClick(x, y float64) {
	s.InjectPress(x, y)
	s.InjectRelease(x, y)
}

// processInjectedInput pops one event from the inject queue. A press that
// follows a release is an advance signal. Returns true if an event was
// consumed (real input should be skipped).
func (s *Scene) processInjectedInput() bool {
	if len(s.injectQueue) == 0 {
		return false
	}
	evt := s.injectQueue[0]
	copy(s.injectQueue, s.injectQueue[1:])
	s.injectQueue = s.injectQueue[:len(s.injectQueue)-1]

	if evt.pressed && !s.injectDown {
		debugf("injected press at (%.0f, %.0f)", evt.screenX, evt.screenY)
		s.signal()
	}
	s.injectDown = evt.pressed
	return true
}
