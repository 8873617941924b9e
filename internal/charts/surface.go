package charts

// Surface is the render target. It holds the scene of the latest rebuild
// together with any transient hover nodes attached to it.
type Surface struct {
	scene    *Scene
	rebuilds int
}

// NewSurface creates an empty surface
func NewSurface() *Surface {
	return &Surface{}
}

// Replace discards everything drawn so far, hover labels included, and
// installs scene as the new content
func (s *Surface) Replace(scene *Scene) {
	s.scene = scene
	s.rebuilds++
}

// Scene returns the current content, or nil before the first rebuild
func (s *Surface) Scene() *Scene {
	return s.scene
}

// Rebuilds returns how many times the content has been replaced
func (s *Surface) Rebuilds() int {
	return s.rebuilds
}

// Circle returns the drawn marker at ref, or nil
func (s *Surface) Circle(ref PointRef) *Circle {
	if s.scene == nil {
		return nil
	}
	return s.scene.Circle(ref)
}

// AddLabel attaches a transient label to a point
func (s *Surface) AddLabel(ref PointRef, text Text) {
	if s.scene == nil {
		return
	}
	s.scene.HoverLabels = append(s.scene.HoverLabels, HoverLabel{Ref: ref, Text: text})
}

// RemoveLabels drops every transient label attached to a point
func (s *Surface) RemoveLabels(ref PointRef) {
	if s.scene == nil {
		return
	}
	kept := s.scene.HoverLabels[:0]
	for _, l := range s.scene.HoverLabels {
		if l.Ref != ref {
			kept = append(kept, l)
		}
	}
	s.scene.HoverLabels = kept
}

// Labels returns the transient labels attached to a point
func (s *Surface) Labels(ref PointRef) []HoverLabel {
	if s.scene == nil {
		return nil
	}
	var out []HoverLabel
	for _, l := range s.scene.HoverLabels {
		if l.Ref == ref {
			out = append(out, l)
		}
	}
	return out
}
