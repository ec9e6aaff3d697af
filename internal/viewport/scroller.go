package viewport

// Scroller animates the strip offset toward a target, one step per frame.
// Each step closes a third of the remaining distance (at least one unit), so
// long jumps ease out and short ones finish in a frame or two.
type Scroller struct {
	pos    int
	target int
	gen    int
}

func (s *Scroller) Pos() int { return s.pos }

func (s *Scroller) Target() int { return s.target }

func (s *Scroller) Animating() bool { return s.pos != s.target }

// Gen identifies the current animation; frame messages from an older
// animation must be dropped.
func (s *Scroller) Gen() int { return s.gen }

// Jump moves immediately and cancels any animation.
func (s *Scroller) Jump(x int) {
	s.pos = x
	s.target = x
	s.gen++
}

// SetTarget retargets the animation. It returns true when a new animation
// starts (the caller should schedule the first frame for Gen()); when one is
// already running it just changes course.
func (s *Scroller) SetTarget(x int) bool {
	if x == s.target && s.Animating() {
		return false
	}
	wasAnimating := s.Animating()
	s.target = x
	if !s.Animating() {
		return false
	}
	if wasAnimating {
		return false
	}
	s.gen++
	return true
}

// Step advances one frame for animation gen. moved reports a position change;
// more reports that another frame is needed.
func (s *Scroller) Step(gen int) (moved, more bool) {
	if gen != s.gen || !s.Animating() {
		return false, false
	}
	d := s.target - s.pos
	step := d / 3
	if step == 0 {
		if d > 0 {
			step = 1
		} else {
			step = -1
		}
	}
	s.pos += step
	return true, s.Animating()
}
