package viewport

import "time"

// Startup sequencing for the first measurement: the layout is only trusted
// once the platform's readiness signal (fonts, terminal size) has arrived, a
// short settle delay has passed and two frame boundaries have elapsed. If the
// signal is not observable, a fixed fallback delay replaces the wait.

const (
	SignalTimeout = 100 * time.Millisecond
	SettleDelay   = 50 * time.Millisecond
	FallbackDelay = 100 * time.Millisecond
)

type Phase int

const (
	PhaseIdle Phase = iota
	PhaseAwaitSignal
	PhaseSettle
	PhaseFallback
	PhaseFrame1
	PhaseFrame2
	PhaseDone
)

func (p Phase) String() string {
	switch p {
	case PhaseAwaitSignal:
		return "await-signal"
	case PhaseSettle:
		return "settle"
	case PhaseFallback:
		return "fallback"
	case PhaseFrame1:
		return "frame1"
	case PhaseFrame2:
		return "frame2"
	case PhaseDone:
		return "done"
	default:
		return "idle"
	}
}

// Step tells the driver what to wait for next. Exactly one of Wait, Frame or
// Measure is set. Timer and frame completions must be reported back with the
// Phase they were scheduled for.
type Step struct {
	Phase   Phase
	Wait    time.Duration
	Frame   bool
	Measure bool
}

type Startup struct {
	phase      Phase
	observable bool
}

func NewStartup(signalObservable bool) *Startup {
	return &Startup{observable: signalObservable}
}

func (s *Startup) Phase() Phase { return s.phase }

func (s *Startup) Done() bool { return s.phase == PhaseDone }

// Begin starts the sequence. Calling it again after the first time is a no-op.
func (s *Startup) Begin() (Step, bool) {
	if s.phase != PhaseIdle {
		return Step{}, false
	}
	if s.observable {
		s.phase = PhaseAwaitSignal
		return Step{Phase: s.phase, Wait: SignalTimeout}, true
	}
	s.phase = PhaseFallback
	return Step{Phase: s.phase, Wait: FallbackDelay}, true
}

// Signal reports that the readiness signal arrived.
func (s *Startup) Signal() (Step, bool) {
	if s.phase != PhaseAwaitSignal {
		return Step{}, false
	}
	s.phase = PhaseSettle
	return Step{Phase: s.phase, Wait: SettleDelay}, true
}

// Elapsed reports that the timer scheduled for phase p fired. Timers from
// phases that have already been left are ignored.
func (s *Startup) Elapsed(p Phase) (Step, bool) {
	if p != s.phase {
		return Step{}, false
	}
	switch p {
	case PhaseAwaitSignal, PhaseSettle, PhaseFallback:
		s.phase = PhaseFrame1
		return Step{Phase: s.phase, Frame: true}, true
	}
	return Step{}, false
}

// FrameDone reports a frame boundary for phase p.
func (s *Startup) FrameDone(p Phase) (Step, bool) {
	if p != s.phase {
		return Step{}, false
	}
	switch p {
	case PhaseFrame1:
		s.phase = PhaseFrame2
		return Step{Phase: s.phase, Frame: true}, true
	case PhaseFrame2:
		s.phase = PhaseDone
		return Step{Phase: s.phase, Measure: true}, true
	}
	return Step{}, false
}
