package engine

// session is the live, uncommitted timer state. At most one exists per
// engine; elapsed is meaningful only while a kind is active and always
// returns to 0 on stop or reset.
type session struct {
	active  ActivityKind // "" when stopped
	elapsed int
}

func (s *session) running() bool {
	return s.active != ""
}

// start activates kind. Starting the kind that is already active is an
// ErrAlreadyRunning policy violation and leaves the session untouched.
// Starting a different kind while one is active redirects tracking to the
// new kind: elapsed keeps running and the accumulated seconds commit to
// whichever kind is active when the session stops, like switching cards
// without pressing stop. Callers that want the prior time committed to
// its own kind first use SwitchTo. Elapsed resets only on a fresh start.
func (s *session) start(kind ActivityKind) error {
	if s.active == kind {
		return ErrAlreadyRunning
	}
	if !s.running() {
		s.elapsed = 0
	}
	s.active = kind
	return nil
}

// tick accrues one second of wall-clock time. No-op while stopped.
func (s *session) tick() {
	if s.running() {
		s.elapsed++
	}
}

// clear deactivates the session and zeroes elapsed.
func (s *session) clear() {
	s.active = ""
	s.elapsed = 0
}
