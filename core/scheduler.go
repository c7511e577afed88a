package core

// Timer represents a scheduled event
type Timer struct {
	WakeTime uint32 // System time (ms) to run at
	Handler  func(*Timer) uint8
	Next     *Timer
}

const (
	SF_DONE       = 0
	SF_RESCHEDULE = 1
)

// Scheduler keeps timers sorted by wake time.
// It runs in foreground context only; the toggle interrupt never touches it.
type Scheduler struct {
	list *Timer
}

// Schedule adds a timer to the schedule
func (s *Scheduler) Schedule(t *Timer) {
	t.Next = nil
	s.insert(t)
}

// Cancel removes a timer if it is scheduled
func (s *Scheduler) Cancel(t *Timer) {
	link := &s.list
	for *link != nil {
		if *link == t {
			*link = t.Next
			t.Next = nil
			return
		}
		link = &(*link).Next
	}
}

// Pending reports whether any timer is scheduled
func (s *Scheduler) Pending() bool {
	return s.list != nil
}

// NextWake returns the wake time of the earliest timer
func (s *Scheduler) NextWake() (uint32, bool) {
	if s.list == nil {
		return 0, false
	}
	return s.list.WakeTime, true
}

// insert inserts a timer in sorted order by WakeTime
// Timers with equal WakeTime run in insertion order.
func (s *Scheduler) insert(t *Timer) {
	if s.list == nil || timerIsBefore(t.WakeTime, s.list.WakeTime) {
		t.Next = s.list
		s.list = t
		return
	}

	current := s.list
	for current.Next != nil && !timerIsBefore(t.WakeTime, current.Next.WakeTime) {
		current = current.Next
	}

	t.Next = current.Next
	current.Next = t
}

// Dispatch runs every timer whose WakeTime has been reached
func (s *Scheduler) Dispatch(now uint32) {
	for s.list != nil && !timerIsBefore(now, s.list.WakeTime) {
		timer := s.list
		s.list = timer.Next
		timer.Next = nil

		if timer.Handler(timer) == SF_RESCHEDULE {
			s.insert(timer)
		}
	}
}

// timerIsBefore compares wrapping millisecond times.
// Deadlines must lie within 2^31 ms of each other.
func timerIsBefore(a, b uint32) bool {
	return int32(a-b) < 0
}
