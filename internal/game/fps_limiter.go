package game

import "time"

// FrameLimiter paces the loop to a target frame length by sleeping off
// whatever the frame did not use.
type FrameLimiter struct {
	target time.Duration
	start  time.Time

	now   func() time.Time
	sleep func(time.Duration)
}

// NewFrameLimiter returns a limiter for fps frames per second. A
// non-positive fps disables pacing.
func NewFrameLimiter(fps int) *FrameLimiter {
	f := &FrameLimiter{
		now:   time.Now,
		sleep: time.Sleep,
	}
	if fps > 0 {
		f.target = time.Second / time.Duration(fps)
	}
	return f
}

// Target returns the frame length being paced to
func (f *FrameLimiter) Target() time.Duration {
	return f.target
}

// Begin marks the start of a frame
func (f *FrameLimiter) Begin() {
	f.start = f.now()
}

// Elapsed returns the time since Begin
func (f *FrameLimiter) Elapsed() time.Duration {
	return f.now().Sub(f.start)
}

// Remaining returns how long a frame that took elapsed should still sleep
func (f *FrameLimiter) Remaining(elapsed time.Duration) time.Duration {
	if f.target <= 0 || elapsed >= f.target {
		return 0
	}
	return f.target - elapsed
}

// Wait sleeps until the frame started by Begin has lasted the target
// length. It returns immediately for frames already over it.
func (f *FrameLimiter) Wait() {
	if d := f.Remaining(f.Elapsed()); d > 0 {
		f.sleep(d)
	}
}
