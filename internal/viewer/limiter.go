package viewer

import "time"

// spinWindow is the tail of each wait spent polling instead of sleeping.
const spinWindow = 200 * time.Microsecond

// fpsLimiter paces the loop to a target frame rate.
type fpsLimiter struct {
	limit int
	next  time.Time
	now   func() time.Time
	sleep func(time.Duration)
}

func newFPSLimiter(limit int) *fpsLimiter {
	return &fpsLimiter{limit: limit, now: time.Now, sleep: time.Sleep}
}

// Wait blocks until the next frame is due. A limit of 0 never waits.
func (f *fpsLimiter) Wait() {
	if f.limit <= 0 {
		f.next = time.Time{}
		return
	}

	target := time.Second / time.Duration(f.limit)
	if f.next.IsZero() {
		f.next = f.now().Add(target)
	} else {
		f.next = f.next.Add(target)
	}

	for {
		remaining := f.next.Sub(f.now())
		if remaining <= 0 {
			break
		}
		if remaining > spinWindow {
			f.sleep(remaining - spinWindow)
		}
	}

	// resync after a hitch so the loop does not sprint to catch up
	if late := f.now().Sub(f.next); late > target {
		f.next = f.now()
	}
}
