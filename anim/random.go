package anim

type randomState struct {
	order  []int
	cursor int
}

// stepRandom reveals the bar one segment per interval in a shuffled order.
// Normal logic lights segments, inverted logic darkens them. Segments
// already in their target state are skipped without consuming an interval,
// so the sweep always visits every segment exactly once.
func (a *Animator) stepRandom() bool {
	s := &a.random

	if a.init {
		a.init = false
		a.syncLogic()

		if a.initLogicInverted {
			a.stepAllOn()
		} else {
			a.stepAllOff()
		}

		s.order = a.rng.Perm(a.segs)
		s.cursor = 0
		a.last1 = a.now
		return false
	}

	if a.now-a.last1 >= a.intv1 {
		a.last1 = a.now

		for retries := 0; s.cursor < a.segs && retries < a.segs; retries++ {
			seg := s.order[s.cursor]
			current := a.meter.PixelState(seg)
			s.cursor++
			if current != a.initLogicInverted {
				continue
			}
			a.meter.SetPixel(seg, !a.initLogicInverted)
			break
		}
	}

	if s.cursor >= a.segs {
		s.order = nil
		return true
	}
	return false
}
