package anim

// stepAllOn lights the whole bar in one tick.
func (a *Animator) stepAllOn() bool {
	a.init = false
	for i := 0; i < a.segs; i++ {
		a.meter.SetPixel(i, true)
	}
	return true
}

// stepAllOff clears the whole bar in one tick.
func (a *Animator) stepAllOff() bool {
	a.init = false
	a.meter.Clear()
	return true
}

// stepFill advances a linear fill or empty by one segment per elapsed
// interval. Normal logic walks the tracker up from minTracker lighting
// segments; inverted logic walks it down from maxTracker clearing them. The
// cycle completes on the tick that acts on the boundary segment.
func (a *Animator) stepFill() bool {
	a.mapTrackersLive(0, a.segs-1)

	if a.init {
		a.init = false
		a.syncLogic()

		if a.logicInverted {
			a.fill.tracker = a.maxTracker
			for i := 0; i < a.segs; i++ {
				a.meter.SetPixel(a.corrDir(i), i <= a.maxTracker)
			}
		} else {
			a.fill.tracker = a.minTracker
			for i := 0; i < a.segs; i++ {
				a.meter.SetPixel(a.corrDir(i), i < a.minTracker)
			}
		}
		return false
	}

	// Re-anchor the tracker when the logic flipped mid-run so the walk
	// continues inside the active range.
	if a.logicInverted != a.prevLogic {
		a.prevLogic = a.logicInverted
		if a.logicInverted && a.fill.tracker > a.maxTracker {
			a.fill.tracker = a.maxTracker
		}
		if !a.logicInverted && a.fill.tracker < a.minTracker {
			a.fill.tracker = a.minTracker
		}
	}

	if a.now-a.last1 < a.intv1 {
		return false
	}
	a.last1 = a.now

	if a.logicInverted {
		if a.fill.tracker < a.minTracker {
			return true
		}
		a.meter.SetPixel(a.corrDir(a.fill.tracker), false)
		done := a.fill.tracker == a.minTracker
		a.fill.tracker--
		return done
	}

	if a.fill.tracker > a.maxTracker || a.fill.tracker >= a.segs {
		return true
	}
	a.meter.SetPixel(a.corrDir(a.fill.tracker), true)
	done := a.fill.tracker == a.maxTracker
	a.fill.tracker++
	return done
}

// stepCenterFill fills or empties the two bar halves symmetrically. The
// tracker walks half-range indices mapped onto a descending domain, so
// normal logic grows the lit region away from the anchor and inverted logic
// shrinks it back.
func (a *Animator) stepCenterFill() bool {
	half := a.segs / 2
	a.mapTrackersLive(half-1, 0)

	if a.init {
		a.init = false
		a.syncLogic()

		if a.logicInverted {
			a.fill.tracker = a.maxTracker
			for i := 0; i < half; i++ {
				on := i >= a.maxTracker
				a.meter.SetPixel(a.corrHalfDir(i), on)
				a.meter.SetPixel(a.segs-1-a.corrHalfDir(i), on)
			}
		} else {
			a.fill.tracker = a.minTracker
			for i := 0; i < half; i++ {
				on := i > a.minTracker
				a.meter.SetPixel(a.corrHalfDir(i), on)
				a.meter.SetPixel(a.segs-1-a.corrHalfDir(i), on)
			}
		}
		return false
	}

	if a.now-a.last1 < a.intv1 {
		return false
	}
	a.last1 = a.now

	if a.logicInverted {
		if a.fill.tracker > a.minTracker || a.fill.tracker >= half {
			return true
		}
		a.meter.SetPixel(a.corrHalfDir(a.fill.tracker), false)
		a.meter.SetPixel(a.segs-1-a.corrHalfDir(a.fill.tracker), false)
		done := a.fill.tracker == a.minTracker
		a.fill.tracker++
		return done
	}

	if a.fill.tracker < a.maxTracker || a.fill.tracker < 0 {
		return true
	}
	a.meter.SetPixel(a.corrHalfDir(a.fill.tracker), true)
	a.meter.SetPixel(a.segs-1-a.corrHalfDir(a.fill.tracker), true)
	done := a.fill.tracker == a.maxTracker
	a.fill.tracker--
	return done
}
