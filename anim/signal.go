package anim

import "github.com/sbarabe/SBK-BarDrive/internal/mathx"

type signalState struct {
	sig1, sig2 Level
	smoothed1  int
	smoothed2  int
	minMap     int
	maxMap     int
	factor     int // smoothing strength, 0-100
	level      int // floating peak: current mapped level
	peak       int // floating peak: held peak segment
}

// smooth folds a raw sample into the exponential moving value with the
// configured strength, using the same integer weighting on every follower.
func (s *signalState) smooth(raw int, v *int) {
	*v = (raw*s.factor + *v*(100-s.factor)) / 100
}

// stepSignal renders a bar graph following one smoothed signal. Sampling
// and rendering run on independent intervals. It never completes on its
// own; a nil source clears the bar and ends the animation.
func (a *Animator) stepSignal() bool {
	s := &a.sig
	if s.sig1 == nil {
		return a.stepAllOff()
	}

	if a.init {
		a.init = false
		a.syncLogic()
		s.smoothed1 = s.sig1()
		a.last1 = a.now
		a.stepAllOff()
		return false
	}

	if a.now-a.last2 >= a.intv2 {
		a.last2 = a.now
		s.smooth(s.sig1(), &s.smoothed1)
	}

	if a.now-a.last1 >= a.intv1 {
		a.last1 = a.now
		level := mapSignal(s.smoothed1, s.minMap, s.maxMap, 0, a.segs)
		for i := 0; i < a.segs; i++ {
			a.meter.SetPixel(a.corrDir(i), i < level)
		}
	}
	return false
}

// stepSignalPointer renders the smoothed fill plus an instantaneous pointer
// segment riding on the raw sample, with a one-segment notch separating the
// pointer from the fill.
func (a *Animator) stepSignalPointer() bool {
	s := &a.sig
	if s.sig1 == nil {
		return a.stepAllOff()
	}

	if a.init {
		a.init = false
		a.syncLogic()
		s.smoothed1 = s.sig1()
		a.last1 = a.now
		a.stepAllOff()
		return false
	}

	if a.now-a.last2 >= a.intv2 {
		a.last2 = a.now
		s.smooth(s.sig1(), &s.smoothed1)
	}

	if a.now-a.last1 >= a.intv1 {
		a.last1 = a.now

		avg := mapSignal(s.smoothed1, s.minMap, s.maxMap, 0, a.segs)
		pointer := mapSignal(s.sig1(), s.minMap, s.maxMap, 0, a.segs)

		for i := 0; i < a.segs; i++ {
			a.meter.SetPixel(a.corrDir(i), i < avg)
		}
		if pointer < avg && pointer > 0 {
			a.meter.SetPixel(a.corrDir(pointer-1), false)
		}
		if pointer < avg-2 {
			a.meter.SetPixel(a.corrDir(pointer+1), false)
		}
		a.meter.SetPixel(a.corrDir(pointer), true)
	}
	return false
}

// stepDualSignal drives the two bar halves from two smoothed signals.
// Normal logic grows a lit window outward from the center; inverted logic
// grows lit runs inward from both edges. The starters mirror a non-nil
// source over a nil one, so a nil sig1 here means no source at all.
func (a *Animator) stepDualSignal() bool {
	s := &a.sig
	if s.sig1 == nil {
		return a.stepAllOff()
	}

	if a.init {
		a.init = false
		a.syncLogic()
		s.smoothed1 = s.sig1()
		if s.sig2 != nil {
			s.smoothed2 = s.sig2()
		}
		a.last1 = a.now
		a.stepAllOff()
		return false
	}

	if a.logicInverted != a.prevLogic {
		a.prevLogic = a.logicInverted
	}

	if a.now-a.last2 >= a.intv2 {
		a.last2 = a.now
		s.smooth(s.sig1(), &s.smoothed1)
		if s.sig2 != nil {
			s.smooth(s.sig2(), &s.smoothed2)
		}
	}

	if a.now-a.last1 >= a.intv1 {
		a.last1 = a.now

		s.smooth(s.sig1(), &s.smoothed1)
		half := a.segs / 2
		level1 := mapSignal(s.smoothed1, s.minMap, s.maxMap, 0, half)
		level2 := level1
		if s.sig2 != nil {
			level2 = mapSignal(s.smoothed2, s.minMap, s.maxMap, 0, half)
		}

		for i := 0; i < a.segs; i++ {
			if a.logicInverted {
				a.meter.SetPixel(i, i < level1 || i > a.segs-1-level2)
			} else {
				a.meter.SetPixel(i, i >= (half-1)-level1 && i <= half+level2)
			}
		}
	}
	return false
}

// stepFloatingPeak renders the smoothed fill with a peak segment that rises
// instantly, holds for intv3, then decays one segment per render interval.
func (a *Animator) stepFloatingPeak() bool {
	s := &a.sig
	if s.sig1 == nil {
		return a.stepAllOff()
	}

	if a.init {
		a.init = false
		a.syncLogic()
		a.stepAllOff()
		s.smoothed1 = s.sig1()
		a.last1 = a.now
		a.last3 = a.now
		s.level = 0
		s.peak = 0
		return false
	}

	if a.now-a.last2 >= a.intv2 {
		a.last2 = a.now
		s.smooth(s.sig1(), &s.smoothed1)
		s.level = mapSignal(s.smoothed1, s.minMap, s.maxMap, 0, a.segs)
	}

	if a.now-a.last1 >= a.intv1 {
		a.last1 = a.now

		if s.level > s.peak {
			s.peak = mathx.Min(s.level, a.segs-1)
			a.last3 = a.now
		} else if a.now-a.last3 >= a.intv3 && s.peak > s.level {
			s.peak--
			a.last3 = a.now
		}

		for i := 0; i < a.segs; i++ {
			a.meter.SetPixel(a.corrDir(i), i <= s.level)
		}
		if s.peak < a.segs {
			a.meter.SetPixel(a.corrDir(s.peak), true)
		}
	}
	return false
}
