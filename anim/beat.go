package anim

import "github.com/sbarabe/SBK-BarDrive/internal/mathx"

// defaultBPM is used when a live BPM source returns nothing usable.
const defaultBPM = 116

type beatState struct {
	bpm    int
	live   Level
	base   int // resting level between beats
	crest  int // level the pulse climbs toward on a beat
	hold   int64
	level  int
	peak   int
	offset int // random flicker added on top of the pulse
	isPeak bool
}

// stepBeat pulses the bar to a beat clock with a jittered top. The level
// climbs toward the crest on each beat and sags back to the base between
// beats; a held peak segment decays after the hold time. It never completes
// on its own.
func (a *Animator) stepBeat() bool {
	s := &a.beat

	if a.init {
		a.init = false
		a.syncLogic()
		a.stepAllOff()
		s.level = s.base
		s.peak = s.crest
		s.offset = 0
		s.isPeak = false
	}

	if s.live != nil {
		s.bpm = mathx.Max(1, s.live())
	}
	if s.bpm <= 0 {
		s.bpm = defaultBPM
	}
	period := int64(60000 / s.bpm)

	if a.now-a.last1 >= period {
		a.last1 = a.now
		s.isPeak = !s.isPeak
	}

	if s.isPeak && s.level <= s.crest {
		s.level += 3 + a.rng.Intn(2)
	} else if !s.isPeak && s.level >= s.base {
		s.level -= a.rng.Intn(4)
	}

	if a.now-a.last2 >= int64(50+a.rng.Intn(250)) {
		a.last2 = a.now
		s.offset = a.rng.Intn(8) - 4
	}

	level := mathx.Clamp(s.level+s.offset, 0, a.segs)

	if level > s.peak {
		s.peak = mathx.Min(level, a.segs-1)
		a.last3 = a.now
	} else if a.now-a.last3 >= s.hold && s.peak > level {
		s.peak--
		a.last3 = a.now
	}

	for i := 0; i < a.segs; i++ {
		a.meter.SetPixel(a.corrDir(i), i < level)
	}
	if s.peak < a.segs {
		a.meter.SetPixel(a.corrDir(s.peak), true)
	}
	return false
}
