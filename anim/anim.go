// Package anim is the built-in animation engine for bar meters. An Animator
// runs exactly one animation kind at a time and is advanced cooperatively by
// the caller invoking Update once per control-loop tick; nothing inside
// blocks or spawns goroutines.
//
// Every animation follows a two-phase protocol: the first tick after a
// starter runs one-time setup (range capture, resting frame, block pool),
// later ticks advance state only when the relevant interval has elapsed.
package anim

import (
	"math/rand"
	"time"

	"github.com/sbarabe/SBK-BarDrive/internal/mathx"
)

// Meter is the pixel surface an Animator renders onto. *bardrive.BarMeter
// satisfies it.
type Meter interface {
	SetPixel(segment int, on bool)
	PixelState(segment int) bool
	Clear()
	SegCount() int
}

// Level samples a live external value each time it is called: a percent
// bound (0-100), a raw signal, or a BPM, depending on the starter it is
// handed to. A nil Level falls back to the starter's documented default.
type Level func() int

// kind tags the active animation procedure.
type kind uint8

const (
	kindNone kind = iota
	kindSetAll
	kindFill
	kindBounce
	kindCenterBounce
	kindBeat
	kindMirrorBlocks
	kindScrollBlocks
	kindStackBlocks
	kindSignal
	kindSignalPointer
	kindDualSignal
	kindFloatingPeak
	kindRandom
)

// minInterval is the floor applied to derived step intervals so duration
// based starters cannot busy-loop the control loop.
const minInterval = 5

// Animator owns the live execution context of one animation. All methods are
// chainable where that reads naturally in an update loop. An Animator must
// only be touched from one goroutine at a time; it shares the pixel buffer
// with direct Meter calls and there is no internal locking.
type Animator struct {
	meter Meter
	segs  int

	cur  kind
	step func() bool

	now   int64 // current tick timestamp, milliseconds
	epoch time.Time

	init        bool
	running     bool
	paused      bool
	loop        bool
	loopingNow  bool
	skipPending bool

	// logic axis: whether the procedure fills or empties
	initLogicInverted bool
	logicInverted     bool
	prevLogic         bool
	logicSet          bool
	nonInverting      bool

	// direction axis: where rendering starts
	initDirReversed bool
	dirReversed     bool
	dirSet          bool

	mirrorHalfDir bool

	emitting bool

	// interval timers; which of the three a kind uses is kind-specific
	last1, last2, last3 int64
	intv1, intv2, intv3 int64

	// percent range mapped onto segment indices; live sources re-derive it
	// every tick when set
	minTracker, maxTracker int
	minLive, maxLive       Level

	rng *rand.Rand

	// per-kind state records
	fill   fillState
	bounce bounceState
	beat   beatState
	blocks blockState
	sig    signalState
	random randomState
}

type fillState struct {
	tracker int
}

type bounceState struct {
	phase int // 0 = outbound phase, 1 = return phase
}

// New builds an Animator over m. The random source is seeded from the wall
// clock; use Seed for deterministic runs.
func New(m Meter) *Animator {
	return &Animator{
		meter:    m,
		segs:     m.SegCount(),
		epoch:    time.Now(),
		emitting: true,
		rng:      rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Seed reseeds the animator's random source, making randomized kinds
// reproducible.
func (a *Animator) Seed(seed int64) *Animator {
	a.rng = rand.New(rand.NewSource(seed))
	return a
}

// Update advances the active animation using the supplied monotonic
// timestamp in milliseconds. It reports whether an animation is still
// running. Call it once per control-loop iteration.
func (a *Animator) Update(now int64) bool {
	a.now = now

	if !a.running || a.paused || a.step == nil {
		return false
	}

	if a.step() {
		if a.loop {
			if a.skipPending {
				a.loopingNow = false
			} else {
				a.loopingNow = true
				a.init = true
			}
		} else {
			a.loopingNow = false
			a.running = false
			a.step = nil
			a.cur = kindNone
		}
	}
	return a.running
}

// Tick is Update with the animator's own monotonic clock.
func (a *Animator) Tick() bool {
	return a.Update(time.Since(a.epoch).Milliseconds())
}

// Restart marks the animation for reinitialization on the next Update.
func (a *Animator) Restart() *Animator {
	a.init = true
	return a
}

// Pause halts animation progression without clearing the active procedure.
func (a *Animator) Pause() *Animator {
	a.paused = true
	return a
}

// Resume continues a paused animation.
func (a *Animator) Resume() *Animator {
	a.paused = false
	return a
}

// Stop forces the animator to the stopped state and clears the active
// procedure and any pending loop flags.
func (a *Animator) Stop() *Animator {
	a.paused = false
	a.running = false
	a.skipPending = false
	a.step = nil
	a.cur = kindNone
	a.logicSet = false
	return a
}

// Loop re-arms the animation each time it completes.
func (a *Animator) Loop() *Animator {
	a.loop = true
	return a
}

// NoLoop stops the animation once it completes.
func (a *Animator) NoLoop() *Animator {
	a.loop = false
	return a
}

// SetDir explicitly sets the rendering direction; true renders reversed.
// Takes effect from the current tracker position, without re-rendering.
func (a *Animator) SetDir(reversed bool) *Animator {
	a.dirReversed = reversed
	a.dirSet = true
	return a
}

// ToggleDir flips the current rendering direction.
func (a *Animator) ToggleDir() *Animator {
	a.dirReversed = !a.dirReversed
	a.dirSet = true
	return a
}

// ReverseDir renders opposite to the direction the animation started with.
func (a *Animator) ReverseDir() *Animator {
	a.dirReversed = !a.initDirReversed
	a.dirSet = true
	return a
}

// ResetDir restores the direction the animation started with.
func (a *Animator) ResetDir() *Animator {
	a.dirReversed = a.initDirReversed
	a.dirSet = false
	return a
}

// SetLogic sets the rendering logic; true inverts it (fill becomes empty,
// exploding becomes colliding). No effect on non-inverting kinds.
func (a *Animator) SetLogic(inverted bool) *Animator {
	if a.nonInverting {
		return a
	}
	a.logicInverted = inverted
	a.logicSet = true
	return a
}

// ToggleLogic flips the current rendering logic. No effect on non-inverting
// kinds.
func (a *Animator) ToggleLogic() *Animator {
	if a.nonInverting {
		return a
	}
	a.logicInverted = !a.logicInverted
	a.logicSet = true
	return a
}

// InvertLogic renders with the logic opposite to the animation's initial
// one. No effect on non-inverting kinds.
func (a *Animator) InvertLogic() *Animator {
	if a.nonInverting {
		return a
	}
	a.logicInverted = !a.initLogicInverted
	a.logicSet = true
	return a
}

// ResetLogic restores the logic the animation started with. No effect on
// non-inverting kinds.
func (a *Animator) ResetLogic() *Animator {
	if a.nonInverting {
		return a
	}
	a.logicInverted = a.initLogicInverted
	a.logicSet = false
	return a
}

// StopBlockEmission pauses emission of new blocks in block-based kinds;
// already active blocks keep moving.
func (a *Animator) StopBlockEmission() *Animator {
	a.emitting = false
	return a
}

// ResumeBlockEmission re-enables block emission.
func (a *Animator) ResumeBlockEmission() *Animator {
	a.emitting = true
	return a
}

// IsRunning reports whether an animation is active.
func (a *Animator) IsRunning() bool { return a.running }

// IsPaused reports whether the animation is paused.
func (a *Animator) IsPaused() bool { return a.paused }

// IsLoopEnabled reports whether looping is enabled.
func (a *Animator) IsLoopEnabled() bool { return a.loop }

// PendingLoop reports, once per completed cycle, that the animation finished
// and is about to loop. The flag auto-clears on read.
func (a *Animator) PendingLoop() bool {
	if a.skipPending {
		a.skipPending = false
		return false
	}
	if a.loopingNow {
		a.loopingNow = false
		return true
	}
	return false
}

// IsLogicInverted reports whether the current logic differs from the
// animation's initial logic.
func (a *Animator) IsLogicInverted() bool {
	return a.initLogicInverted != a.logicInverted
}

// IsNonInvertingLogic reports whether the active kind has no logic
// inversion.
func (a *Animator) IsNonInvertingLogic() bool { return a.nonInverting }

// IsDirectionReversed reports whether the current direction differs from the
// animation's initial direction.
func (a *Animator) IsDirectionReversed() bool {
	return a.initDirReversed != a.dirReversed
}

// IsBlockEmissionEnabled reports whether block emission is enabled.
func (a *Animator) IsBlockEmissionEnabled() bool { return a.emitting }

// start resets the execution context wholesale and arms a new kind. The
// direction/logic starting axes must already be staged in initDirReversed /
// initLogicInverted by the starter.
func (a *Animator) start(k kind, step func() bool) *Animator {
	a.segs = a.meter.SegCount()
	a.cur = k
	a.step = step
	a.init = true
	a.running = true
	a.loopingNow = false
	a.skipPending = false
	a.logicSet = false
	a.dirSet = false
	a.dirReversed = a.initDirReversed
	return a
}

// axes stages the per-kind control axes ahead of start and refreshes the
// cached segment count so the range math below follows the meter.
func (a *Animator) axes(nonInverting, dirReversed, logicInverted bool) {
	a.segs = a.meter.SegCount()
	a.nonInverting = nonInverting
	a.initDirReversed = dirReversed
	a.initLogicInverted = logicInverted
	a.mirrorHalfDir = false
	a.minLive = nil
	a.maxLive = nil
}

// syncLogic applies the initial logic on the init tick unless the caller
// already forced a logic between start and first update.
func (a *Animator) syncLogic() {
	if !a.logicSet {
		a.logicInverted = a.initLogicInverted
		a.prevLogic = a.logicInverted
	}
}

// corrDir reorients a pixel index for the current rendering direction.
func (a *Animator) corrDir(pixel int) int {
	if a.dirReversed {
		return a.segs - 1 - pixel
	}
	return pixel
}

// corrHalfDir reorients a half-range pixel index for edge-mirrored kinds.
func (a *Animator) corrHalfDir(pixel int) int {
	if !a.mirrorHalfDir {
		return pixel
	}
	half := a.segs / 2
	return mathx.Abs((half - 1) - pixel)
}

// mapRange linearly re-maps v from [inMin,inMax] onto [outMin,outMax] with
// integer math; the output bounds may be descending.
func mapRange(v, inMin, inMax, outMin, outMax int) int {
	if inMax == inMin {
		return outMin
	}
	return (v-inMin)*(outMax-outMin)/(inMax-inMin) + outMin
}

// normalizePercent clamps both bounds to [0,100], swaps them when inverted
// and widens them by one unit when equal, so a percent range never collapses
// to zero width.
func normalizePercent(minP, maxP int) (int, int) {
	minP = mathx.Clamp(minP, 0, 100)
	maxP = mathx.Clamp(maxP, 0, 100)
	if minP > maxP {
		minP, maxP = maxP, minP
	}
	if minP == maxP {
		if maxP < 100 {
			maxP = minP + 1
		} else {
			minP--
		}
	}
	return minP, maxP
}

// normalizeSpan applies the same swap/widen correction to a raw signal
// mapping span, guarding the interval math against zero-width input ranges.
func normalizeSpan(minV, maxV int) (int, int) {
	if minV > maxV {
		minV, maxV = maxV, minV
	}
	if minV == maxV {
		maxV = minV + 1
	}
	return minV, maxV
}

// mapTrackers maps a fixed percent range onto the tracker domain
// [rangeMin,rangeMax] (which may be descending for half-range kinds).
func (a *Animator) mapTrackers(minP, maxP, rangeMin, rangeMax int) {
	minP, maxP = normalizePercent(minP, maxP)
	a.minTracker = mapRange(minP, 0, 100, rangeMin, rangeMax)
	a.maxTracker = mapRange(maxP, 0, 100, rangeMin, rangeMax)
}

// mapTrackersLive re-derives the tracker range from the live percent
// sources. No-op when the animation runs on a fixed range.
func (a *Animator) mapTrackersLive(rangeMin, rangeMax int) {
	if a.minLive == nil && a.maxLive == nil {
		return
	}
	minP, maxP := 0, 100
	if a.minLive != nil {
		minP = a.minLive()
	}
	if a.maxLive != nil {
		maxP = a.maxLive()
	}
	a.mapTrackers(minP, maxP, rangeMin, rangeMax)
}

// liveRange stages live percent sources and derives the initial tracker
// range, substituting the 0..100 defaults for nil sources.
func (a *Animator) liveRange(minLv, maxLv Level, rangeMin, rangeMax int) {
	a.minLive = minLv
	a.maxLive = maxLv
	if minLv == nil && maxLv == nil {
		a.mapTrackers(0, 100, rangeMin, rangeMax)
		return
	}
	a.mapTrackersLive(rangeMin, rangeMax)
}

// steps reports the discrete step count of the active tracker range, never
// less than one. The range may be descending for center-anchored kinds.
func (a *Animator) steps() int64 {
	return int64(mathx.Abs(a.maxTracker-a.minTracker) + 1)
}

// mapSignal maps a raw signal sample into the output level range with edge
// clamping.
func mapSignal(sig, minM, maxM, minR, maxR int) int {
	return mathx.Clamp(mapRange(sig, minM, maxM, minR, maxR), minR, maxR)
}
