package anim

import "github.com/sbarabe/SBK-BarDrive/internal/mathx"

// Starters arm one animation kind and return the Animator for chaining, so
// configuration reads as one statement:
//
//	bar.Animations().FillUpDur(1500, 100, 0).Loop()
//
// Percent arguments bound the animated span of the bar (0-100); a swapped
// or collapsed pair is normalized before use. Durations and intervals are
// milliseconds. Nothing renders until the next Update call.

// SetAll lights or clears the whole bar on the next update.
func (a *Animator) SetAll(on bool) *Animator {
	if on {
		return a.SetAllOn()
	}
	return a.SetAllOff()
}

// SetAllOn lights the whole bar on the next update.
func (a *Animator) SetAllOn() *Animator {
	a.axes(false, false, false)
	return a.start(kindSetAll, a.stepAllOn)
}

// SetAllOff clears the whole bar on the next update.
func (a *Animator) SetAllOff() *Animator {
	a.axes(false, false, false)
	return a.start(kindSetAll, a.stepAllOff)
}

func (a *Animator) fillDur(dirReversed, logicInverted bool, duration, maxPercent, minPercent int) *Animator {
	a.axes(false, dirReversed, logicInverted)
	a.mapTrackers(minPercent, maxPercent, 0, a.segs-1)
	a.intv1 = mathx.Max(minInterval, int64(duration)/a.steps())
	return a.start(kindFill, a.stepFill)
}

func (a *Animator) fillIntv(dirReversed, logicInverted bool, interval, maxPercent, minPercent int) *Animator {
	a.axes(false, dirReversed, logicInverted)
	a.mapTrackers(minPercent, maxPercent, 0, a.segs-1)
	a.intv1 = mathx.Max(minInterval, int64(interval))
	return a.start(kindFill, a.stepFill)
}

func (a *Animator) fillLive(dirReversed, logicInverted bool, interval int, maxLevel, minLevel Level) *Animator {
	a.axes(false, dirReversed, logicInverted)
	a.liveRange(minLevel, maxLevel, 0, a.segs-1)
	a.intv1 = mathx.Max(minInterval, int64(interval))
	return a.start(kindFill, a.stepFill)
}

// FillUpDur fills the bar from segment 0 upward over duration.
func (a *Animator) FillUpDur(duration, maxPercent, minPercent int) *Animator {
	return a.fillDur(false, false, duration, maxPercent, minPercent)
}

// FillUpIntv fills the bar from segment 0 upward, one segment per interval.
func (a *Animator) FillUpIntv(interval, maxPercent, minPercent int) *Animator {
	return a.fillIntv(false, false, interval, maxPercent, minPercent)
}

// FillUpIntvLive is FillUpIntv with the percent range re-read from live
// sources every update. Nil sources default to 0 and 100.
func (a *Animator) FillUpIntvLive(interval int, maxLevel, minLevel Level) *Animator {
	return a.fillLive(false, false, interval, maxLevel, minLevel)
}

// FillDownDur fills the bar from the far end downward over duration.
func (a *Animator) FillDownDur(duration, maxPercent, minPercent int) *Animator {
	return a.fillDur(true, false, duration, maxPercent, minPercent)
}

// FillDownIntv fills the bar from the far end downward, one segment per
// interval.
func (a *Animator) FillDownIntv(interval, maxPercent, minPercent int) *Animator {
	return a.fillIntv(true, false, interval, maxPercent, minPercent)
}

// FillDownIntvLive is FillDownIntv with a live percent range.
func (a *Animator) FillDownIntvLive(interval int, maxLevel, minLevel Level) *Animator {
	return a.fillLive(true, false, interval, maxLevel, minLevel)
}

// EmptyDownDur empties the bar from the far end downward over duration.
func (a *Animator) EmptyDownDur(duration, maxPercent, minPercent int) *Animator {
	return a.fillDur(false, true, duration, maxPercent, minPercent)
}

// EmptyDownIntv empties the bar from the far end downward, one segment per
// interval.
func (a *Animator) EmptyDownIntv(interval, maxPercent, minPercent int) *Animator {
	return a.fillIntv(false, true, interval, maxPercent, minPercent)
}

// EmptyDownIntvLive is EmptyDownIntv with a live percent range.
func (a *Animator) EmptyDownIntvLive(interval int, maxLevel, minLevel Level) *Animator {
	return a.fillLive(false, true, interval, maxLevel, minLevel)
}

// EmptyUpDur empties the bar from segment 0 upward over duration.
func (a *Animator) EmptyUpDur(duration, maxPercent, minPercent int) *Animator {
	return a.fillDur(true, true, duration, maxPercent, minPercent)
}

// EmptyUpIntv empties the bar from segment 0 upward, one segment per
// interval.
func (a *Animator) EmptyUpIntv(interval, maxPercent, minPercent int) *Animator {
	return a.fillIntv(true, true, interval, maxPercent, minPercent)
}

// EmptyUpIntvLive is EmptyUpIntv with a live percent range.
func (a *Animator) EmptyUpIntvLive(interval int, maxLevel, minLevel Level) *Animator {
	return a.fillLive(true, true, interval, maxLevel, minLevel)
}

// bounceIntervals splits a total cycle duration into fill and empty phase
// intervals. An explicit fillInterval carves its share out of the duration
// and leaves the remainder to the return phase.
func (a *Animator) bounceIntervals(duration, fillInterval int) {
	steps := a.steps()
	var fill, empty int64
	if fillInterval <= 0 {
		fill = mathx.Max(minInterval, int64(duration)/(2*steps))
		empty = fill
	} else {
		fill = mathx.Max(minInterval, int64(fillInterval))
		empty = mathx.Max(minInterval, (int64(duration)-fill*steps)/steps)
	}
	a.intv1 = fill
	a.intv2 = fill
	a.intv3 = empty
}

func (a *Animator) armBounce(k kind, step func() bool) *Animator {
	a.bounce.phase = 0
	return a.start(k, step)
}

// BounceFillUpDur fills the bar upward then empties it back down, spending
// duration on the full cycle. A nonzero fillInterval pins the fill phase
// rate.
func (a *Animator) BounceFillUpDur(duration, maxPercent, minPercent, fillInterval int) *Animator {
	a.axes(true, false, false)
	a.mapTrackers(minPercent, maxPercent, 0, a.segs-1)
	a.bounceIntervals(duration, fillInterval)
	return a.armBounce(kindBounce, a.stepBounce)
}

// BounceFillUpIntv bounces the fill with explicit per-phase intervals.
func (a *Animator) BounceFillUpIntv(fillInterval, emptyInterval, maxPercent, minPercent int) *Animator {
	a.axes(true, false, false)
	a.mapTrackers(minPercent, maxPercent, 0, a.segs-1)
	a.intv1 = mathx.Max(minInterval, int64(fillInterval))
	a.intv2 = a.intv1
	a.intv3 = mathx.Max(minInterval, int64(emptyInterval))
	return a.armBounce(kindBounce, a.stepBounce)
}

// BounceFillUpIntvLive is BounceFillUpIntv with a live percent range.
func (a *Animator) BounceFillUpIntvLive(fillInterval, emptyInterval int, maxLevel, minLevel Level) *Animator {
	a.axes(true, false, false)
	a.liveRange(minLevel, maxLevel, 0, a.segs-1)
	a.intv1 = mathx.Max(minInterval, int64(fillInterval))
	a.intv2 = a.intv1
	a.intv3 = mathx.Max(minInterval, int64(emptyInterval))
	return a.armBounce(kindBounce, a.stepBounce)
}

// BounceFillDownDur is BounceFillUpDur rendered from the far end.
func (a *Animator) BounceFillDownDur(duration, maxPercent, minPercent, fillInterval int) *Animator {
	a.axes(true, true, false)
	a.mapTrackers(minPercent, maxPercent, 0, a.segs-1)
	a.bounceIntervals(duration, fillInterval)
	return a.armBounce(kindBounce, a.stepBounce)
}

// BounceFillDownIntv is BounceFillUpIntv rendered from the far end.
func (a *Animator) BounceFillDownIntv(fillInterval, emptyInterval, maxPercent, minPercent int) *Animator {
	a.axes(true, true, false)
	a.mapTrackers(minPercent, maxPercent, 0, a.segs-1)
	a.intv1 = mathx.Max(minInterval, int64(fillInterval))
	a.intv2 = a.intv1
	a.intv3 = mathx.Max(minInterval, int64(emptyInterval))
	return a.armBounce(kindBounce, a.stepBounce)
}

// BounceFillDownIntvLive is BounceFillDownIntv with a live percent range.
func (a *Animator) BounceFillDownIntvLive(fillInterval, emptyInterval int, maxLevel, minLevel Level) *Animator {
	a.axes(true, true, false)
	a.liveRange(minLevel, maxLevel, 0, a.segs-1)
	a.intv1 = mathx.Max(minInterval, int64(fillInterval))
	a.intv2 = a.intv1
	a.intv3 = mathx.Max(minInterval, int64(emptyInterval))
	return a.armBounce(kindBounce, a.stepBounce)
}

func (a *Animator) centerBounceFixed(mirrored bool, fillInterval, emptyInterval, maxPercent, minPercent int) *Animator {
	a.axes(true, false, false)
	a.mirrorHalfDir = mirrored
	a.mapTrackers(minPercent, maxPercent, a.segs/2-1, 0)
	a.intv1 = mathx.Max(minInterval, int64(fillInterval))
	a.intv2 = a.intv1
	a.intv3 = mathx.Max(minInterval, int64(emptyInterval))
	return a.armBounce(kindCenterBounce, a.stepCenterBounce)
}

func (a *Animator) centerBounceDur(mirrored bool, duration, maxPercent, minPercent, fillInterval int) *Animator {
	a.axes(true, false, false)
	a.mirrorHalfDir = mirrored
	a.mapTrackers(minPercent, maxPercent, a.segs/2-1, 0)
	a.bounceIntervals(duration, fillInterval)
	return a.armBounce(kindCenterBounce, a.stepCenterBounce)
}

func (a *Animator) centerBounceLive(mirrored bool, fillInterval, emptyInterval int, maxLevel, minLevel Level) *Animator {
	a.axes(true, false, false)
	a.mirrorHalfDir = mirrored
	a.liveRange(minLevel, maxLevel, a.segs/2-1, 0)
	a.intv1 = mathx.Max(minInterval, int64(fillInterval))
	a.intv2 = a.intv1
	a.intv3 = mathx.Max(minInterval, int64(emptyInterval))
	return a.armBounce(kindCenterBounce, a.stepCenterBounce)
}

// BounceFillFromCenterDur grows a mirrored fill outward from the center,
// then shrinks it back, spending duration on the full cycle.
func (a *Animator) BounceFillFromCenterDur(duration, maxPercent, minPercent, fillInterval int) *Animator {
	return a.centerBounceDur(false, duration, maxPercent, minPercent, fillInterval)
}

// BounceFillFromCenterIntv bounces the mirrored center fill with explicit
// per-phase intervals.
func (a *Animator) BounceFillFromCenterIntv(fillInterval, emptyInterval, maxPercent, minPercent int) *Animator {
	return a.centerBounceFixed(false, fillInterval, emptyInterval, maxPercent, minPercent)
}

// BounceFillFromCenterIntvLive is BounceFillFromCenterIntv with a live
// percent range.
func (a *Animator) BounceFillFromCenterIntvLive(fillInterval, emptyInterval int, maxLevel, minLevel Level) *Animator {
	return a.centerBounceLive(false, fillInterval, emptyInterval, maxLevel, minLevel)
}

// BounceFillFromEdgesDur grows a mirrored fill inward from both edges, then
// shrinks it back, spending duration on the full cycle.
func (a *Animator) BounceFillFromEdgesDur(duration, maxPercent, minPercent, fillInterval int) *Animator {
	return a.centerBounceDur(true, duration, maxPercent, minPercent, fillInterval)
}

// BounceFillFromEdgesIntv bounces the mirrored edge fill with explicit
// per-phase intervals.
func (a *Animator) BounceFillFromEdgesIntv(fillInterval, emptyInterval, maxPercent, minPercent int) *Animator {
	return a.centerBounceFixed(true, fillInterval, emptyInterval, maxPercent, minPercent)
}

// BounceFillFromEdgesIntvLive is BounceFillFromEdgesIntv with a live
// percent range.
func (a *Animator) BounceFillFromEdgesIntvLive(fillInterval, emptyInterval int, maxLevel, minLevel Level) *Animator {
	return a.centerBounceLive(true, fillInterval, emptyInterval, maxLevel, minLevel)
}

func (a *Animator) armBeat(bpm int, live Level) *Animator {
	a.axes(true, false, false)
	s := &a.beat
	s.live = live
	s.bpm = bpm
	if bpm <= 0 {
		s.bpm = defaultBPM
	}
	s.base = 35 * (a.segs - 1) / 100
	s.crest = 67 * (a.segs - 1) / 100
	s.hold = 150
	return a.start(kindBeat, a.stepBeat)
}

// BeatPulse pulses the bar like a VU meter locked to a fixed BPM. It runs
// until stopped.
func (a *Animator) BeatPulse(bpm int) *Animator {
	return a.armBeat(bpm, nil)
}

// BeatPulseLive is BeatPulse with the BPM re-read from a live source every
// update. A nil source runs at the default BPM.
func (a *Animator) BeatPulseLive(bpm Level) *Animator {
	return a.armBeat(defaultBPM, bpm)
}

func (a *Animator) armBlocks(k kind, step func() bool, logicInverted bool, interval, length, spacing, requested, capacity, capMax int) *Animator {
	a.axes(false, false, logicInverted)
	s := &a.blocks
	s.length = mathx.Max(1, length)
	s.spacing = mathx.Max(0, spacing)
	s.requested = mathx.Max(0, requested)
	s.capacity = mathx.Clamp(capacity, 2, capMax)
	a.intv1 = mathx.Max(minInterval, int64(interval))
	return a.start(k, step)
}

// ExplodingBlocks emits mirrored blocks at the center that travel outward
// to both edges. numBlocks bounds the emission count; 0 emits forever.
func (a *Animator) ExplodingBlocks(interval, blockLength, blockSpacing, numBlocks int) *Animator {
	pitch := mathx.Max(1, blockLength) + mathx.Max(0, blockSpacing)
	return a.armBlocks(kindMirrorBlocks, a.stepMirrorBlocks, true,
		interval, blockLength, blockSpacing, numBlocks, (a.meter.SegCount()/2)/pitch+2, 32)
}

// CollidingBlocks emits mirrored blocks at both edges that travel inward
// and meet at the center. numBlocks bounds the emission count; 0 emits
// forever.
func (a *Animator) CollidingBlocks(interval, blockLength, blockSpacing, numBlocks int) *Animator {
	pitch := mathx.Max(1, blockLength) + mathx.Max(0, blockSpacing)
	return a.armBlocks(kindMirrorBlocks, a.stepMirrorBlocks, false,
		interval, blockLength, blockSpacing, numBlocks, (a.meter.SegCount()/2)/pitch+2, 32)
}

// ScrollingUpBlocks scrolls a block train from segment 0 toward the far
// end. numBlocks bounds the emission count; 0 emits forever.
func (a *Animator) ScrollingUpBlocks(interval, blockLength, blockSpacing, numBlocks int) *Animator {
	pitch := mathx.Max(1, blockLength) + mathx.Max(0, blockSpacing)
	return a.armBlocks(kindScrollBlocks, a.stepScrollBlocks, false,
		interval, blockLength, blockSpacing, numBlocks, a.meter.SegCount()/pitch+2, 64)
}

// ScrollingDownBlocks scrolls a block train from the far end toward
// segment 0. numBlocks bounds the emission count; 0 emits forever.
func (a *Animator) ScrollingDownBlocks(interval, blockLength, blockSpacing, numBlocks int) *Animator {
	pitch := mathx.Max(1, blockLength) + mathx.Max(0, blockSpacing)
	return a.armBlocks(kindScrollBlocks, a.stepScrollBlocks, true,
		interval, blockLength, blockSpacing, numBlocks, a.meter.SegCount()/pitch+2, 64)
}

func (a *Animator) armStack(dirReversed, logicInverted bool, interval, length, spacing int) *Animator {
	a.axes(false, dirReversed, logicInverted)
	s := &a.blocks
	s.length = mathx.Max(1, length)
	s.spacing = mathx.Max(0, spacing)
	s.requested = 0
	s.capacity = 1
	a.intv1 = mathx.Max(minInterval, int64(interval))
	a.emitting = true
	return a.start(kindStackBlocks, a.stepStackBlocks)
}

// DownStackingBlocks drops blocks from the far end and stacks them up from
// segment 0 until the bar is full.
func (a *Animator) DownStackingBlocks(interval, blockLength, blockSpacing int) *Animator {
	return a.armStack(false, false, interval, blockLength, blockSpacing)
}

// UpUnstackingBlocks launches blocks off a full bar toward the far end
// until the bar is empty.
func (a *Animator) UpUnstackingBlocks(interval, blockLength, blockSpacing int) *Animator {
	return a.armStack(false, true, interval, blockLength, blockSpacing)
}

// UpStackingBlocks is DownStackingBlocks rendered from the far end, so
// blocks rise from segment 0 and stack at the top.
func (a *Animator) UpStackingBlocks(interval, blockLength, blockSpacing int) *Animator {
	return a.armStack(true, false, interval, blockLength, blockSpacing)
}

// DownUnstackingBlocks is UpUnstackingBlocks rendered from the far end, so
// the full bar drains out through segment 0.
func (a *Animator) DownUnstackingBlocks(interval, blockLength, blockSpacing int) *Animator {
	return a.armStack(true, true, interval, blockLength, blockSpacing)
}

func (a *Animator) armFollow(k kind, step func() bool, logicInverted, nonInverting bool, sig1, sig2 Level, updateIntv, minMap, maxMap, smoothing, samplingIntv int) *Animator {
	a.axes(nonInverting, false, logicInverted)
	s := &a.sig
	s.sig1 = sig1
	s.sig2 = sig2
	s.minMap, s.maxMap = normalizeSpan(mathx.Max(0, minMap), mathx.Max(0, maxMap))
	s.factor = mathx.Clamp(smoothing, 0, 100)
	a.intv1 = mathx.Max(10, int64(updateIntv))
	a.intv2 = mathx.Max(1, int64(samplingIntv))
	return a.start(k, step)
}

// FollowSignalSmooth renders a bar graph of one smoothed signal. The signal
// is sampled every samplingIntv and the bar redrawn every updateIntv, with
// raw values mapped from [minMap,maxMap] onto the full bar. It runs until
// stopped; a nil source clears the bar and completes.
func (a *Animator) FollowSignalSmooth(sig Level, updateIntv, minMap, maxMap, smoothing, samplingIntv int) *Animator {
	return a.armFollow(kindSignal, a.stepSignal, false, true, sig, nil,
		updateIntv, minMap, maxMap, smoothing, samplingIntv)
}

// FollowSignalWithPointer renders the smoothed bar graph plus a detached
// pointer segment tracking the raw sample.
func (a *Animator) FollowSignalWithPointer(sig Level, updateIntv, minMap, maxMap, smoothing, samplingIntv int) *Animator {
	return a.armFollow(kindSignalPointer, a.stepSignalPointer, false, true, sig, nil,
		updateIntv, minMap, maxMap, smoothing, samplingIntv)
}

// mirrorSignals substitutes the non-nil source for a nil one so either
// signal can drive both halves. Both nil stays both nil.
func mirrorSignals(sig1, sig2 Level) (Level, Level) {
	if sig2 == nil {
		sig2 = sig1
	}
	if sig1 == nil {
		sig1 = sig2
	}
	return sig1, sig2
}

// FollowDualSignalFromCenter drives the lower and upper bar halves outward
// from the center on two smoothed signals. A nil source mirrors the other
// one onto both halves.
func (a *Animator) FollowDualSignalFromCenter(sig1 Level, updateIntv int, sig2 Level, minMap, maxMap, smoothing, samplingIntv int) *Animator {
	sig1, sig2 = mirrorSignals(sig1, sig2)
	return a.armFollow(kindDualSignal, a.stepDualSignal, false, false, sig1, sig2,
		updateIntv, minMap, maxMap, smoothing, samplingIntv)
}

// FollowDualSignalFromEdges drives the two bar halves inward from the
// edges on two smoothed signals. A nil source mirrors the other one onto
// both halves.
func (a *Animator) FollowDualSignalFromEdges(sig1 Level, updateIntv int, sig2 Level, minMap, maxMap, smoothing, samplingIntv int) *Animator {
	sig1, sig2 = mirrorSignals(sig1, sig2)
	return a.armFollow(kindDualSignal, a.stepDualSignal, true, false, sig1, sig2,
		updateIntv, minMap, maxMap, smoothing, samplingIntv)
}

// FollowSignalFloatingPeak renders the smoothed bar graph with a peak
// segment that holds for peakHold milliseconds before decaying.
func (a *Animator) FollowSignalFloatingPeak(sig Level, peakHold, updateIntv, minMap, maxMap, smoothing, samplingIntv int) *Animator {
	a.armFollow(kindFloatingPeak, a.stepFloatingPeak, false, true, sig, nil,
		updateIntv, minMap, maxMap, smoothing, samplingIntv)
	a.intv3 = mathx.Max(20, int64(peakHold))
	return a
}

// RandomFill lights segments one at a time in a shuffled order until the
// bar is full.
func (a *Animator) RandomFill(interval int) *Animator {
	a.axes(false, false, false)
	a.intv1 = mathx.Max(minInterval, int64(interval))
	return a.start(kindRandom, a.stepRandom)
}

// RandomEmpty darkens segments one at a time in a shuffled order until the
// bar is empty.
func (a *Animator) RandomEmpty(interval int) *Animator {
	a.axes(false, false, true)
	a.intv1 = mathx.Max(minInterval, int64(interval))
	return a.start(kindRandom, a.stepRandom)
}
