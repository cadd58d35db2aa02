package anim

import "testing"

// fakeMeter is an in-memory pixel surface for animation tests.
type fakeMeter struct {
	px []bool
}

func newFakeMeter(n int) *fakeMeter { return &fakeMeter{px: make([]bool, n)} }

func (m *fakeMeter) SetPixel(seg int, on bool) {
	if seg < 0 || seg >= len(m.px) {
		return
	}
	m.px[seg] = on
}

func (m *fakeMeter) PixelState(seg int) bool {
	if seg < 0 || seg >= len(m.px) {
		return false
	}
	return m.px[seg]
}

func (m *fakeMeter) Clear() {
	for i := range m.px {
		m.px[i] = false
	}
}

func (m *fakeMeter) SegCount() int { return len(m.px) }

func (m *fakeMeter) lit() int {
	n := 0
	for _, on := range m.px {
		if on {
			n++
		}
	}
	return n
}

func TestFillUpDurCompletesOnBoundarySegment(t *testing.T) {
	m := newFakeMeter(10)
	a := New(m).FillUpDur(1000, 100, 0)

	if !a.Update(0) {
		t.Fatal("init tick should leave the animation running")
	}
	if m.lit() != 0 {
		t.Fatalf("init frame lit %d segments, want 0", m.lit())
	}

	for k := 1; k <= 9; k++ {
		if !a.Update(int64(k * 100)) {
			t.Fatalf("fill ended early at interval %d", k)
		}
		if m.lit() != k {
			t.Fatalf("after interval %d: lit %d, want %d", k, m.lit(), k)
		}
		if !m.PixelState(k - 1) {
			t.Fatalf("after interval %d: segment %d not lit", k, k-1)
		}
	}

	if a.Update(1000) {
		t.Fatal("fill should complete on the tick lighting the last segment")
	}
	if m.lit() != 10 {
		t.Fatalf("final frame lit %d segments, want 10", m.lit())
	}
	if a.IsRunning() {
		t.Fatal("animator still running after completion")
	}
}

func TestEmptyDownClearsFromTheTop(t *testing.T) {
	m := newFakeMeter(8)
	a := New(m).EmptyDownIntv(10, 100, 0)

	a.Update(0)
	if m.lit() != 8 {
		t.Fatalf("init frame lit %d segments, want a full bar", m.lit())
	}

	a.Update(10)
	if m.PixelState(7) {
		t.Fatal("segment 7 should clear first")
	}

	for k := 2; k <= 8; k++ {
		a.Update(int64(k * 10))
	}
	if m.lit() != 0 {
		t.Fatalf("bar not empty after full sweep, %d lit", m.lit())
	}
	if a.IsRunning() {
		t.Fatal("empty should complete after clearing segment 0")
	}
}

func TestFillRespectsPercentWindow(t *testing.T) {
	m := newFakeMeter(10)
	a := New(m).FillUpIntv(10, 80, 20)

	a.Update(0)
	// 20% of a 0..9 range pre-lights segment 0.
	if m.lit() != 1 || !m.PixelState(0) {
		t.Fatalf("init frame lit %d, want only segment 0", m.lit())
	}

	for k := 1; k <= 7; k++ {
		a.Update(int64(k * 10))
	}
	if a.IsRunning() {
		t.Fatal("fill should stop at the 80% boundary")
	}
	if m.lit() != 8 {
		t.Fatalf("lit %d segments, want 8 (0 through 7)", m.lit())
	}
	if m.PixelState(8) || m.PixelState(9) {
		t.Fatal("segments above the percent window must stay dark")
	}
}

func TestLogicFlipMidFillDrainsBack(t *testing.T) {
	m := newFakeMeter(10)
	a := New(m).FillUpIntv(10, 100, 0)

	a.Update(0)
	a.Update(10)
	a.Update(20)
	a.Update(30)
	if m.lit() != 3 {
		t.Fatalf("lit %d segments before flip, want 3", m.lit())
	}

	a.ToggleLogic()
	if !a.IsLogicInverted() {
		t.Fatal("logic should report inverted after toggle")
	}

	running := true
	for k := 4; k <= 10 && running; k++ {
		running = a.Update(int64(k * 10))
	}
	if running {
		t.Fatal("inverted fill never completed")
	}
	if m.lit() != 0 {
		t.Fatalf("lit %d segments after drain, want 0", m.lit())
	}
}

func TestNonInvertingKindIgnoresLogicControls(t *testing.T) {
	m := newFakeMeter(6)
	a := New(m).BounceFillUpIntv(10, 10, 100, 0)

	a.ToggleLogic()
	if a.IsLogicInverted() {
		t.Fatal("bounce kinds must ignore logic inversion")
	}
	if !a.IsNonInvertingLogic() {
		t.Fatal("bounce kinds should report non-inverting logic")
	}
}

func TestBounceFillRoundTrip(t *testing.T) {
	m := newFakeMeter(6)
	a := New(m).BounceFillUpIntv(100, 50, 100, 0)

	for tk := int64(0); tk <= 600; tk += 50 {
		if !a.Update(tk) {
			t.Fatalf("bounce ended during outbound phase at %dms", tk)
		}
	}
	if m.lit() != 6 {
		t.Fatalf("peak frame lit %d segments, want 6", m.lit())
	}

	done := false
	for tk := int64(650); tk <= 1000; tk += 50 {
		if !a.Update(tk) {
			done = true
			break
		}
	}
	if !done {
		t.Fatal("bounce never finished its return phase")
	}
	if m.lit() != 0 {
		t.Fatalf("return phase left %d segments lit", m.lit())
	}
}

func TestShortBounceDurationKeepsMinimumInterval(t *testing.T) {
	m := newFakeMeter(10)
	a := New(m).BounceFillUpDur(20, 100, 0, 0)

	// 20ms over 20 half-steps derives 1ms per step, clamped to 5ms.
	if a.intv1 != minInterval {
		t.Fatalf("derived fill interval %dms, want %dms", a.intv1, minInterval)
	}
	if a.intv3 != minInterval {
		t.Fatalf("derived empty interval %dms, want %dms", a.intv3, minInterval)
	}

	a.Update(0)
	a.Update(3)
	if m.lit() != 0 {
		t.Fatalf("%d segments lit before the interval floor elapsed", m.lit())
	}
	a.Update(5)
	if m.lit() != 1 {
		t.Fatalf("%d segments lit after one interval, want 1", m.lit())
	}
}

func TestLoopingBounceSwallowsPendingLoop(t *testing.T) {
	m := newFakeMeter(4)
	a := New(m).BounceFillUpIntv(10, 10, 100, 0).Loop()

	sawCompletion := false
	for tk := int64(0); tk <= 300; tk += 10 {
		a.Update(tk)
		if a.PendingLoop() {
			sawCompletion = true
		}
	}
	if sawCompletion {
		t.Fatal("looping bounce must not announce pending loops")
	}
	if !a.IsRunning() {
		t.Fatal("looping bounce stopped running")
	}
}

func TestLoopingCenterBounceReportsPendingLoop(t *testing.T) {
	m := newFakeMeter(8)
	a := New(m).BounceFillFromCenterIntv(10, 10, 100, 0).Loop()

	saw := 0
	for tk := int64(0); tk <= 400; tk += 10 {
		a.Update(tk)
		if a.PendingLoop() {
			saw++
		}
	}
	if saw == 0 {
		t.Fatal("looping center bounce never reported a pending loop")
	}
	if !a.IsRunning() {
		t.Fatal("looping center bounce stopped running")
	}
}

func TestLoopedFillReinitializes(t *testing.T) {
	m := newFakeMeter(4)
	a := New(m).FillUpIntv(10, 100, 0).Loop()

	for tk := int64(0); tk <= 40; tk += 10 {
		a.Update(tk)
	}
	if m.lit() != 4 {
		t.Fatalf("first cycle lit %d segments, want 4", m.lit())
	}
	if !a.PendingLoop() {
		t.Fatal("completed looping fill should report a pending loop once")
	}
	if a.PendingLoop() {
		t.Fatal("pending loop flag must auto-clear on read")
	}

	a.Update(50)
	if m.lit() != 0 {
		t.Fatalf("loop reinit should clear the bar, %d lit", m.lit())
	}
	if !a.IsRunning() {
		t.Fatal("looping fill stopped after one cycle")
	}
}

func TestPauseResumeStop(t *testing.T) {
	m := newFakeMeter(6)
	a := New(m).FillUpIntv(10, 100, 0)

	a.Update(0)
	a.Update(10)
	if m.lit() != 1 {
		t.Fatalf("lit %d, want 1", m.lit())
	}

	a.Pause()
	if a.Update(20) {
		t.Fatal("paused animator should report not running from Update")
	}
	if m.lit() != 1 || !a.IsPaused() {
		t.Fatal("pause must freeze the frame")
	}

	a.Resume()
	if !a.Update(30) {
		t.Fatal("resumed animator should keep running")
	}
	if m.lit() != 2 {
		t.Fatalf("lit %d after resume, want 2", m.lit())
	}

	a.Stop()
	if a.IsRunning() || a.Update(40) {
		t.Fatal("stop must halt the animator")
	}
	if m.lit() != 2 {
		t.Fatal("stop must not touch the frame")
	}
}

func TestDirectionReversalRendersFromFarEnd(t *testing.T) {
	m := newFakeMeter(8)
	a := New(m).FillDownIntv(10, 100, 0)

	a.Update(0)
	a.Update(10)
	if !m.PixelState(7) {
		t.Fatal("reversed fill should light segment 7 first")
	}
	if a.IsDirectionReversed() {
		t.Fatal("initial direction must not count as reversed")
	}

	a.ToggleDir()
	if !a.IsDirectionReversed() {
		t.Fatal("toggled direction should report reversed")
	}
}

func TestNormalizePercent(t *testing.T) {
	cases := []struct {
		inMin, inMax   int
		outMin, outMax int
	}{
		{30, 70, 30, 70},
		{70, 30, 30, 70},
		{50, 50, 50, 51},
		{100, 100, 99, 100},
		{0, 0, 0, 1},
		{-5, 130, 0, 100},
	}
	for _, c := range cases {
		gotMin, gotMax := normalizePercent(c.inMin, c.inMax)
		if gotMin != c.outMin || gotMax != c.outMax {
			t.Errorf("normalizePercent(%d,%d) = (%d,%d), want (%d,%d)",
				c.inMin, c.inMax, gotMin, gotMax, c.outMin, c.outMax)
		}
	}
}

func TestMapRangeSupportsDescendingOutput(t *testing.T) {
	if got := mapRange(0, 0, 100, 9, 0); got != 9 {
		t.Errorf("mapRange(0) = %d, want 9", got)
	}
	if got := mapRange(100, 0, 100, 9, 0); got != 0 {
		t.Errorf("mapRange(100) = %d, want 0", got)
	}
	if got := mapRange(50, 0, 100, 0, 10); got != 5 {
		t.Errorf("mapRange(50) = %d, want 5", got)
	}
	if got := mapRange(7, 3, 3, 1, 9); got != 1 {
		t.Errorf("collapsed input range should map to outMin, got %d", got)
	}
}

func TestRandomFillVisitsEverySegmentOnce(t *testing.T) {
	m := newFakeMeter(12)
	a := New(m).Seed(1).RandomFill(10)

	a.Update(0)
	if m.lit() != 0 {
		t.Fatalf("init frame lit %d, want 0", m.lit())
	}

	for k := 1; k <= 12; k++ {
		a.Update(int64(k * 10))
		if m.lit() != k {
			t.Fatalf("after interval %d: lit %d, want exactly one new segment", k, m.lit())
		}
	}
	if a.IsRunning() {
		t.Fatal("random fill should complete once every segment is lit")
	}
}

func TestRandomEmptyDarkensEverySegment(t *testing.T) {
	m := newFakeMeter(8)
	a := New(m).Seed(7).RandomEmpty(10)

	a.Update(0)
	if m.lit() != 8 {
		t.Fatalf("init frame lit %d, want a full bar", m.lit())
	}

	for k := 1; k <= 8; k++ {
		a.Update(int64(k * 10))
	}
	if m.lit() != 0 {
		t.Fatalf("random empty left %d segments lit", m.lit())
	}
	if a.IsRunning() {
		t.Fatal("random empty should complete once the bar is dark")
	}
}

func TestRestartReplaysTheCycle(t *testing.T) {
	m := newFakeMeter(4)
	a := New(m).FillUpIntv(10, 100, 0)

	a.Update(0)
	a.Update(10)
	a.Update(20)
	if m.lit() != 2 {
		t.Fatalf("lit %d before restart, want 2", m.lit())
	}

	a.Restart()
	a.Update(30)
	if m.lit() != 0 {
		t.Fatalf("restart should replay the init frame, %d lit", m.lit())
	}
	if !a.IsRunning() {
		t.Fatal("restart must keep the animation running")
	}
}
