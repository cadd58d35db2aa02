package anim

import "testing"

func TestScrollingBlocksTravelAndDrain(t *testing.T) {
	m := newFakeMeter(10)
	a := New(m).ScrollingUpBlocks(10, 2, 1, 2)

	a.Update(0)
	if got := len(a.blocks.pool); got != 5 {
		t.Fatalf("pool holds %d slots, want 5 for a 10 segment bar at pitch 3", got)
	}
	a.Update(10)
	if !m.PixelState(0) || m.lit() != 1 {
		t.Fatalf("first frame should show the head on segment 0, lit %d", m.lit())
	}

	for tk := int64(20); tk <= 40; tk += 10 {
		a.Update(tk)
	}
	// Second block emitted three intervals after the first keeps the pitch.
	if !m.PixelState(3) || !m.PixelState(2) || !m.PixelState(0) {
		t.Fatal("block train lost its pitch")
	}

	done := false
	for tk := int64(50); tk <= 200; tk += 10 {
		if !a.Update(tk) {
			done = true
			break
		}
	}
	if !done {
		t.Fatal("block train never drained after meeting its budget")
	}
	if m.lit() != 0 {
		t.Fatalf("drained train left %d segments lit", m.lit())
	}
}

func TestCollidingBlocksMirrorTowardCenter(t *testing.T) {
	m := newFakeMeter(10)
	a := New(m).CollidingBlocks(10, 1, 1, 1)

	a.Update(0)
	a.Update(10)
	if !m.PixelState(0) || !m.PixelState(9) {
		t.Fatal("colliding blocks should enter at both edges")
	}

	for tk := int64(20); tk <= 50; tk += 10 {
		a.Update(tk)
	}
	if !m.PixelState(4) || !m.PixelState(5) {
		t.Fatal("colliding blocks should meet at the center")
	}

	if a.Update(60) {
		t.Fatal("single block pair should drain after crossing its half")
	}
	if m.lit() != 0 {
		t.Fatalf("%d segments lit after drain", m.lit())
	}
}

func TestExplodingBlocksMirrorTowardEdges(t *testing.T) {
	m := newFakeMeter(10)
	a := New(m).ExplodingBlocks(10, 1, 1, 1)

	a.Update(0)
	a.Update(10)
	if !m.PixelState(4) || !m.PixelState(5) {
		t.Fatal("exploding blocks should appear at the center")
	}

	for tk := int64(20); tk <= 50; tk += 10 {
		a.Update(tk)
	}
	if !m.PixelState(0) || !m.PixelState(9) {
		t.Fatal("exploding blocks should reach the edges")
	}

	if a.Update(60) {
		t.Fatal("single block pair should drain after leaving the bar")
	}
}

func TestStopBlockEmissionDrainsTheTrain(t *testing.T) {
	m := newFakeMeter(10)
	a := New(m).ScrollingUpBlocks(10, 1, 1, 0)

	for tk := int64(0); tk <= 40; tk += 10 {
		a.Update(tk)
	}
	if m.lit() == 0 {
		t.Fatal("open-ended train should be emitting blocks")
	}

	a.StopBlockEmission()
	if a.IsBlockEmissionEnabled() {
		t.Fatal("emission should report disabled")
	}

	done := false
	for tk := int64(50); tk <= 300; tk += 10 {
		if !a.Update(tk) {
			done = true
			break
		}
	}
	if !done {
		t.Fatal("train never drained after emission stopped")
	}
	if m.lit() != 0 {
		t.Fatalf("%d segments lit after drain", m.lit())
	}
}

func TestStackingBlocksFillTheBar(t *testing.T) {
	m := newFakeMeter(6)
	a := New(m).DownStackingBlocks(10, 1, 0)

	done := false
	for tk := int64(0); tk <= 1000; tk += 10 {
		if !a.Update(tk) && tk > 0 {
			done = true
			break
		}
	}
	if !done {
		t.Fatal("stacking never completed")
	}
	if m.lit() != 6 {
		t.Fatalf("stacked bar lit %d segments, want 6", m.lit())
	}
}

func TestUnstackingBlocksEmptyTheBar(t *testing.T) {
	m := newFakeMeter(6)
	a := New(m).UpUnstackingBlocks(10, 1, 0)

	a.Update(0)
	if m.lit() != 6 {
		t.Fatalf("init frame lit %d segments, want a full bar", m.lit())
	}

	done := false
	for tk := int64(10); tk <= 1000; tk += 10 {
		if !a.Update(tk) {
			done = true
			break
		}
	}
	if !done {
		t.Fatal("unstacking never completed")
	}
	if m.lit() != 0 {
		t.Fatalf("unstacked bar left %d segments lit", m.lit())
	}
}

func TestStackingWithSpacingKeepsThePattern(t *testing.T) {
	m := newFakeMeter(8)
	a := New(m).DownStackingBlocks(10, 1, 1)

	for tk := int64(0); tk <= 2000; tk += 10 {
		if !a.Update(tk) && tk > 0 {
			break
		}
	}
	// Pitch 2 pattern: even segments settle lit, odd stay dark.
	for i := 0; i < 6; i += 2 {
		if !m.PixelState(i) {
			t.Errorf("segment %d should be part of the settled pattern", i)
		}
		if m.PixelState(i + 1) {
			t.Errorf("segment %d should be a spacing gap", i+1)
		}
	}
}
