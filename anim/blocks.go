package anim

import "github.com/sbarabe/SBK-BarDrive/internal/mathx"

// block is one moving lit run. position is its head segment; tails trail
// behind it against the travel direction.
type block struct {
	position int
	active   bool
}

type blockState struct {
	length    int
	spacing   int
	requested int // 0 = emit forever
	capacity  int
	emitIdx   int
	emitted   int
	cooldown  int
	stack     int // stacking kinds: boundary of the settled region
	pool      []block
}

// emitInterval is the segment pitch between consecutive block heads.
func (s *blockState) emitInterval() int {
	return s.length + s.spacing
}

// emit activates a free pool slot at pos, respecting the spacing cooldown
// and the requested block budget. Slots are scanned round-robin so long
// lived blocks are not starved of reuse.
func (a *Animator) emit(pos int) {
	s := &a.blocks
	if len(s.pool) == 0 {
		return
	}
	if s.cooldown > 0 {
		s.cooldown--
		return
	}
	if s.requested > 0 && s.emitted >= s.requested {
		return
	}
	for i := 0; i < len(s.pool); i++ {
		idx := (s.emitIdx + i) % len(s.pool)
		b := &s.pool[idx]
		if !b.active {
			b.position = pos
			b.active = true
			s.emitted++
			s.cooldown = s.emitInterval() - 1
			s.emitIdx = (s.emitIdx + 1) % len(s.pool)
			return
		}
	}
}

// switchBlocks reflects every active block's head across the travel range
// after a logic flip and returns the emit cooldown that keeps the block
// pitch intact on the new side. Blocks reflected off-range are retired.
func (a *Animator) switchBlocks(rng int) int {
	s := &a.blocks
	closest := -1
	for i := range s.pool {
		b := &s.pool[i]
		if !b.active {
			continue
		}
		swp := (rng - 1) - b.position + (s.length - 1)
		b.position = swp
		if swp < 0 {
			b.active = false
			continue
		}
		if closest < 0 || swp < closest {
			closest = swp
		}
	}
	if closest < 0 {
		return 0
	}
	return mathx.Max(0, (s.emitInterval()-1)-closest)
}

// flipBlocks applies a mid-run logic flip: reflect the pool and suppress
// further emission so the reflected blocks drain out.
func (a *Animator) flipBlocks(rng int) {
	if a.prevLogic == a.logicInverted {
		return
	}
	a.blocks.cooldown = a.switchBlocks(rng)
	a.blocks.emitted = a.blocks.requested
	a.prevLogic = a.logicInverted
}

// blocksDrained reports completion: the block budget is met or emission is
// disabled, and no block remains on the bar.
func (a *Animator) blocksDrained() bool {
	s := &a.blocks
	if (s.requested == 0 || s.emitted < s.requested) && a.emitting {
		return false
	}
	for i := range s.pool {
		if s.pool[i].active {
			return false
		}
	}
	return true
}

func (a *Animator) resetBlockPool() {
	s := &a.blocks
	s.emitted = 0
	s.cooldown = 0
	s.pool = make([]block, mathx.Max(1, s.capacity))
	for i := range s.pool {
		s.pool[i].position = -1
	}
}

// stepMirrorBlocks scrolls blocks over one half of the bar and mirrors them
// onto the other. Normal logic travels edge to center, inverted logic
// center to edge.
func (a *Animator) stepMirrorBlocks() bool {
	center := a.segs / 2
	s := &a.blocks

	if a.init {
		a.init = false
		a.emitting = true
		a.syncLogic()
		a.resetBlockPool()
		return false
	}

	a.flipBlocks(center)

	if a.now-a.last1 >= a.intv1 {
		a.last1 = a.now
		a.meter.Clear()

		if (s.requested == 0 || s.emitted < s.requested) && a.emitting {
			a.emit(-1) // advances to segment 0 on this same frame
		}

		for i := range s.pool {
			b := &s.pool[i]
			if !b.active {
				continue
			}
			b.position++

			visible := mathx.Min(s.length, mathx.Max(0, b.position+1))
			for j := 0; j < visible; j++ {
				pos := b.position
				tail := pos - j
				if a.logicInverted {
					pos = center - 1 - b.position
					tail = pos + j
				}
				if tail < 0 || tail >= center {
					continue
				}
				a.meter.SetPixel(tail, true)
				if mirror := a.segs - 1 - tail; mirror != tail {
					a.meter.SetPixel(mirror, true)
				}
			}

			if b.position >= center-1+s.length {
				b.active = false
			}
		}
	}

	return a.blocksDrained()
}

// stepScrollBlocks scrolls blocks across the full bar. Normal logic travels
// from segment 0 upward, inverted logic from the far end downward.
func (a *Animator) stepScrollBlocks() bool {
	s := &a.blocks

	if a.init {
		a.init = false
		a.emitting = true
		a.syncLogic()
		a.resetBlockPool()
		return false
	}

	a.flipBlocks(a.segs)

	if a.now-a.last1 >= a.intv1 {
		a.last1 = a.now
		a.meter.Clear()

		if (s.requested == 0 || s.emitted < s.requested) && a.emitting {
			a.emit(-1)
		}

		for i := range s.pool {
			b := &s.pool[i]
			if !b.active {
				continue
			}
			b.position++

			for j := 0; j < s.length; j++ {
				pos := b.position
				tail := pos - j
				if a.logicInverted {
					pos = (a.segs - 1) - b.position
					tail = pos + j
				}
				if tail < 0 || tail >= a.segs {
					continue
				}
				a.meter.SetPixel(a.corrDir(tail), true)
			}

			if b.position >= (a.segs-1)+s.length {
				b.active = false
			}
		}
	}

	return a.blocksDrained()
}

// stepStackBlocks drops single blocks across the bar and settles them
// against a growing stack. Normal logic stacks blocks arriving from the far
// end; inverted logic launches them off an initially full bar.
func (a *Animator) stepStackBlocks() bool {
	s := &a.blocks
	pitch := s.emitInterval()

	if a.init {
		a.init = false
		a.syncLogic()
		s.capacity = 1
		a.resetBlockPool()
		s.emitIdx = 0

		s.stack = 0
		if a.logicInverted {
			// Launching upward starts from a bar packed with the block
			// pattern.
			for s.stack < a.segs {
				s.stack += pitch
			}
			for i := 0; i < mathx.Min(s.stack, a.segs); i++ {
				a.meter.SetPixel(a.corrDir(i), i%pitch < s.length)
			}
		} else {
			a.meter.Clear()
		}
		return false
	}

	if a.logicInverted != a.prevLogic {
		a.prevLogic = a.logicInverted
		if a.logicInverted {
			s.stack += pitch
		} else {
			s.stack -= pitch
		}
	}

	if a.now-a.last1 < a.intv1 {
		return false
	}
	a.last1 = a.now

	// Erase the previous frame of every airborne block.
	for i := range s.pool {
		b := &s.pool[i]
		if !b.active {
			continue
		}
		for j := 0; j < s.length; j++ {
			if seg := b.position + j; seg >= 0 && seg < a.segs {
				a.meter.SetPixel(a.corrDir(seg), false)
			}
		}
	}

	hasActive := false
	for i := range s.pool {
		if s.pool[i].active {
			hasActive = true
			break
		}
	}
	if !hasActive {
		s.cooldown = 0
		if !a.logicInverted && s.stack <= a.segs {
			a.emit(a.segs)
		} else if a.logicInverted && s.stack >= 0 {
			a.emit(s.stack - pitch)
		}
	}

	for i := range s.pool {
		b := &s.pool[i]
		if !b.active {
			continue
		}

		if b.position >= 0 && b.position < a.segs {
			a.meter.SetPixel(a.corrDir(b.position), false)
		}

		if a.logicInverted {
			b.position++
		} else {
			b.position--
		}

		for j := 0; j < s.length; j++ {
			if seg := b.position + j; seg >= 0 && seg < a.segs {
				a.meter.SetPixel(a.corrDir(seg), true)
			}
		}

		if !a.logicInverted {
			if b.position <= s.stack {
				s.stack += pitch
				b.active = false
			}
		} else if b.position >= a.segs {
			s.stack -= pitch
			b.active = false
		}
	}

	// Redraw the settled region.
	if s.stack == 0 {
		a.meter.SetPixel(a.corrDir(0), false)
	}
	for i := 0; i < mathx.Min(s.stack-pitch, a.segs); i++ {
		a.meter.SetPixel(a.corrDir(i), i%pitch < s.length)
	}

	if !a.logicInverted {
		return s.stack >= a.segs-1 && !hasActive
	}
	return s.stack <= 0 && !hasActive
}
