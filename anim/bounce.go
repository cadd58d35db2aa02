package anim

// stepBounce runs one fill phase followed by one return phase by flipping
// the fill logic between them. The phase intervals live in intv2 (outbound)
// and intv3 (return); intv1 always holds the active one.
func (a *Animator) stepBounce() bool {
	switch a.bounce.phase {
	case 0:
		a.skipPending = false
		if a.stepFill() {
			a.logicInverted = !a.initLogicInverted
			a.bounce.phase = 1
			a.intv1 = a.intv3
		}
		return false

	case 1:
		a.skipPending = true
		if a.stepFill() {
			a.logicInverted = a.initLogicInverted
			a.bounce.phase = 0
			a.intv1 = a.intv2
			return true
		}
		return false
	}
	return true
}

// stepCenterBounce bounces the mirrored half-range fill: grow away from the
// anchor, then shrink back. Unlike stepBounce it reinitializes on loop, so
// each cycle redraws its resting frame.
func (a *Animator) stepCenterBounce() bool {
	switch a.bounce.phase {
	case 0:
		a.skipPending = true
		if a.stepCenterFill() {
			a.logicInverted = !a.initLogicInverted
			a.intv1 = a.intv3
			a.bounce.phase = 1
		}
		return false

	case 1:
		a.skipPending = false
		if a.stepCenterFill() {
			a.logicInverted = a.initLogicInverted
			a.intv1 = a.intv2
			a.bounce.phase = 0
			return true
		}
		return false
	}
	return true
}
