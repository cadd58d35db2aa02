package bardrive

import "github.com/sbarabe/SBK-BarDrive/anim"

var _ anim.Meter = (*BarMeter)(nil)

// BarDrive bundles a BarMeter with its animation engine. It is the usual
// entry point: construct one per bar, then drive it from the control loop
// with Animations().Update followed by Show.
type BarDrive struct {
	*BarMeter
	a *anim.Animator
}

// New wraps an already configured meter.
func New(meter *BarMeter) *BarDrive {
	return &BarDrive{BarMeter: meter}
}

// NewMatrixBar builds a bar on a matrix preset wiring.
func NewMatrixBar(drv Driver, device int, preset MatrixPreset, dir Direction, rowOffset, colOffset int) *BarDrive {
	return New(NewMatrixPreset(drv, device, preset, dir, rowOffset, colOffset))
}

// NewCustomMatrixBar builds a bar on an explicit rows by cols matrix layout.
func NewCustomMatrixBar(drv Driver, device, rows, cols int, dir Direction, rowOffset, colOffset int) *BarDrive {
	return New(NewCustomMatrix(drv, device, rows, cols, dir, rowOffset, colOffset))
}

// NewLinearBar builds a bar on row-major linear wiring.
func NewLinearBar(drv Driver, device, segments int, dir Direction, segOffset int) *BarDrive {
	return New(NewLinear(drv, device, segments, dir, segOffset))
}

// NewMappedBar builds a bar on a custom segment mapping table.
func NewMappedBar(drv Driver, device int, mapping []MapEntry, dir Direction, rowOffset, colOffset int) *BarDrive {
	return New(NewMapped(drv, device, mapping, dir, rowOffset, colOffset))
}

// Animations returns the bar's animation engine, creating it on first use.
func (d *BarDrive) Animations() *anim.Animator {
	if d.a == nil {
		d.a = anim.New(d.BarMeter)
	}
	return d.a
}

// Update advances the active animation with the animator's own clock and
// reports whether it is still running.
func (d *BarDrive) Update() bool {
	return d.Animations().Tick()
}

// UpdateAt advances the active animation using an external millisecond
// timestamp, letting several bars share one clock.
func (d *BarDrive) UpdateAt(now int64) bool {
	return d.Animations().Update(now)
}
