package bardrive

import (
	"fmt"
	"io"

	"github.com/sbarabe/SBK-BarDrive/internal/mathx"
)

// BarMeter drives one segment-addressable bar display through a Driver. A
// logical segment index is resolved to a physical (device, row, col) address
// by the mapping mode bound at construction. The mapping mode is immutable;
// direction and offsets may be adjusted afterwards.
//
// When the requested start device does not exist on the driver's chain, the
// meter is constructed empty (zero segments) and every pixel operation is a
// no-op.
type BarMeter struct {
	drv Driver
	m   mapper
}

// NewMatrixPreset builds a BarMeter over a preset matrix wiring such as the
// BL28-3005 family.
func NewMatrixPreset(drv Driver, device int, preset MatrixPreset, dir Direction, rowOffset, colOffset int) *BarMeter {
	b := &BarMeter{drv: drv}
	b.m.devIdx = mathx.Clamp(device, 0, 7)
	b.m.direction = dir
	b.m.matrix = true
	if !b.validDevice() {
		b.m.zero()
		return b
	}
	b.m.applyPreset(preset, drv)
	b.m.clampOffsets(rowOffset, colOffset, drv)
	return b
}

// NewCustomMatrix builds a BarMeter over an explicit rows x cols matrix.
// Rows may spill over multiple devices; columns are clamped to one device's
// column capacity and never split.
func NewCustomMatrix(drv Driver, device, rows, cols int, dir Direction, rowOffset, colOffset int) *BarMeter {
	b := &BarMeter{drv: drv}
	b.m.devIdx = mathx.Clamp(device, 0, 7)
	b.m.direction = dir
	b.m.matrix = true
	if !b.validDevice() {
		b.m.zero()
		return b
	}
	b.m.rows = mathx.Max(rows, 1)
	b.m.cols = mathx.Clamp(cols, 1, drv.MaxColumns())
	b.m.segs = b.m.rows * b.m.cols
	b.m.clampOffsets(rowOffset, colOffset, drv)
	return b
}

// NewLinear builds a 1D BarMeter where each segment addresses driver outputs
// sequentially, row-major, spilling onto following devices as needed. The
// segment offset skips leading outputs when the bar is not wired to the
// device's first pin.
func NewLinear(drv Driver, device, segments int, dir Direction, segOffset int) *BarMeter {
	b := &BarMeter{drv: drv}
	b.m.devIdx = mathx.Clamp(device, 0, 7)
	b.m.direction = dir
	b.m.matrix = false
	b.m.segs = segments
	if !b.validDevice() {
		b.m.zero()
		return b
	}
	b.m.rows = drv.MaxRows(b.m.devIdx)
	b.m.cols = drv.MaxColumns()
	b.m.segOffset = mathx.Clamp(segOffset, 0, drv.MaxSegments(b.m.devIdx)-1)
	return b
}

// NewMapped builds a BarMeter from an explicit per-segment address table.
// The table length fixes the segment count; the row/col offsets shift every
// table entry (a table-origin shift).
func NewMapped(drv Driver, device int, mapping []MapEntry, dir Direction, rowOffset, colOffset int) *BarMeter {
	b := &BarMeter{drv: drv}
	b.m.devIdx = mathx.Clamp(device, 0, 7)
	b.m.direction = dir
	b.m.matrix = true
	if !b.validDevice() {
		b.m.zero()
		return b
	}
	b.m.table = mapping
	b.m.segs = len(mapping)
	b.m.rows = drv.MaxRows(b.m.devIdx)
	b.m.cols = drv.MaxColumns()
	b.m.clampOffsets(rowOffset, colOffset, drv)
	return b
}

func (b *BarMeter) validDevice() bool {
	return b.drv != nil && b.m.devIdx <= b.drv.DevCount()-1
}

// SetPixel sets the buffered on/off state of one logical segment. The change
// is not visible until Show. Out-of-range segments are ignored.
func (b *BarMeter) SetPixel(segment int, on bool) {
	if segment < 0 || segment >= b.m.segs || b.drv == nil {
		return
	}
	dev, row, col := b.m.resolve(segment, b.drv)
	b.drv.SetLed(dev, row, col, on)
}

// PixelState reports the last buffered state of one logical segment. It
// queries the driver's buffer, not the physical IC. Out-of-range segments
// report false.
func (b *BarMeter) PixelState(segment int) bool {
	if segment < 0 || segment >= b.m.segs || b.drv == nil {
		return false
	}
	dev, row, col := b.m.resolve(segment, b.drv)
	return b.drv.GetLed(dev, row, col)
}

// Clear turns every segment off in the buffer.
func (b *BarMeter) Clear() {
	for i := 0; i < b.m.segs; i++ {
		b.SetPixel(i, false)
	}
}

// Show flushes the driver's buffered state to the hardware. The flush covers
// the whole chain, not just the devices this meter maps onto.
func (b *BarMeter) Show() {
	if b.drv != nil {
		b.drv.Show()
	}
}

// ShowDevice flushes a single device where the transport supports it.
func (b *BarMeter) ShowDevice(device int) {
	if b.drv != nil {
		b.drv.ShowDevice(device)
	}
}

// SetDirection sets the bar fill direction.
func (b *BarMeter) SetDirection(dir Direction) { b.m.direction = dir }

// Direction reports the current bar fill direction.
func (b *BarMeter) Direction() Direction { return b.m.direction }

// SegCount reports the number of logical segments (zero for a degenerate
// meter).
func (b *BarMeter) SegCount() int { return b.m.segs }

// SetSegmentOffset shifts the segment index before mapping. Meaningful for
// linear layouts where the display does not start on the device's first
// output.
func (b *BarMeter) SetSegmentOffset(offset int) *BarMeter {
	b.m.segOffset = offset
	return b
}

// SetMatrixOffset shifts resolved rows and columns. Meaningful for matrix
// layouts not wired to the device's first row/column.
func (b *BarMeter) SetMatrixOffset(rowOffset, colOffset int) *BarMeter {
	b.m.rowOffset = rowOffset
	b.m.colOffset = colOffset
	return b
}

// DebugSegmentMapping writes the resolved segment to (device, row, col)
// table to w, useful for verifying offsets, presets and split-device
// configurations.
func (b *BarMeter) DebugSegmentMapping(w io.Writer) {
	for i := 0; i < b.m.segs; i++ {
		dev, row, col := b.m.resolve(i, b.drv)
		fmt.Fprintf(w, "Segment %d -> Device %d, Row %d, Col %d\n", i, dev, row, col)
	}
}
