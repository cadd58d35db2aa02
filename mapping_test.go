package bardrive

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// fakeDriver is an in-memory chain used across the package tests.
type fakeDriver struct {
	devs, rows, cols int
	fb               map[[3]int]bool
	shows            int
	showDev          []int
}

func newFakeDriver(devs, rows, cols int) *fakeDriver {
	return &fakeDriver{
		devs: devs, rows: rows, cols: cols,
		fb:      make(map[[3]int]bool),
		showDev: make([]int, devs),
	}
}

func (f *fakeDriver) SetLed(device, row, col int, on bool) {
	if device < 0 || device >= f.devs || row < 0 || row >= f.rows || col < 0 || col >= f.cols {
		return
	}
	f.fb[[3]int{device, row, col}] = on
}

func (f *fakeDriver) GetLed(device, row, col int) bool {
	return f.fb[[3]int{device, row, col}]
}

func (f *fakeDriver) Show() { f.shows++ }

func (f *fakeDriver) ShowDevice(device int) {
	if device >= 0 && device < f.devs {
		f.showDev[device]++
	}
}

func (f *fakeDriver) MaxRows(device int) int {
	if device < 0 || device >= f.devs {
		return 0
	}
	return f.rows
}

func (f *fakeDriver) MaxColumns() int { return f.cols }
func (f *fakeDriver) DevCount() int   { return f.devs }

func (f *fakeDriver) MaxSegments(device int) int {
	if device < 0 || device >= f.devs {
		return 0
	}
	return f.rows * f.cols
}

func (f *fakeDriver) lit() int {
	n := 0
	for _, on := range f.fb {
		if on {
			n++
		}
	}
	return n
}

func TestMatrixPresetSKRunsColumnMajor(t *testing.T) {
	drv := newFakeDriver(1, 8, 8)
	b := NewMatrixPreset(drv, 0, PresetBL28_3005SK, Forward, 0, 0)

	assert.Equal(t, 28, b.SegCount())

	dev, row, col := b.m.resolve(0, drv)
	assert.Equal(t, []int{0, 0, 0}, []int{dev, row, col})

	// Column-major: the next segment advances the row.
	dev, row, col = b.m.resolve(1, drv)
	assert.Equal(t, []int{0, 1, 0}, []int{dev, row, col})

	// Row wrap after four anode rows.
	dev, row, col = b.m.resolve(4, drv)
	assert.Equal(t, []int{0, 0, 1}, []int{dev, row, col})

	dev, row, col = b.m.resolve(27, drv)
	assert.Equal(t, []int{0, 3, 6}, []int{dev, row, col})
}

func TestMatrixPresetSAGeometry(t *testing.T) {
	drv := newFakeDriver(1, 8, 8)
	b := NewMatrixPreset(drv, 0, PresetSA28, Forward, 0, 0)

	assert.Equal(t, 28, b.SegCount())

	dev, row, col := b.m.resolve(6, drv)
	assert.Equal(t, []int{0, 6, 0}, []int{dev, row, col})

	dev, row, col = b.m.resolve(7, drv)
	assert.Equal(t, []int{0, 0, 1}, []int{dev, row, col})
}

func TestDirectionReversalIsSymmetric(t *testing.T) {
	drv := newFakeDriver(2, 8, 8)
	fwd := NewMatrixPreset(drv, 0, PresetBL28_3005SK, Forward, 0, 0)
	rev := NewMatrixPreset(drv, 0, PresetBL28_3005SK, Reverse, 0, 0)

	n := fwd.SegCount()
	for i := 0; i < n; i++ {
		fd, fr, fc := fwd.m.resolve(i, drv)
		rd, rr, rc := rev.m.resolve(n-1-i, drv)
		assert.Equal(t, []int{fd, fr, fc}, []int{rd, rr, rc}, "segment %d", i)
	}
}

func TestMatrixOffsetsShiftResolution(t *testing.T) {
	drv := newFakeDriver(1, 8, 8)
	b := NewMatrixPreset(drv, 0, PresetBL28_3005SK, Forward, 2, 1)

	dev, row, col := b.m.resolve(0, drv)
	assert.Equal(t, []int{0, 2, 1}, []int{dev, row, col})
}

func TestLinearSpillsAcrossDevices(t *testing.T) {
	drv := newFakeDriver(2, 8, 8)
	b := NewLinear(drv, 0, 100, Forward, 0)

	dev, row, col := b.m.resolve(63, drv)
	assert.Equal(t, []int{0, 7, 7}, []int{dev, row, col})

	dev, row, col = b.m.resolve(64, drv)
	assert.Equal(t, []int{1, 0, 0}, []int{dev, row, col})
}

func TestLinearSegmentOffsetShiftsIntoNextDevice(t *testing.T) {
	drv := newFakeDriver(2, 8, 8)
	b := NewLinear(drv, 0, 64, Forward, 4)

	dev, row, col := b.m.resolve(0, drv)
	assert.Equal(t, []int{0, 0, 4}, []int{dev, row, col})

	// Offset pushes the tail onto the second device.
	dev, row, col = b.m.resolve(60, drv)
	assert.Equal(t, []int{1, 0, 0}, []int{dev, row, col})
}

func TestLinearOffsetClampedToDevice(t *testing.T) {
	drv := newFakeDriver(1, 8, 8)
	b := NewLinear(drv, 0, 8, Forward, 200)

	assert.Equal(t, 63, b.m.segOffset)
}

func TestCustomMatrixColumnsNeverSplit(t *testing.T) {
	drv := newFakeDriver(2, 8, 8)
	b := NewCustomMatrix(drv, 0, 10, 12, Forward, 0, 0)

	assert.Equal(t, 8, b.m.cols)
	assert.Equal(t, 80, b.SegCount())
}

func TestMappedTableWithOriginShift(t *testing.T) {
	drv := newFakeDriver(1, 8, 8)
	table := []MapEntry{
		{Device: 0, Row: 3, Col: 2},
		{Device: 0, Row: 5, Col: 1},
	}
	b := NewMapped(drv, 0, table, Forward, 1, 1)

	assert.Equal(t, 2, b.SegCount())

	dev, row, col := b.m.resolve(0, drv)
	assert.Equal(t, []int{0, 4, 3}, []int{dev, row, col})

	dev, row, col = b.m.resolve(1, drv)
	assert.Equal(t, []int{0, 6, 2}, []int{dev, row, col})
}

func TestMissingStartDeviceYieldsEmptyMeter(t *testing.T) {
	drv := newFakeDriver(2, 8, 8)
	b := NewLinear(drv, 5, 20, Forward, 0)

	assert.Equal(t, 0, b.SegCount())

	b.SetPixel(0, true)
	assert.Equal(t, 0, drv.lit())
	assert.False(t, b.PixelState(0))
}

func TestStartDeviceClampedToChainLimit(t *testing.T) {
	drv := newFakeDriver(8, 8, 8)
	b := NewLinear(drv, 25, 10, Forward, 0)

	assert.Equal(t, 7, b.m.devIdx)
	assert.Equal(t, 10, b.SegCount())
}
