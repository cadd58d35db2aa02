package bardrive

import "github.com/sbarabe/SBK-BarDrive/internal/mathx"

// Direction is the bar fill orientation. It is a pure index-reversal
// transform applied before mapping resolution.
type Direction uint8

const (
	Forward Direction = iota // from first segment to last
	Reverse                  // from last segment to first
)

// MatrixPreset names a known matrix-style bar meter wiring, fixing the
// segment count and row/column geometry before auto-mapping.
type MatrixPreset uint8

const (
	// PresetNone selects no preset; the device's full geometry is used as a
	// linear layout.
	PresetNone MatrixPreset = iota
	// PresetSK28 is an alias for PresetBL28_3005SK.
	PresetSK28
	// PresetSA28 is an alias for PresetBL28_3005SA.
	PresetSA28
	// PresetBL28_3005SK is the BL28-3005SK common-cathode wiring,
	// 28 segments over 4 anode rows x 7 cathode columns.
	PresetBL28_3005SK
	// PresetBL28_3005SA is the BL28-3005SA common-anode wiring,
	// 28 segments over 7 anode rows x 4 cathode columns.
	PresetBL28_3005SA
)

// MapEntry is one explicit segment address in a custom mapping table.
type MapEntry struct {
	Device int
	Row    int
	Col    int
}

// mapper resolves logical segment indices to physical (device, row, col)
// addresses. Its configuration is fixed at BarMeter construction; only the
// direction and offsets may change afterwards.
type mapper struct {
	devIdx    int
	direction Direction
	segOffset int // linear mode only
	rowOffset int // matrix modes only
	colOffset int // matrix modes only
	matrix    bool
	segs      int
	rows      int
	cols      int
	table     []MapEntry // non-nil selects custom-table resolution
}

// resolve maps one segment index to its physical address. Pure aside from
// geometry queries on the driver; the caller guarantees seg < m.segs.
func (m *mapper) resolve(seg int, d Driver) (dev, row, col int) {
	mapped := seg
	if m.direction == Reverse {
		mapped = m.segs - 1 - seg
	}

	// The segment offset shifts the raw index, so it only applies to the
	// linear layout; matrix layouts shift rows/columns after resolution.
	if !m.matrix {
		mapped += m.segOffset
	}

	if m.table != nil {
		e := m.table[mapped]
		return e.Device, e.Row + m.rowOffset, e.Col + m.colOffset
	}

	segPerDev := d.MaxRows(m.devIdx) * d.MaxColumns()
	dev = m.devIdx + mapped/segPerDev
	local := mapped % segPerDev

	if m.matrix {
		// Matrix layouts run column-major down the anode rows.
		return dev, local%m.rows + m.rowOffset, local/m.rows + m.colOffset
	}
	// Linear layouts run row-major across the device outputs.
	return dev, local / d.MaxColumns(), local % d.MaxColumns()
}

// zero empties the mapper; every pixel operation on the owning meter
// becomes a no-op.
func (m *mapper) zero() {
	m.segs = 0
	m.rows = 0
	m.cols = 0
	m.segOffset = 0
	m.rowOffset = 0
	m.colOffset = 0
}

// applyPreset fixes segment count and geometry for a named preset, resolving
// the SK28/SA28 aliases first. An unknown or none preset falls back to the
// device's full geometry as a linear layout.
func (m *mapper) applyPreset(p MatrixPreset, d Driver) {
	switch p {
	case PresetSK28:
		p = PresetBL28_3005SK
	case PresetSA28:
		p = PresetBL28_3005SA
	}

	switch p {
	case PresetBL28_3005SK:
		m.segs, m.rows, m.cols = 28, 4, 7
		m.matrix = true
	case PresetBL28_3005SA:
		m.segs, m.rows, m.cols = 28, 7, 4
		m.matrix = true
	default:
		m.rows = d.MaxRows(m.devIdx)
		m.cols = d.MaxColumns()
		m.segs = m.rows * m.cols
		m.matrix = false
	}
}

// clampOffsets bounds the matrix offsets to the device geometry.
func (m *mapper) clampOffsets(rowOffset, colOffset int, d Driver) {
	m.rowOffset = mathx.Clamp(rowOffset, 0, d.MaxRows(m.devIdx)-1)
	m.colOffset = mathx.Clamp(colOffset, 0, d.MaxColumns()-1)
}
