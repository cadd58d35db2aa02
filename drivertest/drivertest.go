// Package drivertest provides an in-memory bar driver for tests and
// headless runs. It records pixel state per device and counts flushes so
// tests can assert on rendered frames without hardware.
package drivertest

import (
	bardrive "github.com/sbarabe/SBK-BarDrive"
)

var _ bardrive.Driver = (*Driver)(nil)

// Driver is a fake device chain. Every device shares the same rows by cols
// geometry. The zero value is unusable; use New.
type Driver struct {
	rows, cols int
	devices    int
	fb         [][]bool

	// Shows counts Show calls, ShowsPerDev counts ShowDevice calls per
	// device index.
	Shows       int
	ShowsPerDev []int
}

// New builds a fake chain of devices, each rows by cols.
func New(devices, rows, cols int) *Driver {
	d := &Driver{
		rows:        rows,
		cols:        cols,
		devices:     devices,
		fb:          make([][]bool, devices),
		ShowsPerDev: make([]int, devices),
	}
	for i := range d.fb {
		d.fb[i] = make([]bool, rows*cols)
	}
	return d
}

func (d *Driver) valid(device, row, col int) bool {
	return device >= 0 && device < d.devices &&
		row >= 0 && row < d.rows && col >= 0 && col < d.cols
}

func (d *Driver) SetLed(device, row, col int, on bool) {
	if !d.valid(device, row, col) {
		return
	}
	d.fb[device][row*d.cols+col] = on
}

func (d *Driver) GetLed(device, row, col int) bool {
	if !d.valid(device, row, col) {
		return false
	}
	return d.fb[device][row*d.cols+col]
}

func (d *Driver) Show() { d.Shows++ }

func (d *Driver) ShowDevice(device int) {
	if device >= 0 && device < d.devices {
		d.ShowsPerDev[device]++
	}
}

func (d *Driver) MaxRows(device int) int {
	if device < 0 || device >= d.devices {
		return 0
	}
	return d.rows
}

func (d *Driver) MaxColumns() int { return d.cols }

func (d *Driver) DevCount() int { return d.devices }

func (d *Driver) MaxSegments(device int) int {
	if device < 0 || device >= d.devices {
		return 0
	}
	return d.rows * d.cols
}

// LitCount reports how many LEDs are lit on one device.
func (d *Driver) LitCount(device int) int {
	if device < 0 || device >= d.devices {
		return 0
	}
	n := 0
	for _, on := range d.fb[device] {
		if on {
			n++
		}
	}
	return n
}

// Reset clears every buffer and counter.
func (d *Driver) Reset() {
	for i := range d.fb {
		for j := range d.fb[i] {
			d.fb[i][j] = false
		}
		d.ShowsPerDev[i] = 0
	}
	d.Shows = 0
}
