// Package ht16k33 drives HT16K33 LED matrix controllers over I2C. Each
// chip scans up to 8 commons by 16 segments; multiple chips at different
// bus addresses form the device list.
package ht16k33

import (
	"fmt"

	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2creg"

	bardrive "github.com/sbarabe/SBK-BarDrive"
)

// Command bytes.
const (
	cmdSystemSetup  = 0x20
	cmdDisplaySetup = 0x80
	cmdRowIntSet    = 0xA0
	cmdDimming      = 0xE0

	oscillatorOn = 0x01
	displayOn    = 0x01
)

const (
	rows = 8
	cols = 16
)

// DefaultAddr is the HT16K33 base address with all address pins low.
const DefaultAddr = 0x70

var _ bardrive.Driver = (*Dev)(nil)

// Dev is a set of HT16K33 chips on one I2C bus. Pixel writes land in a
// per-chip shadow of the display RAM; Show rewrites each chip's RAM in one
// transaction. Dev is not safe for concurrent use.
type Dev struct {
	devs []i2c.Dev
	bus  i2c.BusCloser
	fb   [][rows]uint16
	err  error
}

// New prepares every addressed chip on the bus: oscillator running, display
// on, no blink, full brightness.
func New(bus i2c.Bus, addrs []uint16) (*Dev, error) {
	if len(addrs) == 0 {
		return nil, fmt.Errorf("ht16k33: no device addresses")
	}
	d := &Dev{fb: make([][rows]uint16, len(addrs))}
	for _, a := range addrs {
		d.devs = append(d.devs, i2c.Dev{Bus: bus, Addr: a})
	}
	for i := range d.devs {
		for _, cmd := range []byte{
			cmdSystemSetup | oscillatorOn,
			cmdDisplaySetup | displayOn,
			cmdRowIntSet,
			cmdDimming | 0x0F,
		} {
			if err := d.devs[i].Tx([]byte{cmd}, nil); err != nil {
				return nil, fmt.Errorf("ht16k33: init %#02x: %w", d.devs[i].Addr, err)
			}
		}
	}
	d.Show()
	if err := d.Err(); err != nil {
		return nil, err
	}
	return d, nil
}

// Open opens the named I2C bus from the host registry and prepares the
// chips on it. Closing the Dev closes the bus.
func Open(name string, addrs []uint16) (*Dev, error) {
	bus, err := i2creg.Open(name)
	if err != nil {
		return nil, fmt.Errorf("ht16k33: open %q: %w", name, err)
	}
	d, err := New(bus, addrs)
	if err != nil {
		bus.Close()
		return nil, err
	}
	d.bus = bus
	return d, nil
}

// SetBrightness sets one chip's duty cycle, 0 (dimmest) to 15 (full).
func (d *Dev) SetBrightness(device, level int) error {
	if device < 0 || device >= len(d.devs) {
		return fmt.Errorf("ht16k33: device %d out of range", device)
	}
	if level < 0 {
		level = 0
	}
	if level > 15 {
		level = 15
	}
	if err := d.devs[device].Tx([]byte{cmdDimming | byte(level)}, nil); err != nil {
		return fmt.Errorf("ht16k33: dimming %#02x: %w", d.devs[device].Addr, err)
	}
	return nil
}

// SetLed sets one buffered pixel. Out-of-range addresses are ignored.
func (d *Dev) SetLed(device, row, col int, on bool) {
	if device < 0 || device >= len(d.devs) || row < 0 || row >= rows || col < 0 || col >= cols {
		return
	}
	mask := uint16(1) << uint(col)
	if on {
		d.fb[device][row] |= mask
	} else {
		d.fb[device][row] &^= mask
	}
}

// GetLed reads one buffered pixel. Out-of-range addresses read as off.
func (d *Dev) GetLed(device, row, col int) bool {
	if device < 0 || device >= len(d.devs) || row < 0 || row >= rows || col < 0 || col >= cols {
		return false
	}
	return d.fb[device][row]&(uint16(1)<<uint(col)) != 0
}

// Show rewrites the display RAM of every chip. A transport failure is
// latched; read it with Err.
func (d *Dev) Show() {
	for i := range d.devs {
		d.ShowDevice(i)
	}
}

// ShowDevice rewrites one chip's display RAM starting at address 0.
func (d *Dev) ShowDevice(device int) {
	if device < 0 || device >= len(d.devs) {
		return
	}
	w := make([]byte, 1, 1+2*rows)
	w[0] = 0x00
	for row := 0; row < rows; row++ {
		v := d.fb[device][row]
		w = append(w, byte(v), byte(v>>8))
	}
	if err := d.devs[device].Tx(w, nil); err != nil && d.err == nil {
		d.err = fmt.Errorf("ht16k33: flush %#02x: %w", d.devs[device].Addr, err)
	}
}

// Err returns and clears the first transport error recorded by Show or
// ShowDevice since the previous call.
func (d *Dev) Err() error {
	err := d.err
	d.err = nil
	return err
}

// MaxRows reports the common (row) capacity of one chip.
func (d *Dev) MaxRows(device int) int {
	if device < 0 || device >= len(d.devs) {
		return 0
	}
	return rows
}

// MaxColumns reports the segment (column) capacity of a chip.
func (d *Dev) MaxColumns() int { return cols }

// DevCount reports how many chips are addressed.
func (d *Dev) DevCount() int { return len(d.devs) }

// MaxSegments reports the linear output capacity of one chip.
func (d *Dev) MaxSegments(device int) int {
	if device < 0 || device >= len(d.devs) {
		return 0
	}
	return rows * cols
}

// Close blanks the chips and closes the bus if this Dev opened it.
func (d *Dev) Close() error {
	var first error
	for i := range d.devs {
		if err := d.devs[i].Tx([]byte{cmdDisplaySetup}, nil); err != nil && first == nil {
			first = fmt.Errorf("ht16k33: display off %#02x: %w", d.devs[i].Addr, err)
		}
	}
	if d.bus != nil {
		if err := d.bus.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}
