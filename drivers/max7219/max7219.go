// Package max7219 drives daisy-chained MAX7219/MAX7221 LED matrix
// controllers over SPI. Each chip owns an 8x8 pixel bank; the chain is
// addressed front to back as devices 0..n-1.
package max7219

import (
	"fmt"

	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
	"periph.io/x/conn/v3/spi/spireg"

	bardrive "github.com/sbarabe/SBK-BarDrive"
)

var _ bardrive.Driver = (*Dev)(nil)

// Register map.
const (
	regNoOp        = 0x00
	regDigit0      = 0x01
	regDecodeMode  = 0x09
	regIntensity   = 0x0A
	regScanLimit   = 0x0B
	regShutdown    = 0x0C
	regDisplayTest = 0x0F
)

const (
	rows = 8
	cols = 8
)

// MaxChain is the longest supported cascade; beyond that the shared load
// line timing degrades.
const MaxChain = 8

// Dev is a chain of MAX7219 devices behind one SPI port. It buffers a
// framebuffer per chip; Show pushes the buffered rows down the cascade.
// Dev is not safe for concurrent use.
type Dev struct {
	c       conn.Conn
	port    spi.PortCloser
	devices int
	fb      [][rows]byte
	err     error
}

// New prepares a chain of devices on an already opened SPI port. The chips
// are taken out of shutdown with decoding off and full scan, ready for raw
// pixel rows.
func New(p spi.Port, devices int) (*Dev, error) {
	if devices < 1 || devices > MaxChain {
		return nil, fmt.Errorf("max7219: chain length %d out of range 1..%d", devices, MaxChain)
	}
	c, err := p.Connect(10*physic.MegaHertz, spi.Mode0, 8)
	if err != nil {
		return nil, fmt.Errorf("max7219: connect: %w", err)
	}
	d := &Dev{c: c, devices: devices, fb: make([][rows]byte, devices)}
	if err := d.setup(); err != nil {
		return nil, err
	}
	return d, nil
}

// Open opens the named SPI port from the host registry and prepares the
// chain on it. Closing the Dev closes the port.
func Open(name string, devices int) (*Dev, error) {
	p, err := spireg.Open(name)
	if err != nil {
		return nil, fmt.Errorf("max7219: open %q: %w", name, err)
	}
	d, err := New(p, devices)
	if err != nil {
		p.Close()
		return nil, err
	}
	d.port = p
	return d, nil
}

func (d *Dev) setup() error {
	for _, init := range [][2]byte{
		{regDisplayTest, 0x00},
		{regDecodeMode, 0x00},
		{regScanLimit, rows - 1},
		{regIntensity, 0x08},
		{regShutdown, 0x01},
	} {
		if err := d.broadcast(init[0], init[1]); err != nil {
			return err
		}
	}
	d.Show()
	return d.Err()
}

// broadcast writes the same register on every chip of the chain.
func (d *Dev) broadcast(reg, val byte) error {
	w := make([]byte, 0, 2*d.devices)
	for i := 0; i < d.devices; i++ {
		w = append(w, reg, val)
	}
	if err := d.c.Tx(w, nil); err != nil {
		return fmt.Errorf("max7219: write reg %#02x: %w", reg, err)
	}
	return nil
}

// single writes one register on one chip, padding the rest of the chain
// with no-ops.
func (d *Dev) single(device int, reg, val byte) error {
	w := make([]byte, 0, 2*d.devices)
	// The last chip in the cascade must be shifted in first.
	for i := d.devices - 1; i >= 0; i-- {
		if i == device {
			w = append(w, reg, val)
		} else {
			w = append(w, regNoOp, 0x00)
		}
	}
	if err := d.c.Tx(w, nil); err != nil {
		return fmt.Errorf("max7219: write device %d reg %#02x: %w", device, reg, err)
	}
	return nil
}

// SetIntensity sets one chip's brightness, 0 (dim) to 15 (full).
func (d *Dev) SetIntensity(device, level int) error {
	if device < 0 || device >= d.devices {
		return fmt.Errorf("max7219: device %d out of range", device)
	}
	if level < 0 {
		level = 0
	}
	if level > 15 {
		level = 15
	}
	return d.single(device, regIntensity, byte(level))
}

// Shutdown blanks the chain without losing the framebuffer.
func (d *Dev) Shutdown() error { return d.broadcast(regShutdown, 0x00) }

// Wake re-enables the chain after Shutdown.
func (d *Dev) Wake() error { return d.broadcast(regShutdown, 0x01) }

// SetLed sets one buffered pixel. Out-of-range addresses are ignored.
func (d *Dev) SetLed(device, row, col int, on bool) {
	if device < 0 || device >= d.devices || row < 0 || row >= rows || col < 0 || col >= cols {
		return
	}
	mask := byte(1) << uint(cols-1-col)
	if on {
		d.fb[device][row] |= mask
	} else {
		d.fb[device][row] &^= mask
	}
}

// GetLed reads one buffered pixel. Out-of-range addresses read as off.
func (d *Dev) GetLed(device, row, col int) bool {
	if device < 0 || device >= d.devices || row < 0 || row >= rows || col < 0 || col >= cols {
		return false
	}
	return d.fb[device][row]&(byte(1)<<uint(cols-1-col)) != 0
}

// Show flushes every buffered row down the cascade. A transport failure is
// latched; read it with Err.
func (d *Dev) Show() {
	for row := 0; row < rows; row++ {
		w := make([]byte, 0, 2*d.devices)
		for i := d.devices - 1; i >= 0; i-- {
			w = append(w, byte(regDigit0+row), d.fb[i][row])
		}
		if err := d.c.Tx(w, nil); err != nil && d.err == nil {
			d.err = fmt.Errorf("max7219: flush row %d: %w", row, err)
		}
	}
}

// ShowDevice flushes one chip's rows, padding the rest of the chain with
// no-ops.
func (d *Dev) ShowDevice(device int) {
	if device < 0 || device >= d.devices {
		return
	}
	for row := 0; row < rows; row++ {
		if err := d.single(device, byte(regDigit0+row), d.fb[device][row]); err != nil && d.err == nil {
			d.err = err
		}
	}
}

// Err returns and clears the first transport error recorded by Show or
// ShowDevice since the previous call.
func (d *Dev) Err() error {
	err := d.err
	d.err = nil
	return err
}

// MaxRows reports the row capacity of one chip.
func (d *Dev) MaxRows(device int) int {
	if device < 0 || device >= d.devices {
		return 0
	}
	return rows
}

// MaxColumns reports the column capacity of a chip.
func (d *Dev) MaxColumns() int { return cols }

// DevCount reports the chain length.
func (d *Dev) DevCount() int { return d.devices }

// MaxSegments reports the linear output capacity of one chip.
func (d *Dev) MaxSegments(device int) int {
	if device < 0 || device >= d.devices {
		return 0
	}
	return rows * cols
}

// Close shuts the chain down and closes the port if this Dev opened it.
func (d *Dev) Close() error {
	err := d.Shutdown()
	if d.port != nil {
		if cerr := d.port.Close(); err == nil {
			err = cerr
		}
	}
	return err
}
