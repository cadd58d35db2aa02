// Package strip adapts an addressable LED strip (WS2812/SK6812 class,
// clocked out as NRZ over SPI) to the bar driver interface. The strip is a
// single device of one row; segment n is pixel n.
//
// When no SPI port is available the strip falls back to a terminal
// renderer, which keeps animations observable on a development host.
package strip

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"log"

	"periph.io/x/conn/v3/display"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
	"periph.io/x/conn/v3/spi/spireg"
	"periph.io/x/devices/v3/nrzled"
	"periph.io/x/extra/devices/screen"

	bardrive "github.com/sbarabe/SBK-BarDrive"
)

var _ bardrive.Driver = (*Dev)(nil)

// Opts configures the strip.
type Opts struct {
	// Pixels is the strip length.
	Pixels int
	// On is the color of a lit segment. Zero value renders warm white.
	On color.NRGBA
	// Freq is the NRZ bit rate. Zero picks the WS2812 default.
	Freq physic.Frequency
}

func (o *Opts) withDefaults() Opts {
	v := *o
	if v.On == (color.NRGBA{}) {
		v.On = color.NRGBA{R: 0xFF, G: 0xB0, B: 0x40, A: 0xFF}
	}
	if v.Freq == 0 {
		v.Freq = 2500 * physic.KiloHertz
	}
	return v
}

// Dev renders bar segments onto an addressable strip. It buffers an image
// frame; Show pushes the frame to the strip. Dev is not safe for
// concurrent use.
type Dev struct {
	drawer display.Drawer
	port   spi.PortCloser
	img    *image.NRGBA
	state  []bool
	on     color.NRGBA
	err    error
}

// New builds a strip on an already opened SPI port.
func New(p spi.Port, opts *Opts) (*Dev, error) {
	o := opts.withDefaults()
	if o.Pixels < 1 {
		return nil, fmt.Errorf("strip: pixel count %d out of range", o.Pixels)
	}
	drawer, err := nrzled.NewSPI(p, &nrzled.Opts{
		NumPixels: o.Pixels,
		Channels:  3,
		Freq:      o.Freq,
	})
	if err != nil {
		return nil, fmt.Errorf("strip: nrzled: %w", err)
	}
	return newDev(drawer, o), nil
}

// Open opens the named SPI port and builds the strip on it. When the port
// cannot be opened the strip renders to the console instead, mirroring the
// strip's geometry.
func Open(name string, opts *Opts) (*Dev, error) {
	o := opts.withDefaults()
	if o.Pixels < 1 {
		return nil, fmt.Errorf("strip: pixel count %d out of range", o.Pixels)
	}
	p, err := spireg.Open(name)
	if err != nil {
		log.Printf("strip: no SPI port %q, rendering to console: %v", name, err)
		return newDev(screen.New(o.Pixels), o), nil
	}
	d, err := New(p, opts)
	if err != nil {
		p.Close()
		return nil, err
	}
	d.port = p
	return d, nil
}

func newDev(drawer display.Drawer, o Opts) *Dev {
	return &Dev{
		drawer: drawer,
		img:    image.NewNRGBA(image.Rect(0, 0, o.Pixels, 1)),
		state:  make([]bool, o.Pixels),
		on:     o.On,
	}
}

// SetLed sets one buffered pixel. Only device 0, row 0 exists.
func (d *Dev) SetLed(device, row, col int, on bool) {
	if device != 0 || row != 0 || col < 0 || col >= len(d.state) {
		return
	}
	d.state[col] = on
	c := color.NRGBA{A: 0xFF}
	if on {
		c = d.on
	}
	d.img.SetNRGBA(col, 0, c)
}

// GetLed reads one buffered pixel.
func (d *Dev) GetLed(device, row, col int) bool {
	if device != 0 || row != 0 || col < 0 || col >= len(d.state) {
		return false
	}
	return d.state[col]
}

// Show pushes the buffered frame to the strip. A transport failure is
// latched; read it with Err.
func (d *Dev) Show() {
	r := d.drawer.Bounds()
	var src image.Image = d.img
	if !r.Eq(d.img.Bounds()) {
		// The fallback renderer may expose a different bounds shape; scale
		// by nearest pixel.
		scaled := image.NewNRGBA(r)
		for x := r.Min.X; x < r.Max.X; x++ {
			sx := (x - r.Min.X) * len(d.state) / r.Dx()
			for y := r.Min.Y; y < r.Max.Y; y++ {
				scaled.SetNRGBA(x, y, d.img.NRGBAAt(sx, 0))
			}
		}
		src = scaled
	}
	if err := d.drawer.Draw(r, src, image.Point{}); err != nil && d.err == nil {
		d.err = fmt.Errorf("strip: draw: %w", err)
	}
}

// ShowDevice flushes the single device; it is identical to Show.
func (d *Dev) ShowDevice(device int) {
	if device != 0 {
		return
	}
	d.Show()
}

// Err returns and clears the first transport error recorded by Show since
// the previous call.
func (d *Dev) Err() error {
	err := d.err
	d.err = nil
	return err
}

// MaxRows reports 1; a strip has a single row.
func (d *Dev) MaxRows(device int) int {
	if device != 0 {
		return 0
	}
	return 1
}

// MaxColumns reports the strip length.
func (d *Dev) MaxColumns() int { return len(d.state) }

// DevCount reports 1; a strip is a single device.
func (d *Dev) DevCount() int { return 1 }

// MaxSegments reports the strip length.
func (d *Dev) MaxSegments(device int) int {
	if device != 0 {
		return 0
	}
	return len(d.state)
}

// Close blanks the strip and closes the port if this Dev opened it.
func (d *Dev) Close() error {
	draw.Draw(d.img, d.img.Bounds(), image.NewUniform(color.NRGBA{A: 0xFF}), image.Point{}, draw.Src)
	for i := range d.state {
		d.state[i] = false
	}
	d.Show()
	err := d.drawer.Halt()
	if d.port != nil {
		if cerr := d.port.Close(); err == nil {
			err = cerr
		}
	}
	if err != nil {
		return fmt.Errorf("strip: close: %w", err)
	}
	return nil
}
