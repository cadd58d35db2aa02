// Command bardemo cycles a bar meter through the animation catalog. It
// reads an optional YAML config naming the driver and bar layout, and runs
// until interrupted.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"time"

	"periph.io/x/host/v3"

	bardrive "github.com/sbarabe/SBK-BarDrive"
	"github.com/sbarabe/SBK-BarDrive/anim"
	"github.com/sbarabe/SBK-BarDrive/drivers/ht16k33"
	"github.com/sbarabe/SBK-BarDrive/drivers/max7219"
	"github.com/sbarabe/SBK-BarDrive/drivers/strip"
	"github.com/sbarabe/SBK-BarDrive/drivertest"
	"github.com/sbarabe/SBK-BarDrive/internal/config"
)

func main() {
	cfgPath := flag.String("config", "", "YAML config file (optional)")
	debugMap := flag.Bool("map", false, "print the segment mapping table and exit")
	flag.Parse()

	cfg := config.Default()
	if *cfgPath != "" {
		c, err := config.Load(*cfgPath)
		if err != nil {
			log.Fatal(err)
		}
		cfg = c
	}

	if _, err := host.Init(); err != nil {
		log.Fatal(err)
	}

	drv, closer, err := openDriver(cfg)
	if err != nil {
		log.Fatal(err)
	}
	if closer != nil {
		defer closer()
	}

	bar, err := buildBar(drv, cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer func() {
		bar.Clear()
		bar.Show()
	}()

	if *debugMap {
		bar.DebugSegmentMapping(os.Stdout)
		return
	}

	fps := cfg.FPS
	if fps <= 0 {
		fps = 60
	}

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt)
	defer signal.Stop(sig)

	ticker := time.NewTicker(time.Second / time.Duration(fps))
	defer ticker.Stop()

	log.Printf("bardemo: %d segments on %s, %d fps", bar.SegCount(), cfg.Driver, fps)

	acts := showcase(bar.Animations())
	idx := 0
	acts[idx].start()
	deadline := time.Now().Add(acts[idx].runFor)

	for {
		select {
		case <-ticker.C:
			running := bar.Update()
			bar.Show()

			if !running || (acts[idx].runFor > 0 && time.Now().After(deadline)) {
				idx = (idx + 1) % len(acts)
				log.Printf("bardemo: %s", acts[idx].name)
				acts[idx].start()
				deadline = time.Now().Add(acts[idx].runFor)
			}

		case s := <-sig:
			fmt.Printf("Got %s signal. Aborting...\n", s)
			return
		}
	}
}

type act struct {
	name   string
	runFor time.Duration // 0 = run to completion
	start  func()
}

// showcase lists one pass through the animation catalog. Endless kinds get
// a fixed slot; finite kinds run to completion.
func showcase(a *anim.Animator) []act {
	level := 0
	wave := func() int {
		level = (level + 7) % 1024
		return level
	}
	return []act{
		{"fill up", 0, func() { a.NoLoop().FillUpDur(1500, 100, 0) }},
		{"empty down", 0, func() { a.EmptyDownDur(1500, 100, 0) }},
		{"bounce", 6 * time.Second, func() { a.Loop().BounceFillUpIntv(25, 40, 100, 0) }},
		{"bounce from center", 6 * time.Second, func() { a.BounceFillFromCenterIntv(30, 30, 100, 0) }},
		{"bounce from edges", 6 * time.Second, func() { a.BounceFillFromEdgesIntv(30, 30, 100, 0) }},
		{"exploding blocks", 0, func() { a.NoLoop().ExplodingBlocks(50, 2, 1, 6) }},
		{"colliding blocks", 0, func() { a.CollidingBlocks(50, 2, 1, 6) }},
		{"scrolling blocks", 6 * time.Second, func() { a.Loop().ScrollingUpBlocks(50, 2, 1, 0) }},
		{"stacking blocks", 0, func() { a.NoLoop().DownStackingBlocks(40, 1, 0) }},
		{"unstacking blocks", 0, func() { a.UpUnstackingBlocks(40, 1, 0) }},
		{"random fill", 0, func() { a.RandomFill(30) }},
		{"random empty", 0, func() { a.RandomEmpty(30) }},
		{"beat pulse", 8 * time.Second, func() { a.BeatPulse(116) }},
		{"follow signal", 8 * time.Second, func() { a.FollowSignalSmooth(wave, 100, 0, 1023, 30, 5) }},
		{"floating peak", 8 * time.Second, func() { a.FollowSignalFloatingPeak(wave, 150, 100, 0, 1023, 30, 5) }},
		{"dual from center", 8 * time.Second, func() { a.FollowDualSignalFromCenter(wave, 100, nil, 0, 1023, 30, 5) }},
	}
}

func openDriver(cfg *config.Config) (bardrive.Driver, func(), error) {
	switch strings.ToLower(cfg.Driver) {
	case "max7219":
		d, err := max7219.Open(cfg.SPI.Port, cfg.SPI.Devices)
		if err != nil {
			return nil, nil, err
		}
		return d, func() { d.Close() }, nil

	case "ht16k33":
		addrs := cfg.I2C.Addrs
		if len(addrs) == 0 {
			addrs = []uint16{ht16k33.DefaultAddr}
		}
		d, err := ht16k33.Open(cfg.I2C.Bus, addrs)
		if err != nil {
			return nil, nil, err
		}
		return d, func() { d.Close() }, nil

	case "strip":
		d, err := strip.Open(cfg.Strip.Port, &strip.Opts{Pixels: cfg.Strip.Pixels})
		if err != nil {
			return nil, nil, err
		}
		return d, func() { d.Close() }, nil

	case "fake":
		return drivertest.New(cfg.SPI.Devices, 8, 8), nil, nil
	}
	return nil, nil, fmt.Errorf("bardemo: unknown driver %q", cfg.Driver)
}

func buildBar(drv bardrive.Driver, cfg *config.Config) (*bardrive.BarDrive, error) {
	dir := bardrive.Forward
	if cfg.Bar.Reversed {
		dir = bardrive.Reverse
	}
	b := cfg.Bar

	switch strings.ToLower(b.Mode) {
	case "preset", "":
		preset, err := parsePreset(b.Preset)
		if err != nil {
			return nil, err
		}
		return bardrive.NewMatrixBar(drv, b.Device, preset, dir, b.RowOffset, b.ColOffset), nil

	case "matrix":
		return bardrive.NewCustomMatrixBar(drv, b.Device, b.Rows, b.Cols, dir, b.RowOffset, b.ColOffset), nil

	case "linear":
		return bardrive.NewLinearBar(drv, b.Device, b.Segments, dir, b.SegOffset), nil
	}
	return nil, fmt.Errorf("bardemo: unknown bar mode %q", b.Mode)
}

func parsePreset(name string) (bardrive.MatrixPreset, error) {
	switch strings.ToUpper(strings.ReplaceAll(name, "_", "-")) {
	case "BL28-3005SK", "SK28", "":
		return bardrive.PresetBL28_3005SK, nil
	case "BL28-3005SA", "SA28":
		return bardrive.PresetBL28_3005SA, nil
	}
	return 0, fmt.Errorf("bardemo: unknown preset %q", name)
}
