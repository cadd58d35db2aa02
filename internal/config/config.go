package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type SPI struct {
	Port    string `yaml:"port"`    // e.g. /dev/spidev0.0 or ""
	Devices int    `yaml:"devices"` // chained MAX7219 count
}

type I2C struct {
	Bus   string   `yaml:"bus"` // e.g. /dev/i2c-1 or ""
	Addrs []uint16 `yaml:"addrs"`
}

type Strip struct {
	Port   string `yaml:"port"`
	Pixels int    `yaml:"pixels"`
}

type Bar struct {
	Device    int    `yaml:"device"`    // chip index on the chain
	Mode      string `yaml:"mode"`      // "preset" | "matrix" | "linear"
	Preset    string `yaml:"preset"`    // e.g. BL28-3005SK
	Rows      int    `yaml:"rows"`      //
	Cols      int    `yaml:"cols"`      // matrix mode
	Segments  int    `yaml:"segments"`  // linear mode
	Reversed  bool   `yaml:"reversed"`
	RowOffset int    `yaml:"row_offset"`
	ColOffset int    `yaml:"col_offset"`
	SegOffset int    `yaml:"seg_offset"`
}

type Config struct {
	Driver string `yaml:"driver"` // "max7219" | "ht16k33" | "strip" | "fake"
	FPS    int    `yaml:"fps"`

	SPI   SPI   `yaml:"spi,omitempty"`
	I2C   I2C   `yaml:"i2c,omitempty"`
	Strip Strip `yaml:"strip,omitempty"`
	Bar   Bar   `yaml:"bar"`
}

// Default is the configuration used when no file is given: a single
// MAX7219 with a 28 segment bar in the SK column-major preset, rendered at
// 60 updates per second.
func Default() *Config {
	return &Config{
		Driver: "max7219",
		FPS:    60,
		SPI:    SPI{Port: "", Devices: 1},
		Bar:    Bar{Mode: "preset", Preset: "BL28-3005SK"},
	}
}

func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	c := Default()
	if err := yaml.Unmarshal(b, c); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return c, nil
}

func Save(path string, c *Config) error {
	b, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0644)
}
