// Package config loads the YAML bench description: which instruments are
// connected, how to reach them, and which placeholder names measurement
// filenames may use.
package config

import (
	"fmt"
	"os"
	"time"

	"go.bug.st/serial"
	"gopkg.in/yaml.v3"

	"github.com/gomeasure/gomeasure/adapters"
	"github.com/gomeasure/gomeasure/instruments"
	"github.com/gomeasure/gomeasure/internal/errors"
)

// Bench is the top-level bench description.
type Bench struct {
	// Placeholders are the procedure-defined field names usable in
	// measurement filenames, besides the built-in date and time.
	Placeholders []string `yaml:"placeholders"`

	// Instruments maps a bench-local alias to the instrument's driver and
	// transport settings.
	Instruments map[string]Instrument `yaml:"instruments"`
}

// Instrument describes one connected instrument.
type Instrument struct {
	// Driver is the registry key, e.g. "ar/fp4036".
	Driver string `yaml:"driver"`

	// Adapter selects the transport: "serial" or "prologix".
	Adapter string `yaml:"adapter"`

	Port        string   `yaml:"port"`
	BaudRate    int      `yaml:"baud_rate,omitempty"`
	DataBits    int      `yaml:"data_bits,omitempty"`
	Parity      string   `yaml:"parity,omitempty"`
	ReadTimeout Duration `yaml:"read_timeout,omitempty"`

	WriteTermination string `yaml:"write_termination,omitempty"`
	ReadTermination  string `yaml:"read_termination,omitempty"`

	// GPIBAddress is required for the prologix adapter.
	GPIBAddress int `yaml:"gpib_address,omitempty"`
}

// Duration wraps time.Duration so bench files can say "500ms" or "2s".
type Duration time.Duration

// UnmarshalYAML parses a Go duration string.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	*d = Duration(parsed)
	return nil
}

var parities = map[string]serial.Parity{
	"":     serial.NoParity,
	"none": serial.NoParity,
	"odd":  serial.OddParity,
	"even": serial.EvenParity,
}

// Load reads and validates a bench file.
func Load(path string) (*Bench, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.ConfigError("failed to read bench file", err)
	}
	return Parse(data)
}

// Parse parses and validates bench YAML.
func Parse(data []byte) (*Bench, error) {
	var bench Bench
	if err := yaml.Unmarshal(data, &bench); err != nil {
		return nil, errors.ConfigError("failed to parse bench file", err)
	}
	if err := bench.validate(); err != nil {
		return nil, err
	}
	return &bench, nil
}

func (b *Bench) validate() error {
	for alias, inst := range b.Instruments {
		if inst.Driver == "" {
			return errors.ConfigError(
				fmt.Sprintf("instrument %q has no driver", alias), nil)
		}
		switch inst.Adapter {
		case "serial", "prologix":
		default:
			return errors.ConfigError(
				fmt.Sprintf("instrument %q has unknown adapter %q", alias, inst.Adapter), nil)
		}
		if inst.Port == "" {
			return errors.ConfigError(
				fmt.Sprintf("instrument %q has no port", alias), nil)
		}
		if _, ok := parities[inst.Parity]; !ok {
			return errors.ConfigError(
				fmt.Sprintf("instrument %q has unknown parity %q", alias, inst.Parity), nil)
		}
	}
	return nil
}

// SerialConfig renders an instrument's transport settings for the serial
// adapter.
func (i Instrument) SerialConfig() adapters.SerialConfig {
	return adapters.SerialConfig{
		Port:             i.Port,
		BaudRate:         i.BaudRate,
		DataBits:         i.DataBits,
		Parity:           parities[i.Parity],
		ReadTimeout:      time.Duration(i.ReadTimeout),
		WriteTermination: i.WriteTermination,
		ReadTermination:  i.ReadTermination,
	}
}

// Open connects an instrument's transport.
func (i Instrument) Open() (instruments.Adapter, error) {
	switch i.Adapter {
	case "serial":
		return adapters.OpenSerial(i.SerialConfig())
	case "prologix":
		return adapters.OpenPrologix(i.SerialConfig(), i.GPIBAddress)
	default:
		return nil, errors.ConfigError(fmt.Sprintf("unknown adapter %q", i.Adapter), nil)
	}
}
