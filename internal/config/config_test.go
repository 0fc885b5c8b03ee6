package config

import (
	"testing"
	"time"
)

const testBench = `
placeholders:
  - voltage
  - frequency
instruments:
  probe:
    driver: ar/fp4036
    adapter: serial
    port: /dev/ttyUSB0
    baud_rate: 9600
    data_bits: 7
    parity: odd
    read_timeout: 1s
    write_termination: "\r"
    read_termination: "\r"
  counter:
    driver: racal/1992
    adapter: prologix
    port: /dev/ttyUSB1
    gpib_address: 10
`

func TestParse(t *testing.T) {
	bench, err := Parse([]byte(testBench))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	if len(bench.Placeholders) != 2 || bench.Placeholders[0] != "voltage" {
		t.Errorf("Placeholders = %v, want [voltage frequency]", bench.Placeholders)
	}

	probe, ok := bench.Instruments["probe"]
	if !ok {
		t.Fatal("probe instrument missing")
	}
	if probe.Driver != "ar/fp4036" {
		t.Errorf("probe driver = %q, want ar/fp4036", probe.Driver)
	}
	if time.Duration(probe.ReadTimeout) != time.Second {
		t.Errorf("probe read timeout = %v, want 1s", probe.ReadTimeout)
	}

	cfg := probe.SerialConfig()
	if cfg.Port != "/dev/ttyUSB0" || cfg.DataBits != 7 {
		t.Errorf("serial config = %+v, want 7 data bits on /dev/ttyUSB0", cfg)
	}

	counter := bench.Instruments["counter"]
	if counter.GPIBAddress != 10 {
		t.Errorf("counter GPIB address = %d, want 10", counter.GPIBAddress)
	}
}

func TestParseRejectsBadBench(t *testing.T) {
	cases := map[string]string{
		"missing driver": `
instruments:
  probe:
    adapter: serial
    port: /dev/ttyUSB0
`,
		"unknown adapter": `
instruments:
  probe:
    driver: ar/fp4036
    adapter: usbtmc
    port: /dev/ttyUSB0
`,
		"missing port": `
instruments:
  probe:
    driver: ar/fp4036
    adapter: serial
`,
		"unknown parity": `
instruments:
  probe:
    driver: ar/fp4036
    adapter: serial
    port: /dev/ttyUSB0
    parity: mark
`,
	}

	for name, bench := range cases {
		if _, err := Parse([]byte(bench)); err == nil {
			t.Errorf("%s: expected a config error", name)
		}
	}
}
