// Package adapters provides the transports gomeasure drivers run over:
// plain RS-232, GPIB behind a Prologix USB controller, and a scripted
// adapter for exercising drivers without hardware.
package adapters

import (
	"strings"
	"time"

	"go.bug.st/serial"

	"github.com/gomeasure/gomeasure/instruments"
	"github.com/gomeasure/gomeasure/internal/errors"
)

// SerialConfig describes a serial connection to an instrument.
type SerialConfig struct {
	Port        string
	BaudRate    int
	DataBits    int
	Parity      serial.Parity
	StopBits    serial.StopBits
	ReadTimeout time.Duration

	// WriteTermination is appended to every command; ReadTermination ends
	// every reply and is stripped before the reply is returned.
	WriteTermination string
	ReadTermination  string

	// AssertDTR controls the DTR line after opening. The FP4036 fiber-optic
	// modem, for one, only powers up with DTR held low.
	AssertDTR bool
	SetDTR    bool
}

// SerialAdapter talks to an instrument over an RS-232 port.
type SerialAdapter struct {
	port serial.Port
	cfg  SerialConfig
}

var _ instruments.Adapter = (*SerialAdapter)(nil)

// OpenSerial opens the configured port. Zero-value fields get the common
// defaults: 9600 baud, 8 data bits, no parity, one stop bit, CR-LF
// termination, two second read timeout.
func OpenSerial(cfg SerialConfig) (*SerialAdapter, error) {
	if cfg.BaudRate == 0 {
		cfg.BaudRate = 9600
	}
	if cfg.DataBits == 0 {
		cfg.DataBits = 8
	}
	if cfg.StopBits == 0 {
		cfg.StopBits = serial.OneStopBit
	}
	if cfg.ReadTimeout == 0 {
		cfg.ReadTimeout = 2 * time.Second
	}
	if cfg.WriteTermination == "" {
		cfg.WriteTermination = "\r\n"
	}
	if cfg.ReadTermination == "" {
		cfg.ReadTermination = "\r\n"
	}

	mode := &serial.Mode{
		BaudRate: cfg.BaudRate,
		DataBits: cfg.DataBits,
		Parity:   cfg.Parity,
		StopBits: cfg.StopBits,
	}
	port, err := serial.Open(cfg.Port, mode)
	if err != nil {
		return nil, errors.ConnectionError("open "+cfg.Port, err)
	}
	if err := port.SetReadTimeout(cfg.ReadTimeout); err != nil {
		port.Close()
		return nil, errors.ConnectionError("set read timeout", err)
	}
	if cfg.SetDTR {
		if err := port.SetDTR(cfg.AssertDTR); err != nil {
			port.Close()
			return nil, errors.ConnectionError("set DTR", err)
		}
	}
	return &SerialAdapter{port: port, cfg: cfg}, nil
}

// Close releases the serial port.
func (a *SerialAdapter) Close() error {
	return a.port.Close()
}

// Write sends cmd plus the write termination.
func (a *SerialAdapter) Write(cmd string) error {
	_, err := a.port.Write([]byte(cmd + a.cfg.WriteTermination))
	if err != nil {
		return errors.ConnectionError("write", err)
	}
	return nil
}

// Read collects bytes until the read termination arrives and returns the
// reply without it. A timeout with nothing read is reported as an empty
// reply, which the probe protocols treat as "no reply".
func (a *SerialAdapter) Read() (string, error) {
	var sb strings.Builder
	buf := make([]byte, 1)
	for {
		n, err := a.port.Read(buf)
		if err != nil {
			return "", errors.ConnectionError("read", err)
		}
		if n == 0 {
			// Read timeout expired.
			return sb.String(), nil
		}
		sb.WriteByte(buf[0])
		if strings.HasSuffix(sb.String(), a.cfg.ReadTermination) {
			return strings.TrimSuffix(sb.String(), a.cfg.ReadTermination), nil
		}
	}
}

// Ask writes cmd and reads its reply.
func (a *SerialAdapter) Ask(cmd string) (string, error) {
	if err := a.Write(cmd); err != nil {
		return "", err
	}
	return a.Read()
}
