package adapters

import (
	"fmt"

	"github.com/gomeasure/gomeasure/instruments"
)

// PrologixAdapter drives a GPIB instrument through a Prologix GPIB-USB
// controller. The controller itself appears as a serial port; instrument
// traffic is framed by "++" controller commands that never reach the bus.
type PrologixAdapter struct {
	serial *SerialAdapter
	addr   int
}

var _ instruments.Adapter = (*PrologixAdapter)(nil)

// OpenPrologix opens the controller's serial port and configures it for
// manual read-after-write at the given GPIB address.
func OpenPrologix(cfg SerialConfig, gpibAddress int) (*PrologixAdapter, error) {
	if cfg.BaudRate == 0 {
		// The Prologix VCP ignores the baud rate, but one must be set.
		cfg.BaudRate = 115200
	}
	ser, err := OpenSerial(cfg)
	if err != nil {
		return nil, err
	}
	a := &PrologixAdapter{serial: ser, addr: gpibAddress}
	for _, cmd := range []string{
		"++mode 1",
		fmt.Sprintf("++addr %d", gpibAddress),
		"++auto 0",
		"++eoi 1",
	} {
		if err := ser.Write(cmd); err != nil {
			ser.Close()
			return nil, err
		}
	}
	return a, nil
}

// Address returns the GPIB address the adapter targets.
func (a *PrologixAdapter) Address() int {
	return a.addr
}

// Close releases the controller's serial port.
func (a *PrologixAdapter) Close() error {
	return a.serial.Close()
}

// Write sends a command to the addressed instrument.
func (a *PrologixAdapter) Write(cmd string) error {
	return a.serial.Write(cmd)
}

// Read asks the controller to address the instrument to talk, then reads
// until EOI.
func (a *PrologixAdapter) Read() (string, error) {
	if err := a.serial.Write("++read eoi"); err != nil {
		return "", err
	}
	return a.serial.Read()
}

// Ask writes a query and reads the instrument's reply.
func (a *PrologixAdapter) Ask(cmd string) (string, error) {
	if err := a.Write(cmd); err != nil {
		return "", err
	}
	return a.Read()
}
