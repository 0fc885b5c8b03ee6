package etslindgren

import (
	"fmt"

	"github.com/gomeasure/gomeasure/instruments"
	"github.com/gomeasure/gomeasure/instruments/validators"
	"github.com/gomeasure/gomeasure/internal/errors"
)

// Polarity of an antenna mast.
type Polarity string

const (
	Horizontal Polarity = "H"
	Vertical   Polarity = "V"
)

// M7006 drives the EMCenter positioner card (towers and turntables).
// Commands are routed through the mainframe by slot number and device
// letter.
type M7006 struct {
	instruments.Instrument
	slot   int
	device string
}

// NewM7006 returns a driver for the positioner card in the given slot,
// addressed as the given device letter ("A" or "B").
func NewM7006(adapter instruments.Adapter, slot int, device string) *M7006 {
	return &M7006{
		Instrument: instruments.New(adapter, fmt.Sprintf("ETS-Lindgren M7006 (slot %d%s)", slot, device)),
		slot:       slot,
		device:     device,
	}
}

func (m *M7006) cmd(format string, args ...interface{}) string {
	return fmt.Sprintf("%d%s", m.slot, m.device) + fmt.Sprintf(format, args...)
}

// Acceleration reads the acceleration setting in seconds.
func (m *M7006) Acceleration() (float64, error) {
	return m.AskFloat(m.cmd("ACC?"))
}

// SetAcceleration sets the acceleration, 0.1 to 30.0 seconds.
func (m *M7006) SetAcceleration(seconds float64) error {
	v, err := validators.StrictRange(seconds, 0.1, 30.0)
	if err != nil {
		return err
	}
	return m.Write(m.cmd("ACC %g", v))
}

// Speed reads the speed setting as a percentage of maximum.
func (m *M7006) Speed() (float64, error) {
	return m.AskFloat(m.cmd("SPEED?"))
}

// SetSpeed sets the speed, 0 to 100 percent.
func (m *M7006) SetSpeed(percent float64) error {
	v, err := validators.StrictRange(percent, 0.0, 100.0)
	if err != nil {
		return err
	}
	return m.Write(m.cmd("SPEED %g", v))
}

// AuxOutput reads the state of auxiliary output 1 or 2.
func (m *M7006) AuxOutput(number int) (string, error) {
	if _, err := validators.StrictDiscreteSet(number, []int{1, 2}); err != nil {
		return "", err
	}
	return m.Ask(m.cmd("AUX%d?", number))
}

// SetAuxOutput switches auxiliary output 1 or 2 "ON" or "OFF".
func (m *M7006) SetAuxOutput(number int, state string) error {
	if _, err := validators.StrictDiscreteSet(number, []int{1, 2}); err != nil {
		return err
	}
	if _, err := validators.StrictDiscreteSet(state, []string{"ON", "OFF"}); err != nil {
		return err
	}
	return m.Write(m.cmd("AUX%d %s", number, state))
}

// CounterClockwise starts turntable rotation counter-clockwise.
func (m *M7006) CounterClockwise() error {
	return m.Write(m.cmd("CC"))
}

// Clockwise starts turntable rotation clockwise.
func (m *M7006) Clockwise() error {
	return m.Write(m.cmd("CW"))
}

// Down starts tower travel downward.
func (m *M7006) Down() error {
	return m.Write(m.cmd("DN"))
}

// Up starts tower travel upward.
func (m *M7006) Up() error {
	return m.Write(m.cmd("UP"))
}

// Stop halts all motion.
func (m *M7006) Stop() error {
	return m.Write(m.cmd("ST"))
}

// GetPolarity reads the mast polarity.
func (m *M7006) GetPolarity() (Polarity, error) {
	reply, err := m.AskInt(m.cmd("P?"))
	if err != nil {
		return "", err
	}
	switch reply {
	case 1:
		return Horizontal, nil
	case 0:
		return Vertical, nil
	default:
		return "", errors.DecodeError(fmt.Sprintf("polarity reply %d not recognized", reply))
	}
}

// SetPolarity moves the mast to horizontal or vertical polarity.
func (m *M7006) SetPolarity(p Polarity) error {
	if _, err := validators.StrictDiscreteSet(p, []Polarity{Horizontal, Vertical}); err != nil {
		return err
	}
	return m.Write(m.cmd("P%s", p))
}

// Position reads the current position in degrees or centimeters.
func (m *M7006) Position() (float64, error) {
	return m.AskFloat(m.cmd("CP?"))
}

// SetPosition redefines the current position without moving the device.
func (m *M7006) SetPosition(position float64) error {
	v, err := validators.StrictRange(position, -999.9, 999.9)
	if err != nil {
		return err
	}
	return m.Write(m.cmd("CP %g", v))
}

// Direction reads the current direction of travel.
func (m *M7006) Direction() (string, error) {
	return m.Ask(m.cmd("DIR?"))
}

// Seek moves to the given position by the shortest path.
func (m *M7006) Seek(position float64) error {
	return m.seek("SK", position)
}

// SeekNegative moves to the given position travelling down or
// counter-clockwise.
func (m *M7006) SeekNegative(position float64) error {
	return m.seek("SKN", position)
}

// SeekPositive moves to the given position travelling up or clockwise.
func (m *M7006) SeekPositive(position float64) error {
	return m.seek("SKP", position)
}

// SeekRelative moves by the given offset from the current position.
func (m *M7006) SeekRelative(offset float64) error {
	return m.seek("SKR", offset)
}

func (m *M7006) seek(verb string, position float64) error {
	v, err := validators.StrictRange(position, -999.9, 999.9)
	if err != nil {
		return err
	}
	return m.Write(m.cmd("%s %g", verb, v))
}
