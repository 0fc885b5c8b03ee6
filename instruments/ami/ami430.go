// Package ami contains drivers for American Magnetics instruments.
package ami

import (
	"fmt"
	"time"

	"github.com/gomeasure/gomeasure/instruments"
	"github.com/gomeasure/gomeasure/internal/errors"
)

// MagnetState is the AMI 430 ramping state machine position.
type MagnetState int

const (
	StateRamping MagnetState = iota + 1
	StateHolding
	StatePaused
	StateManualUp
	StateManualDown
	StateZeroingCurrent
	StateQuench
	StateAtZeroCurrent
	StateHeatingSwitch
	StateCoolingSwitch
)

var stateNames = map[MagnetState]string{
	StateRamping:        "RAMPING",
	StateHolding:        "HOLDING",
	StatePaused:         "PAUSED",
	StateManualUp:       "Ramping in MANUAL UP",
	StateManualDown:     "Ramping in MANUAL DOWN",
	StateZeroingCurrent: "ZEROING CURRENT in progress",
	StateQuench:         "QUENCH!!!",
	StateAtZeroCurrent:  "AT ZERO CURRENT",
	StateHeatingSwitch:  "Heating Persistent Switch",
	StateCoolingSwitch:  "Cooling Persistent Switch",
}

// String returns the front-panel description of the state.
func (s MagnetState) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return fmt.Sprintf("unknown state %d", int(s))
}

// AMI430 drives the AMI model 430 superconducting magnet power supply.
type AMI430 struct {
	instruments.Instrument

	// Poll cadence for wait loops; overridable in tests.
	WaitInterval time.Duration
	WaitTimeout  time.Duration
}

// NewAMI430 returns a driver bound to the given adapter. The caller should
// drain the supply's welcome banner (two reads) after connecting.
func NewAMI430(adapter instruments.Adapter) *AMI430 {
	return &AMI430{
		Instrument:   instruments.New(adapter, "AMI 430 magnet power supply"),
		WaitInterval: 100 * time.Millisecond,
		WaitTimeout:  800 * time.Second,
	}
}

// CoilConstant reads the coil constant in kGauss/A.
func (m *AMI430) CoilConstant() (float64, error) {
	return m.AskFloat("COIL?")
}

// SetCoilConstant sets the coil constant in kGauss/A.
func (m *AMI430) SetCoilConstant(v float64) error {
	return m.Write(fmt.Sprintf("CONF:COIL %g", v))
}

// VoltageLimit reads the charge/discharge voltage limit in volts.
func (m *AMI430) VoltageLimit() (float64, error) {
	return m.AskFloat("VOLT:LIM?")
}

// SetVoltageLimit sets the charge/discharge voltage limit in volts.
func (m *AMI430) SetVoltageLimit(v float64) error {
	return m.Write(fmt.Sprintf("CONF:VOLT:LIM %g", v))
}

// TargetCurrent reads the target current in amps.
func (m *AMI430) TargetCurrent() (float64, error) {
	return m.AskFloat("CURR:TARG?")
}

// SetTargetCurrent sets the target current in amps.
func (m *AMI430) SetTargetCurrent(v float64) error {
	return m.Write(fmt.Sprintf("CONF:CURR:TARG %g", v))
}

// TargetField reads the target field in kGauss.
func (m *AMI430) TargetField() (float64, error) {
	return m.AskFloat("FIELD:TARG?")
}

// SetTargetField sets the target field in kGauss.
func (m *AMI430) SetTargetField(v float64) error {
	return m.Write(fmt.Sprintf("CONF:FIELD:TARG %g", v))
}

// RampRateCurrent reads the segment 1 current ramp rate in A/s.
func (m *AMI430) RampRateCurrent() (float64, error) {
	values, err := m.Values("RAMP:RATE:CURR:1?")
	if err != nil {
		return 0, err
	}
	if len(values) == 0 {
		return 0, errors.DecodeError("empty ramp rate reply")
	}
	return values[0], nil
}

// SetRampRateCurrent sets the segment 1 current ramp rate in A/s.
func (m *AMI430) SetRampRateCurrent(v float64) error {
	return m.Write(fmt.Sprintf("CONF:RAMP:RATE:CURR 1,%g", v))
}

// RampRateField reads the segment 1 field ramp rate in kGauss/s.
func (m *AMI430) RampRateField() (float64, error) {
	values, err := m.Values("RAMP:RATE:FIELD:1?")
	if err != nil {
		return 0, err
	}
	if len(values) == 0 {
		return 0, errors.DecodeError("empty ramp rate reply")
	}
	return values[0], nil
}

// SetRampRateField sets the segment 1 field ramp rate in kGauss/s.
func (m *AMI430) SetRampRateField(v float64) error {
	return m.Write(fmt.Sprintf("CONF:RAMP:RATE:FIELD 1,%g,1.00", v))
}

// MagnetCurrent reads the magnet current in amps.
func (m *AMI430) MagnetCurrent() (float64, error) {
	return m.AskFloat("CURR:MAG?")
}

// SupplyCurrent reads the power supply output current in amps.
func (m *AMI430) SupplyCurrent() (float64, error) {
	return m.AskFloat("CURR:SUPP?")
}

// Field reads the magnet field in kGauss.
func (m *AMI430) Field() (float64, error) {
	return m.AskFloat("FIELD:MAG?")
}

// State reads the ramping state machine position.
func (m *AMI430) State() (MagnetState, error) {
	v, err := m.AskInt("STATE?")
	if err != nil {
		return 0, err
	}
	return MagnetState(v), nil
}

// Ramp starts ramping to the set target with the set rate.
func (m *AMI430) Ramp() error {
	return m.Write("RAMP")
}

// Pause pauses ramping.
func (m *AMI430) Pause() error {
	return m.Write("PAUSE")
}

// Zero starts ramping the field to zero with the set rate.
func (m *AMI430) Zero() error {
	return m.Write("ZERO")
}

// PersistentSwitchEnabled reports whether the persistent switch heater is on.
func (m *AMI430) PersistentSwitchEnabled() (bool, error) {
	v, err := m.AskInt("PSwitch?")
	if err != nil {
		return false, err
	}
	return v != 0, nil
}

// EnablePersistentSwitch turns the persistent switch heater on.
func (m *AMI430) EnablePersistentSwitch() error {
	return m.Write("PSwitch 1")
}

// DisablePersistentSwitch turns the persistent switch heater off.
func (m *AMI430) DisablePersistentSwitch() error {
	return m.Write("PSwitch 0")
}

// WaitForHolding polls the state until the supply is holding, paused or at
// zero current. Waiting too long for the switch to warm up is an error.
func (m *AMI430) WaitForHolding() error {
	deadline := time.Now().Add(m.WaitTimeout)
	for {
		state, err := m.State()
		if err != nil {
			return err
		}
		switch state {
		case StateHolding, StatePaused, StateAtZeroCurrent:
			return nil
		case StateQuench:
			return errors.NewAppError(errors.ErrCodeProtocol, "magnet quench detected")
		}
		if time.Now().After(deadline) {
			return errors.NewAppError(errors.ErrCodeTimeout,
				"timed out waiting for AMI430 switch to warm up")
		}
		time.Sleep(m.WaitInterval)
	}
}

// RampToCurrent heats the persistent switch and ramps to the given current
// at the given rate.
func (m *AMI430) RampToCurrent(current, rate float64) error {
	if err := m.EnablePersistentSwitch(); err != nil {
		return err
	}
	if err := m.SetTargetCurrent(current); err != nil {
		return err
	}
	if err := m.SetRampRateCurrent(rate); err != nil {
		return err
	}
	if err := m.WaitForHolding(); err != nil {
		return err
	}
	return m.Ramp()
}

// RampToField heats the persistent switch and ramps to the given field at
// the given rate.
func (m *AMI430) RampToField(field, rate float64) error {
	if err := m.EnablePersistentSwitch(); err != nil {
		return err
	}
	if err := m.SetTargetField(field); err != nil {
		return err
	}
	if err := m.SetRampRateField(rate); err != nil {
		return err
	}
	if err := m.WaitForHolding(); err != nil {
		return err
	}
	return m.Ramp()
}

// Shutdown ramps the current to zero at the given rate and cools the
// persistent switch.
func (m *AMI430) Shutdown(rampRate float64) error {
	if err := m.EnablePersistentSwitch(); err != nil {
		return err
	}
	if err := m.WaitForHolding(); err != nil {
		return err
	}
	if err := m.SetRampRateCurrent(rampRate); err != nil {
		return err
	}
	if err := m.Zero(); err != nil {
		return err
	}
	if err := m.WaitForHolding(); err != nil {
		return err
	}
	return m.DisablePersistentSwitch()
}
