package ar

import (
	"fmt"
	"log"
	"math"
	"strings"

	"github.com/gomeasure/gomeasure/instruments"
	"github.com/gomeasure/gomeasure/internal/errors"
)

// ValueMode selects how measurement readings are rendered by FormatReading:
// bare numeric text or number plus unit. The caller picks the mode once;
// every measurement accessor threads it through unchanged.
type ValueMode int

const (
	ValueOnly ValueMode = iota
	ValueWithUnit
)

// Reading is a single measurement with the unit it was taken in.
type Reading struct {
	Value float64
	Unit  Unit
}

// rangeCodes maps the human range names to the probe's R command argument.
// The reverse direction reports which range a reply digit stands for.
var rangeCodes = map[string]string{
	"10.0":  "1",
	"30.0":  "2",
	"100.0": "3",
	"300.0": "4",
	"next":  "N",
}

var rangeNames = map[string]string{
	"1": "10.0",
	"2": "30.0",
	"3": "100.0",
	"4": "300.0",
}

// unitArgs maps unit names (and their wire codes, for symmetry with what
// the probe reports) to the U command argument. The set mapping is
// asymmetric with the reply codes: U2 selects (V/m)^2 while U3 selects
// mW/cm^2.
var unitArgs = map[string]string{
	"v/m":     "1",
	"(v/m)^2": "2",
	"mw/cm^2": "3",
	" v ":     "1",
	"kv2":     "2",
	"mw2":     "3",
}

// FP4036 drives the Amplifier Research FP4036 isotropic field probe.
// The probe expects 9600 baud, 7 data bits, odd parity, CR termination;
// DTR must be held low to power the fiber-optic modem.
type FP4036 struct {
	instruments.Instrument
	mode ValueMode
}

// NewFP4036 returns a driver for a probe reachable through adapter.
func NewFP4036(adapter instruments.Adapter) *FP4036 {
	return &FP4036{
		Instrument: instruments.New(adapter, "Amplifier Research FP4036 Isotropic Field Probe"),
	}
}

// SetValueMode selects whether formatted readings carry their unit.
func (p *FP4036) SetValueMode(mode ValueMode) {
	p.mode = mode
}

// FormatReading renders r according to the probe's value mode.
func (p *FP4036) FormatReading(r Reading) string {
	if p.mode == ValueWithUnit {
		return fmt.Sprintf("%g %s", r.Value, r.Unit)
	}
	return fmt.Sprintf("%g", r.Value)
}

// Wakeup wakes the probe from sleep. Any byte does it; a NUL is the
// documented choice because it is never a valid command.
func (p *FP4036) Wakeup() error {
	return p.Write("\x00")
}

// DisableSleep turns the sleep timer off.
func (p *FP4036) DisableSleep() error {
	return p.setAndCheck("S0")
}

// SetSleepTimer puts the probe to sleep after the given number of seconds.
func (p *FP4036) SetSleepTimer(seconds int) error {
	return p.setAndCheck(fmt.Sprintf("S%d", seconds))
}

// Zero zeroes the probe. The probe must be out of the field while zeroing.
func (p *FP4036) Zero() error {
	return p.Write("Z")
}

// Shutdown lets the probe sleep after five minutes of inactivity.
func (p *FP4036) Shutdown() error {
	return p.Write("S300")
}

// BatteryVoltage reads the battery voltage in volts.
func (p *FP4036) BatteryVoltage() (float64, error) {
	return p.askValue("B")
}

// Temperature reads the probe temperature in degrees Celsius.
func (p *FP4036) Temperature() (float64, error) {
	return p.askValue("TC")
}

// TemperatureFahrenheit reads the probe temperature in degrees Fahrenheit.
func (p *FP4036) TemperatureFahrenheit() (float64, error) {
	return p.askValue("TF")
}

// Range reports the active measurement range as its full-scale V/m value.
func (p *FP4036) Range() (string, error) {
	raw, err := p.Ask("R")
	if err != nil {
		return "", err
	}
	payload, err := CheckReply(raw)
	if err != nil {
		return "", err
	}
	name, ok := rangeNames[strings.TrimSpace(payload)]
	if !ok {
		return "", errors.DecodeError("unknown range code").WithDetails(payload)
	}
	return name, nil
}

// SetRange selects a measurement range by full-scale value ("10.0", "30.0",
// "100.0", "300.0") or "next" to cycle.
func (p *FP4036) SetRange(value string) error {
	code, ok := rangeCodes[value]
	if !ok {
		return errors.NewAppError(errors.ErrCodeInvalidOption,
			"range must be 10.0, 30.0, 100.0, 300.0 or next").WithDetails(value)
	}
	return p.setAndCheck("R" + code)
}

// Unit reports the unit the probe currently measures in.
func (p *FP4036) Unit() (Unit, error) {
	reply, err := p.Data()
	if err != nil {
		return "", err
	}
	return reply.Unit, nil
}

// SetUnit selects the measurement unit by name ("V/m", "mW/cm^2",
// "(V/m)^2", case-insensitive) or by wire code.
func (p *FP4036) SetUnit(unit string) error {
	arg, ok := unitArgs[strings.ToLower(unit)]
	if !ok {
		return errors.NewAppError(errors.ErrCodeInvalidOption,
			"unit must be V/m, mW/cm^2 or (V/m)^2").WithDetails(unit)
	}
	return p.setAndCheck("U" + arg)
}

// Axis reports which axes are enabled, as a subset of "XYZ".
func (p *FP4036) Axis() (string, error) {
	reply, err := p.Data()
	if err != nil {
		return "", err
	}
	return reply.Axis, nil
}

// SetAxis enables the axes named in axis (letters x, y, z in any case and
// order) and disables the rest.
func (p *FP4036) SetAxis(axis string) error {
	if len(axis) > 3 {
		return errors.ValidationError("axis must be a string of length 3 or less")
	}
	return p.setAndCheck("A" + EncodeAxis(axis))
}

// Data requests a long-form reading and decodes the full record. Overrange
// and battery conditions are logged; they do not fail the read.
func (p *FP4036) Data() (Reply, error) {
	raw, err := p.Ask("D2")
	if err != nil {
		return Reply{}, err
	}
	reply, err := Decode(raw)
	if err != nil {
		return Reply{}, err
	}
	p.logConditions(reply)
	return reply, nil
}

// X reads the field on the x axis alone.
func (p *FP4036) X() (Reading, error) {
	return p.axisReading("X")
}

// Y reads the field on the y axis alone.
func (p *FP4036) Y() (Reading, error) {
	return p.axisReading("Y")
}

// Z reads the field on the z axis alone.
func (p *FP4036) Z() (Reading, error) {
	return p.axisReading("Z")
}

// Field reads the composite field with all three axes enabled.
func (p *FP4036) Field() (Reading, error) {
	return p.axisReading("XYZ")
}

// Direction reads the normalized direction vector of the field.
func (p *FP4036) Direction() (x, y, z float64, err error) {
	rx, err := p.X()
	if err != nil {
		return 0, 0, 0, err
	}
	ry, err := p.Y()
	if err != nil {
		return 0, 0, 0, err
	}
	rz, err := p.Z()
	if err != nil {
		return 0, 0, 0, err
	}
	mag := math.Sqrt(rx.Value*rx.Value + ry.Value*ry.Value + rz.Value*rz.Value)
	if mag == 0 {
		return 0, 0, 0, errors.DecodeError("zero field, direction undefined")
	}
	return rx.Value / mag, ry.Value / mag, rz.Value / mag, nil
}

// Max reads all three axes and returns the strongest, with its axis letter.
func (p *FP4036) Max() (Reading, string, error) {
	readings, err := p.threeAxes()
	if err != nil {
		return Reading{}, "", err
	}
	best, axis := readings[0], "X"
	for i, letter := range []string{"X", "Y", "Z"} {
		if readings[i].Value > best.Value {
			best, axis = readings[i], letter
		}
	}
	return best, axis, nil
}

// Average reads all three axes and returns their mean.
func (p *FP4036) Average() (Reading, error) {
	readings, err := p.threeAxes()
	if err != nil {
		return Reading{}, err
	}
	sum := 0.0
	for _, r := range readings {
		sum += r.Value
	}
	return Reading{Value: sum / 3, Unit: readings[0].Unit}, nil
}

// CheckSetErrors reads the reply a set command produces and maps the
// reserved error strings. Non-error replies are command echoes and are
// discarded.
func (p *FP4036) CheckSetErrors() error {
	raw, err := p.Read()
	if err != nil {
		return err
	}
	if msg, ok := wireErrors[raw]; ok {
		return errors.ProtocolError(raw, msg)
	}
	return nil
}

func (p *FP4036) setAndCheck(cmd string) error {
	if err := p.Write(cmd); err != nil {
		return err
	}
	return p.CheckSetErrors()
}

// askValue runs a query whose reply is a bare short-form value with no
// unit field, such as battery voltage or temperature.
func (p *FP4036) askValue(cmd string) (float64, error) {
	raw, err := p.Ask(cmd)
	if err != nil {
		return 0, err
	}
	payload, err := CheckReply(raw)
	if err != nil {
		return 0, err
	}
	var v float64
	if _, err := fmt.Sscanf(strings.TrimSpace(payload), "%g", &v); err != nil {
		return 0, errors.DecodeError("malformed value reply").WithDetails(payload)
	}
	return v, nil
}

// axisReading selects the given axes and takes a long-form reading.
func (p *FP4036) axisReading(axis string) (Reading, error) {
	if err := p.setAndCheck("A" + EncodeAxis(axis)); err != nil {
		return Reading{}, err
	}
	reply, err := p.Data()
	if err != nil {
		return Reading{}, err
	}
	return Reading{Value: reply.Value, Unit: reply.Unit}, nil
}

func (p *FP4036) threeAxes() ([3]Reading, error) {
	var out [3]Reading
	for i, axis := range []string{"X", "Y", "Z"} {
		r, err := p.axisReading(axis)
		if err != nil {
			return out, err
		}
		out[i] = r
	}
	return out, nil
}

func (p *FP4036) logConditions(reply Reply) {
	if !reply.LongForm {
		return
	}
	if reply.Overrange {
		log.Printf("%s: overrange", p.Name())
	}
	switch reply.Battery {
	case BatteryLow:
		log.Printf("%s: low battery", p.Name())
	case BatteryFail:
		log.Printf("%s: battery failure", p.Name())
	}
}
