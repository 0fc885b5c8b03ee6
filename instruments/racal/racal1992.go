// Package racal contains drivers for Racal-Dana instruments.
package racal

import (
	"strconv"
	"strings"

	"github.com/gomeasure/gomeasure/instruments"
	"github.com/gomeasure/gomeasure/instruments/validators"
	"github.com/gomeasure/gomeasure/internal/errors"
)

// Reply layout: a two-character value-type prefix followed by a 17-character
// number field.
const (
	typeLen     = 2
	numberEnd   = 19
	minReplyLen = numberEnd
)

// intTypes and floatTypes classify the value-type prefixes the counter
// sends. Anything else is an unsupported reply.
var (
	intTypes   = []string{"RS", "UT"}
	floatTypes = []string{"FA", "PA", "CK"}
)

// Racal1992 drives the Racal-Dana 1992 universal counter over GPIB.
type Racal1992 struct {
	instruments.Instrument
}

// NewRacal1992 returns a driver bound to the given adapter.
func NewRacal1992(adapter instruments.Adapter) *Racal1992 {
	return &Racal1992{
		Instrument: instruments.New(adapter, "Racal-Dana 1992"),
	}
}

// decodeReply parses a typed fixed-width counter reply. When allowed is
// non-empty the value-type prefix must be one of its members.
func decodeReply(raw string, allowed []string) (float64, error) {
	if len(raw) < minReplyLen {
		return 0, errors.DecodeError(
			"counter reply shorter than " + strconv.Itoa(minReplyLen) + " characters").WithDetails(raw)
	}
	typ := raw[:typeLen]
	if len(allowed) > 0 && !contains(allowed, typ) {
		return 0, errors.DecodeError("unexpected value type " + typ).WithDetails(raw)
	}
	if !contains(intTypes, typ) && !contains(floatTypes, typ) {
		return 0, errors.DecodeError("unsupported value type " + typ).WithDetails(raw)
	}
	num, err := strconv.ParseFloat(strings.TrimSpace(raw[typeLen:numberEnd]), 64)
	if err != nil {
		return 0, errors.DecodeError("malformed number field").WithDetails(raw)
	}
	return num, nil
}

func contains(set []string, s string) bool {
	for _, m := range set {
		if m == s {
			return true
		}
	}
	return false
}

// Resolution reads the number of significant digits.
func (c *Racal1992) Resolution() (int, error) {
	raw, err := c.Ask("RRS")
	if err != nil {
		return 0, err
	}
	v, err := decodeReply(raw, []string{"RS"})
	if err != nil {
		return 0, err
	}
	return int(v), nil
}

// SetResolution sets the number of significant digits, an integer from
// 3 to 10.
func (c *Racal1992) SetResolution(digits int) error {
	if _, err := validators.StrictDiscreteRange(float64(digits), 3, 10, 1); err != nil {
		return err
	}
	return c.Write("SRS " + strconv.Itoa(digits))
}

// DeviceType reads the instrument's type designation; a 1992 reports 1992.
func (c *Racal1992) DeviceType() (int, error) {
	raw, err := c.Ask("RUT")
	if err != nil {
		return 0, err
	}
	v, err := decodeReply(raw, []string{"UT"})
	if err != nil {
		return 0, err
	}
	return int(v), nil
}

// MeasuredValue reads the current measurement. Only measurement-type
// replies are accepted; a settings readback here means the instrument and
// driver are out of step.
func (c *Racal1992) MeasuredValue() (float64, error) {
	raw, err := c.Read()
	if err != nil {
		return 0, err
	}
	return decodeReply(raw, floatTypes)
}
