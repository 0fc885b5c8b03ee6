// Package ar contains drivers for Amplifier Research instruments.
//
// The FP4036 isotropic field probe speaks a terse ASCII protocol over a
// fiber-optic serial link: single-letter command verbs, fixed-width replies
// that echo the first two characters of the command, and reserved ":Exx"
// strings for protocol failures. Decoding lives here, separated from the
// driver so it stays a pure function of the raw reply text.
package ar

import (
	"strconv"
	"strings"

	"github.com/gomeasure/gomeasure/internal/errors"
)

// Unit is a physical unit the probe can report field strength in.
type Unit string

const (
	UnitVPerMeter  Unit = "V/m"
	UnitMWPerCm2   Unit = "mW/cm^2"
	UnitVPerMeter2 Unit = "(V/m)^2"
)

// Battery is the probe's battery condition as reported in long-form replies.
type Battery string

const (
	BatterySafe Battery = "Safe"
	BatteryLow  Battery = "Low"
	BatteryFail Battery = "Fail"
)

// Reply is a decoded probe reply. Short-form replies (8-character payload)
// populate only Value and Unit; long-form replies (16 characters) populate
// everything and set LongForm.
type Reply struct {
	Value     float64
	Unit      Unit
	Recorder  int
	Overrange bool
	Battery   Battery
	Axis      string // enabled axes in fixed X, Y, Z order, e.g. "XZ"
	LongForm  bool
}

const (
	shortPayloadLen = 8
	longPayloadLen  = 16
	echoLen         = 2
)

// wireErrors are the reserved reply strings the probe substitutes for a
// payload when a command fails.
var wireErrors = map[string]string{
	":E01": "communication error",
	":E02": "buffer overflow",
	":E03": "invalid command",
	":E04": "invalid parameter",
	":E05": "hardware error",
	":E06": "parity error",
}

var unitCodes = map[string]Unit{
	" V ": UnitVPerMeter,
	"MW2": UnitMWPerCm2,
	"KV2": UnitVPerMeter2,
}

var batteryCodes = map[byte]Battery{
	'N': BatterySafe,
	'W': BatteryLow,
	'F': BatteryFail,
}

// CheckReply tests raw against the reserved error strings and, when it is a
// real payload, strips the two-character command echo. The error check runs
// before any field extraction: a reply is decoded only once it is known not
// to be an error code.
func CheckReply(raw string) (string, error) {
	if raw == "" {
		return "", errors.NoReplyError()
	}
	if msg, ok := wireErrors[raw]; ok {
		return "", errors.ProtocolError(raw, msg)
	}
	if len(raw) < echoLen {
		return "", errors.DecodeError("reply shorter than command echo").WithDetails(raw)
	}
	return raw[echoLen:], nil
}

// Decode turns a raw probe reply into a Reply record. Any unmapped lookup
// code or unexpected payload length is a hard failure; the probe's wire
// format overloads reply shape by length, and a misread byte must never
// silently masquerade as a different physical unit.
func Decode(raw string) (Reply, error) {
	payload, err := CheckReply(raw)
	if err != nil {
		return Reply{}, err
	}

	switch len(payload) {
	case shortPayloadLen, longPayloadLen:
	default:
		return Reply{}, errors.DecodeError(
			"unexpected payload length " + strconv.Itoa(len(payload))).WithDetails(payload)
	}

	value, err := strconv.ParseFloat(strings.TrimSpace(payload[0:5]), 64)
	if err != nil {
		return Reply{}, errors.DecodeError("malformed value field").WithDetails(payload[0:5])
	}
	unit, ok := unitCodes[payload[5:8]]
	if !ok {
		return Reply{}, errors.NewAppError(errors.ErrCodeUnknownUnit,
			"unknown unit code").WithDetails(payload[5:8])
	}

	reply := Reply{Value: value, Unit: unit}
	if len(payload) == shortPayloadLen {
		return reply, nil
	}

	recorder, err := strconv.Atoi(strings.TrimSpace(payload[8:11]))
	if err != nil {
		return Reply{}, errors.DecodeError("malformed recorder field").WithDetails(payload[8:11])
	}
	battery, ok := batteryCodes[payload[12]]
	if !ok {
		return Reply{}, errors.DecodeError("unknown battery code").WithDetails(payload[12:13])
	}

	reply.Recorder = recorder
	reply.Overrange = payload[11] == 'O'
	reply.Battery = battery
	reply.Axis = decodeAxisField(payload)
	reply.LongForm = true
	return reply, nil
}

// decodeAxisField reads the three axis-enable bytes of a 16-character
// long-form payload. 'E' marks an enabled axis; the positions are fixed
// X, Y, Z.
func decodeAxisField(payload string) string {
	var b strings.Builder
	for i, letter := range []string{"X", "Y", "Z"} {
		if payload[13+i] == 'E' {
			b.WriteString(letter)
		}
	}
	return b.String()
}

// EncodeAxis renders a human axis selection (any combination of the letters
// x, y, z in any case and order) to the probe's fixed-order {E,D} code.
func EncodeAxis(axis string) string {
	lower := strings.ToLower(axis)
	var b strings.Builder
	for _, letter := range []string{"x", "y", "z"} {
		if strings.Contains(lower, letter) {
			b.WriteByte('E')
		} else {
			b.WriteByte('D')
		}
	}
	return b.String()
}

// ProcessAxis converts in both directions of the axis mini-protocol: a
// human axis string of up to three letters becomes the wire's {E,D} code,
// and a 16-character long-form payload yields the enabled axes. Anything
// else is an input error.
func ProcessAxis(axis string) (string, error) {
	switch {
	case len(axis) <= 3:
		return EncodeAxis(axis), nil
	case len(axis) == longPayloadLen:
		return decodeAxisField(axis), nil
	default:
		return "", errors.ValidationError(
			"axis must be a string of length 3 or less, or a long-form payload")
	}
}
