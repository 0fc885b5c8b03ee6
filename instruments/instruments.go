// Package instruments defines the shared surface of all gomeasure drivers:
// the Adapter transport boundary and the Instrument base that drivers embed.
//
// An Adapter owns the byte-level plumbing (serial framing, GPIB addressing,
// timeouts); a driver owns the command vocabulary of one piece of hardware.
// Drivers never touch the wire directly, so any driver runs over any adapter
// that can reach its instrument.
package instruments

import (
	"strconv"
	"strings"

	"github.com/gomeasure/gomeasure/internal/errors"
)

// Adapter is the transport an instrument talks through. One request is in
// flight at a time; the hardware protocols have no pipelining.
type Adapter interface {
	// Write sends a command, appending whatever termination the transport
	// is configured with.
	Write(cmd string) error

	// Read returns the next reply with termination stripped.
	Read() (string, error)

	// Ask writes a command and reads the single reply it produces.
	Ask(cmd string) (string, error)
}

// Driver is the least any instrument driver exposes. Concrete drivers add
// their instrument's typed surface on top.
type Driver interface {
	Name() string
	Adapter() Adapter
}

// Instrument is the base every driver embeds. It carries the adapter and
// the instrument's display name.
type Instrument struct {
	adapter Adapter
	name    string
}

// New returns an Instrument bound to the given adapter.
func New(adapter Adapter, name string) Instrument {
	return Instrument{adapter: adapter, name: name}
}

// Name returns the instrument's display name.
func (i *Instrument) Name() string {
	return i.name
}

// Adapter returns the underlying transport.
func (i *Instrument) Adapter() Adapter {
	return i.adapter
}

// Write sends a command without expecting a reply.
func (i *Instrument) Write(cmd string) error {
	if err := i.adapter.Write(cmd); err != nil {
		return errors.ConnectionError("write "+strconv.Quote(cmd), err)
	}
	return nil
}

// Read returns the next pending reply.
func (i *Instrument) Read() (string, error) {
	s, err := i.adapter.Read()
	if err != nil {
		return "", errors.ConnectionError("read", err)
	}
	return s, nil
}

// Ask writes a query and returns its reply.
func (i *Instrument) Ask(cmd string) (string, error) {
	s, err := i.adapter.Ask(cmd)
	if err != nil {
		return "", errors.ConnectionError("ask "+strconv.Quote(cmd), err)
	}
	return s, nil
}

// AskFloat writes a query and parses the reply as a float.
func (i *Instrument) AskFloat(cmd string) (float64, error) {
	s, err := i.Ask(cmd)
	if err != nil {
		return 0, err
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, errors.DecodeError("reply is not a number").WithDetails(s)
	}
	return v, nil
}

// AskInt writes a query and parses the reply as an integer.
func (i *Instrument) AskInt(cmd string) (int, error) {
	s, err := i.Ask(cmd)
	if err != nil {
		return 0, err
	}
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, errors.DecodeError("reply is not an integer").WithDetails(s)
	}
	return v, nil
}

// Values writes a query and parses a comma-separated reply into floats.
func (i *Instrument) Values(cmd string) ([]float64, error) {
	s, err := i.Ask(cmd)
	if err != nil {
		return nil, err
	}
	fields := strings.Split(strings.TrimSpace(s), ",")
	out := make([]float64, 0, len(fields))
	for _, f := range fields {
		v, err := strconv.ParseFloat(strings.TrimSpace(f), 64)
		if err != nil {
			return nil, errors.DecodeError("reply field is not a number").WithDetails(f)
		}
		out = append(out, v)
	}
	return out, nil
}
