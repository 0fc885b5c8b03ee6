// Package etslindgren contains drivers for ETS-Lindgren EMC test equipment.
//
// The EMCenter is a modular mainframe: plug-in cards sit in numbered slots
// and are addressed transparently through the mainframe's own connection by
// prefixing each command with the slot number and device letter.
package etslindgren

import (
	"github.com/gomeasure/gomeasure/instruments"
)

// EMCenter drives the mainframe itself. It does not address plug-in cards;
// card drivers such as M7006 share the mainframe's adapter.
type EMCenter struct {
	instruments.Instrument
}

// NewEMCenter returns a mainframe driver bound to the given adapter.
func NewEMCenter(adapter instruments.Adapter) *EMCenter {
	return &EMCenter{
		Instrument: instruments.New(adapter, "ETS-Lindgren EMCenter"),
	}
}

// Local returns the front panel to local control.
func (e *EMCenter) Local() error {
	return e.Write("LOCAL")
}

// Reboot restarts the mainframe and every installed card.
func (e *EMCenter) Reboot() error {
	return e.Write("REBOOT SYSTEM")
}
