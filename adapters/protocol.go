package adapters

import (
	"fmt"

	"github.com/gomeasure/gomeasure/instruments"
)

// Exchange is one scripted step of a ProtocolAdapter conversation. A step
// with an empty Command is a bare read; a step with no Reply scripted is a
// bare write.
type Exchange struct {
	Command  string
	Reply    string
	HasReply bool
}

// Cmd scripts a write with no reply.
func Cmd(command string) Exchange {
	return Exchange{Command: command}
}

// CmdReply scripts a query and the reply it produces.
func CmdReply(command, reply string) Exchange {
	return Exchange{Command: command, Reply: reply, HasReply: true}
}

// Push scripts a reply that arrives without a preceding command, such as
// the echo a set command leaves in the buffer.
func Push(reply string) Exchange {
	return Exchange{Reply: reply, HasReply: true}
}

// ProtocolAdapter replays a scripted conversation so drivers can be tested
// against exact wire traffic without hardware. Any deviation from the
// script is an error.
type ProtocolAdapter struct {
	script  []Exchange
	pos     int
	pending []string
}

var _ instruments.Adapter = (*ProtocolAdapter)(nil)

// NewProtocol returns an adapter that expects exactly the given exchanges.
func NewProtocol(script ...Exchange) *ProtocolAdapter {
	return &ProtocolAdapter{script: script}
}

// Write checks cmd against the next scripted command.
func (a *ProtocolAdapter) Write(cmd string) error {
	step, err := a.next("write")
	if err != nil {
		return err
	}
	if cmd != step.Command {
		return fmt.Errorf("protocol adapter: wrote %q, script expects %q", cmd, step.Command)
	}
	if step.HasReply {
		// The reply stays pending for the following Read.
		a.pending = append(a.pending, step.Reply)
	}
	return nil
}

// Read returns the next scripted reply.
func (a *ProtocolAdapter) Read() (string, error) {
	if len(a.pending) > 0 {
		reply := a.pending[0]
		a.pending = a.pending[1:]
		return reply, nil
	}
	step, err := a.next("read")
	if err != nil {
		return "", err
	}
	if step.Command != "" {
		return "", fmt.Errorf("protocol adapter: read before writing %q", step.Command)
	}
	if !step.HasReply {
		return "", fmt.Errorf("protocol adapter: no reply scripted at step %d", a.pos-1)
	}
	return step.Reply, nil
}

// Ask writes a query and reads its reply.
func (a *ProtocolAdapter) Ask(cmd string) (string, error) {
	if err := a.Write(cmd); err != nil {
		return "", err
	}
	return a.Read()
}

// Done reports an error unless the whole script was consumed.
func (a *ProtocolAdapter) Done() error {
	if a.pos != len(a.script) {
		return fmt.Errorf("protocol adapter: %d scripted exchanges left", len(a.script)-a.pos)
	}
	if len(a.pending) > 0 {
		return fmt.Errorf("protocol adapter: %d scripted replies never read", len(a.pending))
	}
	return nil
}

func (a *ProtocolAdapter) next(op string) (Exchange, error) {
	if a.pos >= len(a.script) {
		return Exchange{}, fmt.Errorf("protocol adapter: unexpected %s past end of script", op)
	}
	step := a.script[a.pos]
	a.pos++
	return step, nil
}
