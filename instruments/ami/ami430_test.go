package ami

import (
	"testing"
	"time"

	"github.com/gomeasure/gomeasure/adapters"
)

func TestAMI430Settings(t *testing.T) {
	proto := adapters.NewProtocol(
		adapters.CmdReply("COIL?", "1.182"),
		adapters.Cmd("CONF:VOLT:LIM 2.2"),
		adapters.Cmd("CONF:CURR:TARG 10"),
		adapters.Cmd("CONF:RAMP:RATE:FIELD 1,0.0422,1.00"),
	)
	magnet := NewAMI430(proto)

	coil, err := magnet.CoilConstant()
	if err != nil {
		t.Fatalf("CoilConstant: %v", err)
	}
	if coil != 1.182 {
		t.Errorf("CoilConstant = %g, want 1.182", coil)
	}
	if err := magnet.SetVoltageLimit(2.2); err != nil {
		t.Fatalf("SetVoltageLimit: %v", err)
	}
	if err := magnet.SetTargetCurrent(10); err != nil {
		t.Fatalf("SetTargetCurrent: %v", err)
	}
	if err := magnet.SetRampRateField(0.0422); err != nil {
		t.Fatalf("SetRampRateField: %v", err)
	}
	if err := proto.Done(); err != nil {
		t.Error(err)
	}
}

func TestAMI430RampRateCurrentParsesSegmentReply(t *testing.T) {
	proto := adapters.NewProtocol(
		adapters.CmdReply("RAMP:RATE:CURR:1?", "0.0357,50.63"),
	)
	magnet := NewAMI430(proto)

	rate, err := magnet.RampRateCurrent()
	if err != nil {
		t.Fatalf("RampRateCurrent: %v", err)
	}
	if rate != 0.0357 {
		t.Errorf("RampRateCurrent = %g, want 0.0357", rate)
	}
}

func TestAMI430State(t *testing.T) {
	proto := adapters.NewProtocol(
		adapters.CmdReply("STATE?", "2"),
	)
	magnet := NewAMI430(proto)

	state, err := magnet.State()
	if err != nil {
		t.Fatalf("State: %v", err)
	}
	if state != StateHolding {
		t.Errorf("State = %v, want %v", state, StateHolding)
	}
	if state.String() != "HOLDING" {
		t.Errorf("State.String() = %q, want \"HOLDING\"", state.String())
	}
}

func TestAMI430RampToCurrent(t *testing.T) {
	proto := adapters.NewProtocol(
		adapters.Cmd("PSwitch 1"),
		adapters.Cmd("CONF:CURR:TARG 5"),
		adapters.Cmd("CONF:RAMP:RATE:CURR 1,0.0357"),
		adapters.CmdReply("STATE?", "9"),
		adapters.CmdReply("STATE?", "2"),
		adapters.Cmd("RAMP"),
	)
	magnet := NewAMI430(proto)
	magnet.WaitInterval = time.Millisecond

	if err := magnet.RampToCurrent(5, 0.0357); err != nil {
		t.Fatalf("RampToCurrent: %v", err)
	}
	if err := proto.Done(); err != nil {
		t.Error(err)
	}
}

func TestAMI430WaitForHoldingQuench(t *testing.T) {
	proto := adapters.NewProtocol(
		adapters.CmdReply("STATE?", "7"),
	)
	magnet := NewAMI430(proto)

	if err := magnet.WaitForHolding(); err == nil {
		t.Fatal("expected quench state to abort the wait")
	}
}
