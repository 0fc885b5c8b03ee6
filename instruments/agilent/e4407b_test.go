package agilent

import (
	"testing"

	"github.com/gomeasure/gomeasure/adapters"
)

func TestE4407BFrequencySetup(t *testing.T) {
	proto := adapters.NewProtocol(
		adapters.Cmd(":SENS:FREQ:STAR 1e+06"),
		adapters.Cmd(":SENS:FREQ:STOP 2e+09"),
		adapters.CmdReply(":SENS:FREQ:CENT?", "1.0000005e9"),
	)
	sa := NewE4407B(proto)

	if err := sa.SetStartFrequency(1e6); err != nil {
		t.Fatalf("SetStartFrequency: %v", err)
	}
	if err := sa.SetStopFrequency(2e9); err != nil {
		t.Fatalf("SetStopFrequency: %v", err)
	}
	center, err := sa.CenterFrequency()
	if err != nil {
		t.Fatalf("CenterFrequency: %v", err)
	}
	if center != 1.0000005e9 {
		t.Errorf("CenterFrequency = %g, want 1.0000005e9", center)
	}
	if err := proto.Done(); err != nil {
		t.Error(err)
	}
}

func TestE4407BStartFrequencyOutOfRange(t *testing.T) {
	sa := NewE4407B(adapters.NewProtocol())
	if err := sa.SetStartFrequency(1); err == nil {
		t.Fatal("SetStartFrequency(1): expected out-of-range error")
	}
	if err := sa.SetStopFrequency(30e9); err == nil {
		t.Fatal("SetStopFrequency(30e9): expected out-of-range error")
	}
}

func TestE4407BCenterFrequencyTruncates(t *testing.T) {
	proto := adapters.NewProtocol(
		adapters.Cmd(":SENS:FREQ:CENT 2.65e+10"),
	)
	sa := NewE4407B(proto)

	if err := sa.SetCenterFrequency(30e9); err != nil {
		t.Fatalf("SetCenterFrequency: %v", err)
	}
	if err := proto.Done(); err != nil {
		t.Error(err)
	}
}

func TestE4407BInputAttenuationSnapsToStep(t *testing.T) {
	proto := adapters.NewProtocol(
		adapters.Cmd(":SENS:POW:ATT 15"),
	)
	sa := NewE4407B(proto)

	if err := sa.SetInputAttenuation(12); err != nil {
		t.Fatalf("SetInputAttenuation: %v", err)
	}
	if err := proto.Done(); err != nil {
		t.Error(err)
	}
}

func TestE4407BTrace(t *testing.T) {
	proto := adapters.NewProtocol(
		adapters.CmdReply(":TRAC? TRACE1", "-10.5,-12.25,-80.0"),
	)
	sa := NewE4407B(proto)

	trace, err := sa.Trace(1)
	if err != nil {
		t.Fatalf("Trace: %v", err)
	}
	want := []float64{-10.5, -12.25, -80.0}
	if len(trace) != len(want) {
		t.Fatalf("Trace returned %d points, want %d", len(trace), len(want))
	}
	for i := range want {
		if trace[i] != want[i] {
			t.Errorf("trace[%d] = %g, want %g", i, trace[i], want[i])
		}
	}

	if _, err := sa.Trace(4); err == nil {
		t.Error("Trace(4): expected invalid-option error")
	}
}
