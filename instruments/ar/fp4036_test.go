package ar

import (
	"testing"

	"github.com/gomeasure/gomeasure/adapters"
	"github.com/gomeasure/gomeasure/internal/errors"
)

func TestFP4036BatteryVoltage(t *testing.T) {
	proto := adapters.NewProtocol(
		adapters.CmdReply("B", "B 8.70"),
	)
	probe := NewFP4036(proto)

	v, err := probe.BatteryVoltage()
	if err != nil {
		t.Fatalf("BatteryVoltage: %v", err)
	}
	if v != 8.7 {
		t.Errorf("BatteryVoltage = %g, want 8.7", v)
	}
	if err := proto.Done(); err != nil {
		t.Error(err)
	}
}

func TestFP4036SetRange(t *testing.T) {
	proto := adapters.NewProtocol(
		adapters.Cmd("R2"),
		adapters.Push("R2"),
	)
	probe := NewFP4036(proto)

	if err := probe.SetRange("30.0"); err != nil {
		t.Fatalf("SetRange: %v", err)
	}
	if err := proto.Done(); err != nil {
		t.Error(err)
	}
}

func TestFP4036SetRangeRejectsUnknown(t *testing.T) {
	probe := NewFP4036(adapters.NewProtocol())
	if err := probe.SetRange("50.0"); err == nil {
		t.Fatal("SetRange accepted a range the probe does not have")
	}
}

func TestFP4036SetRangeWireError(t *testing.T) {
	proto := adapters.NewProtocol(
		adapters.Cmd("R1"),
		adapters.Push(":E04"),
	)
	probe := NewFP4036(proto)

	err := probe.SetRange("10.0")
	if err == nil {
		t.Fatal("expected the probe's :E04 reply to surface as an error")
	}
	if errors.GetAppError(err).Code != errors.ErrCodeProtocol {
		t.Errorf("code = %s, want %s", errors.GetAppError(err).Code, errors.ErrCodeProtocol)
	}
}

func TestFP4036Data(t *testing.T) {
	proto := adapters.NewProtocol(
		adapters.CmdReply("D2", "D209.50MW2007 NEDE"),
	)
	probe := NewFP4036(proto)

	reply, err := probe.Data()
	if err != nil {
		t.Fatalf("Data: %v", err)
	}
	if reply.Value != 9.5 || reply.Unit != UnitMWPerCm2 {
		t.Errorf("value/unit = %g %s, want 9.5 %s", reply.Value, reply.Unit, UnitMWPerCm2)
	}
	if reply.Axis != "XZ" {
		t.Errorf("axis = %q, want \"XZ\"", reply.Axis)
	}
	if err := proto.Done(); err != nil {
		t.Error(err)
	}
}

func TestFP4036AxisMeasurement(t *testing.T) {
	proto := adapters.NewProtocol(
		adapters.Cmd("AEDD"),
		adapters.Push("AE"),
		adapters.CmdReply("D2", "D203.10 V 000 NEDD"),
	)
	probe := NewFP4036(proto)

	r, err := probe.X()
	if err != nil {
		t.Fatalf("X: %v", err)
	}
	if r.Value != 3.1 || r.Unit != UnitVPerMeter {
		t.Errorf("X = %g %s, want 3.1 %s", r.Value, r.Unit, UnitVPerMeter)
	}
	if err := proto.Done(); err != nil {
		t.Error(err)
	}
}

func TestFP4036SetUnit(t *testing.T) {
	proto := adapters.NewProtocol(
		adapters.Cmd("U2"),
		adapters.Push("U2"),
	)
	probe := NewFP4036(proto)

	if err := probe.SetUnit("(V/m)^2"); err != nil {
		t.Fatalf("SetUnit: %v", err)
	}
	if err := proto.Done(); err != nil {
		t.Error(err)
	}
}

func TestFP4036FormatReading(t *testing.T) {
	probe := NewFP4036(adapters.NewProtocol())
	r := Reading{Value: 3.1, Unit: UnitVPerMeter}

	if got := probe.FormatReading(r); got != "3.1" {
		t.Errorf("ValueOnly format = %q, want \"3.1\"", got)
	}
	probe.SetValueMode(ValueWithUnit)
	if got := probe.FormatReading(r); got != "3.1 V/m" {
		t.Errorf("ValueWithUnit format = %q, want \"3.1 V/m\"", got)
	}
}
