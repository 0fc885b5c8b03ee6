package filename

import (
	"reflect"
	"testing"
)

func TestCompleterOpensOnBrace(t *testing.T) {
	c := NewCompleter(nil) // built-ins only: date, time

	c.Update("file_{")
	want := []string{"file_{date}", "file_{time}"}
	if got := c.Suggestions(); !reflect.DeepEqual(got, want) {
		t.Errorf("Suggestions = %v, want %v", got, want)
	}
}

func TestCompleterClearsOnBalancedBraces(t *testing.T) {
	c := NewCompleter(nil)

	c.Update("file_{")
	c.Update("file_{date}")
	if got := c.Suggestions(); len(got) != 0 {
		t.Errorf("Suggestions after balanced braces = %v, want none", got)
	}
}

func TestCompleterKeepsListWhileTypingInToken(t *testing.T) {
	c := NewCompleter(nil)

	c.Update("file_{")
	c.Update("file_{da")
	if got := c.Suggestions(); len(got) != 2 {
		t.Errorf("Suggestions while typing in token = %v, want the full list", got)
	}
}

func TestCompleterSortsCaseInsensitively(t *testing.T) {
	c := NewCompleter([]string{"Voltage", "ambient", "Current"})

	c.Update("{")
	want := []string{"{ambient}", "{Current}", "{date}", "{time}", "{Voltage}"}
	if got := c.Suggestions(); !reflect.DeepEqual(got, want) {
		t.Errorf("Suggestions = %v, want %v", got, want)
	}
}

func TestCompleterFilterMatchesBySubstring(t *testing.T) {
	c := NewCompleter([]string{"sample_rate"})

	c.Update("run_{")
	// "rate" is not a prefix of any suggestion; containment must match it.
	got := c.Filter("rate")
	want := []string{"run_{sample_rate}"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Filter(\"rate\") = %v, want %v", got, want)
	}

	if got := c.Filter("RUN_{DA"); len(got) != 1 || got[0] != "run_{date}" {
		t.Errorf("case-insensitive Filter = %v, want [run_{date}]", got)
	}
}
