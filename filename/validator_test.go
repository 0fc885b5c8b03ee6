package filename

import (
	"strings"
	"testing"
)

func TestValidateAcceptable(t *testing.T) {
	v := NewValidator([]string{"voltage", "current"})

	for _, input := range []string{
		"measurement",
		"run_{date}_{time}",
		"sweep_{voltage}_{current:.3f}",
		"",
	} {
		res := v.Validate(input)
		if res.State != Acceptable {
			t.Errorf("Validate(%q).State = %s, want Acceptable", input, res.State)
		}
		if len(res.Unknown) != 0 {
			t.Errorf("Validate(%q) flagged %v as unknown", input, res.Unknown)
		}
	}
}

func TestValidateUnknownPlaceholderWarns(t *testing.T) {
	v := NewValidator(nil) // whitelist is just the built-ins date, time

	res := v.Validate("data_{unknown}")
	if res.State != Acceptable {
		t.Errorf("State = %s, want Acceptable (warning must not block)", res.State)
	}
	if len(res.Unknown) != 1 || res.Unknown[0] != "unknown" {
		t.Fatalf("Unknown = %v, want [unknown]", res.Unknown)
	}
	if !strings.Contains(res.Warning, "'unknown'") {
		t.Errorf("warning %q does not name the unknown placeholder", res.Warning)
	}
	if !strings.Contains(res.Annotated, "<b><font color='red'>{unknown}</font></b>") {
		t.Errorf("annotated input %q does not highlight the token", res.Annotated)
	}
}

func TestValidateUnknownWithFormatSpec(t *testing.T) {
	v := NewValidator([]string{"voltage"})

	res := v.Validate("run_{typo:.2f}_{voltage}")
	if len(res.Unknown) != 1 || res.Unknown[0] != "typo" {
		t.Fatalf("Unknown = %v, want [typo]", res.Unknown)
	}
	if !strings.Contains(res.Annotated, "<b><font color='red'>{typo:.2f}</font></b>") {
		t.Errorf("annotated input %q does not highlight the full token", res.Annotated)
	}
	if strings.Contains(res.Annotated, "<b><font color='red'>{voltage}") {
		t.Error("known placeholder was highlighted")
	}
}

func TestValidateIntermediate(t *testing.T) {
	v := NewValidator(nil)

	res := v.Validate("data_{da")
	if res.State != Intermediate {
		t.Errorf("State = %s, want Intermediate", res.State)
	}
	if fixed := v.Fixup("data_{da"); fixed != "data_{da}" {
		t.Errorf("Fixup = %q, want \"data_{da}\"", fixed)
	}
}

func TestValidateInvalidCharacters(t *testing.T) {
	v := NewValidator([]string{"field"})

	for _, input := range []string{
		"dir/file_{field}",
		"a<b",
		"pipe|name",
		"what?",
		"back\\slash",
		"stray}brace",
	} {
		if res := v.Validate(input); res.State != Invalid {
			t.Errorf("Validate(%q).State = %s, want Invalid", input, res.State)
		}
	}
}

func TestValidateInvalidBeatsIntermediate(t *testing.T) {
	v := NewValidator(nil)

	// Unsafe character outside the open token wins over Intermediate.
	if res := v.Validate("bad/name_{da"); res.State != Invalid {
		t.Errorf("State = %s, want Invalid", res.State)
	}
}

func TestFixupLeavesBalancedInputAlone(t *testing.T) {
	v := NewValidator(nil)

	for _, input := range []string{"plain", "run_{date}"} {
		if fixed := v.Fixup(input); fixed != input {
			t.Errorf("Fixup(%q) = %q, want unchanged", input, fixed)
		}
	}
}

func TestValidatorIncludesBuiltins(t *testing.T) {
	v := NewValidator([]string{"voltage"})

	names := v.Placeholders()
	for _, want := range []string{"voltage", "date", "time"} {
		found := false
		for _, n := range names {
			if n == want {
				found = true
			}
		}
		if !found {
			t.Errorf("Placeholders() = %v, missing %q", names, want)
		}
	}
}
