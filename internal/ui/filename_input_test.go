package ui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/gomeasure/gomeasure/filename"
)

func TestFilenameInputSuggestionsOnOpenBrace(t *testing.T) {
	m := NewFilenameInput([]string{"sample"})
	m.SetValue("run_{")

	got := m.Suggestions()
	want := []string{"run_{date}", "run_{sample}", "run_{time}"}
	if len(got) != len(want) {
		t.Fatalf("Expected %d suggestions, got %d: %v", len(want), len(got), got)
	}
	for i, s := range want {
		if got[i] != s {
			t.Errorf("Expected suggestion %d to be %q, got %q", i, s, got[i])
		}
	}
}

func TestFilenameInputFiltersWhileTyping(t *testing.T) {
	m := NewFilenameInput([]string{"sample"})
	m.SetValue("run_{")
	m.SetValue("run_{da")

	got := m.Suggestions()
	if len(got) != 1 || got[0] != "run_{date}" {
		t.Errorf("Expected [run_{date}], got %v", got)
	}
}

func TestFilenameInputAcceptSuggestion(t *testing.T) {
	m := NewFilenameInput(nil)
	m.SetValue("run_{")
	m.SetValue("run_{da")

	m.Update(tea.KeyMsg{Type: tea.KeyTab})

	if m.input.Value() != "run_{date}" {
		t.Errorf("Expected completed value run_{date}, got %q", m.input.Value())
	}
	if len(m.Suggestions()) != 0 {
		t.Errorf("Expected suggestions cleared after completion, got %v", m.Suggestions())
	}
}

func TestFilenameInputCommitAppliesFixup(t *testing.T) {
	m := NewFilenameInput(nil)
	m.SetValue("data_{date")

	if m.Result().State != filename.Intermediate {
		t.Fatalf("Expected intermediate state, got %v", m.Result().State)
	}

	m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	if !m.Submitted() {
		t.Fatal("Expected commit after fixup")
	}
	if m.Value() != "data_{date}" {
		t.Errorf("Expected fixed-up value data_{date}, got %q", m.Value())
	}
}

func TestFilenameInputRejectsInvalid(t *testing.T) {
	m := NewFilenameInput(nil)
	m.SetValue("bad/name")

	m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	if m.Submitted() {
		t.Error("Expected invalid filename to stay in the prompt")
	}
	if m.Result().State != filename.Invalid {
		t.Errorf("Expected invalid state, got %v", m.Result().State)
	}
}

func TestFilenameInputWarnsOnUnknownPlaceholder(t *testing.T) {
	m := NewFilenameInput([]string{"sample"})
	m.SetValue("data_{mystery}")

	res := m.Result()
	if res.State != filename.Acceptable {
		t.Fatalf("Expected acceptable state, got %v", res.State)
	}
	if len(res.Unknown) != 1 || res.Unknown[0] != "mystery" {
		t.Errorf("Expected unknown placeholder {mystery}, got %v", res.Unknown)
	}
}
