package filename

import "strings"

// Completer produces placeholder suggestions for a filename under edit.
// Its only state is the current suggestion list, rebuilt on every update.
type Completer struct {
	placeholders []string
	suggestions  []string
}

// NewCompleter builds a completer over the given procedure field names
// plus the built-in placeholders, sorted case-insensitively.
func NewCompleter(fieldNames []string) *Completer {
	names := withBuiltins(fieldNames)
	sortCaseInsensitive(names)
	return &Completer{placeholders: names}
}

// Update recomputes the suggestion list for the current text. A text
// ending in an opening brace offers every placeholder, completed in place;
// balanced braces mean no token is open and the list empties. Text typed
// inside an open token leaves the list as is, so the host can keep
// filtering it.
func (c *Completer) Update(text string) {
	if strings.HasSuffix(text, "{") {
		suggestions := make([]string, len(c.placeholders))
		for i, p := range c.placeholders {
			suggestions[i] = text + p + "}"
		}
		c.suggestions = suggestions
	} else if strings.Count(text, "{") == strings.Count(text, "}") {
		c.suggestions = nil
	}
}

// Suggestions returns the current suggestion list.
func (c *Completer) Suggestions() []string {
	return append([]string(nil), c.suggestions...)
}

// Filter returns the suggestions containing the typed text, matched
// case-insensitively by substring rather than by prefix.
func (c *Completer) Filter(typed string) []string {
	lower := strings.ToLower(typed)
	var out []string
	for _, s := range c.suggestions {
		if strings.Contains(strings.ToLower(s), lower) {
			out = append(out, s)
		}
	}
	return out
}
