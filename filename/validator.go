// Package filename validates measurement output filenames containing
// {name} or {name:formatspec} placeholder tokens, and suggests completions
// while a token is being typed.
//
// The package is UI-free: it returns a Result describing validity and any
// unknown-placeholder warning, and leaves rendering (warning icons,
// tooltips, completion popups) to whatever hosts the text entry.
package filename

import (
	"regexp"
	"sort"
	"strings"
)

// Built-in placeholder names available in every filename, alongside the
// procedure-defined field names.
var builtins = []string{"date", "time"}

// State classifies a filename under edit. The three-way split exists so a
// host widget never blocks typing mid-placeholder: an unterminated token is
// Intermediate, not Invalid.
type State int

const (
	Invalid State = iota
	Intermediate
	Acceptable
)

func (s State) String() string {
	switch s {
	case Invalid:
		return "Invalid"
	case Intermediate:
		return "Intermediate"
	case Acceptable:
		return "Acceptable"
	default:
		return "Unknown"
	}
}

// Result is the outcome of validating one input string. Unknown names are
// a warning, never a blocked state: the host may deliberately commit a
// literal-variable-name fallback.
type Result struct {
	State State

	// Unknown lists the names of complete tokens that are not on the
	// placeholder whitelist.
	Unknown []string

	// Annotated is the input with each unknown token wrapped in HTML
	// highlight markup, for tooltip display.
	Annotated string

	// Warning is a ready-to-render HTML tooltip body naming the unknown
	// placeholders. Empty when Unknown is.
	Warning string
}

var (
	fullPlaceholder = regexp.MustCompile(`\{([^{}:]*)(:[^{}]*)?\}`)
	halfPlaceholder = regexp.MustCompile(`\{([^{}:]*)(:[^{}]*)?$`)
	validFilename   = regexp.MustCompile(`^[^<>:"/\\|?*{}]*$`)
)

// Validator checks filenames against filesystem-safe character rules and a
// whitelist of placeholder names.
type Validator struct {
	placeholders []string
}

// NewValidator builds a validator for the given procedure field names. The
// built-in "date" and "time" placeholders are always included.
func NewValidator(fieldNames []string) *Validator {
	return &Validator{placeholders: withBuiltins(fieldNames)}
}

// Placeholders returns the full whitelist, built-ins included.
func (v *Validator) Placeholders() []string {
	return append([]string(nil), v.placeholders...)
}

// Validate classifies input and reports unknown placeholder names. The
// input is never rejected outright for an unknown name; only
// filesystem-unsafe characters outside recognized tokens make it Invalid.
func (v *Validator) Validate(input string) Result {
	full := fullPlaceholder.FindAllStringSubmatch(input, -1)
	half := halfPlaceholder.MatchString(input)

	// Substitute tokens with neutral markers so the filesystem-safety test
	// sees neither braces nor the token contents.
	test := fullPlaceholder.ReplaceAllString(input, "_plchldr_")
	test = halfPlaceholder.ReplaceAllString(test, "_plchldr")

	result := Result{Annotated: input}
	switch {
	case !validFilename.MatchString(test):
		result.State = Invalid
	case half:
		result.State = Intermediate
	default:
		result.State = Acceptable
	}

	for _, m := range full {
		if !contains(v.placeholders, m[1]) {
			result.Unknown = append(result.Unknown, m[1])
			token := "{" + m[1] + m[2] + "}"
			result.Annotated = strings.ReplaceAll(result.Annotated, token,
				"<b><font color='red'>"+token+"</font></b>")
		}
	}
	if len(result.Unknown) > 0 {
		result.Warning = "<p style='white-space:pre'>" +
			"The input filename contains placeholders with<br/>invalid variable names:<br/>" +
			" - '" + strings.Join(result.Unknown, "',<br/> - '") + "'." +
			"<br/><br/>Received input:<br/>" + result.Annotated + "</p>"
	}
	return result
}

// Fixup closes a trailing unterminated token, the transition a host widget
// applies when the entry loses focus.
func (v *Validator) Fixup(input string) string {
	if halfPlaceholder.MatchString(input) {
		return input + "}"
	}
	return input
}

func withBuiltins(fieldNames []string) []string {
	names := append([]string(nil), fieldNames...)
	for _, b := range builtins {
		if !contains(names, b) {
			names = append(names, b)
		}
	}
	return names
}

func contains(set []string, s string) bool {
	for _, m := range set {
		if m == s {
			return true
		}
	}
	return false
}

// sortCaseInsensitive orders names the way a completion popup presents
// them.
func sortCaseInsensitive(names []string) {
	sort.Slice(names, func(i, j int) bool {
		return strings.ToLower(names[i]) < strings.ToLower(names[j])
	})
}
