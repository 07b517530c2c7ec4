package styles

import "fmt"

// Resolution selects how Markdown structure maps onto template style names.
type Resolution string

const (
	// ResolutionShifted maps H1 to "Heading 0" and Hn to "Heading n-1",
	// matching templates that reserve a distinguished top-level title
	// style. Lists render as glyph-prefixed paragraphs unless the
	// template defines list styles. This is the default.
	ResolutionShifted Resolution = "shifted"

	// ResolutionDirect maps Hn to "Heading n" and lists to the built-in
	// "List Bullet"/"List Number" families unshifted.
	ResolutionDirect Resolution = "direct"
)

// Valid reports whether r names a known strategy.
func (r Resolution) Valid() bool {
	return r == ResolutionShifted || r == ResolutionDirect
}

// ParseResolution converts a user-supplied strategy name, defaulting the
// empty string to shifted.
func ParseResolution(s string) (Resolution, error) {
	switch Resolution(s) {
	case "":
		return ResolutionShifted, nil
	case ResolutionShifted:
		return ResolutionShifted, nil
	case ResolutionDirect:
		return ResolutionDirect, nil
	}
	return "", fmt.Errorf("unknown style resolution %q (want shifted or direct)", s)
}

// headingMarker maps a Markdown heading level (1-6) to the numeric marker
// in the template's heading style names under the given strategy.
func headingMarker(level int, res Resolution) int {
	if level < 1 {
		level = 1
	}
	if res == ResolutionDirect {
		return level
	}
	return level - 1
}
