// Package version parses loosely formatted version strings into integer
// tuples for ordering comparisons.
//
// Toolchain installers report versions in formats like "16.8.30907.101",
// "10.0.19041.0" or "1.0.5rc" that neither semver parsers nor strconv
// accept whole. [Parse] extracts the numeric spine of such strings.
package version

import (
	"regexp"
	"strconv"
	"strings"
)

// Tuple is an ordered sequence of version components. An empty Tuple means
// the source string contained no leading numeric component.
type Tuple []int

var digitsRE = regexp.MustCompile(`\d+`)

// Parse converts a version string into a Tuple.
//
// The string is split on periods. A purely numeric member contributes its
// value. A member with embedded digits ("5rc", "30907beta") contributes the
// first run of digits. The first member without any digits terminates the
// parse, so "1.0.final.2" yields (1, 0).
func Parse(s string) Tuple {
	if s == "" {
		return nil
	}

	var result Tuple
	for _, item := range strings.Split(s, ".") {
		n, err := strconv.Atoi(item)
		if err != nil {
			found := digitsRE.FindString(item)
			if found == "" {
				// Not a number, stop here.
				break
			}
			n, _ = strconv.Atoi(found)
		}
		result = append(result, n)
	}
	return result
}

// Compare orders two tuples component-wise. Missing components compare as
// less than present ones, so (16, 8) < (16, 8, 0). It returns -1, 0 or 1.
func (t Tuple) Compare(other Tuple) int {
	for i := 0; i < len(t) && i < len(other); i++ {
		switch {
		case t[i] < other[i]:
			return -1
		case t[i] > other[i]:
			return 1
		}
	}
	switch {
	case len(t) < len(other):
		return -1
	case len(t) > len(other):
		return 1
	}
	return 0
}

// Less reports whether t orders before other.
func (t Tuple) Less(other Tuple) bool {
	return t.Compare(other) < 0
}

// String renders the tuple back into dotted form, e.g. "16.8.30907.101".
func (t Tuple) String() string {
	if len(t) == 0 {
		return ""
	}
	parts := make([]string, len(t))
	for i, n := range t {
		parts[i] = strconv.Itoa(n)
	}
	return strings.Join(parts, ".")
}

// Major returns the first component, or 0 for an empty tuple.
func (t Tuple) Major() int {
	if len(t) == 0 {
		return 0
	}
	return t[0]
}
