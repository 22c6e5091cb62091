package core

import "strings"

// HavePrefix is prepended to a sanitized dependency name to form the
// synthesized version identifier a target's dependents can compile against.
const HavePrefix = "Have_"

// SanitizeIdentifier maps an arbitrary package name to a valid version
// identifier fragment: non-alphanumeric runs collapse to a single underscore.
func SanitizeIdentifier(name string) string {
	var b strings.Builder
	lastUnderscore := false
	for _, r := range name {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
			lastUnderscore = false
		} else if !lastUnderscore {
			b.WriteByte('_')
			lastUnderscore = true
		}
	}
	return strings.Trim(b.String(), "_")
}

// HaveIdentifier returns the synthesized "Have_<name>" version identifier for
// a dependency named name.
func HaveIdentifier(name string) string {
	return HavePrefix + SanitizeIdentifier(name)
}
