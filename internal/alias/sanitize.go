// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package alias

import (
	"regexp"
	"strings"
)

var (
	nonAlnumRun = regexp.MustCompile(`[^a-z0-9]+`)
	// Pattern matches a non-empty sanitized alias.
	Pattern = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)
)

// Sanitize converts a display name to an alias.
// For example "Build My Program" becomes "build-my-program".
// The result is empty or matches Pattern, and Sanitize(Sanitize(x)) == Sanitize(x).
func Sanitize(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	s = nonAlnumRun.ReplaceAllString(s, "-")

	return strings.Trim(s, "-")
}

// NeedsSanitization reports whether name differs from its alias.
func NeedsSanitization(name string) bool {
	return Sanitize(name) != name
}
