// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package slug provides URL-friendly slug generation from arbitrary strings.
// Slugs are Unicode-aware: letters and digits of any script survive, so
// non-Latin titles produce readable slugs instead of empty strings.
package slug

import (
	"regexp"
	"strings"
)

var (
	// nonSlugChars matches anything that isn't a letter, digit, space, or hyphen.
	nonSlugChars = regexp.MustCompile(`[^\p{L}\p{N}\s-]`)
	// whitespace matches runs of whitespace to be replaced with a single hyphen.
	whitespace = regexp.MustCompile(`\s+`)
	// multipleHyphens collapses consecutive hyphens into one.
	multipleHyphens = regexp.MustCompile(`-{2,}`)
)

// Generate creates a URL-friendly slug from the given string.
// Example: "Hello, World! 2026" → "hello-world-2026"
func Generate(s string) string {
	result := strings.ToLower(strings.TrimSpace(s))
	result = nonSlugChars.ReplaceAllString(result, "")
	result = whitespace.ReplaceAllString(result, "-")
	result = multipleHyphens.ReplaceAllString(result, "-")
	result = strings.Trim(result, "-")
	return result
}
