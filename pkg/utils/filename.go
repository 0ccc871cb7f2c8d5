package utils

import (
	"regexp"
	"strings"
)

// MaxBaseNameLength bounds the sanitized base name of a logo file.
const MaxBaseNameLength = 50

// DefaultExtension is used when a URL carries no recognizable image extension.
const DefaultExtension = ".png"

var (
	nonAlphanumeric = regexp.MustCompile(`[^a-z0-9]+`)
	repeatedHyphens = regexp.MustCompile(`-+`)
	imageExtension  = regexp.MustCompile(`(?i)\.(jpg|jpeg|png|svg|gif|webp)(\?|\n?$)`)
)

// SanitizeFilename converts a chapter title into the base name the logo
// downloader uses on disk: lowercase, hyphen separated, at most
// MaxBaseNameLength characters. Titles without any [a-z0-9] yield "".
func SanitizeFilename(title string) string {
	name := strings.ToLower(title)
	name = nonAlphanumeric.ReplaceAllString(name, "-")
	name = repeatedHyphens.ReplaceAllString(name, "-")
	name = strings.Trim(name, "-")
	// Only ASCII survives the replacement, so byte length equals rune length.
	// Truncation happens after trimming, which can leave a trailing hyphen at
	// the cut; the downloader names files the same way.
	if len(name) > MaxBaseNameLength {
		name = name[:MaxBaseNameLength]
	}
	return name
}

// ExtensionFromURL extracts the image extension (with its leading dot) from a
// logo URL, looking for the token right before a query string or the end. A
// single trailing newline still counts as the end.
func ExtensionFromURL(url string) string {
	if url == "" {
		return DefaultExtension
	}
	match := imageExtension.FindStringSubmatch(url)
	if match == nil {
		return DefaultExtension
	}
	return "." + strings.ToLower(match[1])
}

// ExpectedFilename is the file a chapter's logo is stored under.
func ExpectedFilename(title, url string) string {
	return SanitizeFilename(title) + ExtensionFromURL(url)
}

// TruncateString shortens s to at most max runes, marking the cut with "...".
func TruncateString(s string, max int) string {
	if max <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	if max <= 3 {
		return string(runes[:max])
	}
	return string(runes[:max-3]) + "..."
}
