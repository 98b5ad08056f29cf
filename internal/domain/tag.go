package domain

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf16"
)

// Default tag names. They always exist and never enter the custom registry.
const (
	TagWork     = "work"
	TagPersonal = "personal"
	TagOthers   = "others"
)

// MaxTagLength is the longest accepted tag name
const MaxTagLength = 20

var tagNamePattern = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

// DefaultTags returns the built-in tags in display order
func DefaultTags() []string {
	return []string{TagWork, TagPersonal, TagOthers}
}

// IsDefaultTag reports whether name is one of the built-in tags, ignoring case
func IsDefaultTag(name string) bool {
	switch NormalizeTag(name) {
	case TagWork, TagPersonal, TagOthers:
		return true
	default:
		return false
	}
}

// NormalizeTag returns the canonical stored form of a tag name
func NormalizeTag(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// TagValidation is the outcome of validating a tag name
type TagValidation struct {
	Valid bool
	Error string
}

// ValidateTagName checks a tag name against the naming rules
func ValidateTagName(name string) TagValidation {
	if strings.TrimSpace(name) == "" {
		return TagValidation{Error: "Tag name cannot be empty"}
	}
	if strings.IndexFunc(name, unicode.IsSpace) >= 0 {
		return TagValidation{Error: "Tag name cannot contain spaces"}
	}
	if !tagNamePattern.MatchString(name) {
		return TagValidation{Error: "Tag name can only contain letters, numbers, hyphens (-), and underscores (_)"}
	}
	if len(name) > MaxTagLength {
		return TagValidation{Error: "Tag name cannot be longer than 20 characters"}
	}
	return TagValidation{Valid: true}
}

// NormalizeTags lower-cases tags, drops invalid names and removes duplicates
// while keeping first-seen order.
func NormalizeTags(tags []string) []string {
	seen := make(map[string]bool, len(tags))
	result := make([]string, 0, len(tags))
	for _, tag := range tags {
		name := NormalizeTag(tag)
		if !ValidateTagName(name).Valid || seen[name] {
			continue
		}
		seen[name] = true
		result = append(result, name)
	}
	return result
}

// ResolveTags normalizes tags and falls back to the "others" tag when none remain
func ResolveTags(tags []string) []string {
	resolved := NormalizeTags(tags)
	if len(resolved) == 0 {
		return []string{TagOthers}
	}
	return resolved
}

// TagColor is the chip color triple for a tag
type TagColor struct {
	Bg     string
	Text   string
	Border string
}

// TagPalette is the fixed set of colors custom tags hash into
var TagPalette = []TagColor{
	{Bg: "#dbeafe", Text: "#2563eb", Border: "#bfdbfe"}, // blue
	{Bg: "#fef3c7", Text: "#d97706", Border: "#fcd34d"}, // orange
	{Bg: "#dcfce7", Text: "#16a34a", Border: "#bbf7d0"}, // green
	{Bg: "#fce7f3", Text: "#ec4899", Border: "#f9a8d4"}, // pink
	{Bg: "#e0e7ff", Text: "#7c3aed", Border: "#c7d2fe"}, // purple
	{Bg: "#fef2f2", Text: "#dc2626", Border: "#fecaca"}, // red
	{Bg: "#f0fdf4", Text: "#059669", Border: "#a7f3d0"}, // emerald
	{Bg: "#fef9c3", Text: "#ca8a04", Border: "#fde047"}, // yellow
	{Bg: "#f1f5f9", Text: "#475569", Border: "#cbd5e1"}, // gray
	{Bg: "#f0f9ff", Text: "#0284c7", Border: "#7dd3fc"}, // sky
}

var defaultTagColors = map[string]TagColor{
	TagWork:     TagPalette[0],
	TagPersonal: TagPalette[2],
	TagOthers:   TagPalette[8],
}

// TagColorFor returns the color for a tag. Built-in tags have fixed colors,
// every other name hashes into TagPalette.
func TagColorFor(name string) TagColor {
	normalized := NormalizeTag(name)
	if c, ok := defaultTagColors[normalized]; ok {
		return c
	}
	return TagPalette[TagHash(normalized)%len(TagPalette)]
}

// TagHash is the non-negative palette hash of a lower-cased tag name. It runs
// h = h*31 + c over UTF-16 code units with 32-bit wraparound so colors stay
// stable for data created by earlier clients.
func TagHash(name string) int {
	var h int32
	for _, c := range utf16.Encode([]rune(strings.ToLower(name))) {
		h = (h << 5) - h + int32(c)
	}
	abs := int64(h)
	if abs < 0 {
		abs = -abs
	}
	return int(abs)
}
