package domain

import (
	"slices"
	"strings"
)

// Tags is an ordered, duplicate-free list capped at MaxTags entries.
type Tags []string

// Add appends tag after trimming it. Empty, duplicate or overflowing tags
// leave the list unchanged; the boolean reports whether it was added.
func (t Tags) Add(tag string) (Tags, bool) {
	tag = strings.TrimSpace(tag)
	if tag == "" || t.Contains(tag) || len(t) >= MaxTags {
		return t, false
	}
	return append(t, tag), true
}

// Remove drops every occurrence of tag, preserving the order of the rest.
func (t Tags) Remove(tag string) Tags {
	out := make(Tags, 0, len(t))
	for _, existing := range t {
		if existing != tag {
			out = append(out, existing)
		}
	}
	return out
}

func (t Tags) Contains(tag string) bool {
	return slices.Contains(t, tag)
}

// NormalizeTags builds a Tags value from raw input using the Add rules.
func NormalizeTags(raw []string) Tags {
	out := make(Tags, 0, min(len(raw), MaxTags))
	for _, tag := range raw {
		out, _ = out.Add(tag)
	}
	return out
}
