package submission

import "strings"

// Tags keeps insertion order and rejects exact duplicates after trimming.
type Tags []string

// Add reports whether tag was appended.
func (t *Tags) Add(tag string) bool {
	tag = strings.TrimSpace(tag)
	if tag == "" {
		return false
	}
	for _, existing := range *t {
		if existing == tag {
			return false
		}
	}
	*t = append(*t, tag)
	return true
}

func (t *Tags) Remove(tag string) {
	out := (*t)[:0:0]
	for _, existing := range *t {
		if existing != tag {
			out = append(out, existing)
		}
	}
	*t = out
}

// Normalized returns trimmed, de-duplicated tags for the wire. Never nil.
func (t Tags) Normalized() []string {
	out := make([]string, 0, len(t))
	seen := make(map[string]struct{}, len(t))
	for _, tag := range t {
		tag = strings.TrimSpace(tag)
		if tag == "" {
			continue
		}
		if _, ok := seen[tag]; ok {
			continue
		}
		seen[tag] = struct{}{}
		out = append(out, tag)
	}
	return out
}
