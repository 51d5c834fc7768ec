package docs

import (
	"strings"
)

// Document is a markdown file split into sections keyed by lowercased h2
// headings. Lines before the first heading land under "introduction".
// Key order follows document order so "available keys" listings are stable.
type Document struct {
	keys     []string
	sections map[string]string
}

// SplitSections parses markdown content into a Document. Sections that end
// up empty after trimming are dropped.
func SplitSections(content string) *Document {
	raw := map[string][]string{}
	order := []string{}
	current := "introduction"
	raw[current] = nil
	order = append(order, current)

	for _, line := range strings.Split(content, "\n") {
		if strings.HasPrefix(line, "## ") {
			current = strings.ToLower(strings.TrimSpace(line[3:]))
			if _, seen := raw[current]; !seen {
				order = append(order, current)
			}
			raw[current] = nil
			continue
		}
		raw[current] = append(raw[current], line)
	}

	doc := &Document{sections: make(map[string]string, len(order))}
	for _, key := range order {
		body := strings.TrimSpace(strings.Join(raw[key], "\n"))
		if body == "" {
			continue
		}
		doc.keys = append(doc.keys, key)
		doc.sections[key] = body
	}
	return doc
}

// Keys returns the section keys in document order.
func (d *Document) Keys() []string {
	out := make([]string, len(d.keys))
	copy(out, d.keys)
	return out
}

// Match returns the first section whose key contains query
// (case-insensitive substring match).
func (d *Document) Match(query string) (key, body string, ok bool) {
	normalized := strings.ToLower(strings.TrimSpace(query))
	for _, k := range d.keys {
		if strings.Contains(k, normalized) {
			return k, d.sections[k], true
		}
	}
	return "", "", false
}

// MatchDeep behaves like Match but also accepts sections whose body
// contains the query, so topic lookups can hit prose as well as headings.
func (d *Document) MatchDeep(query string) (key, body string, ok bool) {
	if k, b, found := d.Match(query); found {
		return k, b, true
	}
	normalized := strings.ToLower(strings.TrimSpace(query))
	for _, k := range d.keys {
		if strings.Contains(strings.ToLower(d.sections[k]), normalized) {
			return k, d.sections[k], true
		}
	}
	return "", "", false
}

// truncate limits s to at most n characters (runes, not bytes).
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
