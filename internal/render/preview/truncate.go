package preview

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"
	"unicode"

	nethtml "golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

const (
	// DefaultLimit is the visible-character budget used by the feed list.
	DefaultLimit = 100

	Placeholder = "No content available"
	ellipsis    = "…"
)

var reTags = regexp.MustCompile(`<[^>]+>`)

// Preview is Truncate for an optional value. A nil or empty input yields the
// placeholder.
func Preview(raw *string, limit int) string {
	if raw == nil {
		return Placeholder
	}
	return Truncate(*raw, limit)
}

// Truncate cuts html to at most limit visible characters, keeping the markup
// balanced and ending on a whole word where one fits. An ellipsis is appended
// only when visible text was dropped. Any failure falls back to a stripped,
// hard-cut rendition.
func Truncate(raw string, limit int) (out string) {
	if raw == "" {
		return Placeholder
	}
	if limit <= 0 {
		limit = DefaultLimit
	}
	defer func() {
		if r := recover(); r != nil {
			out = fallback(raw, limit)
		}
	}()
	truncated, err := truncateMarkup(raw, limit)
	if err != nil {
		return fallback(raw, limit)
	}
	return truncated
}

func truncateMarkup(raw string, limit int) (string, error) {
	body := &nethtml.Node{Type: nethtml.ElementNode, Data: "body", DataAtom: atom.Body}
	nodes, err := nethtml.ParseFragment(strings.NewReader(raw), body)
	if err != nil {
		return "", fmt.Errorf("parse fragment: %w", err)
	}

	var full []rune
	for _, n := range nodes {
		full = appendText(full, n)
	}

	keep := len(full)
	if keep > limit {
		keep = wordBoundary(full, limit)
	}

	var buf bytes.Buffer
	budget := keep
	for _, n := range nodes {
		pruned := prune(n, &budget)
		if pruned == nil {
			continue
		}
		if err := nethtml.Render(&buf, pruned); err != nil {
			return "", fmt.Errorf("render fragment: %w", err)
		}
	}

	if keep < len(full) {
		buf.WriteString(ellipsis)
	}
	return buf.String(), nil
}

// wordBoundary returns how many runes of text to keep so the cut lands after
// a whole word. When no whole word fits, text is hard cut at limit.
func wordBoundary(text []rune, limit int) int {
	cut := limit
	if !unicode.IsSpace(text[cut]) {
		for cut > 0 && !unicode.IsSpace(text[cut-1]) {
			cut--
		}
	}
	for cut > 0 && unicode.IsSpace(text[cut-1]) {
		cut--
	}
	if cut == 0 {
		return limit
	}
	return cut
}

// hidden reports elements whose text is never shown.
func hidden(a atom.Atom) bool {
	switch a {
	case atom.Script, atom.Style, atom.Noscript:
		return true
	}
	return false
}

func appendText(dst []rune, n *nethtml.Node) []rune {
	switch n.Type {
	case nethtml.TextNode:
		return append(dst, []rune(n.Data)...)
	case nethtml.ElementNode:
		if hidden(n.DataAtom) {
			return dst
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			dst = appendText(dst, c)
		}
	}
	return dst
}

// prune copies n keeping at most *budget runes of text. Elements reached
// after the budget is spent are dropped.
func prune(n *nethtml.Node, budget *int) *nethtml.Node {
	switch n.Type {
	case nethtml.TextNode:
		if *budget <= 0 {
			return nil
		}
		text := []rune(n.Data)
		if len(text) > *budget {
			text = text[:*budget]
		}
		*budget -= len(text)
		return &nethtml.Node{Type: nethtml.TextNode, Data: string(text)}
	case nethtml.ElementNode:
		if *budget <= 0 || hidden(n.DataAtom) {
			return nil
		}
		out := &nethtml.Node{
			Type:      nethtml.ElementNode,
			Data:      n.Data,
			DataAtom:  n.DataAtom,
			Namespace: n.Namespace,
			Attr:      append([]nethtml.Attribute(nil), n.Attr...),
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if child := prune(c, budget); child != nil {
				out.AppendChild(child)
			}
		}
		return out
	default:
		return nil
	}
}

func fallback(raw string, limit int) string {
	plain := []rune(reTags.ReplaceAllString(raw, ""))
	if len(plain) > limit {
		plain = plain[:limit]
	}
	return string(plain) + "..."
}
