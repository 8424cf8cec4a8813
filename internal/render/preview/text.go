package preview

import (
	"html"
	"strings"

	nethtml "golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// PlainText flattens markup into paragraphs separated by blank lines.
func PlainText(raw string) string {
	return strings.Join(paragraphs(raw), "\n\n")
}

// Lines renders markup as word-wrapped terminal lines for the detail screen.
func Lines(raw string, width int) []string {
	paras := paragraphs(raw)
	out := make([]string, 0, len(paras)*2)
	for i, p := range paras {
		if i > 0 {
			out = append(out, "")
		}
		out = append(out, wrapText(p, width)...)
	}
	return out
}

func paragraphs(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	body := &nethtml.Node{Type: nethtml.ElementNode, Data: "body", DataAtom: atom.Body}
	nodes, err := nethtml.ParseFragment(strings.NewReader(raw), body)
	if err != nil {
		if text := normalizeSpace(html.UnescapeString(reTags.ReplaceAllString(raw, " "))); text != "" {
			return []string{text}
		}
		return nil
	}

	var out []string
	var inline []string
	flush := func() {
		if text := normalizeSpace(strings.Join(inline, "")); text != "" {
			out = append(out, text)
		}
		inline = inline[:0]
	}
	var walk func(n *nethtml.Node)
	walk = func(n *nethtml.Node) {
		switch n.Type {
		case nethtml.TextNode:
			inline = append(inline, n.Data)
		case nethtml.ElementNode:
			if hidden(n.DataAtom) {
				return
			}
			switch n.DataAtom {
			case atom.Br:
				flush()
				return
			}
			block := isBlock(n.DataAtom)
			if block {
				flush()
			}
			if n.DataAtom == atom.Li {
				inline = append(inline, "- ")
			}
			for c := n.FirstChild; c != nil; c = c.NextSibling {
				walk(c)
			}
			if block {
				flush()
			}
		}
	}
	for _, n := range nodes {
		walk(n)
	}
	flush()
	return out
}

func isBlock(a atom.Atom) bool {
	switch a {
	case atom.P, atom.Div, atom.Section, atom.Article, atom.Header, atom.Footer,
		atom.H1, atom.H2, atom.H3, atom.H4, atom.H5, atom.H6,
		atom.Ul, atom.Ol, atom.Li, atom.Blockquote, atom.Pre, atom.Figure,
		atom.Table, atom.Tr, atom.Hr:
		return true
	}
	return false
}

func normalizeSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func wrapText(text string, width int) []string {
	if width < 1 {
		return []string{text}
	}
	var out []string
	line := []rune{}
	for _, word := range strings.Fields(text) {
		w := []rune(word)
		for len(w) > width {
			if len(line) > 0 {
				out = append(out, string(line))
				line = line[:0]
			}
			out = append(out, string(w[:width]))
			w = w[width:]
		}
		switch {
		case len(line) == 0:
			line = append(line, w...)
		case len(line)+1+len(w) <= width:
			line = append(line, ' ')
			line = append(line, w...)
		default:
			out = append(out, string(line))
			line = append(line[:0:0], w...)
		}
	}
	if len(line) > 0 {
		out = append(out, string(line))
	}
	return out
}
