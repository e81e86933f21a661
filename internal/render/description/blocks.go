package description

import (
	"fmt"
	"html"
	"strings"

	"github.com/charmbracelet/lipgloss"
	nethtml "golang.org/x/net/html"
)

var (
	headingStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#b4befe"))
	strongStyle  = lipgloss.NewStyle().Bold(true)
	quotePrefix  = lipgloss.NewStyle().Foreground(lipgloss.Color("#7f849c")).Render("│ ")
	quoteText    = lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("#a6adc8"))
)

func (r renderer) renderNodes(nodes []*nethtml.Node, listDepth int) []string {
	lines := make([]string, 0, len(nodes)*2)
	inlineParts := make([]string, 0, 4)
	appendBlock := func(block []string) {
		if len(block) == 0 {
			return
		}
		if len(lines) > 0 && lines[len(lines)-1] != "" {
			lines = append(lines, "")
		}
		lines = append(lines, block...)
	}
	flushInline := func() {
		text := normalizeInlineText(strings.Join(inlineParts, " "))
		inlineParts = inlineParts[:0]
		if text != "" {
			appendBlock(wrapText(text, r.width))
		}
	}

	for _, node := range nodes {
		switch node.Type {
		case nethtml.TextNode:
			inlineParts = append(inlineParts, node.Data)
		case nethtml.ElementNode:
			if isBlockElement(node.Data) {
				flushInline()
				appendBlock(r.renderBlock(node, listDepth))
				continue
			}
			inlineParts = append(inlineParts, r.renderInlineNode(node))
		}
	}
	flushInline()
	return trimBlankLines(lines)
}

func (r renderer) renderBlock(node *nethtml.Node, listDepth int) []string {
	switch tag := strings.ToLower(node.Data); tag {
	case "script", "style", "noscript", "img":
		return nil
	case "h1", "h2", "h3", "h4", "h5", "h6":
		text := normalizeInlineText(r.renderInlineChildren(node))
		out := wrapText(text, r.width)
		for i := range out {
			out[i] = headingStyle.Render(out[i])
		}
		return out
	case "ul":
		return r.renderList(node, false, listDepth+1)
	case "ol":
		return r.renderList(node, true, listDepth+1)
	case "li":
		return r.renderListItem(node, listDepth, "- ")
	case "blockquote":
		inner := r.renderNodes(elementChildren(node), listDepth)
		out := make([]string, 0, len(inner))
		for _, line := range inner {
			if strings.TrimSpace(line) == "" {
				out = append(out, "")
				continue
			}
			out = append(out, quotePrefix+quoteText.Render(line))
		}
		return out
	case "pre":
		raw := strings.Split(strings.ReplaceAll(collectRawText(node), "\r\n", "\n"), "\n")
		out := make([]string, 0, len(raw))
		for _, line := range raw {
			out = append(out, "    "+strings.TrimRight(line, " \t"))
		}
		return trimBlankLines(out)
	case "hr":
		return []string{strings.Repeat("-", min(max(r.width, 3), 24))}
	default:
		if hasBlockChild(node) {
			return r.renderNodes(elementChildren(node), listDepth)
		}
		return wrapText(normalizeInlineText(r.renderInlineChildren(node)), r.width)
	}
}

func (r renderer) renderList(node *nethtml.Node, ordered bool, listDepth int) []string {
	lines := make([]string, 0, 16)
	index := 0
	for child := node.FirstChild; child != nil; child = child.NextSibling {
		if child.Type != nethtml.ElementNode || !strings.EqualFold(child.Data, "li") {
			continue
		}
		index++
		marker := "• "
		if ordered {
			marker = fmt.Sprintf("%d. ", index)
		} else if listDepth > 1 {
			marker = "◦ "
		}
		lines = append(lines, r.renderListItem(child, listDepth, marker)...)
	}
	return lines
}

func (r renderer) renderListItem(node *nethtml.Node, listDepth int, marker string) []string {
	indent := strings.Repeat("  ", max(0, listDepth-1))
	first := indent + marker
	rest := indent + strings.Repeat(" ", visibleLen(marker))

	parts := make([]string, 0, 4)
	var nested []string
	for child := node.FirstChild; child != nil; child = child.NextSibling {
		if child.Type == nethtml.ElementNode {
			switch strings.ToLower(child.Data) {
			case "ul":
				nested = append(nested, r.renderList(child, false, listDepth+1)...)
				continue
			case "ol":
				nested = append(nested, r.renderList(child, true, listDepth+1)...)
				continue
			}
		}
		parts = append(parts, r.renderInlineNode(child))
	}

	lines := make([]string, 0, 4+len(nested))
	text := normalizeInlineText(strings.Join(parts, " "))
	for i, line := range wrapText(text, max(1, r.width-visibleLen(first))) {
		if line == "" {
			continue
		}
		if i == 0 {
			lines = append(lines, first+line)
		} else {
			lines = append(lines, rest+line)
		}
	}
	return append(lines, nested...)
}

func (r renderer) renderInlineChildren(node *nethtml.Node) string {
	parts := make([]string, 0, 4)
	for child := node.FirstChild; child != nil; child = child.NextSibling {
		parts = append(parts, r.renderInlineNode(child))
	}
	return strings.Join(parts, " ")
}

func (r renderer) renderInlineNode(node *nethtml.Node) string {
	switch node.Type {
	case nethtml.TextNode:
		return node.Data
	case nethtml.ElementNode:
		switch strings.ToLower(node.Data) {
		case "script", "style", "noscript", "img":
			return ""
		case "br":
			return "\n"
		case "strong", "b":
			text := normalizeInlineText(r.renderInlineChildren(node))
			if text == "" {
				return ""
			}
			return strongStyle.Render(text)
		case "a":
			text := normalizeInlineText(r.renderInlineChildren(node))
			href := nodeAttr(node, "href")
			switch {
			case href == "":
				return text
			case text == "", strings.EqualFold(text, href):
				return href
			default:
				return text + " (" + href + ")"
			}
		default:
			return r.renderInlineChildren(node)
		}
	}
	return ""
}

func normalizeInlineText(s string) string {
	s = html.UnescapeString(s)
	parts := strings.Split(s, "\n")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.Join(strings.Fields(part), " ")
		if part != "" {
			out = append(out, part)
		}
	}
	return strings.NewReplacer(
		" .", ".",
		" ,", ",",
		" ;", ";",
		" :", ":",
		" !", "!",
		" ?", "?",
		" )", ")",
		"( ", "(",
	).Replace(strings.Join(out, "\n"))
}

func isBlockElement(tag string) bool {
	switch strings.ToLower(tag) {
	case "h1", "h2", "h3", "h4", "h5", "h6",
		"p", "div", "section", "article", "header", "footer",
		"blockquote", "ul", "ol", "li", "pre", "hr", "table", "tr", "img":
		return true
	}
	return false
}

func hasBlockChild(node *nethtml.Node) bool {
	for child := node.FirstChild; child != nil; child = child.NextSibling {
		if child.Type == nethtml.ElementNode && isBlockElement(child.Data) {
			return true
		}
	}
	return false
}
