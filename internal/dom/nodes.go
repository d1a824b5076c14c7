package dom

import (
	"regexp"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

func walk(node *html.Node, fn func(*html.Node)) {
	if node == nil {
		return
	}
	fn(node)
	for child := node.FirstChild; child != nil; child = child.NextSibling {
		walk(child, fn)
	}
}

func findFirst(node *html.Node, match func(*html.Node) bool) *html.Node {
	var found *html.Node
	walk(node, func(n *html.Node) {
		if found == nil && match(n) {
			found = n
		}
	})
	return found
}

func isElement(n *html.Node, a atom.Atom) bool {
	return n.Type == html.ElementNode && n.DataAtom == a
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			return a.Val
		}
	}
	return ""
}

func hasAttr(n *html.Node, key string) bool {
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			return true
		}
	}
	return false
}

func setAttr(n *html.Node, key, value string) {
	for i, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			n.Attr[i].Val = value
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: value})
}

func removeAttr(n *html.Node, key string) {
	kept := n.Attr[:0]
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			continue
		}
		kept = append(kept, a)
	}
	n.Attr = kept
}

func hasClass(n *html.Node, class string) bool {
	for _, c := range strings.Fields(attr(n, "class")) {
		if c == class {
			return true
		}
	}
	return false
}

// hide sets display:none, keeping any other inline style.
func hide(n *html.Node) {
	style := strings.TrimSpace(attr(n, "style"))
	if strings.Contains(strings.ReplaceAll(style, " ", ""), "display:none") {
		return
	}
	if style != "" && !strings.HasSuffix(style, ";") {
		style += ";"
	}
	if style != "" {
		style += " "
	}
	setAttr(n, "style", style+"display: none;")
}

func textContent(n *html.Node) string {
	var b strings.Builder
	walk(n, func(child *html.Node) {
		if child.Type == html.TextNode {
			b.WriteString(child.Data)
		}
	})
	return b.String()
}

// declares reports whether script text defines a global function name.
func declares(script, name string) bool {
	quoted := regexp.QuoteMeta(name)
	pattern := regexp.MustCompile(`\bfunction\s+` + quoted + `\s*\(|(?:^|[^.\w])` + quoted + `\s*=[^=]|\bwindow\.` + quoted + `\s*=[^=]`)
	return pattern.MatchString(script)
}

// PlainText strips markup and collapses whitespace.
func PlainText(markup string) string {
	tokenizer := html.NewTokenizer(strings.NewReader(markup))
	var b strings.Builder
	for {
		switch tokenizer.Next() {
		case html.ErrorToken:
			return strings.Join(strings.Fields(b.String()), " ")
		case html.TextToken:
			b.Write(tokenizer.Text())
		case html.StartTagToken, html.EndTagToken, html.SelfClosingTagToken:
			name, _ := tokenizer.TagName()
			if string(name) == "br" || string(name) == "p" || string(name) == "div" || string(name) == "li" {
				b.WriteByte(' ')
			}
		}
	}
}
