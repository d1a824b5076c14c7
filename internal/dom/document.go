// Package dom hosts a quiz inside a parsed HTML document.
package dom

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Document is a parsed HTML page. It implements view.Surface, legacy.Page
// and legacy.Callbacks.
type Document struct {
	root *html.Node
	body *html.Node

	activations map[*html.Node]func()
	callbacks   map[string]func()
	notices     []string
	navigations []string
	onNotify    func(string)
	onNavigate  func(string)
}

// Parse reads an HTML document.
func Parse(r io.Reader) (*Document, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}
	doc := &Document{
		root:        root,
		activations: map[*html.Node]func(){},
		callbacks:   map[string]func(){},
	}
	doc.body = findFirst(root, func(n *html.Node) bool { return isElement(n, atom.Body) })
	if doc.body == nil {
		doc.body = &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
		root.AppendChild(doc.body)
	}
	return doc, nil
}

// ParseFile reads an HTML document from disk.
func ParseFile(path string) (*Document, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open page: %w", err)
	}
	defer file.Close()
	return Parse(file)
}

// Write serializes the document.
func (d *Document) Write(w io.Writer) error {
	if err := html.Render(w, d.root); err != nil {
		return fmt.Errorf("render html: %w", err)
	}
	return nil
}

// Blocks returns the text of every script element in document order.
func (d *Document) Blocks() []string {
	var blocks []string
	walk(d.root, func(n *html.Node) {
		if isElement(n, atom.Script) {
			blocks = append(blocks, textContent(n))
		}
	})
	return blocks
}

// DataIslands decodes `<script type="application/json" id="name">` elements
// for the given names. Islands that fail to decode are reported and skipped.
func (d *Document) DataIslands(names []string) (map[string]any, []error) {
	values := map[string]any{}
	var errs []error
	for _, name := range names {
		node := d.byID(name)
		if node == nil || !isElement(node, atom.Script) || attr(node, "type") != "application/json" {
			continue
		}
		var value any
		if err := json.Unmarshal([]byte(textContent(node)), &value); err != nil {
			errs = append(errs, fmt.Errorf("data island %s: %w", name, err))
			continue
		}
		values[name] = value
	}
	return values, errs
}

// Notices returns every notice shown so far.
func (d *Document) Notices() []string {
	return append([]string(nil), d.notices...)
}

// Navigations returns every navigation request so far.
func (d *Document) Navigations() []string {
	return append([]string(nil), d.navigations...)
}

// OnNotify registers a listener for notices.
func (d *Document) OnNotify(fn func(string)) {
	d.onNotify = fn
}

// OnNavigate registers a listener for navigation requests.
func (d *Document) OnNavigate(fn func(string)) {
	d.onNavigate = fn
}

// HideID hides the element with id.
func (d *Document) HideID(id string) bool {
	node := d.byID(id)
	if node == nil {
		return false
	}
	hide(node)
	return true
}

// HideClass hides every element carrying class.
func (d *Document) HideClass(class string) int {
	count := 0
	walk(d.body, func(n *html.Node) {
		if n.Type == html.ElementNode && hasClass(n, class) {
			hide(n)
			count++
		}
	})
	return count
}

// Defined reports whether a callback exists, either defined on the document
// or declared by one of the page scripts.
func (d *Document) Defined(name string) bool {
	if _, ok := d.callbacks[name]; ok {
		return true
	}
	for _, block := range d.Blocks() {
		if declares(block, name) {
			return true
		}
	}
	return false
}

// Define sets a named callback.
func (d *Document) Define(name string, fn func()) {
	d.callbacks[name] = fn
}

// Call runs a named callback defined on the document.
func (d *Document) Call(name string) bool {
	fn, ok := d.callbacks[name]
	if !ok || fn == nil {
		return false
	}
	fn()
	return true
}

// InjectCallbackStubs appends a script giving the serialized page no-op
// versions of noops and, when reload is not empty, a reload fallback for it.
func (d *Document) InjectCallbackStubs(noops []string, reload string) {
	if len(noops) == 0 && reload == "" {
		return
	}
	var script strings.Builder
	if len(noops) > 0 {
		for _, name := range noops {
			fmt.Fprintf(&script, "window.%s = ", name)
		}
		script.WriteString("function () {};")
	}
	if reload != "" {
		fmt.Fprintf(&script, "window.%s = window.%s || function () { location.reload(); };", reload, reload)
	}
	node := &html.Node{Type: html.ElementNode, Data: "script", DataAtom: atom.Script}
	node.AppendChild(&html.Node{Type: html.TextNode, Data: script.String()})
	d.body.AppendChild(node)
}

func (d *Document) byID(id string) *html.Node {
	if id == "" {
		return nil
	}
	return findFirst(d.root, func(n *html.Node) bool {
		return n.Type == html.ElementNode && attr(n, "id") == id
	})
}
