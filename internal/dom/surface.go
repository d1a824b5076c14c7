package dom

import (
	"slices"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"quizkit/internal/view"
)

// Lookup finds an element by id.
func (d *Document) Lookup(id string) (view.Handle, bool) {
	if node := d.byID(id); node != nil {
		return node, true
	}
	return nil, false
}

// Parent returns the parent element of h.
func (d *Document) Parent(h view.Handle) (view.Handle, bool) {
	node := asNode(h)
	if node == nil || node.Parent == nil || node.Parent.Type != html.ElementNode {
		return nil, false
	}
	return node.Parent, true
}

// Mount inserts el at the start of the body or right after ref.
func (d *Document) Mount(anchor view.Anchor, ref view.Handle, el view.Element) view.Handle {
	node := build(el)
	if anchor == view.AnchorAfter {
		if sibling := asNode(ref); sibling != nil && sibling.Parent != nil {
			sibling.Parent.InsertBefore(node, sibling.NextSibling)
			return node
		}
	}
	d.body.InsertBefore(node, d.body.FirstChild)
	return node
}

// Render appends el under parent, or under the body when parent is nil.
func (d *Document) Render(parent view.Handle, el view.Element) view.Handle {
	owner := asNode(parent)
	if owner == nil {
		owner = d.body
	}
	node := build(el)
	owner.AppendChild(node)
	return node
}

// Clear removes every child of h.
func (d *Document) Clear(h view.Handle) {
	node := asNode(h)
	if node == nil {
		return
	}
	for child := node.FirstChild; child != nil; {
		next := child.NextSibling
		d.forget(child)
		node.RemoveChild(child)
		child = next
	}
}

// OnActivate sets or removes the activation callback of h.
func (d *Document) OnActivate(h view.Handle, fn func()) {
	node := asNode(h)
	if node == nil {
		return
	}
	if fn == nil {
		delete(d.activations, node)
		return
	}
	d.activations[node] = fn
}

// SetClass adds or removes a class.
func (d *Document) SetClass(h view.Handle, class string, on bool) {
	node := asNode(h)
	if node == nil {
		return
	}
	classes := strings.Fields(attr(node, "class"))
	has := slices.Contains(classes, class)
	switch {
	case on && !has:
		classes = append(classes, class)
	case !on && has:
		classes = slices.DeleteFunc(classes, func(c string) bool { return c == class })
	default:
		return
	}
	setAttr(node, "class", strings.Join(classes, " "))
}

// SetText replaces the content of h with text.
func (d *Document) SetText(h view.Handle, text string) {
	node := asNode(h)
	if node == nil {
		return
	}
	d.Clear(node)
	node.AppendChild(&html.Node{Type: html.TextNode, Data: text})
}

// SetDisabled toggles the disabled attribute.
func (d *Document) SetDisabled(h view.Handle, disabled bool) {
	node := asNode(h)
	if node == nil {
		return
	}
	if disabled {
		setAttr(node, "disabled", "")
		return
	}
	removeAttr(node, "disabled")
}

// Notify records a notice.
func (d *Document) Notify(message string) {
	d.notices = append(d.notices, message)
	if d.onNotify != nil {
		d.onNotify(message)
	}
}

// Navigate records a navigation request.
func (d *Document) Navigate(href string) {
	d.navigations = append(d.navigations, href)
	if d.onNavigate != nil {
		d.onNavigate(href)
	}
}

// Activate runs the callback of h unless it is disabled.
func (d *Document) Activate(h view.Handle) bool {
	node := asNode(h)
	if node == nil || hasAttr(node, "disabled") {
		return false
	}
	fn, ok := d.activations[node]
	if !ok {
		return false
	}
	fn()
	return true
}

// ActivateID activates the element with id.
func (d *Document) ActivateID(id string) bool {
	node := d.byID(id)
	if node == nil {
		return false
	}
	return d.Activate(node)
}

// forget drops activation callbacks of a detached subtree.
func (d *Document) forget(node *html.Node) {
	walk(node, func(n *html.Node) {
		delete(d.activations, n)
	})
}

func asNode(h view.Handle) *html.Node {
	node, _ := h.(*html.Node)
	return node
}

var fragmentContext = &html.Node{Type: html.ElementNode, Data: "div", DataAtom: atom.Div}

// build converts a view element into detached html nodes.
func build(el view.Element) *html.Node {
	tag := el.Tag
	if tag == "" {
		tag = "div"
	}
	node := &html.Node{Type: html.ElementNode, Data: tag, DataAtom: atom.Lookup([]byte(tag))}
	if el.ID != "" {
		setAttr(node, "id", el.ID)
	}
	if len(el.Classes) > 0 {
		setAttr(node, "class", strings.Join(el.Classes, " "))
	}
	keys := make([]string, 0, len(el.Attrs))
	for key := range el.Attrs {
		keys = append(keys, key)
	}
	slices.Sort(keys)
	for _, key := range keys {
		setAttr(node, key, el.Attrs[key])
	}
	if el.Text != "" {
		node.AppendChild(&html.Node{Type: html.TextNode, Data: el.Text})
	}
	if el.Markup != "" {
		appendMarkup(node, el.Markup)
	}
	for _, child := range el.Children {
		node.AppendChild(build(child))
	}
	return node
}

// appendMarkup parses markup as a fragment and appends it to node. Markup
// that cannot be parsed is kept as text.
func appendMarkup(node *html.Node, markup string) {
	nodes, err := html.ParseFragment(strings.NewReader(markup), fragmentContext)
	if err != nil {
		node.AppendChild(&html.Node{Type: html.TextNode, Data: markup})
		return
	}
	for _, child := range nodes {
		node.AppendChild(child)
	}
}
