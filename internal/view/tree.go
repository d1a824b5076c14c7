package view

import "slices"

// Node is one element of a Tree.
type Node struct {
	Tag      string
	ID       string
	Attrs    map[string]string
	Text     string
	Markup   string
	Disabled bool
	Parent   *Node
	Children []*Node

	classes  []string
	activate func()
}

// HasClass reports whether the node carries class.
func (n *Node) HasClass(class string) bool {
	return slices.Contains(n.classes, class)
}

// Classes returns a copy of the node classes.
func (n *Node) Classes() []string {
	return append([]string(nil), n.classes...)
}

// Activatable reports whether activating the node would run a callback.
func (n *Node) Activatable() bool {
	return n.activate != nil && !n.Disabled
}

// Tree is an in-memory Surface. Terminal hosts render it and tests inspect it.
type Tree struct {
	Root *Node

	notices     []string
	navigations []string
	onNotify    func(string)
	onNavigate  func(string)
}

// NewTree returns an empty tree with a body root.
func NewTree() *Tree {
	return &Tree{Root: &Node{Tag: "body"}}
}

// OnNotify registers a listener for notices.
func (t *Tree) OnNotify(fn func(string)) {
	t.onNotify = fn
}

// OnNavigate registers a listener for navigation requests.
func (t *Tree) OnNavigate(fn func(string)) {
	t.onNavigate = fn
}

// Notices returns every notice shown so far.
func (t *Tree) Notices() []string {
	return append([]string(nil), t.notices...)
}

// Navigations returns every navigation target requested so far.
func (t *Tree) Navigations() []string {
	return append([]string(nil), t.navigations...)
}

// Lookup finds a node by id.
func (t *Tree) Lookup(id string) (Handle, bool) {
	if node := t.find(id); node != nil {
		return node, true
	}
	return nil, false
}

// Parent returns the parent of h.
func (t *Tree) Parent(h Handle) (Handle, bool) {
	node, ok := h.(*Node)
	if !ok || node == nil || node.Parent == nil {
		return nil, false
	}
	return node.Parent, true
}

// Node returns the node with id, or nil.
func (t *Tree) Node(id string) *Node {
	return t.find(id)
}

// Mount places el at the body start or after ref.
func (t *Tree) Mount(anchor Anchor, ref Handle, el Element) Handle {
	node := build(el)
	if anchor == AnchorAfter {
		if sibling, ok := ref.(*Node); ok && sibling != nil && sibling.Parent != nil {
			parent := sibling.Parent
			index := slices.Index(parent.Children, sibling)
			node.Parent = parent
			parent.Children = slices.Insert(parent.Children, index+1, node)
			return node
		}
	}
	node.Parent = t.Root
	t.Root.Children = slices.Insert(t.Root.Children, 0, node)
	return node
}

// Render appends el under parent.
func (t *Tree) Render(parent Handle, el Element) Handle {
	owner, ok := parent.(*Node)
	if !ok || owner == nil {
		owner = t.Root
	}
	node := build(el)
	node.Parent = owner
	owner.Children = append(owner.Children, node)
	return node
}

// Clear drops every child of h.
func (t *Tree) Clear(h Handle) {
	if node, ok := h.(*Node); ok && node != nil {
		for _, child := range node.Children {
			child.Parent = nil
		}
		node.Children = nil
	}
}

// OnActivate sets or removes the activation callback.
func (t *Tree) OnActivate(h Handle, fn func()) {
	if node, ok := h.(*Node); ok && node != nil {
		node.activate = fn
	}
}

// SetClass adds or removes a class.
func (t *Tree) SetClass(h Handle, class string, on bool) {
	node, ok := h.(*Node)
	if !ok || node == nil {
		return
	}
	has := node.HasClass(class)
	switch {
	case on && !has:
		node.classes = append(node.classes, class)
	case !on && has:
		node.classes = slices.DeleteFunc(node.classes, func(c string) bool { return c == class })
	}
}

// SetText replaces the node text.
func (t *Tree) SetText(h Handle, text string) {
	if node, ok := h.(*Node); ok && node != nil {
		node.Text = text
		node.Markup = ""
	}
}

// SetDisabled toggles the disabled flag.
func (t *Tree) SetDisabled(h Handle, disabled bool) {
	if node, ok := h.(*Node); ok && node != nil {
		node.Disabled = disabled
	}
}

// Notify records a notice.
func (t *Tree) Notify(message string) {
	t.notices = append(t.notices, message)
	if t.onNotify != nil {
		t.onNotify(message)
	}
}

// Navigate records a navigation request.
func (t *Tree) Navigate(href string) {
	t.navigations = append(t.navigations, href)
	if t.onNavigate != nil {
		t.onNavigate(href)
	}
}

// Activate runs the callback of h unless it is disabled or has none.
func (t *Tree) Activate(h Handle) bool {
	node, ok := h.(*Node)
	if !ok || node == nil || !node.Activatable() {
		return false
	}
	node.activate()
	return true
}

// ActivateID activates the node with id.
func (t *Tree) ActivateID(id string) bool {
	node := t.find(id)
	if node == nil {
		return false
	}
	return t.Activate(node)
}

// Walk visits nodes depth first, skipping the root.
func (t *Tree) Walk(fn func(node *Node, depth int)) {
	var visit func(node *Node, depth int)
	visit = func(node *Node, depth int) {
		for _, child := range node.Children {
			fn(child, depth)
			visit(child, depth+1)
		}
	}
	visit(t.Root, 0)
}

func (t *Tree) find(id string) *Node {
	if id == "" {
		return nil
	}
	var found *Node
	t.Walk(func(node *Node, _ int) {
		if found == nil && node.ID == id {
			found = node
		}
	})
	return found
}

func build(el Element) *Node {
	node := &Node{
		Tag:     el.Tag,
		ID:      el.ID,
		Text:    el.Text,
		Markup:  el.Markup,
		classes: append([]string(nil), el.Classes...),
	}
	if len(el.Attrs) > 0 {
		node.Attrs = make(map[string]string, len(el.Attrs))
		for key, value := range el.Attrs {
			node.Attrs[key] = value
		}
	}
	for _, child := range el.Children {
		childNode := build(child)
		childNode.Parent = node
		node.Children = append(node.Children, childNode)
	}
	return node
}
