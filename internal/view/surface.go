// Package view maps quiz entries onto a presentation surface.
//
// A Surface is any host able to show an element tree and report activations:
// an HTML document, a terminal screen or a test double. The builder never
// holds answer state; it forwards activations to the caller.
package view

// Handle is an opaque reference to a rendered element, owned by the Surface
// that issued it.
type Handle any

// Anchor tells Mount where to place a new top-level element.
type Anchor int

const (
	// AnchorBodyStart inserts at the start of the host body.
	AnchorBodyStart Anchor = iota
	// AnchorAfter inserts right after the reference element.
	AnchorAfter
)

// Element is a presentation-neutral element tree.
type Element struct {
	Tag     string
	ID      string
	Classes []string
	Attrs   map[string]string
	// Text is plain text and is escaped by the surface.
	Text string
	// Markup is trusted rich text rendered as-is by surfaces that support it.
	Markup   string
	Children []Element
}

// Surface is the host the quiz renders into.
type Surface interface {
	// Lookup returns an existing element by id.
	Lookup(id string) (Handle, bool)
	// Parent returns the element containing h.
	Parent(h Handle) (Handle, bool)
	// Mount places el at anchor, relative to ref for AnchorAfter.
	Mount(anchor Anchor, ref Handle, el Element) Handle
	// Render appends el as the last child of parent.
	Render(parent Handle, el Element) Handle
	// Clear removes every child of h.
	Clear(h Handle)
	// OnActivate sets the activation callback of h; nil removes it.
	OnActivate(h Handle, fn func())
	SetClass(h Handle, class string, on bool)
	SetText(h Handle, text string)
	SetDisabled(h Handle, disabled bool)
	// Notify shows a blocking notice to the user.
	Notify(message string)
	// Navigate leaves the quiz for href.
	Navigate(href string)
}
