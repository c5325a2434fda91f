package device

import "slices"

// Kind identifies what an Element draws.
type Kind int

const (
	KindContainer Kind = iota
	KindLabel
	KindButton
	KindImage
)

func (k Kind) String() string {
	switch k {
	case KindContainer:
		return "container"
	case KindLabel:
		return "label"
	case KindButton:
		return "button"
	case KindImage:
		return "image"
	default:
		return "unknown"
	}
}

// Size is an element size in backend units (pixels or cells).
type Size struct {
	Width  int32
	Height int32
}

// Element is a node of the retained output tree.
type Element struct {
	ID       string
	Kind     Kind
	Classes  []string
	Text     string
	Src      string
	Size     Size
	Visible  bool
	Opacity  float64
	Parent   *Element
	Children []*Element

	anim *animation
}

func newElement(id string, kind Kind, classes []string) *Element {
	return &Element{
		ID:      id,
		Kind:    kind,
		Classes: slices.Clone(classes),
		Visible: true,
		Opacity: 1,
	}
}

// HasClass reports whether the element carries the class.
func (e *Element) HasClass(class string) bool {
	return slices.Contains(e.Classes, class)
}

// IsAttached reports whether root is e or one of its ancestors.
func (e *Element) IsAttached(root *Element) bool {
	for el := e; el != nil; el = el.Parent {
		if el == root {
			return true
		}
	}
	return false
}

// Animating reports whether a show or hide transition is in progress.
func (e *Element) Animating() bool {
	return e.anim != nil
}

// Find returns the first descendant (or e itself) with the given id.
func (e *Element) Find(id string) *Element {
	if e.ID == id {
		return e
	}
	for _, child := range e.Children {
		if found := child.Find(id); found != nil {
			return found
		}
	}
	return nil
}

// Walk visits e and its descendants depth first. Returning false from fn
// skips the children of that element.
func (e *Element) Walk(fn func(el *Element, depth int) bool) {
	e.walk(fn, 0)
}

func (e *Element) walk(fn func(el *Element, depth int) bool, depth int) {
	if !fn(e, depth) {
		return
	}
	for _, child := range e.Children {
		child.walk(fn, depth+1)
	}
}

func (e *Element) detach() {
	if e.Parent == nil {
		return
	}
	p := e.Parent
	if i := slices.Index(p.Children, e); i >= 0 {
		p.Children = slices.Delete(p.Children, i, i+1)
	}
	e.Parent = nil
}
