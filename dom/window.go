package dom

// Window is the top-level entity that owns the Document for a page. The
// navigator keeps it on each Page; the JS runtime is handed the Document
// node itself, not the Window.
type Window struct {
	document *Node
}

// NewWindow creates a Window owning a fresh, empty Document.
func NewWindow(alloc *Allocator) *Window {
	return &Window{document: alloc.NewDocument()}
}

// Document returns the Window's Document node.
func (w *Window) Document() *Node {
	return w.document
}

// SetDocument replaces the Window's Document, e.g. after a navigation.
func (w *Window) SetDocument(doc *Node) {
	w.document = doc
}
