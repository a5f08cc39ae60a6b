package dom

// nodeChunkSize is the number of Nodes handed out per backing array. Chosen
// to keep a typical small page's worth of elements and text nodes inside a
// single chunk.
const nodeChunkSize = 128

// Allocator hands out *Node values from fixed-size backing arrays instead of
// allocating one node at a time. This is an arena-and-indices strategy: nodes
// are plain pointers into arena-owned slices, so a node can be referenced
// from the tree-builder's stack, from its parent, and from its siblings
// simultaneously without any reference counting.
//
// Adapted from the teacher's per-type chunked allocator (dom/allocator.go in
// the retrieved JustGoHTML repo); this version hands out a single tagged
// Node type instead of one chunk pool per concrete node type, since
// Document/Element/Text are modeled as one closed sum rather than separate
// Go types.
type Allocator struct {
	nodes []Node
	at    int
}

// NewAllocator creates a new node arena.
func NewAllocator() *Allocator {
	return &Allocator{}
}

func (a *Allocator) next() *Node {
	if a.at >= len(a.nodes) {
		a.nodes = make([]Node, nodeChunkSize)
		a.at = 0
	}
	n := &a.nodes[a.at]
	a.at++
	return n
}

// NewDocument allocates a fresh Document node.
func (a *Allocator) NewDocument() *Node {
	n := a.next()
	*n = Node{Kind: KindDocument}
	return n
}

// NewElement allocates a fresh Element node for the given lowercase tag name.
func (a *Allocator) NewElement(tag string) *Node {
	n := a.next()
	*n = Node{Kind: KindElement, Tag: tag, ElementKind: ElementKindOf(tag)}
	return n
}

// NewElementWithAttrs allocates a fresh Element node carrying attributes.
func (a *Allocator) NewElementWithAttrs(tag string, attrs []Attribute) *Node {
	n := a.NewElement(tag)
	n.Attrs = attrs
	return n
}

// NewText allocates a fresh Text node.
func (a *Allocator) NewText(data string) *Node {
	n := a.next()
	*n = Node{Kind: KindText, Data: data}
	return n
}
