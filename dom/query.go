package dom

// GetElementByID performs a pre-order depth-first search from root and
// returns the first element whose "id" attribute equals id.
func GetElementByID(root *Node, id string) *Node {
	return find(root, func(n *Node) bool {
		if n.Kind != KindElement {
			return false
		}
		v, ok := n.AttrVal("id")
		return ok && v == id
	})
}

// GetTargetElementNode performs a pre-order depth-first search from root and
// returns the first element of the given ElementKind.
func GetTargetElementNode(root *Node, kind ElementKind) *Node {
	return find(root, func(n *Node) bool {
		return n.Kind == KindElement && n.ElementKind == kind
	})
}

func find(root *Node, match func(*Node) bool) *Node {
	if root == nil {
		return nil
	}
	if match(root) {
		return root
	}
	for c := root.FirstChild(); c != nil; c = c.NextSibling() {
		if found := find(c, match); found != nil {
			return found
		}
	}
	return nil
}

// GetStyleContent returns the text content of the first <style> element
// found in the tree rooted at root, or the empty string if there is none.
func GetStyleContent(root *Node) string {
	return textContentOf(GetTargetElementNode(root, ElementStyle))
}

// GetJSContent returns the text content of the first <script> element found
// in the tree rooted at root, or the empty string if there is none.
func GetJSContent(root *Node) string {
	return textContentOf(GetTargetElementNode(root, ElementScript))
}

// textContentOf returns the Data of el's first child if it is a Text node.
func textContentOf(el *Node) string {
	if el == nil {
		return ""
	}
	child := el.FirstChild()
	if child == nil || child.Kind != KindText {
		return ""
	}
	return child.Data
}

// SetTextContent replaces el's children with a single text node holding
// text. It is the one DOM mutation the scripting runtime is allowed to
// perform once parsing has finished.
func SetTextContent(alloc *Allocator, el *Node, text string) {
	if el == nil {
		return
	}
	child := el.FirstChild()
	if child != nil && child.Kind == KindText && child.NextSibling() == nil {
		child.Data = text
		return
	}
	t := alloc.NewText(text)
	t.SetParent(el)
	el.SetFirstChild(t)
	el.SetLastChild(t)
}
