package treebuilder

// InsertionMode names one state of the tree-construction state machine.
type InsertionMode int

const (
	Initial InsertionMode = iota
	BeforeHTML
	BeforeHead
	InHead
	AfterHead
	InBody
	Text
	AfterBody
	AfterAfterBody
)

// String returns the name of the insertion mode, for debugging.
func (m InsertionMode) String() string {
	names := [...]string{
		"initial",
		"before html",
		"before head",
		"in head",
		"after head",
		"in body",
		"text",
		"after body",
		"after after body",
	}
	if m >= 0 && int(m) < len(names) {
		return names[m]
	}
	return "unknown"
}
