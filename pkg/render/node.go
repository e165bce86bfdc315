// Package render is a headless component renderer. It gives the
// compatibility scenarios the pieces a UI test needs (components with
// hooks, an element tree, simulated user interaction and retrying
// assertions) without a real display. Everything runs on the calling
// goroutine; scheduling is cooperative through the host's task queue.
package render

// Node is one element of rendered output. A nil Node renders nothing,
// which is how conditional sections disappear.
type Node interface {
	// NodeID returns the identifier interaction and assertion helpers
	// look elements up by. Empty for anonymous containers.
	NodeID() string

	// ChildNodes returns nested nodes, nil for leaves.
	ChildNodes() []Node
}

// TextNode is a rendered piece of text.
type TextNode struct {
	ID    string
	Value string
}

// NodeID implements Node.
func (n *TextNode) NodeID() string { return n.ID }

// ChildNodes implements Node.
func (n *TextNode) ChildNodes() []Node { return nil }

// InputNode is a text input. OnInput receives the full new value, the way
// a change event carries the target's current content.
type InputNode struct {
	ID      string
	Value   string
	OnInput func(value string)
}

// NodeID implements Node.
func (n *InputNode) NodeID() string { return n.ID }

// ChildNodes implements Node.
func (n *InputNode) ChildNodes() []Node { return nil }

// ButtonNode is a clickable element.
type ButtonNode struct {
	ID      string
	Label   string
	OnClick func()
}

// NodeID implements Node.
func (n *ButtonNode) NodeID() string { return n.ID }

// ChildNodes implements Node.
func (n *ButtonNode) ChildNodes() []Node { return nil }

// SelectNode is a single-choice selector.
type SelectNode struct {
	ID       string
	Value    string
	Options  []string
	OnChange func(value string)
}

// NodeID implements Node.
func (n *SelectNode) NodeID() string { return n.ID }

// ChildNodes implements Node.
func (n *SelectNode) ChildNodes() []Node { return nil }

// BoxNode groups child nodes.
type BoxNode struct {
	ID       string
	Children []Node
}

// NodeID implements Node.
func (n *BoxNode) NodeID() string { return n.ID }

// ChildNodes implements Node.
func (n *BoxNode) ChildNodes() []Node { return n.Children }

// Text builds a TextNode.
func Text(id, value string) Node {
	return &TextNode{ID: id, Value: value}
}

// Input builds an InputNode.
func Input(id, value string, onInput func(string)) Node {
	return &InputNode{ID: id, Value: value, OnInput: onInput}
}

// Button builds a ButtonNode.
func Button(id, label string, onClick func()) Node {
	return &ButtonNode{ID: id, Label: label, OnClick: onClick}
}

// Select builds a SelectNode.
func Select(id, value string, options []string, onChange func(string)) Node {
	return &SelectNode{ID: id, Value: value, Options: options, OnChange: onChange}
}

// Box builds a BoxNode around the given children. Nil children are kept;
// they simply render nothing.
func Box(id string, children ...Node) Node {
	return &BoxNode{ID: id, Children: children}
}

// findNode walks the tree depth-first and returns the first node carrying
// the requested id, or nil.
func findNode(root Node, id string) Node {
	if root == nil {
		return nil
	}

	if root.NodeID() == id {
		return root
	}

	for _, child := range root.ChildNodes() {
		if found := findNode(child, id); found != nil {
			return found
		}
	}

	return nil
}
