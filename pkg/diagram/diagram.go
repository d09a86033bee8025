// Package diagram defines the canonical in-memory model shared by all
// conversion stages.
//
// A Diagram is produced by a dialect parser, consumed by the matching layout
// engine and by the documentation generator, and discarded after
// serialization. The model is independent of both the input notation and the
// output markup.
//
// # Core Types
//
//   - [Diagram]: ordered node collection plus relationship sequence
//   - [Node]: unified node with dialect-specific fields
//   - [Relationship]: directed connection with a dialect-specific kind
//   - [Geometry], [Point]: positions produced by layout, never stored here
//
// # Invariants
//
// Node ids are unique per diagram; insertion order is preserved.
// Relationship order is significant - it drives message and commit
// chronology. A Diagram is never mutated once layout begins.
//
// # Concurrency
//
// A Diagram is built single-threaded by a parser and read-only afterwards.
// Distinct conversions never share a Diagram.
package diagram

// Diagram is the canonical model for a single parsed diagram.
type Diagram struct {
	Dialect Dialect

	// Direction is the flow-graph orientation (TD, TB, LR, RL, BT).
	Direction string

	// Relationships in declaration order.
	Relationships []Relationship

	// Notes and Activations carry sequence-diagram annotations.
	Notes       []Note
	Activations []Activation

	// Branches is the gitGraph branch registry in creation order.
	Branches []Branch

	nodes map[string]*Node
	order []string
}

// New creates an empty diagram for the given dialect.
func New(dialect Dialect) *Diagram {
	return &Diagram{
		Dialect: dialect,
		nodes:   make(map[string]*Node),
	}
}

// AddNode inserts a node, preserving insertion order. If a node with the
// same id already exists, the existing node is kept but empty fields are
// filled in from the new one (a later declaration may add the label or shape
// a placeholder lacked). Returns the stored node.
func (d *Diagram) AddNode(n Node) *Node {
	if existing, ok := d.nodes[n.ID]; ok {
		if existing.Label == "" {
			existing.Label = n.Label
		}
		if existing.Shape == ShapeDefault {
			existing.Shape = n.Shape
		}
		return existing
	}
	stored := n
	d.nodes[n.ID] = &stored
	d.order = append(d.order, n.ID)
	return &stored
}

// EnsureNode returns the node with the given id, auto-registering a
// placeholder when it does not exist. Placeholder registration is the
// dangling-reference policy for all parsers: a relationship may name a node
// before (or without) its declaration.
func (d *Diagram) EnsureNode(id string) *Node {
	if n, ok := d.nodes[id]; ok {
		return n
	}
	return d.AddNode(Node{ID: id})
}

// Node returns the node with the given id, or nil.
func (d *Diagram) Node(id string) *Node {
	return d.nodes[id]
}

// Nodes returns all nodes in insertion order.
func (d *Diagram) Nodes() []*Node {
	out := make([]*Node, len(d.order))
	for i, id := range d.order {
		out[i] = d.nodes[id]
	}
	return out
}

// NodeCount returns the number of nodes.
func (d *Diagram) NodeCount() int { return len(d.order) }

// AddRelationship appends a relationship, preserving declaration order.
func (d *Diagram) AddRelationship(r Relationship) {
	d.Relationships = append(d.Relationships, r)
}

// Branch returns the named branch, or nil.
func (d *Diagram) Branch(name string) *Branch {
	for i := range d.Branches {
		if d.Branches[i].Name == name {
			return &d.Branches[i]
		}
	}
	return nil
}

// AddBranch registers a branch if it does not already exist and returns it.
func (d *Diagram) AddBranch(name string) *Branch {
	if b := d.Branch(name); b != nil {
		return b
	}
	d.Branches = append(d.Branches, Branch{Name: name})
	return &d.Branches[len(d.Branches)-1]
}

// Root returns the first node at level 0, the mindmap root. Returns nil for
// an empty diagram.
func (d *Diagram) Root() *Node {
	for _, id := range d.order {
		if d.nodes[id].Level == 0 {
			return d.nodes[id]
		}
	}
	return nil
}

// Children returns the mindmap children of the given node id in insertion
// order.
func (d *Diagram) Children(id string) []*Node {
	var out []*Node
	for _, nid := range d.order {
		if n := d.nodes[nid]; n.Parent == id && n.ID != id {
			out = append(out, n)
		}
	}
	return out
}
