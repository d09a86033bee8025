package diagram

// =============================================================================
// Constants - Single Source of Truth
// =============================================================================

// Dialect identifies one of the supported diagram notations.
type Dialect string

// Supported dialects. DialectUnknown is returned by the detector when the
// first line of input matches no known keyword.
const (
	DialectFlow     Dialect = "flowchart"
	DialectER       Dialect = "er"
	DialectSequence Dialect = "sequence"
	DialectClass    Dialect = "class"
	DialectMindmap  Dialect = "mindmap"
	DialectGitGraph Dialect = "gitgraph"
	DialectUnknown  Dialect = "unknown"
)

// Shape tags the visual outline of a node.
type Shape string

// Node shapes across all dialects. Flow nodes use the first six; mindmap
// nodes additionally use hexagon and cloud. ShapeDefault lets the style
// table pick the dialect default.
const (
	ShapeRectangle  Shape = "rectangle"
	ShapeRounded    Shape = "rounded"
	ShapeDiamond    Shape = "diamond"
	ShapeStadium    Shape = "stadium"
	ShapeCircle     Shape = "circle"
	ShapeSubroutine Shape = "subroutine"
	ShapeHexagon    Shape = "hexagon"
	ShapeCloud      Shape = "cloud"
	ShapeDefault    Shape = ""
)

// FlowArrow is the connector kind of a flow edge.
type FlowArrow string

// Flow edge connectors.
const (
	ArrowSolid  FlowArrow = "solid"  // -->
	ArrowOpen   FlowArrow = "open"   // ---
	ArrowDotted FlowArrow = "dotted" // -.->
	ArrowThick  FlowArrow = "thick"  // ==>
)

// MessageType classifies a sequence-diagram message.
type MessageType string

// Sequence message types.
const (
	MessageSync   MessageType = "sync"
	MessageAsync  MessageType = "async"
	MessageLost   MessageType = "lost"
	MessageCreate MessageType = "create"
)

// RelationKind classifies a class-diagram relationship.
type RelationKind string

// Class relationship kinds.
const (
	RelationInheritance RelationKind = "inheritance"
	RelationComposition RelationKind = "composition"
	RelationAggregation RelationKind = "aggregation"
	RelationDependency  RelationKind = "dependency"
	RelationAssociation RelationKind = "association"
)

// NotePosition places a sequence-diagram note relative to its anchors.
type NotePosition string

// Note positions.
const (
	NoteRightOf NotePosition = "right of"
	NoteLeftOf  NotePosition = "left of"
	NoteOver    NotePosition = "over"
)

// =============================================================================
// Node - Unified Node Type
// =============================================================================

// Attribute is a typed field of an ER entity or a class. Constraint carries
// the key tag (PK, FK, UK) verbatim for ER entities and the visibility
// prefix for class attributes.
type Attribute struct {
	Type       string
	Name       string
	Constraint string
}

// Method is a class operation.
type Method struct {
	Visibility string // +, -, #, ~ or empty
	Name       string
	Params     string
	Returns    string
}

// Node is the unified node type for all dialects: a flow node, ER entity,
// sequence participant, class, mindmap node, or commit. Dialect-specific
// fields are zero-valued when they do not apply.
type Node struct {
	ID    string
	Label string
	Shape Shape

	// Mindmap fields.
	Level  int    // nesting depth, root is 0
	Parent string // parent node id, empty for the root

	// ER and class fields.
	Attributes []Attribute
	Methods    []Method
	Stereotype string

	// Sequence fields.
	Actor bool // declared with "actor" rather than "participant"

	// GitGraph fields.
	Branch     string
	Tag        string
	CommitType string
}

// DisplayLabel returns the label if set, otherwise the ID.
func (n *Node) DisplayLabel() string {
	if n.Label != "" {
		return n.Label
	}
	return n.ID
}

// =============================================================================
// Relationship - Directed Connection
// =============================================================================

// Relationship connects two nodes. Exactly one of the dialect-specific kind
// fields is meaningful, matching the diagram's dialect.
type Relationship struct {
	From  string
	To    string
	Label string

	Arrow    FlowArrow    // flow
	FromCard string       // ER cardinality at the From end, verbatim
	ToCard   string       // ER cardinality at the To end, verbatim
	Message  MessageType  // sequence
	Kind     RelationKind // class
}

// Note is a sequence-diagram annotation anchored to one or more participants.
type Note struct {
	Position     NotePosition
	Participants []string
	Text         string
}

// Activation toggles a participant's activation bar at a message index.
type Activation struct {
	Participant string
	Activate    bool
	Index       int // message index at which the toggle occurs
}

// Branch is a gitGraph branch with its commit ids in append order.
type Branch struct {
	Name    string
	Commits []string
}
