package markup

import (
	"github.com/BurntSushi/toml"

	"github.com/mermaidtools/drawbridge/pkg/diagram"
	"github.com/mermaidtools/drawbridge/pkg/errors"
)

// StyleSet maps shapes, edge kinds, and dialect box kinds to mxGraph style
// strings. It is immutable configuration passed into serialization: callers
// get their own copy from DefaultStyles or LoadStyles and the assembler
// never mutates it.
type StyleSet struct {
	// Shapes keys are diagram shape tags.
	Shapes map[string]string `toml:"shapes"`

	// Edges keys are flow arrow kinds, sequence message types, class
	// relation kinds, plus "er" and "git".
	Edges map[string]string `toml:"edges"`

	// Boxes keys are dialect-specific vertex kinds: entity, class,
	// participant, actor, commit, highlight-commit, note.
	Boxes map[string]string `toml:"boxes"`
}

// DefaultStyles returns the built-in style table.
func DefaultStyles() *StyleSet {
	return &StyleSet{
		Shapes: map[string]string{
			string(diagram.ShapeRectangle):  "rounded=0;whiteSpace=wrap;html=1;",
			string(diagram.ShapeRounded):    "rounded=1;whiteSpace=wrap;html=1;",
			string(diagram.ShapeDiamond):    "rhombus;whiteSpace=wrap;html=1;",
			string(diagram.ShapeStadium):    "rounded=1;whiteSpace=wrap;html=1;arcSize=50;",
			string(diagram.ShapeCircle):     "ellipse;whiteSpace=wrap;html=1;",
			string(diagram.ShapeSubroutine): "shape=process;whiteSpace=wrap;html=1;",
			string(diagram.ShapeHexagon):    "shape=hexagon;perimeter=hexagonPerimeter2;whiteSpace=wrap;html=1;",
			string(diagram.ShapeCloud):      "shape=cloud;whiteSpace=wrap;html=1;",
		},
		Edges: map[string]string{
			string(diagram.ArrowSolid):  "edgeStyle=orthogonalEdgeStyle;rounded=0;html=1;",
			string(diagram.ArrowOpen):   "edgeStyle=orthogonalEdgeStyle;rounded=0;html=1;endArrow=none;",
			string(diagram.ArrowDotted): "edgeStyle=orthogonalEdgeStyle;rounded=0;html=1;dashed=1;",
			string(diagram.ArrowThick):  "edgeStyle=orthogonalEdgeStyle;rounded=0;html=1;strokeWidth=3;",

			string(diagram.MessageSync):   "html=1;endArrow=block;endFill=1;",
			string(diagram.MessageAsync):  "html=1;endArrow=open;dashed=1;",
			string(diagram.MessageLost):   "html=1;endArrow=cross;",
			string(diagram.MessageCreate): "html=1;endArrow=oval;endFill=0;",

			string(diagram.RelationInheritance): "html=1;endArrow=block;endFill=0;endSize=14;",
			string(diagram.RelationComposition): "html=1;startArrow=diamondThin;startFill=1;endArrow=none;",
			string(diagram.RelationAggregation): "html=1;startArrow=diamondThin;startFill=0;endArrow=none;",
			string(diagram.RelationDependency):  "html=1;endArrow=open;dashed=1;",
			string(diagram.RelationAssociation): "html=1;endArrow=open;",

			"er":  "edgeStyle=entityRelationEdgeStyle;html=1;fontSize=12;",
			"git": "edgeStyle=orthogonalEdgeStyle;rounded=1;html=1;",
		},
		Boxes: map[string]string{
			"entity":           "shape=table;startSize=30;container=0;whiteSpace=wrap;html=1;",
			"class":            "shape=rectangle;verticalAlign=top;whiteSpace=wrap;html=1;align=left;spacingLeft=4;",
			"participant":      "rounded=0;whiteSpace=wrap;html=1;fillColor=#dae8fc;",
			"actor":            "shape=umlActor;verticalLabelPosition=bottom;verticalAlign=top;html=1;",
			"commit":           "ellipse;whiteSpace=wrap;html=1;fillColor=#d5e8d4;",
			"highlight-commit": "ellipse;whiteSpace=wrap;html=1;fillColor=#ffe6cc;strokeWidth=2;",
			"note":             "shape=note;whiteSpace=wrap;html=1;fillColor=#fff2cc;",
			"mindmap":          "rounded=1;whiteSpace=wrap;html=1;fillColor=#f5f5f5;",
		},
	}
}

// LoadStyles reads a TOML style table and overlays it on the defaults.
// Entries absent from the file keep their default style strings.
func LoadStyles(path string) (*StyleSet, error) {
	styles := DefaultStyles()
	if _, err := toml.DecodeFile(path, styles); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "load style table %s", path)
	}
	return styles, nil
}

// vertexStyle picks the style string for a node given the diagram dialect.
func (s *StyleSet) vertexStyle(d *diagram.Diagram, n *diagram.Node) string {
	switch d.Dialect {
	case diagram.DialectER:
		return s.Boxes["entity"]
	case diagram.DialectClass:
		return s.Boxes["class"]
	case diagram.DialectSequence:
		if n.Actor {
			return s.Boxes["actor"]
		}
		return s.Boxes["participant"]
	case diagram.DialectGitGraph:
		if n.CommitType == "HIGHLIGHT" {
			return s.Boxes["highlight-commit"]
		}
		return s.Boxes["commit"]
	case diagram.DialectMindmap:
		if n.Shape == diagram.ShapeDefault {
			return s.Boxes["mindmap"]
		}
		return s.Shapes[string(n.Shape)]
	default:
		if style, ok := s.Shapes[string(n.Shape)]; ok {
			return style
		}
		return s.Shapes[string(diagram.ShapeRectangle)]
	}
}

// edgeStyle picks the style string for a relationship given the dialect.
func (s *StyleSet) edgeStyle(d *diagram.Diagram, rel diagram.Relationship) string {
	switch d.Dialect {
	case diagram.DialectFlow:
		return s.Edges[string(rel.Arrow)]
	case diagram.DialectER:
		return s.Edges["er"]
	case diagram.DialectSequence:
		return s.Edges[string(rel.Message)]
	case diagram.DialectClass:
		return s.Edges[string(rel.Kind)]
	case diagram.DialectGitGraph:
		return s.Edges["git"]
	default:
		return s.Edges[string(diagram.ArrowSolid)]
	}
}
