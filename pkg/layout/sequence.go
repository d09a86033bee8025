package layout

import "github.com/mermaidtools/drawbridge/pkg/diagram"

// sequenceLayout places participants left-to-right at fixed pitch, sizes
// lifelines to the total message count, and stacks messages top-to-bottom
// between the lifeline x-coordinates of each pair. Notes sit left, right,
// or centered over their anchor participants.
func sequenceLayout(d *diagram.Diagram, cfg *Config) Result {
	sc := cfg.Sequence
	nodes := d.Nodes()

	positions := make(map[string]diagram.Geometry)
	lifelineX := make(map[string]float64)
	for i, n := range nodes {
		x := sc.Margin + float64(i)*sc.PitchX
		positions[n.ID] = diagram.Geometry{
			X:      x,
			Y:      sc.Margin,
			Width:  sc.ParticipantWidth,
			Height: sc.ParticipantHeight,
		}
		lifelineX[n.ID] = x + sc.ParticipantWidth/2
	}

	// Lifelines cover every message row plus breathing room at the bottom.
	rows := len(d.Relationships) + len(d.Notes)
	lifelineHeight := float64(rows+1) * sc.MessagePitch
	lifelines := make(map[string]float64, len(nodes))
	for _, n := range nodes {
		lifelines[n.ID] = lifelineHeight
	}

	headerBottom := sc.Margin + sc.ParticipantHeight

	var routes []Route
	for i, rel := range d.Relationships {
		fx, okF := lifelineX[rel.From]
		tx, okT := lifelineX[rel.To]
		if !okF || !okT {
			continue
		}
		y := headerBottom + float64(i+1)*sc.MessagePitch
		routes = append(routes, Route{
			Index: i,
			From:  rel.From,
			To:    rel.To,
			Label: rel.Label,
			Waypoints: []diagram.Point{
				{X: fx, Y: y},
				{X: tx, Y: y},
			},
			LabelOffset: diagram.Point{Y: -10},
		})
	}

	// Notes occupy the rows after the last message.
	var notes []NoteBox
	for i, note := range d.Notes {
		if len(note.Participants) == 0 {
			continue
		}
		y := headerBottom + float64(len(d.Relationships)+i+1)*sc.MessagePitch
		notes = append(notes, NoteBox{
			Text:     note.Text,
			Geometry: noteGeometry(note, lifelineX, y, sc),
		})
	}

	width := 2 * sc.Margin
	if len(nodes) > 0 {
		width = 2*sc.Margin + float64(len(nodes)-1)*sc.PitchX + sc.ParticipantWidth
	}
	height := headerBottom + lifelineHeight + sc.Margin

	return Result{
		Positions: positions,
		Routes:    routes,
		Notes:     notes,
		Lifelines: lifelines,
		Canvas:    Size{Width: width, Height: height},
	}
}

// noteGeometry offsets a note box relative to its anchor participants.
func noteGeometry(note diagram.Note, lifelineX map[string]float64, y float64, sc SequenceConfig) diagram.Geometry {
	first := lifelineX[note.Participants[0]]
	g := diagram.Geometry{Y: y, Width: sc.NoteWidth, Height: sc.NoteHeight}

	switch note.Position {
	case diagram.NoteLeftOf:
		g.X = first - sc.NoteWidth - 10
	case diagram.NoteOver:
		last := lifelineX[note.Participants[len(note.Participants)-1]]
		g.X = (first+last)/2 - sc.NoteWidth/2
	default: // right of
		g.X = first + 10
	}
	return g
}
