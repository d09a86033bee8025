package layout

import (
	"github.com/BurntSushi/toml"

	"github.com/mermaidtools/drawbridge/pkg/errors"
)

// Config carries the spacing, pitch, and canvas parameters for every layout
// engine. It is immutable once passed into Compute; engines never write to
// it. Load overlays a TOML file on top of Default values, so a config file
// only needs the keys it changes.
type Config struct {
	Flow     FlowConfig     `toml:"flow"`
	ER       ERConfig       `toml:"er"`
	Sequence SequenceConfig `toml:"sequence"`
	Class    ClassConfig    `toml:"class"`
	Mindmap  MindmapConfig  `toml:"mindmap"`
	Git      GitConfig      `toml:"git"`
}

// FlowConfig parameterizes the linear flow-graph layout.
type FlowConfig struct {
	NodeWidth  float64 `toml:"node_width"`
	NodeHeight float64 `toml:"node_height"`
	SpacingX   float64 `toml:"spacing_x"`
	SpacingY   float64 `toml:"spacing_y"`
	Margin     float64 `toml:"margin"`
}

// ERConfig parameterizes the entity grid layout.
type ERConfig struct {
	Columns      int     `toml:"columns"` // 0 = square grid from entity count
	EntityWidth  float64 `toml:"entity_width"`
	HeaderHeight float64 `toml:"header_height"`
	RowHeight    float64 `toml:"row_height"`
	PitchX       float64 `toml:"pitch_x"`
	PitchY       float64 `toml:"pitch_y"`
	Margin       float64 `toml:"margin"`
}

// SequenceConfig parameterizes the lifeline layout.
type SequenceConfig struct {
	ParticipantWidth  float64 `toml:"participant_width"`
	ParticipantHeight float64 `toml:"participant_height"`
	PitchX            float64 `toml:"pitch_x"`
	MessagePitch      float64 `toml:"message_pitch"`
	NoteWidth         float64 `toml:"note_width"`
	NoteHeight        float64 `toml:"note_height"`
	Margin            float64 `toml:"margin"`
}

// ClassConfig parameterizes the class grid layout.
type ClassConfig struct {
	Columns      int     `toml:"columns"`
	BoxWidth     float64 `toml:"box_width"`
	HeaderHeight float64 `toml:"header_height"`
	RowHeight    float64 `toml:"row_height"`
	PitchX       float64 `toml:"pitch_x"`
	PitchY       float64 `toml:"pitch_y"`
	Margin       float64 `toml:"margin"`
}

// MindmapConfig parameterizes the radial layout.
type MindmapConfig struct {
	RootWidth   float64 `toml:"root_width"`
	RootHeight  float64 `toml:"root_height"`
	Shrink      float64 `toml:"shrink"`       // per-level size multiplier
	MinWidth    float64 `toml:"min_width"`    // size floor after shrinking
	RadiusStep  float64 `toml:"radius_step"`  // distance between levels
	Spread      float64 `toml:"spread"`       // level-1 angular half-width, radians
	MinSpread   float64 `toml:"min_spread"`   // angular half-width floor, radians
	Margin      float64 `toml:"margin"`
}

// GitConfig parameterizes the branch/column commit layout.
type GitConfig struct {
	NodeSize    float64 `toml:"node_size"`
	ColumnPitch float64 `toml:"column_pitch"`
	RowPitch    float64 `toml:"row_pitch"`
	Margin      float64 `toml:"margin"`
}

// Default returns the built-in layout parameters.
func Default() *Config {
	return &Config{
		Flow: FlowConfig{
			NodeWidth:  140,
			NodeHeight: 60,
			SpacingX:   80,
			SpacingY:   60,
			Margin:     40,
		},
		ER: ERConfig{
			EntityWidth:  180,
			HeaderHeight: 30,
			RowHeight:    24,
			PitchX:       260,
			PitchY:       200,
			Margin:       40,
		},
		Sequence: SequenceConfig{
			ParticipantWidth:  120,
			ParticipantHeight: 40,
			PitchX:            180,
			MessagePitch:      50,
			NoteWidth:         140,
			NoteHeight:        40,
			Margin:            40,
		},
		Class: ClassConfig{
			Columns:      3,
			BoxWidth:     180,
			HeaderHeight: 30,
			RowHeight:    22,
			PitchX:       240,
			PitchY:       220,
			Margin:       40,
		},
		Mindmap: MindmapConfig{
			RootWidth:  160,
			RootHeight: 70,
			Shrink:     0.82,
			MinWidth:   80,
			RadiusStep: 170,
			Spread:     1.1,
			MinSpread:  0.35,
			Margin:     40,
		},
		Git: GitConfig{
			NodeSize:    40,
			ColumnPitch: 120,
			RowPitch:    70,
			Margin:      40,
		},
	}
}

// Load reads a TOML config file and overlays it on the defaults. Keys
// absent from the file keep their default values.
func Load(path string) (*Config, error) {
	cfg := Default()
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "load layout config %s", path)
	}
	return cfg, nil
}
