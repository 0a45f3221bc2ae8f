package formats

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/pipeshot/internal/engine"
)

// YAMLLevel represents the YAML structure for a level file.
type YAMLLevel struct {
	ID       string            `yaml:"id"`
	Name     string            `yaml:"name"`
	Size     YAMLSize          `yaml:"size"`
	Cannon   YAMLCannon        `yaml:"cannon"`
	Goal     YAMLCell          `yaml:"goal"`
	Pipes    []YAMLPipe        `yaml:"pipes,omitempty"`
	Walls    []YAMLCell        `yaml:"walls,omitempty"`
	Pits     []YAMLCell        `yaml:"pits,omitempty"`
	Roads    []YAMLCell        `yaml:"roads,omitempty"`
	Metadata map[string]string `yaml:"metadata,omitempty"`
}

// YAMLSize represents grid dimensions.
type YAMLSize struct {
	W int `yaml:"w"`
	H int `yaml:"h"`
}

// YAMLCell is a grid position.
type YAMLCell struct {
	X int `yaml:"x"`
	Y int `yaml:"y"`
}

// YAMLCannon is the cannon position and the direction it fires in.
type YAMLCannon struct {
	X   int    `yaml:"x"`
	Y   int    `yaml:"y"`
	Dir string `yaml:"dir"`
}

// YAMLPipe is a pipe with its bend, by name ("LeftDown") or glyph ("╮").
type YAMLPipe struct {
	X    int    `yaml:"x"`
	Y    int    `yaml:"y"`
	Type string `yaml:"type"`
}

func (c YAMLCell) coord() engine.Coord {
	return engine.C(c.X, c.Y)
}

// ParseYAML parses a YAML level file.
func ParseYAML(data []byte) (Level, error) {
	var yl YAMLLevel
	if err := yaml.Unmarshal(data, &yl); err != nil {
		return Level{}, fmt.Errorf("yaml unmarshal: %w", err)
	}

	dir, ok := engine.ParseDir(yl.Cannon.Dir)
	if !ok {
		return Level{}, fmt.Errorf("cannon: unknown direction %q", yl.Cannon.Dir)
	}

	level := Level{
		ID:       yl.ID,
		Name:     yl.Name,
		Width:    yl.Size.W,
		Height:   yl.Size.H,
		Cannon:   engine.Launcher{Pos: engine.C(yl.Cannon.X, yl.Cannon.Y), Dir: dir},
		Goal:     yl.Goal.coord(),
		Metadata: yl.Metadata,
	}

	for i, p := range yl.Pipes {
		t, ok := engine.ParsePipeType(p.Type)
		if !ok {
			return Level{}, fmt.Errorf("pipe %d: unknown type %q", i, p.Type)
		}
		level.Pipes = append(level.Pipes, PipeSpot{Cell: engine.C(p.X, p.Y), Type: t})
	}
	for _, c := range yl.Walls {
		level.Walls = append(level.Walls, c.coord())
	}
	for _, c := range yl.Pits {
		level.Pits = append(level.Pits, c.coord())
	}
	for _, c := range yl.Roads {
		level.Roads = append(level.Roads, c.coord())
	}

	return level, nil
}

// MarshalYAML encodes a level in the YAML file format.
func MarshalYAML(l Level) ([]byte, error) {
	yl := YAMLLevel{
		ID:       l.ID,
		Name:     l.Name,
		Size:     YAMLSize{W: l.Width, H: l.Height},
		Cannon:   YAMLCannon{X: l.Cannon.Pos.Col, Y: l.Cannon.Pos.Row, Dir: l.Cannon.Dir.String()},
		Goal:     YAMLCell{X: l.Goal.Col, Y: l.Goal.Row},
		Metadata: l.Metadata,
	}
	for _, p := range l.Pipes {
		yl.Pipes = append(yl.Pipes, YAMLPipe{X: p.Cell.Col, Y: p.Cell.Row, Type: p.Type.String()})
	}
	for _, c := range l.Walls {
		yl.Walls = append(yl.Walls, YAMLCell{X: c.Col, Y: c.Row})
	}
	for _, c := range l.Pits {
		yl.Pits = append(yl.Pits, YAMLCell{X: c.Col, Y: c.Row})
	}
	for _, c := range l.Roads {
		yl.Roads = append(yl.Roads, YAMLCell{X: c.Col, Y: c.Row})
	}
	return yaml.Marshal(yl)
}
