package prefabs

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

// MatchSpec configures a match: the arena, the players and round timing.
type MatchSpec struct {
	Name        string         `yaml:"name"`
	RoundsToWin int            `yaml:"rounds_to_win"`
	StartDelay  float64        `yaml:"start_delay"`
	EndDelay    float64        `yaml:"end_delay"`
	TankPrefab  string         `yaml:"tank_prefab"`
	Camera      string         `yaml:"camera_prefab"`
	BotScript   string         `yaml:"bot_script"`
	Arena       ArenaSpec      `yaml:"arena"`
	Obstacles   []ObstacleSpec `yaml:"obstacles"`
	Players     []PlayerSpec   `yaml:"players"`
	Input       AxisSpec       `yaml:"input"`
}

func LoadMatchSpec(filename string) (*MatchSpec, error) {
	spec, err := LoadSpec[MatchSpec](filename)
	if err != nil {
		return nil, err
	}
	spec.applyDefaults()
	return &spec, nil
}

func (m *MatchSpec) applyDefaults() {
	if m.RoundsToWin <= 0 {
		m.RoundsToWin = 3
	}
	if m.StartDelay < 0 {
		m.StartDelay = 0
	}
	if m.EndDelay < 0 {
		m.EndDelay = 0
	}
	if m.TankPrefab == "" {
		m.TankPrefab = "tank.yaml"
	}
	if m.Camera == "" {
		m.Camera = "camera.yaml"
	}
	if m.BotScript == "" {
		m.BotScript = "bot.tengo"
	}
	if m.Input.Sensitivity <= 0 {
		m.Input.Sensitivity = 3
	}
	if m.Input.Gravity <= 0 {
		m.Input.Gravity = 3
	}
}

type ArenaSpec struct {
	MinX float64 `yaml:"min_x"`
	MinZ float64 `yaml:"min_z"`
	MaxX float64 `yaml:"max_x"`
	MaxZ float64 `yaml:"max_z"`
}

type ObstacleSpec struct {
	X      float64 `yaml:"x"`
	Z      float64 `yaml:"z"`
	Width  float64 `yaml:"width"`
	Length float64 `yaml:"length"`
	Radius float64 `yaml:"radius"`
	Height float64 `yaml:"height"`
}

type PlayerSpec struct {
	Color     YAMLColor   `yaml:"color"`
	Spawn     SpawnSpec   `yaml:"spawn"`
	MoveText  string      `yaml:"move_text"`
	ShootText string      `yaml:"shoot_text"`
	Keys      KeyBindings `yaml:"keys"`
}

type SpawnSpec struct {
	X   float64 `yaml:"x"`
	Z   float64 `yaml:"z"`
	Yaw float64 `yaml:"yaw"`
}

// KeyBindings names keyboard keys by their ebiten key names.
type KeyBindings struct {
	Up    string `yaml:"up"`
	Down  string `yaml:"down"`
	Left  string `yaml:"left"`
	Right string `yaml:"right"`
	Fire  string `yaml:"fire"`
}

// AxisSpec tunes keyboard axis smoothing in units per second.
type AxisSpec struct {
	Sensitivity float64 `yaml:"sensitivity"`
	Gravity     float64 `yaml:"gravity"`
	Snap        bool    `yaml:"snap"`
}

type YAMLColor struct {
	color.Color
}

// NRGBA returns the colour, white when unset.
func (c YAMLColor) NRGBA() color.NRGBA {
	if c.Color == nil {
		return color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	}
	return color.NRGBAModel.Convert(c.Color).(color.NRGBA)
}

func (c *YAMLColor) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("color must be a string")
	}
	parsed, err := ParseHexColor(value.Value)
	if err != nil {
		return err
	}
	c.Color = parsed
	return nil
}

// ParseHexColor reads #RRGGBB or #RRGGBBAA.
func ParseHexColor(v string) (color.NRGBA, error) {
	s := strings.TrimPrefix(strings.TrimSpace(v), "#")
	if len(s) != 6 && len(s) != 8 {
		return color.NRGBA{}, fmt.Errorf("invalid color format: %s", v)
	}

	parse := func(start int) (uint8, error) {
		n, err := strconv.ParseUint(s[start:start+2], 16, 8)
		return uint8(n), err
	}

	var out color.NRGBA
	var err error
	if out.R, err = parse(0); err != nil {
		return color.NRGBA{}, err
	}
	if out.G, err = parse(2); err != nil {
		return color.NRGBA{}, err
	}
	if out.B, err = parse(4); err != nil {
		return color.NRGBA{}, err
	}
	out.A = 255
	if len(s) == 8 {
		if out.A, err = parse(6); err != nil {
			return color.NRGBA{}, err
		}
	}
	return out, nil
}
