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

// MatchSpec is the top-level match configuration.
type MatchSpec struct {
	Name             string     `yaml:"name"`
	TickRate         int        `yaml:"tick_rate"`
	MaxCatchUpTicks  int        `yaml:"max_catch_up_ticks"`
	Gravity          float64    `yaml:"gravity"`
	MaxFall          float64    `yaml:"max_fall"`
	RoundResetFrames int        `yaml:"round_reset_frames"`
	Arena            string     `yaml:"arena"`
	Fighters         []SlotSpec `yaml:"fighters"`
	Camera           CameraSpec `yaml:"camera"`
}

// SlotSpec places one fighter prefab into the match. Exactly one of Controls
// and Script drives it.
type SlotSpec struct {
	Prefab   string        `yaml:"prefab"`
	Name     string        `yaml:"name"`
	Team     int           `yaml:"team"`
	X        float64       `yaml:"x"`
	Y        float64       `yaml:"y"`
	Facing   float64       `yaml:"facing"`
	Controls *ControlsSpec `yaml:"controls"`
	Script   string        `yaml:"script"`
}

// ControlsSpec names ebiten keys, e.g. "A" or "ArrowLeft".
type ControlsSpec struct {
	Left   string `yaml:"left"`
	Right  string `yaml:"right"`
	Jump   string `yaml:"jump"`
	Attack string `yaml:"attack"`
}

type CameraSpec struct {
	X    float64 `yaml:"x"`
	Top  float64 `yaml:"top"`
	Zoom float64 `yaml:"zoom"`
}

type FighterSpec struct {
	Name         string     `yaml:"name"`
	MoveSpeed    float64    `yaml:"move_speed"`
	JumpSpeed    float64    `yaml:"jump_speed"`
	Health       int        `yaml:"health"`
	InvulnFrames int        `yaml:"invuln_frames"`
	GravityScale *float64   `yaml:"gravity_scale"`
	Body         RectSpec   `yaml:"body"`
	Attack       AttackSpec `yaml:"attack"`
}

// RectSpec is a hitbox rectangle in local space: x,y is the top-left corner.
type RectSpec struct {
	X      float64 `yaml:"x"`
	Y      float64 `yaml:"y"`
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

type AttackSpec struct {
	Bounds         RectSpec `yaml:"bounds"`
	ArmDelay       float64  `yaml:"arm_delay"`
	Lifetime       float64  `yaml:"lifetime"`
	Damage         int      `yaml:"damage"`
	KnockbackX     float64  `yaml:"knockback_x"`
	KnockbackY     float64  `yaml:"knockback_y"`
	ConsumeOnHit   bool     `yaml:"consume_on_hit"`
	CooldownFrames int      `yaml:"cooldown_frames"`
	FreezeFrames   int      `yaml:"freeze_frames"`
}

// ArenaSpec is a tile layout. Rows run top to bottom; '#' is solid.
type ArenaSpec struct {
	Name     string     `yaml:"name"`
	TileSize float64    `yaml:"tile_size"`
	Walls    bool       `yaml:"walls"`
	Color    *YAMLColor `yaml:"color"`
	Rows     []string   `yaml:"rows"`
}

type YAMLColor struct {
	color.Color
}

func (c *YAMLColor) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("color must be a string")
	}

	s := strings.TrimPrefix(value.Value, "#")

	if len(s) != 6 && len(s) != 8 {
		return fmt.Errorf("invalid color format: %s", value.Value)
	}

	parse := func(start int) (uint8, error) {
		v, err := strconv.ParseUint(s[start:start+2], 16, 8)
		return uint8(v), err
	}

	r, err := parse(0)
	if err != nil {
		return err
	}
	g, err := parse(2)
	if err != nil {
		return err
	}
	b, err := parse(4)
	if err != nil {
		return err
	}

	a := uint8(255)
	if len(s) == 8 {
		a, err = parse(6)
		if err != nil {
			return err
		}
	}

	c.Color = color.NRGBA{R: r, G: g, B: b, A: a}
	return nil
}

// MarshalYAML writes the color back as #rrggbbaa.
func (c YAMLColor) MarshalYAML() (any, error) {
	if c.Color == nil {
		return nil, nil
	}
	n := color.NRGBAModel.Convert(c.Color).(color.NRGBA)
	return fmt.Sprintf("#%02x%02x%02x%02x", n.R, n.G, n.B, n.A), nil
}
