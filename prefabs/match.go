package prefabs

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	"golang.org/x/sync/errgroup"

	"github.com/milk9111/fighter/ecs/component"
	"github.com/milk9111/fighter/hitbox"
)

var (
	ErrInvalidMatch   = errors.New("prefabs: invalid match")
	ErrInvalidFighter = errors.New("prefabs: invalid fighter")
)

const (
	defaultTickRate        = 60
	defaultCatchUpTicks    = 5
	defaultRoundResetTicks = 90
)

// Match is a fully loaded match: the match prefab plus every file it names.
type Match struct {
	Spec     MatchSpec
	Arena    ArenaSpec
	Fighters map[string]FighterSpec
}

// Fighter returns the loaded prefab for a slot.
func (m *Match) Fighter(slot SlotSpec) (FighterSpec, bool) {
	f, ok := m.Fighters[slot.Prefab]
	return f, ok
}

// LoadMatch reads a match file and everything it references. The arena and
// fighter prefabs load concurrently.
func LoadMatch(ctx context.Context, name string) (*Match, error) {
	spec, err := LoadSpec[MatchSpec](name)
	if err != nil {
		return nil, err
	}
	if err := spec.normalize(); err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}

	m := &Match{Spec: spec, Fighters: make(map[string]FighterSpec)}
	var mu sync.Mutex

	g, _ := errgroup.WithContext(ctx)
	g.Go(func() error {
		arena, err := LoadSpec[ArenaSpec](arenaPath(spec.Arena))
		if err != nil {
			return err
		}
		m.Arena = arena
		return nil
	})

	seen := make(map[string]bool)
	for _, slot := range spec.Fighters {
		if seen[slot.Prefab] {
			continue
		}
		seen[slot.Prefab] = true
		g.Go(func() error {
			f, err := LoadSpec[FighterSpec](slot.Prefab)
			if err != nil {
				return err
			}
			if err := f.validate(); err != nil {
				return fmt.Errorf("%s: %w", slot.Prefab, err)
			}
			mu.Lock()
			m.Fighters[slot.Prefab] = f
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *MatchSpec) normalize() error {
	if s.TickRate <= 0 {
		s.TickRate = defaultTickRate
	}
	if s.MaxCatchUpTicks <= 0 {
		s.MaxCatchUpTicks = defaultCatchUpTicks
	}
	if s.RoundResetFrames <= 0 {
		s.RoundResetFrames = defaultRoundResetTicks
	}
	if s.Arena == "" {
		return fmt.Errorf("%w: no arena", ErrInvalidMatch)
	}
	if len(s.Fighters) == 0 {
		return fmt.Errorf("%w: no fighters", ErrInvalidMatch)
	}
	for i := range s.Fighters {
		slot := &s.Fighters[i]
		if slot.Prefab == "" {
			return fmt.Errorf("%w: fighter %d has no prefab", ErrInvalidMatch, i)
		}
		if (slot.Controls == nil) == (slot.Script == "") {
			return fmt.Errorf("%w: fighter %d needs exactly one of controls and script", ErrInvalidMatch, i)
		}
		if slot.Facing == 0 {
			slot.Facing = 1
		}
	}
	return nil
}

func (f FighterSpec) validate() error {
	if f.Health <= 0 {
		return fmt.Errorf("%w: health must be positive", ErrInvalidFighter)
	}
	if f.Attack.Lifetime <= 0 {
		return fmt.Errorf("%w: attack lifetime must be positive", ErrInvalidFighter)
	}
	if f.Attack.ArmDelay < 0 || f.Attack.ArmDelay >= f.Attack.Lifetime {
		return fmt.Errorf("%w: arm delay %v outside lifetime %v", ErrInvalidFighter, f.Attack.ArmDelay, f.Attack.Lifetime)
	}
	if _, err := f.Body.Rect(); err != nil {
		return fmt.Errorf("%w: body: %w", ErrInvalidFighter, err)
	}
	if _, err := f.Attack.Bounds.Rect(); err != nil {
		return fmt.Errorf("%w: attack: %w", ErrInvalidFighter, err)
	}
	return nil
}

func (r RectSpec) Rect() (hitbox.Rect, error) {
	return hitbox.NewRect(r.X, r.Y, r.Width, r.Height)
}

// Move converts the attack section into the component the fighter system
// spawns from.
func (a AttackSpec) Move() (component.AttackMove, error) {
	bounds, err := a.Bounds.Rect()
	if err != nil {
		return component.AttackMove{}, err
	}
	return component.AttackMove{
		Bounds: bounds,
		Attack: hitbox.Attack{
			ArmDelay:     a.ArmDelay,
			Lifetime:     a.Lifetime,
			Damage:       a.Damage,
			KnockbackX:   a.KnockbackX,
			KnockbackY:   a.KnockbackY,
			ConsumeOnHit: a.ConsumeOnHit,
		},
		CooldownFrames: a.CooldownFrames,
		FreezeFrames:   a.FreezeFrames,
	}, nil
}

// Controls resolves key names.
func (c ControlsSpec) Controls() (component.Controls, error) {
	var out component.Controls
	for _, k := range []struct {
		field string
		name  string
		dst   *ebiten.Key
	}{
		{"left", c.Left, &out.Left},
		{"right", c.Right, &out.Right},
		{"jump", c.Jump, &out.Jump},
		{"attack", c.Attack, &out.Attack},
	} {
		if err := k.dst.UnmarshalText([]byte(k.name)); err != nil {
			return component.Controls{}, fmt.Errorf("prefabs: controls %s: %w", k.field, err)
		}
	}
	return out, nil
}
