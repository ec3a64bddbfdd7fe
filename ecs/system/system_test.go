package system

import (
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"
	"go.uber.org/zap/zaptest/observer"

	"github.com/milk9111/fighter/ecs"
	"github.com/milk9111/fighter/ecs/component"
	"github.com/milk9111/fighter/hitbox"
	"github.com/milk9111/fighter/spatial"
)

const dt = 1.0 / 60

type fakeKeys struct {
	pressed map[ebiten.Key]bool
	just    map[ebiten.Key]bool
}

func (k fakeKeys) Pressed(key ebiten.Key) bool     { return k.pressed[key] }
func (k fakeKeys) JustPressed(key ebiten.Key) bool { return k.just[key] }

func mustAdd[T any](t *testing.T, w *ecs.World, e ecs.Entity, kind component.ComponentKind[T], v *T) {
	t.Helper()
	require.NoError(t, ecs.Add(w, e, kind, v))
}

func jabMove() component.AttackMove {
	return component.AttackMove{
		Bounds:         hitbox.MustRect(0.3, 1.5, 1, 0.5),
		Attack:         hitbox.Attack{ArmDelay: 0, Lifetime: 0.3, Damage: 10, KnockbackX: 5, KnockbackY: 3},
		CooldownFrames: 20,
	}
}

func spawnFighter(t *testing.T, w *ecs.World, name string, team component.Team, x, y float64) ecs.Entity {
	t.Helper()
	e := ecs.CreateEntity(w)
	obj := spatial.NewObjectAt(x, y)
	mustAdd(t, w, e, component.TransformComponent.Kind(), obj)
	mustAdd(t, w, e, component.HitboxSetComponent.Kind(), &component.HitboxSet{
		Body: hitbox.New(obj, hitbox.MustRect(-0.5, 2, 1, 2), hitbox.KindBody),
	})
	mustAdd(t, w, e, component.VelocityComponent.Kind(), &component.Velocity{})
	mustAdd(t, w, e, component.GravityScaleComponent.Kind(), &component.GravityScale{Scale: 1})
	mustAdd(t, w, e, component.HealthComponent.Kind(), &component.Health{Initial: 30, Current: 30})
	mustAdd(t, w, e, component.InputComponent.Kind(), &component.Input{})
	mustAdd(t, w, e, component.FighterComponent.Kind(), &component.Fighter{
		Name:         name,
		Team:         team,
		MoveSpeed:    6,
		JumpSpeed:    12,
		Facing:       1,
		Move:         jabMove(),
		InvulnFrames: 10,
		SpawnX:       x,
		SpawnY:       y,
		SpawnFacing:  1,
	})
	return e
}

// spawnFloor lays unit tiles whose tops sit on y = 0 from x = -10 to 10.
func spawnFloor(t *testing.T, w *ecs.World) {
	t.Helper()
	for col := 0; col < 20; col++ {
		e := ecs.CreateEntity(w)
		mustAdd(t, w, e, component.StaticTileComponent.Kind(), &component.StaticTile{
			Box: hitbox.New(nil, hitbox.MustRect(float64(col-10), 0, 1, 1), hitbox.KindTile),
			Col: col,
		})
	}
}

func newScheduler(t *testing.T, logger *zap.Logger, extra ...ecs.System) *ecs.Scheduler {
	t.Helper()
	systems := append([]ecs.System{
		NewFighterSystem(logger),
		NewMovementSystem(30, 20),
		NewCollisionSystem(logger, true),
		NewCombatSystem(logger),
	}, extra...)
	return ecs.NewScheduler(systems...)
}

func TestInputSystemMapsKeys(t *testing.T) {
	w := ecs.NewWorld()
	e := ecs.CreateEntity(w)
	mustAdd(t, w, e, component.InputComponent.Kind(), &component.Input{})
	mustAdd(t, w, e, component.ControlsComponent.Kind(), &component.Controls{
		Left: ebiten.KeyA, Right: ebiten.KeyD, Jump: ebiten.KeyW, Attack: ebiten.KeyF,
	})

	keys := fakeKeys{
		pressed: map[ebiten.Key]bool{ebiten.KeyA: true, ebiten.KeyW: true},
		just:    map[ebiten.Key]bool{ebiten.KeyF: true},
	}
	NewInputSystem(keys).Update(w, dt)

	in, _ := ecs.Get(w, e, component.InputComponent.Kind())
	assert.Equal(t, -1.0, in.MoveX)
	assert.True(t, in.Jump)
	assert.False(t, in.JumpPressed)
	assert.True(t, in.AttackPressed)
}

func TestFighterLandsOnFloor(t *testing.T) {
	w := ecs.NewWorld()
	spawnFloor(t, w)
	e := spawnFighter(t, w, "p1", component.TeamOne, 0, 3)
	s := newScheduler(t, zaptest.NewLogger(t))

	for i := 0; i < 120; i++ {
		s.Update(w, dt)
	}

	obj, _ := ecs.Get(w, e, component.TransformComponent.Kind())
	vel, _ := ecs.Get(w, e, component.VelocityComponent.Kind())
	assert.InDelta(t, 0.0, obj.Y(), 1e-9, "feet rest on the floor top")
	assert.Zero(t, vel.Y)
	assert.True(t, ecs.Has(w, e, component.GroundedComponent.Kind()))

	in, _ := ecs.Get(w, e, component.InputComponent.Kind())
	in.JumpPressed = true
	s.Update(w, dt)
	in.JumpPressed = false
	assert.Greater(t, obj.Y(), 0.0, "jump leaves the floor")
}

func TestFighterRestsAcrossTileCenter(t *testing.T) {
	w := ecs.NewWorld()
	spawnFloor(t, w)
	e := spawnFighter(t, w, "p1", component.TeamOne, 0.3, 0)
	s := newScheduler(t, zaptest.NewLogger(t))

	for i := 0; i < 60; i++ {
		s.Update(w, dt)
	}

	obj, _ := ecs.Get(w, e, component.TransformComponent.Kind())
	assert.Equal(t, 0.3, obj.X(), "no sideways shove from the tile under the body")
	assert.Equal(t, 0.0, obj.Y())
	assert.True(t, ecs.Has(w, e, component.GroundedComponent.Kind()))
}

func TestFighterStopsFlushAtWall(t *testing.T) {
	w := ecs.NewWorld()
	spawnFloor(t, w)
	for row := 0; row < 3; row++ {
		e := ecs.CreateEntity(w)
		mustAdd(t, w, e, component.StaticTileComponent.Kind(), &component.StaticTile{
			Box: hitbox.New(nil, hitbox.MustRect(3, float64(row+1), 1, 1), hitbox.KindTile),
			Row: row,
		})
	}
	e := spawnFighter(t, w, "p1", component.TeamOne, 0, 0)
	s := newScheduler(t, zaptest.NewLogger(t))

	in, _ := ecs.Get(w, e, component.InputComponent.Kind())
	in.MoveX = 1
	for i := 0; i < 60; i++ {
		s.Update(w, dt)
	}

	obj, _ := ecs.Get(w, e, component.TransformComponent.Kind())
	vel, _ := ecs.Get(w, e, component.VelocityComponent.Kind())
	assert.InDelta(t, 2.5, obj.X(), 1e-9, "body edge meets the wall face")
	assert.Equal(t, 0.0, obj.Y())
	assert.Zero(t, vel.X)
	assert.True(t, ecs.Has(w, e, component.GroundedComponent.Kind()))
}

func TestFighterFacingAndAttack(t *testing.T) {
	w := ecs.NewWorld()
	e := spawnFighter(t, w, "p1", component.TeamOne, 0, 0)
	fs := NewFighterSystem(zaptest.NewLogger(t))

	in, _ := ecs.Get(w, e, component.InputComponent.Kind())
	in.MoveX = -1
	in.AttackPressed = true
	fs.Update(w, dt)

	obj, _ := ecs.Get(w, e, component.TransformComponent.Kind())
	vel, _ := ecs.Get(w, e, component.VelocityComponent.Kind())
	set, _ := ecs.Get(w, e, component.HitboxSetComponent.Kind())
	assert.Equal(t, -1.0, obj.Scale().X())
	assert.Equal(t, -6.0, vel.X)
	require.Len(t, set.Attacks, 1)
	assert.Less(t, set.Attacks[0].World().MaxX, 0.0, "attack mirrors with facing")
	assert.True(t, ecs.Has(w, e, component.CooldownComponent.Kind()))

	fs.Update(w, dt)
	assert.Len(t, set.Attacks, 1, "cooldown blocks a second attack")
}

func TestStrikeDamagesOnce(t *testing.T) {
	w := ecs.NewWorld()
	spawnFloor(t, w)
	p1 := spawnFighter(t, w, "p1", component.TeamOne, 0, 0)
	p2 := spawnFighter(t, w, "p2", component.TeamTwo, 1.2, 0)

	var hits []ecs.HitEvent
	collect := systemFunc(func(w *ecs.World, _ float64) {
		hits = append(hits, ecs.Events[ecs.HitEvent](w)...)
	})
	s := newScheduler(t, zaptest.NewLogger(t), collect)

	in, _ := ecs.Get(w, p1, component.InputComponent.Kind())
	in.AttackPressed = true
	s.Update(w, dt)
	in.AttackPressed = false
	for i := 0; i < 30; i++ {
		s.Update(w, dt)
	}

	require.Len(t, hits, 1)
	assert.Equal(t, p1, hits[0].Attacker)
	assert.Equal(t, p2, hits[0].Target)
	assert.Equal(t, 20, hits[0].Remaining)

	health, _ := ecs.Get(w, p2, component.HealthComponent.Kind())
	assert.Equal(t, 20, health.Current)

	set, _ := ecs.Get(w, p1, component.HitboxSetComponent.Kind())
	assert.Empty(t, set.Attacks, "expired attack pruned")
}

func TestSameTeamCannotStrike(t *testing.T) {
	w := ecs.NewWorld()
	p1 := spawnFighter(t, w, "p1", component.TeamOne, 0, 0)
	ally := spawnFighter(t, w, "ally", component.TeamOne, 1.2, 0)
	for _, e := range []ecs.Entity{p1, ally} {
		ecs.Remove(w, e, component.GravityScaleComponent.Kind())
	}
	s := newScheduler(t, zaptest.NewLogger(t))

	in, _ := ecs.Get(w, p1, component.InputComponent.Kind())
	in.AttackPressed = true
	s.Update(w, dt)

	health, _ := ecs.Get(w, ally, component.HealthComponent.Kind())
	assert.Equal(t, 30, health.Current)
}

func TestKnockoutResetsRound(t *testing.T) {
	w := ecs.NewWorld()
	p1 := spawnFighter(t, w, "p1", component.TeamOne, 0, 0)
	p2 := spawnFighter(t, w, "p2", component.TeamTwo, 1.2, 0)
	for _, e := range []ecs.Entity{p1, p2} {
		ecs.Remove(w, e, component.GravityScaleComponent.Kind())
	}
	health, _ := ecs.Get(w, p2, component.HealthComponent.Kind())
	health.Current = 5

	rounds := NewRoundSystem(zaptest.NewLogger(t), 3)
	s := newScheduler(t, zaptest.NewLogger(t), rounds)

	in, _ := ecs.Get(w, p1, component.InputComponent.Kind())
	in.AttackPressed = true
	s.Update(w, dt)
	in.AttackPressed = false
	assert.Equal(t, 0, health.Current)
	assert.Equal(t, 1, rounds.Score(component.TeamOne))

	obj, _ := ecs.Get(w, p2, component.TransformComponent.Kind())
	f2, _ := ecs.Get(w, p2, component.FighterComponent.Kind())
	f2.Facing = -1
	obj.SetScale(-1, 1, 1)

	for i := 0; i < 3; i++ {
		s.Update(w, dt)
	}
	assert.Equal(t, 2, rounds.Round())
	assert.Equal(t, 30, health.Current)
	assert.Equal(t, 1.2, obj.X())
	assert.Equal(t, 1.0, obj.Scale().X(), "spawn facing restored")
}

func TestScriptSystemDrivesInput(t *testing.T) {
	src := []byte(`
if dx > 1 { move = 1 } else if dx < -1 { move = -1 }
attack = dx < 2 && dx > -2
jump = grounded && dy > 1
`)
	load := func(string) ([]byte, error) { return src, nil }

	w := ecs.NewWorld()
	dummy := spawnFighter(t, w, "dummy", component.TeamTwo, 0, 0)
	mustAdd(t, w, dummy, component.ScriptComponent.Kind(), &component.Script{Path: "dummy.tengo"})
	spawnFighter(t, w, "p1", component.TeamOne, 5, 0)

	ss := NewScriptSystem(zaptest.NewLogger(t), load)
	ss.Update(w, dt)

	in, _ := ecs.Get(w, dummy, component.InputComponent.Kind())
	assert.Equal(t, 1.0, in.MoveX)
	assert.False(t, in.AttackPressed)

	obj, _ := ecs.Get(w, dummy, component.TransformComponent.Kind())
	obj.SetX(4)
	ss.Update(w, dt)
	assert.Equal(t, 0.0, in.MoveX)
	assert.True(t, in.AttackPressed)
}

func TestScriptErrorsLogOnce(t *testing.T) {
	core, logs := observer.New(zap.ErrorLevel)
	load := func(string) ([]byte, error) { return []byte(`move = = 1`), nil }

	w := ecs.NewWorld()
	dummy := spawnFighter(t, w, "dummy", component.TeamTwo, 0, 0)
	mustAdd(t, w, dummy, component.ScriptComponent.Kind(), &component.Script{Path: "broken.tengo"})

	ss := NewScriptSystem(zap.New(core), load)
	for i := 0; i < 5; i++ {
		ss.Update(w, dt)
	}
	assert.Equal(t, 1, logs.FilterMessage("load script").Len())
	in, _ := ecs.Get(w, dummy, component.InputComponent.Kind())
	assert.Zero(t, in.MoveX)
}

func TestStateHashIsDeterministic(t *testing.T) {
	build := func() (*ecs.World, *ecs.Scheduler, ecs.Entity) {
		w := ecs.NewWorld()
		spawnFloor(t, w)
		p1 := spawnFighter(t, w, "p1", component.TeamOne, -2, 2)
		spawnFighter(t, w, "p2", component.TeamTwo, 2, 2)
		return w, newScheduler(t, nil), p1
	}
	wa, sa, pa := build()
	wb, sb, pb := build()
	require.Equal(t, StateHash(wa), StateHash(wb))

	for tick := 0; tick < 180; tick++ {
		for _, pair := range []struct {
			w *ecs.World
			e ecs.Entity
		}{{wa, pa}, {wb, pb}} {
			in, _ := ecs.Get(pair.w, pair.e, component.InputComponent.Kind())
			in.MoveX = 0
			if tick < 60 {
				in.MoveX = 1
			}
			in.AttackPressed = tick%25 == 0
			in.JumpPressed = tick == 90
		}
		sa.Update(wa, dt)
		sb.Update(wb, dt)
		if StateHash(wa) != StateHash(wb) {
			t.Fatalf("tick %d: state diverged", tick)
		}
	}
	before := StateHash(wa)
	sa.Update(wa, dt)
	obj, _ := ecs.Get(wa, pa, component.TransformComponent.Kind())
	obj.Move(spatial.AxisX, 0.25)
	assert.NotEqual(t, before, StateHash(wa))
}

func TestPickSkipsDegenerateTransforms(t *testing.T) {
	core, logs := observer.New(zap.ErrorLevel)
	w := ecs.NewWorld()
	broken := spawnFighter(t, w, "broken", component.TeamOne, 0, 0)
	ok := spawnFighter(t, w, "ok", component.TeamTwo, 0, 0)

	obj, _ := ecs.Get(w, broken, component.TransformComponent.Kind())
	obj.SetScale(0, 1, 1)

	e, h, found := Pick(w, 0.1, 1, zap.New(core))
	require.True(t, found)
	assert.Equal(t, ok, e)
	assert.Equal(t, hitbox.KindBody, h.Kind)
	assert.Equal(t, 1, logs.FilterMessage("degenerate transform").Len())
}

func TestCameraRoundTrip(t *testing.T) {
	cam := Camera{X: -8, Top: 9, Zoom: 40}
	sx, sy := cam.ToScreen(0, 0)
	assert.Equal(t, float32(320), sx)
	assert.Equal(t, float32(360), sy)
	x, y := cam.ToWorld(320, 360)
	assert.InDelta(t, 0, x, 1e-9)
	assert.InDelta(t, 0, y, 1e-9)
}

type systemFunc func(w *ecs.World, dt float64)

func (f systemFunc) Update(w *ecs.World, dt float64) { f(w, dt) }

func TestHitFreezeTakesLongestRequest(t *testing.T) {
	w := ecs.NewWorld()
	a, b := ecs.CreateEntity(w), ecs.CreateEntity(w)
	mustAdd(t, w, a, component.HitFreezeRequestComponent.Kind(), &component.HitFreezeRequest{Frames: 3})
	mustAdd(t, w, b, component.HitFreezeRequestComponent.Kind(), &component.HitFreezeRequest{Frames: 5})

	s := NewHitFreezeSystem(zaptest.NewLogger(t))
	s.Update(w, dt)
	s.Update(w, dt)

	assert.Equal(t, 5, s.Take())
	assert.Zero(t, s.Take())
	assert.False(t, ecs.Has(w, a, component.HitFreezeRequestComponent.Kind()))
}

func TestStrikeRequestsFreeze(t *testing.T) {
	w := ecs.NewWorld()
	p1 := spawnFighter(t, w, "p1", component.TeamOne, 0, 0)
	p2 := spawnFighter(t, w, "p2", component.TeamTwo, 1.2, 0)
	f, _ := ecs.Get(w, p1, component.FighterComponent.Kind())
	f.Move.FreezeFrames = 4

	freeze := NewHitFreezeSystem(nil)
	s := newScheduler(t, zaptest.NewLogger(t), freeze)
	in, _ := ecs.Get(w, p1, component.InputComponent.Kind())
	in.AttackPressed = true
	s.Update(w, dt)

	assert.Equal(t, 4, freeze.Take())
	assert.False(t, ecs.Has(w, p2, component.HitFreezeRequestComponent.Kind()))
}
