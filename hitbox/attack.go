package hitbox

import "github.com/milk9111/fighter/spatial"

// timerSlack absorbs accumulated rounding when fixed steps are summed, so
// six 1/60s ticks count as a full 0.1s.
const timerSlack = 1e-9

// Attack holds the timing and payload of an attack hitbox.
type Attack struct {
	// ArmDelay is how long after spawn the box becomes enabled.
	ArmDelay float64
	// Lifetime is measured from spawn. The box expires when it is reached,
	// whether or not it ever hit anything.
	Lifetime float64

	Damage     int
	KnockbackX float64
	KnockbackY float64
	// ConsumeOnHit expires the box after its first strike.
	ConsumeOnHit bool

	elapsed float64
	hit     map[*spatial.Object]struct{}
}

// NewAttack returns an attack hitbox owned by parent. It starts disabled when
// it has an arming delay.
func NewAttack(parent *spatial.Object, bounds Rect, attack Attack) *Hitbox {
	h := New(parent, bounds, KindAttack)
	a := attack
	a.elapsed = 0
	a.hit = nil
	h.Attack = &a
	h.Enabled = a.ArmDelay <= 0
	return h
}

// Elapsed returns the time since spawn.
func (a *Attack) Elapsed() float64 {
	return a.elapsed
}

// HasHit reports whether the attack already struck target.
func (a *Attack) HasHit(target *spatial.Object) bool {
	_, ok := a.hit[target]
	return ok
}

// HitCount is the number of distinct parents struck so far.
func (a *Attack) HitCount() int {
	return len(a.hit)
}

func (a *Attack) markHit(target *spatial.Object) {
	if a.hit == nil {
		a.hit = make(map[*spatial.Object]struct{}, 1)
	}
	a.hit[target] = struct{}{}
}

func (a *Attack) advance(h *Hitbox, dt float64) {
	a.elapsed += dt
	if a.elapsed+timerSlack >= a.Lifetime {
		h.Expired = true
		h.Enabled = false
		return
	}
	if !h.Enabled && a.elapsed+timerSlack >= a.ArmDelay {
		h.Enabled = true
	}
}
