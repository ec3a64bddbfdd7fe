package hitbox

import "github.com/milk9111/fighter/spatial"

// OutcomeKind says what a resolution did.
type OutcomeKind uint8

const (
	OutcomeNone OutcomeKind = iota
	// OutcomePushed means the subject's parent was moved out of the other.
	OutcomePushed
	// OutcomeStruck means an attack landed on the other's parent.
	OutcomeStruck
)

func (k OutcomeKind) String() string {
	switch k {
	case OutcomePushed:
		return "pushed"
	case OutcomeStruck:
		return "struck"
	default:
		return "none"
	}
}

// Outcome is what one side of an overlap did about it.
type Outcome struct {
	Kind OutcomeKind

	// Push is set for OutcomePushed.
	Push Push

	// Strike fields are set for OutcomeStruck. Knockback is already signed by
	// the attacker's facing.
	Target     *spatial.Object
	Damage     int
	KnockbackX float64
	KnockbackY float64
	Consumed   bool

	Err error
}

// ResolveIntersection reacts to an overlap in which h is the subject. The
// reaction depends only on the two kinds.
func (h *Hitbox) ResolveIntersection(o Overlap) Outcome {
	switch h.Kind {
	case KindBody:
		return h.block(o)
	case KindAttack:
		return h.strike(o)
	default:
		return Outcome{}
	}
}

// block pushes a body out of a tile. Bodies pass through each other. The
// overlap is taken again first because an earlier tile may already have moved
// the body this tick.
func (h *Hitbox) block(o Overlap) Outcome {
	if o.Other == nil || o.Other.Kind != KindTile {
		return Outcome{}
	}
	fresh, ok := h.Intersects(o.Other)
	if !ok {
		return Outcome{}
	}
	p, err := SeparateChecked(fresh)
	if err != nil {
		return Outcome{Err: err}
	}
	return Outcome{Kind: OutcomePushed, Push: p}
}

// strike lands an attack on a body once per target parent.
func (h *Hitbox) strike(o Overlap) Outcome {
	a := h.Attack
	if a == nil || h.Expired || o.Other == nil || o.Other.Kind != KindBody {
		return Outcome{}
	}
	target := o.Other.Parent
	if target == nil || target == h.Parent || a.HasHit(target) {
		return Outcome{}
	}
	a.markHit(target)
	if a.ConsumeOnHit {
		h.Expired = true
	}

	kx := a.KnockbackX
	if h.Parent != nil && h.Parent.Scale().X() < 0 {
		kx = -kx
	}
	return Outcome{
		Kind:       OutcomeStruck,
		Target:     target,
		Damage:     a.Damage,
		KnockbackX: kx,
		KnockbackY: a.KnockbackY,
		Consumed:   a.ConsumeOnHit,
	}
}
