package component

import "github.com/milk9111/fighter/hitbox"

// HitboxSet is every hitbox an entity owns. Body is the entity's pushbox;
// Attacks are spawned and dropped as moves play out.
type HitboxSet struct {
	Body    *hitbox.Hitbox
	Attacks []*hitbox.Hitbox
}

// All returns the body followed by the attacks.
func (s *HitboxSet) All() []*hitbox.Hitbox {
	out := make([]*hitbox.Hitbox, 0, 1+len(s.Attacks))
	if s.Body != nil {
		out = append(out, s.Body)
	}
	return append(out, s.Attacks...)
}

// Prune drops expired attacks and returns how many were removed.
func (s *HitboxSet) Prune() int {
	kept := s.Attacks[:0]
	for _, h := range s.Attacks {
		if h != nil && !h.Expired {
			kept = append(kept, h)
		}
	}
	removed := len(s.Attacks) - len(kept)
	clear(s.Attacks[len(kept):])
	s.Attacks = kept
	return removed
}

var HitboxSetComponent = NewComponent[HitboxSet]()
