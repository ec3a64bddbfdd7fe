package hitbox

// Kind selects how a hitbox reacts to an overlap. The geometry core never
// reads it.
type Kind uint8

const (
	// KindBody separates itself out of tiles. Bodies pass through each other.
	KindBody Kind = iota
	// KindAttack strikes bodies it overlaps and never moves.
	KindAttack
	// KindTile is terrain. Tiles are static and never resolve.
	KindTile
)

func (k Kind) String() string {
	switch k {
	case KindBody:
		return "body"
	case KindAttack:
		return "attack"
	case KindTile:
		return "tile"
	default:
		return "unknown"
	}
}
