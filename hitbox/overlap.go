package hitbox

// Overlap is produced for one intersecting pair and discarded once both
// sides have resolved. Subject is always the hitbox doing the resolving.
type Overlap struct {
	Subject       *Hitbox
	Other         *Hitbox
	SubjectExtent Extent
	OtherExtent   Extent
}

// Mirror swaps subject and other.
func (o Overlap) Mirror() Overlap {
	return Overlap{
		Subject:       o.Other,
		Other:         o.Subject,
		SubjectExtent: o.OtherExtent,
		OtherExtent:   o.SubjectExtent,
	}
}
