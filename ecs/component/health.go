package component

type Health struct {
	Initial int
	Current int
}

// Dead reports whether the entity has no health left.
func (h *Health) Dead() bool {
	return h.Current <= 0
}

var HealthComponent = NewComponent[Health]()
