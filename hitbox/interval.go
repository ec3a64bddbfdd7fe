package hitbox

// intervalsOverlap reports whether [a,b] and [c,d] share more than a single
// boundary point. Segments are re-ordered first so callers may pass the ends
// of a mirrored rect in either order.
func intervalsOverlap(a, b, c, d float64) bool {
	if a > b {
		a, b = b, a
	}
	if c > d {
		c, d = d, c
	}
	if a < c {
		return c < b
	}
	return (a == c && b == d) || a < d
}

// Overlaps reports whether two world extents overlap strictly on both axes.
// Touching edges and corners do not count.
func Overlaps(a, b Extent) bool {
	return intervalsOverlap(a.MinX, a.MaxX, b.MinX, b.MaxX) &&
		intervalsOverlap(a.MinY, a.MaxY, b.MinY, b.MaxY)
}
