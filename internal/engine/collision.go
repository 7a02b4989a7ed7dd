package engine

// Colliding reports whether two circles overlap. The comparison is strict,
// so a pair in exact tangency does not collide.
func Colliding(a, b *Body) bool {
	sum := a.Radius + b.Radius
	return a.Pos.DistanceSq(b.Pos) < sum*sum
}

// Resolve computes post-collision velocities for an overlapping pair using
// the two-body elastic collision formula. It does not re-check the overlap
// and does not mutate its arguments.
//
// Momentum and kinetic energy are conserved up to rounding for any masses
// and velocities as long as the centers differ. Exactly coincident centers
// divide by zero and yield non-finite velocities; that case is left
// unguarded because any special case here would break the reversal
// symmetry of the formula.
func Resolve(a, b *Body) (va, vb Vec2) {
	sum := a.Mass + b.Mass
	dab := a.Pos.Sub(b.Pos)
	d2 := dab.LengthSq()
	va = a.Vel.Sub(dab.Scale(2 * b.Mass / sum * a.Vel.Sub(b.Vel).Dot(dab) / d2))
	dba := dab.Scale(-1)
	vb = b.Vel.Sub(dba.Scale(2 * a.Mass / sum * b.Vel.Sub(a.Vel).Dot(dba) / d2))
	return
}
