package particle

// Move advances every particle by one timestep. Only the x component of the
// velocity is accelerated, since the field is one-dimensional, and only the
// x position is tracked.
func (s *Species) Move(dt float64) {
	k := s.Charge / s.Mass * dt
	for i := range s.X {
		s.V[i][0] += k * s.F[i]
		s.X[i] += s.V[i][0] * dt
	}
}

// ApplyAbsorbingBoundary removes every particle outside of [xMin, xMax] and
// returns the number of particles removed.
func (s *Species) ApplyAbsorbingBoundary(xMin, xMax float64) int {
	removed := 0
	for i := 0; i < len(s.X); {
		if s.X[i] < xMin || s.X[i] > xMax {
			s.Remove(i)
			removed++
		} else {
			i++
		}
	}
	return removed
}
