/*package poisson solves the one-dimensional Poisson equation for the
electrostatic potential between two Dirichlet boundaries.
*/
package poisson

import (
	"fmt"

	"github.com/phil-mansfield/goccp/constants"
	"gonum.org/v1/gonum/mat"
)

// DirichletSolver solves d^2 phi / dx^2 = -rho / eps0 on a uniform grid with
// fixed potentials at both ends. The finite difference matrix is built once
// and every Solve is O(n).
type DirichletSolver struct {
	n   int
	dx  float64
	a   *mat.Tridiag
	buf []float64
	rhs *mat.VecDense
}

// NewDirichletSolver creates a solver for a grid of n points spaced dx apart.
func NewDirichletSolver(n int, dx float64) (*DirichletSolver, error) {
	if n < 3 {
		return nil, fmt.Errorf("Poisson grid needs at least 3 points, got %d.", n)
	} else if dx <= 0 {
		return nil, fmt.Errorf("Poisson grid spacing must be positive, got %g.", dx)
	}

	// Rows 0 and n-1 pin the boundary values. dl[i] is element (i+1, i)
	// and du[i] is element (i, i+1).
	dl, d, du := make([]float64, n-1), make([]float64, n), make([]float64, n-1)
	d[0], d[n-1] = 1, 1
	for i := 1; i < n-1; i++ {
		dl[i-1], d[i], du[i] = 1, -2, 1
	}

	buf := make([]float64, n)
	s := &DirichletSolver{
		n: n, dx: dx, a: mat.NewTridiag(n, dl, d, du),
		buf: buf, rhs: mat.NewVecDense(n, buf),
	}

	// A trial solve catches a singular matrix before the first step.
	if err := s.a.SolveVecTo(mat.NewVecDense(n, nil), false, s.rhs); err != nil {
		return nil, fmt.Errorf("Poisson matrix is singular: %w", err)
	}
	return s, nil
}

// Solve computes the potential phi generated by the charge density rho with
// phi[0] = left and phi[n-1] = right.
func (s *DirichletSolver) Solve(rho, phi []float64, left, right float64) {
	if len(rho) != s.n || len(phi) != s.n {
		panic(fmt.Sprintf(
			"Solver has %d points, but len(rho) = %d and len(phi) = %d",
			s.n, len(rho), len(phi),
		))
	}

	k := -s.dx * s.dx / constants.Eps0
	s.buf[0], s.buf[s.n-1] = left, right
	for i := 1; i < s.n-1; i++ {
		s.buf[i] = k * rho[i]
	}
	err := s.a.SolveVecTo(mat.NewVecDense(s.n, phi), false, s.rhs)
	if err != nil {
		panic(err.Error())
	}
}

// EField computes the electric field E = -d phi / dx. Interior points use
// central differences and the two boundary points use one-sided ones.
func (s *DirichletSolver) EField(phi, ef []float64) {
	n := s.n
	for i := 1; i < n-1; i++ {
		ef[i] = (phi[i-1] - phi[i+1]) / (2 * s.dx)
	}
	ef[0] = (phi[0] - phi[1]) / s.dx
	ef[n-1] = (phi[n-2] - phi[n-1]) / s.dx
}
