package solver

// DefaultEpsWENO regularizes the smoothness indicators in the WENO weights
const DefaultEpsWENO = 1.e-6

// weno5Edge reconstructs the right-edge point value of the center cell from
// five cell averages using fifth order WENO weights (Jiang-Shu). The
// left-edge value is obtained by calling with the stencil reversed.
func weno5Edge(vm2, vm1, v0, vp1, vp2, eps float64) float64 {
	var (
		b0 = 13./12.*sq(vm2-2*vm1+v0) + 0.25*sq(vm2-4*vm1+3*v0)
		b1 = 13./12.*sq(vm1-2*v0+vp1) + 0.25*sq(vm1-vp1)
		b2 = 13./12.*sq(v0-2*vp1+vp2) + 0.25*sq(3*v0-4*vp1+vp2)

		a0 = 0.1 / sq(eps+b0)
		a1 = 0.6 / sq(eps+b1)
		a2 = 0.3 / sq(eps+b2)

		q0 = (2*vm2 - 7*vm1 + 11*v0) / 6
		q1 = (-vm1 + 5*v0 + 2*vp1) / 6
		q2 = (2*v0 + 5*vp1 - vp2) / 6
	)
	return (a0*q0 + a1*q1 + a2*q2) / (a0 + a1 + a2)
}

func sq(x float64) float64 { return x * x }
