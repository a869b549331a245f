// Package kinematics provides the closed-form constant-jerk integration step
// shared by the profile validators and the trajectory sampler.
package kinematics

// Integrate evaluates position, velocity and acceleration after advancing a
// constant-jerk segment for duration t, starting from state (p, v, a) with
// jerk j.
func Integrate(t, p, v, a, j float64) (newP, newV, newA float64) {
	newP = p + t*(v+t*(a/2.0+t*j/6.0))
	newV = v + t*(a+t*j/2.0)
	newA = a + t*j
	return
}
