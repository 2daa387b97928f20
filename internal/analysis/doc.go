// Package analysis provides linear stability tools for the stepping
// schemes: scalar stability functions R(z), region-of-stability grids over
// the complex plane, and per-step eigenvalues of J·dt along a recorded
// trajectory.
//
// For the scalar test equation dx/dt = λx a scheme amplifies the state by
// R(z) each step, z = λ·dt; the scheme is stable where |R(z)| ≤ 1. Tracing
// a trajectory's local eigenvalues against that region shows how close the
// linearized dynamics sit to the stability boundary over the run.
package analysis
