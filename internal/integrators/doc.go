// Package integrators provides fixed-step time-stepping schemes over
// [dynamo.Dynamics] models.
//
//   - [Euler]: explicit first order, O(dt²) local error. Stable only while
//     λ·dt stays inside the unit disk centered at -1.
//   - [RK4]: explicit fourth order, O(dt⁵) local error.
//   - [BackwardEuler]: implicit first order, A-stable. Each step solves a
//     nonlinear equation with Newton-Raphson and therefore requires a
//     [dynamo.Linearizable] model.
//
// Steppers are bound to their model at construction; the pairing of state
// and control shapes is checked there, once.
package integrators
