// Package dynamo defines the core contracts for trajectory prediction.
//
// The package pairs an abstract dynamics capability with an abstract
// stepping capability, both generic over the model's state and control
// shapes:
//
//   - [State]: anything a stepper can advance with affine updates
//   - [VecState]: states that also project onto dense vectors, needed
//     by implicit steppers and Jacobian consumers
//   - [Dynamics]: an ODE model dx/dt = f(t, x, u) plus the mapping from
//     pilot input to its control vector
//   - [Linearizable]: models that additionally expose an analytic Jacobian
//   - [Stepper]: a numerical rule advancing a state by one fixed increment
//
// # Example
//
//	model := models.NewQuadcopter(0.1)
//	stepper := integrators.NewRK4[models.QuadState, models.QuadControl](model)
//	pred, err := predict.Predict(input, x0, model, stepper, 0, 10, 30000)
//
// State and control shapes are fixed per concrete model and checked when a
// model/stepper pair is constructed, not per call.
package dynamo
