// Package models provides the planar drone dynamics used for pilot-intent
// prediction.
//
// Both models share the same control mapping: tilting the stick commands a
// body-frame acceleration through the hover approximation a ≈ g·tan(tilt),
// and a linear drag term opposes velocity.
//
//   - [Quadcopter]: 5-state NED model carrying yaw, so body accelerations
//     rotate with heading. Implements [dynamo.Linearizable].
//   - [Planar]: minimal 4-state variant without yaw dynamics. Linear, with
//     a constant Jacobian.
//
// States use NED ground-plane conventions: x = North, y = East, yaw = 0
// faces North and increases clockwise.
package models
