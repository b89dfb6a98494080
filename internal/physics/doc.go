// Package physics provides the orbit models behind the animations.
//
// Each model implements the [dynamo.Kinematics] interface, producing the
// projected (depth, x, y) positions of two bodies frame by frame:
//
//   - [Binary]: circular orbit at a constant angular rate
//   - [InspiralingBinary]: leading-order chirp that shrinks the orbit until merger
//
// Both share the free functions in geometry.go: centre-of-mass weighting of
// the body positions and the B(γ)·C(β)·D(α) projection into the viewer frame.
//
// # Units
//
// The inspiral uses km, solar masses and km/s ([GravitationalConstant],
// [SpeedOfLight]). The constant-rate binary is unitless with r = 1.
//
// # Example
//
//	ib, err := physics.NewInspiralingBinary(physics.InspiralParams{
//	    M1: 30, M2: 28, Alpha: 50, Beta: 30, Omega0: 1,
//	})
//	if err != nil {
//	    return err
//	}
//	ib.Inspiral()
//	fmt.Println(ib.Frames(), ib.Termination())
package physics
