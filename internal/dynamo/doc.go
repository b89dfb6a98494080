// Package dynamo provides the core primitives shared by the orbit simulators.
//
// The package defines the contract between a kinematics engine and the
// collaborators that consume its frames:
//
//   - [Kinematics]: stepper that produces projected body positions frame by frame
//   - [Pair]: projected (depth, x, y) vectors of both bodies for one frame
//   - [State]: snapshot of the orbital state after the latest step
//   - [ParameterError], [ErrNumericDomain], [ErrMerged]: error taxonomy
//
// # Example
//
//	b, err := physics.NewBinary(physics.DefaultParams())
//	if err != nil {
//	    return err
//	}
//	_ = b.Evolve(240)
//	for i := 0; i < b.Frames(); i++ {
//	    p := b.Frame(i)
//	    _ = p.Primary.Depth()
//	}
//
// # Thread Safety
//
// Kinematics instances are NOT thread-safe while stepping. Frames already
// appended to the history are immutable and may be read concurrently once
// stepping is finished.
package dynamo
