// Package trace defines the contract between sort trace generators and the
// frame consumers that render them.
//
// A generator narrates one sort run as a lazy sequence of [Step] values:
//
//   - [Snapshot]: a full copy of the array at one instant
//   - [Annotation]: which indices are sorted, active, compared, the current
//     minimum candidate, a swapped pair and a short caption
//   - [Generator]: the pull interface, one Step per call to Next
//
// # Example
//
//	gen := sorts.NewInsertion([]int{3, 1, 2})
//	for {
//	    step, ok := gen.Next()
//	    if !ok {
//	        break
//	    }
//	    draw(step.Array, step.Annotation)
//	}
//
// # Ownership
//
// Snapshots handed out by a generator are never written to again. Consumers
// may keep them, but the generator's working array is never exposed.
package trace
