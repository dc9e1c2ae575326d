// Package sorts implements trace generators for comparison sorts.
//
// Each generator is an explicit state machine: it clones its input, keeps
// the loop position (i, j, key, current minimum) in fields and emits exactly
// one [trace.Step] per call to Next. The input slice is never written to.
//
//   - [Insertion]: grows a sorted prefix by shifting larger elements right
//   - [Selection]: swaps the minimum of the unsorted suffix into place
//
// Generators are not safe for concurrent use; build one per consumer.
package sorts
