// Package render maps trace steps to drawable frames.
//
// A [Frame] carries bar heights, one [Role] per bar and a caption. Roles are
// layered in a fixed order, later layers overriding earlier ones:
//
//	sorted < min < active < compare < swap
//
// so a bar that was just swapped shows the swap color even when it is also in
// the sorted set. A [Palette] turns roles into colors for a concrete backend.
package render
