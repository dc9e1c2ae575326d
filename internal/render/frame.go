package render

import "github.com/san-kum/sortviz/internal/trace"

// Role is the highlight class of a single bar.
type Role uint8

const (
	RoleBase Role = iota
	RoleSorted
	RoleMin
	RoleActive
	RoleCompare
	RoleSwap

	numRoles
)

var roleNames = [numRoles]string{"base", "sorted", "min", "active", "compare", "swap"}

func (r Role) String() string {
	if r >= numRoles {
		return "unknown"
	}
	return roleNames[r]
}

// Roles assigns a role to each of n bars from ann. Layers are applied in
// priority order and indices outside [0, n) are skipped.
func Roles(n int, ann trace.Annotation) []Role {
	roles := make([]Role, n)
	mark := func(idx int, r Role) {
		if idx >= 0 && idx < n {
			roles[idx] = r
		}
	}

	for _, idx := range ann.Sorted {
		mark(idx, RoleSorted)
	}
	if ann.MinIndex != nil {
		mark(*ann.MinIndex, RoleMin)
	}
	for _, idx := range ann.Active {
		mark(idx, RoleActive)
	}
	for _, idx := range ann.Compare {
		mark(idx, RoleCompare)
	}
	if ann.Swap != nil {
		mark(ann.Swap.I, RoleSwap)
		mark(ann.Swap.J, RoleSwap)
	}
	return roles
}

// Frame is one drawable unit: a bar chart with a caption.
type Frame struct {
	Index   int
	Heights []int
	Roles   []Role
	Caption string
	// Max is the largest value of the run; every frame of a run shares it so
	// bars keep a stable scale.
	Max int
}

func NewFrame(index int, step trace.Step, max int) Frame {
	return Frame{
		Index:   index,
		Heights: step.Array.Clone(),
		Roles:   Roles(len(step.Array), step.Annotation),
		Caption: step.Annotation.Info,
		Max:     max,
	}
}

// Ceiling is the top of the value axis: 15% headroom above Max, at least 1.
func (f Frame) Ceiling() float64 {
	c := float64(f.Max) * 1.15
	if c < 1 {
		return 1
	}
	return c
}

// Scale returns the height of bar i as a fraction of Ceiling, clamped to [0,1].
func (f Frame) Scale(i int) float64 {
	v := float64(f.Heights[i]) / f.Ceiling()
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
