package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/sortviz/internal/trace"
)

func TestRolesEmptyAnnotation(t *testing.T) {
	roles := Roles(3, trace.Annotation{})
	assert.Equal(t, []Role{RoleBase, RoleBase, RoleBase}, roles)
}

func TestRolesLayering(t *testing.T) {
	tests := []struct {
		name string
		ann  trace.Annotation
		want []Role
	}{
		{
			name: "sorted only",
			ann:  trace.Annotation{Sorted: trace.Prefix(2)},
			want: []Role{RoleSorted, RoleSorted, RoleBase, RoleBase},
		},
		{
			name: "min overrides sorted",
			ann:  trace.Annotation{Sorted: trace.Prefix(2), MinIndex: trace.Int(1)},
			want: []Role{RoleSorted, RoleMin, RoleBase, RoleBase},
		},
		{
			name: "active overrides min",
			ann:  trace.Annotation{MinIndex: trace.Int(2), Active: []int{2}},
			want: []Role{RoleBase, RoleBase, RoleActive, RoleBase},
		},
		{
			name: "compare overrides active",
			ann:  trace.Annotation{Active: []int{1, 3}, Compare: []int{1}},
			want: []Role{RoleBase, RoleCompare, RoleBase, RoleActive},
		},
		{
			name: "swap overrides everything",
			ann: trace.Annotation{
				Sorted:   trace.Prefix(4),
				MinIndex: trace.Int(0),
				Active:   []int{0},
				Compare:  []int{0},
				Swap:     &trace.Pair{I: 0, J: 3},
			},
			want: []Role{RoleSwap, RoleSorted, RoleSorted, RoleSwap},
		},
		{
			name: "out of range skipped",
			ann:  trace.Annotation{Active: []int{-1, 7}, MinIndex: trace.Int(4), Swap: &trace.Pair{I: 9, J: 0}},
			want: []Role{RoleSwap, RoleBase, RoleBase, RoleBase},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Roles(4, tt.ann))
		})
	}
}

func TestNewFrame(t *testing.T) {
	step := trace.Step{
		Array:      trace.Snapshot{3, 1, 2},
		Annotation: trace.Annotation{Active: []int{1}, Sorted: trace.Prefix(1), Info: "pick key at i=1"},
	}
	f := NewFrame(4, step, 3)

	require.Len(t, f.Heights, 3)
	assert.Equal(t, 4, f.Index)
	assert.Equal(t, "pick key at i=1", f.Caption)
	assert.Equal(t, []Role{RoleSorted, RoleActive, RoleBase}, f.Roles)

	f.Heights[0] = 42
	assert.Equal(t, 3, step.Array[0], "frame must not alias the snapshot")
}

func TestFrameScale(t *testing.T) {
	f := Frame{Heights: []int{0, 20, -5, 100}, Max: 20}
	assert.InDelta(t, 23.0, f.Ceiling(), 1e-9)
	assert.Zero(t, f.Scale(0))
	assert.InDelta(t, 20.0/23.0, f.Scale(1), 1e-9)
	assert.Zero(t, f.Scale(2))
	assert.Equal(t, 1.0, f.Scale(3))

	assert.Equal(t, 1.0, Frame{}.Ceiling())
}

func TestRoleString(t *testing.T) {
	assert.Equal(t, "swap", RoleSwap.String())
	assert.Equal(t, "unknown", Role(200).String())
}

func TestPalettes(t *testing.T) {
	assert.Equal(t, []string{"classic", "dark", "mono"}, PaletteNames())
	assert.Equal(t, "classic", GetPalette("nope").Name)
	assert.True(t, HasPalette("dark"))
	assert.False(t, HasPalette("nope"))
	assert.Equal(t, "#1f77b4", PaletteClassic.Hex(RoleBase))
	assert.Equal(t, "#000000", PaletteClassic.Hex(RoleSwap))

	for _, name := range PaletteNames() {
		p := GetPalette(name)
		seen := map[string]bool{}
		for r := RoleBase; r < numRoles; r++ {
			hex := p.Hex(r)
			assert.False(t, seen[hex], "palette %s reuses %s", name, hex)
			seen[hex] = true
		}
	}
}
