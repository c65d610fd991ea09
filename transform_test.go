package gridlist

import "testing"

func TestWorldPositionParentChild(t *testing.T) {
	root := NewContainer("root")
	mid := NewContainer("mid")
	leaf := NewContainer("leaf")
	root.X, root.Y = 10, 20
	mid.X, mid.Y = 5, -5
	leaf.X, leaf.Y = 1, 2
	root.AddChild(mid)
	mid.AddChild(leaf)

	x, y := leaf.WorldPosition()
	if x != 16 || y != 17 {
		t.Errorf("WorldPosition = (%v, %v), want (16, 17)", x, y)
	}
}

func TestWorldToLocalRoundtrip(t *testing.T) {
	parent := NewContainer("p")
	child := NewContainer("c")
	parent.X, parent.Y = 100, -50
	child.X, child.Y = -30, 12
	parent.AddChild(child)

	wx, wy := child.LocalToWorld(3, 4)
	lx, ly := child.WorldToLocal(wx, wy)
	if lx != 3 || ly != 4 {
		t.Errorf("roundtrip = (%v, %v), want (3, 4)", lx, ly)
	}
}

func TestContainsLocal(t *testing.T) {
	n := NewRect("r", 20, 10, ColorWhite)
	tests := []struct {
		x, y float64
		want bool
	}{
		{0, 0, true},
		{10, 5, true},
		{-10, -5, true},
		{10.5, 0, false},
		{0, -5.5, false},
	}
	for _, tt := range tests {
		if got := n.containsLocal(tt.x, tt.y); got != tt.want {
			t.Errorf("containsLocal(%v, %v) = %v, want %v", tt.x, tt.y, got, tt.want)
		}
	}
	if NewContainer("c").containsLocal(0, 0) {
		t.Error("zero-sized node should not contain any point")
	}
}
