package gridlist

// Nodes only translate, so a world position is the sum of local offsets up
// the parent chain.

// WorldPosition returns the node's center in world space, where the world
// origin is the root of its tree.
func (n *Node) WorldPosition() (x, y float64) {
	for p := n; p != nil; p = p.Parent {
		x += p.X
		y += p.Y
	}
	return x, y
}

// LocalToWorld converts a local-space point to world-space.
func (n *Node) LocalToWorld(lx, ly float64) (wx, wy float64) {
	ox, oy := n.WorldPosition()
	return lx + ox, ly + oy
}

// WorldToLocal converts a world-space point to this node's local coordinate space.
func (n *Node) WorldToLocal(wx, wy float64) (lx, ly float64) {
	ox, oy := n.WorldPosition()
	return wx - ox, wy - oy
}

// containsLocal reports whether (lx, ly) lies inside the node's
// center-anchored bounds. Points on the edge are inside.
func (n *Node) containsLocal(lx, ly float64) bool {
	if n.Width == 0 && n.Height == 0 {
		return false
	}
	hw, hh := n.Width/2, n.Height/2
	return lx >= -hw && lx <= hw && ly >= -hh && ly <= hh
}
