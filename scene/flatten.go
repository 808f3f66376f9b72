package scene

import "github.com/reikx/ascia/types"

type flattenItem struct {
	local     *Node[Local]
	parent    *Node[Global]
	parentPos types.Vec3
	parentDir types.Quat
}

// Flatten builds a Global copy of the tree rooted at root. Every node's
// transform is composed with its ancestors and all geometry is moved into
// world space. Attributes are shared with the Local tree; geometry is not.
func Flatten(root *Node[Local]) *Node[Global] {
	var out *Node[Global]

	// A child is only pushed once its parent's global transform is known.
	stack := []flattenItem{{local: root, parentDir: types.QuatIdent()}}
	for len(stack) > 0 {
		item := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		local := item.local
		pos := item.parentPos.Add(item.parentDir.Rotate(local.Position))
		dir := item.parentDir.Mul(local.Direction)

		node := &Node[Global]{
			Tag:       local.Tag,
			Attribute: local.Attribute,
			Position:  pos,
			Direction: dir,
			Polygons:  make([]Polygon[Global], len(local.Polygons)),
			Particles: make([]Particle[Global], len(local.Particles)),
			children:  make(map[string]*Node[Global], len(local.children)),
		}

		for i, p := range local.Polygons {
			node.Polygons[i] = Polygon[Global]{
				Vertices: [3]types.Vec3{
					dir.Rotate(p.Vertices[0]).Add(pos),
					dir.Rotate(p.Vertices[1]).Add(pos),
					dir.Rotate(p.Vertices[2]).Add(pos),
				},
				Material: p.Material,
			}
		}

		for i, p := range local.Particles {
			node.Particles[i] = Particle[Global]{
				Position:  dir.Rotate(p.Position).Add(pos),
				Velocity:  dir.Rotate(p.Velocity),
				Char:      p.Char,
				Threshold: p.Threshold,
				Mode:      p.Mode,
				Material:  p.Material,
			}
		}

		if item.parent == nil {
			out = node
		} else {
			item.parent.children[node.Tag] = node
		}

		for _, child := range local.children {
			stack = append(stack, flattenItem{
				local:     child,
				parent:    node,
				parentPos: pos,
				parentDir: dir,
			})
		}
	}

	return out
}
