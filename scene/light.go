package scene

import "github.com/reikx/ascia/types"

// A point light. Its position is the global position of the node carrying it.
type PointLight struct {
	Color types.ColorRGB
	Power float32
}

// Create a white light with unit power.
func DefaultPointLight() PointLight {
	return PointLight{
		Color: types.ColorRGB{R: 1, G: 1, B: 1},
		Power: 1,
	}
}

// Get the light arriving at point to from a light attached to node. Lights are
// not attenuated by distance.
func (l PointLight) Ray(node *Node[Global], to types.Vec3) types.ColorRGB {
	if to.Sub(node.Position).Len() == 0 {
		return types.ColorRGB{}
	}
	return l.Color.Scale(l.Power)
}

// A light together with the flattened node that positions it.
type LightSource struct {
	Node  *Node[Global]
	Light PointLight
}

// Collect all lights in a flattened tree.
func Lights(root *Node[Global]) []LightSource {
	var lights []LightSource
	root.Walk(func(n *Node[Global]) {
		if n.Attribute == nil {
			return
		}
		if l, ok := n.Attribute.Light(); ok {
			lights = append(lights, LightSource{Node: n, Light: l})
		}
	})
	return lights
}
