package scene

import (
	"maps"
	"slices"

	"github.com/reikx/ascia/types"
)

// Node is an element of the scene graph. For Local nodes Position and
// Direction are relative to the parent; for Global nodes they are absolute.
type Node[S Space] struct {
	// Unique among siblings.
	Tag string

	// Optional shared payload (camera or light).
	Attribute *Attribute

	Position  types.Vec3
	Direction types.Quat

	Polygons  []Polygon[S]
	Particles []Particle[S]

	children map[string]*Node[S]
}

// Create a node with an identity transform.
func NewNode[S Space](tag string) *Node[S] {
	return &Node[S]{
		Tag:       tag,
		Direction: types.QuatIdent(),
		children:  make(map[string]*Node[S]),
	}
}

// Attach child under its tag. A previous child with the same tag is replaced
// and returned.
func (n *Node[S]) AddChild(child *Node[S]) *Node[S] {
	if n.children == nil {
		n.children = make(map[string]*Node[S])
	}
	prev := n.children[child.Tag]
	n.children[child.Tag] = child
	return prev
}

// Detach and return the child with the given tag or nil if there is none.
func (n *Node[S]) RemoveChild(tag string) *Node[S] {
	child, ok := n.children[tag]
	if !ok {
		return nil
	}
	delete(n.children, tag)
	return child
}

// Get the child with the given tag.
func (n *Node[S]) Child(tag string) *Node[S] {
	return n.children[tag]
}

// Get the node children ordered by tag.
func (n *Node[S]) Children() []*Node[S] {
	out := make([]*Node[S], 0, len(n.children))
	for _, tag := range slices.Sorted(maps.Keys(n.children)) {
		out = append(out, n.children[tag])
	}
	return out
}

// Follow a path of tags starting at n. An empty path returns n.
func (n *Node[S]) Find(path ...string) *Node[S] {
	cur := n
	for _, tag := range path {
		if cur = cur.Child(tag); cur == nil {
			return nil
		}
	}
	return cur
}

func (n *Node[S]) SetPosition(pos types.Vec3) {
	n.Position = pos
}

func (n *Node[S]) SetDirection(dir types.Quat) {
	n.Direction = dir
}

func (n *Node[S]) SetAttribute(attr *Attribute) {
	n.Attribute = attr
}

// Move the node by delta expressed in the node's own frame.
func (n *Node[S]) Translate(delta types.Vec3) {
	n.Position = n.Position.Add(n.Direction.Rotate(delta))
}

// Rotate the node around an axis expressed in the node's own frame.
func (n *Node[S]) Rotate(axis types.Vec3, angle float32) {
	n.Direction = n.Direction.Mul(types.QuatFromAxisAngle(axis, angle)).Normalize()
}

// Visit n and all its descendants depth-first, parents before children.
func (n *Node[S]) Walk(fn func(*Node[S])) {
	stack := []*Node[S]{n}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		fn(cur)

		children := cur.Children()
		for i := len(children) - 1; i >= 0; i-- {
			stack = append(stack, children[i])
		}
	}
}

// Find the first node, in Walk order, whose attribute is of the given kind.
func (n *Node[S]) FindAttribute(kind AttributeKind) *Node[S] {
	var found *Node[S]
	n.Walk(func(cur *Node[S]) {
		if found == nil && cur.Attribute != nil && cur.Attribute.Kind() == kind {
			found = cur
		}
	})
	return found
}

// Collect the polygons of n and all its descendants.
func (n *Node[S]) CollectPolygons() []Polygon[S] {
	var out []Polygon[S]
	n.Walk(func(cur *Node[S]) {
		out = append(out, cur.Polygons...)
	})
	return out
}

// Collect the particles of n and all its descendants.
func (n *Node[S]) CollectParticles() []Particle[S] {
	var out []Particle[S]
	n.Walk(func(cur *Node[S]) {
		out = append(out, cur.Particles...)
	})
	return out
}

// Count the nodes of the subtree rooted at n.
func (n *Node[S]) Len() int {
	count := 0
	n.Walk(func(*Node[S]) { count++ })
	return count
}
