package bvh

import (
	"time"

	"github.com/reikx/ascia/log"
	"github.com/reikx/ascia/scene"
	"github.com/reikx/ascia/tracer"
	"github.com/reikx/ascia/types"
)

var logger = log.New("bvh")

// A callback that returns the bounding box of the item at index.
type BoxFunc[T any] func(index int, item *T) types.AABB

// A callback that intersects a ray with the item at index.
type LeafTest[T any, H tracer.Intersection] func(ray tracer.Ray, index int, item *T) (H, bool)

// NaiveBVH is a static bounding volume hierarchy stored as an implicit binary
// heap. The root lives at index 1 and the children of node i at 2i and 2i+1.
// Leaves occupy the second half of the node list so item i is stored at
// Width()+i. Empty slots hold a nil box and are never visited.
//
// The tree is rebuilt from scratch whenever the geometry changes.
type NaiveBVH[T any, H tracer.Intersection] struct {
	boxes []*types.AABB
	items []T
	test  LeafTest[T, H]
}

// Build a BVH over items. Internal boxes are the union of their children's
// boxes; a node with a single non-empty child inherits its box.
func Build[T any, H tracer.Intersection](items []T, box BoxFunc[T], test LeafTest[T, H]) *NaiveBVH[T, H] {
	width := 1
	for width < len(items) {
		width <<= 1
	}

	boxes := make([]*types.AABB, 2*width)
	for i := range items {
		b := box(i, &items[i])
		boxes[width+i] = &b
	}

	// Fill each level from the one below it.
	for levelWidth := width; levelWidth > 1; levelWidth >>= 1 {
		for i := 0; i < levelWidth>>1; i++ {
			left, right := boxes[levelWidth+2*i], boxes[levelWidth+2*i+1]
			switch {
			case left != nil && right != nil:
				union := left.Union(*right)
				boxes[levelWidth>>1+i] = &union
			case left != nil:
				boxes[levelWidth>>1+i] = left
			case right != nil:
				boxes[levelWidth>>1+i] = right
			}
		}
	}

	return &NaiveBVH[T, H]{
		boxes: boxes,
		items: items,
		test:  test,
	}
}

// Build a BVH over world space polygons.
func ForPolygons(polygons []scene.Polygon[scene.Global]) *NaiveBVH[scene.Polygon[scene.Global], tracer.PolygonHit] {
	start := time.Now()
	tree := Build(
		polygons,
		func(_ int, p *scene.Polygon[scene.Global]) types.AABB { return p.AABB() },
		tracer.IntersectPolygon,
	)
	logger.Debugf("built polygon bvh (%d items, %d nodes) in %d us", tree.Len(), tree.Nodes(), time.Since(start).Microseconds())
	return tree
}

// Build a BVH over world space particles. Arg particle boxes depend on the
// viewer position so the tree is only valid for rays cast from cameraPos.
func ForParticles(particles []scene.Particle[scene.Global], cameraPos types.Vec3) *NaiveBVH[scene.Particle[scene.Global], tracer.ParticleHit] {
	start := time.Now()
	tree := Build(
		particles,
		func(_ int, p *scene.Particle[scene.Global]) types.AABB { return p.AABB(cameraPos) },
		tracer.IntersectParticle,
	)
	logger.Debugf("built particle bvh (%d items, %d nodes) in %d us", tree.Len(), tree.Nodes(), time.Since(start).Microseconds())
	return tree
}

// Project returns the nearest hit that exclude does not reject. Subtrees
// whose box is missed by the ray are skipped entirely.
func (b *NaiveBVH[T, H]) Project(ray tracer.Ray, exclude func(*H) bool) (H, bool) {
	var (
		best  H
		found bool
	)

	if len(b.items) == 0 {
		return best, false
	}

	leafStart := len(b.boxes) >> 1
	stack := []int{1}
	for len(stack) > 0 {
		idx := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		box := b.boxes[idx]
		if box == nil {
			continue
		}
		if _, ok := tracer.IntersectAABB(ray, *box); !ok {
			continue
		}

		if idx < leafStart {
			stack = append(stack, 2*idx+1, 2*idx)
			continue
		}

		itemIdx := idx - leafStart
		hit, ok := b.test(ray, itemIdx, &b.items[itemIdx])
		if !ok || (exclude != nil && exclude(&hit)) {
			continue
		}
		if !found || hit.Distance() < best.Distance() {
			best, found = hit, true
		}
	}

	return best, found
}

// Get the number of items in the tree.
func (b *NaiveBVH[T, H]) Len() int {
	return len(b.items)
}

// Get the number of leaf slots. It is the smallest power of 2 that can hold
// all items.
func (b *NaiveBVH[T, H]) Width() int {
	return len(b.boxes) >> 1
}

// Get the number of non-empty nodes.
func (b *NaiveBVH[T, H]) Nodes() int {
	count := 0
	for _, box := range b.boxes {
		if box != nil {
			count++
		}
	}
	return count
}

// Get the bounding box of node idx or nil if the slot is empty.
func (b *NaiveBVH[T, H]) Box(idx int) *types.AABB {
	if idx <= 0 || idx >= len(b.boxes) {
		return nil
	}
	return b.boxes[idx]
}
