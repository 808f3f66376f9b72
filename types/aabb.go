package types

// AABB is an axis-aligned bounding box. Min is less than or equal to Max for
// every component as long as the box is created with one of the constructors
// below or via Union.
type AABB struct {
	Min Vec3
	Max Vec3
}

// Create the box spanned by two corner points.
func AABBFromPoints(p1, p2 Vec3) AABB {
	return AABB{
		Min: MinVec3(p1, p2),
		Max: MaxVec3(p1, p2),
	}
}

// Create the box enclosing three points.
func AABBFromPoints3(p1, p2, p3 Vec3) AABB {
	return AABB{
		Min: MinVec3(MinVec3(p1, p2), p3),
		Max: MaxVec3(MaxVec3(p1, p2), p3),
	}
}

// Create a cube centered at c with the given half side length.
func AABBCube(c Vec3, halfSide float32) AABB {
	ext := Vec3{halfSide, halfSide, halfSide}
	return AABBFromPoints(c.Sub(ext), c.Add(ext))
}

// Union returns the smallest box containing both a and b.
func (a AABB) Union(b AABB) AABB {
	return AABB{
		Min: MinVec3(a.Min, b.Min),
		Max: MaxVec3(a.Max, b.Max),
	}
}

// Check whether b lies entirely inside a.
func (a AABB) Contains(b AABB) bool {
	for axis := 0; axis < 3; axis++ {
		if b.Min[axis] < a.Min[axis] || b.Max[axis] > a.Max[axis] {
			return false
		}
	}
	return true
}

// Get the box center.
func (a AABB) Center() Vec3 {
	return a.Min.Add(a.Max).Mul(0.5)
}
