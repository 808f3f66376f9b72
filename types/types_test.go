package types

import (
	"math/rand"
	"testing"

	"github.com/chewxy/math32"
)

const testEpsilon float32 = 1e-4

func TestQuatRotate(t *testing.T) {
	type spec struct {
		axis  Vec3
		angle float32
		in    Vec3
		exp   Vec3
	}
	specs := []spec{
		{Vec3{0, 0, 1}, math32.Pi / 2, Vec3{1, 0, 0}, Vec3{0, 1, 0}},
		{Vec3{0, 1, 0}, -math32.Pi / 2, Vec3{1, 0, 0}, Vec3{0, 0, 1}},
		{Vec3{1, 0, 0}, math32.Pi, Vec3{0, 1, 0}, Vec3{0, -1, 0}},
		{Vec3{0, 1, 0}, 0, Vec3{3, 4, 5}, Vec3{3, 4, 5}},
	}

	for index, s := range specs {
		q := QuatFromAxisAngle(s.axis, s.angle)
		out := q.Rotate(s.in)
		if !out.ApproxEqual(s.exp, testEpsilon) {
			t.Fatalf("[spec %d] expected rotated vector to be %v; got %v", index, s.exp, out)
		}
	}
}

func TestQuatComposition(t *testing.T) {
	q1 := QuatFromAxisAngle(Vec3{0, 0, 1}, math32.Pi/2)
	q2 := QuatFromAxisAngle(Vec3{1, 0, 0}, math32.Pi/2)
	v := Vec3{1, 2, 3}

	// (q1 * q2) applies q2 first, then q1.
	exp := q1.Rotate(q2.Rotate(v))
	out := q1.Mul(q2).Rotate(v)
	if !out.ApproxEqual(exp, testEpsilon) {
		t.Fatalf("expected composed rotation to yield %v; got %v", exp, out)
	}

	if q1.Mul(q2).ApproxEqual(q2.Mul(q1), testEpsilon) {
		t.Fatal("expected quaternion multiplication not to commute")
	}

	q3 := QuatFromAxisAngle(Vec3{0, 1, 0}, 0.3)
	lhs := q1.Mul(q2).Mul(q3)
	rhs := q1.Mul(q2.Mul(q3))
	if !lhs.ApproxEqual(rhs, testEpsilon) {
		t.Fatalf("expected quaternion multiplication to be associative; got %v and %v", lhs, rhs)
	}
}

func TestQuatRotationBetween(t *testing.T) {
	from := Vec3{1, 0, 0}
	to := Vec3{0, 0, 1}
	out := QuatRotationBetween(from, to).Rotate(from)
	if !out.ApproxEqual(to, testEpsilon) {
		t.Fatalf("expected rotation to map %v onto %v; got %v", from, to, out)
	}

	if q := QuatRotationBetween(from, from); q != QuatIdent() {
		t.Fatalf("expected identity rotation for parallel vectors; got %v", q)
	}
}

func TestQuatNormalize(t *testing.T) {
	q := Quat{V: Vec3{1, 2, 3}, W: 4}.Normalize()
	if math32.Abs(q.Len()-1) > testEpsilon {
		t.Fatalf("expected normalized quaternion length to be 1; got %f", q.Len())
	}

	if q := (Quat{}).Normalize(); q != QuatIdent() {
		t.Fatalf("expected zero quaternion to normalize to identity; got %v", q)
	}
}

func TestMat3Inverse(t *testing.T) {
	m := Mat3FromCols(Vec3{2, 0, 1}, Vec3{1, 3, 0}, Vec3{0, 1, 4})
	inv, ok := m.Inverse()
	if !ok {
		t.Fatal("expected matrix to be invertible")
	}

	ident := Ident3()
	for col := 0; col < 3; col++ {
		if prod := m.MulVec(inv[col]); !prod.ApproxEqual(ident[col], testEpsilon) {
			t.Fatalf("expected m * m^-1 to be identity; column %d got %v", col, prod)
		}
	}

	v := Vec3{1, -2, 5}
	if out := inv.MulVec(m.MulVec(v)); !out.ApproxEqual(v, testEpsilon) {
		t.Fatalf("expected inverse to undo multiplication; got %v", out)
	}

	singular := Mat3FromCols(Vec3{1, 2, 3}, Vec3{2, 4, 6}, Vec3{0, 1, 0})
	if _, ok := singular.Inverse(); ok {
		t.Fatal("expected singular matrix not to be invertible")
	}
}

func TestAABBUnion(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	randVec := func() Vec3 {
		return Vec3{rng.Float32()*20 - 10, rng.Float32()*20 - 10, rng.Float32()*20 - 10}
	}

	for i := 0; i < 200; i++ {
		a := AABBFromPoints(randVec(), randVec())
		b := AABBFromPoints(randVec(), randVec())
		u := a.Union(b)

		if !u.Contains(a) || !u.Contains(b) {
			t.Fatalf("[iter %d] expected union %v to contain %v and %v", i, u, a, b)
		}

		// Every face of the union must touch one of the inputs.
		for axis := 0; axis < 3; axis++ {
			if u.Min[axis] != a.Min[axis] && u.Min[axis] != b.Min[axis] {
				t.Fatalf("[iter %d] union min along axis %d is not tight", i, axis)
			}
			if u.Max[axis] != a.Max[axis] && u.Max[axis] != b.Max[axis] {
				t.Fatalf("[iter %d] union max along axis %d is not tight", i, axis)
			}
			if u.Min[axis] > u.Max[axis] {
				t.Fatalf("[iter %d] union violates min <= max along axis %d", i, axis)
			}
		}
	}
}

func TestAABBFromPoints3(t *testing.T) {
	box := AABBFromPoints3(Vec3{1, 5, -1}, Vec3{-2, 0, 3}, Vec3{0, 2, 7})
	exp := AABB{Min: Vec3{-2, 0, -1}, Max: Vec3{1, 5, 7}}
	if box != exp {
		t.Fatalf("expected box %v; got %v", exp, box)
	}
}

func TestColorConversion(t *testing.T) {
	type spec struct {
		in  ColorRGB
		exp RGB8
	}
	specs := []spec{
		{ColorRGB{0, 0, 0}, RGB8{0, 0, 0}},
		{ColorRGB{1, 1, 1}, RGB8{255, 255, 255}},
		{ColorRGB{2.5, -1, 0.5}, RGB8{255, 0, 127}},
	}
	for index, s := range specs {
		if out := s.in.RGB8(); out != s.exp {
			t.Fatalf("[spec %d] expected %v; got %v", index, s.exp, out)
		}
	}

	if c := RGBHex(0x12ab34); c != (RGB8{0x12, 0xab, 0x34}) {
		t.Fatalf("expected hex color to unpack; got %v", c)
	}
}

func TestANSI256(t *testing.T) {
	type spec struct {
		in  RGB8
		exp uint8
	}
	specs := []spec{
		{RGB8{0, 0, 0}, 232},
		{RGB8{255, 255, 255}, 255},
		{RGB8{255, 0, 0}, 196},
		{RGB8{0, 255, 0}, 46},
		{RGB8{0, 0, 255}, 21},
	}
	for index, s := range specs {
		if out := s.in.ANSI256(); out != s.exp {
			t.Fatalf("[spec %d] expected ANSI color %d for %v; got %d", index, s.exp, s.in, out)
		}
	}
}

func TestNewFrame(t *testing.T) {
	f := NewFrame(3, 2)
	if f.Width() != 3 || f.Height() != 2 {
		t.Fatalf("expected 3x2 frame; got %dx%d", f.Width(), f.Height())
	}
	if exp := "   \n   \n"; f.String() != exp {
		t.Fatalf("expected blank frame %q; got %q", exp, f.String())
	}
}
