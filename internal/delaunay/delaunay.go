// Package delaunay builds the 1-skeleton of a 3D Delaunay-style
// tetrahedralization over a set of points, via incremental Bowyer-Watson
// insertion against a super-tetrahedron.
package delaunay

import "math"

// Vec3 is a point in continuous 3D space.
type Vec3 struct {
	X float64
	Y float64
	Z float64
}

func (v Vec3) sub(o Vec3) Vec3 {
	return Vec3{X: v.X - o.X, Y: v.Y - o.Y, Z: v.Z - o.Z}
}

func (v Vec3) add(o Vec3) Vec3 {
	return Vec3{X: v.X + o.X, Y: v.Y + o.Y, Z: v.Z + o.Z}
}

func (v Vec3) lenSq() float64 {
	return v.X*v.X + v.Y*v.Y + v.Z*v.Z
}

// Dist returns the Euclidean distance between two points.
func Dist(a, b Vec3) float64 {
	return math.Sqrt(a.sub(b).lenSq())
}

// Edge is an unordered pair of indices into the input point slice,
// stored canonically with A < B.
type Edge struct {
	A int
	B int
}

func newEdge(a, b int) Edge {
	if a > b {
		a, b = b, a
	}
	return Edge{A: a, B: b}
}

// jitterScale breaks exact coplanarity and cosphericality without moving
// points far enough to change which rooms are geometric neighbors.
const jitterScale = 1e-2

// jitter returns a deterministic offset in [-jitterScale/2, jitterScale/2)
// for vertex i on axis k, derived from a splitmix-style integer hash so the
// triangulation needs no random source of its own.
func jitter(i, k int) float64 {
	h := uint64(i)*0x9e3779b97f4a7c15 + uint64(k)*0xbf58476d1ce4e5b9
	h ^= h >> 30
	h *= 0xbf58476d1ce4e5b9
	h ^= h >> 27
	h *= 0x94d049bb133111eb
	h ^= h >> 31
	return (float64(h%1000000)/1000000 - 0.5) * jitterScale
}

// tetra is one tetrahedron of the working mesh. Vertex order carries no
// meaning. ok is false when the four vertices are too close to coplanar for
// a circumsphere to be computed; such slivers never absorb new points.
type tetra struct {
	a, b, c, d int
	center     Vec3
	radiusSq   float64
	ok         bool
}

func newTetra(verts []Vec3, a, b, c, d int) tetra {
	t := tetra{a: a, b: b, c: c, d: d}
	t.center, t.radiusSq, t.ok = circumsphere(verts[a], verts[b], verts[c], verts[d])
	return t
}

func (t tetra) circumsphereContains(p Vec3) bool {
	return t.ok && p.sub(t.center).lenSq() < t.radiusSq
}

func (t tetra) hasVertex(i int) bool {
	return t.a == i || t.b == i || t.c == i || t.d == i
}

// circumsphere solves for the point equidistant from the four vertices via
// Cramer's rule on the 3x3 system 2(v_i - v_0) . x = |v_i|^2 - |v_0|^2.
func circumsphere(a, b, c, d Vec3) (Vec3, float64, bool) {
	ab := b.sub(a)
	ac := c.sub(a)
	ad := d.sub(a)

	det := ab.X*(ac.Y*ad.Z-ac.Z*ad.Y) -
		ab.Y*(ac.X*ad.Z-ac.Z*ad.X) +
		ab.Z*(ac.X*ad.Y-ac.Y*ad.X)
	if math.Abs(det) < 1e-12 {
		return Vec3{}, 0, false
	}

	rb := ab.lenSq() / 2
	rc := ac.lenSq() / 2
	rd := ad.lenSq() / 2

	// Cramer's rule, column-substituted determinants over rows ab, ac, ad.
	x := rb*(ac.Y*ad.Z-ac.Z*ad.Y) - ab.Y*(rc*ad.Z-ac.Z*rd) + ab.Z*(rc*ad.Y-ac.Y*rd)
	y := ab.X*(rc*ad.Z-ac.Z*rd) - rb*(ac.X*ad.Z-ac.Z*ad.X) + ab.Z*(ac.X*rd-rc*ad.X)
	z := ab.X*(ac.Y*rd-rc*ad.Y) - ab.Y*(ac.X*rd-rc*ad.X) + rb*(ac.X*ad.Y-ac.Y*ad.X)

	rel := Vec3{X: x / det, Y: y / det, Z: z / det}
	return a.add(rel), rel.lenSq(), true
}

// face is a triangle key with sorted vertex indices.
type face [3]int

func newFace(a, b, c int) face {
	if a > b {
		a, b = b, a
	}
	if b > c {
		b, c = c, b
	}
	if a > b {
		a, b = b, a
	}
	return face{a, b, c}
}

// Triangulate returns the deduplicated edge set of a tetrahedralization of
// points. Edges are reported in a deterministic order for a fixed input.
// Fewer than two points yield no edges; two or three points yield the
// complete graph on those points.
func Triangulate(points []Vec3) []Edge {
	n := len(points)
	switch n {
	case 0, 1:
		return nil
	case 2:
		return []Edge{newEdge(0, 1)}
	case 3:
		return []Edge{newEdge(0, 1), newEdge(0, 2), newEdge(1, 2)}
	}

	// Work on perturbed copies so coplanar or cospherical inputs cannot
	// produce degenerate circumspheres.
	verts := make([]Vec3, n, n+4)
	for i, p := range points {
		verts[i] = Vec3{X: p.X + jitter(i, 0), Y: p.Y + jitter(i, 1), Z: p.Z + jitter(i, 2)}
	}

	center, radius := boundingSphere(verts)
	m := radius*20 + 100
	verts = append(verts,
		Vec3{X: center.X, Y: center.Y + 3*m, Z: center.Z},
		Vec3{X: center.X - 2*m, Y: center.Y - m, Z: center.Z - 2*m},
		Vec3{X: center.X + 2*m, Y: center.Y - m, Z: center.Z - 2*m},
		Vec3{X: center.X, Y: center.Y - m, Z: center.Z + 2*m},
	)

	tets := []tetra{newTetra(verts, n, n+1, n+2, n+3)}

	for i := 0; i < n; i++ {
		p := verts[i]

		bad := make([]tetra, 0, 8)
		kept := tets[:0]
		for _, t := range tets {
			if t.circumsphereContains(p) {
				bad = append(bad, t)
			} else {
				kept = append(kept, t)
			}
		}
		tets = kept

		// Faces seen exactly once among the bad tetrahedra bound the cavity.
		faceCount := make(map[face]int, len(bad)*4)
		faceOrder := make([]face, 0, len(bad)*4)
		for _, t := range bad {
			for _, f := range []face{
				newFace(t.a, t.b, t.c),
				newFace(t.a, t.b, t.d),
				newFace(t.a, t.c, t.d),
				newFace(t.b, t.c, t.d),
			} {
				if faceCount[f] == 0 {
					faceOrder = append(faceOrder, f)
				}
				faceCount[f]++
			}
		}
		for _, f := range faceOrder {
			if faceCount[f] != 1 {
				continue
			}
			tets = append(tets, newTetra(verts, i, f[0], f[1], f[2]))
		}
	}

	seen := make(map[Edge]struct{})
	edges := make([]Edge, 0, n*3)
	addEdge := func(a, b int) {
		e := newEdge(a, b)
		if _, ok := seen[e]; ok {
			return
		}
		seen[e] = struct{}{}
		edges = append(edges, e)
	}
	for _, t := range tets {
		if t.hasVertex(n) || t.hasVertex(n+1) || t.hasVertex(n+2) || t.hasVertex(n+3) {
			continue
		}
		addEdge(t.a, t.b)
		addEdge(t.a, t.c)
		addEdge(t.a, t.d)
		addEdge(t.b, t.c)
		addEdge(t.b, t.d)
		addEdge(t.c, t.d)
	}

	// Heavily degenerate inputs (all points near one line) can leave
	// vertices with no tetrahedron-derived edges; stitch each one to its
	// nearest neighbor so the graph still reflects adjacency.
	degree := make([]int, n)
	for _, e := range edges {
		degree[e.A]++
		degree[e.B]++
	}
	for i := 0; i < n; i++ {
		if degree[i] > 0 {
			continue
		}
		nearest := -1
		best := math.Inf(1)
		for j := 0; j < n; j++ {
			if j == i {
				continue
			}
			if d := points[i].sub(points[j]).lenSq(); d < best {
				best = d
				nearest = j
			}
		}
		if nearest >= 0 {
			addEdge(i, nearest)
			degree[i]++
			degree[nearest]++
		}
	}

	return edges
}

func boundingSphere(points []Vec3) (Vec3, float64) {
	var c Vec3
	for _, p := range points {
		c.X += p.X
		c.Y += p.Y
		c.Z += p.Z
	}
	inv := 1 / float64(len(points))
	c.X *= inv
	c.Y *= inv
	c.Z *= inv

	r := 0.0
	for _, p := range points {
		if d := p.sub(c).lenSq(); d > r {
			r = d
		}
	}
	return c, math.Sqrt(r)
}
