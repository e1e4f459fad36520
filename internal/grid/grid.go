package grid

import "fmt"

// Point is an integer cell coordinate in grid space.
type Point struct {
	X int
	Y int
	Z int
}

func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y, Z: p.Z + q.Z}
}

func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y, Z: p.Z - q.Z}
}

// Box is an axis-aligned integer volume: Origin is the minimum corner,
// Size the extent on each axis. Cells covered are [Origin, Origin+Size)
// half-open on every axis.
type Box struct {
	Origin Point
	Size   Point
}

func (b Box) Min() Point { return b.Origin }

func (b Box) Max() Point { return b.Origin.Add(b.Size) }

// Center returns the geometric center of the box in continuous space.
func (b Box) Center() (float64, float64, float64) {
	return float64(b.Origin.X) + float64(b.Size.X)/2,
		float64(b.Origin.Y) + float64(b.Size.Y)/2,
		float64(b.Origin.Z) + float64(b.Size.Z)/2
}

// Grow expands the box by the given margins on both sides of each axis.
func (b Box) Grow(x, y, z int) Box {
	return Box{
		Origin: Point{X: b.Origin.X - x, Y: b.Origin.Y - y, Z: b.Origin.Z - z},
		Size:   Point{X: b.Size.X + 2*x, Y: b.Size.Y + 2*y, Z: b.Size.Z + 2*z},
	}
}

// Intersects reports whether two boxes overlap. Boxes that merely touch
// (aMax == bMin on some axis) do not intersect.
func (b Box) Intersects(o Box) bool {
	bMax, oMax := b.Max(), o.Max()
	if bMax.X <= o.Origin.X || b.Origin.X >= oMax.X {
		return false
	}
	if bMax.Y <= o.Origin.Y || b.Origin.Y >= oMax.Y {
		return false
	}
	if bMax.Z <= o.Origin.Z || b.Origin.Z >= oMax.Z {
		return false
	}
	return true
}

// Contains reports whether p lies inside the box.
func (b Box) Contains(p Point) bool {
	max := b.Max()
	return p.X >= b.Origin.X && p.X < max.X &&
		p.Y >= b.Origin.Y && p.Y < max.Y &&
		p.Z >= b.Origin.Z && p.Z < max.Z
}

// Grid is a dense 3D array of cells over a fixed bounded volume. Cells are
// addressed in grid space relative to Offset; the stored volume spans
// [Offset, Offset+Size). Access outside the volume is a programming error
// and panics.
type Grid[T any] struct {
	Size   Point
	Offset Point
	cells  []T
}

// New allocates a grid of the given size. All cells start at the zero
// value of T.
func New[T any](size, offset Point) *Grid[T] {
	if size.X <= 0 || size.Y <= 0 || size.Z <= 0 {
		panic(fmt.Sprintf("grid: non-positive size %+v", size))
	}
	return &Grid[T]{
		Size:   size,
		Offset: offset,
		cells:  make([]T, size.X*size.Y*size.Z),
	}
}

// InBounds reports whether p addresses a cell inside the grid volume.
func (g *Grid[T]) InBounds(p Point) bool {
	q := p.Sub(g.Offset)
	return q.X >= 0 && q.X < g.Size.X &&
		q.Y >= 0 && q.Y < g.Size.Y &&
		q.Z >= 0 && q.Z < g.Size.Z
}

func (g *Grid[T]) index(p Point) int {
	q := p.Sub(g.Offset)
	if q.X < 0 || q.X >= g.Size.X || q.Y < 0 || q.Y >= g.Size.Y || q.Z < 0 || q.Z >= g.Size.Z {
		panic(fmt.Sprintf("grid: index %+v out of bounds (size %+v, offset %+v)", p, g.Size, g.Offset))
	}
	return (q.Y*g.Size.Z+q.Z)*g.Size.X + q.X
}

// At returns the cell at p. Panics when p is out of bounds.
func (g *Grid[T]) At(p Point) T {
	return g.cells[g.index(p)]
}

// Set writes the cell at p. Panics when p is out of bounds.
func (g *Grid[T]) Set(p Point, v T) {
	g.cells[g.index(p)] = v
}

// Cells returns the backing cell slice in Y-major, then Z, then X order.
// Callers must treat it as read-only.
func (g *Grid[T]) Cells() []T {
	return g.cells
}
