package dungeon

import (
	"github.com/halstein/dungeon-forge/internal/delaunay"
	"github.com/halstein/dungeon-forge/internal/grid"
)

// Room is an immutable placed room: its grid-space bounds, the asset it
// represents and the host's instance handle for it.
type Room struct {
	Bounds   grid.Box
	Asset    AssetRef
	Kind     CellType
	Instance AssetInstance
}

// BufferedBounds returns the bounds grown by one cell on each horizontal
// side. Only overlap testing uses the buffered box; the room itself never
// occupies the margin.
func (r *Room) BufferedBounds() grid.Box {
	return r.Bounds.Grow(1, 0, 1)
}

// Center returns the room's continuous-space center, the point that joins
// the triangulation.
func (r *Room) Center() delaunay.Vec3 {
	x, y, z := r.Bounds.Center()
	return delaunay.Vec3{X: x, Y: y, Z: z}
}

// CenterCell returns the grid cell containing the room center, the
// endpoint used for corridor pathfinding.
func (r *Room) CenterCell() grid.Point {
	x, y, z := r.Bounds.Center()
	return grid.Point{X: int(x), Y: int(y), Z: int(z)}
}
