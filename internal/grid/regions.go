package grid

// RegionMap labels every open cell of a grid with a connected-region ID.
// Closed cells carry -1. Connectivity is face adjacency along all three
// axes.
type RegionMap struct {
	CellRegionIDs []int
	RegionsCount  int
}

// BuildRegionMap flood-fills the grid, assigning a region ID to every cell
// for which open returns true. Region IDs are assigned in scan order, so
// the same grid always produces the same labeling.
func BuildRegionMap[T comparable](g *Grid[T], open func(T) bool) RegionMap {
	total := g.Size.X * g.Size.Y * g.Size.Z
	ids := make([]int, total)
	for i := range ids {
		ids[i] = -1
	}

	cells := g.Cells()
	index := func(p Point) int {
		return (p.Y*g.Size.Z+p.Z)*g.Size.X + p.X
	}
	neighbors := [6]Point{
		{X: 1}, {X: -1},
		{Y: 1}, {Y: -1},
		{Z: 1}, {Z: -1},
	}

	regionID := 0
	queue := make([]Point, 0, total)

	for y := 0; y < g.Size.Y; y++ {
		for z := 0; z < g.Size.Z; z++ {
			for x := 0; x < g.Size.X; x++ {
				start := Point{X: x, Y: y, Z: z}
				idx := index(start)
				if ids[idx] != -1 || !open(cells[idx]) {
					continue
				}
				ids[idx] = regionID
				queue = append(queue[:0], start)

				for len(queue) > 0 {
					cur := queue[0]
					queue = queue[1:]
					for _, d := range neighbors {
						next := cur.Add(d)
						if next.X < 0 || next.X >= g.Size.X ||
							next.Y < 0 || next.Y >= g.Size.Y ||
							next.Z < 0 || next.Z >= g.Size.Z {
							continue
						}
						nidx := index(next)
						if ids[nidx] != -1 || !open(cells[nidx]) {
							continue
						}
						ids[nidx] = regionID
						queue = append(queue, next)
					}
				}
				regionID++
			}
		}
	}

	return RegionMap{CellRegionIDs: ids, RegionsCount: regionID}
}
