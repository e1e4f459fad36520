// Package dungeon lays out a 3D dungeon: it places rooms on a voxel grid,
// connects their centers through a Delaunay-style triangulation reduced to
// a minimum spanning tree, and carves corridor paths between connected
// rooms with cost-aware A* search.
package dungeon

import (
	"log"
	"math/rand"

	"github.com/halstein/dungeon-forge/internal/delaunay"
	"github.com/halstein/dungeon-forge/internal/graph"
	"github.com/halstein/dungeon-forge/internal/grid"
	"github.com/halstein/dungeon-forge/internal/pathfind"
)

// Traversal costs for corridor pathfinding. Room cells stay traversable
// but expensive, so corridors tunnel through rooms only when going around
// would cost more.
const (
	openCellCost = 1
	roomCellCost = 5
)

// Generator runs the generation pipeline against a host's asset
// collaborators. The measurer is required; placer and styler may be nil,
// in which case no visual instances are created.
type Generator struct {
	measurer AssetMeasurer
	placer   AssetPlacer
	styler   StyleApplier
}

func NewGenerator(measurer AssetMeasurer, placer AssetPlacer, styler StyleApplier) *Generator {
	if measurer == nil {
		panic("dungeon: NewGenerator requires an AssetMeasurer")
	}
	return &Generator{measurer: measurer, placer: placer, styler: styler}
}

// Result is the outcome of one generation run: the final grid labeling,
// the placed rooms, and every carved corridor path for diagnostics.
type Result struct {
	Grid  *grid.Grid[CellType]
	Rooms []*Room
	Paths [][]grid.Point
}

// Generate runs the full pipeline: placement, triangulation, spanning-tree
// selection, then per-edge corridor carving, strictly in that order. Only
// an invalid configuration shape returns an error; every other failure
// degrades by skipping downstream work for the affected piece.
func (g *Generator) Generate(cfg Config) (*Result, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	cells := grid.New[CellType](cfg.GridSize, grid.Point{})
	rng := rand.New(rand.NewSource(cfg.Seed))

	rooms := make([]*Room, 0, cfg.MaxSideRooms+1)
	if main := g.placeMainRoom(cfg, cells); main != nil {
		rooms = append(rooms, main)
	}
	rooms = g.placeSideRooms(cfg, cells, rng, rooms)

	result := &Result{Grid: cells, Rooms: rooms}
	if len(rooms) < 2 {
		return result, nil
	}

	centers := make([]delaunay.Vec3, len(rooms))
	for i, r := range rooms {
		centers[i] = r.Center()
	}
	edges := SelectCorridorEdges(centers, cfg.extraEdgeChance(), rng)

	for _, e := range edges {
		path := CarveCorridor(cells, rooms[e.A].CenterCell(), rooms[e.B].CenterCell())
		if path == nil {
			log.Printf("dungeon: no corridor path between rooms %d and %d, skipping edge", e.A, e.B)
			continue
		}
		result.Paths = append(result.Paths, path)
	}
	g.instantiateCorridors(cfg, cells, rng)

	return result, nil
}

// SelectCorridorEdges triangulates the given centers, reduces the edge set
// to a minimum spanning tree from vertex 0, and re-adds each remaining
// edge with probability extraChance using rng. Fewer than two centers
// yield no edges.
func SelectCorridorEdges(centers []delaunay.Vec3, extraChance float64, rng *rand.Rand) []graph.Edge {
	triEdges := delaunay.Triangulate(centers)
	if len(triEdges) == 0 {
		return nil
	}
	weighted := make([]graph.Edge, len(triEdges))
	for i, e := range triEdges {
		weighted[i] = graph.Edge{A: e.A, B: e.B, Weight: delaunay.Dist(centers[e.A], centers[e.B])}
	}
	tree := graph.MinimumSpanningTree(len(centers), weighted, 0)
	return graph.WithExtraEdges(tree, weighted, extraChance, rng)
}

// CarveCorridor pathfinds from start to end over the current grid state
// and marks the discovered path: Empty path cells become Corridor, Empty
// stair-jump intermediates become Stairs, and room cells keep their label.
// It returns the path, or nil when the endpoints are unreachable. Carving
// the same path twice is a no-op.
func CarveCorridor(cells *grid.Grid[CellType], start, end grid.Point) []grid.Point {
	path := pathfind.FindPath(start, end, TraversalCost(cells))
	if path == nil {
		return nil
	}
	for i, cell := range path {
		if cells.At(cell) == CellEmpty {
			cells.Set(cell, CellCorridor)
		}
		if i == 0 {
			continue
		}
		for _, s := range pathfind.StairCells(path[i-1], cell) {
			if cells.InBounds(s) && cells.At(s) == CellEmpty {
				cells.Set(s, CellStairs)
			}
		}
	}
	return path
}

// TraversalCost is the corridor cost policy over the current grid state:
// out-of-grid cells are not traversable, room cells cost roomCellCost, and
// everything else (empty, corridor, stairs) costs openCellCost.
func TraversalCost(cells *grid.Grid[CellType]) pathfind.CostFunc {
	return func(from, to grid.Point) (float64, bool) {
		if !cells.InBounds(to) {
			return 0, false
		}
		switch cells.At(to) {
		case CellMainRoom, CellSideRoom:
			return roomCellCost, true
		default:
			return openCellCost, true
		}
	}
}

// instantiateCorridors places one corridor asset per carved corridor cell
// in a single pass over the grid, so cells shared by several paths get
// exactly one instance.
func (g *Generator) instantiateCorridors(cfg Config, cells *grid.Grid[CellType], rng *rand.Rand) {
	if g.placer == nil || len(cfg.CorridorAssets) == 0 {
		return
	}
	for y := 0; y < cfg.GridSize.Y; y++ {
		for z := 0; z < cfg.GridSize.Z; z++ {
			for x := 0; x < cfg.GridSize.X; x++ {
				cell := grid.Point{X: x, Y: y, Z: z}
				if cells.At(cell) != CellCorridor {
					continue
				}
				asset := cfg.CorridorAssets[rng.Intn(len(cfg.CorridorAssets))]
				instance := g.placer.PlaceAsset(asset, cell)
				if g.styler != nil && cfg.CorridorStyle != "" {
					g.styler.ApplyVisualStyle(instance, cfg.CorridorStyle)
				}
			}
		}
	}
}
