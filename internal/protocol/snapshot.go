package protocol

import (
	"github.com/halstein/dungeon-forge/internal/dungeon"
	"github.com/halstein/dungeon-forge/internal/grid"
)

type CellAddress struct {
	X int `json:"x"`
	Y int `json:"y"`
	Z int `json:"z"`
}

type RoomLite struct {
	Index  int         `json:"index"`
	Kind   string      `json:"kind"`
	Asset  string      `json:"asset"`
	Origin CellAddress `json:"origin"`
	Size   CellAddress `json:"size"`
}

// Snapshot is the full dungeon state a client needs to render the layout:
// grid dimensions, the flattened cell labels in Y-major Z X order, the
// placed rooms and every carved corridor path.
type Snapshot struct {
	Seed            int64           `json:"seed"`
	GridWidth       int             `json:"gridWidth"`
	GridHeight      int             `json:"gridHeight"`
	GridDepth       int             `json:"gridDepth"`
	Cells           []byte          `json:"cells"`
	Rooms           []RoomLite      `json:"rooms"`
	Paths           [][]CellAddress `json:"paths"`
	RegionsCount    int             `json:"regionsCount"`
	ProtocolVersion string          `json:"protocolVersion"`
}

// SnapshotFromResult flattens a generation result into the wire shape.
// RegionsCount counts connected components of non-empty cells, a quick
// connectivity check for clients and tests.
func SnapshotFromResult(seed int64, res *dungeon.Result) Snapshot {
	cells := res.Grid.Cells()
	flat := make([]byte, len(cells))
	for i, c := range cells {
		flat[i] = byte(c)
	}

	rooms := make([]RoomLite, len(res.Rooms))
	for i, r := range res.Rooms {
		rooms[i] = RoomLite{
			Index:  i,
			Kind:   r.Kind.String(),
			Asset:  string(r.Asset),
			Origin: CellAddress{X: r.Bounds.Origin.X, Y: r.Bounds.Origin.Y, Z: r.Bounds.Origin.Z},
			Size:   CellAddress{X: r.Bounds.Size.X, Y: r.Bounds.Size.Y, Z: r.Bounds.Size.Z},
		}
	}

	paths := make([][]CellAddress, len(res.Paths))
	for i, path := range res.Paths {
		paths[i] = make([]CellAddress, len(path))
		for j, p := range path {
			paths[i][j] = CellAddress{X: p.X, Y: p.Y, Z: p.Z}
		}
	}

	regions := grid.BuildRegionMap(res.Grid, func(c dungeon.CellType) bool { return c != dungeon.CellEmpty })

	return Snapshot{
		Seed:            seed,
		GridWidth:       res.Grid.Size.X,
		GridHeight:      res.Grid.Size.Y,
		GridDepth:       res.Grid.Size.Z,
		Cells:           flat,
		Rooms:           rooms,
		Paths:           paths,
		RegionsCount:    regions.RegionsCount,
		ProtocolVersion: "v0",
	}
}
