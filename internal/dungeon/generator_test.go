package dungeon

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/halstein/dungeon-forge/internal/delaunay"
	"github.com/halstein/dungeon-forge/internal/grid"
)

// footprints is a test measurer backed by a static catalog.
type footprints map[AssetRef]grid.Point

func (f footprints) MeasureFootprint(asset AssetRef) grid.Point {
	return f[asset]
}

// recordingPlacer counts placements per asset.
type recordingPlacer struct {
	placed []AssetRef
}

func (p *recordingPlacer) PlaceAsset(asset AssetRef, position grid.Point) AssetInstance {
	p.placed = append(p.placed, asset)
	return len(p.placed)
}

var testCatalog = footprints{
	"room-main":  {X: 5, Y: 1, Z: 5},
	"room-small": {X: 3, Y: 1, Z: 3},
	"room-wide":  {X: 6, Y: 1, Z: 4},
	"room-huge":  {X: 50, Y: 1, Z: 50},
	"hall":       {X: 1, Y: 1, Z: 1},
}

func newTestGenerator() *Generator {
	return NewGenerator(testCatalog, nil, nil)
}

func TestGenerateRejectsInvalidGridSize(t *testing.T) {
	g := newTestGenerator()
	_, err := g.Generate(Config{GridSize: grid.Point{X: -5, Y: 1, Z: 20}})
	if err == nil {
		t.Fatal("expected error for negative grid dimension")
	}
	var cfgErr *ConfigError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("error type = %T, want *ConfigError", err)
	}
}

func TestGenerateRejectsInvalidChance(t *testing.T) {
	g := newTestGenerator()
	_, err := g.Generate(Config{GridSize: grid.Point{X: 10, Y: 1, Z: 10}, SideRoomChance: 1.5})
	if err == nil {
		t.Fatal("expected error for out-of-range spawn chance")
	}
}

func TestGenerateWithoutMainRoomAssetContinues(t *testing.T) {
	g := newTestGenerator()
	res, err := g.Generate(Config{GridSize: grid.Point{X: 10, Y: 1, Z: 10}, Seed: 1})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if len(res.Rooms) != 0 {
		t.Fatalf("got %d rooms, want 0", len(res.Rooms))
	}
	for _, c := range res.Grid.Cells() {
		if c != CellEmpty {
			t.Fatal("grid should stay empty without rooms")
		}
	}
}

func TestMainRoomCenteredAtHeightZero(t *testing.T) {
	g := newTestGenerator()
	res, err := g.Generate(Config{
		GridSize:      grid.Point{X: 20, Y: 1, Z: 20},
		Seed:          42,
		MainRoomAsset: "room-main",
	})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if len(res.Rooms) != 1 {
		t.Fatalf("got %d rooms, want 1", len(res.Rooms))
	}
	room := res.Rooms[0]
	if room.Bounds.Origin != (grid.Point{X: 7, Y: 0, Z: 7}) {
		t.Fatalf("main room origin = %+v, want {7 0 7}", room.Bounds.Origin)
	}
	if room.Kind != CellMainRoom {
		t.Fatalf("main room kind = %v", room.Kind)
	}
	for z := 7; z < 12; z++ {
		for x := 7; x < 12; x++ {
			if res.Grid.At(grid.Point{X: x, Y: 0, Z: z}) != CellMainRoom {
				t.Fatalf("cell (%d,0,%d) not labeled main room", x, z)
			}
		}
	}
}

func TestOversizedMainRoomIsSkippedNotFatal(t *testing.T) {
	g := newTestGenerator()
	res, err := g.Generate(Config{
		GridSize:      grid.Point{X: 20, Y: 1, Z: 20},
		Seed:          1,
		MainRoomAsset: "room-huge",
	})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if len(res.Rooms) != 0 {
		t.Fatalf("got %d rooms, want 0", len(res.Rooms))
	}
}

func TestSideRoomBufferedBoxesStayDisjoint(t *testing.T) {
	g := newTestGenerator()
	for seed := int64(0); seed < 10; seed++ {
		res, err := g.Generate(Config{
			GridSize:       grid.Point{X: 40, Y: 1, Z: 40},
			Seed:           seed,
			MainRoomAsset:  "room-main",
			SideRoomAssets: []AssetRef{"room-small", "room-wide"},
			SideRoomChance: 1,
			MaxSideRooms:   30,
		})
		if err != nil {
			t.Fatalf("seed %d: %v", seed, err)
		}
		gridBox := grid.Box{Size: grid.Point{X: 40, Y: 1, Z: 40}}
		for i, a := range res.Rooms {
			if !gridBox.Contains(a.Bounds.Min()) || !gridBox.Contains(a.Bounds.Max().Sub(grid.Point{X: 1, Y: 1, Z: 1})) {
				t.Fatalf("seed %d: room %d bounds %+v escape the grid", seed, i, a.Bounds)
			}
			for j, b := range res.Rooms {
				if i == j {
					continue
				}
				if a.BufferedBounds().Intersects(b.BufferedBounds()) {
					t.Fatalf("seed %d: rooms %d and %d have intersecting buffered boxes", seed, i, j)
				}
			}
		}
	}
}

func TestOversizedSideRoomAlwaysRejected(t *testing.T) {
	g := newTestGenerator()
	for seed := int64(0); seed < 20; seed++ {
		res, err := g.Generate(Config{
			GridSize:       grid.Point{X: 20, Y: 1, Z: 20},
			Seed:           seed,
			MainRoomAsset:  "room-main",
			SideRoomAssets: []AssetRef{"room-huge"},
			SideRoomChance: 1,
			MaxSideRooms:   10,
		})
		if err != nil {
			t.Fatalf("seed %d: %v", seed, err)
		}
		if len(res.Rooms) != 1 {
			t.Fatalf("seed %d: got %d rooms, want only the main room", seed, len(res.Rooms))
		}
	}
}

func TestGenerateReproducible(t *testing.T) {
	cfg := Config{
		GridSize:       grid.Point{X: 30, Y: 3, Z: 30},
		Seed:           1337,
		MainRoomAsset:  "room-main",
		SideRoomAssets: []AssetRef{"room-small", "room-wide"},
		SideRoomChance: 0.8,
		MaxSideRooms:   12,
	}
	first, err := newTestGenerator().Generate(cfg)
	if err != nil {
		t.Fatalf("first run: %v", err)
	}
	second, err := newTestGenerator().Generate(cfg)
	if err != nil {
		t.Fatalf("second run: %v", err)
	}

	a, b := first.Grid.Cells(), second.Grid.Cells()
	if len(a) != len(b) {
		t.Fatalf("grid sizes differ: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("cell %d differs: %v vs %v", i, a[i], b[i])
		}
	}
	if len(first.Paths) != len(second.Paths) {
		t.Fatalf("path counts differ: %d vs %d", len(first.Paths), len(second.Paths))
	}
	for i := range first.Paths {
		if len(first.Paths[i]) != len(second.Paths[i]) {
			t.Fatalf("path %d lengths differ", i)
		}
		for j := range first.Paths[i] {
			if first.Paths[i][j] != second.Paths[i][j] {
				t.Fatalf("path %d cell %d differs", i, j)
			}
		}
	}
}

func TestGenerateConnectsRoomsAcrossFloors(t *testing.T) {
	g := newTestGenerator()
	res, err := g.Generate(Config{
		GridSize:       grid.Point{X: 30, Y: 4, Z: 30},
		Seed:           7,
		MainRoomAsset:  "room-main",
		SideRoomAssets: []AssetRef{"room-small"},
		SideRoomChance: 1,
		MaxSideRooms:   15,
	})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if len(res.Rooms) < 2 {
		t.Fatalf("got %d rooms, want at least 2", len(res.Rooms))
	}
	if len(res.Paths) == 0 {
		t.Fatal("expected at least one corridor path")
	}
	// Room labels must survive corridor carving.
	for i, r := range res.Rooms {
		min, max := r.Bounds.Min(), r.Bounds.Max()
		for y := min.Y; y < max.Y; y++ {
			for z := min.Z; z < max.Z; z++ {
				for x := min.X; x < max.X; x++ {
					if got := res.Grid.At(grid.Point{X: x, Y: y, Z: z}); got != r.Kind {
						t.Fatalf("room %d cell (%d,%d,%d) downgraded to %v", i, x, y, z, got)
					}
				}
			}
		}
	}
}

func TestGeneratePlacesAssetsThroughHost(t *testing.T) {
	placer := &recordingPlacer{}
	g := NewGenerator(testCatalog, placer, nil)
	res, err := g.Generate(Config{
		GridSize:       grid.Point{X: 30, Y: 1, Z: 30},
		Seed:           3,
		MainRoomAsset:  "room-main",
		SideRoomAssets: []AssetRef{"room-small"},
		SideRoomChance: 1,
		MaxSideRooms:   6,
		CorridorAssets: []AssetRef{"hall"},
	})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	corridorCells := 0
	for _, c := range res.Grid.Cells() {
		if c == CellCorridor {
			corridorCells++
		}
	}
	want := len(res.Rooms) + corridorCells
	if len(placer.placed) != want {
		t.Fatalf("placed %d instances, want %d (%d rooms + %d corridor cells)",
			len(placer.placed), want, len(res.Rooms), corridorCells)
	}
}

// TestTwoMarkerScenario walks the documented 20x1x20 scenario through the
// pipeline stages: one centered main room, two marker points, one
// triangulation edge, one spanning edge, and a carved corridor between the
// marker cells.
func TestTwoMarkerScenario(t *testing.T) {
	g := newTestGenerator()
	res, err := g.Generate(Config{
		GridSize:      grid.Point{X: 20, Y: 1, Z: 20},
		Seed:          42,
		MainRoomAsset: "room-main",
	})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	markers := []delaunay.Vec3{
		{X: 2, Y: 0, Z: 2},
		{X: 17, Y: 0, Z: 17},
	}
	rng := rand.New(rand.NewSource(42))
	edges := SelectCorridorEdges(markers, DefaultExtraEdgeChance, rng)
	if len(edges) != 1 {
		t.Fatalf("got %d selected edges, want 1", len(edges))
	}

	start := grid.Point{X: 2, Y: 0, Z: 2}
	end := grid.Point{X: 17, Y: 0, Z: 17}
	path := CarveCorridor(res.Grid, start, end)
	if len(path) == 0 {
		t.Fatal("expected a corridor path between the marker cells")
	}
	if path[0] != start || path[len(path)-1] != end {
		t.Fatalf("path runs %+v to %+v", path[0], path[len(path)-1])
	}
	for _, cell := range path {
		got := res.Grid.At(cell)
		if got != CellCorridor && got != CellMainRoom {
			t.Fatalf("path cell %+v labeled %v", cell, got)
		}
	}

	// Re-carving the same corridor must not change any cell.
	before := make([]CellType, len(res.Grid.Cells()))
	copy(before, res.Grid.Cells())
	again := CarveCorridor(res.Grid, start, end)
	if len(again) != len(path) {
		t.Fatalf("re-carved path length %d, want %d", len(again), len(path))
	}
	for i, c := range res.Grid.Cells() {
		if c != before[i] {
			t.Fatalf("cell %d changed on re-carve: %v -> %v", i, before[i], c)
		}
	}
}
