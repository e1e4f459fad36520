package grid

import "testing"

func TestBuildRegionMapSeparatesDisconnectedBlocks(t *testing.T) {
	g := New[bool](Point{X: 5, Y: 1, Z: 1}, Point{})
	g.Set(Point{X: 0}, true)
	g.Set(Point{X: 1}, true)
	g.Set(Point{X: 3}, true)

	rm := BuildRegionMap(g, func(open bool) bool { return open })
	if rm.RegionsCount != 2 {
		t.Fatalf("RegionsCount = %d, want 2", rm.RegionsCount)
	}
	want := []int{0, 0, -1, 1, -1}
	for i, id := range rm.CellRegionIDs {
		if id != want[i] {
			t.Fatalf("cell %d region = %d, want %d", i, id, want[i])
		}
	}
}

func TestBuildRegionMapConnectsAcrossLayers(t *testing.T) {
	g := New[int](Point{X: 2, Y: 2, Z: 2}, Point{})
	// A column through both layers plus one detached cell.
	g.Set(Point{X: 0, Y: 0, Z: 0}, 1)
	g.Set(Point{X: 0, Y: 1, Z: 0}, 1)
	g.Set(Point{X: 1, Y: 1, Z: 1}, 1)

	rm := BuildRegionMap(g, func(v int) bool { return v != 0 })
	if rm.RegionsCount != 2 {
		t.Fatalf("RegionsCount = %d, want 2", rm.RegionsCount)
	}
}

func TestBuildRegionMapDeterministicIDs(t *testing.T) {
	build := func() RegionMap {
		g := New[bool](Point{X: 4, Y: 1, Z: 4}, Point{})
		for _, p := range []Point{{X: 0, Z: 0}, {X: 3, Z: 0}, {X: 0, Z: 3}, {X: 3, Z: 3}} {
			g.Set(p, true)
		}
		return BuildRegionMap(g, func(open bool) bool { return open })
	}
	a, b := build(), build()
	if a.RegionsCount != 4 || b.RegionsCount != 4 {
		t.Fatalf("RegionsCount = %d/%d, want 4", a.RegionsCount, b.RegionsCount)
	}
	for i := range a.CellRegionIDs {
		if a.CellRegionIDs[i] != b.CellRegionIDs[i] {
			t.Fatalf("cell %d labeled %d then %d", i, a.CellRegionIDs[i], b.CellRegionIDs[i])
		}
	}
}
