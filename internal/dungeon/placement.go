package dungeon

import (
	"log"
	"math/rand"

	"github.com/halstein/dungeon-forge/internal/grid"
)

// placeMainRoom measures the main room asset and centers its footprint
// horizontally at height 0. A missing asset or an oversized footprint is
// logged and skipped; generation continues without a main room.
func (g *Generator) placeMainRoom(cfg Config, cells *grid.Grid[CellType]) *Room {
	if cfg.MainRoomAsset == "" {
		log.Printf("dungeon: no main room asset configured, skipping main room")
		return nil
	}

	footprint := g.measurer.MeasureFootprint(cfg.MainRoomAsset)
	if footprint.X <= 0 || footprint.Y <= 0 || footprint.Z <= 0 {
		log.Printf("dungeon: main room asset %q has invalid footprint %+v, skipping", cfg.MainRoomAsset, footprint)
		return nil
	}
	if footprint.X > cfg.GridSize.X || footprint.Y > cfg.GridSize.Y || footprint.Z > cfg.GridSize.Z {
		log.Printf("dungeon: main room footprint %+v does not fit grid %+v, skipping", footprint, cfg.GridSize)
		return nil
	}

	origin := grid.Point{
		X: (cfg.GridSize.X - footprint.X) / 2,
		Y: 0,
		Z: (cfg.GridSize.Z - footprint.Z) / 2,
	}
	room := &Room{
		Bounds: grid.Box{Origin: origin, Size: footprint},
		Asset:  cfg.MainRoomAsset,
		Kind:   CellMainRoom,
	}
	g.markRoom(cells, room)
	g.instantiateRoom(room, cfg.MainRoomStyle)
	return room
}

// placeSideRooms runs up to MaxSideRooms single-shot candidates. Each
// candidate draws, in order: the spawn roll, the prefab index, then the
// position (x, z, and y when the grid is taller than the footprint).
// Rejected candidates are dropped without retry.
func (g *Generator) placeSideRooms(cfg Config, cells *grid.Grid[CellType], rng *rand.Rand, rooms []*Room) []*Room {
	if cfg.MaxSideRooms > 0 && len(cfg.SideRoomAssets) == 0 {
		log.Printf("dungeon: no side room assets configured, skipping side rooms")
		return rooms
	}

	for i := 0; i < cfg.MaxSideRooms; i++ {
		if rng.Float64() > cfg.SideRoomChance {
			continue
		}
		asset := cfg.SideRoomAssets[rng.Intn(len(cfg.SideRoomAssets))]
		footprint := g.measurer.MeasureFootprint(asset)
		if footprint.X <= 0 || footprint.Y <= 0 || footprint.Z <= 0 {
			log.Printf("dungeon: side room asset %q has invalid footprint %+v, rejecting candidate", asset, footprint)
			continue
		}
		// Oversized footprints are rejected before any position draw, so
		// the outcome does not depend on random state.
		if footprint.X > cfg.GridSize.X || footprint.Y > cfg.GridSize.Y || footprint.Z > cfg.GridSize.Z {
			log.Printf("dungeon: side room footprint %+v does not fit grid %+v, rejecting candidate", footprint, cfg.GridSize)
			continue
		}

		origin := grid.Point{
			X: rng.Intn(cfg.GridSize.X - footprint.X + 1),
			Z: rng.Intn(cfg.GridSize.Z - footprint.Z + 1),
		}
		if cfg.GridSize.Y > footprint.Y {
			origin.Y = rng.Intn(cfg.GridSize.Y - footprint.Y + 1)
		}

		candidate := &Room{
			Bounds: grid.Box{Origin: origin, Size: footprint},
			Asset:  asset,
			Kind:   CellSideRoom,
		}
		if overlapsAny(candidate, rooms) {
			continue
		}
		g.markRoom(cells, candidate)
		g.instantiateRoom(candidate, cfg.SideRoomStyle)
		rooms = append(rooms, candidate)
	}
	return rooms
}

func overlapsAny(candidate *Room, rooms []*Room) bool {
	buffered := candidate.BufferedBounds()
	for _, r := range rooms {
		if buffered.Intersects(r.BufferedBounds()) {
			return true
		}
	}
	return false
}

func (g *Generator) markRoom(cells *grid.Grid[CellType], room *Room) {
	min, max := room.Bounds.Min(), room.Bounds.Max()
	for y := min.Y; y < max.Y; y++ {
		for z := min.Z; z < max.Z; z++ {
			for x := min.X; x < max.X; x++ {
				cells.Set(grid.Point{X: x, Y: y, Z: z}, room.Kind)
			}
		}
	}
}

func (g *Generator) instantiateRoom(room *Room, style StyleRef) {
	if g.placer == nil {
		return
	}
	room.Instance = g.placer.PlaceAsset(room.Asset, room.Bounds.Origin)
	if g.styler != nil && style != "" {
		g.styler.ApplyVisualStyle(room.Instance, style)
	}
}
