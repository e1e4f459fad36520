package dungeon

import (
	"fmt"

	"github.com/halstein/dungeon-forge/internal/grid"
)

// DefaultExtraEdgeChance is the probability applied to each non-tree
// triangulation edge when Config.ExtraEdgeChance is left at zero.
const DefaultExtraEdgeChance = 0.2

// Config drives one generation run. The same Config and Seed always
// produce a byte-identical grid.
type Config struct {
	// GridSize is the dungeon volume in cells. All dimensions must be
	// positive.
	GridSize grid.Point

	// Seed initializes the single random source shared by room placement,
	// extra-edge selection and corridor asset picks.
	Seed int64

	// MainRoomAsset sizes and represents the main room. When empty the
	// main-room step is skipped and generation continues without one.
	MainRoomAsset AssetRef
	MainRoomStyle StyleRef

	// SideRoomAssets is the prefab pool side rooms draw from uniformly.
	SideRoomAssets []AssetRef
	SideRoomStyle  StyleRef

	// SideRoomChance is the spawn probability each side-room candidate
	// must roll under. Must lie in [0, 1].
	SideRoomChance float64

	// MaxSideRooms caps the number of side-room candidates (not accepted
	// rooms; rejected candidates are not retried).
	MaxSideRooms int

	// CorridorAssets is the prefab pool for carved corridor cells.
	CorridorAssets []AssetRef
	CorridorStyle  StyleRef

	// ExtraEdgeChance is the probability of keeping each non-tree
	// triangulation edge. Zero means DefaultExtraEdgeChance; a negative
	// value disables extra edges entirely.
	ExtraEdgeChance float64
}

// ConfigError reports an invalid configuration shape. It is the only hard
// failure the pipeline produces; everything downstream degrades gracefully.
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config %s: %s", e.Field, e.Message)
}

func (c Config) validate() error {
	if c.GridSize.X <= 0 || c.GridSize.Y <= 0 || c.GridSize.Z <= 0 {
		return &ConfigError{Field: "GridSize", Message: fmt.Sprintf("dimensions must be positive, got %+v", c.GridSize)}
	}
	if c.SideRoomChance < 0 || c.SideRoomChance > 1 {
		return &ConfigError{Field: "SideRoomChance", Message: fmt.Sprintf("must be in [0,1], got %v", c.SideRoomChance)}
	}
	if c.MaxSideRooms < 0 {
		return &ConfigError{Field: "MaxSideRooms", Message: fmt.Sprintf("must not be negative, got %d", c.MaxSideRooms)}
	}
	if c.ExtraEdgeChance > 1 {
		return &ConfigError{Field: "ExtraEdgeChance", Message: fmt.Sprintf("must not exceed 1, got %v", c.ExtraEdgeChance)}
	}
	return nil
}

func (c Config) extraEdgeChance() float64 {
	switch {
	case c.ExtraEdgeChance < 0:
		return 0
	case c.ExtraEdgeChance == 0:
		return DefaultExtraEdgeChance
	default:
		return c.ExtraEdgeChance
	}
}
