package dungeon

import "github.com/halstein/dungeon-forge/internal/grid"

// AssetRef identifies a placeable asset to the host. The generator never
// looks inside it; only the host's measurer and placer interpret it.
type AssetRef string

// StyleRef identifies a cosmetic style to the host. Styles never affect
// algorithmic state.
type StyleRef string

// AssetInstance is an opaque handle to a placed asset, returned by the
// host and carried around untouched.
type AssetInstance any

// AssetMeasurer reports the integer bounding size of an asset's footprint.
// Used only while sizing rooms during placement.
type AssetMeasurer interface {
	MeasureFootprint(asset AssetRef) grid.Point
}

// AssetPlacer instantiates a visual representation of an asset at a
// grid-space position.
type AssetPlacer interface {
	PlaceAsset(asset AssetRef, position grid.Point) AssetInstance
}

// StyleApplier tags a placed instance with a visual style.
type StyleApplier interface {
	ApplyVisualStyle(instance AssetInstance, style StyleRef)
}
