package dungeon

// CellType labels one voxel of the dungeon grid. Cells only ever move away
// from CellEmpty during generation; a feature label is never reverted.
type CellType uint8

const (
	CellEmpty CellType = iota
	CellMainRoom
	CellSideRoom
	CellCorridor
	CellStairs
)

func (c CellType) String() string {
	switch c {
	case CellEmpty:
		return "empty"
	case CellMainRoom:
		return "main-room"
	case CellSideRoom:
		return "side-room"
	case CellCorridor:
		return "corridor"
	case CellStairs:
		return "stairs"
	}
	return "unknown"
}
