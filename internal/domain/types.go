package domain

// TileType - тип клетки карты. Value-type без идентичности.
type TileType uint8

const (
	TileWall TileType = iota
	TileFloor
	TileExit // Лестница вниз
)

func (t TileType) String() string {
	switch t {
	case TileWall:
		return "wall"
	case TileFloor:
		return "floor"
	case TileExit:
		return "exit"
	default:
		return "unknown"
	}
}

// IsWalkable - можно ли наступить на клетку этого типа
func (t TileType) IsWalkable() bool {
	return t == TileFloor || t == TileExit
}
