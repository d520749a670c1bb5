package domain

// Map - плоский массив клеток фиксированного размера (row-major).
// Инвариант: len(Tiles) == Width*Height.
type Map struct {
	Width  int        `json:"width"`
	Height int        `json:"height"`
	Tiles  []TileType `json:"tiles"`
}

// NewMap создает карту, целиком заполненную полом.
// Неположительные размеры приводятся к 1.
func NewMap(width, height int) *Map {
	if width <= 0 {
		width = 1
	}
	if height <= 0 {
		height = 1
	}
	tiles := make([]TileType, width*height)
	for i := range tiles {
		tiles[i] = TileFloor
	}
	return &Map{Width: width, Height: height, Tiles: tiles}
}
